// Package surface defines the presentation surface the renderer commits to.
//
// The engine never touches a concrete UI backend directly. Everything it
// needs is expressed by the Surface interface: create element and text
// handles, insert and remove them, set and remove attributes, and attach or
// detach event listeners. Handles are opaque to the engine.
//
// # Implementations
//
// Memory is an in-process tree that behaves like a minimal DOM. It is used by
// tests, by the vtest harness, and by the CLI to produce HTML snapshots.
// The remote package provides a Surface that streams every primitive to a
// client over a websocket.
//
// # Listeners
//
// Go functions are not comparable, so callbacks are wrapped in *Listener.
// The pointer is the listener's identity: removing a listener requires the
// same pointer that was added.
package surface
