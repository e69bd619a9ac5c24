package vdom

import "github.com/maderarasto/cordova-jsx/pkg/surface"

// On wraps fn as a listener suitable for an event attribute.
//
// The returned pointer is the binding's identity: create it once (for
// example in the constructor) to keep it stable across renders, or inline
// to have it replaced on every update.
func On(fn func(surface.Event)) *surface.Listener {
	return surface.NewListener(fn)
}
