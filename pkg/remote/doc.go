// Package remote mirrors a surface on a websocket client.
//
// Surface implements surface.Surface by numbering nodes and buffering every
// primitive as a protocol.Op. A Session owns one connection: it flushes the
// buffered ops to the client as FrameOps frames and turns FrameEvent frames
// from the client back into listener calls, all on a single goroutine so
// the application never sees concurrent renders.
package remote
