// Package protocol implements the binary wire format used to mirror a
// surface on a remote client.
//
// The server streams surface operations (create, insert, remove, attribute
// and listener changes) to the client, and the client sends back the events
// raised on nodes it was told to listen on.
//
// # Wire Format
//
// All messages are framed with a 4-byte header:
//
//	┌─────────────┬──────────────┬───────────────────────────────┐
//	│ Frame Type  │ Flags        │ Payload Length                │
//	│ (1 byte)    │ (1 byte)     │ (2 bytes, big-endian)         │
//	└─────────────┴──────────────┴───────────────────────────────┘
//
// # Frame Types
//
//   - FrameHello (0x00): server greeting carrying the protocol version
//   - FrameEvent (0x01): client → server event
//   - FrameOps (0x02): server → client surface operations
//   - FrameError (0x05): error message
//
// # Encoding
//
// Integers are protobuf-style varints, strings are varint length-prefixed.
// Nodes are numbered by the server; 0 means "no node" and 1 is the client's
// mount container.
//
// Ops payload:
//
//	[Count: varint] then per op [Code: byte][fields...]
//
// Event payload:
//
//	[Node: varint][Type: string][Value: string][DataCount: varint]([Key][Value])*
package protocol
