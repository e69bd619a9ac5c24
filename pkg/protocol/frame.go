package protocol

import (
	"errors"
	"io"
)

const (
	// FrameHeaderSize is the size of the frame header in bytes.
	FrameHeaderSize = 4

	// MaxPayloadSize is the maximum payload size (2^16 - 1 bytes).
	MaxPayloadSize = 65535

	// Version is the protocol version sent in FrameHello.
	Version = 1
)

// FrameType identifies the type of frame.
type FrameType uint8

const (
	FrameHello FrameType = 0x00 // Server greeting
	FrameEvent FrameType = 0x01 // Client → Server events
	FrameOps   FrameType = 0x02 // Server → Client surface operations
	FrameError FrameType = 0x05 // Error message
)

// String returns the string representation of the frame type.
func (ft FrameType) String() string {
	switch ft {
	case FrameHello:
		return "Hello"
	case FrameEvent:
		return "Event"
	case FrameOps:
		return "Ops"
	case FrameError:
		return "Error"
	default:
		return "Unknown"
	}
}

// FrameFlags are optional flags for frame processing.
type FrameFlags uint8

const (
	// FlagFinal marks the last frame of a batch that had to be split.
	FlagFinal FrameFlags = 0x04
)

// Has reports whether ff contains flag.
func (ff FrameFlags) Has(flag FrameFlags) bool {
	return ff&flag != 0
}

// Frame errors.
var (
	ErrFrameTooLarge    = errors.New("protocol: frame payload too large")
	ErrInvalidFrameType = errors.New("protocol: invalid frame type")
)

// Frame is a protocol frame: a 4-byte header and its payload.
type Frame struct {
	Type    FrameType
	Flags   FrameFlags
	Payload []byte
}

// Encode encodes the frame with its header.
func (f *Frame) Encode() ([]byte, error) {
	if len(f.Payload) > MaxPayloadSize {
		return nil, ErrFrameTooLarge
	}
	e := &Encoder{buf: make([]byte, 0, FrameHeaderSize+len(f.Payload))}
	e.WriteByte(byte(f.Type))
	e.WriteByte(byte(f.Flags))
	e.WriteUint16(uint16(len(f.Payload)))
	e.buf = append(e.buf, f.Payload...)
	return e.Bytes(), nil
}

// DecodeFrame decodes one frame. data must hold the header and the full
// payload; extra bytes are ignored.
func DecodeFrame(data []byte) (*Frame, error) {
	if len(data) < FrameHeaderSize {
		return nil, io.ErrUnexpectedEOF
	}
	ft := FrameType(data[0])
	switch ft {
	case FrameHello, FrameEvent, FrameOps, FrameError:
	default:
		return nil, ErrInvalidFrameType
	}
	length := int(data[2])<<8 | int(data[3])
	if len(data) < FrameHeaderSize+length {
		return nil, io.ErrUnexpectedEOF
	}
	payload := make([]byte, length)
	copy(payload, data[FrameHeaderSize:FrameHeaderSize+length])
	return &Frame{Type: ft, Flags: FrameFlags(data[1]), Payload: payload}, nil
}

// NewHello creates the greeting frame.
func NewHello() *Frame {
	e := NewEncoder()
	e.WriteUvarint(Version)
	return &Frame{Type: FrameHello, Payload: e.Bytes()}
}

// NewError creates an error frame carrying a code and a message.
func NewError(code, message string) *Frame {
	e := NewEncoder()
	e.WriteString(code)
	e.WriteString(message)
	return &Frame{Type: FrameError, Payload: e.Bytes()}
}

// DecodeError reads the code and message of an error frame payload.
func DecodeError(payload []byte) (code, message string, err error) {
	d := NewDecoder(payload)
	if code, err = d.ReadString(); err != nil {
		return "", "", err
	}
	if message, err = d.ReadString(); err != nil {
		return "", "", err
	}
	return code, message, nil
}
