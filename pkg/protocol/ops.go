package protocol

import "fmt"

// NodeID numbers a node on the remote surface. 0 means no node.
type NodeID uint64

// RootID is the client's mount container.
const RootID NodeID = 1

// OpCode identifies a surface operation.
type OpCode uint8

const (
	OpCreateElement OpCode = 0x01 // Node, Tag, Namespace
	OpCreateText    OpCode = 0x02 // Node, Value
	OpInsertBefore  OpCode = 0x03 // Parent, Node, Ref
	OpRemoveChild   OpCode = 0x04 // Parent, Node
	OpSetAttribute  OpCode = 0x05 // Node, Key, Value
	OpRemoveAttr    OpCode = 0x06 // Node, Key
	OpAddListener   OpCode = 0x07 // Node, Key (event)
	OpRemoveListen  OpCode = 0x08 // Node, Key (event)
)

var opNames = map[OpCode]string{
	OpCreateElement: "CreateElement",
	OpCreateText:    "CreateText",
	OpInsertBefore:  "InsertBefore",
	OpRemoveChild:   "RemoveChild",
	OpSetAttribute:  "SetAttribute",
	OpRemoveAttr:    "RemoveAttribute",
	OpAddListener:   "AddListener",
	OpRemoveListen:  "RemoveListener",
}

// String returns the string representation of the op code.
func (c OpCode) String() string {
	if name, ok := opNames[c]; ok {
		return name
	}
	return fmt.Sprintf("OpCode(0x%02x)", uint8(c))
}

// Op is one surface operation. Only the fields listed for its code are
// encoded.
type Op struct {
	Code      OpCode
	Node      NodeID
	Parent    NodeID
	Ref       NodeID
	Tag       string
	Namespace string
	Key       string
	Value     string
}

func (op *Op) encode(e *Encoder) {
	e.WriteByte(byte(op.Code))
	switch op.Code {
	case OpCreateElement:
		e.WriteUvarint(uint64(op.Node))
		e.WriteString(op.Tag)
		e.WriteString(op.Namespace)
	case OpCreateText:
		e.WriteUvarint(uint64(op.Node))
		e.WriteString(op.Value)
	case OpInsertBefore:
		e.WriteUvarint(uint64(op.Parent))
		e.WriteUvarint(uint64(op.Node))
		e.WriteUvarint(uint64(op.Ref))
	case OpRemoveChild:
		e.WriteUvarint(uint64(op.Parent))
		e.WriteUvarint(uint64(op.Node))
	case OpSetAttribute:
		e.WriteUvarint(uint64(op.Node))
		e.WriteString(op.Key)
		e.WriteString(op.Value)
	case OpRemoveAttr, OpAddListener, OpRemoveListen:
		e.WriteUvarint(uint64(op.Node))
		e.WriteString(op.Key)
	}
}

func decodeOp(d *Decoder) (Op, error) {
	b, err := d.ReadByte()
	if err != nil {
		return Op{}, err
	}
	op := Op{Code: OpCode(b)}

	id := func(dst *NodeID) {
		if err != nil {
			return
		}
		var v uint64
		v, err = d.ReadUvarint()
		*dst = NodeID(v)
	}
	str := func(dst *string) {
		if err != nil {
			return
		}
		*dst, err = d.ReadString()
	}

	switch op.Code {
	case OpCreateElement:
		id(&op.Node)
		str(&op.Tag)
		str(&op.Namespace)
	case OpCreateText:
		id(&op.Node)
		str(&op.Value)
	case OpInsertBefore:
		id(&op.Parent)
		id(&op.Node)
		id(&op.Ref)
	case OpRemoveChild:
		id(&op.Parent)
		id(&op.Node)
	case OpSetAttribute:
		id(&op.Node)
		str(&op.Key)
		str(&op.Value)
	case OpRemoveAttr, OpAddListener, OpRemoveListen:
		id(&op.Node)
		str(&op.Key)
	default:
		return Op{}, fmt.Errorf("protocol: unknown op code 0x%02x", b)
	}
	return op, err
}

// EncodeOps encodes a list of operations as an ops payload.
func EncodeOps(ops []Op) []byte {
	e := NewEncoder()
	e.WriteUvarint(uint64(len(ops)))
	for i := range ops {
		ops[i].encode(e)
	}
	return e.Bytes()
}

// DecodeOps decodes an ops payload.
func DecodeOps(payload []byte) ([]Op, error) {
	d := NewDecoder(payload)
	n, err := d.ReadCount()
	if err != nil {
		return nil, err
	}
	ops := make([]Op, 0, n)
	for i := 0; i < n; i++ {
		op, err := decodeOp(d)
		if err != nil {
			return nil, fmt.Errorf("op %d: %w", i, err)
		}
		ops = append(ops, op)
	}
	if !d.EOF() {
		return nil, ErrTrailingBytes
	}
	return ops, nil
}

// OpFrames splits ops into FrameOps frames that each fit MaxPayloadSize.
// The last frame carries FlagFinal. An empty list yields no frames.
func OpFrames(ops []Op) ([]*Frame, error) {
	var frames []*Frame
	start := 0
	for start < len(ops) {
		end := len(ops)
		payload := EncodeOps(ops[start:end])
		for len(payload) > MaxPayloadSize {
			if end-start == 1 {
				return nil, ErrFrameTooLarge
			}
			end = start + (end-start)/2
			payload = EncodeOps(ops[start:end])
		}
		frames = append(frames, &Frame{Type: FrameOps, Payload: payload})
		start = end
	}
	if len(frames) > 0 {
		frames[len(frames)-1].Flags |= FlagFinal
	}
	return frames, nil
}
