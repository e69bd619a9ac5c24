package protocol

import "sort"

// Event is a client event raised on a node.
type Event struct {
	Node  NodeID
	Type  string
	Value string
	Data  map[string]string
}

// EncodeEvent encodes an event payload. Data pairs are written in key
// order.
func EncodeEvent(ev *Event) []byte {
	e := NewEncoder()
	e.WriteUvarint(uint64(ev.Node))
	e.WriteString(ev.Type)
	e.WriteString(ev.Value)

	keys := make([]string, 0, len(ev.Data))
	for k := range ev.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	e.WriteUvarint(uint64(len(keys)))
	for _, k := range keys {
		e.WriteString(k)
		e.WriteString(ev.Data[k])
	}
	return e.Bytes()
}

// DecodeEvent decodes an event payload.
func DecodeEvent(payload []byte) (*Event, error) {
	d := NewDecoder(payload)
	node, err := d.ReadUvarint()
	if err != nil {
		return nil, err
	}
	ev := &Event{Node: NodeID(node)}
	if ev.Type, err = d.ReadString(); err != nil {
		return nil, err
	}
	if ev.Value, err = d.ReadString(); err != nil {
		return nil, err
	}
	n, err := d.ReadCount()
	if err != nil {
		return nil, err
	}
	if n > 0 {
		ev.Data = make(map[string]string, n)
	}
	for i := 0; i < n; i++ {
		k, err := d.ReadString()
		if err != nil {
			return nil, err
		}
		v, err := d.ReadString()
		if err != nil {
			return nil, err
		}
		ev.Data[k] = v
	}
	if !d.EOF() {
		return nil, ErrTrailingBytes
	}
	return ev, nil
}
