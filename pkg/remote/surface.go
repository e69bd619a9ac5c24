package remote

import (
	"github.com/maderarasto/cordova-jsx/internal/errors"
	"github.com/maderarasto/cordova-jsx/pkg/protocol"
	"github.com/maderarasto/cordova-jsx/pkg/surface"
)

// Surface records surface primitives for a remote client. Handles are
// protocol.NodeID values; protocol.RootID is the client's container.
//
// Surface is not safe for concurrent use; Session serializes access.
type Surface struct {
	next      protocol.NodeID
	nodes     map[protocol.NodeID]*remoteNode
	listeners map[protocol.NodeID]map[string][]*surface.Listener
	ops       []protocol.Op
}

// remoteNode mirrors the client's tree shape so removed subtrees can be
// forgotten as a whole.
type remoteNode struct {
	parent   protocol.NodeID
	children []protocol.NodeID
}

func (n *remoteNode) detach(child protocol.NodeID) {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			return
		}
	}
}

var _ surface.Surface = (*Surface)(nil)

// NewSurface creates a surface whose only node is the root container.
func NewSurface() *Surface {
	return &Surface{
		next:      protocol.RootID + 1,
		nodes:     map[protocol.NodeID]*remoteNode{protocol.RootID: {}},
		listeners: make(map[protocol.NodeID]map[string][]*surface.Listener),
	}
}

// Root returns the container handle to mount into.
func (s *Surface) Root() surface.Handle {
	return protocol.RootID
}

// Known returns the number of nodes the surface tracks, the root included.
func (s *Surface) Known() int {
	return len(s.nodes)
}

// Pending returns the number of buffered ops.
func (s *Surface) Pending() int {
	return len(s.ops)
}

// Ops returns the buffered ops without clearing them.
func (s *Surface) Ops() []protocol.Op {
	return append([]protocol.Op(nil), s.ops...)
}

// Flush returns the buffered ops as encoded frames and clears the buffer.
func (s *Surface) Flush() ([][]byte, error) {
	frames, err := protocol.OpFrames(s.ops)
	if err != nil {
		return nil, err
	}
	s.ops = s.ops[:0]
	out := make([][]byte, 0, len(frames))
	for _, f := range frames {
		b, err := f.Encode()
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

func (s *Surface) id(h surface.Handle) (protocol.NodeID, error) {
	id, ok := h.(protocol.NodeID)
	if !ok || s.nodes[id] == nil {
		return 0, errors.New("E302").WithDetailf("%v (%T) is not a remote node", h, h)
	}
	return id, nil
}

func (s *Surface) alloc() protocol.NodeID {
	id := s.next
	s.next++
	s.nodes[id] = &remoteNode{}
	return id
}

// CreateElement implements surface.Surface.
func (s *Surface) CreateElement(tag, namespace string) (surface.Handle, error) {
	id := s.alloc()
	s.ops = append(s.ops, protocol.Op{Code: protocol.OpCreateElement, Node: id, Tag: tag, Namespace: namespace})
	return id, nil
}

// CreateText implements surface.Surface.
func (s *Surface) CreateText(content string) (surface.Handle, error) {
	id := s.alloc()
	s.ops = append(s.ops, protocol.Op{Code: protocol.OpCreateText, Node: id, Value: content})
	return id, nil
}

// InsertBefore implements surface.Surface.
func (s *Surface) InsertBefore(parent, node, ref surface.Handle) error {
	p, err := s.id(parent)
	if err != nil {
		return err
	}
	n, err := s.id(node)
	if err != nil {
		return err
	}
	var r protocol.NodeID
	if ref != nil {
		if r, err = s.id(ref); err != nil {
			return err
		}
	}
	s.ops = append(s.ops, protocol.Op{Code: protocol.OpInsertBefore, Parent: p, Node: n, Ref: r})

	rn := s.nodes[n]
	if old := s.nodes[rn.parent]; old != nil {
		old.detach(n)
	}
	rn.parent = p
	parentNode := s.nodes[p]
	at := len(parentNode.children)
	for i, c := range parentNode.children {
		if c == r {
			at = i
			break
		}
	}
	parentNode.children = append(parentNode.children, 0)
	copy(parentNode.children[at+1:], parentNode.children[at:])
	parentNode.children[at] = n
	return nil
}

// RemoveChild implements surface.Surface. The node and its whole subtree
// are forgotten once removed.
func (s *Surface) RemoveChild(parent, node surface.Handle) error {
	p, err := s.id(parent)
	if err != nil {
		return err
	}
	n, err := s.id(node)
	if err != nil {
		return err
	}
	s.ops = append(s.ops, protocol.Op{Code: protocol.OpRemoveChild, Parent: p, Node: n})
	s.nodes[p].detach(n)
	s.forget(n)
	return nil
}

func (s *Surface) forget(id protocol.NodeID) {
	for _, c := range s.nodes[id].children {
		s.forget(c)
	}
	delete(s.nodes, id)
	delete(s.listeners, id)
}

// SetAttribute implements surface.Surface.
func (s *Surface) SetAttribute(node surface.Handle, key, value string) error {
	n, err := s.id(node)
	if err != nil {
		return err
	}
	s.ops = append(s.ops, protocol.Op{Code: protocol.OpSetAttribute, Node: n, Key: key, Value: value})
	return nil
}

// RemoveAttribute implements surface.Surface.
func (s *Surface) RemoveAttribute(node surface.Handle, key string) error {
	n, err := s.id(node)
	if err != nil {
		return err
	}
	s.ops = append(s.ops, protocol.Op{Code: protocol.OpRemoveAttr, Node: n, Key: key})
	return nil
}

// AddListener implements surface.Surface. The client is told to listen
// only for the first listener of an event on a node.
func (s *Surface) AddListener(node surface.Handle, event string, l *surface.Listener) error {
	n, err := s.id(node)
	if err != nil {
		return err
	}
	byEvent := s.listeners[n]
	if byEvent == nil {
		byEvent = make(map[string][]*surface.Listener)
		s.listeners[n] = byEvent
	}
	if len(byEvent[event]) == 0 {
		s.ops = append(s.ops, protocol.Op{Code: protocol.OpAddListener, Node: n, Key: event})
	}
	byEvent[event] = append(byEvent[event], l)
	return nil
}

// RemoveListener implements surface.Surface. It fails with E301 when l is
// not attached.
func (s *Surface) RemoveListener(node surface.Handle, event string, l *surface.Listener) error {
	n, err := s.id(node)
	if err != nil {
		return err
	}
	ls := s.listeners[n][event]
	for i, x := range ls {
		if x != l {
			continue
		}
		ls = append(ls[:i:i], ls[i+1:]...)
		if len(ls) == 0 {
			delete(s.listeners[n], event)
			s.ops = append(s.ops, protocol.Op{Code: protocol.OpRemoveListen, Node: n, Key: event})
		} else {
			s.listeners[n][event] = ls
		}
		return nil
	}
	return errors.New("E301").WithDetailf("no %q listener on node %d", event, n)
}

// Dispatch calls the listeners attached for ev on its node.
func (s *Surface) Dispatch(ev *protocol.Event) error {
	if s.nodes[ev.Node] == nil {
		return errors.New("E302").WithDetailf("event %q for unknown node %d", ev.Type, ev.Node)
	}
	ls := append([]*surface.Listener(nil), s.listeners[ev.Node][ev.Type]...)
	e := surface.Event{Type: ev.Type, Target: ev.Node, Value: ev.Value, Data: ev.Data}
	for _, l := range ls {
		l.Handle(e)
	}
	return nil
}
