package surface

import (
	"sort"
	"strings"

	"github.com/maderarasto/cordova-jsx/internal/errors"
)

// Op is one mutation recorded by Memory.
type Op struct {
	Name   string // "create", "insert", "remove", "set", "unset", "listen", "unlisten"
	Node   Handle
	Parent Handle
	Key    string
	Value  string
}

// MemNode is a node of the Memory surface.
type MemNode struct {
	Tag       string
	Namespace string
	Text      string
	IsText    bool

	attrs     map[string]string
	children  []*MemNode
	parent    *MemNode
	listeners map[string][]*Listener
}

// Attr returns the value of an attribute.
func (n *MemNode) Attr(key string) (string, bool) {
	v, ok := n.attrs[key]
	return v, ok
}

// Attrs returns a copy of the node's attributes.
func (n *MemNode) Attrs() map[string]string {
	out := make(map[string]string, len(n.attrs))
	for k, v := range n.attrs {
		out[k] = v
	}
	return out
}

// Children returns the node's children in order.
func (n *MemNode) Children() []*MemNode {
	return append([]*MemNode(nil), n.children...)
}

// Parent returns the node's parent, or nil if detached.
func (n *MemNode) Parent() *MemNode {
	return n.parent
}

// ListenerCount returns how many listeners are attached for event.
func (n *MemNode) ListenerCount(event string) int {
	return len(n.listeners[event])
}

// TextContent returns the concatenated text of the subtree.
func (n *MemNode) TextContent() string {
	if n.IsText {
		return n.Text
	}
	var b strings.Builder
	for _, c := range n.children {
		b.WriteString(c.TextContent())
	}
	return b.String()
}

func (n *MemNode) indexOf(child *MemNode) int {
	for i, c := range n.children {
		if c == child {
			return i
		}
	}
	return -1
}

func (n *MemNode) detach() {
	if n.parent == nil {
		return
	}
	p := n.parent
	if i := p.indexOf(n); i >= 0 {
		p.children = append(p.children[:i], p.children[i+1:]...)
	}
	n.parent = nil
}

// Memory is an in-process Surface that keeps a tree of MemNodes.
//
// Memory is not safe for concurrent use; like the renderer it expects a
// single goroutine to drive it.
type Memory struct {
	document *MemNode
	ops      []Op
}

// NewMemory creates an empty surface with a document root.
func NewMemory() *Memory {
	return &Memory{
		document: &MemNode{Tag: "#document", attrs: map[string]string{}},
	}
}

// Document returns the document root.
func (m *Memory) Document() *MemNode {
	return m.document
}

// Ops returns the mutations recorded since the last ResetOps.
func (m *Memory) Ops() []Op {
	return append([]Op(nil), m.ops...)
}

// ResetOps clears the mutation log.
func (m *Memory) ResetOps() {
	m.ops = m.ops[:0]
}

// CountOps returns how many recorded mutations have the given name.
func (m *Memory) CountOps(name string) int {
	n := 0
	for _, op := range m.ops {
		if op.Name == name {
			n++
		}
	}
	return n
}

// AppendContainer creates a <div id="id"> under the document and returns it.
func (m *Memory) AppendContainer(id string) *MemNode {
	n := &MemNode{Tag: "div", attrs: map[string]string{"id": id}, parent: m.document}
	m.document.children = append(m.document.children, n)
	return n
}

func (m *Memory) node(h Handle) (*MemNode, error) {
	n, ok := h.(*MemNode)
	if !ok || n == nil {
		return nil, errors.New("E302").WithDetailf("%T is not a memory node", h)
	}
	return n, nil
}

// CreateElement implements Surface.
func (m *Memory) CreateElement(tag, namespace string) (Handle, error) {
	n := &MemNode{Tag: tag, Namespace: namespace, attrs: map[string]string{}}
	m.ops = append(m.ops, Op{Name: "create", Node: n, Value: tag})
	return n, nil
}

// CreateText implements Surface.
func (m *Memory) CreateText(content string) (Handle, error) {
	n := &MemNode{Tag: "#text", Text: content, IsText: true}
	m.ops = append(m.ops, Op{Name: "create", Node: n, Value: content})
	return n, nil
}

// InsertBefore implements Surface.
func (m *Memory) InsertBefore(parent, node, ref Handle) error {
	p, err := m.node(parent)
	if err != nil {
		return err
	}
	n, err := m.node(node)
	if err != nil {
		return err
	}
	if p.IsText {
		return errors.New("E302").WithDetail("text nodes cannot have children")
	}
	n.detach()

	at := len(p.children)
	if ref != nil {
		r, err := m.node(ref)
		if err != nil {
			return err
		}
		if at = p.indexOf(r); at < 0 {
			return errors.New("E302").WithDetail("reference node is not a child of parent")
		}
	}
	p.children = append(p.children, nil)
	copy(p.children[at+1:], p.children[at:])
	p.children[at] = n
	n.parent = p

	m.ops = append(m.ops, Op{Name: "insert", Node: n, Parent: p})
	return nil
}

// RemoveChild implements Surface.
func (m *Memory) RemoveChild(parent, node Handle) error {
	p, err := m.node(parent)
	if err != nil {
		return err
	}
	n, err := m.node(node)
	if err != nil {
		return err
	}
	if n.parent != p {
		return errors.New("E302").WithDetail("node is not a child of parent")
	}
	n.detach()
	m.ops = append(m.ops, Op{Name: "remove", Node: n, Parent: p})
	return nil
}

// SetAttribute implements Surface.
func (m *Memory) SetAttribute(node Handle, key, value string) error {
	n, err := m.node(node)
	if err != nil {
		return err
	}
	if n.attrs == nil {
		n.attrs = map[string]string{}
	}
	n.attrs[key] = value
	m.ops = append(m.ops, Op{Name: "set", Node: n, Key: key, Value: value})
	return nil
}

// RemoveAttribute implements Surface.
func (m *Memory) RemoveAttribute(node Handle, key string) error {
	n, err := m.node(node)
	if err != nil {
		return err
	}
	delete(n.attrs, key)
	m.ops = append(m.ops, Op{Name: "unset", Node: n, Key: key})
	return nil
}

// AddListener implements Surface.
func (m *Memory) AddListener(node Handle, event string, l *Listener) error {
	n, err := m.node(node)
	if err != nil {
		return err
	}
	if n.listeners == nil {
		n.listeners = map[string][]*Listener{}
	}
	n.listeners[event] = append(n.listeners[event], l)
	m.ops = append(m.ops, Op{Name: "listen", Node: n, Key: event})
	return nil
}

// RemoveListener implements Surface.
func (m *Memory) RemoveListener(node Handle, event string, l *Listener) error {
	n, err := m.node(node)
	if err != nil {
		return err
	}
	list := n.listeners[event]
	for i, existing := range list {
		if existing == l {
			n.listeners[event] = append(list[:i], list[i+1:]...)
			m.ops = append(m.ops, Op{Name: "unlisten", Node: n, Key: event})
			return nil
		}
	}
	return errors.New("E301").WithDetailf("no %q listener on <%s>", event, n.Tag)
}

// Resolve implements Resolver with "#id", ".class" and tag selectors.
func (m *Memory) Resolve(selector string) (Handle, bool) {
	if selector == "" {
		return nil, false
	}
	if n := m.find(m.document, selector); n != nil {
		return n, true
	}
	return nil, false
}

// Query is Resolve returning the concrete node, or nil.
func (m *Memory) Query(selector string) *MemNode {
	return m.find(m.document, selector)
}

// Query returns the first descendant of n matching selector, or nil.
func (n *MemNode) Query(selector string) *MemNode {
	for _, c := range n.children {
		if matches(c, selector) {
			return c
		}
		if found := c.Query(selector); found != nil {
			return found
		}
	}
	return nil
}

// QueryAll returns every node matching selector in document order.
func (m *Memory) QueryAll(selector string) []*MemNode {
	var out []*MemNode
	var walk func(n *MemNode)
	walk = func(n *MemNode) {
		if matches(n, selector) {
			out = append(out, n)
		}
		for _, c := range n.children {
			walk(c)
		}
	}
	walk(m.document)
	return out
}

func (m *Memory) find(n *MemNode, selector string) *MemNode {
	if matches(n, selector) {
		return n
	}
	for _, c := range n.children {
		if found := m.find(c, selector); found != nil {
			return found
		}
	}
	return nil
}

func matches(n *MemNode, selector string) bool {
	if n.IsText {
		return false
	}
	switch {
	case strings.HasPrefix(selector, "#"):
		return n.attrs["id"] == selector[1:]
	case strings.HasPrefix(selector, "."):
		for _, c := range strings.Fields(n.attrs["class"]) {
			if c == selector[1:] {
				return true
			}
		}
		return false
	default:
		return n.Tag == selector
	}
}

// Dispatch delivers an event to node and bubbles it through its ancestors.
// Listeners are snapshotted per node before invocation, so a listener that
// triggers a re-render does not disturb the current dispatch.
func (m *Memory) Dispatch(node Handle, e Event) error {
	n, err := m.node(node)
	if err != nil {
		return err
	}
	e.Target = n
	for cur := n; cur != nil; cur = cur.parent {
		list := append([]*Listener(nil), cur.listeners[e.Type]...)
		for _, l := range list {
			l.Handle(e)
		}
	}
	return nil
}

// ListenerEvents returns the event names with at least one listener on node,
// sorted.
func (m *Memory) ListenerEvents(node Handle) []string {
	n, err := m.node(node)
	if err != nil {
		return nil
	}
	var out []string
	for ev, list := range n.listeners {
		if len(list) > 0 {
			out = append(out, ev)
		}
	}
	sort.Strings(out)
	return out
}

var (
	_ Surface  = (*Memory)(nil)
	_ Resolver = (*Memory)(nil)
)
