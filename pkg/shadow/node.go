package shadow

import (
	"strings"

	"github.com/maderarasto/cordova-jsx/pkg/surface"
	"github.com/maderarasto/cordova-jsx/pkg/vdom"
)

// Kind is the node type discriminator.
type Kind uint8

const (
	KindRoot Kind = iota
	KindComponent
	KindElement
	KindText
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindRoot:
		return "Root"
	case KindComponent:
		return "Component"
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	default:
		return "Unknown"
	}
}

// Effect is the change a node requires before the next commit.
type Effect uint8

const (
	EffectNone Effect = iota
	EffectPlacement
	EffectUpdate
	EffectDeletion
)

// String returns the string representation of the Effect.
func (e Effect) String() string {
	switch e {
	case EffectNone:
		return "None"
	case EffectPlacement:
		return "Placement"
	case EffectUpdate:
		return "Update"
	case EffectDeletion:
		return "Deletion"
	default:
		return "Unknown"
	}
}

// Node is a shadow tree node.
type Node struct {
	Kind Kind

	// Tag is the element name for elements and the content for text.
	Tag string

	// Type is the constructor of a component node.
	Type *vdom.ComponentType

	// Key is the author-supplied identity among siblings.
	Key string

	// OldProps are the last committed properties, PendingProps the ones
	// computed by the current render.
	OldProps     vdom.Props
	PendingProps vdom.Props

	// State mirrors the component instance's state.
	State vdom.State

	// Instance is the live component; non-nil after the first mount.
	Instance vdom.Component

	// Handle is the surface object of an element or text node. The root
	// holds the mount container.
	Handle surface.Handle

	// Listeners tracks attached callbacks per event name.
	Listeners map[string][]*surface.Listener

	Children []*Node
	Parent   *Node

	Effect        Effect
	Mounted       bool
	PendingUpdate bool
	StateChanged  bool

	// Moved marks a keyed node that kept its identity but changed its
	// relative order among siblings.
	Moved bool

	// Ref receives Handle once the node is placed.
	Ref *vdom.Ref

	// Refs are the output slots the component created in its latest render.
	Refs []*vdom.Ref
}

// NewRoot creates the root of a shadow tree.
func NewRoot() *Node {
	return &Node{Kind: KindRoot}
}

// AppendChild appends child and points its parent at n.
func (n *Node) AppendChild(child *Node) {
	child.Parent = n
	n.Children = append(n.Children, child)
}

// IsSurface reports whether the node owns a surface handle of its own.
func (n *Node) IsSurface() bool {
	return n.Kind == KindElement || n.Kind == KindText
}

// sameType reports whether two nodes describe the same logical node type.
// A tag change forces a full remount.
func sameType(a, b *Node) bool {
	return a.Kind == b.Kind && a.Tag == b.Tag && a.Type == b.Type
}

// Name returns a short label: the tag, the component name or "#text".
func (n *Node) Name() string {
	switch n.Kind {
	case KindRoot:
		return "root"
	case KindComponent:
		if n.Type != nil {
			return n.Type.Name()
		}
		return "component"
	case KindText:
		return "#text"
	default:
		return n.Tag
	}
}

// Path returns the chain of names from the root down to n.
func (n *Node) Path() string {
	var parts []string
	for cur := n; cur != nil; cur = cur.Parent {
		parts = append(parts, cur.Name())
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, " > ")
}
