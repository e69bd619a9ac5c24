package shadow

import (
	"fmt"

	"github.com/maderarasto/cordova-jsx/internal/errors"
	"github.com/maderarasto/cordova-jsx/pkg/vdom"
)

// Build converts a render result into a detached shadow subtree.
//
// The result may be a *vdom.Desc, a string or a primitive (rendered as
// text), or nil, in which case Build returns a nil node. On error nothing
// is returned, so no partially built subtree can be attached.
func Build(v any) (*Node, error) {
	return build(v, "root")
}

// NewTree builds v under a fresh root.
func NewTree(v any) (*Node, error) {
	root := NewRoot()
	child, err := Build(v)
	if err != nil {
		return nil, err
	}
	if child != nil {
		root.AppendChild(child)
	}
	return root, nil
}

func build(v any, at string) (*Node, error) {
	switch d := v.(type) {
	case nil:
		return nil, nil
	case *vdom.Desc:
		if d == nil {
			return nil, nil
		}
		return buildDesc(d, at)
	}
	if s, ok := textOf(v); ok {
		return &Node{Kind: KindText, Tag: s}, nil
	}
	return nil, errors.New("E203").
		WithPath(at).
		WithDetailf("%T is not a description, string or primitive", v)
}

// textOf coerces strings and primitives to text.
func textOf(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case bool, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, float32, float64:
		return fmt.Sprint(t), true
	}
	return "", false
}

func buildDesc(d *vdom.Desc, at string) (*Node, error) {
	var node *Node

	switch name := d.ElementName.(type) {
	case *vdom.ComponentType:
		if name == nil {
			return nil, errors.New("E203").WithPath(at).WithDetail("nil component type")
		}
		props := forwardedProps(d.Attributes)
		if len(d.Children) > 0 {
			props[vdom.ChildrenProp] = d.Children
		}
		node = &Node{Kind: KindComponent, Type: name, PendingProps: props}
	case string:
		if vdom.IsElementName(name) {
			node = &Node{Kind: KindElement, Tag: name, PendingProps: forwardedProps(d.Attributes)}
		} else {
			node = &Node{Kind: KindText, Tag: name}
		}
	default:
		s, ok := textOf(name)
		if !ok {
			return nil, errors.New("E203").
				WithPath(at).
				WithDetailf("element name of type %T cannot be rendered", d.ElementName)
		}
		node = &Node{Kind: KindText, Tag: s}
	}

	if k := d.Key(); k != nil {
		node.Key = fmt.Sprint(k)
	}
	if r, ok := d.Attributes[vdom.RefAttr]; ok && r != nil {
		ref, ok := r.(*vdom.Ref)
		if !ok {
			return nil, errors.New("E203").
				WithPath(at + " > " + node.Name()).
				WithDetailf("ref must be a *vdom.Ref, got %T", r)
		}
		node.Ref = ref
	}

	// Component children travel as data.
	if node.Kind == KindComponent {
		return node, nil
	}

	here := at + " > " + node.Name()
	for _, child := range d.Children {
		if group, ok := asGroup(child); ok {
			if err := validateGroup(group, here); err != nil {
				return nil, err
			}
			for _, member := range group {
				if err := appendBuilt(node, member, here); err != nil {
					return nil, err
				}
			}
			continue
		}
		if err := appendBuilt(node, child, here); err != nil {
			return nil, err
		}
	}
	return node, nil
}

func appendBuilt(parent *Node, v any, at string) error {
	child, err := build(v, at)
	if err != nil {
		return err
	}
	if child == nil {
		return nil
	}
	if parent.Kind == KindText {
		return errors.New("E203").
			WithPath(at).
			WithDetailf("%q is not an element name and cannot have children", parent.Tag)
	}
	parent.AppendChild(child)
	return nil
}

// forwardedProps copies attributes without the reserved key and ref.
func forwardedProps(attrs vdom.Props) vdom.Props {
	props := make(vdom.Props, len(attrs))
	for k, v := range attrs {
		if k == vdom.KeyAttr || k == vdom.RefAttr {
			continue
		}
		props[k] = v
	}
	return props
}

// asGroup reports whether v is a dynamically generated sibling group.
func asGroup(v any) ([]any, bool) {
	switch g := v.(type) {
	case []*vdom.Desc:
		out := make([]any, len(g))
		for i, d := range g {
			out[i] = d
		}
		return out, true
	case []any:
		return g, true
	}
	return nil, false
}

// validateGroup requires every member to carry a non-empty key, unique
// within the group.
func validateGroup(group []any, at string) error {
	seen := make(map[string]int, len(group))
	for i, member := range group {
		d, ok := member.(*vdom.Desc)
		if !ok || d == nil || d.Key() == nil {
			return errors.New("E201").
				WithPath(at).
				WithDetailf("member %d of a %d-item group has no key", i, len(group))
		}
		key := fmt.Sprint(d.Key())
		if key == "" {
			return errors.New("E201").
				WithPath(at).
				WithDetailf("member %d has an empty key", i)
		}
		if prev, dup := seen[key]; dup {
			return errors.New("E202").
				WithPath(at).
				WithDetailf("key %q is used by members %d and %d", key, prev, i)
		}
		seen[key] = i
	}
	return nil
}
