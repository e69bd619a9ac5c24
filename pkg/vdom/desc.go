package vdom

import "strings"

// Props holds attributes, event bindings and component properties.
type Props map[string]any

// Reserved attribute keys.
const (
	KeyAttr      = "key"
	RefAttr      = "ref"
	ChildrenProp = "children"
)

// EventPrefix marks an attribute as an event binding.
const EventPrefix = "on"

// IsEventKey reports whether key names an event binding.
func IsEventKey(key string) bool {
	return len(key) > len(EventPrefix) && strings.HasPrefix(key, EventPrefix)
}

// EventName derives the event name from an event binding key:
// "onClick" -> "click".
func EventName(key string) string {
	return strings.ToLower(strings.TrimPrefix(key, EventPrefix))
}

// Desc is a structural description of one node.
type Desc struct {
	// ElementName is a tag string, a *ComponentType, or a primitive
	// (number, bool) rendered as text.
	ElementName any

	// Attributes holds attributes, including the reserved "key" and "ref".
	Attributes Props

	// Children holds *Desc, strings, primitives, nil (skipped) and
	// sibling groups ([]*Desc or []any).
	Children []any
}

// H builds a description. It is the call a tree literal compiles to.
func H(name any, attrs Props, children ...any) *Desc {
	return &Desc{
		ElementName: name,
		Attributes:  attrs,
		Children:    children,
	}
}

// Key returns the description's key attribute, or nil.
func (d *Desc) Key() any {
	if d == nil || d.Attributes == nil {
		return nil
	}
	return d.Attributes[KeyAttr]
}

// Map builds a keyed sibling group from items.
func Map[T any](items []T, fn func(i int, item T) *Desc) []*Desc {
	out := make([]*Desc, 0, len(items))
	for i, item := range items {
		out = append(out, fn(i, item))
	}
	return out
}
