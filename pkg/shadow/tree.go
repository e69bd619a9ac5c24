package shadow

import (
	"fmt"
	"strings"

	"github.com/maderarasto/cordova-jsx/pkg/surface"
	"github.com/maderarasto/cordova-jsx/pkg/vdom"
)

// Walk visits n and its descendants in pre-order. Returning false from fn
// skips the node's children.
func Walk(n *Node, fn func(*Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range n.Children {
		Walk(c, fn)
	}
}

// PostOrder returns n's subtree with descendants before their ancestors.
func PostOrder(n *Node) []*Node {
	var out []*Node
	var visit func(*Node)
	visit = func(cur *Node) {
		for _, c := range cur.Children {
			visit(c)
		}
		out = append(out, cur)
	}
	if n != nil {
		visit(n)
	}
	return out
}

// FindByComponent returns the node whose instance is c, searching depth
// first, or nil.
func FindByComponent(n *Node, c vdom.Component) *Node {
	if n == nil || c == nil {
		return nil
	}
	if n.Instance == c {
		return n
	}
	for _, child := range n.Children {
		if found := FindByComponent(child, c); found != nil {
			return found
		}
	}
	return nil
}

// FindClosest searches n's element ancestors for the nearest one matching
// selector: "#id", ".class", "[attr]" (present and truthy) or a tag name.
func FindClosest(n *Node, selector string) *Node {
	if selector == "" {
		return nil
	}
	for cur := n; cur != nil && cur.Parent != nil; cur = cur.Parent {
		p := cur.Parent
		if p.Kind == KindElement && matchesSelector(p, selector) {
			return p
		}
	}
	return nil
}

func matchesSelector(n *Node, selector string) bool {
	switch {
	case strings.HasPrefix(selector, "#"):
		return fmt.Sprint(n.PendingProps["id"]) == selector[1:]
	case strings.HasPrefix(selector, "."):
		class, _ := n.PendingProps["class"].(string)
		for _, c := range strings.Fields(class) {
			if c == selector[1:] {
				return true
			}
		}
		return false
	case strings.HasPrefix(selector, "[") && strings.HasSuffix(selector, "]"):
		return truthy(n.PendingProps[selector[1:len(selector)-1]])
	default:
		return n.Tag == selector
	}
}

func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	}
	return true
}

// SurfaceParent returns the nearest ancestor holding a surface handle.
// For a node attached under the root this is at worst the root itself.
func SurfaceParent(n *Node) *Node {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Handle != nil {
			return p
		}
	}
	return nil
}

// SurfaceHandles returns the top-most handles inside n: n's own handle, or
// for components the first surface nodes found beneath them.
func SurfaceHandles(n *Node) []surface.Handle {
	if n.IsSurface() {
		if n.Handle == nil {
			return nil
		}
		return []surface.Handle{n.Handle}
	}
	var out []surface.Handle
	for _, c := range n.Children {
		out = append(out, SurfaceHandles(c)...)
	}
	return out
}

// Clean resets the transient flags of a committed tree and promotes
// PendingProps to OldProps.
func Clean(n *Node) {
	Walk(n, func(cur *Node) bool {
		cur.Effect = EffectNone
		cur.StateChanged = false
		cur.Moved = false
		cur.PendingUpdate = false
		cur.OldProps = cur.PendingProps
		return true
	})
}

// Count returns how many nodes of n's subtree satisfy fn.
func Count(n *Node, fn func(*Node) bool) int {
	total := 0
	Walk(n, func(cur *Node) bool {
		if fn(cur) {
			total++
		}
		return true
	})
	return total
}
