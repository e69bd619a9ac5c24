package commit

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/maderarasto/cordova-jsx/internal/errors"
	"github.com/maderarasto/cordova-jsx/pkg/shadow"
	"github.com/maderarasto/cordova-jsx/pkg/surface"
	"github.com/maderarasto/cordova-jsx/pkg/vdom"
)

// SVGNamespace is used for SVG elements that declare no namespace.
const SVGNamespace = "http://www.w3.org/2000/svg"

// Hook names passed to Committer.OnHook.
const (
	HookMounted   = "mounted"
	HookUpdated   = "updated"
	HookDestroyed = "destroyed"
)

// Stats counts the surface work done by one Commit.
type Stats struct {
	Placed  int
	Updated int
	Moved   int
	Deleted int
}

// Committer applies effects to a surface.
type Committer struct {
	Surface surface.Surface

	// Namespace is the default element namespace.
	Namespace string

	Logger *slog.Logger

	// OnHook, if set, is called after each lifecycle hook is invoked.
	OnHook func(n *shadow.Node, hook string)

	// pending holds moved nodes whose handles are not yet in their final
	// position; they cannot serve as insertion references.
	pending map[*shadow.Node]bool
}

// New creates a Committer for s.
func New(s surface.Surface, namespace string, logger *slog.Logger) *Committer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Committer{Surface: s, Namespace: namespace, Logger: logger}
}

// Commit unmounts deletions, then applies records in order, firing
// Mounted and Updated hooks bottom-up as components become ready.
//
// deletions come from the previous tree, records from the new one.
func (c *Committer) Commit(deletions, records []shadow.Record) (Stats, error) {
	var stats Stats

	for _, r := range deletions {
		if r.Effect != shadow.EffectDeletion {
			continue
		}
		if err := c.Unmount(r.Node); err != nil {
			return stats, err
		}
		stats.Deleted++
	}

	c.pending = make(map[*shadow.Node]bool)
	for _, r := range records {
		if r.Move {
			c.pending[r.Node] = true
		}
	}
	defer func() { c.pending = nil }()

	mount := shadow.NewScheduler(shadow.ModeMount)
	update := shadow.NewScheduler(shadow.ModeUpdate)
	mount.OnHook = c.schedulerHook
	update.OnHook = c.schedulerHook

	for _, r := range records {
		n := r.Node
		switch r.Effect {
		case shadow.EffectPlacement:
			if err := c.Place(n); err != nil {
				return stats, err
			}
			if n.Kind == shadow.KindComponent {
				mount.Push(n)
			}
			stats.Placed++
		case shadow.EffectUpdate:
			if err := c.Update(n); err != nil {
				return stats, err
			}
			if n.Kind == shadow.KindComponent {
				update.Push(n)
			}
			stats.Updated++
		}
		if r.Move {
			if err := c.Move(n); err != nil {
				return stats, err
			}
			stats.Moved++
		}
		mount.Process()
		update.Process()
	}

	if mount.Len() > 0 || update.Len() > 0 {
		c.Logger.Warn("lifecycle hooks left unfired",
			"mount", mount.Len(),
			"update", update.Len())
	}
	c.Logger.Debug("commit applied",
		"placed", stats.Placed,
		"updated", stats.Updated,
		"moved", stats.Moved,
		"deleted", stats.Deleted)
	return stats, nil
}

func (c *Committer) schedulerHook(n *shadow.Node, mode shadow.Mode) {
	hook := HookMounted
	if mode == shadow.ModeUpdate {
		hook = HookUpdated
	}
	c.hook(n, hook)
}

func (c *Committer) hook(n *shadow.Node, hook string) {
	if c.OnHook != nil {
		c.OnHook(n, hook)
	}
}

// Place creates the surface object of an element or text node, applies its
// properties and inserts it under the nearest handle-bearing ancestor.
// Component nodes own no surface object and are left as they are.
func (c *Committer) Place(n *shadow.Node) error {
	var (
		h   surface.Handle
		err error
	)
	switch n.Kind {
	case shadow.KindText:
		h, err = c.Surface.CreateText(n.Tag)
	case shadow.KindElement:
		h, err = c.Surface.CreateElement(n.Tag, c.namespaceOf(n))
	default:
		return nil
	}
	if err != nil {
		return err
	}
	n.Handle = h

	if n.Kind == shadow.KindElement {
		for _, change := range DiffProps(nil, n.PendingProps) {
			if err := c.apply(n, change); err != nil {
				return err
			}
		}
	}

	parent := shadow.SurfaceParent(n)
	if parent == nil {
		return errors.New("E302").
			WithPath(n.Path()).
			WithDetail("node has no mounted ancestor")
	}
	if err := c.Surface.InsertBefore(parent.Handle, h, c.reference(n)); err != nil {
		return err
	}
	if n.Ref != nil {
		n.Ref.Set(h)
	}
	return nil
}

// Update applies the property diff of an element and clears its pending
// update. Components have nothing to apply on the surface.
func (c *Committer) Update(n *shadow.Node) error {
	if n.Kind != shadow.KindElement {
		return nil
	}
	for _, change := range DiffProps(n.OldProps, n.PendingProps) {
		if err := c.apply(n, change); err != nil {
			return err
		}
	}
	n.PendingUpdate = false
	return nil
}

// Move reinserts the surface objects of a relocated node before its new
// next sibling.
func (c *Committer) Move(n *shadow.Node) error {
	delete(c.pending, n)
	parent := shadow.SurfaceParent(n)
	if parent == nil {
		return errors.New("E302").
			WithPath(n.Path()).
			WithDetail("moved node has no mounted ancestor")
	}
	ref := c.reference(n)
	for _, h := range shadow.SurfaceHandles(n) {
		if err := c.Surface.InsertBefore(parent.Handle, h, ref); err != nil {
			return err
		}
	}
	return nil
}

// Unmount tears down n's subtree depth first: listeners are detached,
// refs cleared and Destroyed hooks invoked, deepest components first.
// The top-most surface objects are then removed from their parent.
func (c *Committer) Unmount(n *shadow.Node) error {
	return c.unmount(n, true)
}

func (c *Committer) unmount(n *shadow.Node, top bool) error {
	parent := shadow.SurfaceParent(n)
	handles := shadow.SurfaceHandles(n)

	for _, child := range n.Children {
		if err := c.unmount(child, false); err != nil {
			return err
		}
	}

	events := make([]string, 0, len(n.Listeners))
	for event := range n.Listeners {
		events = append(events, event)
	}
	sort.Strings(events)
	for _, event := range events {
		for _, l := range n.Listeners[event] {
			if err := c.Surface.RemoveListener(n.Handle, event, l); err != nil {
				return err
			}
		}
	}
	n.Listeners = nil

	if top && parent != nil {
		for _, h := range handles {
			if err := c.Surface.RemoveChild(parent.Handle, h); err != nil {
				return err
			}
		}
	}
	if n.Ref != nil {
		n.Ref.Clear()
	}

	if n.Kind == shadow.KindComponent && n.Instance != nil {
		if d, ok := n.Instance.(vdom.Destroyer); ok {
			d.Destroyed()
		}
		c.hook(n, HookDestroyed)
	}
	n.Mounted = false
	return nil
}

// apply dispatches one property change to listeners, class and style
// resolution or a plain attribute.
func (c *Committer) apply(n *shadow.Node, change PropChange) error {
	name := change.Name
	if vdom.IsEventKey(name) {
		event := vdom.EventName(name)
		if change.Type != ChangeAdd {
			if err := c.removeListener(n, event, change.Old); err != nil {
				return err
			}
		}
		if change.Type != ChangeRemove {
			return c.addListener(n, name, event, change.New)
		}
		return nil
	}

	if change.Type == ChangeRemove {
		return c.Surface.RemoveAttribute(n.Handle, name)
	}

	value, err := attrValue(name, change.New)
	if err != nil {
		if e, ok := err.(*errors.Error); ok {
			return e.WithPath(n.Path())
		}
		return err
	}
	return c.Surface.SetAttribute(n.Handle, name, value)
}

func (c *Committer) addListener(n *shadow.Node, prop, event string, v any) error {
	l, ok := v.(*surface.Listener)
	if !ok {
		return errors.New("E204").
			WithPath(n.Path()).
			WithDetailf("%s holds %T", prop, v)
	}
	if err := c.Surface.AddListener(n.Handle, event, l); err != nil {
		return err
	}
	if n.Listeners == nil {
		n.Listeners = make(map[string][]*surface.Listener)
	}
	n.Listeners[event] = append(n.Listeners[event], l)
	return nil
}

func (c *Committer) removeListener(n *shadow.Node, event string, v any) error {
	l, ok := v.(*surface.Listener)
	if !ok {
		return nil
	}
	if err := c.Surface.RemoveListener(n.Handle, event, l); err != nil {
		return err
	}
	ls := n.Listeners[event]
	for i, x := range ls {
		if x == l {
			n.Listeners[event] = append(ls[:i:i], ls[i+1:]...)
			break
		}
	}
	if len(n.Listeners[event]) == 0 {
		delete(n.Listeners, event)
	}
	return nil
}

func attrValue(name string, v any) (string, error) {
	switch name {
	case "class", "className":
		return ResolveClass(v), nil
	case "style":
		return ResolveStyle(v)
	}
	if s, ok := v.(string); ok {
		return s, nil
	}
	return fmt.Sprint(v), nil
}

// namespaceOf resolves an element's namespace from its own xmlns, else the
// nearest ancestor declaring one, else the default. An <svg> element without
// a declaration opens the SVG namespace for its subtree.
func (c *Committer) namespaceOf(n *shadow.Node) string {
	for cur := n; cur != nil; cur = cur.Parent {
		if cur.Kind != shadow.KindElement {
			continue
		}
		if ns, ok := cur.PendingProps["xmlns"].(string); ok && ns != "" {
			return ns
		}
		if cur.Tag == "svg" {
			return SVGNamespace
		}
	}
	return c.Namespace
}

// reference returns the surface object n must be inserted before: the first
// settled handle found among n's following siblings, descending through
// components and climbing out of component parents until the ancestor that
// owns the surface parent is reached. Nil means append.
func (c *Committer) reference(n *shadow.Node) surface.Handle {
	for cur := n; cur.Parent != nil; cur = cur.Parent {
		p := cur.Parent
		after := false
		for _, sib := range p.Children {
			if sib == cur {
				after = true
				continue
			}
			if !after {
				continue
			}
			if h := c.firstHandle(sib); h != nil {
				return h
			}
		}
		if p.Handle != nil {
			return nil
		}
	}
	return nil
}

func (c *Committer) firstHandle(n *shadow.Node) surface.Handle {
	if c.pending[n] {
		return nil
	}
	if n.IsSurface() {
		return n.Handle
	}
	for _, child := range n.Children {
		if h := c.firstHandle(child); h != nil {
			return h
		}
	}
	return nil
}
