package shadow

import (
	"github.com/maderarasto/cordova-jsx/pkg/vdom"
)

// Reconciler diffs a previous shadow tree against a freshly built candidate.
//
// Host is attached to every component instance the reconciler creates, so
// that SetState reaches the application controller without any global.
type Reconciler struct {
	Host vdom.Host

	// carried holds the props each reused instance had before this pass.
	carried []carriedProps
}

type carriedProps struct {
	instance vdom.Component
	props    vdom.Props
}

// Reconcile tags candidate (and its subtree) with the effects needed to turn
// current into candidate, carrying live state forward. Nodes of current that
// are superseded are tagged EffectDeletion. current may be nil.
//
// Errors come from building the output of components rendered on the way;
// they abort the pass and nothing must be committed. Reused instances get
// their previous props back when that happens.
func (r *Reconciler) Reconcile(current, candidate *Node) error {
	r.carried = r.carried[:0]
	err := r.reconcile(current, candidate)
	if err != nil {
		for i := len(r.carried) - 1; i >= 0; i-- {
			vdom.SetProps(r.carried[i].instance, r.carried[i].props)
		}
	}
	r.carried = r.carried[:0]
	return err
}

func (r *Reconciler) reconcile(current, candidate *Node) error {
	if current != nil && !sameType(current, candidate) {
		current.Effect = EffectDeletion
		return r.mount(candidate)
	}
	if current == nil {
		return r.mount(candidate)
	}

	if candidate.Kind != KindRoot {
		if current.Kind == KindComponent && current.Instance != nil {
			r.carried = append(r.carried, carriedProps{current.Instance, current.PendingProps})
		}
		carryForward(current, candidate)

		if needsUpdate(candidate) {
			candidate.Effect = EffectUpdate
			candidate.PendingUpdate = true
		}
		// Component output is always rebuilt from a fresh render, whether
		// or not the node itself is tagged; it is diffed below.
		if candidate.Kind == KindComponent {
			if err := r.render(candidate); err != nil {
				return err
			}
		}
	}

	return r.reconcileChildren(current, candidate)
}

func (r *Reconciler) reconcileChildren(current, candidate *Node) error {
	oldIndex := make(map[*Node]int, len(current.Children))
	for i, c := range current.Children {
		oldIndex[c] = i
	}

	matched := make(map[*Node]bool, len(current.Children))
	var reused []reusedMatch

	for i, child := range candidate.Children {
		m := matchChild(current, child, i, matched)
		if m != nil {
			matched[m] = true
		}
		if err := r.reconcile(m, child); err != nil {
			return err
		}
		// Keyed and positional matches both keep their surface objects, so
		// both take part in deciding what has to move.
		if m != nil && child.Effect != EffectPlacement {
			reused = append(reused, reusedMatch{node: child, oldIndex: oldIndex[m]})
		}
	}

	for _, c := range current.Children {
		if !matched[c] {
			c.Effect = EffectDeletion
		}
	}

	markMoves(reused)
	return nil
}

// matchChild finds the node of current that child continues: by key when
// child has one, by position otherwise. A node is matched at most once and
// keyed nodes are never matched by position.
func matchChild(current, child *Node, index int, matched map[*Node]bool) *Node {
	if child.Key != "" {
		for _, c := range current.Children {
			if c.Key == child.Key && !matched[c] {
				return c
			}
		}
		return nil
	}
	if index < len(current.Children) {
		c := current.Children[index]
		if c.Key == "" && !matched[c] {
			return c
		}
	}
	return nil
}

// mount tags n and its whole subtree for placement, instantiating and
// rendering components on the way.
func (r *Reconciler) mount(n *Node) error {
	if n.Kind != KindRoot {
		n.Effect = EffectPlacement
	}

	if n.Kind == KindComponent {
		n.Instance = n.Type.New(n.PendingProps)
		vdom.Attach(n.Instance, r.Host)
		n.State = vdom.StateOf(n.Instance)
		if err := r.render(n); err != nil {
			return err
		}
	}

	for _, child := range n.Children {
		if err := r.mount(child); err != nil {
			return err
		}
	}
	return nil
}

// render re-invokes the component and replaces n's children with a freshly
// built subtree.
func (r *Reconciler) render(n *Node) error {
	if n.Instance == nil {
		return nil
	}
	vdom.BeginRender(n.Instance)
	sub, err := build(n.Instance.Render(), n.Path())
	if err != nil {
		return err
	}
	n.Refs = vdom.RefsOf(n.Instance)
	n.Children = nil
	if sub != nil {
		n.AppendChild(sub)
	}
	return nil
}

// carryForward copies committed state from current into candidate.
func carryForward(current, candidate *Node) {
	candidate.OldProps = current.OldProps
	candidate.Handle = current.Handle
	candidate.Listeners = current.Listeners
	candidate.Mounted = current.Mounted

	if candidate.Ref != nil && candidate.Handle != nil {
		candidate.Ref.Set(candidate.Handle)
	}

	if candidate.Kind == KindComponent {
		candidate.Instance = current.Instance
		vdom.SetProps(candidate.Instance, candidate.PendingProps)
		candidate.State = current.State
		candidate.StateChanged = current.StateChanged
		candidate.Refs = current.Refs
	}
}

func needsUpdate(n *Node) bool {
	if !ShallowEqual(n.OldProps, n.PendingProps) {
		return true
	}
	return n.Kind == KindComponent && n.StateChanged
}

type reusedMatch struct {
	node     *Node
	oldIndex int
}

// markMoves flags the reused nodes whose relative order changed. reused is
// in new sibling order; nodes on a longest increasing run of old positions
// stay where they are.
func markMoves(reused []reusedMatch) {
	if len(reused) < 2 {
		return
	}
	seq := make([]int, len(reused))
	for i, k := range reused {
		seq[i] = k.oldIndex
	}
	stay := longestIncreasing(seq)
	for i, k := range reused {
		if !stay[i] {
			k.node.Moved = true
		}
	}
}

// longestIncreasing returns, for each position of seq, whether it belongs to
// one longest strictly increasing subsequence.
func longestIncreasing(seq []int) []bool {
	// tails[l] is the index in seq of the smallest tail of a run of length l+1.
	tails := make([]int, 0, len(seq))
	prev := make([]int, len(seq))

	for i, v := range seq {
		lo, hi := 0, len(tails)
		for lo < hi {
			mid := (lo + hi) / 2
			if seq[tails[mid]] < v {
				lo = mid + 1
			} else {
				hi = mid
			}
		}
		if lo > 0 {
			prev[i] = tails[lo-1]
		} else {
			prev[i] = -1
		}
		if lo == len(tails) {
			tails = append(tails, i)
		} else {
			tails[lo] = i
		}
	}

	in := make([]bool, len(seq))
	if len(tails) == 0 {
		return in
	}
	for i := tails[len(tails)-1]; i >= 0; i = prev[i] {
		in[i] = true
	}
	return in
}
