package shadow

import "github.com/maderarasto/cordova-jsx/pkg/vdom"

// Mode selects which lifecycle hook a Scheduler fires.
type Mode uint8

const (
	ModeMount Mode = iota
	ModeUpdate
)

// String returns the string representation of the Mode.
func (m Mode) String() string {
	if m == ModeUpdate {
		return "update"
	}
	return "mount"
}

// Scheduler fires Mounted or Updated hooks bottom-up.
//
// Component nodes are pushed to the front of the queue as the commit
// reaches them, so the most recently reached (deepest) node is examined
// first. Processing stops at the first node that is not ready, which keeps
// a parent from firing before its queued descendants.
type Scheduler struct {
	mode  Mode
	queue []*Node

	// OnHook, if set, is called after each hook fires.
	OnHook func(n *Node, mode Mode)
}

// NewScheduler creates a scheduler for mode.
func NewScheduler(mode Mode) *Scheduler {
	return &Scheduler{mode: mode}
}

// Push queues a component node at the front.
func (s *Scheduler) Push(n *Node) {
	s.queue = append(s.queue, nil)
	copy(s.queue[1:], s.queue)
	s.queue[0] = n
}

// Len returns the number of queued nodes.
func (s *Scheduler) Len() int {
	return len(s.queue)
}

// Pending returns the queued nodes, front first.
func (s *Scheduler) Pending() []*Node {
	return append([]*Node(nil), s.queue...)
}

// Process fires hooks for ready nodes at the front of the queue and returns
// how many fired.
func (s *Scheduler) Process() int {
	fired := 0
	for len(s.queue) > 0 {
		n := s.queue[0]
		if !s.ready(n) {
			break
		}
		s.queue = s.queue[1:]
		s.fire(n)
		fired++
	}
	return fired
}

func (s *Scheduler) ready(n *Node) bool {
	if s.mode == ModeUpdate {
		return allUpdated(n)
	}
	return allMounted(n)
}

func (s *Scheduler) fire(n *Node) {
	switch s.mode {
	case ModeMount:
		n.Mounted = true
		if h, ok := n.Instance.(vdom.Mounter); ok {
			h.Mounted()
		}
	case ModeUpdate:
		n.PendingUpdate = false
		if h, ok := n.Instance.(vdom.Updater); ok {
			h.Updated()
		}
	}
	if s.OnHook != nil {
		s.OnHook(n, s.mode)
	}
}

// allMounted reports whether every descendant surface node has a handle
// and every descendant component is mounted.
func allMounted(n *Node) bool {
	for _, c := range n.Children {
		switch c.Kind {
		case KindElement, KindText:
			if c.Handle == nil {
				return false
			}
		case KindComponent:
			if !c.Mounted {
				return false
			}
		}
		if !allMounted(c) {
			return false
		}
	}
	return true
}

// allUpdated reports whether no descendant has an update pending.
func allUpdated(n *Node) bool {
	for _, c := range n.Children {
		if c.PendingUpdate || !allUpdated(c) {
			return false
		}
	}
	return true
}
