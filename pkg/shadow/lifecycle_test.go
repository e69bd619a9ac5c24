package shadow

import (
	"testing"

	"github.com/maderarasto/cordova-jsx/pkg/vdom"
)

type hooked struct {
	vdom.Base
	name string
	log  *[]string
}

func (h *hooked) Render() any { return nil }
func (h *hooked) Mounted()    { *h.log = append(*h.log, "mounted "+h.name) }
func (h *hooked) Updated()    { *h.log = append(*h.log, "updated "+h.name) }

func component(name string, log *[]string) *Node {
	return &Node{Kind: KindComponent, Instance: &hooked{name: name, log: log}}
}

func TestSchedulerMountOrder(t *testing.T) {
	var log []string
	root := NewRoot()
	parent := component("parent", &log)
	child := component("child", &log)
	div := &Node{Kind: KindElement, Tag: "div"}
	root.AppendChild(parent)
	parent.AppendChild(div)
	div.AppendChild(child)

	s := NewScheduler(ModeMount)
	s.Push(parent)
	if fired := s.Process(); fired != 0 {
		t.Fatalf("Process() = %d before the div is placed, want 0", fired)
	}

	div.Handle = "div"
	s.Push(child)
	if fired := s.Process(); fired != 2 {
		t.Fatalf("Process() = %d, want 2", fired)
	}
	want := []string{"mounted child", "mounted parent"}
	if len(log) != 2 || log[0] != want[0] || log[1] != want[1] {
		t.Errorf("hooks = %v, want %v", log, want)
	}
	if !parent.Mounted || !child.Mounted {
		t.Error("Mounted flags not set")
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}
}

func TestSchedulerWaitsForPendingUpdates(t *testing.T) {
	var log []string
	root := NewRoot()
	comp := component("comp", &log)
	comp.PendingUpdate = true
	p := &Node{Kind: KindElement, Tag: "p", PendingUpdate: true}
	root.AppendChild(comp)
	comp.AppendChild(p)

	var seen []Mode
	s := NewScheduler(ModeUpdate)
	s.OnHook = func(_ *Node, m Mode) { seen = append(seen, m) }
	s.Push(comp)
	if s.Process() != 0 {
		t.Fatal("fired while a descendant update is pending")
	}
	p.PendingUpdate = false
	if s.Process() != 1 {
		t.Fatal("did not fire once descendants were updated")
	}
	if comp.PendingUpdate {
		t.Error("PendingUpdate still set")
	}
	if len(log) != 1 || log[0] != "updated comp" {
		t.Errorf("hooks = %v", log)
	}
	if len(seen) != 1 || seen[0] != ModeUpdate {
		t.Errorf("OnHook modes = %v", seen)
	}
}

func TestSchedulerPushFront(t *testing.T) {
	a, b := &Node{Tag: "a"}, &Node{Tag: "b"}
	s := NewScheduler(ModeMount)
	s.Push(a)
	s.Push(b)
	got := s.Pending()
	if got[0] != b || got[1] != a {
		t.Errorf("Pending() = [%s %s], want [b a]", got[0].Tag, got[1].Tag)
	}
}
