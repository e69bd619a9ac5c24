package cordova

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/maderarasto/cordova-jsx/pkg/surface"
)

type counter struct {
	Base
	log *[]string
}

func (c *counter) Render() any {
	count := c.State()["count"].(int)
	return H("div", Props{"id": "counter"},
		H("span", nil, fmt.Sprintf("count: %d", count)),
		H("button", Props{"onClick": On(func(surface.Event) {
			c.SetState(State{"count": count + 1})
		})}, "+"),
	)
}

func (c *counter) Mounted()   { c.record("mounted") }
func (c *counter) Updated()   { c.record("updated") }
func (c *counter) Resumed()   { c.record("resumed") }
func (c *counter) Destroyed() { c.record("destroyed") }

func (c *counter) record(hook string) {
	if c.log != nil {
		*c.log = append(*c.log, fmt.Sprintf("%s %v", hook, c.Prop("name")))
	}
}

func counterType(log *[]string) *ComponentType {
	return Define("Counter", func(Props) Component {
		c := &counter{log: log}
		c.InitState(State{"count": 0})
		return c
	})
}

func mountApp(t *testing.T, render func() any) (*App, *surface.Memory, *surface.MemNode) {
	t.Helper()
	mem := surface.NewMemory()
	container := mem.AppendContainer("app")
	app, err := New(Config{Render: render, Surface: mem, Target: "#app"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := app.Mount(context.Background()); err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	return app, mem, container
}

func TestNewRequiresRenderAndSurface(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		code string
	}{
		{"no render", Config{Surface: surface.NewMemory()}, "E102"},
		{"no surface", Config{Render: func() any { return nil }}, "E103"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.cfg)
			e, ok := err.(*Error)
			if !ok || e.Code != tt.code {
				t.Errorf("New() error = %v, want %s", err, tt.code)
			}
			if !IsConfiguration(err) {
				t.Errorf("IsConfiguration(%v) = false", err)
			}
		})
	}
}

func TestMountTargetNotFound(t *testing.T) {
	app, err := New(Config{
		Render:  func() any { return "x" },
		Surface: surface.NewMemory(),
		Target:  "#missing",
	})
	if err != nil {
		t.Fatal(err)
	}
	err = app.Mount(context.Background())
	if e, ok := err.(*Error); !ok || e.Code != "E101" {
		t.Errorf("Mount() error = %v, want E101", err)
	}
	if err := app.Render(context.Background()); err == nil {
		t.Error("Render() before Mount succeeded")
	}
}

func TestMountWithContainer(t *testing.T) {
	mem := surface.NewMemory()
	container := mem.AppendContainer("root")
	app, err := New(Config{Render: func() any { return H("p", nil, "ok") }, Surface: mem, Container: container})
	if err != nil {
		t.Fatal(err)
	}
	if err := app.Mount(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got := mem.InnerHTML(container); got != "<p>ok</p>" {
		t.Errorf("html = %q", got)
	}
}

func TestStateChangeRerenders(t *testing.T) {
	var log []string
	Counter := counterType(&log)
	app, mem, container := mountApp(t, func() any { return H(Counter, Props{"name": "c"}) })

	if got := mem.InnerHTML(container); got != `<div id="counter"><span>count: 0</span><button>+</button></div>` {
		t.Fatalf("html = %q", got)
	}

	span := mem.Query("span")
	button := mem.Query("button")
	for i := 0; i < 2; i++ {
		if err := mem.Dispatch(button, surface.Event{Type: "click"}); err != nil {
			t.Fatal(err)
		}
	}
	if got := span.TextContent(); got != "count: 2" {
		t.Errorf("span = %q, want count: 2", got)
	}
	if mem.Query("span") != span {
		t.Error("span was recreated")
	}
	if got := button.ListenerCount("click"); got != 1 {
		t.Errorf("ListenerCount = %d, want 1", got)
	}

	want := []string{"mounted c", "updated c", "updated c"}
	if diff := cmp.Diff(want, log); diff != "" {
		t.Errorf("hooks mismatch (-want +got):\n%s", diff)
	}
	if app.Tree().Children[0].StateChanged {
		t.Error("StateChanged not reset")
	}
}

func TestNotifyUnknownComponent(t *testing.T) {
	app, mem, _ := mountApp(t, func() any { return H("p", nil) })
	mem.ResetOps()
	app.NotifyStateChange(&counter{})
	if n := len(mem.Ops()); n != 0 {
		t.Errorf("ops = %d, want 0", n)
	}
}

type eager struct{ Base }

func (e *eager) Render() any {
	return H("b", nil, fmt.Sprint(e.State()["ready"]))
}

func (e *eager) Mounted() {
	e.SetState(State{"ready": true})
}

func TestStateChangeDuringPassIsDeferred(t *testing.T) {
	Eager := Define("Eager", func(Props) Component {
		e := &eager{}
		e.InitState(State{"ready": false})
		return e
	})
	passes := 0
	_, mem, container := mountApp(t, func() any {
		passes++
		return H(Eager, nil)
	})
	if got := mem.InnerHTML(container); got != "<b>true</b>" {
		t.Errorf("html = %q, want <b>true</b>", got)
	}
	if passes != 2 {
		t.Errorf("passes = %d, want 2", passes)
	}
}

func TestValidationErrorLeavesTreeUnmodified(t *testing.T) {
	keys := []string{"a", "b"}
	app, mem, container := mountApp(t, func() any {
		items := make([]*Desc, len(keys))
		for i, k := range keys {
			items[i] = H("li", Props{"key": k}, k)
		}
		return H("ul", nil, items)
	})
	before := mem.InnerHTML(container)
	tree := app.Tree()

	keys = []string{"a", "a"}
	err := app.Render(context.Background())
	if !IsValidation(err) {
		t.Fatalf("Render() error = %v, want validation error", err)
	}
	if got := mem.InnerHTML(container); got != before {
		t.Errorf("html = %q, want %q", got, before)
	}
	if app.Tree() != tree {
		t.Error("tree replaced after a failed pass")
	}

	keys = []string{"b", "c"}
	if err := app.Render(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got := mem.InnerHTML(container); got != "<ul><li>b</li><li>c</li></ul>" {
		t.Errorf("html = %q", got)
	}
}

type label struct {
	Base
}

func (l *label) Render() any {
	if l.Prop("broken") == true {
		return struct{}{}
	}
	return H("p", nil, l.Prop("name"))
}

func TestFailedPassRestoresProps(t *testing.T) {
	var inst *label
	labelType := Define("Label", func(Props) Component {
		inst = &label{}
		return inst
	})
	props := Props{"name": "a"}
	app, mem, container := mountApp(t, func() any {
		return H("div", nil, H(labelType, props))
	})

	props = Props{"name": "b", "broken": true}
	err := app.Render(context.Background())
	if !IsValidation(err) {
		t.Fatalf("Render() error = %v, want validation error", err)
	}
	if got := inst.Prop("name"); got != "a" {
		t.Errorf("Prop(name) = %v, want a", got)
	}
	if got := inst.Prop("broken"); got != nil {
		t.Errorf("Prop(broken) = %v, want nil", got)
	}

	props = Props{"name": "c"}
	if err := app.Render(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got := mem.InnerHTML(container); got != "<div><p>c</p></div>" {
		t.Errorf("html = %q", got)
	}
}

func TestResumeAndUnmount(t *testing.T) {
	var log []string
	Counter := counterType(&log)
	app, mem, container := mountApp(t, func() any {
		return H("main", nil,
			H(Counter, Props{"name": "a"}),
			H(Counter, Props{"name": "b"}),
		)
	})

	log = nil
	app.Resume()
	if diff := cmp.Diff([]string{"resumed a", "resumed b"}, log); diff != "" {
		t.Errorf("resume hooks (-want +got):\n%s", diff)
	}

	log = nil
	if err := app.Unmount(); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"destroyed a", "destroyed b"}, log); diff != "" {
		t.Errorf("destroy hooks (-want +got):\n%s", diff)
	}
	if got := mem.InnerHTML(container); got != "" {
		t.Errorf("html = %q, want empty", got)
	}
	if err := app.Unmount(); err == nil {
		t.Error("second Unmount() succeeded")
	}
}

type recordingObserver struct {
	passes []RenderStats
	errs   []error
	hooks  []string
}

func (o *recordingObserver) BeginRender(ctx context.Context) context.Context { return ctx }

func (o *recordingObserver) EndRender(_ context.Context, s RenderStats, err error) {
	o.passes = append(o.passes, s)
	o.errs = append(o.errs, err)
}

func (o *recordingObserver) Hook(component, hook string) {
	o.hooks = append(o.hooks, component+" "+hook)
}

func TestObserver(t *testing.T) {
	obs := &recordingObserver{}
	mem := surface.NewMemory()
	mem.AppendContainer("app")
	Counter := counterType(nil)
	app, err := New(Config{
		Render:   func() any { return H(Counter, nil) },
		Surface:  mem,
		Target:   "#app",
		Observer: obs,
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := app.Mount(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(obs.passes) != 1 || obs.errs[0] != nil {
		t.Fatalf("passes = %+v errs = %v", obs.passes, obs.errs)
	}
	// div, span, text, button, text and the component itself.
	if got := obs.passes[0].Placed; got != 6 {
		t.Errorf("Placed = %d, want 6", got)
	}
	if diff := cmp.Diff([]string{"Counter mounted"}, obs.hooks); diff != "" {
		t.Errorf("hooks (-want +got):\n%s", diff)
	}
}
