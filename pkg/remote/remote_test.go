package remote

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/gorilla/websocket"

	cordova "github.com/maderarasto/cordova-jsx"
	"github.com/maderarasto/cordova-jsx/internal/errors"
	"github.com/maderarasto/cordova-jsx/pkg/protocol"
	"github.com/maderarasto/cordova-jsx/pkg/surface"
)

func TestSurfaceRecordsOps(t *testing.T) {
	s := NewSurface()
	div, _ := s.CreateElement("div", "")
	text, _ := s.CreateText("hi")
	if err := s.InsertBefore(div, text, nil); err != nil {
		t.Fatal(err)
	}
	if err := s.InsertBefore(s.Root(), div, nil); err != nil {
		t.Fatal(err)
	}
	if err := s.SetAttribute(div, "id", "x"); err != nil {
		t.Fatal(err)
	}

	want := []protocol.Op{
		{Code: protocol.OpCreateElement, Node: 2, Tag: "div"},
		{Code: protocol.OpCreateText, Node: 3, Value: "hi"},
		{Code: protocol.OpInsertBefore, Parent: 2, Node: 3},
		{Code: protocol.OpInsertBefore, Parent: protocol.RootID, Node: 2},
		{Code: protocol.OpSetAttribute, Node: 2, Key: "id", Value: "x"},
	}
	if diff := cmp.Diff(want, s.Ops()); diff != "" {
		t.Errorf("ops mismatch (-want +got):\n%s", diff)
	}

	frames, err := s.Flush()
	if err != nil || len(frames) != 1 {
		t.Fatalf("Flush() = %d frames, %v", len(frames), err)
	}
	if s.Pending() != 0 {
		t.Errorf("Pending() = %d after Flush", s.Pending())
	}
	f, err := protocol.DecodeFrame(frames[0])
	if err != nil {
		t.Fatal(err)
	}
	got, err := protocol.DecodeOps(f.Payload)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("flushed ops mismatch (-want +got):\n%s", diff)
	}
}

func TestSurfaceUnknownHandle(t *testing.T) {
	s := NewSurface()
	err := s.SetAttribute(protocol.NodeID(99), "id", "x")
	if !errors.IsLookup(err) {
		t.Errorf("SetAttribute(unknown) error = %v, want lookup error", err)
	}
	if err := s.InsertBefore(s.Root(), "not a node", nil); err == nil {
		t.Error("InsertBefore(string) error = nil")
	}
}

func TestSurfaceListeners(t *testing.T) {
	s := NewSurface()
	btn, _ := s.CreateElement("button", "")
	var got []string
	a := surface.NewListener(func(e surface.Event) { got = append(got, "a:"+e.Value) })
	b := surface.NewListener(func(e surface.Event) { got = append(got, "b:"+e.Value) })

	_ = s.AddListener(btn, "click", a)
	_ = s.AddListener(btn, "click", b)

	listens := 0
	for _, op := range s.Ops() {
		if op.Code == protocol.OpAddListener {
			listens++
		}
	}
	if listens != 1 {
		t.Errorf("AddListener ops = %d, want 1", listens)
	}

	if err := s.Dispatch(&protocol.Event{Node: btn.(protocol.NodeID), Type: "click", Value: "v"}); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"a:v", "b:v"}, got); diff != "" {
		t.Errorf("calls (-want +got):\n%s", diff)
	}

	if err := s.RemoveListener(btn, "click", a); err != nil {
		t.Fatal(err)
	}
	if err := s.RemoveListener(btn, "click", a); !errors.IsLookup(err) {
		t.Errorf("second RemoveListener error = %v, want E301", err)
	}
	if err := s.Dispatch(&protocol.Event{Node: 77, Type: "click"}); err == nil {
		t.Error("Dispatch(unknown node) error = nil")
	}
}

func readFrame(t *testing.T, conn *websocket.Conn) *protocol.Frame {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage() error = %v", err)
	}
	f, err := protocol.DecodeFrame(msg)
	if err != nil {
		t.Fatalf("DecodeFrame() error = %v", err)
	}
	return f
}

func TestSessionRoundTrip(t *testing.T) {
	clicks := 0
	start := func(_ context.Context, s *Surface) (func(), error) {
		btn, _ := s.CreateElement("button", "")
		if err := s.InsertBefore(s.Root(), btn, nil); err != nil {
			return nil, err
		}
		return nil, s.AddListener(btn, "click", surface.NewListener(func(surface.Event) {
			clicks++
			_ = s.SetAttribute(btn, "data-clicks", strings.Repeat("x", clicks))
		}))
	}
	srv := httptest.NewServer(NewHandler(start, DefaultSessionConfig(), nil, nil))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	defer conn.Close()

	if f := readFrame(t, conn); f.Type != protocol.FrameHello {
		t.Fatalf("first frame = %v, want Hello", f.Type)
	}
	f := readFrame(t, conn)
	if f.Type != protocol.FrameOps || !f.Flags.Has(protocol.FlagFinal) {
		t.Fatalf("second frame = %v flags %v", f.Type, f.Flags)
	}
	ops, err := protocol.DecodeOps(f.Payload)
	if err != nil {
		t.Fatal(err)
	}
	if len(ops) != 3 || ops[2].Code != protocol.OpAddListener {
		t.Fatalf("ops = %+v", ops)
	}

	ev := (&protocol.Frame{
		Type:    protocol.FrameEvent,
		Payload: protocol.EncodeEvent(&protocol.Event{Node: ops[0].Node, Type: "click"}),
	})
	b, _ := ev.Encode()
	if err := conn.WriteMessage(websocket.BinaryMessage, b); err != nil {
		t.Fatal(err)
	}

	f = readFrame(t, conn)
	ops, err = protocol.DecodeOps(f.Payload)
	if err != nil {
		t.Fatal(err)
	}
	want := []protocol.Op{{Code: protocol.OpSetAttribute, Node: 2, Key: "data-clicks", Value: "x"}}
	if diff := cmp.Diff(want, ops); diff != "" {
		t.Errorf("ops after click (-want +got):\n%s", diff)
	}
}

func TestSessionStartError(t *testing.T) {
	start := func(context.Context, *Surface) (func(), error) {
		return nil, errors.New("E101")
	}
	srv := httptest.NewServer(NewHandler(start, DefaultSessionConfig(), nil, nil))
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	readFrame(t, conn)
	f := readFrame(t, conn)
	if f.Type != protocol.FrameError {
		t.Fatalf("frame = %v, want Error", f.Type)
	}
	code, _, err := protocol.DecodeError(f.Payload)
	if err != nil || code != "E101" {
		t.Errorf("DecodeError() = %q, %v", code, err)
	}
}

func TestSessionStopsOnDisconnect(t *testing.T) {
	known := make(chan int, 1)
	start := func(ctx context.Context, s *Surface) (func(), error) {
		app, err := cordova.New(cordova.Config{
			Render: func() any {
				return cordova.H("button", cordova.Props{"onClick": cordova.On(func(surface.Event) {})}, "go")
			},
			Surface:   s,
			Container: s.Root(),
		})
		if err != nil {
			return nil, err
		}
		if err := app.Mount(ctx); err != nil {
			return nil, err
		}
		return func() {
			if err := app.Unmount(); err != nil {
				t.Errorf("Unmount() error = %v", err)
			}
			known <- s.Known()
		}, nil
	}
	srv := httptest.NewServer(NewHandler(start, DefaultSessionConfig(), nil, nil))
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	if err != nil {
		t.Fatal(err)
	}
	readFrame(t, conn)
	readFrame(t, conn)
	conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	conn.Close()

	select {
	case got := <-known:
		if got != 1 {
			t.Errorf("Known() after stop = %d, want 1", got)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("stop was not called after the client disconnected")
	}
}

func TestSurfaceForgetsRemovedSubtree(t *testing.T) {
	s := NewSurface()
	ul, _ := s.CreateElement("ul", "")
	li, _ := s.CreateElement("li", "")
	text, _ := s.CreateText("x")
	for _, step := range [][2]surface.Handle{{li, text}, {ul, li}, {s.Root(), ul}} {
		if err := s.InsertBefore(step[0], step[1], nil); err != nil {
			t.Fatal(err)
		}
	}
	if err := s.AddListener(li, "click", surface.NewListener(func(surface.Event) {})); err != nil {
		t.Fatal(err)
	}

	if err := s.RemoveChild(s.Root(), ul); err != nil {
		t.Fatal(err)
	}
	if got := s.Known(); got != 1 {
		t.Errorf("Known() = %d, want 1", got)
	}
	if err := s.Dispatch(&protocol.Event{Node: li.(protocol.NodeID), Type: "click"}); !errors.IsLookup(err) {
		t.Errorf("Dispatch(removed li) error = %v, want lookup error", err)
	}
}

func TestSurfaceMoveKeepsSubtree(t *testing.T) {
	s := NewSurface()
	a, _ := s.CreateElement("div", "")
	b, _ := s.CreateElement("div", "")
	child, _ := s.CreateText("c")
	_ = s.InsertBefore(a, child, nil)
	_ = s.InsertBefore(s.Root(), a, nil)
	_ = s.InsertBefore(s.Root(), b, nil)

	// Moving child under b must detach it from a.
	_ = s.InsertBefore(b, child, nil)
	if err := s.RemoveChild(s.Root(), a); err != nil {
		t.Fatal(err)
	}
	if got := s.Known(); got != 3 {
		t.Errorf("Known() = %d, want 3", got)
	}
	if err := s.SetAttribute(b, "id", "kept"); err != nil {
		t.Errorf("SetAttribute(b) error = %v", err)
	}
}

func TestSurfaceToggleReleasesNodes(t *testing.T) {
	s := NewSurface()
	show := true
	app, err := cordova.New(cordova.Config{
		Render: func() any {
			if !show {
				return cordova.H("p", nil)
			}
			return cordova.H("ul", nil,
				cordova.H("li", cordova.Props{"onClick": cordova.On(func(surface.Event) {})}, "one"),
				cordova.H("li", nil, "two"),
			)
		},
		Surface:   s,
		Container: s.Root(),
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := app.Mount(context.Background()); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 100; i++ {
		show = !show
		if err := app.Render(context.Background()); err != nil {
			t.Fatal(err)
		}
	}
	// show is true again: root, ul, two li and two texts.
	if got := s.Known(); got != 6 {
		t.Errorf("Known() = %d, want 6", got)
	}
	if err := app.Unmount(); err != nil {
		t.Fatal(err)
	}
	if got := s.Known(); got != 1 {
		t.Errorf("Known() after Unmount = %d, want 1", got)
	}
}
