package vtest

import (
	"context"
	"log/slog"
	"strings"
	"testing"

	cordova "github.com/maderarasto/cordova-jsx"
	"github.com/maderarasto/cordova-jsx/pkg/surface"
)

// ContainerID is the id of the element the harness mounts into.
const ContainerID = "app"

// Harness is a mounted application on a memory surface.
type Harness struct {
	t         testing.TB
	App       *cordova.App
	Surface   *surface.Memory
	Container *surface.MemNode
}

// Option adjusts the configuration used by Mount.
type Option func(*cordova.Config)

// WithObserver installs an observer.
func WithObserver(o cordova.Observer) Option {
	return func(c *cordova.Config) {
		c.Observer = o
	}
}

// WithLogger sets the application logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *cordova.Config) {
		c.Logger = l
	}
}

// Mount creates an application for render and mounts it, failing the test
// on any error.
func Mount(t testing.TB, render func() any, opts ...Option) *Harness {
	t.Helper()
	h, err := TryMount(t, render, opts...)
	if err != nil {
		t.Fatalf("mount: %v", err)
	}
	return h
}

// TryMount is Mount returning the mount error instead of failing the test.
func TryMount(t testing.TB, render func() any, opts ...Option) (*Harness, error) {
	mem := surface.NewMemory()
	container := mem.AppendContainer(ContainerID)
	cfg := cordova.Config{
		Render:  render,
		Surface: mem,
		Target:  "#" + ContainerID,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	app, err := cordova.New(cfg)
	if err != nil {
		return nil, err
	}
	h := &Harness{t: t, App: app, Surface: mem, Container: container}
	if err := app.Mount(context.Background()); err != nil {
		return h, err
	}
	return h, nil
}

// HTML returns the container's inner HTML.
func (h *Harness) HTML() string {
	return h.Surface.InnerHTML(h.Container)
}

// Render runs a pass, failing the test on error.
func (h *Harness) Render() {
	h.t.Helper()
	if err := h.App.Render(context.Background()); err != nil {
		h.t.Fatalf("render: %v", err)
	}
}

// Query returns the first node inside the container matching selector,
// failing the test when there is none.
func (h *Harness) Query(selector string) *surface.MemNode {
	h.t.Helper()
	n := h.Container.Query(selector)
	if n == nil {
		h.t.Fatalf("no node matches %q in:\n%s", selector, truncate(h.HTML(), 500))
	}
	return n
}

// Dispatch raises ev on the first node matching selector.
func (h *Harness) Dispatch(selector string, ev surface.Event) {
	h.t.Helper()
	if err := h.Surface.Dispatch(h.Query(selector), ev); err != nil {
		h.t.Fatalf("dispatch %s on %q: %v", ev.Type, selector, err)
	}
}

// Click raises a click on the first node matching selector.
func (h *Harness) Click(selector string) {
	h.t.Helper()
	h.Dispatch(selector, surface.Event{Type: "click"})
}

// Input raises an input event carrying value.
func (h *Harness) Input(selector, value string) {
	h.t.Helper()
	h.Dispatch(selector, surface.Event{Type: "input", Value: value})
}

// ExpectContains asserts that the HTML contains expected.
func (h *Harness) ExpectContains(expected string) {
	h.t.Helper()
	if html := h.HTML(); !strings.Contains(html, expected) {
		h.t.Errorf("expected rendered output to contain %q, got:\n%s", expected, truncate(html, 500))
	}
}

// ExpectNotContains asserts that the HTML does not contain unexpected.
func (h *Harness) ExpectNotContains(unexpected string) {
	h.t.Helper()
	if html := h.HTML(); strings.Contains(html, unexpected) {
		h.t.Errorf("expected rendered output to NOT contain %q, got:\n%s", unexpected, truncate(html, 500))
	}
}

// ExpectElement asserts that a node matching selector exists.
func (h *Harness) ExpectElement(selector string) {
	h.t.Helper()
	if h.Container.Query(selector) == nil {
		h.t.Errorf("expected an element matching %q, got:\n%s", selector, truncate(h.HTML(), 500))
	}
}

// ExpectAttribute asserts the attribute value of the node matching
// selector.
func (h *Harness) ExpectAttribute(selector, attr, value string) {
	h.t.Helper()
	got, ok := h.Query(selector).Attr(attr)
	if !ok || got != value {
		h.t.Errorf("%s[%s] = %q (present %v), want %q", selector, attr, got, ok, value)
	}
}

// truncate truncates a string to max length with ellipsis.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
