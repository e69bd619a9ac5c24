package cordova

import (
	"context"
	"log/slog"
	"time"

	"github.com/maderarasto/cordova-jsx/pkg/commit"
	"github.com/maderarasto/cordova-jsx/pkg/surface"
)

// =============================================================================
// Configuration Types
// =============================================================================

// Config is the application configuration.
type Config struct {
	// Render produces the top-level description on every pass. Required.
	Render func() any

	// Surface is the presentation backend. Required.
	Surface surface.Surface

	// Target is a selector ("#app") resolved through the surface when it
	// implements surface.Resolver. Ignored when Container is set.
	Target string

	// Container is the surface handle to mount into.
	Container surface.Handle

	// Namespace is the default element namespace. Empty means the surface's
	// default.
	Namespace string

	// Logger is the structured logger for the application.
	// If nil, slog.Default() is used.
	Logger *slog.Logger

	// Observer receives render and lifecycle notifications. Optional.
	Observer Observer
}

// RenderStats describes one completed render pass.
type RenderStats struct {
	commit.Stats

	Duration time.Duration

	// Deferred counts the state changes that arrived during the pass.
	Deferred int
}

// Observer is notified about render passes and lifecycle hooks.
// telemetry.Recorder implements it.
type Observer interface {
	// BeginRender is called before a pass starts. The returned context is
	// passed to EndRender.
	BeginRender(ctx context.Context) context.Context

	// EndRender is called once the pass has finished or failed.
	EndRender(ctx context.Context, stats RenderStats, err error)

	// Hook is called after a lifecycle hook ran on a component.
	Hook(component, hook string)
}

type nopObserver struct{}

func (nopObserver) BeginRender(ctx context.Context) context.Context { return ctx }
func (nopObserver) EndRender(context.Context, RenderStats, error)   {}
func (nopObserver) Hook(string, string)                              {}

// HookResumed is reported to Observer.Hook by App.Resume.
const HookResumed = "resumed"
