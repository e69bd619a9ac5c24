package cordova

import (
	"context"
	"log/slog"
	"time"

	"github.com/maderarasto/cordova-jsx/internal/errors"
	"github.com/maderarasto/cordova-jsx/pkg/commit"
	"github.com/maderarasto/cordova-jsx/pkg/shadow"
	"github.com/maderarasto/cordova-jsx/pkg/surface"
	"github.com/maderarasto/cordova-jsx/pkg/vdom"
)

// maxFollowUpPasses bounds the passes run for state changes that keep
// arriving while rendering.
const maxFollowUpPasses = 64

// =============================================================================
// App Type
// =============================================================================

// App holds the shadow tree of one mounted application and drives render
// passes over it.
//
//	app, err := cordova.New(cordova.Config{
//	    Render:  func() any { return cordova.H(Root, nil) },
//	    Surface: mem,
//	    Target:  "#app",
//	})
//	if err != nil {
//	    return err
//	}
//	err = app.Mount(ctx)
//
// App is not safe for concurrent use. All passes, event dispatch and
// SetState calls must happen on one goroutine.
type App struct {
	config     Config
	logger     *slog.Logger
	observer   Observer
	reconciler *shadow.Reconciler
	committer  *commit.Committer

	container surface.Handle
	tree      *shadow.Node

	rendering bool
	deferred  []vdom.Component
}

// New creates an application. It fails with E102 without a render callback
// and E103 without a surface.
func New(cfg Config) (*App, error) {
	if cfg.Render == nil {
		return nil, errors.New("E102")
	}
	if cfg.Surface == nil {
		return nil, errors.New("E103")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	observer := cfg.Observer
	if observer == nil {
		observer = nopObserver{}
	}

	app := &App{
		config:    cfg,
		logger:    logger,
		observer:  observer,
		committer: commit.New(cfg.Surface, cfg.Namespace, logger),
	}
	app.reconciler = &shadow.Reconciler{Host: app}
	app.committer.OnHook = func(n *shadow.Node, hook string) {
		app.observer.Hook(n.Name(), hook)
	}
	return app, nil
}

// =============================================================================
// Mounting
// =============================================================================

// Mount resolves the mount container and runs the first render pass.
func (a *App) Mount(ctx context.Context) error {
	container, err := a.resolveContainer()
	if err != nil {
		return err
	}
	a.container = container
	a.logger.Debug("mounting application", "target", a.config.Target)
	return a.Render(ctx)
}

func (a *App) resolveContainer() (surface.Handle, error) {
	if a.config.Container != nil {
		return a.config.Container, nil
	}
	if a.config.Target == "" {
		return nil, errors.New("E101").WithDetail("neither Target nor Container is set")
	}
	resolver, ok := a.config.Surface.(surface.Resolver)
	if !ok {
		return nil, errors.New("E101").
			WithDetailf("%T cannot resolve selectors; set Container", a.config.Surface)
	}
	h, ok := resolver.Resolve(a.config.Target)
	if !ok {
		return nil, errors.New("E101").WithDetailf("no node matches %q", a.config.Target)
	}
	return h, nil
}

// Unmount tears down the whole tree, firing Destroyed hooks, and detaches
// the application from its container. Mount may be called again.
func (a *App) Unmount() error {
	if a.container == nil {
		return errors.New("E105")
	}
	if a.tree != nil {
		for _, child := range a.tree.Children {
			if err := a.committer.Unmount(child); err != nil {
				return err
			}
		}
	}
	a.tree = nil
	a.container = nil
	return nil
}

// Resume invokes Resumed on every mounted component, deepest first.
func (a *App) Resume() {
	for _, n := range shadow.PostOrder(a.tree) {
		if n.Kind != shadow.KindComponent || !n.Mounted {
			continue
		}
		if r, ok := n.Instance.(vdom.Resumer); ok {
			r.Resumed()
			a.observer.Hook(n.Name(), HookResumed)
		}
	}
}

// Tree returns the committed shadow tree, or nil before the first pass.
func (a *App) Tree() *shadow.Node {
	return a.tree
}

// =============================================================================
// Rendering
// =============================================================================

// Render runs a full pass: build, reconcile, collect, commit. State changes
// requested while the pass runs are applied by follow-up passes before
// Render returns.
//
// Calling Render from inside a pass (a lifecycle hook, a component's
// Render) only schedules a follow-up pass.
func (a *App) Render(ctx context.Context) error {
	if a.container == nil {
		return errors.New("E105")
	}
	if a.rendering {
		a.logger.Warn("render requested during a pass; deferring")
		a.deferred = append(a.deferred, nil)
		return nil
	}

	if err := a.pass(ctx); err != nil {
		return err
	}
	for i := 0; len(a.deferred) > 0; i++ {
		if i == maxFollowUpPasses {
			a.deferred = nil
			return errors.Newf(errors.CategoryRuntime,
				"state kept changing after %d follow-up passes", maxFollowUpPasses)
		}
		batch := a.deferred
		a.deferred = nil
		if !a.markChanged(batch) {
			continue
		}
		if err := a.pass(ctx); err != nil {
			return err
		}
	}
	return nil
}

// markChanged applies a batch of deferred state changes. A nil entry stands
// for a plain render request. It reports whether a pass is needed.
func (a *App) markChanged(batch []vdom.Component) bool {
	need := false
	for _, c := range batch {
		if c == nil || a.markStateChanged(c) {
			need = true
		}
	}
	return need
}

func (a *App) pass(ctx context.Context) (err error) {
	start := time.Now()
	ctx = a.observer.BeginRender(ctx)

	var stats RenderStats
	a.rendering = true
	defer func() {
		a.rendering = false
		stats.Duration = time.Since(start)
		stats.Deferred = len(a.deferred)
		a.observer.EndRender(ctx, stats, err)
	}()

	candidate, err := shadow.NewTree(a.config.Render())
	if err != nil {
		return err
	}
	candidate.Handle = a.container

	if err := a.reconciler.Reconcile(a.tree, candidate); err != nil {
		// Drop the deletion tags left on the committed tree.
		if a.tree != nil {
			shadow.Collect(a.tree)
		}
		return err
	}

	var deletions []shadow.Record
	if a.tree != nil {
		deletions = shadow.Collect(a.tree)
	}
	records := shadow.Collect(candidate)

	a.logger.Debug("render pass",
		"deletions", len(deletions),
		"records", len(records))

	stats.Stats, err = a.committer.Commit(deletions, records)
	shadow.Clean(candidate)
	a.tree = candidate
	return err
}

// =============================================================================
// State Changes
// =============================================================================

// NotifyStateChange marks c's node as changed and re-renders. Components
// that are not part of the tree are skipped with a warning. During a pass
// the change is deferred to a follow-up pass.
func (a *App) NotifyStateChange(c vdom.Component) {
	if a.rendering {
		a.logger.Warn("state change during render deferred to a follow-up pass")
		a.deferred = append(a.deferred, c)
		return
	}
	if !a.markStateChanged(c) {
		return
	}
	if err := a.Render(context.Background()); err != nil {
		a.logger.Error("render after state change failed", "error", err)
	}
}

func (a *App) markStateChanged(c vdom.Component) bool {
	n := shadow.FindByComponent(a.tree, c)
	if n == nil {
		a.logger.Warn("component not found; state change skipped")
		return false
	}
	n.State = vdom.StateOf(c)
	n.StateChanged = true
	return true
}
