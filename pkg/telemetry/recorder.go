package telemetry

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	cordova "github.com/maderarasto/cordova-jsx"
)

const defaultTracerName = "cordova"

// Config configures a Recorder.
type Config struct {
	// Namespace is the metrics namespace (default: "cordova").
	Namespace string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for render duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer

	// TracerName is the name of the tracer (default: "cordova").
	TracerName string
}

// Option configures a Recorder.
type Option func(*Config)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) Option {
	return func(c *Config) {
		c.Namespace = namespace
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) Option {
	return func(c *Config) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) Option {
	return func(c *Config) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) Option {
	return func(c *Config) {
		c.Registry = registry
	}
}

// WithTracerName sets the tracer name.
func WithTracerName(name string) Option {
	return func(c *Config) {
		c.TracerName = name
	}
}

func defaultConfig() Config {
	return Config{
		Namespace:  "cordova",
		Buckets:    prometheus.DefBuckets,
		Registry:   prometheus.DefaultRegisterer,
		TracerName: defaultTracerName,
	}
}

// Recorder implements cordova.Observer.
type Recorder struct {
	passes   *prometheus.CounterVec
	duration prometheus.Histogram
	effects  *prometheus.CounterVec
	deferred prometheus.Counter
	hooks    *prometheus.CounterVec
	tracer   trace.Tracer
}

var _ cordova.Observer = (*Recorder)(nil)

// NewRecorder registers the metrics and resolves the tracer.
func NewRecorder(opts ...Option) *Recorder {
	config := defaultConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Recorder{
		passes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "render_passes_total",
			Help:        "Total number of render passes",
			ConstLabels: config.ConstLabels,
		}, []string{"status"}),

		duration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Name:        "render_duration_seconds",
			Help:        "Render pass duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}),

		effects: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "effects_total",
			Help:        "Total number of committed effects",
			ConstLabels: config.ConstLabels,
		}, []string{"effect"}),

		deferred: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "deferred_state_changes_total",
			Help:        "State changes requested during a pass and applied by a follow-up pass",
			ConstLabels: config.ConstLabels,
		}),

		hooks: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "lifecycle_hooks_total",
			Help:        "Total number of lifecycle hooks invoked",
			ConstLabels: config.ConstLabels,
		}, []string{"hook"}),

		tracer: otel.Tracer(config.TracerName),
	}
}

// BeginRender starts the span of a render pass.
func (r *Recorder) BeginRender(ctx context.Context) context.Context {
	ctx, _ = r.tracer.Start(ctx, "cordova.render",
		trace.WithSpanKind(trace.SpanKindInternal))
	return ctx
}

// EndRender records the pass and ends its span.
func (r *Recorder) EndRender(ctx context.Context, s cordova.RenderStats, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	r.passes.WithLabelValues(status).Inc()
	r.duration.Observe(s.Duration.Seconds())
	r.effects.WithLabelValues("placement").Add(float64(s.Placed))
	r.effects.WithLabelValues("update").Add(float64(s.Updated))
	r.effects.WithLabelValues("move").Add(float64(s.Moved))
	r.effects.WithLabelValues("deletion").Add(float64(s.Deleted))
	r.deferred.Add(float64(s.Deferred))

	span := trace.SpanFromContext(ctx)
	span.SetAttributes(
		attribute.Int("cordova.placed", s.Placed),
		attribute.Int("cordova.updated", s.Updated),
		attribute.Int("cordova.moved", s.Moved),
		attribute.Int("cordova.deleted", s.Deleted),
		attribute.Int("cordova.deferred", s.Deferred),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// Hook counts a lifecycle hook.
func (r *Recorder) Hook(component, hook string) {
	r.hooks.WithLabelValues(hook).Inc()
}
