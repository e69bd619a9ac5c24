// Package telemetry records render passes and lifecycle hooks as
// Prometheus metrics and OpenTelemetry spans.
//
// Metrics collected (with the default "cordova" namespace):
//   - cordova_render_passes_total: Counter of passes by status
//   - cordova_render_duration_seconds: Histogram of pass duration
//   - cordova_effects_total: Counter of committed effects by kind
//   - cordova_deferred_state_changes_total: Counter of state changes deferred to a follow-up pass
//   - cordova_lifecycle_hooks_total: Counter of hooks by hook name
//
// The tracer uses the global OpenTelemetry tracer provider; configure it
// with otel.SetTracerProvider before creating a Recorder.
package telemetry
