// Package instrumentation provides OpenTelemetry instrumentation for
// kube-dispatch.
//
// This package enables observability through:
//   - OpenTelemetry metrics for dispatched requests and watch streams
//   - Distributed tracing with one client span per dispatched request
//   - Prometheus metrics export via a /metrics endpoint
//   - OTLP export support for modern observability platforms
//
// # Metrics
//
//   - kube_dispatch_requests_total: Counter of requests by method and status
//   - kube_dispatch_request_duration_seconds: Histogram of request durations
//   - kube_dispatch_active_streams: Gauge of open watch streams
//   - kube_dispatch_stream_lines_total: Counter of lines delivered by streams
//
// The status label is the numeric HTTP status code, or "error" when no
// response was received. Paths are deliberately not used as metric labels;
// they are recorded on spans instead.
//
// # Configuration
//
// Instrumentation can be configured via environment variables:
//   - INSTRUMENTATION_ENABLED: Enable/disable instrumentation (default: false)
//   - METRICS_EXPORTER: Metrics exporter type (prometheus, otlp, stdout, default: prometheus)
//   - TRACING_EXPORTER: Tracing exporter type (otlp, stdout, none, default: none)
//   - OTEL_EXPORTER_OTLP_ENDPOINT: OTLP endpoint for traces/metrics
//   - OTEL_EXPORTER_OTLP_INSECURE: Use plain HTTP for OTLP export
//   - OTEL_TRACES_SAMPLER_ARG: Sampling rate (0.0 to 1.0, default: 0.1)
//   - OTEL_SERVICE_NAME: Service name (default: kube-dispatch)
//
// # Example Usage
//
//	provider, err := instrumentation.NewProvider(ctx, instrumentation.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	defer provider.Shutdown(ctx)
//
//	dispatcher := k8s.NewDispatcher(k8s.WithMetrics(provider.Metrics()))
package instrumentation
