package instrumentation

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric attribute keys
const (
	attrMethod = "method"
	attrStatus = "status"
)

// Metrics provides methods for recording dispatcher metrics.
// A zero Metrics (or a nil *Metrics) records nothing.
type Metrics struct {
	requestsTotal   metric.Int64Counter
	requestDuration metric.Float64Histogram
	activeStreams   metric.Int64UpDownCounter
	streamLines     metric.Int64Counter
}

// NewMetrics creates a new Metrics instance with all metrics initialized.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}

	var err error

	m.requestsTotal, err = meter.Int64Counter(
		"kube_dispatch_requests_total",
		metric.WithDescription("Total number of Kubernetes API requests dispatched"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create kube_dispatch_requests_total counter: %w", err)
	}

	m.requestDuration, err = meter.Float64Histogram(
		"kube_dispatch_request_duration_seconds",
		metric.WithDescription("Kubernetes API request duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.001, 0.01, 0.1, 0.5, 1.0, 2.5, 5.0, 10.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create kube_dispatch_request_duration_seconds histogram: %w", err)
	}

	m.activeStreams, err = meter.Int64UpDownCounter(
		"kube_dispatch_active_streams",
		metric.WithDescription("Number of open watch streams"),
		metric.WithUnit("{stream}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create kube_dispatch_active_streams gauge: %w", err)
	}

	m.streamLines, err = meter.Int64Counter(
		"kube_dispatch_stream_lines_total",
		metric.WithDescription("Total number of lines delivered by watch streams"),
		metric.WithUnit("{line}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create kube_dispatch_stream_lines_total counter: %w", err)
	}

	return m, nil
}

// RecordRequest records one dispatched request. A statusCode of 0 means no
// response was received and is recorded with status "error".
func (m *Metrics) RecordRequest(ctx context.Context, method string, statusCode int, duration time.Duration) {
	if m == nil || m.requestsTotal == nil || m.requestDuration == nil {
		return // Instrumentation not initialized
	}

	status := StatusError
	if statusCode > 0 {
		status = strconv.Itoa(statusCode)
	}

	attrs := metric.WithAttributes(
		attribute.String(attrMethod, method),
		attribute.String(attrStatus, status),
	)

	m.requestsTotal.Add(ctx, 1, attrs)
	m.requestDuration.Record(ctx, duration.Seconds(), attrs)
}

// IncrementActiveStreams increments the open streams gauge.
func (m *Metrics) IncrementActiveStreams(ctx context.Context) {
	if m == nil || m.activeStreams == nil {
		return // Instrumentation not initialized
	}

	m.activeStreams.Add(ctx, 1)
}

// DecrementActiveStreams decrements the open streams gauge.
func (m *Metrics) DecrementActiveStreams(ctx context.Context) {
	if m == nil || m.activeStreams == nil {
		return // Instrumentation not initialized
	}

	m.activeStreams.Add(ctx, -1)
}

// RecordStreamLines adds n delivered lines.
func (m *Metrics) RecordStreamLines(ctx context.Context, n int) {
	if m == nil || m.streamLines == nil || n <= 0 {
		return
	}

	m.streamLines.Add(ctx, int64(n))
}
