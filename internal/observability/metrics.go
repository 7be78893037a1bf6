// Package observability provides OpenTelemetry instrumentation for tracing
// and metrics.
package observability

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// Metrics holds the controller's instruments: submissions, watch-loop
// activity and cancellations.
type Metrics struct {
	meter metric.Meter

	JobsSubmitted    metric.Int64Counter
	SubmissionErrors metric.Int64Counter
	StateTransitions metric.Int64Counter
	PollFailures     metric.Int64Counter
	WatchTimeouts    metric.Int64Counter
	Cancellations    metric.Int64Counter
	RunDuration      metric.Float64Histogram
}

// NewMetrics creates and registers all metrics with a Prometheus exporter.
// It returns the HTTP handler for the /metrics endpoint; the shutdown
// function should be called on application exit for graceful cleanup.
func NewMetrics() (*Metrics, http.Handler, func(context.Context) error, error) {
	exporter, err := prometheus.New()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to create prometheus exporter: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter))
	otel.SetMeterProvider(provider)

	meter := provider.Meter("trainctl")
	m := &Metrics{meter: meter}

	m.JobsSubmitted, err = meter.Int64Counter(
		"jobs_submitted_total",
		metric.WithDescription("Total number of jobs submitted to the control plane"),
	)
	if err != nil {
		return nil, nil, nil, err
	}

	m.SubmissionErrors, err = meter.Int64Counter(
		"job_submission_errors_total",
		metric.WithDescription("Total number of failed job submissions"),
	)
	if err != nil {
		return nil, nil, nil, err
	}

	m.StateTransitions, err = meter.Int64Counter(
		"job_state_transitions_total",
		metric.WithDescription("Total number of observed job state transitions"),
	)
	if err != nil {
		return nil, nil, nil, err
	}

	m.PollFailures, err = meter.Int64Counter(
		"job_poll_failures_total",
		metric.WithDescription("Total number of transient status poll failures"),
	)
	if err != nil {
		return nil, nil, nil, err
	}

	m.WatchTimeouts, err = meter.Int64Counter(
		"job_watch_timeouts_total",
		metric.WithDescription("Total number of watch loops that exceeded their deadline"),
	)
	if err != nil {
		return nil, nil, nil, err
	}

	m.Cancellations, err = meter.Int64Counter(
		"job_cancellations_total",
		metric.WithDescription("Total number of cancellation requests issued"),
	)
	if err != nil {
		return nil, nil, nil, err
	}

	m.RunDuration, err = meter.Float64Histogram(
		"job_run_duration_seconds",
		metric.WithDescription("Submit-to-terminal-state duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(30, 60, 300, 900, 1800, 3600, 14400, 43200, 86400, 604800),
	)
	if err != nil {
		return nil, nil, nil, err
	}

	return m, promhttp.Handler(), provider.Shutdown, nil
}

// RecordSubmitted records a successful job submission.
func (m *Metrics) RecordSubmitted(ctx context.Context, region, image string) {
	if m == nil {
		return
	}
	m.JobsSubmitted.Add(ctx, 1, metric.WithAttributes(regionAttr(region), imageAttr(image)))
}

// RecordSubmissionError records a failed job submission.
func (m *Metrics) RecordSubmissionError(ctx context.Context, region string) {
	if m == nil {
		return
	}
	m.SubmissionErrors.Add(ctx, 1, metric.WithAttributes(regionAttr(region)))
}

// RecordTransition records one observed state transition.
func (m *Metrics) RecordTransition(ctx context.Context, state string) {
	if m == nil {
		return
	}
	m.StateTransitions.Add(ctx, 1, metric.WithAttributes(stateAttr(state)))
}

// RecordPollFailure records a transient status poll failure.
func (m *Metrics) RecordPollFailure(ctx context.Context) {
	if m == nil {
		return
	}
	m.PollFailures.Add(ctx, 1)
}

// RecordWatchTimeout records a watch loop abandoned at its deadline.
func (m *Metrics) RecordWatchTimeout(ctx context.Context) {
	if m == nil {
		return
	}
	m.WatchTimeouts.Add(ctx, 1)
}

// RecordCancellation records a cancellation request.
func (m *Metrics) RecordCancellation(ctx context.Context) {
	if m == nil {
		return
	}
	m.Cancellations.Add(ctx, 1)
}

// RecordRunDuration records the wall-clock duration of a completed run.
func (m *Metrics) RecordRunDuration(ctx context.Context, seconds float64, finalState string) {
	if m == nil {
		return
	}
	m.RunDuration.Record(ctx, seconds, metric.WithAttributes(stateAttr(finalState)))
}
