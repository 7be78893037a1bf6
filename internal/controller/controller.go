package controller

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"trainctl/internal/apperrors"
	"trainctl/internal/credentials"
	"trainctl/internal/logger"
	"trainctl/internal/observability"
	"trainctl/internal/remote"
	"trainctl/pkg/api"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Controller manages the lifecycle of one custom training job. Instances are
// independent; running many jobs means running many controllers.
type Controller struct {
	cfg     Config
	creds   credentials.Provider
	logger  *slog.Logger
	metrics *observability.Metrics
}

// Result reports the outcome of a completed run.
type Result struct {
	// Identifier is the job's display name.
	Identifier string

	// StatusCode is 0 when the job succeeded and 1 otherwise.
	StatusCode int
}

// Option customizes a Controller.
type Option func(*Controller)

// WithMetrics attaches controller metrics. Without it the controller runs
// unmetered.
func WithMetrics(m *observability.Metrics) Option {
	return func(c *Controller) {
		c.metrics = m
	}
}

// New creates a controller for one job described by cfg.
func New(cfg Config, creds credentials.Provider, log *slog.Logger, opts ...Option) *Controller {
	if log == nil {
		log = logger.New()
	}

	c := &Controller{
		cfg:    cfg.withDefaults(),
		creds:  creds,
		logger: log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Preview renders the would-be submission payload as indented JSON without
// contacting the control plane.
func (c *Controller) Preview() (string, error) {
	spec, err := c.buildJobSpec()
	if err != nil {
		return "", err
	}

	displayName, err := c.jobName()
	if err != nil {
		return "", err
	}

	job := api.CustomJob{DisplayName: displayName, JobSpec: *spec}
	out, err := json.MarshalIndent(job, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to render job: %w", err)
	}
	return string(out), nil
}

// Run submits the configured job and blocks until it reaches a terminal state
// or the maximum run time elapses. started, if non-nil, is invoked exactly
// once with the job's display name immediately after a successful submission,
// before the watch begins.
//
// The local deadline only stops the watch; it does not cancel the remote job.
// Callers that want the job stopped must call Kill with the job's resource
// name.
func (c *Controller) Run(ctx context.Context, started func(displayName string)) (*Result, error) {
	tracer := otel.Tracer("trainctl/controller")
	ctx, span := tracer.Start(ctx, "run_job",
		trace.WithAttributes(
			attribute.String("job.region", c.cfg.Region),
			attribute.String("job.image", c.cfg.Image),
		),
		trace.WithSpanKind(trace.SpanKindClient),
	)
	defer span.End()

	spec, err := c.buildJobSpec()
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	displayName, err := c.jobName()
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	ctx = logger.WithJobName(ctx, displayName)
	log := logger.FromContext(ctx, c.logger)
	span.SetAttributes(attribute.String("job.display_name", displayName))

	svc, err := c.creds.JobService(ctx, c.cfg.Region)
	if err != nil {
		span.RecordError(err)
		return nil, apperrors.Submission("open job service session", err)
	}
	defer svc.Close()

	log.Info("submitting job",
		"command", strings.Join(c.cfg.Command, " "),
		"region", c.cfg.Region,
		"image", c.cfg.Image,
	)

	parent := fmt.Sprintf("projects/%s/locations/%s", c.creds.Project(), c.cfg.Region)
	created, err := svc.CreateJob(ctx, parent, &api.CustomJob{DisplayName: displayName, JobSpec: *spec})
	if err != nil {
		span.RecordError(err)
		c.metrics.RecordSubmissionError(ctx, c.cfg.Region)
		return nil, apperrors.Submission("create job", err)
	}
	c.metrics.RecordSubmitted(ctx, c.cfg.Region, c.cfg.Image)
	log.Info("job submitted", "name", created.Name)

	if started != nil {
		started(displayName)
	}

	watchStart := time.Now()
	final, err := c.watchJob(ctx, svc, created.Name, created.State, c.cfg.MaximumRunTime)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	c.metrics.RecordRunDuration(ctx, time.Since(watchStart).Seconds(), string(final.State))
	span.SetAttributes(attribute.String("job.final_state", string(final.State)))

	if final.Error != nil && final.Error.Message != "" {
		err := apperrors.RemoteExecution(displayName, final.Error.Message)
		span.RecordError(err)
		return nil, err
	}

	statusCode := 1
	if final.State == api.JobStateSucceeded {
		statusCode = 0
	}
	return &Result{Identifier: displayName, StatusCode: statusCode}, nil
}

// Kill requests cancellation of a previously submitted job, identified by its
// full resource name. It returns once the control plane acknowledges the
// request; grace is the shutdown period granted by the remote scheduler and
// is not awaited here.
//
// Kill is safe to call while another execution context is blocked in Run's
// watch loop for the same job: it opens its own session and touches no
// controller state.
func (c *Controller) Kill(ctx context.Context, identifier string, grace time.Duration) error {
	tracer := otel.Tracer("trainctl/controller")
	ctx, span := tracer.Start(ctx, "kill_job",
		trace.WithAttributes(attribute.String("job.name", identifier)),
		trace.WithSpanKind(trace.SpanKindClient),
	)
	defer span.End()

	svc, err := c.creds.JobService(ctx, c.cfg.Region)
	if err != nil {
		span.RecordError(err)
		return apperrors.Cancellation(identifier, err)
	}
	defer svc.Close()

	if err := svc.CancelJob(ctx, identifier); err != nil {
		span.RecordError(err)
		if remote.IsNotFound(err) {
			return apperrors.JobNotFound(identifier)
		}
		return apperrors.Cancellation(identifier, err)
	}

	c.metrics.RecordCancellation(ctx)
	c.logger.Info("requested job cancellation", "name", identifier, "grace", grace.String())
	return nil
}
