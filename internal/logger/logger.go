// Package logger provides structured logging setup using slog.
package logger

import (
	"context"
	"log/slog"
	"os"
)

// jobNameKey is the context key for the job display name.
type jobNameKey struct{}

// New creates a new structured JSON logger.
func New() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}

// NewWithLevel creates a structured JSON logger with the given minimum level.
// Transient poll noise is logged at debug, so long watches usually run at info.
func NewWithLevel(level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// WithJobName returns a new context carrying the job's display name.
func WithJobName(ctx context.Context, jobName string) context.Context {
	return context.WithValue(ctx, jobNameKey{}, jobName)
}

// JobNameFromContext extracts the job display name from the context.
func JobNameFromContext(ctx context.Context) string {
	if v := ctx.Value(jobNameKey{}); v != nil {
		return v.(string)
	}
	return ""
}

// FromContext returns a logger with context fields (job name, etc.) attached.
func FromContext(ctx context.Context, base *slog.Logger) *slog.Logger {
	if jobName := JobNameFromContext(ctx); jobName != "" {
		return base.With("job_name", jobName)
	}
	return base
}
