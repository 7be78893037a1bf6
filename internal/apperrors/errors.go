// Package apperrors provides the structured error taxonomy for job lifecycle
// failures, classified via errors.Is().
package apperrors

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors for classification via errors.Is().
var (
	// ErrConfiguration marks failures detectable locally, before any network
	// call (bad image reference, missing service account).
	ErrConfiguration = errors.New("configuration error")

	// ErrSubmission marks a failed create call. Submission is not idempotent,
	// so callers must not retry blindly.
	ErrSubmission = errors.New("submission error")

	// ErrWatchTimeout marks a watch loop that exceeded its local deadline.
	// The remote job may still be running.
	ErrWatchTimeout = errors.New("watch timeout")

	// ErrRemoteExecution marks a job that reached a terminal state carrying
	// an error message from the control plane.
	ErrRemoteExecution = errors.New("remote execution error")

	// ErrJobNotFound marks a cancellation that targeted a job the control
	// plane no longer knows about.
	ErrJobNotFound = errors.New("job not found")

	// ErrCancellation marks any other cancellation failure.
	ErrCancellation = errors.New("cancellation error")
)

// Error provides a structured error with context.
type Error struct {
	Sentinel error  // Wrapped sentinel for errors.Is() classification
	Message  string // Human-readable message
	Field    string // For configuration errors (e.g., "image", "service_account")
	Job      string // Job display name or resource name, when known
	Op       string // Operation that failed (e.g., "remote.CreateJob")
	Cause    error  // Underlying error
}

// Error returns the human-readable error message.
func (e *Error) Error() string {
	return e.Message
}

// Unwrap returns the sentinel error for errors.Is() classification.
func (e *Error) Unwrap() error {
	return e.Sentinel
}

// Configuration creates a configuration error for a specific field.
func Configuration(field, message string) error {
	return &Error{
		Sentinel: ErrConfiguration,
		Message:  message,
		Field:    field,
	}
}

// Submission creates a submission error wrapping the failed remote call.
func Submission(op string, cause error) error {
	return &Error{
		Sentinel: ErrSubmission,
		Message:  fmt.Sprintf("%s: %v", op, cause),
		Op:       op,
		Cause:    cause,
	}
}

// WatchTimeout creates a timeout error naming the job and the states it was
// being watched for.
func WatchTimeout(job string, elapsed time.Duration, states string) error {
	return &Error{
		Sentinel: ErrWatchTimeout,
		Message: fmt.Sprintf(
			"timed out after %s while watching job %s for states %s", elapsed, job, states),
		Job: job,
	}
}

// RemoteExecution creates an error for a job that finished with an error
// message attached by the control plane.
func RemoteExecution(job, message string) error {
	return &Error{
		Sentinel: ErrRemoteExecution,
		Message:  fmt.Sprintf("job %s: %s", job, message),
		Job:      job,
	}
}

// JobNotFound creates a not-found error for a cancellation target.
func JobNotFound(job string) error {
	return &Error{
		Sentinel: ErrJobNotFound,
		Message:  fmt.Sprintf("cannot cancel job; the job name %q could not be found", job),
		Job:      job,
	}
}

// Cancellation creates a cancellation error wrapping an underlying cause.
func Cancellation(job string, cause error) error {
	return &Error{
		Sentinel: ErrCancellation,
		Message:  fmt.Sprintf("cancel job %s: %v", job, cause),
		Job:      job,
		Cause:    cause,
	}
}
