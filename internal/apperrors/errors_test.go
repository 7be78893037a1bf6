package apperrors

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestConfiguration_Classification(t *testing.T) {
	err := Configuration("image", "image reference must contain at least three path segments")

	if !errors.Is(err, ErrConfiguration) {
		t.Error("expected errors.Is(err, ErrConfiguration) to be true")
	}
	if errors.Is(err, ErrSubmission) {
		t.Error("configuration error must not classify as submission error")
	}

	var appErr *Error
	if !errors.As(err, &appErr) {
		t.Fatal("expected errors.As to extract *Error")
	}
	if appErr.Field != "image" {
		t.Errorf("Field = %q, want %q", appErr.Field, "image")
	}
}

func TestSubmission_WrapsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Submission("remote.CreateJob", cause)

	if !errors.Is(err, ErrSubmission) {
		t.Error("expected errors.Is(err, ErrSubmission) to be true")
	}

	var appErr *Error
	if !errors.As(err, &appErr) {
		t.Fatal("expected errors.As to extract *Error")
	}
	if appErr.Cause != cause {
		t.Error("expected Cause to hold the underlying error")
	}
	if !strings.Contains(err.Error(), "connection refused") {
		t.Errorf("message should contain cause, got %q", err.Error())
	}
}

func TestWatchTimeout_Message(t *testing.T) {
	err := WatchTimeout("trainer-abc123", 10*time.Second, "[SUCCEEDED FAILED CANCELLED EXPIRED]")

	if !errors.Is(err, ErrWatchTimeout) {
		t.Error("expected errors.Is(err, ErrWatchTimeout) to be true")
	}
	msg := err.Error()
	if !strings.Contains(msg, "trainer-abc123") {
		t.Errorf("message should name the job, got %q", msg)
	}
	if !strings.Contains(msg, "SUCCEEDED") {
		t.Errorf("message should name the awaited states, got %q", msg)
	}
}

func TestJobNotFound_DistinctFromCancellation(t *testing.T) {
	notFound := JobNotFound("projects/p/locations/l/customJobs/123")
	other := Cancellation("projects/p/locations/l/customJobs/123", errors.New("permission denied"))

	if !errors.Is(notFound, ErrJobNotFound) {
		t.Error("expected not-found classification")
	}
	if errors.Is(notFound, ErrCancellation) {
		t.Error("not-found must not classify as generic cancellation error")
	}
	if !errors.Is(other, ErrCancellation) {
		t.Error("expected cancellation classification")
	}
	if errors.Is(other, ErrJobNotFound) {
		t.Error("generic cancellation error must not classify as not-found")
	}
}

func TestRemoteExecution_CarriesMessage(t *testing.T) {
	err := RemoteExecution("trainer-abc123", "replica exited with code 137")

	if !errors.Is(err, ErrRemoteExecution) {
		t.Error("expected errors.Is(err, ErrRemoteExecution) to be true")
	}
	if !strings.Contains(err.Error(), "replica exited with code 137") {
		t.Errorf("message should carry the remote error, got %q", err.Error())
	}
}
