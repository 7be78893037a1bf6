// Package remote provides the client for the training control plane's
// custom job API.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"trainctl/pkg/api"

	"golang.org/x/time/rate"
)

// JobService is the consumed surface of the control plane. The production
// implementation is Client; tests substitute scripted fakes.
type JobService interface {
	// CreateJob submits a new custom job under the given parent resource
	// ("projects/<project>/locations/<region>") and returns the created
	// resource, including its control-plane-assigned name and initial state.
	// This call is not idempotent: one invocation creates one job.
	CreateJob(ctx context.Context, parent string, job *api.CustomJob) (*api.CustomJob, error)

	// GetJob reads a point-in-time snapshot of the job identified by its
	// full resource name. Reads are idempotent and safe to retry.
	GetJob(ctx context.Context, name string) (*api.CustomJob, error)

	// CancelJob requests cancellation of the job identified by its full
	// resource name. It returns once the control plane acknowledges the
	// request; it does not wait for the job to stop.
	CancelJob(ctx context.Context, name string) error

	// Close releases the session. Safe to call once per acquired service.
	Close() error
}

// APIError represents an error response from the control plane.
type APIError struct {
	StatusCode int
	Status     string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (%d %s): %s", e.StatusCode, e.Status, e.Message)
}

// NotFound reports whether the error identifies a job the control plane does
// not know about. The status code is authoritative; the message check covers
// control planes that surface deletion races as a generic failure with
// "does not exist" in the text.
func (e *APIError) NotFound() bool {
	if e.StatusCode == http.StatusNotFound || e.Status == "NOT_FOUND" {
		return true
	}
	return strings.Contains(e.Message, "does not exist")
}

// IsNotFound reports whether err is an APIError identifying a missing job.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.NotFound()
}

// ClientOptions configures a Client.
type ClientOptions struct {
	// Endpoint is the regional base URL, e.g.
	// "https://us-east1-aiplatform.googleapis.com".
	Endpoint string

	// Token is the bearer token presented on every call.
	Token string

	// RequestTimeout bounds each individual HTTP call (default: 30s).
	RequestTimeout time.Duration

	// RateLimit caps outgoing API calls per second (default: 5).
	RateLimit rate.Limit
}

// Client is the HTTP implementation of JobService.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient creates a new client for the given regional endpoint.
func NewClient(opts ClientOptions) *Client {
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 30 * time.Second
	}

	if opts.RateLimit <= 0 {
		opts.RateLimit = 5
	}

	// Ensure no trailing slash
	if len(opts.Endpoint) > 0 && opts.Endpoint[len(opts.Endpoint)-1] == '/' {
		opts.Endpoint = opts.Endpoint[:len(opts.Endpoint)-1]
	}

	return &Client{
		baseURL: opts.Endpoint,
		token:   opts.Token,
		httpClient: &http.Client{
			Timeout: opts.RequestTimeout,
		},
		limiter: rate.NewLimiter(opts.RateLimit, 1),
	}
}

// CreateJob sends POST /v1/{parent}/customJobs to submit a new job.
func (c *Client) CreateJob(ctx context.Context, parent string, job *api.CustomJob) (*api.CustomJob, error) {
	url := fmt.Sprintf("%s/v1/%s/customJobs", c.baseURL, parent)

	var created api.CustomJob
	if err := c.do(ctx, http.MethodPost, url, job, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// GetJob sends GET /v1/{name} to read the job's current state.
func (c *Client) GetJob(ctx context.Context, name string) (*api.CustomJob, error) {
	url := fmt.Sprintf("%s/v1/%s", c.baseURL, name)

	var job api.CustomJob
	if err := c.do(ctx, http.MethodGet, url, nil, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// CancelJob sends POST /v1/{name}:cancel to request cancellation.
func (c *Client) CancelJob(ctx context.Context, name string) error {
	url := fmt.Sprintf("%s/v1/%s:cancel", c.baseURL, name)
	return c.do(ctx, http.MethodPost, url, struct{}{}, nil)
}

// Close releases idle connections held by the session.
func (c *Client) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}

// do performs one rate-limited API call, decoding the response into out when
// out is non-nil.
func (c *Client) do(ctx context.Context, method, url string, in, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	var body io.Reader
	if in != nil {
		bodyBytes, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Add("Authorization", fmt.Sprintf("Bearer %s", c.token))
	if in != nil {
		req.Header.Add("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return parseAPIError(resp.StatusCode, respBody)
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}

	return nil
}

// parseAPIError extracts the structured error envelope when present, falling
// back to the raw body.
func parseAPIError(statusCode int, body []byte) *APIError {
	var envelope api.ErrorResponse
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error.Message != "" {
		return &APIError{
			StatusCode: statusCode,
			Status:     envelope.Error.Status,
			Message:    envelope.Error.Message,
		}
	}
	return &APIError{
		StatusCode: statusCode,
		Message:    strings.TrimSpace(string(body)),
	}
}
