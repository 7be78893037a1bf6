// Package credentials resolves the identity jobs run under and opens scoped
// sessions against regional control-plane endpoints.
package credentials

import (
	"context"
	"fmt"

	"trainctl/internal/remote"
)

// Provider exposes the submitting identity and opens job service sessions.
// Sessions are scoped: callers acquire one per run or kill invocation and
// close it on every exit path.
type Provider interface {
	// Project returns the project jobs are submitted under.
	Project() string

	// ServiceAccountEmail returns the default run-as identity, or empty when
	// the credentials carry none.
	ServiceAccountEmail() string

	// JobService opens a session against the control plane for the given
	// region.
	JobService(ctx context.Context, region string) (remote.JobService, error)
}

// Credentials is the static token-based Provider implementation.
type Credentials struct {
	project        string
	serviceAccount string
	token          string
	endpoint       string
}

// Option customizes Credentials.
type Option func(*Credentials)

// WithEndpoint overrides the regional endpoint derivation, e.g. for
// self-hosted control planes or tests.
func WithEndpoint(endpoint string) Option {
	return func(c *Credentials) {
		c.endpoint = endpoint
	}
}

// New creates Credentials for the given project. serviceAccount may be empty
// when every job sets its own run-as account explicitly.
func New(project, serviceAccount, token string, opts ...Option) (*Credentials, error) {
	if project == "" {
		return nil, fmt.Errorf("project is required")
	}
	if token == "" {
		return nil, fmt.Errorf("access token is required")
	}

	c := &Credentials{
		project:        project,
		serviceAccount: serviceAccount,
		token:          token,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Project returns the project jobs are submitted under.
func (c *Credentials) Project() string {
	return c.project
}

// ServiceAccountEmail returns the default run-as identity, or empty.
func (c *Credentials) ServiceAccountEmail() string {
	return c.serviceAccount
}

// JobService opens a session against the regional control-plane endpoint.
func (c *Credentials) JobService(ctx context.Context, region string) (remote.JobService, error) {
	if region == "" {
		return nil, fmt.Errorf("region is required")
	}

	endpoint := c.endpoint
	if endpoint == "" {
		endpoint = fmt.Sprintf("https://%s-aiplatform.googleapis.com", region)
	}

	return remote.NewClient(remote.ClientOptions{
		Endpoint: endpoint,
		Token:    c.token,
	}), nil
}
