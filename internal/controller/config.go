// Package controller drives one custom training job through its remote
// lifecycle: build the submission payload, submit it, watch the job until it
// reaches a terminal state, and cancel it on request.
package controller

import "time"

// Config describes one training job: where it runs, what it runs, and how it
// is watched. A Config is supplied by the caller and is not mutated by the
// controller.
type Config struct {
	// Region the job runs in; also selects the regional endpoint.
	Region string

	// Image is the container image reference. It must carry at least
	// <host>/<project>/<repo> path segments; the third segment seeds the
	// job's display name.
	Image string

	// Command and Args for the container.
	Command []string
	Args    []string

	// Env entries passed to the container. These override the base
	// environment on key collision.
	Env map[string]string

	// Machine shape.
	MachineType      string
	AcceleratorType  string
	AcceleratorCount int

	// Boot disk shape.
	BootDiskType   string
	BootDiskSizeGB int

	// MaximumRunTime bounds both the remote scheduler's enforcement and the
	// local watch deadline.
	MaximumRunTime time.Duration

	// Network peering and reserved IP ranges, when the job must run inside
	// a specific VPC.
	Network          string
	ReservedIPRanges []string

	// ServiceAccount the job runs as. Takes precedence over the account
	// embedded in the credentials; required if the credentials carry none.
	ServiceAccount string

	// PollInterval between status reads while watching.
	PollInterval time.Duration
}

// withDefaults fills unset fields with the standard defaults.
func (c Config) withDefaults() Config {
	if c.MachineType == "" {
		c.MachineType = "n1-standard-4"
	}
	if c.BootDiskType == "" {
		c.BootDiskType = "pd-ssd"
	}
	if c.BootDiskSizeGB <= 0 {
		c.BootDiskSizeGB = 100
	}
	if c.MaximumRunTime <= 0 {
		c.MaximumRunTime = 7 * 24 * time.Hour
	}
	if c.PollInterval <= 0 {
		c.PollInterval = 5 * time.Second
	}
	return c
}
