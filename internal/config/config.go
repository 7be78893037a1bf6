// Package config handles environment variable loading for poll settings and
// observability endpoints.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds environment-provided runtime settings. Identity and targeting
// (project, region, token) come from CLI flags and viper bindings instead.
type Config struct {
	// PollInterval between status reads while watching a job
	PollInterval time.Duration

	// MaximumRunTime bounds how long a job runs and is watched
	MaximumRunTime time.Duration

	// MetricsAddr, when set, serves Prometheus metrics during long runs
	// (e.g., ":9464")
	MetricsAddr string

	// OTLPEndpoint, when set, exports traces to the given collector
	OTLPEndpoint string

	// Debug lowers the log level to include per-poll noise
	Debug bool
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	pollInterval := 5 * time.Second
	if s := os.Getenv("TRAINCTL_POLL_INTERVAL"); s != "" {
		pi, err := time.ParseDuration(s)
		if err != nil {
			return nil, fmt.Errorf("invalid TRAINCTL_POLL_INTERVAL: %w", err)
		}
		pollInterval = pi
	}

	maxRunTime := 7 * 24 * time.Hour
	if s := os.Getenv("TRAINCTL_MAX_RUN_TIME"); s != "" {
		d, err := time.ParseDuration(s)
		if err != nil {
			return nil, fmt.Errorf("invalid TRAINCTL_MAX_RUN_TIME: %w", err)
		}
		maxRunTime = d
	}

	debug := false
	if s := os.Getenv("TRAINCTL_DEBUG"); s != "" {
		b, err := strconv.ParseBool(s)
		if err != nil {
			return nil, fmt.Errorf("invalid TRAINCTL_DEBUG: %w", err)
		}
		debug = b
	}

	return &Config{
		PollInterval:   pollInterval,
		MaximumRunTime: maxRunTime,
		MetricsAddr:    os.Getenv("TRAINCTL_METRICS_ADDR"),
		OTLPEndpoint:   os.Getenv("TRAINCTL_OTLP_ENDPOINT"),
		Debug:          debug,
	}, nil
}
