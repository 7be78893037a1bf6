package config

import (
	"testing"
	"time"
)

func TestLoad_DefaultValues(t *testing.T) {
	t.Setenv("TRAINCTL_POLL_INTERVAL", "")
	t.Setenv("TRAINCTL_MAX_RUN_TIME", "")
	t.Setenv("TRAINCTL_DEBUG", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.PollInterval != 5*time.Second {
		t.Errorf("expected PollInterval 5s, got %v", cfg.PollInterval)
	}
	if cfg.MaximumRunTime != 7*24*time.Hour {
		t.Errorf("expected MaximumRunTime 168h, got %v", cfg.MaximumRunTime)
	}
	if cfg.Debug {
		t.Error("expected Debug false by default")
	}
	if cfg.MetricsAddr != "" {
		t.Errorf("expected empty MetricsAddr, got %s", cfg.MetricsAddr)
	}
}

func TestLoad_EnvVarOverrides(t *testing.T) {
	t.Setenv("TRAINCTL_POLL_INTERVAL", "2s")
	t.Setenv("TRAINCTL_MAX_RUN_TIME", "30m")
	t.Setenv("TRAINCTL_METRICS_ADDR", ":9464")
	t.Setenv("TRAINCTL_OTLP_ENDPOINT", "otel-collector:4317")
	t.Setenv("TRAINCTL_DEBUG", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.PollInterval != 2*time.Second {
		t.Errorf("expected PollInterval 2s, got %v", cfg.PollInterval)
	}
	if cfg.MaximumRunTime != 30*time.Minute {
		t.Errorf("expected MaximumRunTime 30m, got %v", cfg.MaximumRunTime)
	}
	if cfg.MetricsAddr != ":9464" {
		t.Errorf("unexpected MetricsAddr: %s", cfg.MetricsAddr)
	}
	if cfg.OTLPEndpoint != "otel-collector:4317" {
		t.Errorf("unexpected OTLPEndpoint: %s", cfg.OTLPEndpoint)
	}
	if !cfg.Debug {
		t.Error("expected Debug true")
	}
}

func TestLoad_InvalidPollInterval(t *testing.T) {
	t.Setenv("TRAINCTL_POLL_INTERVAL", "not-a-duration")

	if _, err := Load(); err == nil {
		t.Error("expected error for invalid TRAINCTL_POLL_INTERVAL")
	}
}

func TestLoad_InvalidMaxRunTime(t *testing.T) {
	t.Setenv("TRAINCTL_MAX_RUN_TIME", "5 parsecs")

	if _, err := Load(); err == nil {
		t.Error("expected error for invalid TRAINCTL_MAX_RUN_TIME")
	}
}

func TestLoad_InvalidDebug(t *testing.T) {
	t.Setenv("TRAINCTL_DEBUG", "maybe")

	if _, err := Load(); err == nil {
		t.Error("expected error for invalid TRAINCTL_DEBUG")
	}
}
