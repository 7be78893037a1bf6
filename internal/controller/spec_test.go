package controller

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"trainctl/internal/apperrors"
	"trainctl/pkg/api"
)

func envValue(env []api.EnvVar, name string) (string, bool) {
	for _, e := range env {
		if e.Name == name {
			return e.Value, true
		}
	}
	return "", false
}

func TestBuildJobSpec_UserEnvOverridesBase(t *testing.T) {
	cfg := testConfig()
	cfg.Env = map[string]string{
		"TRAINCTL_PROJECT": "override",
		"EPOCHS":           "10",
	}

	c := New(cfg, &mockCreds{project: "test-project"}, slog.New(&logCapture{}))
	spec, err := c.buildJobSpec()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	env := spec.WorkerPoolSpecs[0].ContainerSpec.Env
	if got, ok := envValue(env, "TRAINCTL_PROJECT"); !ok || got != "override" {
		t.Errorf("expected user entry to win on collision, got %q", got)
	}
	if got, ok := envValue(env, "EPOCHS"); !ok || got != "10" {
		t.Errorf("expected user entry EPOCHS=10, got %q", got)
	}
	if got, ok := envValue(env, "TRAINCTL_REGION"); !ok || got != "us-east1" {
		t.Errorf("expected base entry preserved, got %q", got)
	}
}

func TestBuildJobSpec_ExplicitServiceAccountWins(t *testing.T) {
	cfg := testConfig()
	cfg.ServiceAccount = "explicit@test-project.iam.gserviceaccount.com"

	creds := &mockCreds{project: "test-project", serviceAccount: "default@test-project.iam.gserviceaccount.com"}
	c := New(cfg, creds, slog.New(&logCapture{}))

	spec, err := c.buildJobSpec()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if spec.ServiceAccount != "explicit@test-project.iam.gserviceaccount.com" {
		t.Errorf("expected explicit service account, got %s", spec.ServiceAccount)
	}
}

func TestBuildJobSpec_FallsBackToCredentialIdentity(t *testing.T) {
	cfg := testConfig()
	cfg.ServiceAccount = ""

	creds := &mockCreds{project: "test-project", serviceAccount: "default@test-project.iam.gserviceaccount.com"}
	c := New(cfg, creds, slog.New(&logCapture{}))

	spec, err := c.buildJobSpec()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if spec.ServiceAccount != "default@test-project.iam.gserviceaccount.com" {
		t.Errorf("expected credential identity fallback, got %s", spec.ServiceAccount)
	}
}

func TestBuildJobSpec_MissingServiceAccount(t *testing.T) {
	cfg := testConfig()
	cfg.ServiceAccount = ""

	c := New(cfg, &mockCreds{project: "test-project"}, slog.New(&logCapture{}))
	_, err := c.buildJobSpec()

	if !errors.Is(err, apperrors.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}

	var appErr *apperrors.Error
	if !errors.As(err, &appErr) || appErr.Field != "service_account" {
		t.Errorf("expected error naming the service_account field, got %+v", err)
	}
}

func TestBuildJobSpec_SchedulingTimeout(t *testing.T) {
	cfg := testConfig()
	cfg.MaximumRunTime = 36 * time.Hour

	c := New(cfg, &mockCreds{project: "test-project"}, slog.New(&logCapture{}))
	spec, err := c.buildJobSpec()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if spec.Scheduling == nil || spec.Scheduling.Timeout != "129600s" {
		t.Errorf("expected scheduling timeout 129600s, got %+v", spec.Scheduling)
	}
}

func TestBuildJobSpec_MachineAndDiskShape(t *testing.T) {
	cfg := testConfig()
	cfg.MachineType = "a2-highgpu-1g"
	cfg.AcceleratorType = "NVIDIA_TESLA_A100"
	cfg.AcceleratorCount = 1
	cfg.BootDiskType = "pd-standard"
	cfg.BootDiskSizeGB = 250
	cfg.Network = "projects/test-project/global/networks/training"
	cfg.ReservedIPRanges = []string{"training-range"}

	c := New(cfg, &mockCreds{project: "test-project"}, slog.New(&logCapture{}))
	spec, err := c.buildJobSpec()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	pool := spec.WorkerPoolSpecs[0]
	if pool.MachineSpec.MachineType != "a2-highgpu-1g" {
		t.Errorf("unexpected machine type: %s", pool.MachineSpec.MachineType)
	}
	if pool.MachineSpec.AcceleratorType != "NVIDIA_TESLA_A100" || pool.MachineSpec.AcceleratorCount != 1 {
		t.Errorf("unexpected accelerator shape: %+v", pool.MachineSpec)
	}
	if pool.DiskSpec.BootDiskType != "pd-standard" || pool.DiskSpec.BootDiskSizeGB != 250 {
		t.Errorf("unexpected disk shape: %+v", pool.DiskSpec)
	}
	if pool.ReplicaCount != 1 {
		t.Errorf("expected a single replica, got %d", pool.ReplicaCount)
	}
	if spec.Network != "projects/test-project/global/networks/training" {
		t.Errorf("unexpected network: %s", spec.Network)
	}
	if len(spec.ReservedIPRanges) != 1 || spec.ReservedIPRanges[0] != "training-range" {
		t.Errorf("unexpected reserved IP ranges: %v", spec.ReservedIPRanges)
	}
}

func TestNew_AppliesDefaults(t *testing.T) {
	cfg := Config{
		Region:         "us-east1",
		Image:          "gcr.io/test-project/trainer/job:latest",
		ServiceAccount: "trainer@test-project.iam.gserviceaccount.com",
	}

	c := New(cfg, &mockCreds{project: "test-project"}, slog.New(&logCapture{}))

	if c.cfg.MachineType != "n1-standard-4" {
		t.Errorf("expected default machine type, got %s", c.cfg.MachineType)
	}
	if c.cfg.BootDiskType != "pd-ssd" || c.cfg.BootDiskSizeGB != 100 {
		t.Errorf("expected default disk shape, got %s/%d", c.cfg.BootDiskType, c.cfg.BootDiskSizeGB)
	}
	if c.cfg.MaximumRunTime != 7*24*time.Hour {
		t.Errorf("expected default maximum run time 168h, got %v", c.cfg.MaximumRunTime)
	}
	if c.cfg.PollInterval != 5*time.Second {
		t.Errorf("expected default poll interval 5s, got %v", c.cfg.PollInterval)
	}
}
