package controller

import (
	"sort"

	"trainctl/internal/apperrors"
	"trainctl/pkg/api"
)

// baseEnvironment returns the variables injected into every job container.
// User-supplied entries override these on key collision.
func (c *Controller) baseEnvironment() map[string]string {
	return map[string]string{
		"TRAINCTL_PROJECT": c.creds.Project(),
		"TRAINCTL_REGION":  c.cfg.Region,
	}
}

// buildJobSpec assembles the submission payload from the configuration. It
// performs no network calls and is rebuilt on every submission and preview:
// the environment merge and identity resolution read state that may change
// between calls.
func (c *Controller) buildJobSpec() (*api.JobSpec, error) {
	merged := c.baseEnvironment()
	for name, value := range c.cfg.Env {
		merged[name] = value
	}

	names := make([]string, 0, len(merged))
	for name := range merged {
		names = append(names, name)
	}
	sort.Strings(names)

	env := make([]api.EnvVar, 0, len(names))
	for _, name := range names {
		env = append(env, api.EnvVar{Name: name, Value: merged[name]})
	}

	workerPool := api.WorkerPoolSpec{
		ContainerSpec: &api.ContainerSpec{
			ImageURI: c.cfg.Image,
			Command:  c.cfg.Command,
			Args:     c.cfg.Args,
			Env:      env,
		},
		MachineSpec: &api.MachineSpec{
			MachineType:      c.cfg.MachineType,
			AcceleratorType:  c.cfg.AcceleratorType,
			AcceleratorCount: c.cfg.AcceleratorCount,
		},
		ReplicaCount: 1,
		DiskSpec: &api.DiskSpec{
			BootDiskType:   c.cfg.BootDiskType,
			BootDiskSizeGB: c.cfg.BootDiskSizeGB,
		},
	}

	serviceAccount := c.cfg.ServiceAccount
	if serviceAccount == "" {
		serviceAccount = c.creds.ServiceAccountEmail()
	}
	if serviceAccount == "" {
		return nil, apperrors.Configuration("service_account",
			"a service account is required for the job and none was detected "+
				"in the attached credentials; set one explicitly")
	}

	return &api.JobSpec{
		WorkerPoolSpecs:  []api.WorkerPoolSpec{workerPool},
		ServiceAccount:   serviceAccount,
		Scheduling:       &api.Scheduling{Timeout: api.WireDuration(c.cfg.MaximumRunTime)},
		Network:          c.cfg.Network,
		ReservedIPRanges: c.cfg.ReservedIPRanges,
	}, nil
}
