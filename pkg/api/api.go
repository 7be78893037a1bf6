// Package api contains the wire types for the training control plane's
// custom job resource. This package is shared between the remote client,
// the controller and the CLI.
package api

import (
	"fmt"
	"time"
)

// JobState is the lifecycle state the control plane reports for a custom job.
type JobState string

const (
	JobStateUnspecified JobState = "JOB_STATE_UNSPECIFIED"
	JobStateQueued      JobState = "JOB_STATE_QUEUED"
	JobStatePending     JobState = "JOB_STATE_PENDING"
	JobStateRunning     JobState = "JOB_STATE_RUNNING"
	JobStateSucceeded   JobState = "JOB_STATE_SUCCEEDED"
	JobStateFailed      JobState = "JOB_STATE_FAILED"
	JobStateCancelling  JobState = "JOB_STATE_CANCELLING"
	JobStateCancelled   JobState = "JOB_STATE_CANCELLED"
	JobStatePaused      JobState = "JOB_STATE_PAUSED"
	JobStateExpired     JobState = "JOB_STATE_EXPIRED"
)

// Terminal reports whether the state ends a job's lifecycle. A watch loop
// stops once the job reaches one of these states.
func (s JobState) Terminal() bool {
	switch s {
	case JobStateSucceeded, JobStateFailed, JobStateCancelled, JobStateExpired:
		return true
	}
	return false
}

// EnvVar is a single environment variable entry in a container spec.
type EnvVar struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// ContainerSpec describes the container executed by each replica.
type ContainerSpec struct {
	ImageURI string   `json:"imageUri"`
	Command  []string `json:"command,omitempty"`
	Args     []string `json:"args,omitempty"`
	Env      []EnvVar `json:"env,omitempty"`
}

// MachineSpec describes the machine shape a replica runs on.
type MachineSpec struct {
	MachineType      string `json:"machineType,omitempty"`
	AcceleratorType  string `json:"acceleratorType,omitempty"`
	AcceleratorCount int    `json:"acceleratorCount,omitempty"`
}

// DiskSpec describes the boot disk attached to each replica.
type DiskSpec struct {
	BootDiskType   string `json:"bootDiskType,omitempty"`
	BootDiskSizeGB int    `json:"bootDiskSizeGb,omitempty"`
}

// WorkerPoolSpec combines a container with the machine shape it runs on.
type WorkerPoolSpec struct {
	ContainerSpec *ContainerSpec `json:"containerSpec,omitempty"`
	MachineSpec   *MachineSpec   `json:"machineSpec,omitempty"`
	ReplicaCount  int64          `json:"replicaCount,omitempty"`
	DiskSpec      *DiskSpec      `json:"diskSpec,omitempty"`
}

// Scheduling carries the control plane's own run-time enforcement settings.
type Scheduling struct {
	// Timeout is a wire duration, e.g. "604800s".
	Timeout string `json:"timeout,omitempty"`
}

// JobSpec is the full submission payload for one custom job.
type JobSpec struct {
	WorkerPoolSpecs  []WorkerPoolSpec `json:"workerPoolSpecs"`
	ServiceAccount   string           `json:"serviceAccount,omitempty"`
	Scheduling       *Scheduling      `json:"scheduling,omitempty"`
	Network          string           `json:"network,omitempty"`
	ReservedIPRanges []string         `json:"reservedIpRanges,omitempty"`
}

// JobError is the terminal error the control plane attaches to a failed job.
type JobError struct {
	Code    int    `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

// CustomJob is a custom job resource as created and read over the wire.
// Name is assigned by the control plane and is empty on submission;
// DisplayName is chosen by the submitter.
type CustomJob struct {
	Name        string    `json:"name,omitempty"`
	DisplayName string    `json:"displayName"`
	JobSpec     JobSpec   `json:"jobSpec"`
	State       JobState  `json:"state,omitempty"`
	Error       *JobError `json:"error,omitempty"`
}

// ErrorStatus is the error body the control plane returns for failed calls.
type ErrorStatus struct {
	Code    int    `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
	Status  string `json:"status,omitempty"`
}

// ErrorResponse wraps ErrorStatus in the envelope used on the wire.
type ErrorResponse struct {
	Error ErrorStatus `json:"error"`
}

// WireDuration renders a duration in the control plane's duration encoding,
// whole seconds followed by "s".
func WireDuration(d time.Duration) string {
	return fmt.Sprintf("%ds", int64(d.Seconds()))
}
