// pkg/lifecycle/types.go

package lifecycle

import (
	"time"

	"github.com/Felipebmaitan/HomeLab/pkg/docker"
)

// Status is the per-unit outcome of one start or stop attempt.
type Status string

const (
	Started           Status = "started"
	StartedUnhealthy  Status = "started-unhealthy"
	DefinitionMissing Status = "definition-missing"
	RuntimeError      Status = "runtime-error"
	Stopped           Status = "stopped"
	AlreadyStopped    Status = "already-stopped"
)

// UnitResult records what happened to one unit during a run. Error holds the
// rendered cause for RuntimeError results; the run itself never aborts on it.
type UnitResult struct {
	Unit     string        `json:"unit"`
	Status   Status        `json:"status"`
	Error    string        `json:"error,omitempty"`
	Duration time.Duration `json:"duration"`
}

// StopOptions selects the optional destructive extensions of StopAll.
type StopOptions struct {
	RemoveNetworks bool
	RemoveVolumes  bool
}

// NetworkResult records the outcome of one network removal.
type NetworkResult struct {
	Name    string               `json:"name"`
	Outcome docker.RemoveOutcome `json:"outcome"`
	Error   string               `json:"error,omitempty"`
}

// VolumeOutcome summarizes the volume-removal step as a whole.
type VolumeOutcome string

const (
	// VolumesNotRequested: --remove-volumes was not passed.
	VolumesNotRequested VolumeOutcome = "not-requested"
	// VolumesCancelled: the typed confirmation did not match; nothing removed.
	VolumesCancelled VolumeOutcome = "cancelled"
	// VolumesRemoved: removal ran; individual failures are listed in Failed.
	VolumesRemoved VolumeOutcome = "removed"
	// VolumesFailed: confirmation passed but the volumes could not be
	// enumerated; nothing was removed.
	VolumesFailed VolumeOutcome = "failed"
)

// VolumeReport records the destructive volume step. Error carries the cause
// for VolumesFailed.
type VolumeReport struct {
	Outcome VolumeOutcome `json:"outcome"`
	Removed []string      `json:"removed,omitempty"`
	Failed  []string      `json:"failed,omitempty"`
	Error   string        `json:"error,omitempty"`
}

// StopReport is everything StopAll did, in order.
type StopReport struct {
	Units    []UnitResult    `json:"units"`
	Networks []NetworkResult `json:"networks,omitempty"`
	Volumes  VolumeReport    `json:"volumes"`
}
