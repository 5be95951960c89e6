// pkg/status/reporter.go

package status

import (
	"strings"
	"time"

	"github.com/Felipebmaitan/HomeLab/pkg/docker"
	"github.com/Felipebmaitan/HomeLab/pkg/opsio"
	"github.com/Felipebmaitan/HomeLab/pkg/registry"
)

// UnitStatus is one unit's live state as reported by the runtime.
type UnitStatus struct {
	Unit     string            `json:"unit"`
	Kind     registry.Kind     `json:"kind"`
	Category registry.Category `json:"category"`
	Running  bool              `json:"running"`
}

// Report is a point-in-time summary. Nothing here is persisted; every call
// re-derives it from the runtime.
type Report struct {
	Units     []UnitStatus  `json:"units"`
	Counts    docker.Counts `json:"counts"`
	Timestamp time.Time     `json:"timestamp"`
}

// Querier is the slice of the Docker client the reporter needs.
type Querier interface {
	RunningContainerNames(rc *opsio.RuntimeContext) ([]string, error)
	ResourceCounts(rc *opsio.RuntimeContext) (docker.Counts, error)
}

// Reporter renders live state for every registry unit. Purely read-only.
type Reporter struct {
	Registry *registry.Registry
	Docker   Querier
}

// Summarize queries current container and resource state for all units.
func (r *Reporter) Summarize(rc *opsio.RuntimeContext) (*Report, error) {
	names, err := r.Docker.RunningContainerNames(rc)
	if err != nil {
		return nil, err
	}
	counts, err := r.Docker.ResourceCounts(rc)
	if err != nil {
		return nil, err
	}

	report := &Report{Counts: counts, Timestamp: time.Now()}
	for _, unit := range r.Registry.Units() {
		report.Units = append(report.Units, UnitStatus{
			Unit:     unit.Name,
			Kind:     unit.Kind,
			Category: unit.Category,
			Running:  unitRunning(names, unit),
		})
	}
	return report, nil
}

func unitRunning(names []string, unit registry.Unit) bool {
	match := unit.Name
	if unit.HealthProbe != nil && unit.HealthProbe.ContainerMatch != "" {
		match = unit.HealthProbe.ContainerMatch
	}
	for _, name := range names {
		if strings.Contains(name, match) || strings.Contains(name, unit.Name) {
			return true
		}
	}
	return false
}
