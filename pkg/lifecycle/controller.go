// pkg/lifecycle/controller.go

package lifecycle

import (
	"os"
	"strings"
	"time"

	"github.com/Felipebmaitan/HomeLab/pkg/compose"
	"github.com/Felipebmaitan/HomeLab/pkg/docker"
	"github.com/Felipebmaitan/HomeLab/pkg/health"
	"github.com/Felipebmaitan/HomeLab/pkg/interaction"
	"github.com/Felipebmaitan/HomeLab/pkg/opsio"
	"github.com/Felipebmaitan/HomeLab/pkg/registry"
	"github.com/hashicorp/go-multierror"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// VolumeConfirmationPhrase must be typed exactly to allow volume removal.
const VolumeConfirmationPhrase = "DELETE ALL DATA"

// StateQuerier answers "what is running right now". Always queried fresh;
// the controller keeps no state of its own.
type StateQuerier interface {
	RunningContainerNames(rc *opsio.RuntimeContext) ([]string, error)
}

// ResourceManager covers the destructive extensions of StopAll.
// *docker.Client satisfies it.
type ResourceManager interface {
	RemoveNetwork(rc *opsio.RuntimeContext, name string) (docker.RemoveOutcome, error)
	PruneStoppedContainers(rc *opsio.RuntimeContext) error
	ListVolumeNames(rc *opsio.RuntimeContext) ([]string, error)
	RemoveVolume(rc *opsio.RuntimeContext, name string) error
}

// HealthWaiter blocks until a probe reports ready or its budget runs out.
// *health.Monitor satisfies it.
type HealthWaiter interface {
	AwaitHealthy(rc *opsio.RuntimeContext, probe registry.Probe) health.Result
}

// Controller brings registry units up in dependency order and down in exact
// reverse order, delegating all real work to the compose runtime. Units are
// processed strictly sequentially; every unit is attempted exactly once per
// invocation and per-unit failures never abort the run.
type Controller struct {
	Registry  *registry.Registry
	Runtime   compose.Runtime
	Health    HealthWaiter
	State     StateQuerier
	Resources ResourceManager
	Confirm   interaction.Confirmer
	Networks  []string

	// statDefinition allows tests to fake definition resolution.
	statDefinition func(path string) error
}

// NewController wires a controller over the real collaborators.
func NewController(reg *registry.Registry, rt compose.Runtime, hw HealthWaiter, cli *docker.Client, confirm interaction.Confirmer) *Controller {
	return &Controller{
		Registry:  reg,
		Runtime:   rt,
		Health:    hw,
		State:     cli,
		Resources: cli,
		Confirm:   confirm,
		Networks:  registry.Networks,
	}
}

func (c *Controller) stat(path string) error {
	if c.statDefinition != nil {
		return c.statDefinition(path)
	}
	_, err := os.Stat(path)
	return err
}

// StartAll brings every unit up in dependency order.
func (c *Controller) StartAll(rc *opsio.RuntimeContext) []UnitResult {
	logger := otelzap.Ctx(rc.Ctx)
	results := make([]UnitResult, 0, len(c.Registry.Units()))

	for _, unit := range c.Registry.StartOrder() {
		began := time.Now()
		logger.Info("Starting unit",
			zap.String("unit", unit.Name),
			zap.String("kind", string(unit.Kind)))

		if err := c.stat(unit.DefinitionRef); err != nil {
			logger.Warn("Compose definition missing, skipping unit",
				zap.String("unit", unit.Name),
				zap.String("definition", unit.DefinitionRef))
			results = append(results, UnitResult{
				Unit: unit.Name, Status: DefinitionMissing, Duration: time.Since(began),
			})
			continue
		}

		if err := c.Runtime.Up(rc, unit.DefinitionRef); err != nil {
			logger.Warn("Compose up failed, continuing with next unit",
				zap.String("unit", unit.Name),
				zap.Error(err))
			results = append(results, UnitResult{
				Unit: unit.Name, Status: RuntimeError, Error: err.Error(), Duration: time.Since(began),
			})
			continue
		}

		status := Started
		if unit.HealthProbe != nil {
			if c.Health.AwaitHealthy(rc, *unit.HealthProbe) == health.TimedOut {
				status = StartedUnhealthy
			}
		}

		results = append(results, UnitResult{
			Unit: unit.Name, Status: status, Duration: time.Since(began),
		})
	}

	return results
}

// StopAll tears every unit down in the exact reverse of the start order,
// then runs the optional destructive extensions.
func (c *Controller) StopAll(rc *opsio.RuntimeContext, opts StopOptions) StopReport {
	logger := otelzap.Ctx(rc.Ctx)
	report := StopReport{Volumes: VolumeReport{Outcome: VolumesNotRequested}}

	for _, unit := range c.Registry.StopOrder() {
		began := time.Now()

		// Check-then-act on fresh state: skipping the down call for an
		// already-stopped unit avoids spurious compose errors. A racing
		// external start is benign since down itself is idempotent.
		if !c.unitRunning(rc, unit) {
			logger.Info("Unit already stopped", zap.String("unit", unit.Name))
			report.Units = append(report.Units, UnitResult{
				Unit: unit.Name, Status: AlreadyStopped, Duration: time.Since(began),
			})
			continue
		}

		logger.Info("Stopping unit", zap.String("unit", unit.Name))
		if err := c.Runtime.Down(rc, unit.DefinitionRef); err != nil {
			logger.Warn("Compose down failed, continuing with next unit",
				zap.String("unit", unit.Name),
				zap.Error(err))
			report.Units = append(report.Units, UnitResult{
				Unit: unit.Name, Status: RuntimeError, Error: err.Error(), Duration: time.Since(began),
			})
			continue
		}

		report.Units = append(report.Units, UnitResult{
			Unit: unit.Name, Status: Stopped, Duration: time.Since(began),
		})
	}

	if opts.RemoveNetworks {
		report.Networks = c.removeNetworks(rc)
	}
	if opts.RemoveVolumes {
		report.Volumes = c.removeVolumes(rc)
	}

	return report
}

// unitRunning reports whether any running container matches the unit. Query
// errors are treated as "running" so the subsequent down call, which is
// idempotent anyway, still happens.
func (c *Controller) unitRunning(rc *opsio.RuntimeContext, unit registry.Unit) bool {
	names, err := c.State.RunningContainerNames(rc)
	if err != nil {
		otelzap.Ctx(rc.Ctx).Warn("Failed to query running containers",
			zap.String("unit", unit.Name),
			zap.Error(err))
		return true
	}

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

func (c *Controller) removeNetworks(rc *opsio.RuntimeContext) []NetworkResult {
	logger := otelzap.Ctx(rc.Ctx)
	results := make([]NetworkResult, 0, len(c.Networks))

	for _, name := range c.Networks {
		outcome, err := c.Resources.RemoveNetwork(rc, name)
		result := NetworkResult{Name: name, Outcome: outcome}
		if err != nil {
			// A failed removal is a warning; keep going with the rest.
			logger.Warn("Network removal failed",
				zap.String("network", name),
				zap.Error(err))
			result.Error = err.Error()
		}
		results = append(results, result)
	}
	return results
}

func (c *Controller) removeVolumes(rc *opsio.RuntimeContext) VolumeReport {
	logger := otelzap.Ctx(rc.Ctx)

	prompt := "This will permanently delete ALL Docker volumes and their data.\n" +
		"Type '" + VolumeConfirmationPhrase + "' to continue"
	if !c.Confirm.ConfirmPhrase(rc, prompt, VolumeConfirmationPhrase) {
		logger.Info("Volume removal cancelled by operator")
		return VolumeReport{Outcome: VolumesCancelled}
	}

	// Stopped containers hold references that would block volume removal.
	if err := c.Resources.PruneStoppedContainers(rc); err != nil {
		logger.Warn("Container prune before volume removal failed", zap.Error(err))
	}

	names, err := c.Resources.ListVolumeNames(rc)
	if err != nil {
		logger.Warn("Failed to list volumes, nothing removed", zap.Error(err))
		return VolumeReport{Outcome: VolumesFailed, Error: err.Error()}
	}

	report := VolumeReport{Outcome: VolumesRemoved}
	var errs *multierror.Error
	for _, name := range names {
		if err := c.Resources.RemoveVolume(rc, name); err != nil {
			errs = multierror.Append(errs, err)
			report.Failed = append(report.Failed, name)
			continue
		}
		report.Removed = append(report.Removed, name)
	}

	if errs.ErrorOrNil() != nil {
		logger.Warn("Some volumes could not be removed",
			zap.Int("failed", len(report.Failed)),
			zap.Error(errs))
	}
	return report
}
