// pkg/health/monitor.go

package health

import (
	"strings"
	"time"

	"github.com/Felipebmaitan/HomeLab/pkg/opsio"
	"github.com/Felipebmaitan/HomeLab/pkg/registry"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// Result is a tagged probe outcome so callers can tell a timeout from a
// definitive failure (which, with substring probes, does not exist: a
// container that never reports healthy just times out).
type Result string

const (
	Ready    Result = "ready"
	TimedOut Result = "timed-out"
)

// StatusFunc queries the runtime for current container status text, one
// "name<TAB>status" line per container.
type StatusFunc func(rc *opsio.RuntimeContext) (string, error)

const (
	DefaultMaxAttempts = 30
	DefaultInterval    = 2 * time.Second
)

// Monitor polls container status at a fixed cadence with a fixed attempt
// ceiling: no backoff, no escalation, deterministic maximum wait of
// MaxAttempts * Interval.
type Monitor struct {
	Status      StatusFunc
	MaxAttempts int
	Interval    time.Duration
}

// NewMonitor builds a monitor with the default polling budget (60s total).
func NewMonitor(status StatusFunc) *Monitor {
	return &Monitor{
		Status:      status,
		MaxAttempts: DefaultMaxAttempts,
		Interval:    DefaultInterval,
	}
}

// AwaitHealthy polls until a container matching the probe reports the healthy
// marker, or the attempt budget runs out. Status query errors count as
// failed attempts rather than aborting: the daemon may still be settling
// right after a stack comes up.
func (m *Monitor) AwaitHealthy(rc *opsio.RuntimeContext, probe registry.Probe) Result {
	logger := otelzap.Ctx(rc.Ctx)

	for attempt := 1; attempt <= m.MaxAttempts; attempt++ {
		out, err := m.Status(rc)
		if err != nil {
			logger.Warn("Health status query failed",
				zap.Int("attempt", attempt),
				zap.String("container", probe.ContainerMatch),
				zap.Error(err))
		} else if matches(out, probe) {
			logger.Info("Container is healthy",
				zap.String("container", probe.ContainerMatch),
				zap.Int("attempts", attempt))
			return Ready
		}

		if attempt < m.MaxAttempts {
			select {
			case <-rc.Ctx.Done():
				return TimedOut
			case <-time.After(m.Interval):
			}
		}
	}

	logger.Warn("Health probe timed out",
		zap.String("container", probe.ContainerMatch),
		zap.Int("attempts", m.MaxAttempts),
		zap.Duration("waited", time.Duration(m.MaxAttempts)*m.Interval))
	return TimedOut
}

func matches(statusOutput string, probe registry.Probe) bool {
	for _, line := range strings.Split(statusOutput, "\n") {
		if strings.Contains(line, probe.ContainerMatch) &&
			strings.Contains(line, probe.HealthyMarker) {
			return true
		}
	}
	return false
}
