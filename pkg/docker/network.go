// pkg/docker/network.go

package docker

import (
	"strings"

	"github.com/Felipebmaitan/HomeLab/pkg/opsio"
	cerr "github.com/cockroachdb/errors"
	"github.com/docker/docker/api/types/network"
	"github.com/docker/docker/errdefs"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// EnsureOutcome reports what an idempotent ensure actually did.
type EnsureOutcome string

const (
	Created       EnsureOutcome = "created"
	AlreadyExists EnsureOutcome = "already-exists"
)

// RemoveOutcome reports what a tolerant remove actually did.
type RemoveOutcome string

const (
	Removed       RemoveOutcome = "removed"
	AlreadyAbsent RemoveOutcome = "already-absent"
	InUse         RemoveOutcome = "in-use"
)

// EnsureNetwork checks if the named bridge network exists and creates it if
// not. A create race losing to a concurrent invocation is tolerated: Docker
// reports the conflict and the network exists, which is all we wanted.
func (c *Client) EnsureNetwork(rc *opsio.RuntimeContext, name string) (EnsureOutcome, error) {
	logger := otelzap.Ctx(rc.Ctx)

	_, err := c.cli.NetworkInspect(rc.Ctx, name, network.InspectOptions{})
	if err == nil {
		logger.Info("Docker network already exists", zap.String("network", name))
		return AlreadyExists, nil
	}
	if !errdefs.IsNotFound(err) {
		return "", cerr.Wrapf(err, "failed to inspect network %s", name)
	}

	_, err = c.cli.NetworkCreate(rc.Ctx, name, network.CreateOptions{Driver: "bridge"})
	if err != nil {
		if errdefs.IsConflict(err) || strings.Contains(err.Error(), "already exists") {
			logger.Info("Docker network created concurrently", zap.String("network", name))
			return AlreadyExists, nil
		}
		return "", cerr.Wrapf(err, "failed to create network %s", name)
	}

	logger.Info("Created Docker network", zap.String("network", name))
	return Created, nil
}

// RemoveNetwork removes the named network if it exists and is unused.
// Absence is a no-op, in-use is a warning outcome; neither is an error.
func (c *Client) RemoveNetwork(rc *opsio.RuntimeContext, name string) (RemoveOutcome, error) {
	logger := otelzap.Ctx(rc.Ctx)

	err := c.cli.NetworkRemove(rc.Ctx, name)
	if err == nil {
		logger.Info("Removed Docker network", zap.String("network", name))
		return Removed, nil
	}
	if errdefs.IsNotFound(err) {
		logger.Info("Docker network already absent", zap.String("network", name))
		return AlreadyAbsent, nil
	}
	if errdefs.IsForbidden(err) || strings.Contains(err.Error(), "active endpoints") {
		logger.Warn("Docker network still in use, leaving it",
			zap.String("network", name))
		return InUse, nil
	}
	return "", cerr.Wrapf(err, "failed to remove network %s", name)
}
