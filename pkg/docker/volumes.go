// pkg/docker/volumes.go

package docker

import (
	"github.com/Felipebmaitan/HomeLab/pkg/opsio"
	cerr "github.com/cockroachdb/errors"
	"github.com/docker/docker/api/types/volume"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// ListVolumeNames returns the names of all volumes known to the daemon.
func (c *Client) ListVolumeNames(rc *opsio.RuntimeContext) ([]string, error) {
	list, err := c.cli.VolumeList(rc.Ctx, volume.ListOptions{})
	if err != nil {
		return nil, cerr.Wrap(err, "failed to list volumes")
	}

	names := make([]string, 0, len(list.Volumes))
	for _, vol := range list.Volumes {
		names = append(names, vol.Name)
	}
	return names, nil
}

// RemoveVolume force-removes one volume. Callers run this continue-on-error
// so a single locked volume does not block the rest.
func (c *Client) RemoveVolume(rc *opsio.RuntimeContext, name string) error {
	logger := otelzap.Ctx(rc.Ctx)

	if err := c.cli.VolumeRemove(rc.Ctx, name, true); err != nil {
		return cerr.Wrapf(err, "failed to remove volume %s", name)
	}

	logger.Info("Removed Docker volume", zap.String("volume", name))
	return nil
}
