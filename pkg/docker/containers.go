// pkg/docker/containers.go

package docker

import (
	"strings"

	"github.com/Felipebmaitan/HomeLab/pkg/opsio"
	cerr "github.com/cockroachdb/errors"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/filters"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// RunningContainerNames lists the names of all currently running containers,
// stripped of the leading slash Docker adds.
func (c *Client) RunningContainerNames(rc *opsio.RuntimeContext) ([]string, error) {
	containers, err := c.cli.ContainerList(rc.Ctx, container.ListOptions{})
	if err != nil {
		return nil, cerr.Wrap(err, "failed to list running containers")
	}

	var names []string
	for _, ct := range containers {
		for _, name := range ct.Names {
			names = append(names, strings.TrimPrefix(name, "/"))
		}
	}
	return names, nil
}

// ContainerStatusLines renders one "name<TAB>status" line per container,
// running or not. The health monitor substring-matches against these lines,
// mirroring `docker ps` output ("Up 2 minutes (healthy)").
func (c *Client) ContainerStatusLines(rc *opsio.RuntimeContext) (string, error) {
	containers, err := c.cli.ContainerList(rc.Ctx, container.ListOptions{All: true})
	if err != nil {
		return "", cerr.Wrap(err, "failed to list containers")
	}

	var sb strings.Builder
	for _, ct := range containers {
		name := ""
		if len(ct.Names) > 0 {
			name = strings.TrimPrefix(ct.Names[0], "/")
		}
		sb.WriteString(name)
		sb.WriteString("\t")
		sb.WriteString(ct.Status)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

// PruneStoppedContainers force-removes all stopped containers. Called before
// volume removal so anonymous volume references do not block it.
func (c *Client) PruneStoppedContainers(rc *opsio.RuntimeContext) error {
	logger := otelzap.Ctx(rc.Ctx)

	report, err := c.cli.ContainersPrune(rc.Ctx, filters.NewArgs())
	if err != nil {
		return cerr.Wrap(err, "failed to prune stopped containers")
	}

	logger.Info("Pruned stopped containers",
		zap.Int("removed", len(report.ContainersDeleted)),
		zap.Uint64("space_reclaimed", report.SpaceReclaimed))
	return nil
}
