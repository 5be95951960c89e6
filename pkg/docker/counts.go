// pkg/docker/counts.go

package docker

import (
	"github.com/Felipebmaitan/HomeLab/pkg/opsio"
	cerr "github.com/cockroachdb/errors"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/api/types/network"
	"github.com/docker/docker/api/types/volume"
	"golang.org/x/sync/errgroup"
)

// Counts aggregates what the runtime currently knows about.
type Counts struct {
	Containers int `json:"containers"`
	Running    int `json:"running"`
	Images     int `json:"images"`
	Volumes    int `json:"volumes"`
	Networks   int `json:"networks"`
}

// ResourceCounts queries container/image/volume/network totals. The four
// listings are independent reads, so they fan out concurrently.
func (c *Client) ResourceCounts(rc *opsio.RuntimeContext) (Counts, error) {
	var counts Counts
	g, ctx := errgroup.WithContext(rc.Ctx)

	g.Go(func() error {
		all, err := c.cli.ContainerList(ctx, container.ListOptions{All: true})
		if err != nil {
			return cerr.Wrap(err, "container listing failed")
		}
		counts.Containers = len(all)
		for _, ct := range all {
			if ct.State == "running" {
				counts.Running++
			}
		}
		return nil
	})
	g.Go(func() error {
		images, err := c.cli.ImageList(ctx, image.ListOptions{})
		if err != nil {
			return cerr.Wrap(err, "image listing failed")
		}
		counts.Images = len(images)
		return nil
	})
	g.Go(func() error {
		vols, err := c.cli.VolumeList(ctx, volume.ListOptions{})
		if err != nil {
			return cerr.Wrap(err, "volume listing failed")
		}
		counts.Volumes = len(vols.Volumes)
		return nil
	})
	g.Go(func() error {
		nets, err := c.cli.NetworkList(ctx, network.ListOptions{})
		if err != nil {
			return cerr.Wrap(err, "network listing failed")
		}
		counts.Networks = len(nets)
		return nil
	})

	if err := g.Wait(); err != nil {
		return Counts{}, err
	}
	return counts, nil
}
