// pkg/docker/client.go

package docker

import (
	"time"

	"github.com/Felipebmaitan/HomeLab/pkg/opsio"
	cerr "github.com/cockroachdb/errors"
	"github.com/docker/docker/client"
)

const pingTimeout = 5 * time.Second

// Client wraps the Docker SDK client for the handful of queries and
// mutations this tool needs. All state is queried fresh; nothing is cached.
type Client struct {
	cli *client.Client
}

// NewClient establishes a Docker client from the environment with API
// version negotiation and verifies daemon connectivity.
func NewClient(rc *opsio.RuntimeContext) (*Client, error) {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, cerr.Wrap(err, "failed to create Docker client")
	}

	pingCtx, cancel := contextWithTimeout(rc, pingTimeout)
	defer cancel()
	if _, err := cli.Ping(pingCtx); err != nil {
		cli.Close()
		return nil, cerr.WithHint(err, "is the Docker daemon running?")
	}

	return &Client{cli: cli}, nil
}

func (c *Client) Close() error {
	return c.cli.Close()
}
