// pkg/compose/compose.go

package compose

import (
	"os/exec"
	"time"

	"github.com/Felipebmaitan/HomeLab/pkg/execute"
	"github.com/Felipebmaitan/HomeLab/pkg/opsio"
	cerr "github.com/cockroachdb/errors"
)

// Runtime is the external compose runtime the lifecycle controller delegates
// to. Implemented by CLI below; tests substitute a fake.
type Runtime interface {
	Up(rc *opsio.RuntimeContext, definition string) error
	Down(rc *opsio.RuntimeContext, definition string) error
	Ps(rc *opsio.RuntimeContext, definition string) (string, error)
}

// CLI drives compose through the docker CLI. It prefers the `docker compose`
// plugin and falls back to the legacy `docker-compose` binary.
type CLI struct{}

const composeTimeout = 10 * time.Minute

// resolveCommand returns the binary and leading args for compose invocations.
func resolveCommand() (string, []string, error) {
	if _, err := exec.LookPath("docker"); err == nil {
		return "docker", []string{"compose"}, nil
	}
	if _, err := exec.LookPath("docker-compose"); err == nil {
		return "docker-compose", nil, nil
	}
	return "", nil, cerr.New("neither docker CLI with compose plugin nor docker-compose found in PATH")
}

func (CLI) run(rc *opsio.RuntimeContext, definition string, capture bool, verb ...string) (string, error) {
	bin, lead, err := resolveCommand()
	if err != nil {
		return "", err
	}

	args := append(lead, "-f", definition)
	args = append(args, verb...)

	return execute.Run(rc.Ctx, execute.Options{
		Command: bin,
		Args:    args,
		Capture: capture,
		Stream:  !capture,
		Timeout: composeTimeout,
	})
}

// Up brings the definition's services up detached. Images are pulled by
// compose itself on first run, which is why the timeout is generous.
func (c CLI) Up(rc *opsio.RuntimeContext, definition string) error {
	_, err := c.run(rc, definition, false, "up", "-d")
	return cerr.WithHint(err, "failed to run docker compose up")
}

// Down stops and removes the definition's services.
func (c CLI) Down(rc *opsio.RuntimeContext, definition string) error {
	_, err := c.run(rc, definition, false, "down")
	return cerr.WithHint(err, "failed to run docker compose down")
}

// Ps returns the definition's container status listing.
func (c CLI) Ps(rc *opsio.RuntimeContext, definition string) (string, error) {
	return c.run(rc, definition, true, "ps")
}
