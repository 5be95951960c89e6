// pkg/execute/execute.go

package execute

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/Felipebmaitan/HomeLab/pkg/opserr"
	cerr "github.com/cockroachdb/errors"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// Options describes one external command invocation.
type Options struct {
	Command string
	Args    []string
	Dir     string
	// Capture returns combined output to the caller instead of discarding it.
	Capture bool
	// Stream mirrors output to the process stdout while still capturing it.
	Stream  bool
	Timeout time.Duration
	Retries int
	Delay   time.Duration
	DryRun  bool
}

// Run executes a command with structured logging. Output is always captured
// for error summaries; set Stream to also mirror it to stdout (compose and
// certbot both print progress the operator wants to see).
func Run(ctx context.Context, opts Options) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := otelzap.Ctx(ctx)
	cmdStr := buildCommandString(opts.Command, opts.Args...)

	runCtx, cancel := context.WithTimeout(ctx, defaultTimeout(opts.Timeout))
	defer cancel()

	if opts.DryRun {
		logger.Info("Dry run mode - command not executed", zap.String("command", cmdStr))
		return "", nil
	}

	logger.Debug("Starting execution", zap.String("command", cmdStr))

	var output string
	var err error
	attempts := max(1, opts.Retries)

	for i := 1; i <= attempts; i++ {
		cmd := exec.CommandContext(runCtx, opts.Command, opts.Args...)
		if opts.Dir != "" {
			cmd.Dir = opts.Dir
		}

		var buf bytes.Buffer
		var writer io.Writer = &buf
		if opts.Stream {
			writer = io.MultiWriter(os.Stdout, &buf)
		}
		cmd.Stdout = writer
		cmd.Stderr = writer

		err = cmd.Run()
		output = buf.String()

		if err == nil {
			logger.Debug("Execution succeeded", zap.String("command", cmdStr))
			break
		}

		summary := opserr.ExtractSummary(ctx, output, 2)
		logger.Warn("Execution failed",
			zap.Int("attempt", i),
			zap.String("command", cmdStr),
			zap.String("summary", summary),
			zap.Error(err),
		)

		if i < attempts {
			select {
			case <-runCtx.Done():
				return output, cerr.Wrap(runCtx.Err(), "command cancelled")
			case <-time.After(opts.Delay):
			}
		}
	}

	if err != nil {
		return output, cerr.Wrapf(err, "command %q failed after %d attempt(s)", opts.Command, attempts)
	}

	if opts.Capture {
		return output, nil
	}
	return "", nil
}

// RunSimple executes a command with default options, discarding output.
func RunSimple(ctx context.Context, command string, args ...string) error {
	_, err := Run(ctx, Options{Command: command, Args: args})
	return err
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func defaultTimeout(t time.Duration) time.Duration {
	if t > 0 {
		return t
	}
	return 5 * time.Minute
}

func buildCommandString(command string, args ...string) string {
	return command + " " + strings.Join(args, " ")
}
