// pkg/execute/execute_test.go

package execute

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	t.Run("captures stdout", func(t *testing.T) {
		out, err := Run(context.Background(), Options{
			Command: "echo",
			Args:    []string{"hello"},
			Capture: true,
		})
		require.NoError(t, err)
		assert.Contains(t, out, "hello")
	})

	t.Run("nonzero exit is an error", func(t *testing.T) {
		_, err := Run(context.Background(), Options{
			Command: "false",
			Capture: true,
		})
		require.Error(t, err)
	})

	t.Run("missing binary is an error", func(t *testing.T) {
		_, err := Run(context.Background(), Options{
			Command: "definitely-not-a-real-binary-xyz",
			Capture: true,
		})
		require.Error(t, err)
	})

	t.Run("timeout kills the command", func(t *testing.T) {
		began := time.Now()
		_, err := Run(context.Background(), Options{
			Command: "sleep",
			Args:    []string{"10"},
			Timeout: 100 * time.Millisecond,
			Capture: true,
		})
		require.Error(t, err)
		assert.Less(t, time.Since(began), 5*time.Second)
	})

	t.Run("retries until success", func(t *testing.T) {
		dir := t.TempDir()
		// First run creates the marker and fails; the retry sees it and succeeds.
		script := `if [ -f ` + dir + `/marker ]; then exit 0; else touch ` + dir + `/marker; exit 1; fi`
		_, err := Run(context.Background(), Options{
			Command: "sh",
			Args:    []string{"-c", script},
			Capture: true,
			Retries: 2,
			Delay:   time.Millisecond,
		})
		require.NoError(t, err)
	})

	t.Run("dry run executes nothing", func(t *testing.T) {
		dir := t.TempDir()
		_, err := Run(context.Background(), Options{
			Command: "touch",
			Args:    []string{dir + "/should-not-exist"},
			DryRun:  true,
		})
		require.NoError(t, err)
		assert.NoFileExists(t, dir+"/should-not-exist")
	})
}

func TestRunSimple(t *testing.T) {
	require.NoError(t, RunSimple(context.Background(), "true"))
	require.Error(t, RunSimple(context.Background(), "false"))
}
