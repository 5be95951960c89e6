// pkg/opscli/wrap_test.go

package opscli

import (
	"testing"

	"github.com/Felipebmaitan/HomeLab/pkg/opserr"
	"github.com/Felipebmaitan/HomeLab/pkg/opsio"
	cerr "github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCmd() *cobra.Command {
	return &cobra.Command{Use: "test"}
}

func TestWrap(t *testing.T) {
	t.Run("passes through success", func(t *testing.T) {
		called := false
		fn := Wrap(func(rc *opsio.RuntimeContext, cmd *cobra.Command, args []string) error {
			called = true
			require.NotNil(t, rc)
			require.NotNil(t, rc.Ctx)
			require.NotNil(t, rc.Log)
			return nil
		})

		assert.NoError(t, fn(testCmd(), nil))
		assert.True(t, called)
	})

	t.Run("annotates unexpected errors with a stack", func(t *testing.T) {
		fn := Wrap(func(rc *opsio.RuntimeContext, cmd *cobra.Command, args []string) error {
			return cerr.New("boom")
		})

		err := fn(testCmd(), nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "boom")
	})

	t.Run("expected errors stay expected", func(t *testing.T) {
		fn := Wrap(func(rc *opsio.RuntimeContext, cmd *cobra.Command, args []string) error {
			return opserr.NewExpectedError(rc.Ctx, cerr.New("operator mistake"))
		})

		err := fn(testCmd(), nil)
		require.Error(t, err)
		assert.True(t, opserr.IsExpectedUserError(err))
		assert.Equal(t, 1, opserr.GetExitCode(err))
	})

	t.Run("recovers panics into assertion failures", func(t *testing.T) {
		fn := Wrap(func(rc *opsio.RuntimeContext, cmd *cobra.Command, args []string) error {
			panic("unreachable state")
		})

		err := fn(testCmd(), nil)
		require.Error(t, err)
		assert.Equal(t, 3, opserr.GetExitCode(err))
	})
}
