// pkg/opserr/opserr_test.go

package opserr

import (
	"context"
	"testing"

	cerr "github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
)

func TestExpectedErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("nil stays nil", func(t *testing.T) {
		assert.NoError(t, NewExpectedError(ctx, nil))
	})

	t.Run("marks and detects", func(t *testing.T) {
		err := NewExpectedError(ctx, cerr.New("domain not configured"))
		assert.True(t, IsExpectedUserError(err))
		assert.Equal(t, "domain not configured", err.Error())
	})

	t.Run("survives wrapping", func(t *testing.T) {
		err := NewExpectedError(ctx, cerr.New("missing .env"))
		wrapped := cerr.Wrap(err, "loading configuration")
		assert.True(t, IsExpectedUserError(wrapped))
	})

	t.Run("plain errors are not expected", func(t *testing.T) {
		assert.False(t, IsExpectedUserError(cerr.New("boom")))
		assert.False(t, IsExpectedUserError(nil))
	})
}

func TestGetExitCode(t *testing.T) {
	ctx := context.Background()

	assert.Equal(t, 0, GetExitCode(nil))
	assert.Equal(t, 1, GetExitCode(cerr.New("ordinary failure")))
	assert.Equal(t, 1, GetExitCode(NewExpectedError(ctx, cerr.New("operator error"))))
	assert.Equal(t, 3, GetExitCode(cerr.AssertionFailedf("invariant broken")))
}

func TestExtractSummary(t *testing.T) {
	ctx := context.Background()

	t.Run("takes the last n non-empty lines", func(t *testing.T) {
		out := "pulling image\n\nstep 2\n\nError: port already allocated\n"
		assert.Equal(t, "step 2; Error: port already allocated", ExtractSummary(ctx, out, 2))
	})

	t.Run("short output passes through", func(t *testing.T) {
		assert.Equal(t, "one line", ExtractSummary(ctx, "one line", 3))
	})

	t.Run("empty output yields empty summary", func(t *testing.T) {
		assert.Equal(t, "", ExtractSummary(ctx, "\n\n  \n", 3))
	})

	t.Run("non-positive n is clamped to one", func(t *testing.T) {
		assert.Equal(t, "c", ExtractSummary(ctx, "a\nb\nc", 0))
	})
}
