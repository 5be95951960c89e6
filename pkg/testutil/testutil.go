// pkg/testutil/testutil.go

package testutil

import (
	"context"
	"testing"

	"github.com/Felipebmaitan/HomeLab/pkg/opsio"
	"go.uber.org/zap/zaptest"
)

// TestRuntimeContext returns a RuntimeContext suitable for unit tests: the
// logger writes through t so output shows up only on failure, and the span
// is a noop because telemetry is never initialized in tests.
func TestRuntimeContext(t *testing.T) *opsio.RuntimeContext {
	t.Helper()
	rc := opsio.NewContext(context.Background(), "test")
	rc.Log = zaptest.NewLogger(t)
	return rc
}
