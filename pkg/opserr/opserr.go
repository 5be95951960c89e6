// pkg/opserr/opserr.go

package opserr

import (
	"context"
	"errors"
	"strings"

	cerr "github.com/cockroachdb/errors"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// UserError marks an error as expected: caused by the environment or the
// operator, not by a bug. Expected errors are reported as a plain message
// with exit code 1 and no stack trace.
type UserError struct {
	Err error
}

func (e *UserError) Error() string {
	return e.Err.Error()
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewExpectedError wraps err as a user-facing error and logs it at warn level.
func NewExpectedError(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	otelzap.Ctx(ctx).Warn("Expected error occurred", zap.Error(err))
	return &UserError{Err: err}
}

// IsExpectedUserError reports whether err (or anything it wraps) is a UserError.
func IsExpectedUserError(err error) bool {
	var ue *UserError
	return errors.As(err, &ue)
}

// GetExitCode maps an error to a process exit code: 0 for nil, 1 for expected
// user errors and general failures, 3 for internal assertion failures.
func GetExitCode(err error) int {
	if err == nil {
		return 0
	}
	if IsExpectedUserError(err) {
		return 1
	}
	if cerr.HasAssertionFailure(err) {
		return 3
	}
	return 1
}

// ExtractSummary condenses multi-line command output into its last n
// non-empty lines, which is usually where CLI tools put the actual error.
func ExtractSummary(ctx context.Context, output string, n int) string {
	if n <= 0 {
		n = 1
	}
	var lines []string
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return ""
	}
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "; ")
}
