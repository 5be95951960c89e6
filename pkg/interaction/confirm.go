// pkg/interaction/confirm.go

package interaction

import (
	"io"
	"os"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/Felipebmaitan/HomeLab/pkg/opsio"
)

// Confirmer gates destructive operations behind a typed confirmation phrase.
// It is an injected capability so callers can be tested without a terminal.
type Confirmer interface {
	// ConfirmPhrase prompts with the given text and returns true only when
	// the operator types phrase exactly. Any read error counts as a refusal.
	ConfirmPhrase(rc *opsio.RuntimeContext, prompt, phrase string) bool
}

// TerminalConfirmer reads the confirmation from stdin.
type TerminalConfirmer struct {
	// In overrides stdin, used by tests.
	In io.Reader
}

func (c *TerminalConfirmer) ConfirmPhrase(rc *opsio.RuntimeContext, prompt, phrase string) bool {
	logger := otelzap.Ctx(rc.Ctx)

	in := c.In
	if in == nil {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			logger.Warn("Refusing destructive operation: stdin is not a terminal")
			return false
		}
		in = os.Stdin
	}

	input, err := ReadLine(in, prompt)
	if err != nil {
		logger.Warn("Failed to read confirmation input", zap.Error(err))
		return false
	}

	if input != phrase {
		logger.Warn("Confirmation phrase mismatch",
			zap.String("expected", phrase))
		return false
	}
	return true
}

// StaticConfirmer answers every confirmation with a canned input line.
// Used in tests and for --yes style automation.
type StaticConfirmer struct {
	Input string
}

func (c *StaticConfirmer) ConfirmPhrase(rc *opsio.RuntimeContext, prompt, phrase string) bool {
	return c.Input == phrase
}
