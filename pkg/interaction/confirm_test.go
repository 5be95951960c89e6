// pkg/interaction/confirm_test.go

package interaction

import (
	"strings"
	"testing"

	"github.com/Felipebmaitan/HomeLab/pkg/testutil"
	"github.com/stretchr/testify/assert"
)

func TestTerminalConfirmer(t *testing.T) {
	const phrase = "DELETE ALL DATA"

	t.Run("exact phrase confirms", func(t *testing.T) {
		rc := testutil.TestRuntimeContext(t)
		c := &TerminalConfirmer{In: strings.NewReader(phrase + "\n")}

		assert.True(t, c.ConfirmPhrase(rc, "Type the phrase", phrase))
	})

	t.Run("windows line ending still confirms", func(t *testing.T) {
		rc := testutil.TestRuntimeContext(t)
		c := &TerminalConfirmer{In: strings.NewReader(phrase + "\r\n")}

		assert.True(t, c.ConfirmPhrase(rc, "Type the phrase", phrase))
	})

	t.Run("near misses refuse", func(t *testing.T) {
		for _, input := range []string{
			"delete all data",
			"DELETE ALL DATA extra",
			"  DELETE ALL DATA  ",
			" DELETE ALL DATA",
			"yes",
			"",
		} {
			rc := testutil.TestRuntimeContext(t)
			c := &TerminalConfirmer{In: strings.NewReader(input + "\n")}

			assert.False(t, c.ConfirmPhrase(rc, "Type the phrase", phrase), "input %q", input)
		}
	})

	t.Run("closed input refuses", func(t *testing.T) {
		rc := testutil.TestRuntimeContext(t)
		c := &TerminalConfirmer{In: strings.NewReader("")}

		assert.False(t, c.ConfirmPhrase(rc, "Type the phrase", phrase))
	})
}

func TestStaticConfirmer(t *testing.T) {
	rc := testutil.TestRuntimeContext(t)

	assert.True(t, (&StaticConfirmer{Input: "GO"}).ConfirmPhrase(rc, "p", "GO"))
	assert.False(t, (&StaticConfirmer{Input: "no"}).ConfirmPhrase(rc, "p", "GO"))
	assert.False(t, (&StaticConfirmer{}).ConfirmPhrase(rc, "p", "GO"))
}
