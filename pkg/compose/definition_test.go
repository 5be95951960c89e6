// pkg/compose/definition_test.go

package compose

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const bitcoinDefinition = `services:
  bitcoind:
    image: ruimarinho/bitcoin-core:latest
    container_name: bitcoind
    restart: unless-stopped
  electrs:
    image: getumbrel/electrs:latest
    restart: unless-stopped
`

func TestLoadDefinition(t *testing.T) {
	t.Run("parses services and container names", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "bitcoin")
		require.NoError(t, os.MkdirAll(dir, 0755))
		path := filepath.Join(dir, "docker-compose.yml")
		require.NoError(t, os.WriteFile(path, []byte(bitcoinDefinition), 0644))

		def, err := LoadDefinition(context.Background(), path)
		require.NoError(t, err)

		assert.Equal(t, "bitcoin", def.Project)
		assert.ElementsMatch(t, []string{"bitcoind", "electrs"}, def.Services)
		assert.Contains(t, def.Containers, "bitcoind", "explicit container_name wins")
		assert.Contains(t, def.Containers, "bitcoin-electrs-1", "compose default naming otherwise")
	})

	t.Run("missing file is an error", func(t *testing.T) {
		_, err := LoadDefinition(context.Background(), filepath.Join(t.TempDir(), "nope.yml"))
		require.Error(t, err)
	})
}

func TestNormalizeProjectName(t *testing.T) {
	assert.Equal(t, "media", normalizeProjectName("media"))
	assert.Equal(t, "my-stack", normalizeProjectName("My Stack"))
	assert.Equal(t, "v2_data", normalizeProjectName("V2_Data"))
}
