// pkg/provision/provision_test.go

package provision

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Felipebmaitan/HomeLab/pkg/docker"
	"github.com/Felipebmaitan/HomeLab/pkg/opsio"
	"github.com/Felipebmaitan/HomeLab/pkg/testutil"
	cerr "github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureDirectories(t *testing.T) {
	t.Run("creates missing directories recursively", func(t *testing.T) {
		rc := testutil.TestRuntimeContext(t)
		base := t.TempDir()
		specs := []DirSpec{
			{Path: filepath.Join(base, "media", "tv"), Mode: 0755},
			{Path: filepath.Join(base, "downloads"), Mode: 0755},
		}

		results, err := EnsureDirectories(rc, specs, 1000, 1000)
		require.NoError(t, err)

		require.Len(t, results, 2)
		for _, r := range results {
			assert.Equal(t, docker.Created, r.Outcome)
			info, err := os.Stat(r.Resource)
			require.NoError(t, err)
			assert.True(t, info.IsDir())
		}
	})

	t.Run("rerun reports already-exists and changes nothing", func(t *testing.T) {
		rc := testutil.TestRuntimeContext(t)
		base := t.TempDir()
		specs := []DirSpec{{Path: filepath.Join(base, "config", "sonarr"), Mode: 0755}}

		_, err := EnsureDirectories(rc, specs, 1000, 1000)
		require.NoError(t, err)

		results, err := EnsureDirectories(rc, specs, 1000, 1000)
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, docker.AlreadyExists, results[0].Outcome)
	})

	t.Run("fails when the path is a file", func(t *testing.T) {
		rc := testutil.TestRuntimeContext(t)
		base := t.TempDir()
		path := filepath.Join(base, "downloads")
		require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

		_, err := EnsureDirectories(rc, []DirSpec{{Path: path, Mode: 0755}}, 1000, 1000)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not a directory")
	})
}

func TestDirectories(t *testing.T) {
	specs := Directories("/opt/homelab")

	paths := make([]string, len(specs))
	for i, s := range specs {
		paths[i] = s.Path
	}
	assert.Contains(t, paths, "/opt/homelab/downloads")
	assert.Contains(t, paths, "/opt/homelab/media/tv")
	assert.Contains(t, paths, "/opt/homelab/media/movies")
	assert.Contains(t, paths, "/opt/homelab/bitcoin/data")
	assert.Contains(t, paths, "/opt/homelab/proxy/certbot/conf")

	for _, s := range specs {
		if s.Path == "/opt/homelab/bitcoin/data" {
			assert.False(t, s.Chown, "bitcoin data is not owned by the media user")
		}
		if s.Path == "/opt/homelab/downloads" {
			assert.True(t, s.Chown)
		}
	}
}

type fakeEnsurer struct {
	outcomes map[string]docker.EnsureOutcome
	errs     map[string]error
	calls    []string
}

func (f *fakeEnsurer) EnsureNetwork(rc *opsio.RuntimeContext, name string) (docker.EnsureOutcome, error) {
	f.calls = append(f.calls, name)
	if err := f.errs[name]; err != nil {
		return "", err
	}
	return f.outcomes[name], nil
}

func TestEnsureNetworks(t *testing.T) {
	t.Run("ensures every network", func(t *testing.T) {
		rc := testutil.TestRuntimeContext(t)
		ensurer := &fakeEnsurer{outcomes: map[string]docker.EnsureOutcome{
			"crypto-network": docker.Created,
			"media-network":  docker.AlreadyExists,
		}}

		results := EnsureNetworks(rc, ensurer, []string{"crypto-network", "media-network"})

		assert.Equal(t, []string{"crypto-network", "media-network"}, ensurer.calls)
		require.Len(t, results, 2)
		assert.Equal(t, docker.Created, results[0].Outcome)
		assert.Equal(t, docker.AlreadyExists, results[1].Outcome)
	})

	t.Run("one failure does not block the rest", func(t *testing.T) {
		rc := testutil.TestRuntimeContext(t)
		ensurer := &fakeEnsurer{errs: map[string]error{"crypto-network": cerr.New("daemon error")}}

		results := EnsureNetworks(rc, ensurer, []string{"crypto-network", "media-network"})

		assert.Equal(t, []string{"crypto-network", "media-network"}, ensurer.calls)
		require.Len(t, results, 1, "failed network is skipped from results")
		assert.Equal(t, "media-network", results[0].Resource)
	})
}
