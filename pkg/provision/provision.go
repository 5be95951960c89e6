// pkg/provision/provision.go

package provision

import (
	"os"
	"path/filepath"

	"github.com/Felipebmaitan/HomeLab/pkg/docker"
	"github.com/Felipebmaitan/HomeLab/pkg/opsio"
	cerr "github.com/cockroachdb/errors"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// Result records one idempotent ensure: the resource and what actually
// happened. Re-running with identical specs only ever yields AlreadyExists.
type Result struct {
	Resource string               `json:"resource"`
	Outcome  docker.EnsureOutcome `json:"outcome"`
}

// DirSpec describes one directory to provision.
type DirSpec struct {
	Path string
	Mode os.FileMode
	// Chown assigns PUID/PGID ownership, needed for the containers that run
	// as that user. Best-effort when not running as root.
	Chown bool
}

// NetworkEnsurer is the slice of the Docker client the provisioner needs.
type NetworkEnsurer interface {
	EnsureNetwork(rc *opsio.RuntimeContext, name string) (docker.EnsureOutcome, error)
}

// Directories returns the fixed directory layout the stacks expect.
func Directories(base string) []DirSpec {
	dir := func(parts ...string) string {
		return filepath.Join(append([]string{base}, parts...)...)
	}
	return []DirSpec{
		{Path: dir("downloads"), Mode: 0755, Chown: true},
		{Path: dir("media", "tv"), Mode: 0755, Chown: true},
		{Path: dir("media", "movies"), Mode: 0755, Chown: true},
		{Path: dir("config", "jackett"), Mode: 0755, Chown: true},
		{Path: dir("config", "qbittorrent"), Mode: 0755, Chown: true},
		{Path: dir("config", "sonarr"), Mode: 0755, Chown: true},
		{Path: dir("config", "radarr"), Mode: 0755, Chown: true},
		{Path: dir("config", "jellyfin"), Mode: 0755, Chown: true},
		{Path: dir("bitcoin", "data"), Mode: 0755},
		{Path: dir("proxy", "conf.d"), Mode: 0755},
		{Path: dir("proxy", "certbot", "www"), Mode: 0755},
		{Path: dir("proxy", "certbot", "conf"), Mode: 0755},
	}
}

// EnsureDirectories creates each directory recursively if absent and applies
// ownership. Existing directories are left untouched.
func EnsureDirectories(rc *opsio.RuntimeContext, specs []DirSpec, puid, pgid int) ([]Result, error) {
	logger := otelzap.Ctx(rc.Ctx)
	results := make([]Result, 0, len(specs))

	for _, spec := range specs {
		outcome := docker.Created
		if info, err := os.Stat(spec.Path); err == nil {
			if !info.IsDir() {
				return results, cerr.Newf("%s exists but is not a directory", spec.Path)
			}
			outcome = docker.AlreadyExists
		} else {
			if err := os.MkdirAll(spec.Path, spec.Mode); err != nil {
				return results, cerr.Wrapf(err, "failed to create directory %s", spec.Path)
			}
			logger.Info("Created directory", zap.String("path", spec.Path))
		}

		if spec.Chown {
			if err := os.Chown(spec.Path, puid, pgid); err != nil {
				// Non-root runs cannot chown; the compose PUID/PGID env
				// handles ownership inside the containers anyway.
				logger.Warn("Could not set directory ownership",
					zap.String("path", spec.Path),
					zap.Int("puid", puid),
					zap.Int("pgid", pgid),
					zap.Error(err))
			}
		}

		results = append(results, Result{Resource: spec.Path, Outcome: outcome})
	}

	return results, nil
}

// EnsureNetworks idempotently creates each named network. Individual
// failures are logged and skipped so one bad network does not block the
// rest of provisioning.
func EnsureNetworks(rc *opsio.RuntimeContext, ensurer NetworkEnsurer, names []string) []Result {
	logger := otelzap.Ctx(rc.Ctx)
	results := make([]Result, 0, len(names))

	for _, name := range names {
		outcome, err := ensurer.EnsureNetwork(rc, name)
		if err != nil {
			logger.Warn("Network provisioning failed, continuing",
				zap.String("network", name),
				zap.Error(err))
			continue
		}
		results = append(results, Result{Resource: name, Outcome: outcome})
	}

	return results
}
