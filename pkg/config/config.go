// pkg/config/config.go

package config

import (
	"os"

	"github.com/Felipebmaitan/HomeLab/pkg/opserr"
	"github.com/Felipebmaitan/HomeLab/pkg/opsio"
	cerr "github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

const (
	// DefaultEnvFile is the environment file the start command requires.
	DefaultEnvFile = ".env"

	// PlaceholderDomain is the value shipped in .env.example; commands that
	// need a real domain refuse to run while it is still set.
	PlaceholderDomain = "yourdomain.com"
)

// Settings holds the host-level configuration shared by every stack.
type Settings struct {
	Domain     string
	AdminEmail string
	PUID       int
	PGID       int
	// BaseDir is the root under which per-service data directories live.
	BaseDir string
	// DisplayPorts maps a service name to its published port, used only when
	// rendering the final summary.
	DisplayPorts map[string]string
}

// Load reads the environment file and resolves settings with defaults.
// A missing environment file is fatal before any mutation happens.
func Load(rc *opsio.RuntimeContext, envPath string) (*Settings, error) {
	logger := otelzap.Ctx(rc.Ctx)

	if _, err := os.Stat(envPath); err != nil {
		return nil, opserr.NewExpectedError(rc.Ctx,
			cerr.Newf("environment file %s not found; copy .env.example and edit it first", envPath))
	}

	if err := godotenv.Load(envPath); err != nil {
		return nil, cerr.Wrapf(err, "failed to load environment file %s", envPath)
	}

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("DOMAIN", PlaceholderDomain)
	v.SetDefault("ADMIN_EMAIL", "admin@"+PlaceholderDomain)
	v.SetDefault("PUID", 1000)
	v.SetDefault("PGID", 1000)
	v.SetDefault("BASE_DIR", "/opt/homelab")
	v.SetDefault("JELLYFIN_PORT", "8096")
	v.SetDefault("SONARR_PORT", "8989")
	v.SetDefault("RADARR_PORT", "7878")
	v.SetDefault("JACKETT_PORT", "9117")
	v.SetDefault("QBITTORRENT_PORT", "8080")
	v.SetDefault("MEMPOOL_PORT", "8999")

	s := &Settings{
		Domain:     v.GetString("DOMAIN"),
		AdminEmail: v.GetString("ADMIN_EMAIL"),
		PUID:       v.GetInt("PUID"),
		PGID:       v.GetInt("PGID"),
		BaseDir:    v.GetString("BASE_DIR"),
		DisplayPorts: map[string]string{
			"jellyfin":    v.GetString("JELLYFIN_PORT"),
			"sonarr":      v.GetString("SONARR_PORT"),
			"radarr":      v.GetString("RADARR_PORT"),
			"jackett":     v.GetString("JACKETT_PORT"),
			"qbittorrent": v.GetString("QBITTORRENT_PORT"),
			"mempool":     v.GetString("MEMPOOL_PORT"),
		},
	}

	logger.Debug("Configuration loaded",
		zap.String("env_file", envPath),
		zap.String("domain", s.Domain),
		zap.Int("puid", s.PUID),
		zap.Int("pgid", s.PGID))

	return s, nil
}
