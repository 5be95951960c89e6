// cmd/start/start.go

package start

import (
	"fmt"
	"os"

	"github.com/Felipebmaitan/HomeLab/pkg/compose"
	"github.com/Felipebmaitan/HomeLab/pkg/config"
	"github.com/Felipebmaitan/HomeLab/pkg/docker"
	"github.com/Felipebmaitan/HomeLab/pkg/health"
	"github.com/Felipebmaitan/HomeLab/pkg/interaction"
	"github.com/Felipebmaitan/HomeLab/pkg/lifecycle"
	"github.com/Felipebmaitan/HomeLab/pkg/opscli"
	"github.com/Felipebmaitan/HomeLab/pkg/opsio"
	"github.com/Felipebmaitan/HomeLab/pkg/provision"
	"github.com/Felipebmaitan/HomeLab/pkg/registry"
	"github.com/Felipebmaitan/HomeLab/pkg/status"
	"github.com/spf13/cobra"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// NewStartCmd creates the start command: provision, bring every stack up in
// dependency order, poll health, print the summary.
func NewStartCmd() *cobra.Command {
	var (
		envFile     string
		definitions string
		dryRun      bool
	)

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Provision resources and start all stacks in dependency order",
		Long: `Start brings the whole topology up:

1. Load the environment file (fails if missing).
2. Idempotently provision directories and Docker networks.
3. Start each unit in dependency order, polling container health.
4. Print a summary of what is running.

Per-unit failures are warnings; every unit is attempted exactly once.`,

		RunE: opscli.Wrap(func(rc *opsio.RuntimeContext, cmd *cobra.Command, args []string) error {
			logger := otelzap.Ctx(rc.Ctx)

			// ASSESS
			settings, err := config.Load(rc, envFile)
			if err != nil {
				return err
			}

			root := definitions
			if root == "" {
				root, _ = os.Getwd()
			}
			reg, err := registry.Default(root)
			if err != nil {
				return err
			}

			cli, err := docker.NewClient(rc)
			if err != nil {
				return err
			}
			defer cli.Close()

			// INTERVENE
			dirResults, err := provision.EnsureDirectories(rc,
				provision.Directories(settings.BaseDir), settings.PUID, settings.PGID)
			if err != nil {
				return err
			}
			netResults := provision.EnsureNetworks(rc, cli, registry.Networks)
			logger.Info("Provisioning complete",
				zap.Int("directories", len(dirResults)),
				zap.Int("networks", len(netResults)))

			proxyConf := settings.BaseDir + "/proxy/nginx.conf"
			if _, err := os.Stat(proxyConf); err == nil {
				if _, err := provision.PatchProxyConfig(rc, proxyConf); err != nil {
					logger.Warn("Proxy config patch failed", zap.Error(err))
				}
			}

			runtime := compose.CLI{}
			if dryRun {
				logger.Info("Dry run: not starting stacks")
				for _, unit := range reg.StartOrder() {
					def, err := compose.LoadDefinition(rc.Ctx, unit.DefinitionRef)
					if err != nil {
						logger.Warn("Could not parse definition",
							zap.String("unit", unit.Name),
							zap.Error(err))
						continue
					}
					logger.Info("Would start unit",
						zap.String("unit", unit.Name),
						zap.String("project", def.Project),
						zap.Strings("services", def.Services))
				}
				return nil
			}

			controller := lifecycle.NewController(reg, runtime,
				health.NewMonitor(cli.ContainerStatusLines),
				cli, &interaction.TerminalConfirmer{})
			results := controller.StartAll(rc)

			// EVALUATE
			for _, r := range results {
				logger.Info("Unit result",
					zap.String("unit", r.Unit),
					zap.String("status", string(r.Status)),
					zap.Duration("duration", r.Duration))
			}

			reporter := &status.Reporter{Registry: reg, Docker: cli}
			report, err := reporter.Summarize(rc)
			if err != nil {
				logger.Warn("Could not produce status summary", zap.Error(err))
				return nil
			}
			fmt.Print(status.Render(report, settings.DisplayPorts))
			return nil
		}),
	}

	cmd.Flags().StringVar(&envFile, "env-file", config.DefaultEnvFile, "Environment file to load")
	cmd.Flags().StringVar(&definitions, "definitions", "", "Directory holding the compose definitions (default: current directory)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be started without doing it")

	return cmd
}
