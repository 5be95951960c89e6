// cmd/stop/stop.go

package stop

import (
	"os"

	"github.com/Felipebmaitan/HomeLab/pkg/compose"
	"github.com/Felipebmaitan/HomeLab/pkg/docker"
	"github.com/Felipebmaitan/HomeLab/pkg/health"
	"github.com/Felipebmaitan/HomeLab/pkg/interaction"
	"github.com/Felipebmaitan/HomeLab/pkg/lifecycle"
	"github.com/Felipebmaitan/HomeLab/pkg/opscli"
	"github.com/Felipebmaitan/HomeLab/pkg/opsio"
	"github.com/Felipebmaitan/HomeLab/pkg/registry"
	"github.com/spf13/cobra"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// NewStopCmd creates the stop command: bring every running stack down in
// reverse dependency order, optionally tearing down networks and volumes.
func NewStopCmd() *cobra.Command {
	var (
		definitions    string
		removeNetworks bool
		removeVolumes  bool
	)

	cmd := &cobra.Command{
		Use:   "stop",
		Short: "Stop all running stacks in reverse dependency order",
		Long: `Stop walks the topology in the exact reverse of start order and
brings each running unit down. Units that are already stopped are skipped.

--remove-networks removes the shared Docker networks afterwards.
--remove-volumes removes ALL Docker volumes. This destroys blockchain data,
media libraries and configuration, so it requires typing an exact
confirmation phrase.`,

		RunE: opscli.Wrap(func(rc *opsio.RuntimeContext, cmd *cobra.Command, args []string) error {
			logger := otelzap.Ctx(rc.Ctx)

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

			controller := lifecycle.NewController(reg, compose.CLI{},
				health.NewMonitor(cli.ContainerStatusLines),
				cli, &interaction.TerminalConfirmer{})

			report := controller.StopAll(rc, lifecycle.StopOptions{
				RemoveNetworks: removeNetworks,
				RemoveVolumes:  removeVolumes,
			})

			for _, r := range report.Units {
				logger.Info("Unit result",
					zap.String("unit", r.Unit),
					zap.String("status", string(r.Status)),
					zap.Duration("duration", r.Duration))
			}
			for _, n := range report.Networks {
				logger.Info("Network result",
					zap.String("network", n.Name),
					zap.String("outcome", string(n.Outcome)))
			}
			switch report.Volumes.Outcome {
			case lifecycle.VolumesRemoved:
				logger.Info("Volumes removed",
					zap.Strings("removed", report.Volumes.Removed),
					zap.Strings("failed", report.Volumes.Failed))
			case lifecycle.VolumesCancelled:
				logger.Info("Volume removal cancelled, no volumes were touched")
			case lifecycle.VolumesFailed:
				logger.Warn("Volume removal could not run",
					zap.String("error", report.Volumes.Error))
			}
			return nil
		}),
	}

	cmd.Flags().StringVar(&definitions, "definitions", "", "Directory holding the compose definitions (default: current directory)")
	cmd.Flags().BoolVar(&removeNetworks, "remove-networks", false, "Remove the shared Docker networks after stopping")
	cmd.Flags().BoolVar(&removeVolumes, "remove-volumes", false, "Remove ALL Docker volumes (requires confirmation phrase)")

	return cmd
}
