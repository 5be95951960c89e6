// cmd/status/status.go

package status

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/Felipebmaitan/HomeLab/pkg/config"
	"github.com/Felipebmaitan/HomeLab/pkg/docker"
	"github.com/Felipebmaitan/HomeLab/pkg/opscli"
	"github.com/Felipebmaitan/HomeLab/pkg/opsio"
	"github.com/Felipebmaitan/HomeLab/pkg/registry"
	"github.com/Felipebmaitan/HomeLab/pkg/status"
	cerr "github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
)

// NewStatusCmd creates the status command, a read-only snapshot of which
// units are running plus aggregate Docker resource counts.
func NewStatusCmd() *cobra.Command {
	var (
		envFile    string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show which stacks are running",
		Long: `Status inspects the Docker daemon and reports, per unit, whether its
containers are running, grouped by category, along with aggregate counts of
containers, images, volumes and networks. It never changes any state.`,

		RunE: opscli.Wrap(func(rc *opsio.RuntimeContext, cmd *cobra.Command, args []string) error {
			reg, err := registry.Default(".")
			if err != nil {
				return err
			}

			cli, err := docker.NewClient(rc)
			if err != nil {
				return err
			}
			defer cli.Close()

			reporter := &status.Reporter{Registry: reg, Docker: cli}
			report, err := reporter.Summarize(rc)
			if err != nil {
				return cerr.Wrap(err, "summarize stack status")
			}

			if jsonOutput {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}

			// Ports are display-only; a missing env file just means no port hints.
			var ports map[string]string
			if settings, err := config.Load(rc, envFile); err == nil {
				ports = settings.DisplayPorts
			}
			fmt.Print(status.Render(report, ports))
			return nil
		}),
	}

	cmd.Flags().StringVar(&envFile, "env-file", config.DefaultEnvFile, "Environment file used for display ports")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the report as JSON")

	return cmd
}
