// cmd/root.go

package cmd

import (
	"github.com/Felipebmaitan/HomeLab/cmd/cert"
	"github.com/Felipebmaitan/HomeLab/cmd/start"
	"github.com/Felipebmaitan/HomeLab/cmd/status"
	"github.com/Felipebmaitan/HomeLab/cmd/stop"
	"github.com/Felipebmaitan/HomeLab/pkg/opscli"
	"github.com/Felipebmaitan/HomeLab/pkg/opsio"
	"github.com/spf13/cobra"
)

// RootCmd is the base command for homelab.
var RootCmd = &cobra.Command{
	Use:   "homelab",
	Short: "Orchestrate the homelab Docker Compose stacks",
	Long: `homelab sequences a fixed set of Docker Compose stacks on one host:
a Bitcoin full node with Electrs and the Mempool explorer, the media
automation suite (Sonarr, Radarr, Jackett, qBittorrent, Jellyfin), and the
nginx/certbot reverse proxy that fronts everything.

Stacks are brought up in dependency order and torn down in reverse,
with health polling and idempotent network/directory provisioning.`,
	SilenceUsage: true,

	RunE: opscli.Wrap(func(rc *opsio.RuntimeContext, cmd *cobra.Command, args []string) error {
		return cmd.Help()
	}),
}

func init() {
	RootCmd.AddCommand(start.NewStartCmd())
	RootCmd.AddCommand(stop.NewStopCmd())
	RootCmd.AddCommand(status.NewStatusCmd())
	RootCmd.AddCommand(cert.NewCertCmd())
}

// Execute runs the CLI and returns the resulting error for exit-code mapping.
func Execute() error {
	return RootCmd.Execute()
}
