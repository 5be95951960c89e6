// cmd/cert/cert.go

package cert

import (
	"os"

	"github.com/Felipebmaitan/HomeLab/pkg/certs"
	"github.com/Felipebmaitan/HomeLab/pkg/config"
	"github.com/Felipebmaitan/HomeLab/pkg/interaction"
	"github.com/Felipebmaitan/HomeLab/pkg/opscli"
	"github.com/Felipebmaitan/HomeLab/pkg/opserr"
	"github.com/Felipebmaitan/HomeLab/pkg/opsio"
	cerr "github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// NewCertCmd creates the cert command: obtain a Let's Encrypt certificate for
// the configured domain and install automatic renewal.
func NewCertCmd() *cobra.Command {
	var (
		envFile     string
		staging     bool
		credentials string
	)

	cmd := &cobra.Command{
		Use:   "cert [domain] [email] [staging]",
		Short: "Obtain a TLS certificate and set up automatic renewal",
		Long: `Cert runs certbot for the stack's domain. The challenge method is chosen
interactively: manual DNS (wildcard, no credentials needed), a DNS provider
plugin (wildcard, fully automated), or HTTP webroot (no wildcard).

Domain and email default to DOMAIN and ADMIN_EMAIL from the environment file.
A renewal script and a crontab entry are installed afterwards. Must run as
root so certbot can write its configuration.`,
		Args: cobra.RangeArgs(0, 3),

		RunE: opscli.Wrap(func(rc *opsio.RuntimeContext, cmd *cobra.Command, args []string) error {
			logger := otelzap.Ctx(rc.Ctx)

			// ASSESS
			if os.Geteuid() != 0 {
				return opserr.NewExpectedError(rc.Ctx,
					cerr.New("cert must run as root (try sudo)"))
			}

			settings, err := config.Load(rc, envFile)
			if err != nil {
				return err
			}

			domain := settings.Domain
			if len(args) > 0 {
				domain = args[0]
			}
			if domain == "" || domain == config.PlaceholderDomain {
				return opserr.NewExpectedError(rc.Ctx, cerr.Newf(
					"DOMAIN is unset or still %q, edit %s first",
					config.PlaceholderDomain, envFile))
			}

			email := settings.AdminEmail
			if len(args) > 1 {
				email = args[1]
			}
			if email == "" {
				email = interaction.PromptInput("Email for certificate notices", "")
			}

			// Positional "staging" is accepted alongside the flag.
			if len(args) > 2 && args[2] == "staging" {
				staging = true
			}

			options := make([]string, len(certs.Strategies))
			for i, s := range certs.Strategies {
				options[i] = s.Description
			}
			choice := interaction.PromptSelect("How should the domain be validated?", options)
			strategy := certs.Strategies[choice].Strategy

			req := certs.Request{
				Domain:          domain,
				Email:           email,
				Strategy:        strategy,
				Staging:         staging,
				ConfDir:         settings.BaseDir + "/proxy/certbot/conf",
				WebRoot:         settings.BaseDir + "/proxy/certbot/www",
				CredentialsFile: credentials,
			}

			// INTERVENE
			if err := certs.Issue(rc, req); err != nil {
				return err
			}

			scriptPath, err := certs.WriteRenewalScript(rc, settings.BaseDir,
				settings.BaseDir+"/proxy/docker-compose.yml")
			if err != nil {
				return err
			}
			cronOutcome, err := certs.EnsureCronEntry(rc, scriptPath)
			if err != nil {
				logger.Warn("Could not install renewal cron entry", zap.Error(err))
			}

			// EVALUATE
			logger.Info("Certificate obtained",
				zap.String("domain", domain),
				zap.Bool("staging", staging),
				zap.String("cert", req.ConfDir+"/live/"+domain+"/fullchain.pem"),
				zap.String("key", req.ConfDir+"/live/"+domain+"/privkey.pem"),
				zap.String("renewal_cron", string(cronOutcome)))
			return nil
		}),
	}

	cmd.Flags().StringVar(&envFile, "env-file", config.DefaultEnvFile, "Environment file to load")
	cmd.Flags().BoolVar(&staging, "staging", false, "Use the Let's Encrypt staging endpoint")
	cmd.Flags().StringVar(&credentials, "credentials", "", "DNS provider credentials file (plugin strategy)")

	return cmd
}
