// pkg/certs/certbot.go

package certs

import (
	"os"
	"path/filepath"
	"time"

	"github.com/Felipebmaitan/HomeLab/pkg/execute"
	"github.com/Felipebmaitan/HomeLab/pkg/opserr"
	"github.com/Felipebmaitan/HomeLab/pkg/opsio"
	cerr "github.com/cockroachdb/errors"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// Strategy is one of the three supported ACME challenge strategies. They
// differ in wildcard support and automation: manual DNS needs an operator at
// the keyboard, the plugin strategy needs provider credentials, and the HTTP
// strategy needs port 80 reachable but supports no wildcards.
type Strategy string

const (
	ManualDNS  Strategy = "manual-dns"
	PluginDNS  Strategy = "plugin-dns"
	HTTPMethod Strategy = "http"
)

// Strategies lists the selectable strategies with their menu descriptions,
// in menu order.
var Strategies = []struct {
	Strategy    Strategy
	Description string
}{
	{ManualDNS, "Manual DNS challenge (wildcard support, requires manual TXT records)"},
	{PluginDNS, "DNS provider plugin (wildcard support, requires credentials file)"},
	{HTTPMethod, "HTTP challenge via webroot (no wildcard support)"},
}

// Request describes one issuance run.
type Request struct {
	Domain     string
	Email      string
	Strategy   Strategy
	Staging    bool
	// ConfDir is where certbot keeps its state; live certs end up under
	// ConfDir/live/<domain>/.
	ConfDir string
	// WebRoot is the ACME webroot served by the proxy, used by HTTPMethod.
	WebRoot string
	// CredentialsFile holds DNS provider credentials, used by PluginDNS.
	CredentialsFile string
}

// supportsWildcard reports whether the strategy can issue *.domain certs.
func (s Strategy) supportsWildcard() bool {
	return s != HTTPMethod
}

// BuildArgs assembles the certbot argument list for a request. Split out so
// it is testable without running certbot.
func BuildArgs(req Request) []string {
	args := []string{"certonly", "--agree-tos",
		"--email", req.Email,
		"--config-dir", req.ConfDir,
		"-d", req.Domain,
	}
	if req.Strategy.supportsWildcard() {
		args = append(args, "-d", "*."+req.Domain)
	}

	switch req.Strategy {
	case ManualDNS:
		// Manual mode cannot be non-interactive; certbot stops and waits
		// for the operator to create the TXT records.
		args = append(args, "--manual", "--preferred-challenges", "dns")
	case PluginDNS:
		args = append(args, "--non-interactive", "--dns-cloudflare",
			"--dns-cloudflare-credentials", req.CredentialsFile)
	case HTTPMethod:
		args = append(args, "--non-interactive", "--webroot",
			"--webroot-path", req.WebRoot)
	}

	if req.Staging {
		args = append(args, "--staging")
	}
	return args
}

// Issue runs certbot for the request. Requires root: certbot binds port 80
// for HTTP challenges and writes to system paths.
func Issue(rc *opsio.RuntimeContext, req Request) error {
	logger := otelzap.Ctx(rc.Ctx)

	if os.Geteuid() != 0 {
		return opserr.NewExpectedError(rc.Ctx,
			cerr.New("certificate issuance must run as root (try sudo)"))
	}

	logger.Info("Requesting certificate",
		zap.String("domain", req.Domain),
		zap.String("strategy", string(req.Strategy)),
		zap.Bool("staging", req.Staging))

	_, err := execute.Run(rc.Ctx, execute.Options{
		Command: "certbot",
		Args:    BuildArgs(req),
		Stream:  true,
		Timeout: 15 * time.Minute,
	})
	if err != nil {
		return cerr.WithHint(err, "certbot failed; check DNS records and port 80 reachability")
	}

	logger.Info("Certificate issued",
		zap.String("fullchain", filepath.Join(req.ConfDir, "live", req.Domain, "fullchain.pem")),
		zap.String("privkey", filepath.Join(req.ConfDir, "live", req.Domain, "privkey.pem")))
	return nil
}
