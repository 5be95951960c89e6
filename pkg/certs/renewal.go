// pkg/certs/renewal.go

package certs

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/Felipebmaitan/HomeLab/pkg/docker"
	"github.com/Felipebmaitan/HomeLab/pkg/execute"
	"github.com/Felipebmaitan/HomeLab/pkg/opsio"
	cerr "github.com/cockroachdb/errors"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// RenewalScriptName is the generated script the cron entry invokes.
const RenewalScriptName = "renew-certs.sh"

const renewalScript = `#!/bin/sh
# Generated by homelab cert. Renews certificates and reloads the proxy.
set -e
certbot renew --quiet
docker compose -f %PROXY_COMPOSE% exec -T nginx nginx -s reload
`

// WriteRenewalScript writes the renewal script next to the proxy definition
// and marks it executable. Overwrites any previous version: the script is
// generated output, not operator-owned config.
func WriteRenewalScript(rc *opsio.RuntimeContext, dir, proxyCompose string) (string, error) {
	logger := otelzap.Ctx(rc.Ctx)

	path := filepath.Join(dir, RenewalScriptName)
	content := strings.ReplaceAll(renewalScript, "%PROXY_COMPOSE%", proxyCompose)
	if err := os.WriteFile(path, []byte(content), 0755); err != nil {
		return "", cerr.Wrapf(err, "failed to write renewal script %s", path)
	}

	logger.Info("Wrote renewal script", zap.String("path", path))
	return path, nil
}

// EnsureCronEntry installs a twice-daily renewal cron entry via crontab,
// skipping installation when an entry for the script is already present.
func EnsureCronEntry(rc *opsio.RuntimeContext, scriptPath string) (docker.EnsureOutcome, error) {
	logger := otelzap.Ctx(rc.Ctx)

	current, err := execute.Run(rc.Ctx, execute.Options{
		Command: "crontab",
		Args:    []string{"-l"},
		Capture: true,
	})
	if err != nil {
		// No crontab yet reads as an error from crontab -l; start fresh.
		current = ""
	}

	if strings.Contains(current, scriptPath) {
		logger.Info("Renewal cron entry already present", zap.String("script", scriptPath))
		return docker.AlreadyExists, nil
	}

	entry := "17 3,15 * * * " + scriptPath + "\n"
	updated := current
	if updated != "" && !strings.HasSuffix(updated, "\n") {
		updated += "\n"
	}
	updated += entry

	tmp, err := os.CreateTemp("", "homelab-cron-*")
	if err != nil {
		return "", cerr.Wrap(err, "failed to create temp crontab")
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(updated); err != nil {
		tmp.Close()
		return "", cerr.Wrap(err, "failed to write temp crontab")
	}
	tmp.Close()

	if _, err := execute.Run(rc.Ctx, execute.Options{
		Command: "crontab",
		Args:    []string{tmp.Name()},
	}); err != nil {
		return "", cerr.Wrap(err, "failed to install crontab")
	}

	logger.Info("Installed renewal cron entry", zap.String("script", scriptPath))
	return docker.Created, nil
}
