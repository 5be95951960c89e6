// main.go

package main

import (
	"os"

	"github.com/Felipebmaitan/HomeLab/cmd"
	"github.com/Felipebmaitan/HomeLab/pkg/logger"
	"github.com/Felipebmaitan/HomeLab/pkg/opserr"
	"github.com/Felipebmaitan/HomeLab/pkg/telemetry"

	"go.uber.org/zap"
)

func main() {
	logger.Initialize()
	defer logger.Sync()

	if err := telemetry.Init("homelab"); err != nil {
		// Telemetry is best-effort; the CLI works without it.
		logger.L().Warn("Telemetry initialization failed", zap.Error(err))
	}

	if err := cmd.Execute(); err != nil {
		os.Exit(opserr.GetExitCode(err))
	}
}
