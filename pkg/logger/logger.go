// pkg/logger/logger.go

package logger

import (
	"os"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

var log *zap.Logger

// Initialize builds the global logger from the default config. If the config
// cannot be built (read-only filesystems, bad LOG_LEVEL paths), it falls back
// to a production logger on stderr rather than leaving zap.L() as a no-op.
func Initialize() {
	InitializeWithConfig(defaultConfig())
}

// InitializeWithConfig builds the global logger from an explicit config.
func InitializeWithConfig(cfg zap.Config) {
	var err error
	log, err = cfg.Build()
	if err != nil {
		fallback := zap.NewProductionConfig()
		fallback.OutputPaths = []string{"stderr"}
		log, err = fallback.Build()
		if err != nil {
			os.Exit(1)
		}
	}
	zap.ReplaceGlobals(log)
	otelzap.ReplaceGlobals(otelzap.New(log))
}

// L returns the global logger, initializing it on first use.
func L() *zap.Logger {
	if log == nil {
		Initialize()
	}
	return log
}

// Sync flushes buffered log entries. Sync errors on stdout are expected on
// some platforms and ignored.
func Sync() {
	if log != nil {
		_ = log.Sync()
	}
}
