// pkg/logger/config.go

package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// defaultConfig returns a sane default Zap config for CLI use: human-readable
// console output on stdout, level taken from LOG_LEVEL.
func defaultConfig() zap.Config {
	cfg := zap.Config{
		Level:            zap.NewAtomicLevelAt(parseLogLevel(os.Getenv("LOG_LEVEL"))),
		Development:      os.Getenv("ENV") == "development",
		Encoding:         "console",
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
		EncoderConfig:    zap.NewDevelopmentEncoderConfig(),
	}
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return cfg
}

func parseLogLevel(level string) zapcore.Level {
	switch level {
	case "TRACE", "DEBUG":
		return zapcore.DebugLevel
	case "WARN":
		return zapcore.WarnLevel
	case "ERROR":
		return zapcore.ErrorLevel
	case "FATAL":
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}
