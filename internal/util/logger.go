package util

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const envProduction = "production"

var logger *zap.Logger

// InitLogger builds the process logger for env and installs it as zap's
// global. Production logs JSON; anything else gets coloured console output.
// Both write diagnostics to stderr, leaving stdout to the lookup prompts.
func InitLogger(env string) error {
	var config zap.Config
	if env == envProduction {
		config = zap.NewProductionConfig()
	} else {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	config.OutputPaths = []string{"stderr"}

	l, err := config.Build()
	if err != nil {
		return err
	}

	logger = l
	zap.ReplaceGlobals(logger)
	return nil
}

// GetLogger falls back to a development logger when InitLogger was never
// called, as in tests.
func GetLogger() *zap.Logger {
	if logger == nil {
		logger, _ = zap.NewDevelopment()
	}
	return logger
}

func SyncLogger() {
	if logger != nil {
		_ = logger.Sync()
	}
}
