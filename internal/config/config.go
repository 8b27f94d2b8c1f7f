package config

import (
	"log"

	"go.uber.org/zap"
)

// Logger is the process-wide logger. It discards everything until InitLogger runs.
var Logger = zap.NewNop()

// InitLogger builds a development logger for the dev environment and a
// production (JSON) logger everywhere else.
func InitLogger(env string) {
	var (
		l   *zap.Logger
		err error
	)
	if env == EnvDev {
		l, err = zap.NewDevelopment()
	} else {
		l, err = zap.NewProduction()
	}
	if err != nil {
		log.Fatalf("Failed to initialize zap logger: %v", err)
	}
	Logger = l

	Logger.Info("✅ Zap logger initialized", zap.String("env", env))
}
