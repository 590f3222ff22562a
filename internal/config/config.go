package config

import (
	"log"
	"os"

	"go.uber.org/zap"
)

var Logger *zap.Logger

// InitLogger builds the process-wide logger. APP_ENV=production switches to
// the JSON production encoder, anything else gets the development one.
func InitLogger() {
	var err error
	if os.Getenv("APP_ENV") == "production" {
		Logger, err = zap.NewProduction()
	} else {
		Logger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("Failed to initialize zap logger: %v", err)
	}

	Logger.Info("Zap logger initialized")
}

// SyncLogger flushes buffered log entries.
func SyncLogger() {
	if Logger != nil {
		_ = Logger.Sync()
	}
}

func init() {
	// Packages log through config.Logger; keep it usable before InitLogger runs (tests).
	Logger = zap.NewNop()
}
