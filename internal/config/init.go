package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Config holds everything read from the environment at startup.
type Config struct {
	AppPort string `env:"APP_PORT" envDefault:"8080"`
	AppEnv  string `env:"APP_ENV" envDefault:"development"`

	DBDSN string `env:"DB_DSN" envDefault:"sqlite://yatube.db"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	JWTSecret  string `env:"JWT_SECRET,required"`
	AdminToken string `env:"ADMIN_TOKEN"`

	PageCacheTTL       time.Duration `env:"PAGE_CACHE_TTL" envDefault:"20s"`
	CacheSweepInterval time.Duration `env:"CACHE_SWEEP_INTERVAL" envDefault:"1m"`

	MediaRoot      string  `env:"MEDIA_ROOT" envDefault:"media"`
	CORSOrigin     string  `env:"CORS_ORIGIN" envDefault:"*"`
	WriteRateLimit float64 `env:"WRITE_RATE_LIMIT" envDefault:"1"`
}

// Load reads an optional .env file and parses the environment into a Config.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		Logger.Info("No .env file found, using system environment variables")
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if cfg.PageCacheTTL <= 0 {
		return nil, fmt.Errorf("PAGE_CACHE_TTL must be positive, got %s", cfg.PageCacheTTL)
	}
	return &cfg, nil
}

// Init is Load for the process entry point: configuration errors are fatal.
func Init() *Config {
	cfg, err := Load()
	if err != nil {
		Logger.Fatal("Invalid configuration", zap.Error(err))
	}
	return cfg
}
