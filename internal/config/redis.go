package config

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// RedisClient is nil unless REDIS_ADDR was configured.
var RedisClient *redis.Client

// InitRedis connects to Redis when an address is configured. Without one the
// page cache stays in process memory.
func InitRedis(cfg *Config) {
	if cfg.RedisAddr == "" {
		Logger.Info("REDIS_ADDR is not set, page cache stays in memory")
		return
	}

	RedisClient = redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	s, err := RedisClient.Ping(ctx).Result()
	if err != nil {
		Logger.Fatal("Error connecting to Redis", zap.Error(err))
	}
	Logger.Info("Connected to Redis", zap.String("addr", cfg.RedisAddr), zap.String("ping", s))
}

func CloseRedis() {
	if RedisClient == nil {
		return
	}
	if err := RedisClient.Close(); err != nil {
		Logger.Error("Error closing Redis connection", zap.Error(err))
	}
}
