package redis

import (
	"context"
	"errors"
	"time"
	"yatube/internal/config"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const defaultKeyPrefix = "pagecache:"

// PageCacheRepositoryRedis memoizes pages in Redis with SET ... EX; entries
// are shared by every app instance.
type PageCacheRepositoryRedis struct {
	Client *redis.Client
	Prefix string
}

func NewPageCacheRepositoryRedis(client *redis.Client) *PageCacheRepositoryRedis {
	return &PageCacheRepositoryRedis{
		Client: client,
		Prefix: defaultKeyPrefix,
	}
}

func (r *PageCacheRepositoryRedis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := r.Client.Get(ctx, r.Prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

func (r *PageCacheRepositoryRedis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return r.Client.Set(ctx, r.Prefix+key, value, ttl).Err()
}

// Flush deletes every key under the prefix.
func (r *PageCacheRepositoryRedis) Flush(ctx context.Context) error {
	var (
		cursor  uint64
		deleted int
	)
	for {
		keys, next, err := r.Client.Scan(ctx, cursor, r.Prefix+"*", 100).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := r.Client.Del(ctx, keys...).Err(); err != nil {
				return err
			}
			deleted += len(keys)
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}

	config.Logger.Info("Flushed page cache", zap.String("prefix", r.Prefix), zap.Int("keys", deleted))
	return nil
}
