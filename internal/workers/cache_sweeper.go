package workers

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Sweeper is a cache that can drop its expired entries.
type Sweeper interface {
	Sweep(ctx context.Context) int
}

// CacheSweeper periodically evicts expired page-cache entries so the
// in-memory store does not grow with every page number ever requested.
type CacheSweeper struct {
	Cache    Sweeper
	Interval time.Duration
	Logger   *zap.Logger
}

func NewCacheSweeper(cache Sweeper, interval time.Duration, logger *zap.Logger) *CacheSweeper {
	if interval <= 0 {
		interval = time.Minute
	}
	return &CacheSweeper{
		Cache:    cache,
		Interval: interval,
		Logger:   logger,
	}
}

// Run sweeps every Interval until ctx is cancelled.
func (w *CacheSweeper) Run(ctx context.Context) {
	w.Logger.Info("CacheSweeper started", zap.Duration("interval", w.Interval))

	ticker := time.NewTicker(w.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.Logger.Info("CacheSweeper stopped")
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *CacheSweeper) sweep(ctx context.Context) {
	if removed := w.Cache.Sweep(ctx); removed > 0 {
		w.Logger.Debug("Evicted expired page cache entries", zap.Int("count", removed))
	}
}
