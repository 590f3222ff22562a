package workers

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"
)

type countingSweeper struct {
	calls atomic.Int32
}

func (s *countingSweeper) Sweep(context.Context) int {
	s.calls.Add(1)
	return 1
}

func TestCacheSweeperRunsUntilCancelled(t *testing.T) {
	cache := &countingSweeper{}
	w := NewCacheSweeper(cache, 5*time.Millisecond, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for cache.calls.Load() < 2 {
		select {
		case <-deadline:
			t.Fatalf("sweeper ran %d times, want at least 2", cache.calls.Load())
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("sweeper did not stop after cancel")
	}
}

func TestNewCacheSweeperDefaultsInterval(t *testing.T) {
	w := NewCacheSweeper(&countingSweeper{}, 0, zap.NewNop())
	if w.Interval != time.Minute {
		t.Fatalf("Interval = %v, want 1m", w.Interval)
	}
}
