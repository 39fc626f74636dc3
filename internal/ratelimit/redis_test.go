package ratelimit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestLimiter(t *testing.T, limit int, window time.Duration) (*Redis, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRedis(rdb, limit, window), mr
}

func TestCheckLimitAllowsWithinBudget(t *testing.T) {
	l, _ := newTestLimiter(t, 3, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := l.CheckLimit(ctx, "llm-extraction"); err != nil {
			t.Fatalf("call %d unexpectedly limited: %v", i+1, err)
		}
	}
	if err := l.CheckLimit(ctx, "llm-extraction"); !errors.Is(err, ErrLimitExceeded) {
		t.Fatalf("fourth call should be limited, got %v", err)
	}
}

func TestCheckLimitWindowReset(t *testing.T) {
	l, mr := newTestLimiter(t, 1, time.Minute)
	ctx := context.Background()

	if err := l.CheckLimit(ctx, "k"); err != nil {
		t.Fatalf("first call limited: %v", err)
	}
	if err := l.CheckLimit(ctx, "k"); !errors.Is(err, ErrLimitExceeded) {
		t.Fatalf("second call should be limited, got %v", err)
	}

	mr.FastForward(2 * time.Minute)
	if err := l.CheckLimit(ctx, "k"); err != nil {
		t.Fatalf("call after window should pass, got %v", err)
	}
}

func TestCheckLimitKeysAreIndependent(t *testing.T) {
	l, _ := newTestLimiter(t, 1, time.Minute)
	ctx := context.Background()

	if err := l.CheckLimit(ctx, "a"); err != nil {
		t.Fatalf("key a: %v", err)
	}
	if err := l.CheckLimit(ctx, "b"); err != nil {
		t.Fatalf("key b should have its own bucket: %v", err)
	}
}
