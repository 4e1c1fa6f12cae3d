package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func setupLimiter(t *testing.T, window time.Duration) (*RedisLimiter, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisLimiter(client, window), mr
}

func TestAllowClaimsSlot(t *testing.T) {
	l, _ := setupLimiter(t, time.Minute)

	ok, err := l.Allow(context.Background(), "a@b.com")
	if err != nil || !ok {
		t.Fatalf("first claim: ok=%v err=%v", ok, err)
	}

	ok, err = l.Allow(context.Background(), "a@b.com")
	if err != nil {
		t.Fatalf("second claim: %v", err)
	}
	if ok {
		t.Error("second claim inside the window must be denied")
	}
}

func TestAllowDistinctAddresses(t *testing.T) {
	l, _ := setupLimiter(t, time.Minute)

	l.Allow(context.Background(), "a@b.com")
	ok, err := l.Allow(context.Background(), "c@d.com")
	if err != nil || !ok {
		t.Fatalf("different address must get its own slot: ok=%v err=%v", ok, err)
	}
}

func TestAllowAfterWindowExpires(t *testing.T) {
	l, mr := setupLimiter(t, time.Minute)

	l.Allow(context.Background(), "a@b.com")
	mr.FastForward(61 * time.Second)

	ok, err := l.Allow(context.Background(), "a@b.com")
	if err != nil || !ok {
		t.Fatalf("expired window must admit again: ok=%v err=%v", ok, err)
	}
}

func TestAllowRedisUnavailable(t *testing.T) {
	l, mr := setupLimiter(t, time.Minute)
	mr.Close()

	ok, err := l.Allow(context.Background(), "a@b.com")
	if err == nil {
		t.Fatal("unreachable redis must be indeterminate, not a silent decision")
	}
	if ok {
		t.Error("indeterminate claim must not report allowed")
	}
}
