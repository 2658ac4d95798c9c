package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestLimiter(t *testing.T, limit int) (*Limiter, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis run failed: %v", err)
	}
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = client.Close()
		mr.Close()
	})
	return NewLimiter(client, limit, time.Minute), mr
}

func TestLimiterAllowsUpToLimit(t *testing.T) {
	l, _ := newTestLimiter(t, 3)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		res, err := l.Allow(ctx, "login", "10.0.0.1")
		if err != nil {
			t.Fatalf("allow %d: %v", i, err)
		}
		if !res.Allowed {
			t.Fatalf("attempt %d should be allowed", i+1)
		}
		if res.Remaining != 2-i {
			t.Fatalf("attempt %d: remaining = %d, want %d", i+1, res.Remaining, 2-i)
		}
	}

	res, err := l.Allow(ctx, "login", "10.0.0.1")
	if err != nil {
		t.Fatalf("allow: %v", err)
	}
	if res.Allowed || res.Remaining != 0 {
		t.Fatalf("fourth attempt should be denied, got %+v", res)
	}
	if res.ResetIn <= 0 || res.ResetIn > time.Minute {
		t.Fatalf("unexpected reset %s", res.ResetIn)
	}
}

func TestLimiterKeysAreIndependent(t *testing.T) {
	l, _ := newTestLimiter(t, 1)
	ctx := context.Background()

	if res, _ := l.Allow(ctx, "login", "a"); !res.Allowed {
		t.Fatal("first key should be allowed")
	}
	if res, _ := l.Allow(ctx, "login", "b"); !res.Allowed {
		t.Fatal("second key should have its own budget")
	}
	if res, _ := l.Allow(ctx, "signup", "a"); !res.Allowed {
		t.Fatal("scopes should not share budgets")
	}
}

func TestLimiterWindowResets(t *testing.T) {
	l, mr := newTestLimiter(t, 1)
	ctx := context.Background()

	if res, _ := l.Allow(ctx, "login", "a"); !res.Allowed {
		t.Fatal("first attempt should be allowed")
	}
	if res, _ := l.Allow(ctx, "login", "a"); res.Allowed {
		t.Fatal("second attempt should be denied")
	}

	mr.FastForward(time.Minute + time.Second)
	if res, _ := l.Allow(ctx, "login", "a"); !res.Allowed {
		t.Fatal("attempt after window should be allowed")
	}
}

func TestLimiterReportsRedisFailure(t *testing.T) {
	l, mr := newTestLimiter(t, 1)
	mr.Close()

	if _, err := l.Allow(context.Background(), "login", "a"); err == nil {
		t.Fatal("expected error when redis is unavailable")
	}
}
