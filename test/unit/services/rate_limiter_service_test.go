package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/rudralabs/rudra/configs"
	impl "github.com/rudralabs/rudra/internal/application/services"
	"github.com/rudralabs/rudra/internal/core/domain/plan"
	"github.com/rudralabs/rudra/internal/core/ports"
	tmocks "github.com/rudralabs/rudra/test/mocks"
)

func newRateLimiter(repo *tmocks.RateLimitRepositoryMock, tenants *tmocks.TenantRepositoryMock) ports.RateLimiterService {
	cfg := &configs.RateLimitConfig{DefaultRequestsPerMinute: 60, Window: time.Minute, KeyPrefix: "ratelimit"}
	return impl.NewRateLimiterService(repo, tenants, plan.BuiltinRegistry(), cfg, testLogger())
}

func TestAllow_WithinPlanLimit(t *testing.T) {
	windowStart := time.Now().UTC().Truncate(time.Minute)
	repo := &tmocks.RateLimitRepositoryMock{
		IncrementWindowFn: func(ctx context.Context, key string, window, ttl time.Duration) (int, time.Time, error) {
			if key != "ratelimit:acme" {
				t.Fatalf("unexpected counter key %q", key)
			}
			return 5, windowStart, nil
		},
	}
	svc := newRateLimiter(repo, ownedTenantRepo("acme", "free"))

	allowed, remaining, limit, reset, err := svc.Allow(context.Background(), "acme")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !allowed {
		t.Fatal("request 5 of 100 should be allowed")
	}
	if limit != 100 {
		t.Fatalf("free plan limit should be 100, got %d", limit)
	}
	if remaining != 95 {
		t.Fatalf("expected 95 remaining, got %d", remaining)
	}
	if !reset.Equal(windowStart.Add(time.Minute)) {
		t.Fatalf("reset should be window start plus window, got %v", reset)
	}
}

func TestAllow_OverLimit(t *testing.T) {
	repo := &tmocks.RateLimitRepositoryMock{
		IncrementWindowFn: func(ctx context.Context, key string, window, ttl time.Duration) (int, time.Time, error) {
			return 101, time.Now().UTC(), nil
		},
	}
	svc := newRateLimiter(repo, ownedTenantRepo("acme", "free"))

	allowed, remaining, _, _, err := svc.Allow(context.Background(), "acme")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if allowed {
		t.Fatal("request 101 of 100 should be denied")
	}
	if remaining != 0 {
		t.Fatalf("remaining should clamp to zero, got %d", remaining)
	}
}

func TestAllow_EnterpriseSkipsCounter(t *testing.T) {
	repo := &tmocks.RateLimitRepositoryMock{
		IncrementWindowFn: func(ctx context.Context, key string, window, ttl time.Duration) (int, time.Time, error) {
			t.Fatal("unlimited plans must not touch the counter")
			return 0, time.Time{}, nil
		},
	}
	svc := newRateLimiter(repo, ownedTenantRepo("acme", "enterprise"))

	allowed, remaining, limit, _, err := svc.Allow(context.Background(), "acme")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !allowed {
		t.Fatal("unlimited plan should always be allowed")
	}
	if limit != plan.Unlimited || remaining != plan.Unlimited {
		t.Fatalf("expected unlimited sentinels, got limit=%d remaining=%d", limit, remaining)
	}
}

func TestAllow_UnknownRealmUsesDefault(t *testing.T) {
	repo := &tmocks.RateLimitRepositoryMock{
		IncrementWindowFn: func(ctx context.Context, key string, window, ttl time.Duration) (int, time.Time, error) {
			return 61, time.Now().UTC(), nil
		},
	}
	svc := newRateLimiter(repo, &tmocks.TenantRepositoryMock{})

	allowed, _, limit, _, err := svc.Allow(context.Background(), "ghost")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if limit != 60 {
		t.Fatalf("unknown realms should use the default allowance, got %d", limit)
	}
	if allowed {
		t.Fatal("request 61 of 60 should be denied")
	}
}
