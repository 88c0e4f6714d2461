package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/rudralabs/rudra/configs"
	"github.com/rudralabs/rudra/internal/core/domain/apperr"
	"github.com/rudralabs/rudra/internal/core/domain/plan"
	"github.com/rudralabs/rudra/internal/core/ports"
)

// RateLimiterService enforces each plan's per-minute API allowance with a
// fixed window counter keyed by realm.
type RateLimiterService struct {
	repo       ports.RateLimitRepository
	tenantRepo ports.TenantRepository
	plans      *plan.Registry
	window     time.Duration
	keyPrefix  string
	defaultRPM int
	logger     *logrus.Logger
}

func NewRateLimiterService(repo ports.RateLimitRepository, tenantRepo ports.TenantRepository, plans *plan.Registry, cfg *configs.RateLimitConfig, logger *logrus.Logger) ports.RateLimiterService {
	return &RateLimiterService{
		repo:       repo,
		tenantRepo: tenantRepo,
		plans:      plans,
		window:     cfg.Window,
		keyPrefix:  cfg.KeyPrefix,
		defaultRPM: cfg.DefaultRequestsPerMinute,
		logger:     logger,
	}
}

// Allow counts the request against the realm's current window and reports
// whether it fits the plan's allowance. Unknown realms fall back to the
// default allowance; an unlimited plan skips the counter entirely.
func (s *RateLimiterService) Allow(ctx context.Context, realmName string) (bool, int, int, time.Time, error) {
	limit := s.defaultRPM

	t, err := s.tenantRepo.GetByRealm(ctx, realmName)
	switch {
	case err == nil:
		limit = s.plans.GetOrFree(t.Plan).Limits.APIRateLimit
	case errors.Is(err, apperr.ErrNotFound):
	default:
		return false, 0, 0, time.Time{}, err
	}

	if limit == plan.Unlimited {
		return true, plan.Unlimited, plan.Unlimited, time.Now().UTC().Add(s.window), nil
	}

	key := fmt.Sprintf("%s:%s", s.keyPrefix, realmName)
	count, windowStart, err := s.repo.IncrementWindow(ctx, key, s.window, s.window)
	if err != nil {
		return false, 0, 0, time.Time{}, err
	}

	reset := windowStart.Add(s.window)
	remaining := limit - count
	if remaining < 0 {
		remaining = 0
	}
	return count <= limit, remaining, limit, reset, nil
}
