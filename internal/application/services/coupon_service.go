package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/rudralabs/rudra/internal/core/domain/coupon"
	"github.com/rudralabs/rudra/internal/core/ports"
)

// CouponService manages discount codes. Validation is advisory; the
// repository's conditional increment is the only authority on whether a
// redemption slot is still available.
type CouponService struct {
	repo     ports.CouponRepository
	activity ports.ActivityRecorder
	logger   *logrus.Logger
}

func NewCouponService(repo ports.CouponRepository, activity ports.ActivityRecorder, logger *logrus.Logger) ports.CouponService {
	return &CouponService{
		repo:     repo,
		activity: activity,
		logger:   logger,
	}
}

// Create stores a new coupon under its normalized code.
func (s *CouponService) Create(ctx context.Context, createdBy string, req *coupon.CreateCouponRequest) (*coupon.Coupon, error) {
	code := coupon.NormalizeCode(req.Code)
	if code == "" {
		return nil, fmt.Errorf("coupon code is required")
	}

	maxRedemptions := req.MaxRedemptions
	if maxRedemptions == 0 {
		maxRedemptions = coupon.UnlimitedRedemptions
	}

	var expiresAt *time.Time
	if req.DurationDays > 0 {
		t := time.Now().AddDate(0, 0, req.DurationDays)
		expiresAt = &t
	}

	c := &coupon.Coupon{
		ID:             uuid.New(),
		Code:           code,
		DiscountPct:    coupon.ClampDiscount(req.DiscountPct),
		Description:    req.Description,
		MaxRedemptions: maxRedemptions,
		ValidPlans:     req.ValidPlans,
		ExpiresAt:      expiresAt,
		Enabled:        true,
		CreatedBy:      createdBy,
		CreatedAt:      time.Now(),
	}
	if c.ValidPlans == nil {
		c.ValidPlans = []string{}
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	s.activity.LogActivity(ctx, createdBy, "create_coupon",
		fmt.Sprintf("Created coupon %s (%d%% off)", code, c.DiscountPct), "")
	return c, nil
}

func (s *CouponService) List(ctx context.Context, createdBy string) ([]*coupon.Coupon, error) {
	return s.repo.List(ctx, createdBy)
}

// Validate checks a code against the documented precedence order and
// returns the coupon when usable for the given plan.
func (s *CouponService) Validate(ctx context.Context, code, planID string) (*coupon.Coupon, error) {
	c, err := s.repo.GetByCode(ctx, coupon.NormalizeCode(code))
	if err != nil {
		return nil, err
	}
	if err := c.Validate(planID, time.Now()); err != nil {
		return nil, err
	}
	return c, nil
}

// Redeem consumes one redemption slot and records the audit row. The
// increment commits the redemption; a failed audit write is logged and the
// redemption stands.
func (s *CouponService) Redeem(ctx context.Context, code, redeemedBy, realmName string) error {
	normalized := coupon.NormalizeCode(code)
	if err := s.repo.Redeem(ctx, normalized); err != nil {
		return err
	}

	red := &coupon.Redemption{
		ID:         uuid.New(),
		CouponCode: normalized,
		RedeemedBy: redeemedBy,
		RealmName:  realmName,
		RedeemedAt: time.Now(),
	}
	if err := s.repo.AppendRedemption(ctx, red); err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"code":  normalized,
			"realm": realmName,
		}).Warn("Redemption committed but audit record failed")
	}
	return nil
}

// Toggle flips a coupon's enabled flag and returns the new state.
func (s *CouponService) Toggle(ctx context.Context, code string) (*coupon.Coupon, error) {
	normalized := coupon.NormalizeCode(code)
	c, err := s.repo.GetByCode(ctx, normalized)
	if err != nil {
		return nil, err
	}
	c.Enabled = !c.Enabled
	if err := s.repo.SetEnabled(ctx, normalized, c.Enabled); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CouponService) Delete(ctx context.Context, actor, code string) error {
	normalized := coupon.NormalizeCode(code)
	if err := s.repo.Delete(ctx, normalized); err != nil {
		if errors.Is(err, coupon.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete coupon: %w", err)
	}
	s.activity.LogActivity(ctx, actor, "delete_coupon", fmt.Sprintf("Deleted coupon %s", normalized), "")
	return nil
}

func (s *CouponService) Redemptions(ctx context.Context, code string) ([]*coupon.Redemption, error) {
	return s.repo.ListRedemptions(ctx, coupon.NormalizeCode(code), 100)
}
