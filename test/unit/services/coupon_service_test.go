package services_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	impl "github.com/rudralabs/rudra/internal/application/services"
	"github.com/rudralabs/rudra/internal/core/domain/coupon"
	tmocks "github.com/rudralabs/rudra/test/mocks"
)

func TestCreateCoupon_NormalizesAndDefaults(t *testing.T) {
	var stored *coupon.Coupon
	repo := &tmocks.CouponRepositoryMock{
		CreateFn: func(ctx context.Context, c *coupon.Coupon) error { stored = c; return nil },
	}
	svc := impl.NewCouponService(repo, &tmocks.ActivityRecorderMock{}, testLogger())

	c, err := svc.Create(context.Background(), "admin@example.com", &coupon.CreateCouponRequest{
		Code:        "  save20 ",
		DiscountPct: 150,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored == nil {
		t.Fatal("expected coupon persisted")
	}
	if c.Code != "SAVE20" {
		t.Fatalf("expected normalized code, got %q", c.Code)
	}
	if c.DiscountPct != 100 {
		t.Fatalf("expected discount clamped to 100, got %d", c.DiscountPct)
	}
	if c.MaxRedemptions != coupon.UnlimitedRedemptions {
		t.Fatalf("expected unlimited redemptions default, got %d", c.MaxRedemptions)
	}
	if !c.Enabled {
		t.Fatal("expected new coupon enabled")
	}
}

func TestValidateCoupon_PrecedenceOrder(t *testing.T) {
	past := time.Now().Add(-time.Hour)
	stored := &coupon.Coupon{
		Code:           "STACKED",
		Enabled:        false,
		ExpiresAt:      &past,
		MaxRedemptions: 1,
		TimesRedeemed:  1,
		ValidPlans:     []string{"pro"},
	}
	repo := &tmocks.CouponRepositoryMock{
		GetByCodeFn: func(ctx context.Context, code string) (*coupon.Coupon, error) { return stored, nil },
	}
	svc := impl.NewCouponService(repo, &tmocks.ActivityRecorderMock{}, testLogger())

	// All checks fail at once; disabled must win.
	if _, err := svc.Validate(context.Background(), "STACKED", "free"); !errors.Is(err, coupon.ErrDisabled) {
		t.Fatalf("expected disabled first, got %v", err)
	}

	stored.Enabled = true
	if _, err := svc.Validate(context.Background(), "STACKED", "free"); !errors.Is(err, coupon.ErrExpired) {
		t.Fatalf("expected expiry second, got %v", err)
	}

	stored.ExpiresAt = nil
	if _, err := svc.Validate(context.Background(), "STACKED", "free"); !errors.Is(err, coupon.ErrRedemptionLimit) {
		t.Fatalf("expected redemption limit third, got %v", err)
	}

	stored.TimesRedeemed = 0
	if _, err := svc.Validate(context.Background(), "STACKED", "free"); !errors.Is(err, coupon.ErrPlanNotEligible) {
		t.Fatalf("expected plan eligibility last, got %v", err)
	}

	if _, err := svc.Validate(context.Background(), "STACKED", "pro"); err != nil {
		t.Fatalf("expected valid for pro, got %v", err)
	}
}

func TestRedeemCoupon_LimitNeverExceeded(t *testing.T) {
	const limit = 3
	var mu sync.Mutex
	redeemed := 0
	repo := &tmocks.CouponRepositoryMock{
		RedeemFn: func(ctx context.Context, code string) error {
			mu.Lock()
			defer mu.Unlock()
			if redeemed >= limit {
				return coupon.ErrRedemptionLimit
			}
			redeemed++
			return nil
		},
	}
	svc := impl.NewCouponService(repo, &tmocks.ActivityRecorderMock{}, testLogger())

	var wg sync.WaitGroup
	var denied sync.Map
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if err := svc.Redeem(context.Background(), "LIMITED", "admin@example.com", "realm"); err != nil {
				denied.Store(i, err)
			}
		}(i)
	}
	wg.Wait()

	if redeemed != limit {
		t.Fatalf("expected exactly %d redemptions, got %d", limit, redeemed)
	}
	deniedCount := 0
	denied.Range(func(_, v any) bool {
		if !errors.Is(v.(error), coupon.ErrRedemptionLimit) {
			t.Fatalf("expected redemption limit error, got %v", v)
		}
		deniedCount++
		return true
	})
	if deniedCount != 10-limit {
		t.Fatalf("expected %d denials, got %d", 10-limit, deniedCount)
	}
}

func TestRedeemCoupon_AuditFailureDoesNotRollBack(t *testing.T) {
	repo := &tmocks.CouponRepositoryMock{
		AppendRedemptionFn: func(ctx context.Context, r *coupon.Redemption) error {
			return errors.New("audit store down")
		},
	}
	svc := impl.NewCouponService(repo, &tmocks.ActivityRecorderMock{}, testLogger())

	if err := svc.Redeem(context.Background(), "SAVE20", "admin@example.com", "realm"); err != nil {
		t.Fatalf("redemption must stand when only the audit write fails: %v", err)
	}
}

func TestToggleCoupon(t *testing.T) {
	stored := &coupon.Coupon{Code: "FLIP", Enabled: true}
	repo := &tmocks.CouponRepositoryMock{
		GetByCodeFn: func(ctx context.Context, code string) (*coupon.Coupon, error) { return stored, nil },
		SetEnabledFn: func(ctx context.Context, code string, enabled bool) error {
			stored.Enabled = enabled
			return nil
		},
	}
	svc := impl.NewCouponService(repo, &tmocks.ActivityRecorderMock{}, testLogger())

	c, err := svc.Toggle(context.Background(), "FLIP")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Enabled {
		t.Fatal("expected coupon disabled after toggle")
	}
}
