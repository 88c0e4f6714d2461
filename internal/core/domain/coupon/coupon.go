package coupon

import (
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// UnlimitedRedemptions is the sentinel for coupons with no redemption cap.
const UnlimitedRedemptions = -1

// Validation failures in precedence order: existence, enabled, expiry,
// redemption count, plan eligibility. The first failing check wins.
var (
	ErrNotFound        = errors.New("coupon not found")
	ErrDisabled        = errors.New("coupon is disabled")
	ErrExpired         = errors.New("coupon has expired")
	ErrRedemptionLimit = errors.New("coupon redemption limit reached")
	ErrPlanNotEligible = errors.New("coupon not valid for plan")
	ErrAlreadyExists   = errors.New("coupon already exists")
)

// Coupon is a billing discount code. Code is globally unique, stored
// normalized (upper-case, trimmed). TimesRedeemed never exceeds
// MaxRedemptions when the cap is set; the store's conditional increment
// maintains that invariant under concurrency.
type Coupon struct {
	ID             uuid.UUID  `json:"id" db:"id"`
	Code           string     `json:"code" db:"code"`
	DiscountPct    int        `json:"discount_pct" db:"discount_pct"`
	Description    string     `json:"description" db:"description"`
	MaxRedemptions int        `json:"max_redemptions" db:"max_redemptions"`
	TimesRedeemed  int        `json:"times_redeemed" db:"times_redeemed"`
	ValidPlans     []string   `json:"valid_plans" db:"valid_plans"`
	ExpiresAt      *time.Time `json:"expires_at,omitempty" db:"expires_at"`
	Enabled        bool       `json:"enabled" db:"enabled"`
	CreatedBy      string     `json:"created_by" db:"created_by"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
}

// NormalizeCode canonicalizes a coupon code for storage and lookup.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ClampDiscount forces a discount percentage into [1,100].
func ClampDiscount(pct int) int {
	if pct < 1 {
		return 1
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// Validate checks usability for the given plan at the given instant.
// Checks run in documented precedence order and stop at the first failure.
func (c *Coupon) Validate(plan string, now time.Time) error {
	if !c.Enabled {
		return ErrDisabled
	}
	if c.ExpiresAt != nil && c.ExpiresAt.Before(now) {
		return ErrExpired
	}
	if c.MaxRedemptions != UnlimitedRedemptions && c.TimesRedeemed >= c.MaxRedemptions {
		return ErrRedemptionLimit
	}
	if len(c.ValidPlans) > 0 && plan != "" && !slices.Contains(c.ValidPlans, plan) {
		return ErrPlanNotEligible
	}
	return nil
}

// Redemption is the immutable audit record of one successful redemption,
// kept separate from the running counter so "who redeemed what" never needs
// recomputation.
type Redemption struct {
	ID         uuid.UUID `json:"id" db:"id"`
	CouponCode string    `json:"coupon_code" db:"coupon_code"`
	RedeemedBy string    `json:"redeemed_by" db:"redeemed_by"`
	RealmName  string    `json:"realm_name" db:"realm_name"`
	RedeemedAt time.Time `json:"redeemed_at" db:"redeemed_at"`
}

// CreateCouponRequest represents the request to create a coupon.
type CreateCouponRequest struct {
	Code           string   `json:"code"`
	DiscountPct    int      `json:"discount_pct"`
	Description    string   `json:"description"`
	MaxRedemptions int      `json:"max_redemptions"`
	ValidPlans     []string `json:"valid_plans"`
	DurationDays   int      `json:"duration_days"`
}
