package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/rudralabs/rudra/internal/core/domain/coupon"
	"github.com/rudralabs/rudra/internal/core/ports"
	"github.com/rudralabs/rudra/internal/infrastructure/db"
)

// CouponRepository implements the coupon repository interface
type CouponRepository struct {
	db     *db.Database
	logger *logrus.Logger
}

// NewCouponRepository creates a new coupon repository
func NewCouponRepository(database *db.Database, logger *logrus.Logger) ports.CouponRepository {
	return &CouponRepository{
		db:     database,
		logger: logger,
	}
}

// Create creates a new coupon
func (r *CouponRepository) Create(ctx context.Context, c *coupon.Coupon) error {
	query := `
		INSERT INTO coupons (id, code, discount_pct, description, max_redemptions, times_redeemed, valid_plans, expires_at, enabled, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.DB.ExecContext(ctx, query,
		c.ID, c.Code, c.DiscountPct, c.Description, c.MaxRedemptions,
		c.TimesRedeemed, pq.StringArray(c.ValidPlans), c.ExpiresAt,
		c.Enabled, c.CreatedBy, c.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return coupon.ErrAlreadyExists
		}
		return fmt.Errorf("failed to create coupon: %w", err)
	}
	return nil
}

// GetByCode retrieves a coupon by its normalized code
func (r *CouponRepository) GetByCode(ctx context.Context, code string) (*coupon.Coupon, error) {
	var c coupon.Coupon
	var plans pq.StringArray

	query := `
		SELECT id, code, discount_pct, description, max_redemptions, times_redeemed, valid_plans, expires_at, enabled, created_by, created_at
		FROM coupons
		WHERE code = $1`

	err := r.db.DB.QueryRowContext(ctx, query, code).Scan(
		&c.ID, &c.Code, &c.DiscountPct, &c.Description, &c.MaxRedemptions,
		&c.TimesRedeemed, &plans, &c.ExpiresAt, &c.Enabled, &c.CreatedBy, &c.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, coupon.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get coupon: %w", err)
	}
	c.ValidPlans = plans
	return &c, nil
}

// List retrieves coupons created by the given account
func (r *CouponRepository) List(ctx context.Context, createdBy string) ([]*coupon.Coupon, error) {
	query := `
		SELECT id, code, discount_pct, description, max_redemptions, times_redeemed, valid_plans, expires_at, enabled, created_by, created_at
		FROM coupons
		WHERE created_by = $1
		ORDER BY created_at DESC`

	rows, err := r.db.DB.QueryContext(ctx, query, createdBy)
	if err != nil {
		return nil, fmt.Errorf("failed to list coupons: %w", err)
	}
	defer rows.Close()

	coupons := []*coupon.Coupon{}
	for rows.Next() {
		var c coupon.Coupon
		var plans pq.StringArray
		if err := rows.Scan(
			&c.ID, &c.Code, &c.DiscountPct, &c.Description, &c.MaxRedemptions,
			&c.TimesRedeemed, &plans, &c.ExpiresAt, &c.Enabled, &c.CreatedBy, &c.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan coupon: %w", err)
		}
		c.ValidPlans = plans
		coupons = append(coupons, &c)
	}
	return coupons, rows.Err()
}

// Update rewrites a coupon's mutable fields
func (r *CouponRepository) Update(ctx context.Context, c *coupon.Coupon) error {
	query := `
		UPDATE coupons
		SET discount_pct = $2, description = $3, max_redemptions = $4, valid_plans = $5, expires_at = $6, enabled = $7
		WHERE code = $1`

	result, err := r.db.DB.ExecContext(ctx, query,
		c.Code, c.DiscountPct, c.Description, c.MaxRedemptions,
		pq.StringArray(c.ValidPlans), c.ExpiresAt, c.Enabled)
	if err != nil {
		return fmt.Errorf("failed to update coupon: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return coupon.ErrNotFound
	}
	return nil
}

// SetEnabled flips the enabled flag
func (r *CouponRepository) SetEnabled(ctx context.Context, code string, enabled bool) error {
	result, err := r.db.DB.ExecContext(ctx,
		`UPDATE coupons SET enabled = $2 WHERE code = $1`, code, enabled)
	if err != nil {
		return fmt.Errorf("failed to toggle coupon: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return coupon.ErrNotFound
	}
	return nil
}

// Delete removes a coupon
func (r *CouponRepository) Delete(ctx context.Context, code string) error {
	result, err := r.db.DB.ExecContext(ctx, `DELETE FROM coupons WHERE code = $1`, code)
	if err != nil {
		return fmt.Errorf("failed to delete coupon: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return coupon.ErrNotFound
	}
	return nil
}

// Redeem increments times_redeemed only while the coupon is enabled and
// below its cap. The WHERE clause is the concurrency guard: two racing
// redemptions of the last slot serialize on the row and the loser matches
// zero rows.
func (r *CouponRepository) Redeem(ctx context.Context, code string) error {
	query := `
		UPDATE coupons
		SET times_redeemed = times_redeemed + 1
		WHERE code = $1
		  AND enabled
		  AND (max_redemptions = -1 OR times_redeemed < max_redemptions)`

	result, err := r.db.DB.ExecContext(ctx, query, code)
	if err != nil {
		return fmt.Errorf("failed to redeem coupon: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read redeem result: %w", err)
	}
	if rows == 0 {
		return coupon.ErrRedemptionLimit
	}
	return nil
}

// AppendRedemption records a successful redemption for audit
func (r *CouponRepository) AppendRedemption(ctx context.Context, red *coupon.Redemption) error {
	query := `
		INSERT INTO coupon_redemptions (id, coupon_code, redeemed_by, realm_name, redeemed_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.DB.ExecContext(ctx, query,
		red.ID, red.CouponCode, red.RedeemedBy, red.RealmName, red.RedeemedAt)
	if err != nil {
		return fmt.Errorf("failed to record redemption: %w", err)
	}
	return nil
}

// ListRedemptions retrieves recent redemptions of a coupon
func (r *CouponRepository) ListRedemptions(ctx context.Context, code string, limit int) ([]*coupon.Redemption, error) {
	query := `
		SELECT id, coupon_code, redeemed_by, realm_name, redeemed_at
		FROM coupon_redemptions
		WHERE coupon_code = $1
		ORDER BY redeemed_at DESC
		LIMIT $2`

	rows, err := r.db.DB.QueryContext(ctx, query, code, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list redemptions: %w", err)
	}
	defer rows.Close()

	redemptions := []*coupon.Redemption{}
	for rows.Next() {
		var red coupon.Redemption
		if err := rows.Scan(&red.ID, &red.CouponCode, &red.RedeemedBy, &red.RealmName, &red.RedeemedAt); err != nil {
			return nil, fmt.Errorf("failed to scan redemption: %w", err)
		}
		redemptions = append(redemptions, &red)
	}
	return redemptions, rows.Err()
}
