package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/rudralabs/rudra/internal/core/domain/apperr"
	"github.com/rudralabs/rudra/internal/core/domain/tenant"
	"github.com/rudralabs/rudra/internal/core/ports"
	"github.com/rudralabs/rudra/internal/infrastructure/db"
)

// TenantRepository implements the tenant repository interface
type TenantRepository struct {
	db     *db.Database
	logger *logrus.Logger
}

// NewTenantRepository creates a new tenant repository
func NewTenantRepository(database *db.Database, logger *logrus.Logger) ports.TenantRepository {
	return &TenantRepository{
		db:     database,
		logger: logger,
	}
}

// Create creates a new tenant
func (r *TenantRepository) Create(ctx context.Context, t *tenant.Tenant) error {
	authJSON, err := json.Marshal(t.AuthSettings)
	if err != nil {
		return fmt.Errorf("failed to marshal auth settings: %w", err)
	}
	brandingJSON, err := json.Marshal(t.Branding)
	if err != nil {
		return fmt.Errorf("failed to marshal branding: %w", err)
	}

	query := `
		INSERT INTO tenants (id, name, realm_name, plan, owner_email, applied_coupon, discount_pct, auth_settings, branding, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err = r.db.DB.ExecContext(ctx, query,
		t.ID, t.Name, t.RealmName, t.Plan, t.OwnerEmail,
		t.AppliedCoupon, t.DiscountPct, authJSON, brandingJSON,
		t.CreatedAt, t.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return apperr.ErrConflict
		}
		return fmt.Errorf("failed to create tenant: %w", err)
	}

	return nil
}

// GetByRealm retrieves a tenant by its realm name
func (r *TenantRepository) GetByRealm(ctx context.Context, realmName string) (*tenant.Tenant, error) {
	query := `
		SELECT id, name, realm_name, plan, owner_email, applied_coupon, discount_pct, auth_settings, branding, created_at, updated_at
		FROM tenants
		WHERE realm_name = $1`

	t, err := scanTenant(r.db.DB.QueryRowContext(ctx, query, realmName))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get tenant: %w", err)
	}
	return t, nil
}

// ListByOwner retrieves all tenants owned by the given account
func (r *TenantRepository) ListByOwner(ctx context.Context, ownerEmail string) ([]*tenant.Tenant, error) {
	query := `
		SELECT id, name, realm_name, plan, owner_email, applied_coupon, discount_pct, auth_settings, branding, created_at, updated_at
		FROM tenants
		WHERE owner_email = $1
		ORDER BY created_at DESC`

	rows, err := r.db.DB.QueryContext(ctx, query, ownerEmail)
	if err != nil {
		return nil, fmt.Errorf("failed to list tenants: %w", err)
	}
	defer rows.Close()

	tenants := []*tenant.Tenant{}
	for rows.Next() {
		t, err := scanTenant(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tenant: %w", err)
		}
		tenants = append(tenants, t)
	}
	return tenants, rows.Err()
}

// Update updates an existing tenant
func (r *TenantRepository) Update(ctx context.Context, t *tenant.Tenant) error {
	authJSON, err := json.Marshal(t.AuthSettings)
	if err != nil {
		return fmt.Errorf("failed to marshal auth settings: %w", err)
	}
	brandingJSON, err := json.Marshal(t.Branding)
	if err != nil {
		return fmt.Errorf("failed to marshal branding: %w", err)
	}

	query := `
		UPDATE tenants
		SET name = $2, plan = $3, applied_coupon = $4, discount_pct = $5, auth_settings = $6, branding = $7, updated_at = NOW()
		WHERE realm_name = $1`

	result, err := r.db.DB.ExecContext(ctx, query,
		t.RealmName, t.Name, t.Plan, t.AppliedCoupon, t.DiscountPct, authJSON, brandingJSON)
	if err != nil {
		return fmt.Errorf("failed to update tenant: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// Delete removes the tenant row; related records cascade at the service layer
func (r *TenantRepository) Delete(ctx context.Context, realmName string) error {
	result, err := r.db.DB.ExecContext(ctx, `DELETE FROM tenants WHERE realm_name = $1`, realmName)
	if err != nil {
		return fmt.Errorf("failed to delete tenant: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// CountByOwner returns the number of tenants owned by the given account
func (r *TenantRepository) CountByOwner(ctx context.Context, ownerEmail string) (int, error) {
	var count int
	err := r.db.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM tenants WHERE owner_email = $1`, ownerEmail).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count tenants: %w", err)
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTenant(row rowScanner) (*tenant.Tenant, error) {
	var t tenant.Tenant
	var authJSON, brandingJSON []byte

	err := row.Scan(
		&t.ID, &t.Name, &t.RealmName, &t.Plan, &t.OwnerEmail,
		&t.AppliedCoupon, &t.DiscountPct, &authJSON, &brandingJSON,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(authJSON) > 0 {
		if err := json.Unmarshal(authJSON, &t.AuthSettings); err != nil {
			return nil, fmt.Errorf("failed to parse auth settings: %w", err)
		}
	}
	if len(brandingJSON) > 0 {
		if err := json.Unmarshal(brandingJSON, &t.Branding); err != nil {
			return nil, fmt.Errorf("failed to parse branding: %w", err)
		}
	}
	return &t, nil
}
