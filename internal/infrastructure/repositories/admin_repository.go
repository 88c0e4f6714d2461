package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/rudralabs/rudra/internal/core/domain/admin"
	"github.com/rudralabs/rudra/internal/core/domain/apperr"
	"github.com/rudralabs/rudra/internal/core/ports"
	"github.com/rudralabs/rudra/internal/infrastructure/db"
)

// AdminRepository implements the admin repository interface
type AdminRepository struct {
	db     *db.Database
	logger *logrus.Logger
}

// NewAdminRepository creates a new admin repository
func NewAdminRepository(database *db.Database, logger *logrus.Logger) ports.AdminRepository {
	return &AdminRepository{
		db:     database,
		logger: logger,
	}
}

// Create creates a new admin account
func (r *AdminRepository) Create(ctx context.Context, a *admin.Admin) error {
	query := `
		INSERT INTO admins (id, email, password_hash, name, company, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.DB.ExecContext(ctx, query,
		a.ID, a.Email, a.PasswordHash, a.Name, a.Company, a.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return apperr.ErrConflict
		}
		return fmt.Errorf("failed to create admin: %w", err)
	}
	return nil
}

// GetByEmail retrieves an admin account by email
func (r *AdminRepository) GetByEmail(ctx context.Context, email string) (*admin.Admin, error) {
	var a admin.Admin
	query := `
		SELECT id, email, password_hash, name, company, created_at
		FROM admins
		WHERE email = $1`

	err := r.db.DB.QueryRowContext(ctx, query, email).Scan(
		&a.ID, &a.Email, &a.PasswordHash, &a.Name, &a.Company, &a.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get admin: %w", err)
	}
	return &a, nil
}
