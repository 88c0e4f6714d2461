package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/rudralabs/rudra/internal/core/domain/apperr"
	"github.com/rudralabs/rudra/internal/core/domain/org"
	"github.com/rudralabs/rudra/internal/core/ports"
	"github.com/rudralabs/rudra/internal/infrastructure/db"
)

// InvitationRepository implements the invitation repository interface
type InvitationRepository struct {
	db     *db.Database
	logger *logrus.Logger
}

// NewInvitationRepository creates a new invitation repository
func NewInvitationRepository(database *db.Database, logger *logrus.Logger) ports.InvitationRepository {
	return &InvitationRepository{
		db:     database,
		logger: logger,
	}
}

// Create creates a new invitation
func (r *InvitationRepository) Create(ctx context.Context, inv *org.Invitation) error {
	query := `
		INSERT INTO invitations (id, realm_name, email, org_slug, role, invited_by, status, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.DB.ExecContext(ctx, query,
		inv.ID, inv.RealmName, inv.Email, inv.OrgSlug, inv.Role,
		inv.InvitedBy, inv.Status, inv.CreatedAt, inv.ExpiresAt)
	if err != nil {
		return fmt.Errorf("failed to create invitation: %w", err)
	}
	return nil
}

// List retrieves invitations in a realm, optionally filtered by organization
func (r *InvitationRepository) List(ctx context.Context, realmName, orgSlug string) ([]*org.Invitation, error) {
	query := `
		SELECT id, realm_name, email, org_slug, role, invited_by, status, created_at, expires_at
		FROM invitations
		WHERE realm_name = $1 AND ($2 = '' OR org_slug = $2)
		ORDER BY created_at DESC`

	rows, err := r.db.DB.QueryContext(ctx, query, realmName, orgSlug)
	if err != nil {
		return nil, fmt.Errorf("failed to list invitations: %w", err)
	}
	defer rows.Close()

	invitations := []*org.Invitation{}
	for rows.Next() {
		var inv org.Invitation
		if err := rows.Scan(
			&inv.ID, &inv.RealmName, &inv.Email, &inv.OrgSlug, &inv.Role,
			&inv.InvitedBy, &inv.Status, &inv.CreatedAt, &inv.ExpiresAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan invitation: %w", err)
		}
		invitations = append(invitations, &inv)
	}
	return invitations, rows.Err()
}

// UpdateStatus moves an invitation through its lifecycle
func (r *InvitationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status org.InvitationStatus) error {
	result, err := r.db.DB.ExecContext(ctx,
		`UPDATE invitations SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("failed to update invitation: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// DeleteByRealm removes every invitation in a realm (tenant cascade)
func (r *InvitationRepository) DeleteByRealm(ctx context.Context, realmName string) error {
	_, err := r.db.DB.ExecContext(ctx, `DELETE FROM invitations WHERE realm_name = $1`, realmName)
	if err != nil {
		return fmt.Errorf("failed to delete invitations: %w", err)
	}
	return nil
}
