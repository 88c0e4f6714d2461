package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/rudralabs/rudra/internal/core/domain/apperr"
	"github.com/rudralabs/rudra/internal/core/domain/org"
	"github.com/rudralabs/rudra/internal/core/ports"
	"github.com/rudralabs/rudra/internal/infrastructure/db"
)

// OrganizationRepository implements the organization repository interface.
// Members are stored as a JSONB document on the organization row so that
// membership mutations stay single-row operations.
type OrganizationRepository struct {
	db     *db.Database
	logger *logrus.Logger
}

// NewOrganizationRepository creates a new organization repository
func NewOrganizationRepository(database *db.Database, logger *logrus.Logger) ports.OrganizationRepository {
	return &OrganizationRepository{
		db:     database,
		logger: logger,
	}
}

// Create creates a new organization
func (r *OrganizationRepository) Create(ctx context.Context, o *org.Organization) error {
	membersJSON, err := json.Marshal(o.Members)
	if err != nil {
		return fmt.Errorf("failed to marshal members: %w", err)
	}

	query := `
		INSERT INTO organizations (id, realm_name, name, slug, created_by, members, allowed_email_domains, max_members, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err = r.db.DB.ExecContext(ctx, query,
		o.ID, o.RealmName, o.Name, o.Slug, o.CreatedBy, membersJSON,
		pq.StringArray(o.AllowedEmailDomains), o.MaxMembers, o.CreatedAt, o.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return apperr.ErrConflict
		}
		return fmt.Errorf("failed to create organization: %w", err)
	}
	return nil
}

// Get retrieves an organization by realm and slug
func (r *OrganizationRepository) Get(ctx context.Context, realmName, slug string) (*org.Organization, error) {
	query := `
		SELECT id, realm_name, name, slug, created_by, members, allowed_email_domains, max_members, created_at, updated_at
		FROM organizations
		WHERE realm_name = $1 AND slug = $2`

	o, err := scanOrganization(r.db.DB.QueryRowContext(ctx, query, realmName, slug))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get organization: %w", err)
	}
	return o, nil
}

// List retrieves all organizations in a realm
func (r *OrganizationRepository) List(ctx context.Context, realmName string) ([]*org.Organization, error) {
	query := `
		SELECT id, realm_name, name, slug, created_by, members, allowed_email_domains, max_members, created_at, updated_at
		FROM organizations
		WHERE realm_name = $1
		ORDER BY created_at DESC`

	rows, err := r.db.DB.QueryContext(ctx, query, realmName)
	if err != nil {
		return nil, fmt.Errorf("failed to list organizations: %w", err)
	}
	defer rows.Close()

	orgs := []*org.Organization{}
	for rows.Next() {
		o, err := scanOrganization(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan organization: %w", err)
		}
		orgs = append(orgs, o)
	}
	return orgs, rows.Err()
}

// Update rewrites an organization's mutable fields
func (r *OrganizationRepository) Update(ctx context.Context, o *org.Organization) error {
	membersJSON, err := json.Marshal(o.Members)
	if err != nil {
		return fmt.Errorf("failed to marshal members: %w", err)
	}

	query := `
		UPDATE organizations
		SET name = $3, members = $4, allowed_email_domains = $5, max_members = $6, updated_at = NOW()
		WHERE realm_name = $1 AND slug = $2`

	result, err := r.db.DB.ExecContext(ctx, query,
		o.RealmName, o.Slug, o.Name, membersJSON,
		pq.StringArray(o.AllowedEmailDomains), o.MaxMembers)
	if err != nil {
		return fmt.Errorf("failed to update organization: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// Delete removes an organization
func (r *OrganizationRepository) Delete(ctx context.Context, realmName, slug string) error {
	result, err := r.db.DB.ExecContext(ctx,
		`DELETE FROM organizations WHERE realm_name = $1 AND slug = $2`, realmName, slug)
	if err != nil {
		return fmt.Errorf("failed to delete organization: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// DeleteByRealm removes every organization in a realm (tenant cascade)
func (r *OrganizationRepository) DeleteByRealm(ctx context.Context, realmName string) error {
	_, err := r.db.DB.ExecContext(ctx, `DELETE FROM organizations WHERE realm_name = $1`, realmName)
	if err != nil {
		return fmt.Errorf("failed to delete organizations: %w", err)
	}
	return nil
}

// Count returns the number of organizations in a realm
func (r *OrganizationRepository) Count(ctx context.Context, realmName string) (int, error) {
	var count int
	err := r.db.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM organizations WHERE realm_name = $1`, realmName).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count organizations: %w", err)
	}
	return count, nil
}

// AddMember appends a member to the organization's members document
func (r *OrganizationRepository) AddMember(ctx context.Context, realmName, slug string, m org.Member) error {
	memberJSON, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to marshal member: %w", err)
	}

	query := `
		UPDATE organizations
		SET members = members || $3::jsonb, updated_at = NOW()
		WHERE realm_name = $1 AND slug = $2`

	result, err := r.db.DB.ExecContext(ctx, query, realmName, slug, memberJSON)
	if err != nil {
		return fmt.Errorf("failed to add member: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// RemoveMember drops a member entry from the members document
func (r *OrganizationRepository) RemoveMember(ctx context.Context, realmName, slug, userID string) error {
	query := `
		UPDATE organizations
		SET members = (
			SELECT COALESCE(jsonb_agg(m), '[]'::jsonb)
			FROM jsonb_array_elements(members) m
			WHERE m->>'user_id' <> $3
		), updated_at = NOW()
		WHERE realm_name = $1 AND slug = $2`

	result, err := r.db.DB.ExecContext(ctx, query, realmName, slug, userID)
	if err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func scanOrganization(row rowScanner) (*org.Organization, error) {
	var o org.Organization
	var membersJSON []byte
	var domains pq.StringArray

	err := row.Scan(
		&o.ID, &o.RealmName, &o.Name, &o.Slug, &o.CreatedBy,
		&membersJSON, &domains, &o.MaxMembers, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	o.Members = []org.Member{}
	if len(membersJSON) > 0 {
		if err := json.Unmarshal(membersJSON, &o.Members); err != nil {
			return nil, fmt.Errorf("failed to parse members: %w", err)
		}
	}
	o.AllowedEmailDomains = domains
	return &o, nil
}
