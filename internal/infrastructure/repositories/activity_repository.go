package repositories

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/rudralabs/rudra/internal/core/domain/activity"
	"github.com/rudralabs/rudra/internal/core/ports"
	"github.com/rudralabs/rudra/internal/infrastructure/db"
)

// ActivityRepository implements the append-only activity log
type ActivityRepository struct {
	db     *db.Database
	logger *logrus.Logger
}

// NewActivityRepository creates a new activity repository
func NewActivityRepository(database *db.Database, logger *logrus.Logger) ports.ActivityRepository {
	return &ActivityRepository{
		db:     database,
		logger: logger,
	}
}

// Append records one activity entry
func (r *ActivityRepository) Append(ctx context.Context, e *activity.Entry) error {
	query := `
		INSERT INTO activity_log (id, owner_email, action, details, realm_name, timestamp)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.DB.ExecContext(ctx, query,
		e.ID, e.OwnerEmail, e.Action, e.Details, e.RealmName, e.Timestamp)
	if err != nil {
		return fmt.Errorf("failed to append activity: %w", err)
	}
	return nil
}

// Recent retrieves the latest entries for an owner, newest first
func (r *ActivityRepository) Recent(ctx context.Context, ownerEmail string, limit int) ([]*activity.Entry, error) {
	query := `
		SELECT id, owner_email, action, details, realm_name, timestamp
		FROM activity_log
		WHERE owner_email = $1
		ORDER BY timestamp DESC
		LIMIT $2`

	rows, err := r.db.DB.QueryContext(ctx, query, ownerEmail, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity: %w", err)
	}
	defer rows.Close()

	entries := []*activity.Entry{}
	for rows.Next() {
		var e activity.Entry
		if err := rows.Scan(&e.ID, &e.OwnerEmail, &e.Action, &e.Details, &e.RealmName, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}
