package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/rudralabs/rudra/internal/core/domain/apperr"
	"github.com/rudralabs/rudra/internal/core/domain/webhook"
	"github.com/rudralabs/rudra/internal/core/ports"
	"github.com/rudralabs/rudra/internal/infrastructure/db"
)

// WebhookRepository implements the webhook repository interface
type WebhookRepository struct {
	db     *db.Database
	logger *logrus.Logger
}

// NewWebhookRepository creates a new webhook repository
func NewWebhookRepository(database *db.Database, logger *logrus.Logger) ports.WebhookRepository {
	return &WebhookRepository{
		db:     database,
		logger: logger,
	}
}

// Create registers a new webhook
func (r *WebhookRepository) Create(ctx context.Context, w *webhook.Webhook) error {
	query := `
		INSERT INTO webhooks (id, realm_name, url, events, secret, enabled, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.DB.ExecContext(ctx, query,
		w.ID, w.RealmName, w.URL, pq.StringArray(w.Events), w.Secret, w.Enabled, w.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create webhook: %w", err)
	}
	return nil
}

// List retrieves all webhooks registered on a realm
func (r *WebhookRepository) List(ctx context.Context, realmName string) ([]*webhook.Webhook, error) {
	query := `
		SELECT id, realm_name, url, events, secret, enabled, created_at
		FROM webhooks
		WHERE realm_name = $1
		ORDER BY created_at DESC`

	rows, err := r.db.DB.QueryContext(ctx, query, realmName)
	if err != nil {
		return nil, fmt.Errorf("failed to list webhooks: %w", err)
	}
	defer rows.Close()

	webhooks := []*webhook.Webhook{}
	for rows.Next() {
		var w webhook.Webhook
		var events pq.StringArray
		if err := rows.Scan(&w.ID, &w.RealmName, &w.URL, &events, &w.Secret, &w.Enabled, &w.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan webhook: %w", err)
		}
		w.Events = events
		webhooks = append(webhooks, &w)
	}
	return webhooks, rows.Err()
}

// Get retrieves a webhook by ID
func (r *WebhookRepository) Get(ctx context.Context, id uuid.UUID) (*webhook.Webhook, error) {
	var w webhook.Webhook
	var events pq.StringArray

	query := `
		SELECT id, realm_name, url, events, secret, enabled, created_at
		FROM webhooks
		WHERE id = $1`

	err := r.db.DB.QueryRowContext(ctx, query, id).Scan(
		&w.ID, &w.RealmName, &w.URL, &events, &w.Secret, &w.Enabled, &w.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get webhook: %w", err)
	}
	w.Events = events
	return &w, nil
}

// Delete removes a webhook; its delivery logs go with it
func (r *WebhookRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.DB.ExecContext(ctx, `DELETE FROM webhooks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete webhook: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// DeleteByRealm removes every webhook on a realm (tenant cascade)
func (r *WebhookRepository) DeleteByRealm(ctx context.Context, realmName string) error {
	_, err := r.db.DB.ExecContext(ctx, `DELETE FROM webhooks WHERE realm_name = $1`, realmName)
	if err != nil {
		return fmt.Errorf("failed to delete webhooks: %w", err)
	}
	return nil
}

// Count returns the number of webhooks registered on a realm
func (r *WebhookRepository) Count(ctx context.Context, realmName string) (int, error) {
	var count int
	err := r.db.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM webhooks WHERE realm_name = $1`, realmName).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count webhooks: %w", err)
	}
	return count, nil
}

// AppendLog records one delivery attempt outcome
func (r *WebhookRepository) AppendLog(ctx context.Context, l *webhook.Log) error {
	query := `
		INSERT INTO webhook_logs (id, webhook_id, event, status_code, response_body, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.DB.ExecContext(ctx, query,
		l.ID, l.WebhookID, l.Event, l.StatusCode, l.ResponseBody, l.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to append webhook log: %w", err)
	}
	return nil
}

// ListLogs retrieves recent delivery attempts for a webhook
func (r *WebhookRepository) ListLogs(ctx context.Context, webhookID uuid.UUID, limit int) ([]*webhook.Log, error) {
	query := `
		SELECT id, webhook_id, event, status_code, response_body, created_at
		FROM webhook_logs
		WHERE webhook_id = $1
		ORDER BY created_at DESC
		LIMIT $2`

	rows, err := r.db.DB.QueryContext(ctx, query, webhookID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list webhook logs: %w", err)
	}
	defer rows.Close()

	logs := []*webhook.Log{}
	for rows.Next() {
		var l webhook.Log
		if err := rows.Scan(&l.ID, &l.WebhookID, &l.Event, &l.StatusCode, &l.ResponseBody, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan webhook log: %w", err)
		}
		logs = append(logs, &l)
	}
	return logs, rows.Err()
}
