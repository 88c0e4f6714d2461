package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/rudralabs/rudra/internal/core/domain/activity"
	"github.com/rudralabs/rudra/internal/core/ports"
	"github.com/rudralabs/rudra/internal/infrastructure/db"
)

// AnalyticsRepository implements the analytics event store with the
// aggregations the dashboard needs.
type AnalyticsRepository struct {
	db     *db.Database
	logger *logrus.Logger
}

// NewAnalyticsRepository creates a new analytics repository
func NewAnalyticsRepository(database *db.Database, logger *logrus.Logger) ports.AnalyticsRepository {
	return &AnalyticsRepository{
		db:     database,
		logger: logger,
	}
}

// Track records one analytics event
func (r *AnalyticsRepository) Track(ctx context.Context, e *activity.Event) error {
	metadataJSON, err := json.Marshal(e.Metadata)
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}

	query := `
		INSERT INTO analytics_events (id, realm_name, event_type, metadata, timestamp)
		VALUES ($1, $2, $3, $4, $5)`

	_, err = r.db.DB.ExecContext(ctx, query,
		e.ID, e.RealmName, e.EventType, metadataJSON, e.Timestamp)
	if err != nil {
		return fmt.Errorf("failed to track event: %w", err)
	}
	return nil
}

// CountsByType aggregates events per type since the given instant
func (r *AnalyticsRepository) CountsByType(ctx context.Context, realmName string, since time.Time) (map[string]int, error) {
	query := `
		SELECT event_type, COUNT(*)
		FROM analytics_events
		WHERE realm_name = $1 AND timestamp >= $2
		GROUP BY event_type`

	rows, err := r.db.DB.QueryContext(ctx, query, realmName, since)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate events: %w", err)
	}
	defer rows.Close()

	counts := map[string]int{}
	for rows.Next() {
		var eventType string
		var count int
		if err := rows.Scan(&eventType, &count); err != nil {
			return nil, fmt.Errorf("failed to scan event count: %w", err)
		}
		counts[eventType] = count
	}
	return counts, rows.Err()
}

// DailyCounts buckets events of one type per day since the given instant
func (r *AnalyticsRepository) DailyCounts(ctx context.Context, realmName, eventType string, since time.Time) ([]activity.DailyCount, error) {
	query := `
		SELECT to_char(timestamp, 'YYYY-MM-DD') AS day, COUNT(*)
		FROM analytics_events
		WHERE realm_name = $1 AND event_type = $2 AND timestamp >= $3
		GROUP BY day
		ORDER BY day`

	rows, err := r.db.DB.QueryContext(ctx, query, realmName, eventType, since)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate daily counts: %w", err)
	}
	defer rows.Close()

	counts := []activity.DailyCount{}
	for rows.Next() {
		var dc activity.DailyCount
		if err := rows.Scan(&dc.Day, &dc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan daily count: %w", err)
		}
		counts = append(counts, dc)
	}
	return counts, rows.Err()
}

// DeleteByRealm removes every event in a realm (tenant cascade)
func (r *AnalyticsRepository) DeleteByRealm(ctx context.Context, realmName string) error {
	_, err := r.db.DB.ExecContext(ctx, `DELETE FROM analytics_events WHERE realm_name = $1`, realmName)
	if err != nil {
		return fmt.Errorf("failed to delete events: %w", err)
	}
	return nil
}
