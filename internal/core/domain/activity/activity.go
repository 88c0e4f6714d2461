package activity

import (
	"time"

	"github.com/google/uuid"
)

// Entry is one append-only activity log record, keyed by the owning admin.
// Entries are never updated or deleted.
type Entry struct {
	ID         uuid.UUID `json:"id" db:"id"`
	OwnerEmail string    `json:"owner_email" db:"owner_email"`
	Action     string    `json:"action" db:"action"`
	Details    string    `json:"details" db:"details"`
	RealmName  string    `json:"realm_name" db:"realm_name"`
	Timestamp  time.Time `json:"timestamp" db:"timestamp"`
}

// Event is one append-only analytics record, keyed by realm. Deleted only by
// cascading tenant deletion.
type Event struct {
	ID        uuid.UUID      `json:"id" db:"id"`
	RealmName string         `json:"realm_name" db:"realm_name"`
	EventType string         `json:"event_type" db:"event_type"`
	Metadata  map[string]any `json:"metadata" db:"metadata"`
	Timestamp time.Time      `json:"timestamp" db:"timestamp"`
}

// DailyCount is one bucket of a per-day aggregation.
type DailyCount struct {
	Day   string `json:"day" db:"day"`
	Count int    `json:"count" db:"count"`
}

// Summary holds tenant analytics assembled from the local store and the
// identity provider's event stream. Provider-sourced counts degrade to zero
// when the provider is unreachable.
type Summary struct {
	EventCounts      map[string]int `json:"summary"`
	UserSignupsDaily []DailyCount   `json:"user_signups_daily"`
	LoginCount       int            `json:"login_count"`
	FailedLoginCount int            `json:"failed_login_count"`
	TotalUsers       int            `json:"total_users"`
	TotalOrgs        int            `json:"total_orgs"`
}

// Dashboard aggregates across all tenants of one owner.
type Dashboard struct {
	TotalTenants     int            `json:"total_tenants"`
	TotalUsers       int            `json:"total_users"`
	TotalClients     int            `json:"total_clients"`
	TotalOrgs        int            `json:"total_orgs"`
	PlanDistribution map[string]int `json:"plan_distribution"`
	RecentActivity   []*Entry       `json:"recent_activity"`
}
