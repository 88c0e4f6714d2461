package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rudralabs/rudra/internal/core/domain/activity"
	"github.com/rudralabs/rudra/internal/core/domain/admin"
	"github.com/rudralabs/rudra/internal/core/domain/coupon"
	"github.com/rudralabs/rudra/internal/core/domain/org"
	"github.com/rudralabs/rudra/internal/core/domain/tenant"
	"github.com/rudralabs/rudra/internal/core/domain/webhook"
)

// AdminRepository defines the interface for dashboard account storage.
type AdminRepository interface {
	Create(ctx context.Context, a *admin.Admin) error
	GetByEmail(ctx context.Context, email string) (*admin.Admin, error)
}

// TenantRepository defines the interface for tenant data operations.
// Deleting a tenant does not cascade here; the service coordinates cascades.
type TenantRepository interface {
	Create(ctx context.Context, t *tenant.Tenant) error
	GetByRealm(ctx context.Context, realmName string) (*tenant.Tenant, error)
	ListByOwner(ctx context.Context, ownerEmail string) ([]*tenant.Tenant, error)
	Update(ctx context.Context, t *tenant.Tenant) error
	Delete(ctx context.Context, realmName string) error
	CountByOwner(ctx context.Context, ownerEmail string) (int, error)
}

// OrganizationRepository defines the interface for organization storage.
type OrganizationRepository interface {
	Create(ctx context.Context, o *org.Organization) error
	Get(ctx context.Context, realmName, slug string) (*org.Organization, error)
	List(ctx context.Context, realmName string) ([]*org.Organization, error)
	Update(ctx context.Context, o *org.Organization) error
	Delete(ctx context.Context, realmName, slug string) error
	DeleteByRealm(ctx context.Context, realmName string) error
	Count(ctx context.Context, realmName string) (int, error)
	AddMember(ctx context.Context, realmName, slug string, m org.Member) error
	RemoveMember(ctx context.Context, realmName, slug, userID string) error
}

// InvitationRepository defines the interface for invitation storage.
type InvitationRepository interface {
	Create(ctx context.Context, inv *org.Invitation) error
	List(ctx context.Context, realmName, orgSlug string) ([]*org.Invitation, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status org.InvitationStatus) error
	DeleteByRealm(ctx context.Context, realmName string) error
}

// WebhookRepository defines the interface for webhook and delivery-log
// storage. Logs are append-only.
type WebhookRepository interface {
	Create(ctx context.Context, w *webhook.Webhook) error
	List(ctx context.Context, realmName string) ([]*webhook.Webhook, error)
	Get(ctx context.Context, id uuid.UUID) (*webhook.Webhook, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByRealm(ctx context.Context, realmName string) error
	Count(ctx context.Context, realmName string) (int, error)
	AppendLog(ctx context.Context, l *webhook.Log) error
	ListLogs(ctx context.Context, webhookID uuid.UUID, limit int) ([]*webhook.Log, error)
}

// CouponRepository defines the interface for coupon storage. Redeem is the
// single atomic mutation in the system: a conditional increment that fails
// cleanly once the redemption cap is consumed.
type CouponRepository interface {
	Create(ctx context.Context, c *coupon.Coupon) error
	GetByCode(ctx context.Context, code string) (*coupon.Coupon, error)
	List(ctx context.Context, createdBy string) ([]*coupon.Coupon, error)
	Update(ctx context.Context, c *coupon.Coupon) error
	SetEnabled(ctx context.Context, code string, enabled bool) error
	Delete(ctx context.Context, code string) error
	// Redeem atomically increments times_redeemed iff the coupon is enabled
	// and below its cap. Returns coupon.ErrRedemptionLimit when the
	// condition no longer holds.
	Redeem(ctx context.Context, code string) error
	AppendRedemption(ctx context.Context, r *coupon.Redemption) error
	ListRedemptions(ctx context.Context, code string, limit int) ([]*coupon.Redemption, error)
}

// ActivityRepository defines the append-only activity log.
type ActivityRepository interface {
	Append(ctx context.Context, e *activity.Entry) error
	Recent(ctx context.Context, ownerEmail string, limit int) ([]*activity.Entry, error)
}

// AnalyticsRepository defines the append-only analytics event store with
// time-windowed aggregations.
type AnalyticsRepository interface {
	Track(ctx context.Context, e *activity.Event) error
	CountsByType(ctx context.Context, realmName string, since time.Time) (map[string]int, error)
	DailyCounts(ctx context.Context, realmName, eventType string, since time.Time) ([]activity.DailyCount, error)
	DeleteByRealm(ctx context.Context, realmName string) error
}

// RateLimitRepository abstracts the fixed-window counter backing API rate
// limiting.
type RateLimitRepository interface {
	IncrementWindow(ctx context.Context, key string, window, ttl time.Duration) (int, time.Time, error)
}
