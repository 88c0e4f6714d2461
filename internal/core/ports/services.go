package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rudralabs/rudra/internal/core/domain/activity"
	"github.com/rudralabs/rudra/internal/core/domain/admin"
	"github.com/rudralabs/rudra/internal/core/domain/coupon"
	"github.com/rudralabs/rudra/internal/core/domain/identity"
	"github.com/rudralabs/rudra/internal/core/domain/org"
	"github.com/rudralabs/rudra/internal/core/domain/plan"
	"github.com/rudralabs/rudra/internal/core/domain/tenant"
	"github.com/rudralabs/rudra/internal/core/domain/webhook"
)

// AuthService handles dashboard account registration and login.
type AuthService interface {
	Register(ctx context.Context, req *admin.RegisterRequest) (*admin.Session, error)
	Login(ctx context.Context, req *admin.LoginRequest) (*admin.Session, error)
	GetAdmin(ctx context.Context, email string) (*admin.Admin, error)
	ValidateToken(tokenString string) (email, name string, err error)
}

// EntitlementService is the pure plan-entitlement decision engine. It owns
// no usage state: callers supply freshly-read counts, and a nil result means
// allow. Denials are final for the request.
type EntitlementService interface {
	CheckFeature(p *plan.Plan, f plan.Feature) error
	CheckLimit(p *plan.Plan, l plan.Limit, usage int) error
	// CheckSAML runs the composite SAML gate: non-zero connection
	// entitlement first, then the numeric limit against current usage.
	CheckSAML(p *plan.Plan, current int) error
}

// CouponService validates and redeems discount codes.
type CouponService interface {
	Create(ctx context.Context, createdBy string, req *coupon.CreateCouponRequest) (*coupon.Coupon, error)
	List(ctx context.Context, createdBy string) ([]*coupon.Coupon, error)
	Validate(ctx context.Context, code, planID string) (*coupon.Coupon, error)
	// Redeem performs the atomic increment-and-audit pair. The increment is
	// the commit point; a lost audit row never rolls it back.
	Redeem(ctx context.Context, code, redeemedBy, realmName string) error
	Toggle(ctx context.Context, code string) (*coupon.Coupon, error)
	Delete(ctx context.Context, actor, code string) error
	Redemptions(ctx context.Context, code string) ([]*coupon.Redemption, error)
}

// WebhookDispatcher fans events out to subscribed tenant endpoints.
// Dispatch never blocks or fails the triggering operation.
type WebhookDispatcher interface {
	Dispatch(realmName, eventType string, data map[string]any)
}

// WebhookService manages webhook registrations and delivery logs.
type WebhookService interface {
	Create(ctx context.Context, ownerEmail, realmName string, req *webhook.CreateWebhookRequest) (*webhook.Webhook, error)
	List(ctx context.Context, ownerEmail, realmName string) ([]*webhook.Webhook, error)
	Logs(ctx context.Context, ownerEmail, realmName string, webhookID uuid.UUID) ([]*webhook.Log, error)
	Delete(ctx context.Context, ownerEmail, realmName string, webhookID uuid.UUID) error
}

// TenantService coordinates the cross-system tenant lifecycle.
type TenantService interface {
	Create(ctx context.Context, ownerEmail string, req *tenant.CreateTenantRequest) (*tenant.Tenant, error)
	Get(ctx context.Context, ownerEmail, realmName string) (*tenant.Overview, error)
	GetOwned(ctx context.Context, ownerEmail, realmName string) (*tenant.Tenant, error)
	List(ctx context.Context, ownerEmail string) ([]*tenant.Overview, error)
	Update(ctx context.Context, ownerEmail, realmName string, req *tenant.UpdateTenantRequest) (*tenant.Tenant, error)
	Delete(ctx context.Context, ownerEmail, realmName string) error
	UpdateAuthSettings(ctx context.Context, ownerEmail, realmName string, req *tenant.UpdateAuthSettingsRequest) (*tenant.AuthSettings, error)
	UpdateBranding(ctx context.Context, ownerEmail, realmName string, req *tenant.UpdateBrandingRequest) (*tenant.Branding, error)
	CreateClient(ctx context.Context, ownerEmail, realmName string, req *identity.CreateClientRequest) (string, error)
	ListClients(ctx context.Context, ownerEmail, realmName string) ([]*identity.Client, error)
	DeleteClient(ctx context.Context, ownerEmail, realmName, clientID string) error
}

// UserService manages realm users, sessions and roles through the gateway.
type UserService interface {
	CreateUser(ctx context.Context, ownerEmail, realmName string, req *identity.CreateUserRequest) (string, error)
	ListUsers(ctx context.Context, ownerEmail, realmName string, first, max int, search string) ([]*identity.User, error)
	GetUser(ctx context.Context, ownerEmail, realmName, userID string) (*identity.User, []*identity.Session, []*identity.Role, error)
	UpdateUser(ctx context.Context, ownerEmail, realmName, userID string, req *identity.UpdateUserRequest) error
	DeleteUser(ctx context.Context, ownerEmail, realmName, userID string) error
	GetSessions(ctx context.Context, ownerEmail, realmName, userID string) ([]*identity.Session, error)
	RevokeSessions(ctx context.Context, ownerEmail, realmName, userID string) error
	RevokeSession(ctx context.Context, ownerEmail, realmName, sessionID string) error
	Impersonate(ctx context.Context, ownerEmail, realmName, userID string) (map[string]any, error)
	CreateRole(ctx context.Context, ownerEmail, realmName, name, description string) error
	ListRoles(ctx context.Context, ownerEmail, realmName string) ([]*identity.Role, error)
	DeleteRole(ctx context.Context, ownerEmail, realmName, roleName string) error
	AssignRole(ctx context.Context, ownerEmail, realmName, userID, roleName string) error
	RemoveRole(ctx context.Context, ownerEmail, realmName, userID, roleName string) error
}

// OrganizationService manages organizations, memberships and invitations.
type OrganizationService interface {
	Create(ctx context.Context, ownerEmail, realmName string, req *org.CreateOrganizationRequest) (*org.Organization, error)
	List(ctx context.Context, ownerEmail, realmName string) ([]*org.Organization, error)
	Get(ctx context.Context, ownerEmail, realmName, slug string) (*org.Organization, error)
	Delete(ctx context.Context, ownerEmail, realmName, slug string) error
	AddMember(ctx context.Context, ownerEmail, realmName, slug string, req *org.AddMemberRequest) error
	RemoveMember(ctx context.Context, ownerEmail, realmName, slug, userID string) error
	CreateInvitation(ctx context.Context, ownerEmail, realmName string, req *org.CreateInvitationRequest) (*org.Invitation, error)
	ListInvitations(ctx context.Context, ownerEmail, realmName, orgSlug string) ([]*org.Invitation, error)
	RevokeInvitation(ctx context.Context, ownerEmail, realmName string, id uuid.UUID) error
}

// SSOService manages federated identity providers on a realm.
type SSOService interface {
	CreateOIDC(ctx context.Context, ownerEmail, realmName string, req *identity.CreateOIDCProviderRequest) error
	CreateSAML(ctx context.Context, ownerEmail, realmName string, req *identity.CreateSAMLProviderRequest) error
	List(ctx context.Context, ownerEmail, realmName string) ([]*identity.Provider, error)
	Delete(ctx context.Context, ownerEmail, realmName, alias string) error
}

// AnalyticsService assembles tenant analytics and the owner dashboard.
type AnalyticsService interface {
	TenantAnalytics(ctx context.Context, ownerEmail, realmName string, days int) (*activity.Summary, error)
	Events(ctx context.Context, ownerEmail, realmName, eventType string, max int) ([]*identity.Event, error)
	Dashboard(ctx context.Context, ownerEmail string) (*activity.Dashboard, error)
}

// ActivityRecorder appends audit/analytics records; failures are logged,
// never propagated.
type ActivityRecorder interface {
	LogActivity(ctx context.Context, ownerEmail, action, details, realmName string)
	TrackEvent(ctx context.Context, realmName, eventType string, metadata map[string]any)
}

// RateLimiterService enforces each plan's API rate limit per realm.
type RateLimiterService interface {
	Allow(ctx context.Context, realmName string) (allowed bool, remaining, limit int, reset time.Time, err error)
}
