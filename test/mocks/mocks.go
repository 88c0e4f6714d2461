package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/rudralabs/rudra/internal/core/domain/activity"
	"github.com/rudralabs/rudra/internal/core/domain/admin"
	"github.com/rudralabs/rudra/internal/core/domain/apperr"
	"github.com/rudralabs/rudra/internal/core/domain/coupon"
	"github.com/rudralabs/rudra/internal/core/domain/identity"
	"github.com/rudralabs/rudra/internal/core/domain/org"
	"github.com/rudralabs/rudra/internal/core/domain/tenant"
	"github.com/rudralabs/rudra/internal/core/domain/webhook"
)

// TenantRepositoryMock is a lightweight mock for TenantRepository
type TenantRepositoryMock struct {
	CreateFn       func(ctx context.Context, t *tenant.Tenant) error
	GetByRealmFn   func(ctx context.Context, realmName string) (*tenant.Tenant, error)
	ListByOwnerFn  func(ctx context.Context, ownerEmail string) ([]*tenant.Tenant, error)
	UpdateFn       func(ctx context.Context, t *tenant.Tenant) error
	DeleteFn       func(ctx context.Context, realmName string) error
	CountByOwnerFn func(ctx context.Context, ownerEmail string) (int, error)
}

func (m *TenantRepositoryMock) Create(ctx context.Context, t *tenant.Tenant) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, t)
	}
	return nil
}
func (m *TenantRepositoryMock) GetByRealm(ctx context.Context, realmName string) (*tenant.Tenant, error) {
	if m.GetByRealmFn != nil {
		return m.GetByRealmFn(ctx, realmName)
	}
	return nil, apperr.ErrNotFound
}
func (m *TenantRepositoryMock) ListByOwner(ctx context.Context, ownerEmail string) ([]*tenant.Tenant, error) {
	if m.ListByOwnerFn != nil {
		return m.ListByOwnerFn(ctx, ownerEmail)
	}
	return nil, nil
}
func (m *TenantRepositoryMock) Update(ctx context.Context, t *tenant.Tenant) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, t)
	}
	return nil
}
func (m *TenantRepositoryMock) Delete(ctx context.Context, realmName string) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, realmName)
	}
	return nil
}
func (m *TenantRepositoryMock) CountByOwner(ctx context.Context, ownerEmail string) (int, error) {
	if m.CountByOwnerFn != nil {
		return m.CountByOwnerFn(ctx, ownerEmail)
	}
	return 0, nil
}

// AdminRepositoryMock is a lightweight mock for AdminRepository
type AdminRepositoryMock struct {
	CreateFn     func(ctx context.Context, a *admin.Admin) error
	GetByEmailFn func(ctx context.Context, email string) (*admin.Admin, error)
}

func (m *AdminRepositoryMock) Create(ctx context.Context, a *admin.Admin) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, a)
	}
	return nil
}
func (m *AdminRepositoryMock) GetByEmail(ctx context.Context, email string) (*admin.Admin, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}
	return nil, apperr.ErrNotFound
}

// CouponRepositoryMock is a lightweight mock for CouponRepository
type CouponRepositoryMock struct {
	CreateFn           func(ctx context.Context, c *coupon.Coupon) error
	GetByCodeFn        func(ctx context.Context, code string) (*coupon.Coupon, error)
	ListFn             func(ctx context.Context, createdBy string) ([]*coupon.Coupon, error)
	UpdateFn           func(ctx context.Context, c *coupon.Coupon) error
	SetEnabledFn       func(ctx context.Context, code string, enabled bool) error
	DeleteFn           func(ctx context.Context, code string) error
	RedeemFn           func(ctx context.Context, code string) error
	AppendRedemptionFn func(ctx context.Context, r *coupon.Redemption) error
	ListRedemptionsFn  func(ctx context.Context, code string, limit int) ([]*coupon.Redemption, error)
}

func (m *CouponRepositoryMock) Create(ctx context.Context, c *coupon.Coupon) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, c)
	}
	return nil
}
func (m *CouponRepositoryMock) GetByCode(ctx context.Context, code string) (*coupon.Coupon, error) {
	if m.GetByCodeFn != nil {
		return m.GetByCodeFn(ctx, code)
	}
	return nil, coupon.ErrNotFound
}
func (m *CouponRepositoryMock) List(ctx context.Context, createdBy string) ([]*coupon.Coupon, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, createdBy)
	}
	return nil, nil
}
func (m *CouponRepositoryMock) Update(ctx context.Context, c *coupon.Coupon) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, c)
	}
	return nil
}
func (m *CouponRepositoryMock) SetEnabled(ctx context.Context, code string, enabled bool) error {
	if m.SetEnabledFn != nil {
		return m.SetEnabledFn(ctx, code, enabled)
	}
	return nil
}
func (m *CouponRepositoryMock) Delete(ctx context.Context, code string) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, code)
	}
	return nil
}
func (m *CouponRepositoryMock) Redeem(ctx context.Context, code string) error {
	if m.RedeemFn != nil {
		return m.RedeemFn(ctx, code)
	}
	return nil
}
func (m *CouponRepositoryMock) AppendRedemption(ctx context.Context, r *coupon.Redemption) error {
	if m.AppendRedemptionFn != nil {
		return m.AppendRedemptionFn(ctx, r)
	}
	return nil
}
func (m *CouponRepositoryMock) ListRedemptions(ctx context.Context, code string, limit int) ([]*coupon.Redemption, error) {
	if m.ListRedemptionsFn != nil {
		return m.ListRedemptionsFn(ctx, code, limit)
	}
	return nil, nil
}

// OrganizationRepositoryMock is a lightweight mock for OrganizationRepository
type OrganizationRepositoryMock struct {
	CreateFn        func(ctx context.Context, o *org.Organization) error
	GetFn           func(ctx context.Context, realmName, slug string) (*org.Organization, error)
	ListFn          func(ctx context.Context, realmName string) ([]*org.Organization, error)
	UpdateFn        func(ctx context.Context, o *org.Organization) error
	DeleteFn        func(ctx context.Context, realmName, slug string) error
	DeleteByRealmFn func(ctx context.Context, realmName string) error
	CountFn         func(ctx context.Context, realmName string) (int, error)
	AddMemberFn     func(ctx context.Context, realmName, slug string, member org.Member) error
	RemoveMemberFn  func(ctx context.Context, realmName, slug, userID string) error
}

func (m *OrganizationRepositoryMock) Create(ctx context.Context, o *org.Organization) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, o)
	}
	return nil
}
func (m *OrganizationRepositoryMock) Get(ctx context.Context, realmName, slug string) (*org.Organization, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, realmName, slug)
	}
	return nil, apperr.ErrNotFound
}
func (m *OrganizationRepositoryMock) List(ctx context.Context, realmName string) ([]*org.Organization, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, realmName)
	}
	return nil, nil
}
func (m *OrganizationRepositoryMock) Update(ctx context.Context, o *org.Organization) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, o)
	}
	return nil
}
func (m *OrganizationRepositoryMock) Delete(ctx context.Context, realmName, slug string) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, realmName, slug)
	}
	return nil
}
func (m *OrganizationRepositoryMock) DeleteByRealm(ctx context.Context, realmName string) error {
	if m.DeleteByRealmFn != nil {
		return m.DeleteByRealmFn(ctx, realmName)
	}
	return nil
}
func (m *OrganizationRepositoryMock) Count(ctx context.Context, realmName string) (int, error) {
	if m.CountFn != nil {
		return m.CountFn(ctx, realmName)
	}
	return 0, nil
}
func (m *OrganizationRepositoryMock) AddMember(ctx context.Context, realmName, slug string, member org.Member) error {
	if m.AddMemberFn != nil {
		return m.AddMemberFn(ctx, realmName, slug, member)
	}
	return nil
}
func (m *OrganizationRepositoryMock) RemoveMember(ctx context.Context, realmName, slug, userID string) error {
	if m.RemoveMemberFn != nil {
		return m.RemoveMemberFn(ctx, realmName, slug, userID)
	}
	return nil
}

// InvitationRepositoryMock is a lightweight mock for InvitationRepository
type InvitationRepositoryMock struct {
	CreateFn        func(ctx context.Context, inv *org.Invitation) error
	ListFn          func(ctx context.Context, realmName, orgSlug string) ([]*org.Invitation, error)
	UpdateStatusFn  func(ctx context.Context, id uuid.UUID, status org.InvitationStatus) error
	DeleteByRealmFn func(ctx context.Context, realmName string) error
}

func (m *InvitationRepositoryMock) Create(ctx context.Context, inv *org.Invitation) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, inv)
	}
	return nil
}
func (m *InvitationRepositoryMock) List(ctx context.Context, realmName, orgSlug string) ([]*org.Invitation, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, realmName, orgSlug)
	}
	return nil, nil
}
func (m *InvitationRepositoryMock) UpdateStatus(ctx context.Context, id uuid.UUID, status org.InvitationStatus) error {
	if m.UpdateStatusFn != nil {
		return m.UpdateStatusFn(ctx, id, status)
	}
	return nil
}
func (m *InvitationRepositoryMock) DeleteByRealm(ctx context.Context, realmName string) error {
	if m.DeleteByRealmFn != nil {
		return m.DeleteByRealmFn(ctx, realmName)
	}
	return nil
}

// WebhookRepositoryMock is a lightweight mock for WebhookRepository
type WebhookRepositoryMock struct {
	CreateFn        func(ctx context.Context, w *webhook.Webhook) error
	ListFn          func(ctx context.Context, realmName string) ([]*webhook.Webhook, error)
	GetFn           func(ctx context.Context, id uuid.UUID) (*webhook.Webhook, error)
	DeleteFn        func(ctx context.Context, id uuid.UUID) error
	DeleteByRealmFn func(ctx context.Context, realmName string) error
	CountFn         func(ctx context.Context, realmName string) (int, error)
	AppendLogFn     func(ctx context.Context, l *webhook.Log) error
	ListLogsFn      func(ctx context.Context, webhookID uuid.UUID, limit int) ([]*webhook.Log, error)
}

func (m *WebhookRepositoryMock) Create(ctx context.Context, w *webhook.Webhook) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, w)
	}
	return nil
}
func (m *WebhookRepositoryMock) List(ctx context.Context, realmName string) ([]*webhook.Webhook, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, realmName)
	}
	return nil, nil
}
func (m *WebhookRepositoryMock) Get(ctx context.Context, id uuid.UUID) (*webhook.Webhook, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, id)
	}
	return nil, apperr.ErrNotFound
}
func (m *WebhookRepositoryMock) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return nil
}
func (m *WebhookRepositoryMock) DeleteByRealm(ctx context.Context, realmName string) error {
	if m.DeleteByRealmFn != nil {
		return m.DeleteByRealmFn(ctx, realmName)
	}
	return nil
}
func (m *WebhookRepositoryMock) Count(ctx context.Context, realmName string) (int, error) {
	if m.CountFn != nil {
		return m.CountFn(ctx, realmName)
	}
	return 0, nil
}
func (m *WebhookRepositoryMock) AppendLog(ctx context.Context, l *webhook.Log) error {
	if m.AppendLogFn != nil {
		return m.AppendLogFn(ctx, l)
	}
	return nil
}
func (m *WebhookRepositoryMock) ListLogs(ctx context.Context, webhookID uuid.UUID, limit int) ([]*webhook.Log, error) {
	if m.ListLogsFn != nil {
		return m.ListLogsFn(ctx, webhookID, limit)
	}
	return nil, nil
}

// ActivityRepositoryMock is a lightweight mock for ActivityRepository
type ActivityRepositoryMock struct {
	AppendFn func(ctx context.Context, e *activity.Entry) error
	RecentFn func(ctx context.Context, ownerEmail string, limit int) ([]*activity.Entry, error)
}

func (m *ActivityRepositoryMock) Append(ctx context.Context, e *activity.Entry) error {
	if m.AppendFn != nil {
		return m.AppendFn(ctx, e)
	}
	return nil
}
func (m *ActivityRepositoryMock) Recent(ctx context.Context, ownerEmail string, limit int) ([]*activity.Entry, error) {
	if m.RecentFn != nil {
		return m.RecentFn(ctx, ownerEmail, limit)
	}
	return nil, nil
}

// AnalyticsRepositoryMock is a lightweight mock for AnalyticsRepository
type AnalyticsRepositoryMock struct {
	TrackFn         func(ctx context.Context, e *activity.Event) error
	CountsByTypeFn  func(ctx context.Context, realmName string, since time.Time) (map[string]int, error)
	DailyCountsFn   func(ctx context.Context, realmName, eventType string, since time.Time) ([]activity.DailyCount, error)
	DeleteByRealmFn func(ctx context.Context, realmName string) error
}

func (m *AnalyticsRepositoryMock) Track(ctx context.Context, e *activity.Event) error {
	if m.TrackFn != nil {
		return m.TrackFn(ctx, e)
	}
	return nil
}
func (m *AnalyticsRepositoryMock) CountsByType(ctx context.Context, realmName string, since time.Time) (map[string]int, error) {
	if m.CountsByTypeFn != nil {
		return m.CountsByTypeFn(ctx, realmName, since)
	}
	return map[string]int{}, nil
}
func (m *AnalyticsRepositoryMock) DailyCounts(ctx context.Context, realmName, eventType string, since time.Time) ([]activity.DailyCount, error) {
	if m.DailyCountsFn != nil {
		return m.DailyCountsFn(ctx, realmName, eventType, since)
	}
	return nil, nil
}
func (m *AnalyticsRepositoryMock) DeleteByRealm(ctx context.Context, realmName string) error {
	if m.DeleteByRealmFn != nil {
		return m.DeleteByRealmFn(ctx, realmName)
	}
	return nil
}

// RateLimitRepositoryMock is a lightweight mock for RateLimitRepository
type RateLimitRepositoryMock struct {
	IncrementWindowFn func(ctx context.Context, key string, window, ttl time.Duration) (int, time.Time, error)
}

func (m *RateLimitRepositoryMock) IncrementWindow(ctx context.Context, key string, window, ttl time.Duration) (int, time.Time, error) {
	if m.IncrementWindowFn != nil {
		return m.IncrementWindowFn(ctx, key, window, ttl)
	}
	return 1, time.Now().Truncate(window), nil
}

// ActivityRecorderMock is a lightweight mock for ActivityRecorder
type ActivityRecorderMock struct {
	LogActivityFn func(ctx context.Context, ownerEmail, action, details, realmName string)
	TrackEventFn  func(ctx context.Context, realmName, eventType string, metadata map[string]any)
}

func (m *ActivityRecorderMock) LogActivity(ctx context.Context, ownerEmail, action, details, realmName string) {
	if m.LogActivityFn != nil {
		m.LogActivityFn(ctx, ownerEmail, action, details, realmName)
	}
}
func (m *ActivityRecorderMock) TrackEvent(ctx context.Context, realmName, eventType string, metadata map[string]any) {
	if m.TrackEventFn != nil {
		m.TrackEventFn(ctx, realmName, eventType, metadata)
	}
}

// WebhookDispatcherMock is a lightweight mock for WebhookDispatcher
type WebhookDispatcherMock struct {
	DispatchFn func(realmName, eventType string, data map[string]any)
}

func (m *WebhookDispatcherMock) Dispatch(realmName, eventType string, data map[string]any) {
	if m.DispatchFn != nil {
		m.DispatchFn(realmName, eventType, data)
	}
}

// EmailServiceMock is a lightweight mock for EmailService
type EmailServiceMock struct {
	SendInvitationEmailFn func(ctx context.Context, inv *org.Invitation, orgName string) error
}

func (m *EmailServiceMock) SendInvitationEmail(ctx context.Context, inv *org.Invitation, orgName string) error {
	if m.SendInvitationEmailFn != nil {
		return m.SendInvitationEmailFn(ctx, inv, orgName)
	}
	return nil
}

// CouponServiceMock is a lightweight mock for CouponService
type CouponServiceMock struct {
	CreateFn      func(ctx context.Context, createdBy string, req *coupon.CreateCouponRequest) (*coupon.Coupon, error)
	ListFn        func(ctx context.Context, createdBy string) ([]*coupon.Coupon, error)
	ValidateFn    func(ctx context.Context, code, planID string) (*coupon.Coupon, error)
	RedeemFn      func(ctx context.Context, code, redeemedBy, realmName string) error
	ToggleFn      func(ctx context.Context, code string) (*coupon.Coupon, error)
	DeleteFn      func(ctx context.Context, actor, code string) error
	RedemptionsFn func(ctx context.Context, code string) ([]*coupon.Redemption, error)
}

func (m *CouponServiceMock) Create(ctx context.Context, createdBy string, req *coupon.CreateCouponRequest) (*coupon.Coupon, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, createdBy, req)
	}
	return nil, nil
}
func (m *CouponServiceMock) List(ctx context.Context, createdBy string) ([]*coupon.Coupon, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, createdBy)
	}
	return nil, nil
}
func (m *CouponServiceMock) Validate(ctx context.Context, code, planID string) (*coupon.Coupon, error) {
	if m.ValidateFn != nil {
		return m.ValidateFn(ctx, code, planID)
	}
	return &coupon.Coupon{Code: code, Enabled: true}, nil
}
func (m *CouponServiceMock) Redeem(ctx context.Context, code, redeemedBy, realmName string) error {
	if m.RedeemFn != nil {
		return m.RedeemFn(ctx, code, redeemedBy, realmName)
	}
	return nil
}
func (m *CouponServiceMock) Toggle(ctx context.Context, code string) (*coupon.Coupon, error) {
	if m.ToggleFn != nil {
		return m.ToggleFn(ctx, code)
	}
	return nil, nil
}
func (m *CouponServiceMock) Delete(ctx context.Context, actor, code string) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, actor, code)
	}
	return nil
}
func (m *CouponServiceMock) Redemptions(ctx context.Context, code string) ([]*coupon.Redemption, error) {
	if m.RedemptionsFn != nil {
		return m.RedemptionsFn(ctx, code)
	}
	return nil, nil
}

// IdentityProviderMock is a lightweight mock for the IdentityProvider
// gateway. Unset functions behave like an empty but healthy realm.
type IdentityProviderMock struct {
	CreateRealmFn func(ctx context.Context, name, displayName, plan string) error
	GetRealmFn    func(ctx context.Context, name string) (map[string]any, error)
	UpdateRealmFn func(ctx context.Context, name string, updates map[string]any) error
	DeleteRealmFn func(ctx context.Context, name string) error

	CreateClientFn func(ctx context.Context, realm string, req *identity.CreateClientRequest) (string, error)
	ListClientsFn  func(ctx context.Context, realm string) ([]*identity.Client, error)
	DeleteClientFn func(ctx context.Context, realm, id string) error

	CreateUserFn func(ctx context.Context, realm string, req *identity.CreateUserRequest) (string, error)
	ListUsersFn  func(ctx context.Context, realm string, first, max int, search string) ([]*identity.User, error)
	GetUserFn    func(ctx context.Context, realm, userID string) (*identity.User, error)
	UpdateUserFn func(ctx context.Context, realm, userID string, req *identity.UpdateUserRequest) error
	DeleteUserFn func(ctx context.Context, realm, userID string) error
	CountUsersFn func(ctx context.Context, realm string) (int, error)

	GetUserSessionsFn    func(ctx context.Context, realm, userID string) ([]*identity.Session, error)
	RevokeUserSessionsFn func(ctx context.Context, realm, userID string) error
	DeleteSessionFn      func(ctx context.Context, realm, sessionID string) error
	ImpersonateUserFn    func(ctx context.Context, realm, userID string) (map[string]any, error)

	CreateRoleFn   func(ctx context.Context, realm, name, description string) error
	ListRolesFn    func(ctx context.Context, realm string) ([]*identity.Role, error)
	GetRoleFn      func(ctx context.Context, realm, name string) (*identity.Role, error)
	DeleteRoleFn   func(ctx context.Context, realm, name string) error
	GetUserRolesFn func(ctx context.Context, realm, userID string) ([]*identity.Role, error)
	AssignRoleFn   func(ctx context.Context, realm, userID string, role *identity.Role) error
	RemoveRoleFn   func(ctx context.Context, realm, userID string, role *identity.Role) error

	CreateGroupFn         func(ctx context.Context, realm, name string, attributes map[string][]string) (string, error)
	ListGroupsFn          func(ctx context.Context, realm string) ([]*identity.Group, error)
	AddUserToGroupFn      func(ctx context.Context, realm, userID, groupID string) error
	RemoveUserFromGroupFn func(ctx context.Context, realm, userID, groupID string) error
	GetGroupMembersFn     func(ctx context.Context, realm, groupID string) ([]*identity.User, error)

	CreateIdentityProviderFn func(ctx context.Context, realm, alias, providerID string, config map[string]string) error
	ListIdentityProvidersFn  func(ctx context.Context, realm string) ([]*identity.Provider, error)
	DeleteIdentityProviderFn func(ctx context.Context, realm, alias string) error

	GetEventsFn          func(ctx context.Context, realm, eventType string, max int) ([]*identity.Event, error)
	GetAdminEventsFn     func(ctx context.Context, realm string, max int) ([]*identity.AdminEvent, error)
	GetSessionStatsFn    func(ctx context.Context, realm string) ([]*identity.SessionStat, error)
	GetAuthFlowsFn       func(ctx context.Context, realm string) ([]*identity.AuthFlow, error)
	GetRequiredActionsFn func(ctx context.Context, realm string) ([]*identity.RequiredAction, error)
}

func (m *IdentityProviderMock) CreateRealm(ctx context.Context, name, displayName, plan string) error {
	if m.CreateRealmFn != nil {
		return m.CreateRealmFn(ctx, name, displayName, plan)
	}
	return nil
}
func (m *IdentityProviderMock) GetRealm(ctx context.Context, name string) (map[string]any, error) {
	if m.GetRealmFn != nil {
		return m.GetRealmFn(ctx, name)
	}
	return map[string]any{"realm": name}, nil
}
func (m *IdentityProviderMock) UpdateRealm(ctx context.Context, name string, updates map[string]any) error {
	if m.UpdateRealmFn != nil {
		return m.UpdateRealmFn(ctx, name, updates)
	}
	return nil
}
func (m *IdentityProviderMock) DeleteRealm(ctx context.Context, name string) error {
	if m.DeleteRealmFn != nil {
		return m.DeleteRealmFn(ctx, name)
	}
	return nil
}
func (m *IdentityProviderMock) CreateClient(ctx context.Context, realm string, req *identity.CreateClientRequest) (string, error) {
	if m.CreateClientFn != nil {
		return m.CreateClientFn(ctx, realm, req)
	}
	return uuid.NewString(), nil
}
func (m *IdentityProviderMock) ListClients(ctx context.Context, realm string) ([]*identity.Client, error) {
	if m.ListClientsFn != nil {
		return m.ListClientsFn(ctx, realm)
	}
	return nil, nil
}
func (m *IdentityProviderMock) DeleteClient(ctx context.Context, realm, id string) error {
	if m.DeleteClientFn != nil {
		return m.DeleteClientFn(ctx, realm, id)
	}
	return nil
}
func (m *IdentityProviderMock) CreateUser(ctx context.Context, realm string, req *identity.CreateUserRequest) (string, error) {
	if m.CreateUserFn != nil {
		return m.CreateUserFn(ctx, realm, req)
	}
	return uuid.NewString(), nil
}
func (m *IdentityProviderMock) ListUsers(ctx context.Context, realm string, first, max int, search string) ([]*identity.User, error) {
	if m.ListUsersFn != nil {
		return m.ListUsersFn(ctx, realm, first, max, search)
	}
	return nil, nil
}
func (m *IdentityProviderMock) GetUser(ctx context.Context, realm, userID string) (*identity.User, error) {
	if m.GetUserFn != nil {
		return m.GetUserFn(ctx, realm, userID)
	}
	return &identity.User{ID: userID}, nil
}
func (m *IdentityProviderMock) UpdateUser(ctx context.Context, realm, userID string, req *identity.UpdateUserRequest) error {
	if m.UpdateUserFn != nil {
		return m.UpdateUserFn(ctx, realm, userID, req)
	}
	return nil
}
func (m *IdentityProviderMock) DeleteUser(ctx context.Context, realm, userID string) error {
	if m.DeleteUserFn != nil {
		return m.DeleteUserFn(ctx, realm, userID)
	}
	return nil
}
func (m *IdentityProviderMock) CountUsers(ctx context.Context, realm string) (int, error) {
	if m.CountUsersFn != nil {
		return m.CountUsersFn(ctx, realm)
	}
	return 0, nil
}
func (m *IdentityProviderMock) GetUserSessions(ctx context.Context, realm, userID string) ([]*identity.Session, error) {
	if m.GetUserSessionsFn != nil {
		return m.GetUserSessionsFn(ctx, realm, userID)
	}
	return nil, nil
}
func (m *IdentityProviderMock) RevokeUserSessions(ctx context.Context, realm, userID string) error {
	if m.RevokeUserSessionsFn != nil {
		return m.RevokeUserSessionsFn(ctx, realm, userID)
	}
	return nil
}
func (m *IdentityProviderMock) DeleteSession(ctx context.Context, realm, sessionID string) error {
	if m.DeleteSessionFn != nil {
		return m.DeleteSessionFn(ctx, realm, sessionID)
	}
	return nil
}
func (m *IdentityProviderMock) ImpersonateUser(ctx context.Context, realm, userID string) (map[string]any, error) {
	if m.ImpersonateUserFn != nil {
		return m.ImpersonateUserFn(ctx, realm, userID)
	}
	return map[string]any{}, nil
}
func (m *IdentityProviderMock) CreateRole(ctx context.Context, realm, name, description string) error {
	if m.CreateRoleFn != nil {
		return m.CreateRoleFn(ctx, realm, name, description)
	}
	return nil
}
func (m *IdentityProviderMock) ListRoles(ctx context.Context, realm string) ([]*identity.Role, error) {
	if m.ListRolesFn != nil {
		return m.ListRolesFn(ctx, realm)
	}
	return nil, nil
}
func (m *IdentityProviderMock) GetRole(ctx context.Context, realm, name string) (*identity.Role, error) {
	if m.GetRoleFn != nil {
		return m.GetRoleFn(ctx, realm, name)
	}
	return &identity.Role{ID: uuid.NewString(), Name: name}, nil
}
func (m *IdentityProviderMock) DeleteRole(ctx context.Context, realm, name string) error {
	if m.DeleteRoleFn != nil {
		return m.DeleteRoleFn(ctx, realm, name)
	}
	return nil
}
func (m *IdentityProviderMock) GetUserRoles(ctx context.Context, realm, userID string) ([]*identity.Role, error) {
	if m.GetUserRolesFn != nil {
		return m.GetUserRolesFn(ctx, realm, userID)
	}
	return nil, nil
}
func (m *IdentityProviderMock) AssignRole(ctx context.Context, realm, userID string, role *identity.Role) error {
	if m.AssignRoleFn != nil {
		return m.AssignRoleFn(ctx, realm, userID, role)
	}
	return nil
}
func (m *IdentityProviderMock) RemoveRole(ctx context.Context, realm, userID string, role *identity.Role) error {
	if m.RemoveRoleFn != nil {
		return m.RemoveRoleFn(ctx, realm, userID, role)
	}
	return nil
}
func (m *IdentityProviderMock) CreateGroup(ctx context.Context, realm, name string, attributes map[string][]string) (string, error) {
	if m.CreateGroupFn != nil {
		return m.CreateGroupFn(ctx, realm, name, attributes)
	}
	return uuid.NewString(), nil
}
func (m *IdentityProviderMock) ListGroups(ctx context.Context, realm string) ([]*identity.Group, error) {
	if m.ListGroupsFn != nil {
		return m.ListGroupsFn(ctx, realm)
	}
	return nil, nil
}
func (m *IdentityProviderMock) AddUserToGroup(ctx context.Context, realm, userID, groupID string) error {
	if m.AddUserToGroupFn != nil {
		return m.AddUserToGroupFn(ctx, realm, userID, groupID)
	}
	return nil
}
func (m *IdentityProviderMock) RemoveUserFromGroup(ctx context.Context, realm, userID, groupID string) error {
	if m.RemoveUserFromGroupFn != nil {
		return m.RemoveUserFromGroupFn(ctx, realm, userID, groupID)
	}
	return nil
}
func (m *IdentityProviderMock) GetGroupMembers(ctx context.Context, realm, groupID string) ([]*identity.User, error) {
	if m.GetGroupMembersFn != nil {
		return m.GetGroupMembersFn(ctx, realm, groupID)
	}
	return nil, nil
}
func (m *IdentityProviderMock) CreateIdentityProvider(ctx context.Context, realm, alias, providerID string, config map[string]string) error {
	if m.CreateIdentityProviderFn != nil {
		return m.CreateIdentityProviderFn(ctx, realm, alias, providerID, config)
	}
	return nil
}
func (m *IdentityProviderMock) ListIdentityProviders(ctx context.Context, realm string) ([]*identity.Provider, error) {
	if m.ListIdentityProvidersFn != nil {
		return m.ListIdentityProvidersFn(ctx, realm)
	}
	return nil, nil
}
func (m *IdentityProviderMock) DeleteIdentityProvider(ctx context.Context, realm, alias string) error {
	if m.DeleteIdentityProviderFn != nil {
		return m.DeleteIdentityProviderFn(ctx, realm, alias)
	}
	return nil
}
func (m *IdentityProviderMock) GetEvents(ctx context.Context, realm, eventType string, max int) ([]*identity.Event, error) {
	if m.GetEventsFn != nil {
		return m.GetEventsFn(ctx, realm, eventType, max)
	}
	return nil, nil
}
func (m *IdentityProviderMock) GetAdminEvents(ctx context.Context, realm string, max int) ([]*identity.AdminEvent, error) {
	if m.GetAdminEventsFn != nil {
		return m.GetAdminEventsFn(ctx, realm, max)
	}
	return nil, nil
}
func (m *IdentityProviderMock) GetSessionStats(ctx context.Context, realm string) ([]*identity.SessionStat, error) {
	if m.GetSessionStatsFn != nil {
		return m.GetSessionStatsFn(ctx, realm)
	}
	return nil, nil
}
func (m *IdentityProviderMock) GetAuthFlows(ctx context.Context, realm string) ([]*identity.AuthFlow, error) {
	if m.GetAuthFlowsFn != nil {
		return m.GetAuthFlowsFn(ctx, realm)
	}
	return nil, nil
}
func (m *IdentityProviderMock) GetRequiredActions(ctx context.Context, realm string) ([]*identity.RequiredAction, error) {
	if m.GetRequiredActionsFn != nil {
		return m.GetRequiredActionsFn(ctx, realm)
	}
	return nil, nil
}

// AuthServiceMock is a lightweight mock for AuthService
type AuthServiceMock struct {
	RegisterFn      func(ctx context.Context, req *admin.RegisterRequest) (*admin.Session, error)
	LoginFn         func(ctx context.Context, req *admin.LoginRequest) (*admin.Session, error)
	GetAdminFn      func(ctx context.Context, email string) (*admin.Admin, error)
	ValidateTokenFn func(tokenString string) (string, string, error)
}

func (m *AuthServiceMock) Register(ctx context.Context, req *admin.RegisterRequest) (*admin.Session, error) {
	if m.RegisterFn != nil {
		return m.RegisterFn(ctx, req)
	}
	return &admin.Session{Token: "token", Email: req.Email, Name: req.Name}, nil
}
func (m *AuthServiceMock) Login(ctx context.Context, req *admin.LoginRequest) (*admin.Session, error) {
	if m.LoginFn != nil {
		return m.LoginFn(ctx, req)
	}
	return &admin.Session{Token: "token", Email: req.Email}, nil
}
func (m *AuthServiceMock) GetAdmin(ctx context.Context, email string) (*admin.Admin, error) {
	if m.GetAdminFn != nil {
		return m.GetAdminFn(ctx, email)
	}
	return &admin.Admin{Email: email}, nil
}
func (m *AuthServiceMock) ValidateToken(tokenString string) (string, string, error) {
	if m.ValidateTokenFn != nil {
		return m.ValidateTokenFn(tokenString)
	}
	return "owner@example.com", "Owner", nil
}

// RateLimiterServiceMock is a lightweight mock for RateLimiterService
type RateLimiterServiceMock struct {
	AllowFn func(ctx context.Context, realmName string) (bool, int, int, time.Time, error)
}

func (m *RateLimiterServiceMock) Allow(ctx context.Context, realmName string) (bool, int, int, time.Time, error) {
	if m.AllowFn != nil {
		return m.AllowFn(ctx, realmName)
	}
	return true, 99, 100, time.Now().Add(time.Minute), nil
}
