package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/rudralabs/rudra/internal/core/domain/apperr"
	"github.com/rudralabs/rudra/internal/core/domain/coupon"
	"github.com/rudralabs/rudra/internal/core/domain/identity"
	"github.com/rudralabs/rudra/internal/core/domain/plan"
	"github.com/rudralabs/rudra/internal/core/domain/tenant"
	"github.com/rudralabs/rudra/internal/core/ports"
)

var realmNamePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]{1,61}[a-z0-9]$`)

// TenantService coordinates the tenant lifecycle across the identity
// provider and local storage. Creation is ordered so every entitlement and
// coupon check happens before the first mutation; deletion treats the local
// row as authoritative and the provider realm as best-effort.
type TenantService struct {
	repo           ports.TenantRepository
	orgRepo        ports.OrganizationRepository
	webhookRepo    ports.WebhookRepository
	invitationRepo ports.InvitationRepository
	analyticsRepo  ports.AnalyticsRepository
	idp            ports.IdentityProvider
	plans          *plan.Registry
	entitlements   ports.EntitlementService
	coupons        ports.CouponService
	activity       ports.ActivityRecorder
	logger         *logrus.Logger
}

func NewTenantService(
	repo ports.TenantRepository,
	orgRepo ports.OrganizationRepository,
	webhookRepo ports.WebhookRepository,
	invitationRepo ports.InvitationRepository,
	analyticsRepo ports.AnalyticsRepository,
	idp ports.IdentityProvider,
	plans *plan.Registry,
	entitlements ports.EntitlementService,
	coupons ports.CouponService,
	activity ports.ActivityRecorder,
	logger *logrus.Logger,
) ports.TenantService {
	return &TenantService{
		repo:           repo,
		orgRepo:        orgRepo,
		webhookRepo:    webhookRepo,
		invitationRepo: invitationRepo,
		analyticsRepo:  analyticsRepo,
		idp:            idp,
		plans:          plans,
		entitlements:   entitlements,
		coupons:        coupons,
		activity:       activity,
		logger:         logger,
	}
}

// Create provisions a new tenant. Order matters: plan validation, realm
// limit, coupon validation all run before the realm exists, so a denial
// leaves nothing behind. The provider realm is created before the local
// row; if the row insert then fails the realm is rolled back best-effort.
func (s *TenantService) Create(ctx context.Context, ownerEmail string, req *tenant.CreateTenantRequest) (*tenant.Tenant, error) {
	realmName := strings.ToLower(strings.TrimSpace(req.RealmName))
	if !realmNamePattern.MatchString(realmName) {
		return nil, fmt.Errorf("%w: realm name must be lowercase alphanumeric with hyphens", apperr.ErrValidation)
	}
	if req.Name == "" {
		return nil, fmt.Errorf("%w: name is required", apperr.ErrValidation)
	}

	planID := req.Plan
	if planID == "" {
		planID = "free"
	}
	p, ok := s.plans.Get(planID)
	if !ok {
		return nil, fmt.Errorf("%w: invalid plan: %s", apperr.ErrValidation, planID)
	}

	count, err := s.repo.CountByOwner(ctx, ownerEmail)
	if err != nil {
		return nil, err
	}
	if err := s.entitlements.CheckLimit(p, plan.LimitMaxRealms, count); err != nil {
		return nil, err
	}

	appliedCoupon := ""
	discountPct := 0
	if req.CouponCode != "" {
		c, err := s.coupons.Validate(ctx, req.CouponCode, planID)
		if err != nil {
			return nil, fmt.Errorf("%w: coupon: %s", apperr.ErrValidation, err)
		}
		appliedCoupon = c.Code
		discountPct = c.DiscountPct
	}

	if err := s.idp.CreateRealm(ctx, realmName, req.Name, planID); err != nil {
		return nil, err
	}

	now := time.Now()
	t := &tenant.Tenant{
		ID:            uuid.New(),
		Name:          req.Name,
		RealmName:     realmName,
		Plan:          planID,
		OwnerEmail:    ownerEmail,
		AppliedCoupon: appliedCoupon,
		DiscountPct:   discountPct,
		AuthSettings:  tenant.DefaultAuthSettings(),
		Branding:      tenant.DefaultBranding(),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.repo.Create(ctx, t); err != nil {
		if derr := s.idp.DeleteRealm(ctx, realmName); derr != nil {
			s.logger.WithError(derr).WithField("realm", realmName).Warn("Failed to roll back realm after store error")
		}
		return nil, err
	}

	if appliedCoupon != "" {
		if err := s.coupons.Redeem(ctx, appliedCoupon, ownerEmail, realmName); err != nil {
			// The tenant exists either way; only the discount bookkeeping lost the race.
			if errors.Is(err, coupon.ErrRedemptionLimit) {
				t.AppliedCoupon = ""
				t.DiscountPct = 0
				if uerr := s.repo.Update(ctx, t); uerr != nil {
					s.logger.WithError(uerr).WithField("realm", realmName).Warn("Failed to clear lost coupon from tenant")
				}
			} else {
				s.logger.WithError(err).WithField("realm", realmName).Warn("Coupon redemption failed after tenant creation")
			}
		}
	}

	details := fmt.Sprintf("Created '%s'", req.Name)
	if t.AppliedCoupon != "" {
		details += fmt.Sprintf(" with coupon %s (%d%% off)", t.AppliedCoupon, t.DiscountPct)
	}
	s.activity.LogActivity(ctx, ownerEmail, "create_tenant", details, realmName)
	s.activity.TrackEvent(ctx, realmName, "project.created", map[string]any{
		"plan":   planID,
		"coupon": t.AppliedCoupon,
	})

	return t, nil
}

// GetOwned returns the bare tenant after an ownership check.
func (s *TenantService) GetOwned(ctx context.Context, ownerEmail, realmName string) (*tenant.Tenant, error) {
	return ownedTenant(ctx, s.repo, ownerEmail, realmName)
}

// Get returns a tenant enriched with live usage counts. Provider reads are
// best-effort; a dead provider yields zero counts, not an error.
func (s *TenantService) Get(ctx context.Context, ownerEmail, realmName string) (*tenant.Overview, error) {
	t, err := ownedTenant(ctx, s.repo, ownerEmail, realmName)
	if err != nil {
		return nil, err
	}
	ov := s.overview(ctx, t, true)
	return ov, nil
}

// List returns all tenants owned by the account, each with usage counts.
func (s *TenantService) List(ctx context.Context, ownerEmail string) ([]*tenant.Overview, error) {
	tenants, err := s.repo.ListByOwner(ctx, ownerEmail)
	if err != nil {
		return nil, err
	}
	overviews := make([]*tenant.Overview, 0, len(tenants))
	for _, t := range tenants {
		overviews = append(overviews, s.overview(ctx, t, false))
	}
	return overviews, nil
}

// Update applies a partial update. Unknown plan IDs are ignored rather than
// rejected so a stale dashboard cannot wedge the tenant.
func (s *TenantService) Update(ctx context.Context, ownerEmail, realmName string, req *tenant.UpdateTenantRequest) (*tenant.Tenant, error) {
	t, err := ownedTenant(ctx, s.repo, ownerEmail, realmName)
	if err != nil {
		return nil, err
	}

	changed := map[string]any{}
	if req.Plan != nil {
		if _, ok := s.plans.Get(*req.Plan); ok {
			t.Plan = *req.Plan
			changed["plan"] = *req.Plan
		}
	}
	if req.DisplayName != nil && *req.DisplayName != "" {
		t.Name = *req.DisplayName
		changed["name"] = *req.DisplayName
	}
	if len(changed) == 0 {
		return t, nil
	}

	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}
	s.activity.LogActivity(ctx, ownerEmail, "update_tenant", fmt.Sprintf("%v", changed), realmName)
	return t, nil
}

// Delete tears a tenant down. The provider realm goes first, best-effort;
// local records always go, so a dead provider cannot orphan billing state.
func (s *TenantService) Delete(ctx context.Context, ownerEmail, realmName string) error {
	if _, err := ownedTenant(ctx, s.repo, ownerEmail, realmName); err != nil {
		return err
	}

	if err := s.idp.DeleteRealm(ctx, realmName); err != nil {
		s.logger.WithError(err).WithField("realm", realmName).Warn("Failed to delete provider realm, continuing with local cleanup")
	}

	if err := s.orgRepo.DeleteByRealm(ctx, realmName); err != nil {
		s.logger.WithError(err).WithField("realm", realmName).Warn("Failed to cascade organizations")
	}
	if err := s.invitationRepo.DeleteByRealm(ctx, realmName); err != nil {
		s.logger.WithError(err).WithField("realm", realmName).Warn("Failed to cascade invitations")
	}
	if err := s.webhookRepo.DeleteByRealm(ctx, realmName); err != nil {
		s.logger.WithError(err).WithField("realm", realmName).Warn("Failed to cascade webhooks")
	}
	if err := s.analyticsRepo.DeleteByRealm(ctx, realmName); err != nil {
		s.logger.WithError(err).WithField("realm", realmName).Warn("Failed to cascade analytics events")
	}

	if err := s.repo.Delete(ctx, realmName); err != nil {
		return err
	}

	s.activity.LogActivity(ctx, ownerEmail, "delete_tenant", fmt.Sprintf("Deleted '%s'", realmName), "")
	return nil
}

// UpdateAuthSettings merges the request into the auth-settings sub-document.
func (s *TenantService) UpdateAuthSettings(ctx context.Context, ownerEmail, realmName string, req *tenant.UpdateAuthSettingsRequest) (*tenant.AuthSettings, error) {
	t, err := ownedTenant(ctx, s.repo, ownerEmail, realmName)
	if err != nil {
		return nil, err
	}
	req.Apply(&t.AuthSettings)
	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}

	// Mirror the MFA switch to the provider's OTP policy, best-effort.
	if req.MFAEnabled != nil {
		otpPolicy := ""
		if *req.MFAEnabled {
			otpPolicy = "totp"
		}
		if err := s.idp.UpdateRealm(ctx, realmName, map[string]any{"otpPolicyType": otpPolicy}); err != nil {
			s.logger.WithError(err).WithField("realm", realmName).Warn("Failed to mirror MFA setting to provider")
		}
	}

	s.activity.LogActivity(ctx, ownerEmail, "update_auth_settings", "Updated auth settings", realmName)
	return &t.AuthSettings, nil
}

// UpdateBranding merges the request into the branding sub-document.
func (s *TenantService) UpdateBranding(ctx context.Context, ownerEmail, realmName string, req *tenant.UpdateBrandingRequest) (*tenant.Branding, error) {
	t, err := ownedTenant(ctx, s.repo, ownerEmail, realmName)
	if err != nil {
		return nil, err
	}
	req.Apply(&t.Branding)
	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}
	return &t.Branding, nil
}

// CreateClient registers an application on the tenant's realm.
func (s *TenantService) CreateClient(ctx context.Context, ownerEmail, realmName string, req *identity.CreateClientRequest) (string, error) {
	if _, err := ownedTenant(ctx, s.repo, ownerEmail, realmName); err != nil {
		return "", err
	}
	if req.ClientID == "" {
		return "", fmt.Errorf("%w: client_id is required", apperr.ErrValidation)
	}
	id, err := s.idp.CreateClient(ctx, realmName, req)
	if err != nil {
		return "", err
	}
	s.activity.LogActivity(ctx, ownerEmail, "create_client", fmt.Sprintf("Created '%s'", req.ClientID), realmName)
	return id, nil
}

func (s *TenantService) ListClients(ctx context.Context, ownerEmail, realmName string) ([]*identity.Client, error) {
	if _, err := ownedTenant(ctx, s.repo, ownerEmail, realmName); err != nil {
		return nil, err
	}
	return s.idp.ListClients(ctx, realmName)
}

func (s *TenantService) DeleteClient(ctx context.Context, ownerEmail, realmName, clientID string) error {
	if _, err := ownedTenant(ctx, s.repo, ownerEmail, realmName); err != nil {
		return err
	}
	return s.idp.DeleteClient(ctx, realmName, clientID)
}

// overview enriches a tenant with usage counts. withRoles additionally
// counts custom roles, which only the single-tenant view displays.
func (s *TenantService) overview(ctx context.Context, t *tenant.Tenant, withRoles bool) *tenant.Overview {
	ov := &tenant.Overview{Tenant: *t}

	if uc, err := s.idp.CountUsers(ctx, t.RealmName); err == nil {
		ov.UserCount = uc
	}
	if clients, err := s.idp.ListClients(ctx, t.RealmName); err == nil {
		ov.ClientCount = len(clients)
	}
	if idps, err := s.idp.ListIdentityProviders(ctx, t.RealmName); err == nil {
		ov.IdPCount = len(idps)
	}
	if oc, err := s.orgRepo.Count(ctx, t.RealmName); err == nil {
		ov.OrgCount = oc
	}
	if withRoles {
		if roles, err := s.idp.ListRoles(ctx, t.RealmName); err == nil {
			ov.RoleCount = len(filterCustomRoles(roles, t.RealmName))
		}
		if wc, err := s.webhookRepo.Count(ctx, t.RealmName); err == nil {
			ov.WebhookCount = wc
		}
	}
	return ov
}

// filterCustomRoles drops the provider's built-in realm roles.
func filterCustomRoles(roles []*identity.Role, realmName string) []*identity.Role {
	skip := map[string]bool{
		"uma_authorization":          true,
		"offline_access":             true,
		"default-roles-" + realmName: true,
	}
	custom := make([]*identity.Role, 0, len(roles))
	for _, r := range roles {
		if skip[r.Name] || strings.HasPrefix(r.Name, "uma_") {
			continue
		}
		custom = append(custom, r)
	}
	return custom
}
