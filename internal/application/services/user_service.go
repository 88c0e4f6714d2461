package services

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/rudralabs/rudra/internal/core/domain/apperr"
	"github.com/rudralabs/rudra/internal/core/domain/identity"
	"github.com/rudralabs/rudra/internal/core/domain/plan"
	"github.com/rudralabs/rudra/internal/core/domain/webhook"
	"github.com/rudralabs/rudra/internal/core/ports"
)

// UserService manages realm users through the identity provider, enforcing
// the tenant's plan and auth settings in front of every mutation.
type UserService struct {
	tenantRepo   ports.TenantRepository
	idp          ports.IdentityProvider
	plans        *plan.Registry
	entitlements ports.EntitlementService
	activity     ports.ActivityRecorder
	dispatcher   ports.WebhookDispatcher
	logger       *logrus.Logger
}

func NewUserService(tenantRepo ports.TenantRepository, idp ports.IdentityProvider, plans *plan.Registry, entitlements ports.EntitlementService, activity ports.ActivityRecorder, dispatcher ports.WebhookDispatcher, logger *logrus.Logger) ports.UserService {
	return &UserService{
		tenantRepo:   tenantRepo,
		idp:          idp,
		plans:        plans,
		entitlements: entitlements,
		activity:     activity,
		dispatcher:   dispatcher,
		logger:       logger,
	}
}

// CreateUser creates a realm user after the disposable-email policy and the
// plan's user limit both pass.
func (s *UserService) CreateUser(ctx context.Context, ownerEmail, realmName string, req *identity.CreateUserRequest) (string, error) {
	t, err := ownedTenant(ctx, s.tenantRepo, ownerEmail, realmName)
	if err != nil {
		return "", err
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return "", fmt.Errorf("%w: username, email and password are required", apperr.ErrValidation)
	}

	if t.AuthSettings.DisposableEmailBlocking {
		if domain, blocked := identity.DisposableEmailDomain(req.Email); blocked {
			return "", fmt.Errorf("%w: disposable email domain '%s' is blocked", apperr.ErrValidation, domain)
		}
	}

	p := s.plans.GetOrFree(t.Plan)
	count, err := s.idp.CountUsers(ctx, realmName)
	if err != nil {
		return "", err
	}
	if err := s.entitlements.CheckLimit(p, plan.LimitMaxUsers, count); err != nil {
		return "", err
	}

	userID, err := s.idp.CreateUser(ctx, realmName, req)
	if err != nil {
		return "", err
	}

	s.activity.LogActivity(ctx, ownerEmail, "create_user", fmt.Sprintf("Created '%s'", req.Username), realmName)
	s.activity.TrackEvent(ctx, realmName, webhook.EventUserCreated, map[string]any{
		"username": req.Username,
		"email":    req.Email,
	})
	s.dispatcher.Dispatch(realmName, webhook.EventUserCreated, map[string]any{
		"username": req.Username,
		"email":    req.Email,
		"user_id":  userID,
	})
	return userID, nil
}

func (s *UserService) ListUsers(ctx context.Context, ownerEmail, realmName string, first, max int, search string) ([]*identity.User, error) {
	if _, err := ownedTenant(ctx, s.tenantRepo, ownerEmail, realmName); err != nil {
		return nil, err
	}
	if max <= 0 {
		max = 50
	}
	return s.idp.ListUsers(ctx, realmName, first, max, search)
}

// GetUser returns the user plus their sessions and role mappings. The
// session and role reads degrade to empty on provider failure.
func (s *UserService) GetUser(ctx context.Context, ownerEmail, realmName, userID string) (*identity.User, []*identity.Session, []*identity.Role, error) {
	if _, err := ownedTenant(ctx, s.tenantRepo, ownerEmail, realmName); err != nil {
		return nil, nil, nil, err
	}
	u, err := s.idp.GetUser(ctx, realmName, userID)
	if err != nil {
		return nil, nil, nil, err
	}
	sessions, _ := s.idp.GetUserSessions(ctx, realmName, userID)
	roles, _ := s.idp.GetUserRoles(ctx, realmName, userID)
	return u, sessions, roles, nil
}

func (s *UserService) UpdateUser(ctx context.Context, ownerEmail, realmName, userID string, req *identity.UpdateUserRequest) error {
	if _, err := ownedTenant(ctx, s.tenantRepo, ownerEmail, realmName); err != nil {
		return err
	}
	if err := s.idp.UpdateUser(ctx, realmName, userID, req); err != nil {
		return err
	}
	s.dispatcher.Dispatch(realmName, webhook.EventUserUpdated, map[string]any{"user_id": userID})
	return nil
}

func (s *UserService) DeleteUser(ctx context.Context, ownerEmail, realmName, userID string) error {
	if _, err := ownedTenant(ctx, s.tenantRepo, ownerEmail, realmName); err != nil {
		return err
	}
	if err := s.idp.DeleteUser(ctx, realmName, userID); err != nil {
		return err
	}
	s.activity.LogActivity(ctx, ownerEmail, "delete_user", fmt.Sprintf("Deleted user %s", userID), realmName)
	s.dispatcher.Dispatch(realmName, webhook.EventUserDeleted, map[string]any{"user_id": userID})
	return nil
}

func (s *UserService) GetSessions(ctx context.Context, ownerEmail, realmName, userID string) ([]*identity.Session, error) {
	if _, err := ownedTenant(ctx, s.tenantRepo, ownerEmail, realmName); err != nil {
		return nil, err
	}
	return s.idp.GetUserSessions(ctx, realmName, userID)
}

func (s *UserService) RevokeSessions(ctx context.Context, ownerEmail, realmName, userID string) error {
	if _, err := ownedTenant(ctx, s.tenantRepo, ownerEmail, realmName); err != nil {
		return err
	}
	if err := s.idp.RevokeUserSessions(ctx, realmName, userID); err != nil {
		return err
	}
	s.dispatcher.Dispatch(realmName, webhook.EventSessionRevoked, map[string]any{"user_id": userID})
	return nil
}

func (s *UserService) RevokeSession(ctx context.Context, ownerEmail, realmName, sessionID string) error {
	if _, err := ownedTenant(ctx, s.tenantRepo, ownerEmail, realmName); err != nil {
		return err
	}
	return s.idp.DeleteSession(ctx, realmName, sessionID)
}

// Impersonate starts an impersonation session; gated on the plan flag and
// always audited.
func (s *UserService) Impersonate(ctx context.Context, ownerEmail, realmName, userID string) (map[string]any, error) {
	t, err := ownedTenant(ctx, s.tenantRepo, ownerEmail, realmName)
	if err != nil {
		return nil, err
	}
	p := s.plans.GetOrFree(t.Plan)
	if err := s.entitlements.CheckFeature(p, plan.FeatureUserImpersonation); err != nil {
		return nil, err
	}
	result, err := s.idp.ImpersonateUser(ctx, realmName, userID)
	if err != nil {
		return nil, err
	}
	s.activity.LogActivity(ctx, ownerEmail, "impersonate_user", fmt.Sprintf("Impersonated %s", userID), realmName)
	return result, nil
}

// CreateRole creates a custom realm role, gated on the custom_roles flag
// and the plan's role ceiling counted over custom roles only.
func (s *UserService) CreateRole(ctx context.Context, ownerEmail, realmName, name, description string) error {
	t, err := ownedTenant(ctx, s.tenantRepo, ownerEmail, realmName)
	if err != nil {
		return err
	}
	if name == "" {
		return fmt.Errorf("%w: role name is required", apperr.ErrValidation)
	}
	p := s.plans.GetOrFree(t.Plan)
	if err := s.entitlements.CheckFeature(p, plan.FeatureCustomRoles); err != nil {
		return err
	}
	roles, err := s.idp.ListRoles(ctx, realmName)
	if err != nil {
		return err
	}
	if err := s.entitlements.CheckLimit(p, plan.LimitMaxRoles, len(filterCustomRoles(roles, realmName))); err != nil {
		return err
	}
	if err := s.idp.CreateRole(ctx, realmName, name, description); err != nil {
		return err
	}
	s.activity.LogActivity(ctx, ownerEmail, "create_role", fmt.Sprintf("Created role '%s'", name), realmName)
	return nil
}

// ListRoles returns the realm's custom roles, with built-ins filtered out.
func (s *UserService) ListRoles(ctx context.Context, ownerEmail, realmName string) ([]*identity.Role, error) {
	if _, err := ownedTenant(ctx, s.tenantRepo, ownerEmail, realmName); err != nil {
		return nil, err
	}
	roles, err := s.idp.ListRoles(ctx, realmName)
	if err != nil {
		return nil, err
	}
	return filterCustomRoles(roles, realmName), nil
}

func (s *UserService) DeleteRole(ctx context.Context, ownerEmail, realmName, roleName string) error {
	if _, err := ownedTenant(ctx, s.tenantRepo, ownerEmail, realmName); err != nil {
		return err
	}
	return s.idp.DeleteRole(ctx, realmName, roleName)
}

func (s *UserService) AssignRole(ctx context.Context, ownerEmail, realmName, userID, roleName string) error {
	if _, err := ownedTenant(ctx, s.tenantRepo, ownerEmail, realmName); err != nil {
		return err
	}
	role, err := s.idp.GetRole(ctx, realmName, roleName)
	if err != nil {
		return err
	}
	return s.idp.AssignRole(ctx, realmName, userID, role)
}

func (s *UserService) RemoveRole(ctx context.Context, ownerEmail, realmName, userID, roleName string) error {
	if _, err := ownedTenant(ctx, s.tenantRepo, ownerEmail, realmName); err != nil {
		return err
	}
	role, err := s.idp.GetRole(ctx, realmName, roleName)
	if err != nil {
		return err
	}
	return s.idp.RemoveRole(ctx, realmName, userID, role)
}
