package services_test

import (
	"context"
	"errors"
	"testing"

	impl "github.com/rudralabs/rudra/internal/application/services"
	"github.com/rudralabs/rudra/internal/core/domain/apperr"
	"github.com/rudralabs/rudra/internal/core/domain/identity"
	"github.com/rudralabs/rudra/internal/core/domain/plan"
	"github.com/rudralabs/rudra/internal/core/domain/tenant"
	"github.com/rudralabs/rudra/internal/core/domain/webhook"
	"github.com/rudralabs/rudra/internal/core/ports"
	tmocks "github.com/rudralabs/rudra/test/mocks"
)

func newUserService(tenants *tmocks.TenantRepositoryMock, idp *tmocks.IdentityProviderMock, dispatcher ports.WebhookDispatcher) ports.UserService {
	if dispatcher == nil {
		dispatcher = &tmocks.WebhookDispatcherMock{}
	}
	return impl.NewUserService(tenants, idp, plan.BuiltinRegistry(), impl.NewEntitlementService(testLogger()), &tmocks.ActivityRecorderMock{}, dispatcher, testLogger())
}

func tenantWithSettings(realm, planID string, settings tenant.AuthSettings) *tmocks.TenantRepositoryMock {
	return &tmocks.TenantRepositoryMock{
		GetByRealmFn: func(ctx context.Context, realmName string) (*tenant.Tenant, error) {
			return &tenant.Tenant{RealmName: realm, OwnerEmail: "owner@example.com", Plan: planID, AuthSettings: settings}, nil
		},
	}
}

func TestCreateUser_DisposableEmailBlocked(t *testing.T) {
	tenants := tenantWithSettings("acme", "pro", tenant.AuthSettings{DisposableEmailBlocking: true})
	svc := newUserService(tenants, &tmocks.IdentityProviderMock{}, nil)

	_, err := svc.CreateUser(context.Background(), "owner@example.com", "acme", &identity.CreateUserRequest{
		Username: "burner",
		Email:    "burner@mailinator.com",
		Password: "secret123",
	})
	if !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("expected validation error for disposable domain, got %v", err)
	}
}

func TestCreateUser_DisposableAllowedWhenBlockingOff(t *testing.T) {
	tenants := tenantWithSettings("acme", "pro", tenant.AuthSettings{})
	svc := newUserService(tenants, &tmocks.IdentityProviderMock{}, nil)

	id, err := svc.CreateUser(context.Background(), "owner@example.com", "acme", &identity.CreateUserRequest{
		Username: "burner",
		Email:    "burner@mailinator.com",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id == "" {
		t.Fatal("expected a user ID")
	}
}

func TestCreateUser_UserLimitReached(t *testing.T) {
	tenants := tenantWithSettings("acme", "free", tenant.AuthSettings{})
	idp := &tmocks.IdentityProviderMock{
		CountUsersFn: func(ctx context.Context, realm string) (int, error) { return 10000, nil },
	}
	svc := newUserService(tenants, idp, nil)

	_, err := svc.CreateUser(context.Background(), "owner@example.com", "acme", &identity.CreateUserRequest{
		Username: "one-too-many",
		Email:    "u@example.com",
		Password: "secret123",
	})
	if !apperr.IsEntitlement(err) {
		t.Fatalf("expected entitlement denial at the user ceiling, got %v", err)
	}
}

func TestCreateUser_DispatchesEvent(t *testing.T) {
	var dispatched string
	dispatcher := &tmocks.WebhookDispatcherMock{
		DispatchFn: func(realmName, eventType string, data map[string]any) { dispatched = eventType },
	}
	tenants := tenantWithSettings("acme", "pro", tenant.AuthSettings{})
	svc := newUserService(tenants, &tmocks.IdentityProviderMock{}, dispatcher)

	_, err := svc.CreateUser(context.Background(), "owner@example.com", "acme", &identity.CreateUserRequest{
		Username: "jane",
		Email:    "jane@example.com",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dispatched != webhook.EventUserCreated {
		t.Fatalf("expected %q dispatched, got %q", webhook.EventUserCreated, dispatched)
	}
}

func TestImpersonate_FreePlanDenied(t *testing.T) {
	tenants := tenantWithSettings("acme", "free", tenant.AuthSettings{})
	svc := newUserService(tenants, &tmocks.IdentityProviderMock{}, nil)

	_, err := svc.Impersonate(context.Background(), "owner@example.com", "acme", "user-1")
	if !apperr.IsEntitlement(err) {
		t.Fatalf("expected entitlement denial, got %v", err)
	}
}

func TestImpersonate_ProPlanAllowed(t *testing.T) {
	tenants := tenantWithSettings("acme", "pro", tenant.AuthSettings{})
	idp := &tmocks.IdentityProviderMock{
		ImpersonateUserFn: func(ctx context.Context, realm, userID string) (map[string]any, error) {
			return map[string]any{"redirect": "https://idp/acme"}, nil
		},
	}
	svc := newUserService(tenants, idp, nil)

	result, err := svc.Impersonate(context.Background(), "owner@example.com", "acme", "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result["redirect"] == "" {
		t.Fatal("expected impersonation payload to pass through")
	}
}

func TestCreateRole_CountsCustomRolesOnly(t *testing.T) {
	// Two custom roles on a pro plan (limit 20): built-ins must not count.
	tenants := tenantWithSettings("acme", "pro", tenant.AuthSettings{})
	idp := &tmocks.IdentityProviderMock{
		ListRolesFn: func(ctx context.Context, realm string) ([]*identity.Role, error) {
			return []*identity.Role{
				{Name: "uma_authorization"},
				{Name: "offline_access"},
				{Name: "default-roles-acme"},
				{Name: "editor"},
				{Name: "viewer"},
			}, nil
		},
	}
	svc := newUserService(tenants, idp, nil)

	if err := svc.CreateRole(context.Background(), "owner@example.com", "acme", "auditor", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCreateRole_FreePlanDenied(t *testing.T) {
	tenants := tenantWithSettings("acme", "free", tenant.AuthSettings{})
	svc := newUserService(tenants, &tmocks.IdentityProviderMock{}, nil)

	err := svc.CreateRole(context.Background(), "owner@example.com", "acme", "auditor", "")
	if !apperr.IsEntitlement(err) {
		t.Fatalf("expected entitlement denial for custom roles on free, got %v", err)
	}
}

func TestListRoles_FiltersBuiltins(t *testing.T) {
	tenants := tenantWithSettings("acme", "pro", tenant.AuthSettings{})
	idp := &tmocks.IdentityProviderMock{
		ListRolesFn: func(ctx context.Context, realm string) ([]*identity.Role, error) {
			return []*identity.Role{
				{Name: "offline_access"},
				{Name: "default-roles-acme"},
				{Name: "editor"},
			}, nil
		},
	}
	svc := newUserService(tenants, idp, nil)

	roles, err := svc.ListRoles(context.Background(), "owner@example.com", "acme")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(roles) != 1 || roles[0].Name != "editor" {
		t.Fatalf("expected only the custom role, got %+v", roles)
	}
}

func TestGetUser_NotOwner(t *testing.T) {
	tenants := tenantWithSettings("acme", "pro", tenant.AuthSettings{})
	svc := newUserService(tenants, &tmocks.IdentityProviderMock{}, nil)

	_, _, _, err := svc.GetUser(context.Background(), "intruder@example.com", "acme", "user-1")
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected not found for foreign owner, got %v", err)
	}
}
