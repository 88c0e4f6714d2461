package services_test

import (
	"context"
	"errors"
	"testing"

	impl "github.com/rudralabs/rudra/internal/application/services"
	"github.com/rudralabs/rudra/internal/core/domain/apperr"
	"github.com/rudralabs/rudra/internal/core/domain/coupon"
	"github.com/rudralabs/rudra/internal/core/domain/plan"
	"github.com/rudralabs/rudra/internal/core/domain/tenant"
	"github.com/rudralabs/rudra/internal/core/ports"
	tmocks "github.com/rudralabs/rudra/test/mocks"
)

func newTenantService(repo *tmocks.TenantRepositoryMock, idp *tmocks.IdentityProviderMock, coupons ports.CouponService) ports.TenantService {
	if coupons == nil {
		coupons = &tmocks.CouponServiceMock{}
	}
	return impl.NewTenantService(
		repo,
		&tmocks.OrganizationRepositoryMock{},
		&tmocks.WebhookRepositoryMock{},
		&tmocks.InvitationRepositoryMock{},
		&tmocks.AnalyticsRepositoryMock{},
		idp,
		plan.BuiltinRegistry(),
		impl.NewEntitlementService(testLogger()),
		coupons,
		&tmocks.ActivityRecorderMock{},
		testLogger(),
	)
}

func TestCreateTenant_Defaults(t *testing.T) {
	var created *tenant.Tenant
	repo := &tmocks.TenantRepositoryMock{
		CreateFn: func(ctx context.Context, tn *tenant.Tenant) error { created = tn; return nil },
	}
	realmCreated := false
	idp := &tmocks.IdentityProviderMock{
		CreateRealmFn: func(ctx context.Context, name, displayName, planID string) error {
			realmCreated = true
			return nil
		},
	}
	svc := newTenantService(repo, idp, nil)

	tn, err := svc.Create(context.Background(), "owner@example.com", &tenant.CreateTenantRequest{Name: "Acme", RealmName: "acme-prod"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !realmCreated {
		t.Fatal("expected realm to be created")
	}
	if created == nil || created.RealmName != "acme-prod" {
		t.Fatalf("expected tenant row for acme-prod, got %+v", created)
	}
	if tn.Plan != "free" {
		t.Fatalf("expected default plan free, got %s", tn.Plan)
	}
	if !tn.AuthSettings.PasswordAuth || tn.AuthSettings.MFAEnabled {
		t.Fatalf("unexpected default auth settings: %+v", tn.AuthSettings)
	}
	if tn.Branding.PrimaryColor == "" {
		t.Fatal("expected default branding")
	}
}

func TestCreateTenant_UnknownPlan(t *testing.T) {
	svc := newTenantService(&tmocks.TenantRepositoryMock{}, &tmocks.IdentityProviderMock{}, nil)

	_, err := svc.Create(context.Background(), "owner@example.com", &tenant.CreateTenantRequest{Name: "x", RealmName: "acme", Plan: "platinum"})
	if !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreateTenant_InvalidRealmName(t *testing.T) {
	svc := newTenantService(&tmocks.TenantRepositoryMock{}, &tmocks.IdentityProviderMock{}, nil)

	for _, name := range []string{"", "A!", "has space", "-leading"} {
		_, err := svc.Create(context.Background(), "owner@example.com", &tenant.CreateTenantRequest{Name: "x", RealmName: name})
		if !errors.Is(err, apperr.ErrValidation) {
			t.Fatalf("realm %q: expected validation error, got %v", name, err)
		}
	}
}

func TestCreateTenant_RealmLimitReached(t *testing.T) {
	repo := &tmocks.TenantRepositoryMock{
		CountByOwnerFn: func(ctx context.Context, ownerEmail string) (int, error) { return 1, nil },
	}
	svc := newTenantService(repo, &tmocks.IdentityProviderMock{}, nil)

	// The free plan allows a single realm.
	_, err := svc.Create(context.Background(), "owner@example.com", &tenant.CreateTenantRequest{Name: "x", RealmName: "second"})
	if !apperr.IsEntitlement(err) {
		t.Fatalf("expected entitlement denial, got %v", err)
	}
}

func TestCreateTenant_BusinessPlanUnlimitedRealms(t *testing.T) {
	repo := &tmocks.TenantRepositoryMock{
		CountByOwnerFn: func(ctx context.Context, ownerEmail string) (int, error) { return 40, nil },
	}
	svc := newTenantService(repo, &tmocks.IdentityProviderMock{}, nil)

	_, err := svc.Create(context.Background(), "owner@example.com", &tenant.CreateTenantRequest{Name: "x", RealmName: "forty-first", Plan: "business"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCreateTenant_RowInsertFailureRollsBackRealm(t *testing.T) {
	repo := &tmocks.TenantRepositoryMock{
		CreateFn: func(ctx context.Context, tn *tenant.Tenant) error { return apperr.ErrConflict },
	}
	realmDeleted := false
	idp := &tmocks.IdentityProviderMock{
		DeleteRealmFn: func(ctx context.Context, name string) error { realmDeleted = true; return nil },
	}
	svc := newTenantService(repo, idp, nil)

	_, err := svc.Create(context.Background(), "owner@example.com", &tenant.CreateTenantRequest{Name: "x", RealmName: "dupe"})
	if !errors.Is(err, apperr.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if !realmDeleted {
		t.Fatal("expected realm rollback after row insert failure")
	}
}

func TestCreateTenant_CouponRaceClearsDiscount(t *testing.T) {
	var updated *tenant.Tenant
	repo := &tmocks.TenantRepositoryMock{
		UpdateFn: func(ctx context.Context, tn *tenant.Tenant) error { updated = tn; return nil },
	}
	coupons := &tmocks.CouponServiceMock{
		ValidateFn: func(ctx context.Context, code, planID string) (*coupon.Coupon, error) {
			return &coupon.Coupon{Code: "SAVE20", DiscountPct: 20, Enabled: true}, nil
		},
		RedeemFn: func(ctx context.Context, code, redeemedBy, realmName string) error {
			return coupon.ErrRedemptionLimit
		},
	}
	svc := newTenantService(repo, &tmocks.IdentityProviderMock{}, coupons)

	tn, err := svc.Create(context.Background(), "owner@example.com", &tenant.CreateTenantRequest{Name: "x", RealmName: "raced", CouponCode: "SAVE20"})
	if err != nil {
		t.Fatalf("tenant creation should survive a lost coupon race: %v", err)
	}
	if tn.AppliedCoupon != "" || tn.DiscountPct != 0 {
		t.Fatalf("expected coupon cleared after race, got %q/%d", tn.AppliedCoupon, tn.DiscountPct)
	}
	if updated == nil {
		t.Fatal("expected row update to persist cleared coupon")
	}
}

func TestDeleteTenant_CascadesDespiteRealmFailure(t *testing.T) {
	owned := &tenant.Tenant{RealmName: "doomed", OwnerEmail: "owner@example.com"}
	rowDeleted := false
	repo := &tmocks.TenantRepositoryMock{
		GetByRealmFn: func(ctx context.Context, realmName string) (*tenant.Tenant, error) { return owned, nil },
		DeleteFn:     func(ctx context.Context, realmName string) error { rowDeleted = true; return nil },
	}
	idp := &tmocks.IdentityProviderMock{
		DeleteRealmFn: func(ctx context.Context, name string) error { return errors.New("provider down") },
	}
	cascaded := map[string]string{}
	orgRepo := &tmocks.OrganizationRepositoryMock{
		DeleteByRealmFn: func(ctx context.Context, realmName string) error { cascaded["organizations"] = realmName; return nil },
	}
	webhookRepo := &tmocks.WebhookRepositoryMock{
		DeleteByRealmFn: func(ctx context.Context, realmName string) error { cascaded["webhooks"] = realmName; return nil },
	}
	invitationRepo := &tmocks.InvitationRepositoryMock{
		DeleteByRealmFn: func(ctx context.Context, realmName string) error { cascaded["invitations"] = realmName; return nil },
	}
	analyticsRepo := &tmocks.AnalyticsRepositoryMock{
		DeleteByRealmFn: func(ctx context.Context, realmName string) error { cascaded["events"] = realmName; return nil },
	}
	svc := impl.NewTenantService(
		repo,
		orgRepo,
		webhookRepo,
		invitationRepo,
		analyticsRepo,
		idp,
		plan.BuiltinRegistry(),
		impl.NewEntitlementService(testLogger()),
		&tmocks.CouponServiceMock{},
		&tmocks.ActivityRecorderMock{},
		testLogger(),
	)

	if err := svc.Delete(context.Background(), "owner@example.com", "doomed"); err != nil {
		t.Fatalf("delete must succeed even when the provider realm delete fails: %v", err)
	}
	if !rowDeleted {
		t.Fatal("expected local row deletion")
	}
	for _, table := range []string{"organizations", "webhooks", "invitations", "events"} {
		if cascaded[table] != "doomed" {
			t.Fatalf("expected %s cascade for the deleted realm, got %q", table, cascaded[table])
		}
	}
}

func TestGetTenant_NotOwner(t *testing.T) {
	repo := &tmocks.TenantRepositoryMock{
		GetByRealmFn: func(ctx context.Context, realmName string) (*tenant.Tenant, error) {
			return &tenant.Tenant{RealmName: realmName, OwnerEmail: "someone@else.com"}, nil
		},
	}
	svc := newTenantService(repo, &tmocks.IdentityProviderMock{}, nil)

	_, err := svc.GetOwned(context.Background(), "owner@example.com", "theirs")
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("owner mismatch must read as not found, got %v", err)
	}
}

func TestUpdateTenant_IgnoresUnknownPlan(t *testing.T) {
	owned := &tenant.Tenant{RealmName: "acme", OwnerEmail: "owner@example.com", Plan: "free", Name: "Acme"}
	repo := &tmocks.TenantRepositoryMock{
		GetByRealmFn: func(ctx context.Context, realmName string) (*tenant.Tenant, error) { return owned, nil },
	}
	svc := newTenantService(repo, &tmocks.IdentityProviderMock{}, nil)

	bogus := "platinum"
	tn, err := svc.Update(context.Background(), "owner@example.com", "acme", &tenant.UpdateTenantRequest{Plan: &bogus})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tn.Plan != "free" {
		t.Fatalf("unknown plan must be ignored, got %s", tn.Plan)
	}
}
