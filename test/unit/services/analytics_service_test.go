package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	impl "github.com/rudralabs/rudra/internal/application/services"
	"github.com/rudralabs/rudra/internal/core/domain/activity"
	"github.com/rudralabs/rudra/internal/core/domain/apperr"
	"github.com/rudralabs/rudra/internal/core/domain/identity"
	"github.com/rudralabs/rudra/internal/core/domain/plan"
	"github.com/rudralabs/rudra/internal/core/domain/tenant"
	"github.com/rudralabs/rudra/internal/core/ports"
	tmocks "github.com/rudralabs/rudra/test/mocks"
)

func newAnalyticsService(analyticsRepo *tmocks.AnalyticsRepositoryMock, activityRepo *tmocks.ActivityRepositoryMock, tenants *tmocks.TenantRepositoryMock, orgs *tmocks.OrganizationRepositoryMock, idp *tmocks.IdentityProviderMock) ports.AnalyticsService {
	return impl.NewAnalyticsService(analyticsRepo, activityRepo, tenants, orgs, idp, plan.BuiltinRegistry(), impl.NewEntitlementService(testLogger()), testLogger())
}

func TestTenantAnalytics_FreePlanDenied(t *testing.T) {
	svc := newAnalyticsService(&tmocks.AnalyticsRepositoryMock{}, &tmocks.ActivityRepositoryMock{}, ownedTenantRepo("acme", "free"), &tmocks.OrganizationRepositoryMock{}, &tmocks.IdentityProviderMock{})

	_, err := svc.TenantAnalytics(context.Background(), "owner@example.com", "acme", 30)
	if !apperr.IsEntitlement(err) {
		t.Fatalf("expected entitlement denial, got %v", err)
	}
}

func TestTenantAnalytics_AssemblesSummary(t *testing.T) {
	var gotSince time.Time
	analyticsRepo := &tmocks.AnalyticsRepositoryMock{
		CountsByTypeFn: func(ctx context.Context, realmName string, since time.Time) (map[string]int, error) {
			gotSince = since
			return map[string]int{"user.created": 12}, nil
		},
		DailyCountsFn: func(ctx context.Context, realmName, eventType string, since time.Time) ([]activity.DailyCount, error) {
			return []activity.DailyCount{{Day: "2026-08-30", Count: 4}}, nil
		},
	}
	idp := &tmocks.IdentityProviderMock{
		GetEventsFn: func(ctx context.Context, realm, eventType string, max int) ([]*identity.Event, error) {
			if eventType == "LOGIN" {
				return []*identity.Event{{}, {}, {}}, nil
			}
			return []*identity.Event{{}}, nil
		},
		CountUsersFn: func(ctx context.Context, realm string) (int, error) { return 42, nil },
	}
	orgs := &tmocks.OrganizationRepositoryMock{
		CountFn: func(ctx context.Context, realmName string) (int, error) { return 2, nil },
	}
	svc := newAnalyticsService(analyticsRepo, &tmocks.ActivityRepositoryMock{}, ownedTenantRepo("acme", "pro"), orgs, idp)

	s, err := svc.TenantAnalytics(context.Background(), "owner@example.com", "acme", 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.EventCounts["user.created"] != 12 {
		t.Fatalf("unexpected event counts: %v", s.EventCounts)
	}
	if s.LoginCount != 3 || s.FailedLoginCount != 1 {
		t.Fatalf("unexpected login counts: %d/%d", s.LoginCount, s.FailedLoginCount)
	}
	if s.TotalUsers != 42 || s.TotalOrgs != 2 {
		t.Fatalf("unexpected totals: users=%d orgs=%d", s.TotalUsers, s.TotalOrgs)
	}
	if time.Since(gotSince) > 8*24*time.Hour {
		t.Fatalf("expected a 7 day window, got since=%v", gotSince)
	}
}

func TestTenantAnalytics_ProviderOutageDegradesToZero(t *testing.T) {
	idp := &tmocks.IdentityProviderMock{
		GetEventsFn: func(ctx context.Context, realm, eventType string, max int) ([]*identity.Event, error) {
			return nil, errors.New("gateway timeout")
		},
		CountUsersFn: func(ctx context.Context, realm string) (int, error) { return 0, errors.New("gateway timeout") },
	}
	svc := newAnalyticsService(&tmocks.AnalyticsRepositoryMock{}, &tmocks.ActivityRepositoryMock{}, ownedTenantRepo("acme", "pro"), &tmocks.OrganizationRepositoryMock{}, idp)

	s, err := svc.TenantAnalytics(context.Background(), "owner@example.com", "acme", 30)
	if err != nil {
		t.Fatalf("provider outage must not fail the summary: %v", err)
	}
	if s.LoginCount != 0 || s.TotalUsers != 0 {
		t.Fatalf("provider-sourced counts should degrade to zero, got %+v", s)
	}
}

func TestDashboard_AggregatesAcrossTenants(t *testing.T) {
	tenants := &tmocks.TenantRepositoryMock{
		ListByOwnerFn: func(ctx context.Context, ownerEmail string) ([]*tenant.Tenant, error) {
			return []*tenant.Tenant{
				{RealmName: "acme", Plan: "pro", OwnerEmail: ownerEmail},
				{RealmName: "beta", Plan: "free", OwnerEmail: ownerEmail},
				{RealmName: "gamma", Plan: "pro", OwnerEmail: ownerEmail},
			}, nil
		},
	}
	idp := &tmocks.IdentityProviderMock{
		CountUsersFn: func(ctx context.Context, realm string) (int, error) { return 10, nil },
		ListClientsFn: func(ctx context.Context, realm string) ([]*identity.Client, error) {
			return []*identity.Client{{}}, nil
		},
	}
	activityRepo := &tmocks.ActivityRepositoryMock{
		RecentFn: func(ctx context.Context, ownerEmail string, limit int) ([]*activity.Entry, error) {
			return []*activity.Entry{{Action: "create_tenant"}}, nil
		},
	}
	svc := newAnalyticsService(&tmocks.AnalyticsRepositoryMock{}, activityRepo, tenants, &tmocks.OrganizationRepositoryMock{}, idp)

	d, err := svc.Dashboard(context.Background(), "owner@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.TotalTenants != 3 || d.TotalUsers != 30 || d.TotalClients != 3 {
		t.Fatalf("unexpected dashboard totals: %+v", d)
	}
	if d.PlanDistribution["pro"] != 2 || d.PlanDistribution["free"] != 1 {
		t.Fatalf("unexpected plan distribution: %v", d.PlanDistribution)
	}
	if len(d.RecentActivity) != 1 {
		t.Fatalf("expected recent activity passthrough, got %v", d.RecentActivity)
	}
}

func TestDashboard_ActivityReadFailureReturnsEmpty(t *testing.T) {
	activityRepo := &tmocks.ActivityRepositoryMock{
		RecentFn: func(ctx context.Context, ownerEmail string, limit int) ([]*activity.Entry, error) {
			return nil, errors.New("db down")
		},
	}
	svc := newAnalyticsService(&tmocks.AnalyticsRepositoryMock{}, activityRepo, &tmocks.TenantRepositoryMock{}, &tmocks.OrganizationRepositoryMock{}, &tmocks.IdentityProviderMock{})

	d, err := svc.Dashboard(context.Background(), "owner@example.com")
	if err != nil {
		t.Fatalf("activity outage must not fail the dashboard: %v", err)
	}
	if d.RecentActivity == nil || len(d.RecentActivity) != 0 {
		t.Fatalf("expected empty recent activity, got %v", d.RecentActivity)
	}
}
