package services

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/rudralabs/rudra/internal/core/domain/activity"
	"github.com/rudralabs/rudra/internal/core/domain/identity"
	"github.com/rudralabs/rudra/internal/core/domain/plan"
	"github.com/rudralabs/rudra/internal/core/domain/webhook"
	"github.com/rudralabs/rudra/internal/core/ports"
)

// AnalyticsService assembles tenant analytics from the local event store and
// the identity provider's event stream, plus the cross-tenant owner
// dashboard. Provider-sourced numbers degrade to zero when the provider is
// unreachable.
type AnalyticsService struct {
	analyticsRepo ports.AnalyticsRepository
	activityRepo  ports.ActivityRepository
	tenantRepo    ports.TenantRepository
	orgRepo       ports.OrganizationRepository
	idp           ports.IdentityProvider
	plans         *plan.Registry
	entitlements  ports.EntitlementService
	logger        *logrus.Logger
}

func NewAnalyticsService(analyticsRepo ports.AnalyticsRepository, activityRepo ports.ActivityRepository, tenantRepo ports.TenantRepository, orgRepo ports.OrganizationRepository, idp ports.IdentityProvider, plans *plan.Registry, entitlements ports.EntitlementService, logger *logrus.Logger) ports.AnalyticsService {
	return &AnalyticsService{
		analyticsRepo: analyticsRepo,
		activityRepo:  activityRepo,
		tenantRepo:    tenantRepo,
		orgRepo:       orgRepo,
		idp:           idp,
		plans:         plans,
		entitlements:  entitlements,
		logger:        logger,
	}
}

// TenantAnalytics returns the event summary for one tenant over the trailing
// window, gated on the plan's analytics flag.
func (s *AnalyticsService) TenantAnalytics(ctx context.Context, ownerEmail, realmName string, days int) (*activity.Summary, error) {
	t, err := ownedTenant(ctx, s.tenantRepo, ownerEmail, realmName)
	if err != nil {
		return nil, err
	}
	p := s.plans.GetOrFree(t.Plan)
	if err := s.entitlements.CheckFeature(p, plan.FeatureAnalytics); err != nil {
		return nil, err
	}

	if days <= 0 || days > 365 {
		days = 30
	}
	since := time.Now().UTC().AddDate(0, 0, -days)

	counts, err := s.analyticsRepo.CountsByType(ctx, realmName, since)
	if err != nil {
		return nil, err
	}
	signups, err := s.analyticsRepo.DailyCounts(ctx, realmName, webhook.EventUserCreated, since)
	if err != nil {
		return nil, err
	}

	summary := &activity.Summary{
		EventCounts:      counts,
		UserSignupsDaily: signups,
	}

	if logins, err := s.idp.GetEvents(ctx, realmName, "LOGIN", 500); err == nil {
		summary.LoginCount = len(logins)
	}
	if failures, err := s.idp.GetEvents(ctx, realmName, "LOGIN_ERROR", 500); err == nil {
		summary.FailedLoginCount = len(failures)
	}
	if users, err := s.idp.CountUsers(ctx, realmName); err == nil {
		summary.TotalUsers = users
	}
	if orgs, err := s.orgRepo.Count(ctx, realmName); err == nil {
		summary.TotalOrgs = orgs
	}
	return summary, nil
}

// Events proxies the provider's authentication event log for one tenant.
func (s *AnalyticsService) Events(ctx context.Context, ownerEmail, realmName, eventType string, max int) ([]*identity.Event, error) {
	if _, err := ownedTenant(ctx, s.tenantRepo, ownerEmail, realmName); err != nil {
		return nil, err
	}
	if max <= 0 || max > 500 {
		max = 100
	}
	return s.idp.GetEvents(ctx, realmName, eventType, max)
}

// Dashboard aggregates user, client and organization counts across every
// tenant the owner has, plus their recent activity.
func (s *AnalyticsService) Dashboard(ctx context.Context, ownerEmail string) (*activity.Dashboard, error) {
	tenants, err := s.tenantRepo.ListByOwner(ctx, ownerEmail)
	if err != nil {
		return nil, err
	}

	d := &activity.Dashboard{
		TotalTenants:     len(tenants),
		PlanDistribution: map[string]int{},
	}
	for _, t := range tenants {
		d.PlanDistribution[t.Plan]++
		if users, err := s.idp.CountUsers(ctx, t.RealmName); err == nil {
			d.TotalUsers += users
		} else {
			s.logger.WithError(err).WithField("realm", t.RealmName).Warn("Dashboard user count failed")
		}
		if clients, err := s.idp.ListClients(ctx, t.RealmName); err == nil {
			d.TotalClients += len(clients)
		}
		if orgs, err := s.orgRepo.Count(ctx, t.RealmName); err == nil {
			d.TotalOrgs += orgs
		}
	}

	recent, err := s.activityRepo.Recent(ctx, ownerEmail, 15)
	if err != nil {
		s.logger.WithError(err).Warn("Recent activity read failed")
		recent = []*activity.Entry{}
	}
	d.RecentActivity = recent
	return d, nil
}
