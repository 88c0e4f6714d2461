package services

import (
	"github.com/sirupsen/logrus"

	"github.com/rudralabs/rudra/internal/core/domain/apperr"
	"github.com/rudralabs/rudra/internal/core/domain/plan"
	"github.com/rudralabs/rudra/internal/core/ports"
)

// EntitlementService is the stateless decision engine over plan vectors.
// It never reads usage itself; callers pass counts read immediately before
// the check so the read-then-act window stays as small as the caller makes it.
type EntitlementService struct {
	logger *logrus.Logger
}

func NewEntitlementService(logger *logrus.Logger) ports.EntitlementService {
	return &EntitlementService{logger: logger}
}

// CheckFeature returns an entitlement denial when the plan lacks the flag.
func (s *EntitlementService) CheckFeature(p *plan.Plan, f plan.Feature) error {
	if p.HasFeature(f) {
		return nil
	}
	return &apperr.EntitlementError{Name: string(f), Feature: true}
}

// CheckLimit returns an entitlement denial when usage has reached the
// plan's ceiling. Unlimited (-1) short-circuits before any comparison.
func (s *EntitlementService) CheckLimit(p *plan.Plan, l plan.Limit, usage int) error {
	limit := p.LimitValue(l)
	if limit == plan.Unlimited {
		return nil
	}
	if usage >= limit {
		return &apperr.EntitlementError{Name: string(l), Limit: limit}
	}
	return nil
}

// CheckSAML gates SAML creation twice: plans with a zero connection count
// are denied outright, then the numeric limit applies to current usage.
func (s *EntitlementService) CheckSAML(p *plan.Plan, current int) error {
	if p.Limits.SAMLConnections == 0 {
		return &apperr.EntitlementError{Name: string(plan.LimitSAMLConnections), Feature: true}
	}
	return s.CheckLimit(p, plan.LimitSAMLConnections, current)
}
