package services_test

import (
	"errors"
	"testing"

	impl "github.com/rudralabs/rudra/internal/application/services"
	"github.com/rudralabs/rudra/internal/core/domain/apperr"
	"github.com/rudralabs/rudra/internal/core/domain/plan"
)

func TestCheckLimit_Boundaries(t *testing.T) {
	svc := impl.NewEntitlementService(testLogger())
	plans := plan.BuiltinRegistry()
	free := plans.GetOrFree("free")

	// free MaxRealms is 1: usage 0 allowed, usage 1 denied.
	if err := svc.CheckLimit(free, plan.LimitMaxRealms, 0); err != nil {
		t.Fatalf("usage below limit should pass: %v", err)
	}
	err := svc.CheckLimit(free, plan.LimitMaxRealms, 1)
	if !apperr.IsEntitlement(err) {
		t.Fatalf("usage at limit should be denied, got %v", err)
	}
	var entErr *apperr.EntitlementError
	if !errors.As(err, &entErr) || entErr.Name != string(plan.LimitMaxRealms) {
		t.Fatalf("denial should carry the limit name, got %+v", entErr)
	}
}

func TestCheckLimit_UnlimitedAlwaysAllows(t *testing.T) {
	svc := impl.NewEntitlementService(testLogger())
	enterprise := plan.BuiltinRegistry().GetOrFree("enterprise")

	for _, usage := range []int{0, 1, 1 << 20} {
		if err := svc.CheckLimit(enterprise, plan.LimitMaxRealms, usage); err != nil {
			t.Fatalf("unlimited plan denied at usage %d: %v", usage, err)
		}
	}
}

func TestCheckFeature_CarriesFeatureName(t *testing.T) {
	svc := impl.NewEntitlementService(testLogger())
	free := plan.BuiltinRegistry().GetOrFree("free")

	err := svc.CheckFeature(free, plan.FeatureWebhooks)
	var entErr *apperr.EntitlementError
	if !errors.As(err, &entErr) || !entErr.Feature || entErr.Name != string(plan.FeatureWebhooks) {
		t.Fatalf("expected a named feature denial, got %v", err)
	}

	if err := svc.CheckFeature(free, plan.FeatureOIDCSSO); err != nil {
		t.Fatalf("free plan includes OIDC SSO: %v", err)
	}
}
