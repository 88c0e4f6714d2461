package health_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rudralabs/rudra/internal/infrastructure/health"
	"github.com/rudralabs/rudra/test/mocks"
)

func TestIdentityProviderHealthChecker(t *testing.T) {
	hc := health.NewIdentityProviderHealthChecker(&mocks.IdentityProviderMock{})
	if hc.Name() != "keycloak" {
		t.Fatalf("unexpected checker name %q", hc.Name())
	}
	if err := hc.Check(context.Background()); err != nil {
		t.Fatalf("expected healthy provider, got %v", err)
	}
}

func TestIdentityProviderHealthChecker_ReportsOutage(t *testing.T) {
	down := errors.New("connection refused")
	idp := &mocks.IdentityProviderMock{
		GetRealmFn: func(ctx context.Context, name string) (map[string]any, error) {
			if name != "master" {
				t.Fatalf("health check should read the master realm, got %q", name)
			}
			return nil, down
		},
	}
	hc := health.NewIdentityProviderHealthChecker(idp)
	if err := hc.Check(context.Background()); !errors.Is(err, down) {
		t.Fatalf("expected the provider error, got %v", err)
	}
}
