package services

import (
	"context"

	"github.com/rudralabs/rudra/internal/core/domain/apperr"
	"github.com/rudralabs/rudra/internal/core/domain/tenant"
	"github.com/rudralabs/rudra/internal/core/ports"
)

// ownedTenant loads a tenant and enforces ownership. A mismatch reads as
// not-found so non-owners cannot probe for realm existence.
func ownedTenant(ctx context.Context, repo ports.TenantRepository, ownerEmail, realmName string) (*tenant.Tenant, error) {
	t, err := repo.GetByRealm(ctx, realmName)
	if err != nil {
		return nil, err
	}
	if t.OwnerEmail != ownerEmail {
		return nil, apperr.ErrNotFound
	}
	return t, nil
}
