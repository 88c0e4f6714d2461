package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/rudralabs/rudra/internal/core/domain/tenant"
	"github.com/rudralabs/rudra/internal/core/ports"
)

var sf singleflight.Group

// Utility helpers
func cacheSetSilently(c ports.Cache, ctx context.Context, key string, v any, ttl time.Duration) {
	if c == nil {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	_ = c.Set(ctx, key, b, ttl)
}

func cacheGet[T any](c ports.Cache, ctx context.Context, key string) (*T, bool) {
	if c == nil {
		return nil, false
	}
	b, ok, err := c.Get(ctx, key)
	if err != nil || !ok {
		return nil, false
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return nil, false
	}
	return &v, true
}

// CachingTenantRepository decorates a TenantRepository with cache-aside.
// Tenant rows are read on nearly every request (ownership checks, rate
// limiting), so GetByRealm is the hot path worth caching.
type CachingTenantRepository struct {
	inner ports.TenantRepository
	cache ports.Cache
	ttl   time.Duration
}

func NewCachingTenantRepository(inner ports.TenantRepository, cache ports.Cache, ttl time.Duration) ports.TenantRepository {
	return &CachingTenantRepository{inner: inner, cache: cache, ttl: ttl}
}

func realmKey(realmName string) string  { return "tenant:realm:" + realmName }
func ownerKey(ownerEmail string) string { return "tenants:owner:" + ownerEmail }

func (c *CachingTenantRepository) invalidateOwner(ctx context.Context, ownerEmail string) {
	if c.cache == nil {
		return
	}
	_ = c.cache.Delete(ctx, ownerKey(ownerEmail))
	_ = c.cache.Delete(ctx, ownerKey(ownerEmail)+":count")
}

func (c *CachingTenantRepository) Create(ctx context.Context, t *tenant.Tenant) error {
	if err := c.inner.Create(ctx, t); err != nil {
		return err
	}
	cacheSetSilently(c.cache, ctx, realmKey(t.RealmName), t, c.ttl)
	c.invalidateOwner(ctx, t.OwnerEmail)
	return nil
}

func (c *CachingTenantRepository) GetByRealm(ctx context.Context, realmName string) (*tenant.Tenant, error) {
	if v, ok := cacheGet[tenant.Tenant](c.cache, ctx, realmKey(realmName)); ok {
		return v, nil
	}
	t, err := c.inner.GetByRealm(ctx, realmName)
	if err == nil {
		cacheSetSilently(c.cache, ctx, realmKey(realmName), t, c.ttl)
	}
	return t, err
}

func (c *CachingTenantRepository) ListByOwner(ctx context.Context, ownerEmail string) ([]*tenant.Tenant, error) {
	if v, ok := cacheGet[[]*tenant.Tenant](c.cache, ctx, ownerKey(ownerEmail)); ok {
		return *v, nil
	}
	res, err, _ := sf.Do(ownerKey(ownerEmail), func() (any, error) {
		if v, ok := cacheGet[[]*tenant.Tenant](c.cache, ctx, ownerKey(ownerEmail)); ok {
			return *v, nil
		}
		all, err := c.inner.ListByOwner(ctx, ownerEmail)
		if err != nil {
			return nil, err
		}
		cacheSetSilently(c.cache, ctx, ownerKey(ownerEmail), all, c.ttl)
		cacheSetSilently(c.cache, ctx, ownerKey(ownerEmail)+":count", len(all), c.ttl)
		return all, nil
	})
	if err != nil {
		return nil, err
	}
	all, ok := res.([]*tenant.Tenant)
	if !ok {
		return nil, fmt.Errorf("unexpected type from singleflight result")
	}
	return all, nil
}

func (c *CachingTenantRepository) Update(ctx context.Context, t *tenant.Tenant) error {
	if err := c.inner.Update(ctx, t); err != nil {
		return err
	}
	cacheSetSilently(c.cache, ctx, realmKey(t.RealmName), t, c.ttl)
	c.invalidateOwner(ctx, t.OwnerEmail)
	return nil
}

func (c *CachingTenantRepository) Delete(ctx context.Context, realmName string) error {
	// Need the owner to invalidate their list cache
	t, _ := c.inner.GetByRealm(ctx, realmName)
	if err := c.inner.Delete(ctx, realmName); err != nil {
		return err
	}
	if c.cache != nil {
		_ = c.cache.Delete(ctx, realmKey(realmName))
		if t != nil {
			c.invalidateOwner(ctx, t.OwnerEmail)
		}
	}
	return nil
}

func (c *CachingTenantRepository) CountByOwner(ctx context.Context, ownerEmail string) (int, error) {
	if c.cache != nil {
		if v, ok := cacheGet[int](c.cache, ctx, ownerKey(ownerEmail)+":count"); ok {
			return *v, nil
		}
		if v, ok := cacheGet[[]*tenant.Tenant](c.cache, ctx, ownerKey(ownerEmail)); ok {
			return len(*v), nil
		}
	}
	cnt, err := c.inner.CountByOwner(ctx, ownerEmail)
	if err == nil {
		cacheSetSilently(c.cache, ctx, ownerKey(ownerEmail)+":count", cnt, c.ttl)
	}
	return cnt, err
}
