package tenant

import (
	"context"
	"time"
)

const (
	slugKeyPrefix   = "slug:"
	domainKeyPrefix = "domain:"
)

// CachedDirectory decorates a Directory with a Cache.
// Only hits are cached; misses always reach the underlying directory so a
// freshly onboarded tenant is visible immediately.
type CachedDirectory struct {
	next  Directory
	cache Cache
	ttl   time.Duration
}

// NewCachedDirectory wraps next. A nil cache disables caching.
func NewCachedDirectory(next Directory, cache Cache, ttl time.Duration) *CachedDirectory {
	if cache == nil {
		cache = NewNoOpCache()
	}
	return &CachedDirectory{next: next, cache: cache, ttl: ttl}
}

// FindBySlug implements Directory.
func (d *CachedDirectory) FindBySlug(ctx context.Context, slug string) (*Tenant, error) {
	return d.find(ctx, slugKeyPrefix+normalizeKey(slug), func() (*Tenant, error) {
		return d.next.FindBySlug(ctx, slug)
	})
}

// FindByDomain implements Directory.
func (d *CachedDirectory) FindByDomain(ctx context.Context, domain string) (*Tenant, error) {
	return d.find(ctx, domainKeyPrefix+normalizeKey(domain), func() (*Tenant, error) {
		return d.next.FindByDomain(ctx, domain)
	})
}

// SetActive writes through to the wrapped directory and evicts the cached
// copies of the tenant, so a deactivated tenant stops resolving at once.
func (d *CachedDirectory) SetActive(ctx context.Context, slug string, active bool) (*Tenant, error) {
	w, ok := d.next.(Activator)
	if !ok {
		return nil, ErrReadOnlyDirectory
	}

	d.cache.Delete(ctx, slugKeyPrefix+normalizeKey(slug))

	t, err := w.SetActive(ctx, slug, active)
	if err != nil {
		return nil, err
	}
	d.Invalidate(ctx, t)
	return t, nil
}

// Invalidate evicts every cache key the tenant can be reached under.
// Call it after a tenant's slug, domain, activation or modules change
// that did not go through SetActive.
func (d *CachedDirectory) Invalidate(ctx context.Context, t *Tenant) {
	if t == nil {
		return
	}
	if t.Slug != "" {
		d.cache.Delete(ctx, slugKeyPrefix+normalizeKey(t.Slug))
	}
	if t.CustomDomain != "" {
		d.cache.Delete(ctx, domainKeyPrefix+normalizeKey(t.CustomDomain))
	}
}

func (d *CachedDirectory) find(ctx context.Context, key string, load func() (*Tenant, error)) (*Tenant, error) {
	if cached, ok := d.cache.Get(ctx, key); ok {
		return cached, nil
	}

	t, err := load()
	if err != nil {
		return nil, err
	}
	if t != nil {
		d.cache.Set(ctx, key, t, d.ttl)
	}
	return t, nil
}
