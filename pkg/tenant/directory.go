package tenant

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Directory looks tenant records up by their routing identifiers.
// Implementations return records regardless of their active flag; the
// Resolver enforces activation. ErrTenantNotFound signals a miss.
type Directory interface {
	// FindBySlug returns the tenant whose slug (subdomain / path segment) matches.
	FindBySlug(ctx context.Context, slug string) (*Tenant, error)

	// FindByDomain returns the tenant whose custom domain matches.
	FindByDomain(ctx context.Context, domain string) (*Tenant, error)
}

// Activator toggles a tenant's active flag and returns the updated record.
// It reports ErrTenantNotFound when no tenant has the slug.
type Activator interface {
	SetActive(ctx context.Context, slug string, active bool) (*Tenant, error)
}

// MemoryDirectory is a thread-safe in-memory Directory.
// It's useful for tests, fixtures and single-node development setups.
type MemoryDirectory struct {
	mu       sync.RWMutex
	byID     map[uuid.UUID]*Tenant
	bySlug   map[string]uuid.UUID
	byDomain map[string]uuid.UUID
}

// NewMemoryDirectory creates a directory seeded with the given tenants.
func NewMemoryDirectory(tenants ...*Tenant) *MemoryDirectory {
	d := &MemoryDirectory{
		byID:     make(map[uuid.UUID]*Tenant),
		bySlug:   make(map[string]uuid.UUID),
		byDomain: make(map[string]uuid.UUID),
	}
	for _, t := range tenants {
		d.Put(t)
	}
	return d
}

// Put inserts or replaces a tenant.
func (d *MemoryDirectory) Put(t *Tenant) {
	if t == nil {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if prev, ok := d.byID[t.ID]; ok {
		d.unindex(prev)
	}
	d.byID[t.ID] = t
	if t.Slug != "" {
		d.bySlug[normalizeKey(t.Slug)] = t.ID
	}
	if t.CustomDomain != "" {
		d.byDomain[normalizeKey(t.CustomDomain)] = t.ID
	}
}

// Remove deletes a tenant by ID.
func (d *MemoryDirectory) Remove(id uuid.UUID) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if prev, ok := d.byID[id]; ok {
		d.unindex(prev)
		delete(d.byID, id)
	}
}

// SetActive implements Activator. The stored record is replaced by a copy so
// readers holding the previous pointer keep a consistent snapshot.
func (d *MemoryDirectory) SetActive(_ context.Context, slug string, active bool) (*Tenant, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	id, ok := d.bySlug[normalizeKey(slug)]
	if !ok {
		return nil, ErrTenantNotFound
	}
	updated := *d.byID[id]
	updated.Active = active
	d.byID[id] = &updated
	return &updated, nil
}

// FindBySlug implements Directory.
func (d *MemoryDirectory) FindBySlug(_ context.Context, slug string) (*Tenant, error) {
	return d.find(d.bySlug, slug)
}

// FindByDomain implements Directory.
func (d *MemoryDirectory) FindByDomain(_ context.Context, domain string) (*Tenant, error) {
	return d.find(d.byDomain, domain)
}

func (d *MemoryDirectory) find(index map[string]uuid.UUID, key string) (*Tenant, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	id, ok := index[normalizeKey(key)]
	if !ok {
		return nil, ErrTenantNotFound
	}
	return d.byID[id], nil
}

func (d *MemoryDirectory) unindex(t *Tenant) {
	if t.Slug != "" {
		delete(d.bySlug, normalizeKey(t.Slug))
	}
	if t.CustomDomain != "" {
		delete(d.byDomain, normalizeKey(t.CustomDomain))
	}
}

func normalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
