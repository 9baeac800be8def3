package pgstore

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrymomot/schoolkit/pkg/pg"
	"github.com/dmitrymomot/schoolkit/pkg/tenant"
)

const tenantColumns = `id, name, slug, COALESCE(custom_domain, ''), active, features, modules, created_at`

// TenantStore implements tenant.Directory over the tenants table.
type TenantStore struct {
	db DBTX
}

// NewTenantStore creates a store; migrations must already have run.
func NewTenantStore(db DBTX) *TenantStore {
	return &TenantStore{db: db}
}

// FindBySlug implements tenant.Directory.
func (s *TenantStore) FindBySlug(ctx context.Context, slug string) (*tenant.Tenant, error) {
	return s.findOne(ctx, `SELECT `+tenantColumns+` FROM tenants WHERE slug = $1`, normalize(slug))
}

// FindByDomain implements tenant.Directory.
func (s *TenantStore) FindByDomain(ctx context.Context, domain string) (*tenant.Tenant, error) {
	return s.findOne(ctx, `SELECT `+tenantColumns+` FROM tenants WHERE custom_domain = $1`, normalize(domain))
}

// SetActive implements tenant.Activator. Behind a tenant.CachedDirectory,
// call the directory's SetActive so cached copies are evicted.
func (s *TenantStore) SetActive(ctx context.Context, slug string, active bool) (*tenant.Tenant, error) {
	return s.findOne(ctx,
		`UPDATE tenants SET active = $2 WHERE slug = $1 RETURNING `+tenantColumns,
		normalize(slug), active,
	)
}

func (s *TenantStore) findOne(ctx context.Context, query string, args ...any) (*tenant.Tenant, error) {
	var t tenant.Tenant
	err := s.db.QueryRow(ctx, query, args...).Scan(
		&t.ID, &t.Name, &t.Slug, &t.CustomDomain, &t.Active, &t.Features, &t.Modules, &t.CreatedAt,
	)
	if pg.IsNotFoundError(err) {
		return nil, tenant.ErrTenantNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query tenant: %w", err)
	}
	return &t, nil
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
