package tenant_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/schoolkit/pkg/tenant"
)

func newTestResolver(tenants ...*tenant.Tenant) *tenant.Resolver {
	return tenant.NewResolver(tenant.NewMemoryDirectory(tenants...), tenant.Config{
		AdminHost:     "admin.example.com",
		MainDomain:    "example.com",
		LoopbackHosts: []string{"localhost", "127.0.0.1", "::1"},
	})
}

func TestResolver_Resolve(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	sman1 := createTestTenant("sman1", true)
	sman2 := createTestTenant("sman2", false)
	custom := createTestTenant("smkbakti", true)
	custom.CustomDomain = "smkbakti.sch.id"
	resolver := newTestResolver(sman1, sman2, custom)

	t.Run("admin host has no tenant", func(t *testing.T) {
		t.Parallel()

		got, err := resolver.Resolve(ctx, "admin.example.com", "")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("admin host ignores path slug", func(t *testing.T) {
		t.Parallel()

		got, err := resolver.Resolve(ctx, "admin.example.com:443", "sman1")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("loopback without slug has no tenant", func(t *testing.T) {
		t.Parallel()

		for _, host := range []string{"localhost", "localhost:8080", "127.0.0.1:3000", "[::1]:8080"} {
			got, err := resolver.Resolve(ctx, host, "")
			require.NoError(t, err, host)
			assert.Nil(t, got, host)
		}
	})

	t.Run("loopback with slug resolves by slug", func(t *testing.T) {
		t.Parallel()

		got, err := resolver.Resolve(ctx, "localhost:8080", "sman1")
		require.NoError(t, err)
		assert.Equal(t, sman1, got)
	})

	t.Run("path slug wins over host", func(t *testing.T) {
		t.Parallel()

		got, err := resolver.Resolve(ctx, "smkbakti.sch.id", "sman1")
		require.NoError(t, err)
		assert.Equal(t, sman1, got)
	})

	t.Run("unknown path slug is not found", func(t *testing.T) {
		t.Parallel()

		got, err := resolver.Resolve(ctx, "sman1.example.com", "nope")
		assert.ErrorIs(t, err, tenant.ErrTenantNotFound)
		assert.Nil(t, got)
	})

	t.Run("malformed path slug is not found", func(t *testing.T) {
		t.Parallel()

		got, err := resolver.Resolve(ctx, "sman1.example.com", "../etc")
		assert.ErrorIs(t, err, tenant.ErrTenantNotFound)
		assert.ErrorIs(t, err, tenant.ErrInvalidIdentifier)
		assert.Nil(t, got)
	})

	t.Run("subdomain resolves by slug", func(t *testing.T) {
		t.Parallel()

		got, err := resolver.Resolve(ctx, "SMAN1.example.com", "")
		require.NoError(t, err)
		assert.Equal(t, sman1, got)
	})

	t.Run("www prefix is skipped", func(t *testing.T) {
		t.Parallel()

		got, err := resolver.Resolve(ctx, "www.sman1.example.com", "")
		require.NoError(t, err)
		assert.Equal(t, sman1, got)
	})

	t.Run("inactive subdomain is not found", func(t *testing.T) {
		t.Parallel()

		got, err := resolver.Resolve(ctx, "sman2.example.com", "")
		assert.ErrorIs(t, err, tenant.ErrTenantNotFound)
		assert.ErrorIs(t, err, tenant.ErrTenantInactive)
		assert.Nil(t, got)
	})

	t.Run("inactive path slug is not found", func(t *testing.T) {
		t.Parallel()

		got, err := resolver.Resolve(ctx, "localhost", "sman2")
		assert.ErrorIs(t, err, tenant.ErrTenantInactive)
		assert.Nil(t, got)
	})

	t.Run("custom domain", func(t *testing.T) {
		t.Parallel()

		got, err := resolver.Resolve(ctx, "smkbakti.sch.id.", "")
		require.NoError(t, err)
		assert.Equal(t, custom, got)
	})

	t.Run("bare main domain is not a tenant", func(t *testing.T) {
		t.Parallel()

		got, err := resolver.Resolve(ctx, "example.com", "")
		assert.ErrorIs(t, err, tenant.ErrTenantNotFound)
		assert.Nil(t, got)
	})

	t.Run("empty host", func(t *testing.T) {
		t.Parallel()

		_, err := resolver.Resolve(ctx, "", "")
		assert.ErrorIs(t, err, tenant.ErrTenantNotFound)
	})
}

func TestResolver_SubdomainFallsBackToCustomDomain(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	// A school that kept a legacy host under the main domain as its custom domain.
	legacy := createTestTenant("smpn3", true)
	legacy.CustomDomain = "legacy.example.com"
	dir := &countingDirectory{next: tenant.NewMemoryDirectory(legacy)}
	resolver := tenant.NewResolver(dir, tenant.Config{MainDomain: "example.com"})

	got, err := resolver.Resolve(ctx, "legacy.example.com", "")
	require.NoError(t, err)
	assert.Equal(t, legacy, got)

	slugs, domains := dir.calls()
	assert.Equal(t, 1, slugs)
	assert.Equal(t, 1, domains)
}

func TestResolver_SubdomainMatchSkipsDomainLookup(t *testing.T) {
	t.Parallel()

	dir := &countingDirectory{next: tenant.NewMemoryDirectory(createTestTenant("sman1", true))}
	resolver := tenant.NewResolver(dir, tenant.Config{MainDomain: "example.com"})

	_, err := resolver.Resolve(context.Background(), "sman1.example.com", "")
	require.NoError(t, err)

	slugs, domains := dir.calls()
	assert.Equal(t, 1, slugs)
	assert.Equal(t, 0, domains)
}

func TestResolver_NeverReturnsInactive(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	inactive := createTestTenant("dormant", false)
	inactive.CustomDomain = "dormant.sch.id"
	resolver := newTestResolver(inactive)

	requests := []struct{ host, slug string }{
		{"dormant.example.com", ""},
		{"dormant.sch.id", ""},
		{"localhost", "dormant"},
		{"anything.example.com", "dormant"},
		{"www.dormant.example.com", ""},
	}

	for _, req := range requests {
		got, err := resolver.Resolve(ctx, req.host, req.slug)
		assert.Nil(t, got, "%s %s", req.host, req.slug)
		assert.ErrorIs(t, err, tenant.ErrTenantNotFound, "%s %s", req.host, req.slug)
	}
}

func TestResolver_DirectoryFailure(t *testing.T) {
	t.Parallel()

	dir := &countingDirectory{next: tenant.NewMemoryDirectory(), err: errStoreDown}
	resolver := tenant.NewResolver(dir, tenant.Config{MainDomain: "example.com"})

	got, err := resolver.Resolve(context.Background(), "sman1.example.com", "")
	assert.Nil(t, got)
	assert.ErrorIs(t, err, errStoreDown)
	assert.NotErrorIs(t, err, tenant.ErrTenantNotFound)
}

func TestResolver_IsAdminContext(t *testing.T) {
	t.Parallel()

	resolver := newTestResolver()

	assert.True(t, resolver.IsAdminContext("admin.example.com", ""))
	assert.True(t, resolver.IsAdminContext("admin.example.com", "sman1"))
	assert.True(t, resolver.IsAdminContext("localhost", ""))
	assert.False(t, resolver.IsAdminContext("localhost", "sman1"))
	assert.False(t, resolver.IsAdminContext("sman1.example.com", ""))
}

func TestNewResolver_PanicsWithoutDirectory(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		tenant.NewResolver(nil, tenant.Config{})
	})
}
