package redis_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/schoolkit/pkg/redis"
	"github.com/dmitrymomot/schoolkit/pkg/tenant"
)

func setup(t *testing.T) (*miniredis.Miniredis, *goredis.Client) {
	t.Helper()

	srv := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return srv, client
}

func TestTenantCache(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	srv, client := setup(t)
	cache := redis.NewTenantCache(client, "test:tenant:", nil)

	sman1 := &tenant.Tenant{
		ID:      uuid.New(),
		Name:    "SMA Negeri 1",
		Slug:    "sman1",
		Active:  true,
		Modules: map[string][]string{"ppdb": {"view"}},
	}

	t.Run("miss", func(t *testing.T) {
		got, ok := cache.Get(ctx, "slug:missing")
		assert.False(t, ok)
		assert.Nil(t, got)
	})

	t.Run("set then get", func(t *testing.T) {
		cache.Set(ctx, "slug:sman1", sman1, time.Minute)
		assert.True(t, srv.Exists("test:tenant:slug:sman1"))

		got, ok := cache.Get(ctx, "slug:sman1")
		require.True(t, ok)
		assert.Equal(t, sman1.ID, got.ID)
		assert.Equal(t, []string{"view"}, got.Modules["ppdb"])
	})

	t.Run("expires", func(t *testing.T) {
		cache.Set(ctx, "slug:short", sman1, time.Second)
		srv.FastForward(2 * time.Second)

		_, ok := cache.Get(ctx, "slug:short")
		assert.False(t, ok)
	})

	t.Run("non-positive ttl stores nothing", func(t *testing.T) {
		cache.Set(ctx, "slug:zero", sman1, 0)
		assert.False(t, srv.Exists("test:tenant:slug:zero"))
	})

	t.Run("delete", func(t *testing.T) {
		cache.Set(ctx, "domain:sman1.sch.id", sman1, time.Minute)
		cache.Delete(ctx, "domain:sman1.sch.id")

		_, ok := cache.Get(ctx, "domain:sman1.sch.id")
		assert.False(t, ok)
	})

	t.Run("corrupt entry is evicted", func(t *testing.T) {
		require.NoError(t, srv.Set("test:tenant:slug:bad", "{not json"))

		_, ok := cache.Get(ctx, "slug:bad")
		assert.False(t, ok)
		assert.False(t, srv.Exists("test:tenant:slug:bad"))
	})
}

func TestTenantCache_WithCachedDirectory(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	_, client := setup(t)

	sman1 := &tenant.Tenant{ID: uuid.New(), Slug: "sman1", Active: true}
	dir := tenant.NewMemoryDirectory(sman1)
	cached := tenant.NewCachedDirectory(dir, redis.NewTenantCache(client, "dir:", nil), time.Minute)

	got, err := cached.FindBySlug(ctx, "sman1")
	require.NoError(t, err)
	assert.Equal(t, sman1.ID, got.ID)

	// Served from Redis once the backing directory forgets the tenant.
	dir.Remove(sman1.ID)
	got, err = cached.FindBySlug(ctx, "sman1")
	require.NoError(t, err)
	assert.Equal(t, sman1.ID, got.ID)

	cached.Invalidate(ctx, sman1)
	_, err = cached.FindBySlug(ctx, "sman1")
	assert.ErrorIs(t, err, tenant.ErrTenantNotFound)
}

func TestTenantCache_DeactivationIsShared(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	_, client := setup(t)

	dir := tenant.NewMemoryDirectory(&tenant.Tenant{ID: uuid.New(), Slug: "sman2", Active: true})
	nodeA := tenant.NewCachedDirectory(dir, redis.NewTenantCache(client, "dir:", nil), 5*time.Minute)
	nodeB := tenant.NewCachedDirectory(dir, redis.NewTenantCache(client, "dir:", nil), 5*time.Minute)
	resolver := tenant.NewResolver(nodeA, tenant.Config{MainDomain: "example.com"})

	_, err := resolver.Resolve(ctx, "sman2.example.com", "")
	require.NoError(t, err)

	_, err = nodeB.SetActive(ctx, "sman2", false)
	require.NoError(t, err)

	got, err := resolver.Resolve(ctx, "sman2.example.com", "")
	assert.Nil(t, got)
	assert.ErrorIs(t, err, tenant.ErrTenantInactive)
}

func TestTenantCache_ServerDown(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	srv, client := setup(t)
	cache := redis.NewTenantCache(client, "", nil)
	srv.Close()

	_, ok := cache.Get(ctx, "slug:any")
	assert.False(t, ok)
	assert.NotPanics(t, func() {
		cache.Set(ctx, "slug:any", &tenant.Tenant{Slug: "any"}, time.Minute)
		cache.Delete(ctx, "slug:any")
	})
}

func TestConnect(t *testing.T) {
	t.Parallel()

	t.Run("ok", func(t *testing.T) {
		srv := miniredis.RunT(t)
		client, err := redis.Connect(context.Background(), redis.Config{
			ConnectionURL:  "redis://" + srv.Addr() + "/0",
			RetryAttempts:  1,
			ConnectTimeout: time.Second,
		})
		require.NoError(t, err)
		defer client.Close()

		assert.NoError(t, redis.Healthcheck(client)(context.Background()))
	})

	t.Run("empty url", func(t *testing.T) {
		_, err := redis.Connect(context.Background(), redis.Config{})
		assert.ErrorIs(t, err, redis.ErrEmptyConnectionURL)
	})

	t.Run("bad url", func(t *testing.T) {
		_, err := redis.Connect(context.Background(), redis.Config{ConnectionURL: "http://nope"})
		assert.ErrorIs(t, err, redis.ErrFailedToParseRedisConnString)
	})

	t.Run("not ready", func(t *testing.T) {
		srv := miniredis.RunT(t)
		addr := srv.Addr()
		srv.Close()

		_, err := redis.Connect(context.Background(), redis.Config{
			ConnectionURL:  "redis://" + addr + "/0",
			RetryAttempts:  2,
			RetryInterval:  10 * time.Millisecond,
			ConnectTimeout: time.Second,
		})
		assert.True(t, errors.Is(err, redis.ErrRedisNotReady))
	})
}

func TestHealthcheck_Down(t *testing.T) {
	t.Parallel()

	srv, client := setup(t)
	srv.Close()

	err := redis.Healthcheck(client)(context.Background())
	assert.ErrorIs(t, err, redis.ErrHealthcheckFailed)
}
