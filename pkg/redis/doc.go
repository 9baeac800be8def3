// Package redis connects to Redis and provides a shared tenant cache.
//
// Connect retries the initial ping using Config, which is populated from
// environment variables via github.com/caarlos0/env:
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
// TenantCache satisfies tenant.Cache, so it plugs into a CachedDirectory in
// place of the in-process LRU when several replicas serve the same tenants:
//
//	cache := redis.NewTenantCache(client, cfg.KeyPrefix, logger)
//	dir := tenant.NewCachedDirectory(store, cache, tenantCfg.CacheTTL)
//
// Healthcheck returns a probe for readiness endpoints.
package redis
