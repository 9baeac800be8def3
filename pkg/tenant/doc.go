// Package tenant resolves which school (tenant) an HTTP request belongs to and
// carries the result through the request context.
//
// The package is built around three pieces:
//
// 1. Directory - looks tenant records up by slug or custom domain
// 2. Resolver - applies the host/path resolution rules to a request
// 3. Middleware - runs the resolver and stores the tenant in the request context
//
// # Resolution rules
//
// Resolver.Resolve evaluates, in order:
//
//   - The configured admin host, or a loopback host without a path slug, is the
//     administrative context: no tenant, no error.
//   - A non-empty path slug (the {tenant} route parameter) is looked up by slug.
//   - A host ending in "."+MainDomain yields a subdomain candidate looked up by
//     slug, then the full host is tried as a custom domain.
//   - Any other host is looked up as a custom domain.
//
// Only active tenants are ever returned. Misses are reported as ErrTenantNotFound
// (joined with ErrTenantInactive when the matching record is disabled).
//
// # Usage
//
//	import "github.com/dmitrymomot/schoolkit/pkg/tenant"
//
//	dir := tenant.NewCachedDirectory(store, tenant.NewInMemoryCache(), 5*time.Minute)
//	resolver := tenant.NewResolver(dir, tenant.Config{
//		AdminHost:  "admin.example.com",
//		MainDomain: "example.com",
//	})
//
//	r := chi.NewRouter()
//	r.Use(tenant.Middleware(resolver, tenant.WithLogger(log)))
//
//	r.Get("/dashboard", func(w http.ResponseWriter, r *http.Request) {
//		t := tenant.MustFromContext(r.Context())
//		// ...
//	})
//
// # Caching
//
// CachedDirectory keeps positive lookups in a Cache. The default in-memory cache
// handles TTL expiration and LRU eviction; pkg/redis provides a shared cache for
// multi-instance deployments. Call Invalidate after toggling a tenant.
package tenant
