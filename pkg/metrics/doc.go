// Package metrics exposes Prometheus counters for tenant resolution, access
// decisions and route binding, plus an HTTP request histogram.
//
// A Recorder plugs into the observer hooks of the other packages:
//
//	rec := metrics.New(prometheus.NewRegistry())
//
//	r.Use(rec.Middleware)
//	r.Use(tenant.Middleware(resolver, tenant.WithResolveHook(rec.TenantHook())))
//	r.With(guard.Require(req)) // guard built with access.WithDecisionHook(rec.DecisionHook())
//	r.Handle("/metrics", rec.Handler())
//
// Outcome labels use the stable error keys of the schoolkit package, so a
// dashboard can tell "module_disabled" from "permission_denied" without
// parsing logs.
package metrics
