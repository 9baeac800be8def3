package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmitrymomot/schoolkit"
	"github.com/dmitrymomot/schoolkit/pkg/access"
	"github.com/dmitrymomot/schoolkit/pkg/routebind"
	"github.com/dmitrymomot/schoolkit/pkg/tenant"
)

const namespace = "schoolkit"

// OutcomeOK labels successful resolutions, decisions and bindings.
const OutcomeOK = "ok"

// Recorder owns the collectors and the registry they are registered on.
type Recorder struct {
	gatherer prometheus.Gatherer

	tenantResolutions *prometheus.CounterVec
	accessDecisions   *prometheus.CounterVec
	bindings          *prometheus.CounterVec
	requests          *prometheus.CounterVec
	requestDuration   *prometheus.HistogramVec
}

// New creates a Recorder and registers its collectors on reg.
// It panics if a collector is already registered, like prometheus.MustRegister.
func New(reg *prometheus.Registry) *Recorder {
	r := &Recorder{
		gatherer: reg,
		tenantResolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tenant_resolutions_total",
			Help:      "Tenant resolutions by outcome.",
		}, []string{"outcome"}),
		accessDecisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "access_decisions_total",
			Help:      "Access guard decisions by requirement kind, role and outcome.",
		}, []string{"kind", "role", "outcome"}),
		bindings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "route_bindings_total",
			Help:      "Route entity bindings by entity kind and outcome.",
		}, []string{"entity", "outcome"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route pattern and status.",
		}, []string{"method", "route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route pattern.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	reg.MustRegister(r.tenantResolutions, r.accessDecisions, r.bindings, r.requests, r.requestDuration)
	return r
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.gatherer, promhttp.HandlerOpts{})
}

// TenantHook counts tenant resolutions. Administrative-context requests
// are counted as "admin".
func (r *Recorder) TenantHook() tenant.ResolveHook {
	return func(_ *http.Request, t *tenant.Tenant, err error) {
		outcome := Outcome(err)
		if err == nil && t == nil {
			outcome = "admin"
		}
		r.tenantResolutions.WithLabelValues(outcome).Inc()
	}
}

// DecisionHook counts access decisions.
func (r *Recorder) DecisionHook() access.DecisionHook {
	return func(_ context.Context, p *access.Principal, req access.Requirement, err error) {
		role := "anonymous"
		if p != nil {
			role = p.Role.String()
		}
		r.accessDecisions.WithLabelValues(req.Kind.String(), role, Outcome(err)).Inc()
	}
}

// BindHook counts route bindings.
func (r *Recorder) BindHook() routebind.BindHook {
	return func(_ context.Context, kind routebind.Kind, err error) {
		r.bindings.WithLabelValues(string(kind), Outcome(err)).Inc()
	}
}

// Middleware records request count and latency per chi route pattern.
// Unmatched routes are labelled by an empty pattern to bound cardinality.
func (r *Recorder) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, req.ProtoMajor)
		next.ServeHTTP(ww, req)

		route := ""
		if rctx := chi.RouteContext(req.Context()); rctx != nil {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		r.requests.WithLabelValues(req.Method, route, strconv.Itoa(status)).Inc()
		r.requestDuration.WithLabelValues(req.Method, route).Observe(time.Since(start).Seconds())
	})
}

// Outcome maps err to a bounded label value.
func Outcome(err error) string {
	if err == nil {
		return OutcomeOK
	}
	return schoolkit.HTTPErrorFor(err).Key
}
