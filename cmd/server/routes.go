package main

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/schoolkit"
	"github.com/dmitrymomot/schoolkit/pkg/access"
	"github.com/dmitrymomot/schoolkit/pkg/authn"
	"github.com/dmitrymomot/schoolkit/pkg/httpserver"
	"github.com/dmitrymomot/schoolkit/pkg/metrics"
	"github.com/dmitrymomot/schoolkit/pkg/routebind"
	"github.com/dmitrymomot/schoolkit/pkg/tenant"
)

type routerDeps struct {
	log       *slog.Logger
	backend   *backend
	tenantCfg tenant.Config
	verifier  *authn.Verifier
	recorder  *metrics.Recorder
	readiness httpserver.Config
}

func newRouter(d routerDeps) http.Handler {
	respond := schoolkit.ErrorResponder(d.log)

	resolver := tenant.NewResolver(d.backend.directory, d.tenantCfg)
	guard := access.NewGuard(d.backend.grants, d.backend.teachers,
		access.WithLogger(d.log),
		access.WithErrorHandler(respond),
		access.WithDecisionHook(d.recorder.DecisionHook()),
	)
	binder := routebind.New(d.backend.teachers, d.backend.students,
		routebind.WithLogger(d.log),
		routebind.WithErrorHandler(respond),
		routebind.WithBindHook(d.recorder.BindHook()),
	)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(d.recorder.Middleware)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) { respond(w, r, schoolkit.ErrNotFound) })
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) { respond(w, r, schoolkit.ErrMethodNotAllowed) })

	r.Get("/healthz", httpserver.LivenessHandler())
	r.Get("/readyz", httpserver.ReadinessHandler(d.log, d.readiness.ReadinessTimeout, d.backend.checks...))
	r.Handle("/metrics", d.recorder.Handler())

	api := func(r chi.Router) {
		r.Use(tenant.Middleware(resolver,
			tenant.WithLogger(d.log),
			tenant.WithErrorHandler(respond),
			tenant.WithResolveHook(d.recorder.TenantHook()),
		))
		r.Use(authn.Middleware(d.verifier,
			authn.WithLogger(d.log),
			authn.WithErrorHandler(respond),
		))

		r.With(guard.Require(access.Membership())).Get("/me", handleMe)
		r.With(guard.Require(access.Module("teachers")), binder.Teacher("teacher")).
			Get("/teachers/{teacher}", handleTeacher)
		r.With(guard.Require(access.Module("students")), binder.Student("student")).
			Get("/students/{student}", handleStudent)
		r.With(guard.RequirePermission("grades:view"), binder.Student("student")).
			Get("/grades/{student}", handleGrades)
		r.With(guard.Require(access.Feature("ppdb")), guard.Require(access.Module("ppdb"))).
			Get("/ppdb", handlePPDB)
	}
	r.Route("/api", api)
	r.Route("/s/{"+tenant.DefaultPathParam+"}/api", api)

	return r
}
