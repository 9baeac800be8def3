package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/dmitrymomot/schoolkit/pkg/access"
	"github.com/dmitrymomot/schoolkit/pkg/authn"
	"github.com/dmitrymomot/schoolkit/pkg/config"
	"github.com/dmitrymomot/schoolkit/pkg/httpserver"
	"github.com/dmitrymomot/schoolkit/pkg/logger"
	"github.com/dmitrymomot/schoolkit/pkg/metrics"
	"github.com/dmitrymomot/schoolkit/pkg/tenant"
)

func main() {
	issueFor := flag.String("issue-token", "", "print a bearer token for the given user id and exit")
	flag.Parse()

	if err := run(context.Background(), *issueFor); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, issueFor string) error {
	logCfg, err := config.Load[logger.Config]()
	if err != nil {
		return err
	}
	logOpts, err := logCfg.Options()
	if err != nil {
		return err
	}
	log := logger.New(append(logOpts, logger.WithContextExtractors(
		logger.RequestIDExtractor(),
		tenant.LoggerExtractor(),
		access.LoggerExtractor(),
	))...)
	slog.SetDefault(log)

	appCfg, err := config.Load[appConfig]()
	if err != nil {
		return err
	}
	tenantCfg, err := config.Load[tenant.Config]()
	if err != nil {
		return err
	}
	authCfg, err := config.Load[authn.Config]()
	if err != nil {
		return err
	}
	httpCfg, err := config.Load[httpserver.Config]()
	if err != nil {
		return err
	}

	b, err := newBackend(ctx, appCfg, log)
	if err != nil {
		return err
	}
	if err := b.withTenantCache(ctx, appCfg.Cache, tenantCfg, log); err != nil {
		return err
	}

	verifier, err := authn.NewVerifier(authCfg, b.principals)
	if err != nil {
		return err
	}
	if issueFor != "" {
		return issueToken(verifier, issueFor, authCfg)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	recorder := metrics.New(reg)

	router := newRouter(routerDeps{
		log:       log,
		backend:   b,
		tenantCfg: tenantCfg,
		verifier:  verifier,
		recorder:  recorder,
		readiness: httpCfg,
	})

	log.Info("starting schoolkit",
		slog.String("store", appCfg.Store),
		slog.String("tenant_cache", appCfg.Cache),
		slog.String("admin_host", tenantCfg.AdminHost),
		slog.String("main_domain", tenantCfg.MainDomain),
	)

	srv := httpserver.NewFromConfig(httpCfg, append(b.closers, httpserver.WithLogger(log))...)
	return srv.Run(ctx, router)
}

func issueToken(v *authn.Verifier, rawID string, cfg authn.Config) error {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return fmt.Errorf("issue-token: %w", err)
	}
	token, err := v.Issue(id, cfg.TokenTTL)
	if err != nil {
		return err
	}
	fmt.Println(token)
	return nil
}
