// Package pg connects to PostgreSQL through pgx/v5 and applies goose
// migrations shipped as an fs.FS.
//
//	var cfg pg.Config
//	if err := config.Load(&cfg); err != nil { ... }
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil { ... }
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, pgstore.Migrations, cfg, logger); err != nil { ... }
//
// Healthcheck returns a probe for readiness endpoints, and the Is*Error helpers
// classify errors returned by pgx.
package pg
