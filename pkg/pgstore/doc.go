// Package pgstore implements the read ports of tenant, access, routebind and
// authn on PostgreSQL through pgx, and ships the schema as goose migrations.
//
//	pool, _ := pg.Connect(ctx, cfg)
//	_ = pg.Migrate(ctx, pool, pgstore.Migrations(), cfg, logger)
//
//	dir := pgstore.NewTenantStore(pool)       // tenant.Directory
//	teachers := pgstore.NewTeacherStore(pool) // access.TeacherSource, routebind.TeacherStore
//	students := pgstore.NewStudentStore(pool) // routebind.StudentStore
//	grants := pgstore.NewGrantStore(pool)     // access.GrantSource
//	users := pgstore.NewUserStore(pool)       // authn.PrincipalLoader
//
// Seed upserts a fixture.Set so a demo database can be populated from the
// same YAML file the in-memory backend uses.
package pgstore
