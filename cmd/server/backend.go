package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	goredis "github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/schoolkit/pkg/access"
	"github.com/dmitrymomot/schoolkit/pkg/authn"
	"github.com/dmitrymomot/schoolkit/pkg/config"
	"github.com/dmitrymomot/schoolkit/pkg/fixture"
	"github.com/dmitrymomot/schoolkit/pkg/httpserver"
	"github.com/dmitrymomot/schoolkit/pkg/pg"
	"github.com/dmitrymomot/schoolkit/pkg/pgstore"
	"github.com/dmitrymomot/schoolkit/pkg/redis"
	"github.com/dmitrymomot/schoolkit/pkg/routebind"
	"github.com/dmitrymomot/schoolkit/pkg/tenant"
)

const (
	storeMemory   = "memory"
	storePostgres = "postgres"

	cacheMemory = "memory"
	cacheRedis  = "redis"
	cacheNone   = "none"
)

var errUnknownBackend = errors.New("unknown backend")

// appConfig selects the storage and cache backends.
type appConfig struct {
	Store    string `env:"SCHOOLKIT_STORE" envDefault:"memory"`
	Cache    string `env:"SCHOOLKIT_TENANT_CACHE" envDefault:"none"`
	Fixtures string `env:"SCHOOLKIT_FIXTURES"`
}

type teacherStore interface {
	access.TeacherSource
	routebind.TeacherStore
}

// backend is every read port the request chain needs, plus the probes and
// closers of whatever infrastructure backs them.
type backend struct {
	directory  tenant.Directory
	teachers   teacherStore
	students   routebind.StudentStore
	grants     access.GrantSource
	principals authn.PrincipalLoader

	checks  []httpserver.Check
	closers []httpserver.Option
}

func newBackend(ctx context.Context, cfg appConfig, log *slog.Logger) (*backend, error) {
	var set *fixture.Set
	if cfg.Fixtures != "" {
		var err error
		if set, err = fixture.LoadFile(cfg.Fixtures); err != nil {
			return nil, err
		}
	}

	switch cfg.Store {
	case storeMemory:
		if set == nil {
			set = &fixture.Set{}
			log.Warn("memory store without fixtures, every tenant lookup will miss")
		}
		mem := set.Memory()
		return &backend{
			directory:  mem.Directory,
			teachers:   mem.School,
			students:   mem.School,
			grants:     mem.Grants,
			principals: mem.Principals,
		}, nil

	case storePostgres:
		pgCfg, err := config.Load[pg.Config]()
		if err != nil {
			return nil, err
		}
		pool, err := pg.Connect(ctx, pgCfg)
		if err != nil {
			return nil, err
		}
		if pgCfg.AutoMigrate {
			if err := pg.Migrate(ctx, pool, pgstore.Migrations(), pgCfg, log); err != nil {
				pool.Close()
				return nil, err
			}
		}
		if set != nil {
			if err := pgstore.Seed(ctx, pool, set); err != nil {
				pool.Close()
				return nil, fmt.Errorf("seed fixtures: %w", err)
			}
			log.Info("fixtures seeded", slog.String("path", cfg.Fixtures))
		}

		return &backend{
			directory:  pgstore.NewTenantStore(pool),
			teachers:   pgstore.NewTeacherStore(pool),
			students:   pgstore.NewStudentStore(pool),
			grants:     pgstore.NewGrantStore(pool),
			principals: pgstore.NewUserStore(pool),
			checks:     []httpserver.Check{{Name: "postgres", Fn: pg.Healthcheck(pool)}},
			closers: []httpserver.Option{httpserver.WithCloser("postgres", func(context.Context) error {
				pool.Close()
				return nil
			})},
		}, nil

	default:
		return nil, fmt.Errorf("%w: SCHOOLKIT_STORE=%q", errUnknownBackend, cfg.Store)
	}
}

// withTenantCache wraps the directory in a CachedDirectory backed by the
// configured cache.
func (b *backend) withTenantCache(ctx context.Context, kind string, cfg tenant.Config, log *slog.Logger) error {
	var cache tenant.Cache
	switch kind {
	case cacheNone:
		return nil
	case cacheMemory:
		cache = tenant.NewInMemoryCache(cfg.CacheSize)
	case cacheRedis:
		redisCfg, err := config.Load[redis.Config]()
		if err != nil {
			return err
		}
		client, err := redis.Connect(ctx, redisCfg)
		if err != nil {
			return err
		}
		cache = redis.NewTenantCache(client, redisCfg.KeyPrefix, log)
		b.checks = append(b.checks, httpserver.Check{Name: "redis", Fn: redis.Healthcheck(client)})
		b.closers = append(b.closers, closeRedis(client))
	default:
		return fmt.Errorf("%w: SCHOOLKIT_TENANT_CACHE=%q", errUnknownBackend, kind)
	}

	b.directory = tenant.NewCachedDirectory(b.directory, cache, cfg.CacheTTL)
	return nil
}

func closeRedis(client *goredis.Client) httpserver.Option {
	return httpserver.WithCloser("redis", func(context.Context) error {
		return client.Close()
	})
}
