package tenant

import "time"

// Config holds the host rules used by Resolver and the directory cache settings.
type Config struct {
	// AdminHost serves the administrative panel; requests to it carry no tenant.
	AdminHost string `env:"TENANT_ADMIN_HOST"`

	// MainDomain is the shared parent domain; "<slug>.<MainDomain>" resolves by slug.
	MainDomain string `env:"TENANT_MAIN_DOMAIN"`

	// LoopbackHosts are treated as administrative unless a path slug is present.
	LoopbackHosts []string `env:"TENANT_LOOPBACK_HOSTS" envDefault:"localhost,127.0.0.1,::1" envSeparator:","`

	CacheTTL  time.Duration `env:"TENANT_CACHE_TTL" envDefault:"5m"`
	CacheSize int           `env:"TENANT_CACHE_SIZE" envDefault:"1000"`
}
