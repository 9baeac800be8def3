package authn

import "time"

// Config holds token settings.
type Config struct {
	Secret   string        `env:"AUTH_JWT_SECRET,required"`
	Issuer   string        `env:"AUTH_JWT_ISSUER" envDefault:"schoolkit"`
	TokenTTL time.Duration `env:"AUTH_TOKEN_TTL" envDefault:"12h"`
	Leeway   time.Duration `env:"AUTH_JWT_LEEWAY" envDefault:"30s"`
}
