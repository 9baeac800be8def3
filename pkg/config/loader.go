package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// DefaultEnvFile is read when no env files are given. A missing file is ignored.
const DefaultEnvFile = ".env"

type options struct {
	files       []string
	prefix      string
	environment map[string]string
}

// Option configures a Load call.
type Option func(*options)

// WithEnvFiles reads the given .env files instead of DefaultEnvFile.
// Every listed file must exist. Earlier files win over later ones.
func WithEnvFiles(files ...string) Option {
	return func(o *options) {
		o.files = files
	}
}

// WithPrefix prepends prefix to every env tag, e.g. "SCHOOLKIT_".
func WithPrefix(prefix string) Option {
	return func(o *options) {
		o.prefix = prefix
	}
}

// WithEnvironment replaces the process environment as the base source.
// Tests use it to avoid mutating os.Environ.
func WithEnvironment(environment map[string]string) Option {
	return func(o *options) {
		o.environment = environment
	}
}

// Load parses the environment into a new T using its env struct tags.
//
// Variables already present in the base environment take precedence over
// values from .env files, matching godotenv.Load semantics.
//
//	type DatabaseConfig struct {
//		URL      string `env:"PG_CONN_URL,required"`
//		MaxConns int32  `env:"PG_MAX_CONNS" envDefault:"10"`
//	}
//
//	db, err := config.Load[DatabaseConfig]()
func Load[T any](opts ...Option) (T, error) {
	var cfg T
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	environment, err := o.resolveEnvironment()
	if err != nil {
		return cfg, err
	}

	if err := env.ParseWithOptions(&cfg, env.Options{
		Environment: environment,
		Prefix:      o.prefix,
	}); err != nil {
		return cfg, errors.Join(ErrParsingConfig, err)
	}
	return cfg, nil
}

// MustLoad works like Load but panics on failure.
// Use it for configuration the process cannot start without.
func MustLoad[T any](opts ...Option) T {
	cfg, err := Load[T](opts...)
	if err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
	return cfg
}

func (o *options) resolveEnvironment() (map[string]string, error) {
	base := o.environment
	if base == nil {
		base = processEnvironment()
	}

	fromFiles, err := o.readFiles()
	if err != nil {
		return nil, err
	}

	merged := make(map[string]string, len(base)+len(fromFiles))
	for k, v := range fromFiles {
		merged[k] = v
	}
	for k, v := range base {
		merged[k] = v
	}
	return merged, nil
}

func (o *options) readFiles() (map[string]string, error) {
	if len(o.files) == 0 {
		values, err := godotenv.Read(DefaultEnvFile)
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		if err != nil {
			return nil, errors.Join(ErrReadingEnvFile, err)
		}
		return values, nil
	}

	values := make(map[string]string)
	// Walk backwards so earlier files overwrite later ones.
	for i := len(o.files) - 1; i >= 0; i-- {
		fileValues, err := godotenv.Read(o.files[i])
		if err != nil {
			return nil, errors.Join(ErrReadingEnvFile, fmt.Errorf("%s: %w", o.files[i], err))
		}
		for k, v := range fileValues {
			values[k] = v
		}
	}
	return values, nil
}

func processEnvironment() map[string]string {
	environ := os.Environ()
	out := make(map[string]string, len(environ))
	for _, kv := range environ {
		if k, v, ok := strings.Cut(kv, "="); ok {
			out[k] = v
		}
	}
	return out
}
