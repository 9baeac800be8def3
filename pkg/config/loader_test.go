package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/schoolkit/pkg/config"
)

type appConfig struct {
	Name    string        `env:"APP_NAME" envDefault:"schoolkit"`
	Port    int           `env:"APP_PORT" envDefault:"8080"`
	Hosts   []string      `env:"APP_HOSTS" envSeparator:","`
	Secret  string        `env:"APP_SECRET"`
	Timeout time.Duration `env:"APP_TIMEOUT" envDefault:"5s"`
}

type requiredConfig struct {
	Secret string `env:"APP_SECRET,required"`
}

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()

		cfg, err := config.Load[appConfig](config.WithEnvironment(map[string]string{}))
		require.NoError(t, err)
		assert.Equal(t, "schoolkit", cfg.Name)
		assert.Equal(t, 8080, cfg.Port)
		assert.Equal(t, 5*time.Second, cfg.Timeout)
		assert.Empty(t, cfg.Hosts)
	})

	t.Run("environment", func(t *testing.T) {
		t.Parallel()

		cfg, err := config.Load[appConfig](config.WithEnvironment(map[string]string{
			"APP_NAME":    "custom",
			"APP_TIMEOUT": "1m",
		}))
		require.NoError(t, err)
		assert.Equal(t, "custom", cfg.Name)
		assert.Equal(t, time.Minute, cfg.Timeout)
	})

	t.Run("env files", func(t *testing.T) {
		t.Parallel()

		cfg, err := config.Load[appConfig](
			config.WithEnvironment(map[string]string{}),
			config.WithEnvFiles("testdata/override.env", "testdata/base.env"),
		)
		require.NoError(t, err)
		assert.Equal(t, "from-override", cfg.Name)
		assert.Equal(t, 9000, cfg.Port)
		assert.Equal(t, []string{"a.example.com", "b.example.com"}, cfg.Hosts)
		assert.Equal(t, "quoted secret", cfg.Secret)
	})

	t.Run("environment beats files", func(t *testing.T) {
		t.Parallel()

		cfg, err := config.Load[appConfig](
			config.WithEnvironment(map[string]string{"APP_PORT": "7000"}),
			config.WithEnvFiles("testdata/base.env"),
		)
		require.NoError(t, err)
		assert.Equal(t, 7000, cfg.Port)
		assert.Equal(t, "from-file", cfg.Name)
	})

	t.Run("prefix", func(t *testing.T) {
		t.Parallel()

		cfg, err := config.Load[appConfig](
			config.WithEnvironment(map[string]string{"APP_NAME": "plain", "TEST_APP_NAME": "prefixed"}),
			config.WithPrefix("TEST_"),
		)
		require.NoError(t, err)
		assert.Equal(t, "prefixed", cfg.Name)
	})

	t.Run("missing env file", func(t *testing.T) {
		t.Parallel()

		_, err := config.Load[appConfig](config.WithEnvFiles("testdata/missing.env"))
		assert.ErrorIs(t, err, config.ErrReadingEnvFile)
	})

	t.Run("required missing", func(t *testing.T) {
		t.Parallel()

		_, err := config.Load[requiredConfig](config.WithEnvironment(map[string]string{}))
		assert.ErrorIs(t, err, config.ErrParsingConfig)
	})

	t.Run("invalid value", func(t *testing.T) {
		t.Parallel()

		_, err := config.Load[appConfig](config.WithEnvironment(map[string]string{"APP_PORT": "eighty"}))
		assert.ErrorIs(t, err, config.ErrParsingConfig)
	})
}

func TestMustLoad(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		config.MustLoad[requiredConfig](config.WithEnvironment(map[string]string{}))
	})
	assert.NotPanics(t, func() {
		cfg := config.MustLoad[requiredConfig](config.WithEnvironment(map[string]string{"APP_SECRET": "s"}))
		assert.Equal(t, "s", cfg.Secret)
	})
}
