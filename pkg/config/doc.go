// Package config loads typed configuration from environment variables and
// optional .env files.
//
// It combines github.com/joho/godotenv for reading .env files with
// github.com/caarlos0/env/v11 for parsing tagged structs. Every package in
// this module that needs configuration exposes an env-tagged Config struct
// (pg.Config, redis.Config, tenant.Config, authn.Config, httpserver.Config)
// which is loaded here:
//
//	pgCfg, err := config.Load[pg.Config]()
//	if err != nil {
//		return err
//	}
//
// Sources, from highest to lowest precedence:
//
//   - the process environment (or the map given to WithEnvironment)
//   - .env files passed to WithEnvFiles, earlier files first
//   - DefaultEnvFile when no files are passed and it exists
//   - envDefault struct tags
//
// WithPrefix namespaces every variable, so two instances of the same
// struct can be read from different keys.
package config
