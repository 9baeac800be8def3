package config

import "errors"

var (
	// ErrParsingConfig is returned when the environment cannot be parsed into the config struct.
	ErrParsingConfig = errors.New("failed to parse environment variables into config")

	// ErrReadingEnvFile is returned when an explicitly requested .env file cannot be read.
	ErrReadingEnvFile = errors.New("failed to read env file")
)
