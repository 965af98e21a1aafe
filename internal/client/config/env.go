package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Environment variable names, also loadable from a .env file in the
// working directory.
const (
	envRESTBaseURL    = "JOBTRACK_REST_API_URL"
	envGraphQLURL     = "JOBTRACK_GRAPHQL_URL"
	envStorageDSN     = "JOBTRACK_STORAGE_DSN"
	envRequestTimeout = "JOBTRACK_REQUEST_TIMEOUT"
)

// parseEnv overlays Config with values from the process environment,
// after merging in a .env file if one exists. Variables already set in
// the environment win over the file.
func parseEnv(cfg *Config) {
	// missing .env is the normal case
	_ = godotenv.Load()

	if v := os.Getenv(envRESTBaseURL); v != "" {
		cfg.RESTBaseURL = v
	}
	if v := os.Getenv(envGraphQLURL); v != "" {
		cfg.GraphQLURL = v
	}
	if v := os.Getenv(envStorageDSN); v != "" {
		cfg.StorageDSN = v
	}
	if v := os.Getenv(envRequestTimeout); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.RequestTimeout = d
		}
	}
}
