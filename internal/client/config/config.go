// Package config assembles the client's runtime settings from
// defaults, an optional .env file, an optional JSON file, and
// command-line flags, in that order of precedence.
package config

import "time"

// Config holds runtime settings for the jobtrack CLI.
//
// Fields:
//   - RESTBaseURL: base URL of the authentication REST API.
//   - GraphQLURL: URL of the jobs/notes GraphQL endpoint.
//   - StorageDSN: sqlite DSN for the durable settings store.
//   - RequestTimeout: per-request timeout applied to both protocols.
type Config struct {
	RESTBaseURL    string
	GraphQLURL     string
	StorageDSN     string
	RequestTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.RESTBaseURL = "http://127.0.0.1:8000"
	c.GraphQLURL = "http://127.0.0.1:8000/graphql"
	c.StorageDSN = "jobtrack.db"
	c.RequestTimeout = 15 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays
// values from .env, JSON (if a file is given via -c/-config), and
// command-line flags. Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
