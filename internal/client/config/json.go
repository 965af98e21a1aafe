package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/jobtrack/internal/flagx"
	"github.com/dmitrijs2005/jobtrack/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It
// relies on timex.Duration so JSON can specify the timeout either as a
// string like "15s" or as integer nanoseconds.
type JsonConfig struct {
	RESTBaseURL    string         `json:"rest_api_url"`
	GraphQLURL     string         `json:"graphql_url"`
	StorageDSN     string         `json:"storage_dsn"`
	RequestTimeout timex.Duration `json:"request_timeout"`
}

// parseJson overlays Config with values loaded from the JSON file
// named by the -c/-config flag. No flag means no JSON is loaded.
// Only fields present in the file override the current values.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.RESTBaseURL != "" {
		cfg.RESTBaseURL = jc.RESTBaseURL
	}
	if jc.GraphQLURL != "" {
		cfg.GraphQLURL = jc.GraphQLURL
	}
	if jc.StorageDSN != "" {
		cfg.StorageDSN = jc.StorageDSN
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeout.Duration)
	}
}
