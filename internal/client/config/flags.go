package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/jobtrack/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-r string   base URL of the REST auth API
//	-g string   URL of the GraphQL endpoint
//	-s string   sqlite DSN of the local settings store
//	-t int      request timeout in seconds
//
// The function filters os.Args to only the flags it knows about, using
// flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-r", "-g", "-s", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.RESTBaseURL, "r", cfg.RESTBaseURL, "base URL of the REST auth API")
	fs.StringVar(&cfg.GraphQLURL, "g", cfg.GraphQLURL, "URL of the GraphQL endpoint")
	fs.StringVar(&cfg.StorageDSN, "s", cfg.StorageDSN, "sqlite DSN of the local settings store")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
}
