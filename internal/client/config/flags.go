package config

import (
	"flag"
	"os"

	"github.com/gaetanosm/lifetrack/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-e string   document service records endpoint
//	-d string   cache database DSN
//
// Args are filtered through flagx.FilterArgs so other components can parse
// their own flags independently.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-e", "-d"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.EndpointURL, "e", cfg.EndpointURL, "document service records endpoint")
	fs.StringVar(&cfg.CacheDSN, "d", cfg.CacheDSN, "cache database DSN")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
