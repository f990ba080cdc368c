package config

import (
	"flag"
	"os"
	"time"

	"github.com/clipstream/clipstream/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the backend API (default from Config)
//	-l int      feed page size (default from Config)
//	-t int      request timeout in seconds (default from Config)
//	-s string   local state file path (default from Config)
//	-d          enable development logging
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	// Filter args to include only those handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-l", "-t", "-s", "-d"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "base URL of the backend API")
	fs.IntVar(&cfg.PageLimit, "l", cfg.PageLimit, "feed page size")
	requestTimeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.StatePath, "s", cfg.StatePath, "local state file path")
	fs.BoolVar(&cfg.DevLogging, "d", cfg.DevLogging, "enable development logging")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*requestTimeout) * time.Second
}
