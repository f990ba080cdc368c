package config

import (
	"os"
	"path/filepath"
	"time"
)

// Config holds runtime settings for the clipstream CLI.
//
// Fields:
//   - APIBaseURL: base URL of the backend HTTP API.
//   - PageLimit: number of videos requested per feed page.
//   - RequestTimeout: per-request HTTP deadline.
//   - StatePath: location of the local sqlite state file.
//   - CommentCacheTTL: how long a loaded comment thread stays warm.
//   - RequestsPerSecond: client-side request rate cap.
//   - BreakerMaxFailures: consecutive network failures before the circuit opens.
//   - DevLogging: switch to verbose development logging.
//
// Units: RequestTimeout and CommentCacheTTL are time.Durations.
type Config struct {
	APIBaseURL         string
	PageLimit          int
	RequestTimeout     time.Duration
	StatePath          string
	CommentCacheTTL    time.Duration
	RequestsPerSecond  float64
	BreakerMaxFailures uint32
	DevLogging         bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:8080/api"
	c.PageLimit = 10
	c.RequestTimeout = 15 * time.Second
	c.StatePath = defaultStatePath()
	c.CommentCacheTTL = 5 * time.Minute
	c.RequestsPerSecond = 10
	c.BreakerMaxFailures = 5
	c.DevLogging = false
}

func defaultStatePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "clipstream.db"
	}
	return filepath.Join(dir, "clipstream", "state.db")
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment (optionally seeded from a .env file), a JSON file (if
// present) and command-line flags (if present). Later sources take precedence
// over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJSON(cfg)
	parseFlags(cfg)
	return cfg
}
