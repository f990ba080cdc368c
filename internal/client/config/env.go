package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with values from the process environment. A .env
// file in the working directory, when present, seeds variables first without
// overriding ones already exported.
//
// Recognized variables:
//
//	CLIPSTREAM_API_URL          base URL of the backend API
//	CLIPSTREAM_PAGE_LIMIT       feed page size (integer)
//	CLIPSTREAM_REQUEST_TIMEOUT  per-request deadline (time.ParseDuration)
//	CLIPSTREAM_STATE_PATH       local state file path
//	CLIPSTREAM_DEV_LOG          "true" enables development logging
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("CLIPSTREAM_API_URL"); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv("CLIPSTREAM_PAGE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.PageLimit = n
		}
	}
	if v := os.Getenv("CLIPSTREAM_REQUEST_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.RequestTimeout = d
		}
	}
	if v := os.Getenv("CLIPSTREAM_STATE_PATH"); v != "" {
		cfg.StatePath = v
	}
	if v := os.Getenv("CLIPSTREAM_DEV_LOG"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.DevLogging = b
		}
	}
}
