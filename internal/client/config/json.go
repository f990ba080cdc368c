package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/clipstream/clipstream/internal/flagx"
	"github.com/clipstream/clipstream/internal/timex"
)

// jsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify intervals either as strings like "15s"
// or as integer nanoseconds. After parsing, values are copied into the
// runtime Config (which uses time.Duration).
type jsonConfig struct {
	APIBaseURL         string         `json:"api_base_url"`
	PageLimit          int            `json:"page_limit"`
	RequestTimeout     timex.Duration `json:"request_timeout"`
	StatePath          string         `json:"state_path"`
	CommentCacheTTL    timex.Duration `json:"comment_cache_ttl"`
	RequestsPerSecond  float64        `json:"requests_per_second"`
	BreakerMaxFailures uint32         `json:"breaker_max_failures"`
	DevLogging         *bool          `json:"dev_logging"`
}

// parseJSON overlays Config with values loaded from a JSON file.
//
// Lookup order for the JSON file path:
//  1. Command-line flags (-c or -config) via flagx.JSONConfigFlags().
//  2. If empty, no JSON is loaded and the function returns.
//
// Behavior:
//   - Reads and unmarshals the JSON into jsonConfig.
//   - Copies set fields into the provided Config; zero values are skipped so
//     a partial file only overrides what it mentions.
//   - Panics on read or unmarshal errors (caller should recover if desired).
func parseJSON(cfg *Config) {
	jsonConfigFile := flagx.JSONConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc jsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.PageLimit > 0 {
		cfg.PageLimit = jc.PageLimit
	}
	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeout.Duration)
	}
	if jc.StatePath != "" {
		cfg.StatePath = jc.StatePath
	}
	if jc.CommentCacheTTL.Duration > 0 {
		cfg.CommentCacheTTL = time.Duration(jc.CommentCacheTTL.Duration)
	}
	if jc.RequestsPerSecond > 0 {
		cfg.RequestsPerSecond = jc.RequestsPerSecond
	}
	if jc.BreakerMaxFailures > 0 {
		cfg.BreakerMaxFailures = jc.BreakerMaxFailures
	}
	if jc.DevLogging != nil {
		cfg.DevLogging = *jc.DevLogging
	}
}
