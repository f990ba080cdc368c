// Package config loads runtime configuration for the clipstream CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables, optionally seeded from a .env file (see parseEnv).
//  3. Optional JSON file (see parseJSON) selected via flags: -c or -config.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the backend API
//	-l int      feed page size
//	-t int      request timeout (seconds)
//	-s string   local state file path
//	-d          enable development logging
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be either
// strings like "15s" or integer nanoseconds:
//
//	{
//	  "api_base_url": "https://clips.example.com/api",
//	  "page_limit": 10,
//	  "request_timeout": "15s",
//	  "state_path": "/home/me/.config/clipstream/state.db",
//	  "comment_cache_ttl": "5m",
//	  "requests_per_second": 10,
//	  "breaker_max_failures": 5,
//	  "dev_logging": false
//	}
//
// Primary API
//
//   - type Config                     — holds the CLI's runtime settings
//   - func LoadConfig() *Config       — builds Config by applying defaults, env, JSON, then flags
//   - func (*Config) LoadDefaults()   — sets sensible defaults
package config
