// Package config loads runtime configuration for the media catalog CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. A .env file in the working directory and the process environment
//     (API_URL, ASSET_URL); real environment variables win over the file.
//  3. Optional JSON file selected via flags: -c or -config.
//  4. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the catalog API
//	-s string   base URL thumbnail paths are resolved against
//	-d string   path of the local state database
//	-t int      request timeout (seconds)
//	-l string   log level: debug, info, warn, error
//
// # JSON schema
//
// The JSON loader uses timex.Duration for the timeout, so it can be either a
// string like "10s" or integer nanoseconds:
//
//	{
//	  "api_base_url": "https://catalog.example.com",
//	  "asset_base_url": "https://cdn.example.com",
//	  "state_db_path": "state.db",
//	  "request_timeout": "10s",
//	  "log_level": "info",
//	  "cell_width": 8
//	}
//
// Malformed sources panic; a missing API base URL is reported by Validate.
package config
