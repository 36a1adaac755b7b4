// Package config loads runtime configuration for the Streeek client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables, with an optional .env file (see parseEnv).
//  3. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the backend REST API
//	-r string   owner/name of the feedback repository
//	-d string   sqlite DSN of the local cache database
//	-i int      background sync interval (minutes)
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be either
// strings like "15m" or integer nanoseconds:
//
//	{
//	  "api_base_url": "https://api.streeek.bizilabs.com",
//	  "github_repo": "bizilabs/streeek",
//	  "database_dsn": "streeek.db",
//	  "sync_interval": "15m",
//	  "exact_alarms": true
//	}
package config
