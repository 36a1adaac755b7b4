package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with values from the process environment. A .env
// file in the working directory is loaded first when present; already-set
// variables win over the file.
//
// Recognized variables:
//
//	STREEEK_API_URL        backend base URL
//	STREEEK_GITHUB_API_URL GitHub API base URL
//	STREEEK_GITHUB_REPO    owner/name of the feedback repository
//	STREEEK_DATABASE_DSN   sqlite DSN of the local cache
//	STREEEK_SYNC_INTERVAL  duration string, e.g. "15m"
//	STREEEK_EXACT_ALARMS   boolean, e.g. "false"
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("STREEEK_API_URL"); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv("STREEEK_GITHUB_API_URL"); v != "" {
		cfg.GithubAPIURL = v
	}
	if v := os.Getenv("STREEEK_GITHUB_REPO"); v != "" {
		cfg.GithubRepo = v
	}
	if v := os.Getenv("STREEEK_DATABASE_DSN"); v != "" {
		cfg.DatabaseDSN = v
	}
	if v := os.Getenv("STREEEK_SYNC_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.SyncInterval = d
		}
	}
	if v := os.Getenv("STREEEK_EXACT_ALARMS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.ExactAlarms = b
		}
	}
}
