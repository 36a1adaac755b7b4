package config

import "time"

// Config holds runtime settings for the Streeek client.
//
// Fields:
//   - APIBaseURL: base URL of the Streeek backend REST API.
//   - GithubAPIURL: base URL of the GitHub REST API.
//   - GithubRepo: owner/name of the repository feedback issues go to.
//   - DatabaseDSN: sqlite DSN of the local cache database.
//   - SyncInterval: how often the background loop refreshes the account.
//   - ExactAlarms: whether reminder alarms may use exact wake times.
//
// Units: SyncInterval is a time.Duration (e.g., 15*time.Minute).
type Config struct {
	APIBaseURL   string
	GithubAPIURL string
	GithubRepo   string
	DatabaseDSN  string
	SyncInterval time.Duration
	ExactAlarms  bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "https://api.streeek.bizilabs.com"
	c.GithubAPIURL = "https://api.github.com"
	c.GithubRepo = "bizilabs/streeek"
	c.DatabaseDSN = "streeek.db"
	c.SyncInterval = 15 * time.Minute
	c.ExactAlarms = true
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from the environment, a JSON file (if present), and command-line flags.
// Later sources take precedence over earlier ones.
func LoadConfig(args []string) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg, args)
	parseFlags(cfg, args)
	return cfg
}
