package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/bizilabs/streeek/internal/flagx"
	"github.com/bizilabs/streeek/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify intervals either as strings like "15m"
// or as integer nanoseconds. After parsing, values are copied into the
// runtime Config (which uses time.Duration).
type JsonConfig struct {
	APIBaseURL   string         `json:"api_base_url"`
	GithubAPIURL string         `json:"github_api_url"`
	GithubRepo   string         `json:"github_repo"`
	DatabaseDSN  string         `json:"database_dsn"`
	SyncInterval timex.Duration `json:"sync_interval"`
	ExactAlarms  *bool          `json:"exact_alarms"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// The file path comes from the -c/-config flags via flagx.JsonConfigFlags;
// when no path is given the function returns without touching cfg. Absent
// JSON fields keep their earlier values. Read or unmarshal errors panic:
// a named config file that cannot be used is a startup defect.
func parseJson(cfg *Config, args []string) {
	jsonConfigFile := flagx.JsonConfigFlags(args)
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

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
	if jc.GithubAPIURL != "" {
		cfg.GithubAPIURL = jc.GithubAPIURL
	}
	if jc.GithubRepo != "" {
		cfg.GithubRepo = jc.GithubRepo
	}
	if jc.DatabaseDSN != "" {
		cfg.DatabaseDSN = jc.DatabaseDSN
	}
	if jc.SyncInterval.Duration != 0 {
		cfg.SyncInterval = time.Duration(jc.SyncInterval.Duration)
	}
	if jc.ExactAlarms != nil {
		cfg.ExactAlarms = *jc.ExactAlarms
	}
}
