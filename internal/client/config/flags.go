package config

import (
	"flag"
	"time"

	"github.com/bizilabs/streeek/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the backend API (default from Config)
//	-r string   owner/name of the feedback repository
//	-d string   sqlite DSN of the local cache database
//	-i int      background sync interval in minutes
//
// Note: the function filters args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-a", "-r", "-d", "-i"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "base URL of the backend API")
	fs.StringVar(&cfg.GithubRepo, "r", cfg.GithubRepo, "owner/name of the feedback repository")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "sqlite DSN of the local cache database")
	syncInterval := fs.Int("i", int(cfg.SyncInterval.Minutes()), "background sync interval (in minutes)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.SyncInterval = time.Duration(*syncInterval) * time.Minute
}
