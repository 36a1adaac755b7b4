// Package cli implements the interactive Streeek client: wiring of the local
// cache, remote clients, and services, plus a small REPL on top of them.
package cli

import (
	"bufio"
	"context"
	"os"
	"time"

	"github.com/bizilabs/streeek/internal/client/alarms"
	"github.com/bizilabs/streeek/internal/client/config"
	"github.com/bizilabs/streeek/internal/client/remote"
	"github.com/bizilabs/streeek/internal/client/services"
	"github.com/bizilabs/streeek/internal/client/store"
	"github.com/bizilabs/streeek/internal/logging"
)

// Metadata keys for persisted session state.
const (
	metaAccessToken  = "access_token"
	metaRefreshToken = "refresh_token"
	metaGithubToken  = "github_token"
)

type App struct {
	config      *config.Config
	repos       *store.Repositories
	api         *remote.HTTPClient
	scheduler   *alarms.TimerScheduler
	accounts    services.AccountService
	reminders   services.ReminderService
	leaderboard services.LeaderboardService

	// feedback is nil until a GitHub token is known.
	feedback services.FeedbackService

	log    logging.Logger
	reader *bufio.Reader
}

// NewApp opens the local cache, wires the services, and restores any
// persisted session: account row, reminders and their alarms, API tokens,
// and the GitHub client.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	repos, err := store.InitDatabase(ctx, c.DatabaseDSN)
	if err != nil {
		log.Error(ctx, "failed to initialize database", "error", err)
		return nil, err
	}

	app := &App{
		config: c,
		repos:  repos,
		api:    remote.NewHTTPClient(c.APIBaseURL),
		log:    log,
		reader: bufio.NewReader(os.Stdin),
	}
	app.scheduler = alarms.NewTimerScheduler(log, app.ring, c.ExactAlarms)
	app.accounts = services.NewAccountService(app.api, repos.Accounts, repos.Metadata, log)
	app.reminders = services.NewReminderService(repos.Reminders, app.scheduler, log)
	app.leaderboard = services.NewLeaderboardService(app.api, repos.Leaderboard, log)

	if err := app.restoreSession(ctx); err != nil {
		_ = repos.Close()
		return nil, err
	}
	return app, nil
}

func (a *App) restoreSession(ctx context.Context) error {
	access, err := a.repos.Metadata.Get(ctx, metaAccessToken)
	if err != nil {
		return err
	}
	refresh, err := a.repos.Metadata.Get(ctx, metaRefreshToken)
	if err != nil {
		return err
	}
	if access != nil && refresh != nil {
		a.api.SetTokens(string(access), string(refresh))
	}

	ghToken, err := a.repos.Metadata.Get(ctx, metaGithubToken)
	if err != nil {
		return err
	}
	if ghToken != nil {
		gh := remote.NewGithubClient(a.config.GithubAPIURL, a.config.GithubRepo, string(ghToken))
		a.feedback = services.NewFeedbackService(gh, a.log)
	}

	if err := a.accounts.Restore(ctx); err != nil {
		return err
	}
	return a.reminders.Restore(ctx)
}

// Run starts the background sync watcher and hands control to the REPL.
// It returns when the user exits.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer func() { _ = a.repos.Close() }()
	defer a.scheduler.Close()

	go a.StartSyncWatcher(ctx, a.config.SyncInterval)
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.accounts.Current() != nil
}

// ring handles a fired reminder alarm by announcing every reminder that
// covers the slot.
func (a *App) ring(key alarms.Key) {
	for _, r := range a.reminders.Current() {
		if r.Hour == key.Hour && r.Minute == key.Minute && r.RepeatsOn(key.Day) {
			printlnFn("⏰ Reminder:", r.Label)
		}
	}
}

// StartSyncWatcher periodically refreshes the account and leaderboard while
// a session exists. Each tick is bounded; a failed tick leaves the cached
// values published and retries on the next one.
func (a *App) StartSyncWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if !a.isLoggedIn() {
				continue
			}
			tickCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
			if err := a.accounts.SyncAccount(tickCtx); err != nil {
				a.log.Warn(tickCtx, "background account sync failed", "error", err)
			}
			if err := a.leaderboard.Refresh(tickCtx); err != nil {
				a.log.Warn(tickCtx, "background leaderboard refresh failed", "error", err)
			}
			a.persistTokens(tickCtx)
			cancel()

		case <-ctx.Done():
			return
		}
	}
}

// persistTokens saves the current session token pair so a restart can
// resume without re-authenticating. Tokens rotate on refresh, so this runs
// after login and after every sync tick.
func (a *App) persistTokens(ctx context.Context) {
	access, refresh := a.api.Tokens()
	if access == "" || refresh == "" {
		return
	}
	if err := a.repos.Metadata.Set(ctx, metaAccessToken, []byte(access)); err != nil {
		a.log.Warn(ctx, "failed to persist access token", "error", err)
	}
	if err := a.repos.Metadata.Set(ctx, metaRefreshToken, []byte(refresh)); err != nil {
		a.log.Warn(ctx, "failed to persist refresh token", "error", err)
	}
}
