package cli

import (
	"context"
	"os"

	"github.com/bizilabs/streeek/internal/client/remote"
	"github.com/bizilabs/streeek/internal/client/services"
)

// Login signs the user in with a GitHub personal access token: the token is
// verified against GitHub, then the backend account is created or linked,
// which opens the session.
func (a *App) Login(ctx context.Context) error {
	if a.isLoggedIn() {
		printlnFn("Already signed in. Run logout first to switch accounts.")
		return nil
	}

	token, err := GetSecret("Enter GitHub personal access token", os.Stdout)
	if err != nil {
		printlnFn("error:", err)
		return err
	}

	gh := remote.NewGithubClient(a.config.GithubAPIURL, a.config.GithubRepo, string(token))
	user, err := gh.AuthenticatedUser(ctx)
	if err != nil {
		printlnFn("GitHub rejected the token:", err)
		return err
	}

	existing, err := a.accounts.GetAccountWithGithubID(ctx, *user.ID)
	if err != nil {
		printlnFn("Login failed:", err)
		return err
	}

	account, err := a.accounts.CreateAccount(ctx, *user.ID, user.Login, user.Email, "", user.AvatarURL)
	if err != nil {
		printlnFn("Login failed:", err)
		return err
	}

	a.persistTokens(ctx)
	if err := a.repos.Metadata.Set(ctx, metaGithubToken, token); err != nil {
		a.log.Warn(ctx, "failed to persist github token", "error", err)
	}
	a.feedback = services.NewFeedbackService(gh, a.log)

	if existing != nil {
		printlnFn("Welcome back,", account.Username)
	} else {
		printlnFn("Account created. Welcome,", account.Username)
	}

	if err := a.accounts.SyncAccount(ctx); err != nil {
		a.log.Warn(ctx, "initial sync failed", "error", err)
	}
	return nil
}

// Logout tears the session down: reminder alarms are cancelled, the cached
// account and session metadata are cleared, and observers see the absence.
func (a *App) Logout(ctx context.Context) error {
	if !a.isLoggedIn() {
		printlnFn("Not signed in.")
		return nil
	}

	if err := a.reminders.CancelAll(ctx); err != nil {
		printlnFn("error:", err)
		return err
	}
	if err := a.accounts.Logout(ctx); err != nil {
		printlnFn("error:", err)
		return err
	}
	a.api.SetTokens("", "")
	a.feedback = nil
	printlnFn("Signed out.")
	return nil
}
