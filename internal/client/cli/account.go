package cli

import (
	"context"
	"fmt"
)

// Whoami prints the signed-in account and its gamification state.
func (a *App) Whoami(ctx context.Context) error {
	account := a.accounts.Current()
	if account == nil {
		printlnFn("Not signed in.")
		return nil
	}

	printlnFn(fmt.Sprintf("%s <%s>", account.Username, account.Email))
	printlnFn(fmt.Sprintf("  points: %d", account.Points))
	if account.Level != nil {
		printlnFn(fmt.Sprintf("  level:  %s (%d)", account.Level.Name, account.Level.Number))
	}
	if account.Streak != nil {
		printlnFn(fmt.Sprintf("  streak: %d days (longest %d)", account.Streak.Current, account.Streak.Longest))
	}
	return nil
}

// Sync refreshes the account and the leaderboard from the backend.
func (a *App) Sync(ctx context.Context) error {
	if !a.isLoggedIn() {
		printlnFn("Not signed in.")
		return nil
	}

	if err := a.accounts.SyncAccount(ctx); err != nil {
		printlnFn("Sync failed:", err)
		return err
	}
	if err := a.leaderboard.Refresh(ctx); err != nil {
		printlnFn("Leaderboard refresh failed:", err)
		return err
	}
	a.persistTokens(ctx)
	printlnFn("Synced.")
	return nil
}

// Board prints the cached leaderboard.
func (a *App) Board(ctx context.Context) error {
	listing, err := a.leaderboard.List(ctx)
	if err != nil {
		printlnFn("error:", err)
		return err
	}
	if len(listing) == 0 {
		printlnFn("Leaderboard is empty. Run sync first.")
		return nil
	}

	for i, entry := range listing {
		printlnFn(fmt.Sprintf("%3d. %s", i+1, entry.Username))
	}
	return nil
}
