// Package remote implements the client's access to remote services: the
// Streeek backend (accounts, leaderboard) and the GitHub REST API (feedback
// issues). Every call is a single bounded attempt; retry policy belongs to
// the caller.
package remote

import "context"

// Client describes the Streeek backend operations used by the client core.
//
// Expected absences (an unknown GitHub id, an unknown account id) are
// returned as (nil, nil), never as errors.
type Client interface {
	Close() error

	// GetAccountWithGithubID looks an account up by provider identity.
	// Read-only probe: it does not establish a session.
	GetAccountWithGithubID(ctx context.Context, githubID int64) (*AccountDTO, error)

	// CreateAccount creates or links an account and opens a session.
	CreateAccount(ctx context.Context, req CreateAccountRequest) (*AccountDTO, error)

	// GetAccount fetches an account by internal identity.
	GetAccount(ctx context.Context, id int64) (*AccountDTO, error)

	// GetAccountFull fetches the authoritative record including derived
	// points, level, and streak.
	GetAccountFull(ctx context.Context, id int64) (*AccountFullDTO, error)

	// GetLeaderboard fetches the reduced account listing.
	GetLeaderboard(ctx context.Context) ([]AccountLightDTO, error)
}

// GithubClient describes the GitHub REST operations used by the client.
type GithubClient interface {
	// AuthenticatedUser returns the user the configured token belongs to.
	AuthenticatedUser(ctx context.Context) (*GithubUserDTO, error)

	// ListIssues lists feedback issues on the product repository.
	ListIssues(ctx context.Context) ([]GithubIssueDTO, error)

	// CreateIssue files a feedback issue on the product repository.
	CreateIssue(ctx context.Context, req CreateIssueRequest) (*GithubIssueDTO, error)
}
