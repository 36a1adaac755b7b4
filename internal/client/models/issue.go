package models

import "time"

// Issue is a GitHub issue used for in-app feedback. Immutable once mapped;
// there is no local mutation path, only remote→domain and domain→remote.
type Issue struct {
	ID     int64
	URL    string
	Number int
	Title  string
	Body   string
	User   GithubUser
	Labels []GithubLabel

	// CreatedAt and UpdatedAt are UTC instants. ClosedAt is present iff
	// the issue is closed.
	CreatedAt time.Time
	UpdatedAt time.Time
	ClosedAt  *time.Time
}

// GithubUser is the author of an issue.
type GithubUser struct {
	ID        int64
	Login     string
	AvatarURL string
}

// GithubLabel is a label attached to an issue. Order is preserved.
type GithubLabel struct {
	Name        string
	Color       string
	Description string
}
