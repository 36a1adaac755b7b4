// Package models defines client-side data models: canonical domain entities
// and their durable cache-row projections. Wire DTOs live with the remote
// access layer and are never persisted directly.
package models

import "time"

// Account is the canonical in-memory representation of the signed-in user.
type Account struct {
	// ID is the Streeek account identifier.
	ID int64

	// GithubID is the GitHub numeric user id the account is linked to.
	GithubID int64

	Username  string
	Email     string
	Bio       string
	AvatarURL string

	// CreatedAt and UpdatedAt are device-local wall-clock datetimes.
	CreatedAt time.Time
	UpdatedAt time.Time

	// Points is the accumulated contribution score, never negative.
	Points int64

	// Level is the tier derived from Points. Nil until the first full sync;
	// thresholds are backend data and are not enforced here.
	Level *Level

	// Streak is the consecutive-activity-day counter. Nil until the first
	// full sync.
	Streak *Streak

	// FCMToken is the push-notification token, empty when not registered.
	FCMToken string
}

// Level is a gamification tier.
type Level struct {
	ID        int64
	Name      string
	Number    int64
	MinPoints int64
	MaxPoints int64
}

// Streak tracks consecutive days with contribution activity.
type Streak struct {
	Current   int64
	Longest   int64
	UpdatedAt time.Time
}

// AccountLight is a reduced-identity projection used for leaderboard and
// listing contexts. CreatedAt is anchored to UTC.
type AccountLight struct {
	ID        int64
	Username  string
	AvatarURL string
	CreatedAt time.Time
	FCMToken  string
}

// AccountCache is the durable cache row for Account. Timestamps are stored
// as ISO-8601 text with zone designator.
type AccountCache struct {
	ID        int64
	GithubID  int64
	Username  string
	Email     string
	Bio       string
	AvatarURL string
	CreatedAt string
	UpdatedAt string
	Points    int64
	Level     *LevelCache
	Streak    *StreakCache
	FCMToken  string
}

// LevelCache is the cache projection of Level, stored as a JSON column.
type LevelCache struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Number    int64  `json:"number"`
	MinPoints int64  `json:"min_points"`
	MaxPoints int64  `json:"max_points"`
}

// StreakCache is the cache projection of Streak, stored as a JSON column.
type StreakCache struct {
	Current   int64  `json:"current"`
	Longest   int64  `json:"longest"`
	UpdatedAt string `json:"updated_at"`
}

// AccountLightCache is the durable cache row for AccountLight.
type AccountLightCache struct {
	ID        int64
	Username  string
	AvatarURL string
	CreatedAt string
	FCMToken  string
}
