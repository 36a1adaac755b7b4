package remote

// Wire-shaped representations of entities, owned by the remote access layer.
// Required identity fields are pointers so a missing field in the payload is
// distinguishable from a zero value and can be rejected by the mappers.

// AccountDTO is the backend account record.
type AccountDTO struct {
	ID        *int64  `json:"id"`
	GithubID  *int64  `json:"github_id"`
	Username  string  `json:"username"`
	Email     string  `json:"email"`
	Bio       *string `json:"bio"`
	AvatarURL string  `json:"avatar_url"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
	FCMToken  *string `json:"fcm_token"`
}

// AccountFullDTO is the authoritative sync payload: the account plus its
// derived gamification state.
type AccountFullDTO struct {
	Account AccountDTO `json:"account"`
	Points  *int64     `json:"points"`
	Level   *LevelDTO  `json:"level"`
	Streak  *StreakDTO `json:"streak"`
}

// AccountLightDTO is the reduced listing projection used by leaderboards.
type AccountLightDTO struct {
	ID        *int64  `json:"id"`
	Username  string  `json:"username"`
	AvatarURL string  `json:"avatar_url"`
	CreatedAt string  `json:"created_at"`
	FCMToken  *string `json:"fcm_token"`
}

// LevelDTO is a gamification tier as served by the backend.
type LevelDTO struct {
	ID        *int64 `json:"id"`
	Name      string `json:"name"`
	Number    int64  `json:"number"`
	MinPoints int64  `json:"min_points"`
	MaxPoints int64  `json:"max_points"`
}

// StreakDTO is the consecutive-activity counter as served by the backend.
type StreakDTO struct {
	Current   int64  `json:"current"`
	Longest   int64  `json:"longest"`
	UpdatedAt string `json:"updated_at"`
}

// CreateAccountRequest is the outbound create-or-link payload.
type CreateAccountRequest struct {
	GithubID  int64  `json:"github_id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Bio       string `json:"bio"`
	AvatarURL string `json:"avatar_url"`
}

// TokenPairDTO carries the session tokens issued by the backend.
type TokenPairDTO struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// GithubIssueDTO is a GitHub REST API issue.
type GithubIssueDTO struct {
	ID        *int64           `json:"id"`
	URL       string           `json:"html_url"`
	Number    int              `json:"number"`
	Title     string           `json:"title"`
	Body      *string          `json:"body"`
	User      GithubUserDTO    `json:"user"`
	Labels    []GithubLabelDTO `json:"labels"`
	CreatedAt string           `json:"created_at"`
	UpdatedAt string           `json:"updated_at"`
	ClosedAt  *string          `json:"closed_at"`
}

// GithubUserDTO is a GitHub REST API user.
type GithubUserDTO struct {
	ID        *int64 `json:"id"`
	Login     string `json:"login"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url"`
}

// GithubLabelDTO is a GitHub REST API issue label.
type GithubLabelDTO struct {
	Name        string  `json:"name"`
	Color       string  `json:"color"`
	Description *string `json:"description"`
}

// CreateIssueRequest is the outbound issue-creation payload.
type CreateIssueRequest struct {
	Title  string   `json:"title"`
	Body   string   `json:"body"`
	Labels []string `json:"labels,omitempty"`
}
