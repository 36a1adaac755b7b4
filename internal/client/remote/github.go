package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/oauth2"
)

// GithubHTTPClient calls the GitHub REST API with a personal access token.
// oauth2.StaticTokenSource supplies the Authorization header on every
// request.
type GithubHTTPClient struct {
	apiURL string
	repo   string // "owner/name" of the feedback repository
	http   *http.Client
}

// NewGithubClient builds a GithubHTTPClient for the given API root,
// feedback repository, and token.
func NewGithubClient(apiURL, repo, token string) *GithubHTTPClient {
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	client := oauth2.NewClient(context.Background(), src)
	client.Timeout = 15 * time.Second
	return &GithubHTTPClient{apiURL: apiURL, repo: repo, http: client}
}

func (c *GithubHTTPClient) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("github request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("github returned %s for %s", resp.Status, path)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode github response: %w", err)
	}
	return nil
}

// AuthenticatedUser fetches the user the token belongs to.
func (c *GithubHTTPClient) AuthenticatedUser(ctx context.Context) (*GithubUserDTO, error) {
	var user GithubUserDTO
	if err := c.get(ctx, "/user", &user); err != nil {
		return nil, err
	}
	if user.ID == nil {
		return nil, fmt.Errorf("github returned a user without an id")
	}
	return &user, nil
}

// ListIssues lists open issues on the feedback repository.
func (c *GithubHTTPClient) ListIssues(ctx context.Context) ([]GithubIssueDTO, error) {
	var issues []GithubIssueDTO
	if err := c.get(ctx, fmt.Sprintf("/repos/%s/issues", c.repo), &issues); err != nil {
		return nil, err
	}
	return issues, nil
}

// CreateIssue files a new issue on the feedback repository.
func (c *GithubHTTPClient) CreateIssue(ctx context.Context, in CreateIssueRequest) (*GithubIssueDTO, error) {
	body, err := json.Marshal(in)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fmt.Sprintf("%s/repos/%s/issues", c.apiURL, c.repo), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("github request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("github rejected issue: %s: %s", resp.Status, string(b))
	}

	var issue GithubIssueDTO
	if err := json.NewDecoder(resp.Body).Decode(&issue); err != nil {
		return nil, fmt.Errorf("failed to decode github response: %w", err)
	}
	return &issue, nil
}
