package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/bizilabs/streeek/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// HTTPClient talks JSON over HTTP to the Streeek backend. It owns the
// session token pair and transparently rotates it: expired access tokens are
// refreshed before a request, and an unauthorized response triggers one
// refresh-and-retry.
type HTTPClient struct {
	baseURL string
	http    *http.Client

	mu           sync.Mutex
	accessToken  string
	refreshToken string
}

// NewHTTPClient returns an HTTPClient for the given base URL.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// SetTokens installs a previously persisted session token pair.
func (c *HTTPClient) SetTokens(access, refresh string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accessToken = access
	c.refreshToken = refresh
}

// Tokens returns the current session token pair so callers can persist it.
func (c *HTTPClient) Tokens() (access, refresh string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.accessToken, c.refreshToken
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

// tokenExpired reports whether the token's exp claim is in the past. The
// signature is not verified here; the server remains the authority.
func tokenExpired(token string) bool {
	if token == "" {
		return true
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return true
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}

func (c *HTTPClient) refresh(ctx context.Context) error {
	c.mu.Lock()
	refreshToken := c.refreshToken
	c.mu.Unlock()

	if refreshToken == "" {
		return common.ErrUnauthorized
	}

	body, err := json.Marshal(map[string]string{"refresh_token": refreshToken})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/refresh", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("refresh request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return common.ErrRefreshTokenExpired
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("refresh failed: %s", resp.Status)
	}

	var pair TokenPairDTO
	if err := json.NewDecoder(resp.Body).Decode(&pair); err != nil {
		return fmt.Errorf("failed to decode token pair: %w", err)
	}

	c.mu.Lock()
	c.accessToken = pair.AccessToken
	c.refreshToken = pair.RefreshToken
	c.mu.Unlock()
	return nil
}

// doJSON performs one request against the backend, refreshing the session
// when the access token has expired or the server answers 401. A 404 yields
// (false, nil) so callers can represent not-found as success-with-absence.
func (c *HTTPClient) doJSON(ctx context.Context, method, path string, in, out any) (found bool, err error) {
	c.mu.Lock()
	access := c.accessToken
	c.mu.Unlock()

	if access != "" && tokenExpired(access) {
		if err := c.refresh(ctx); err != nil {
			return false, err
		}
	}

	resp, err := c.send(ctx, method, path, in)
	if err != nil {
		return false, err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		_ = resp.Body.Close()
		if err := c.refresh(ctx); err != nil {
			return false, err
		}
		resp, err = c.send(ctx, method, path, in)
		if err != nil {
			return false, err
		}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return false, nil
	case resp.StatusCode == http.StatusUnauthorized:
		return false, common.ErrUnauthorized
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return false, fmt.Errorf("server rejected %s %s: %s: %s", method, path, resp.Status, string(b))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return false, fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return true, nil
}

func (c *HTTPClient) send(ctx context.Context, method, path string, in any) (*http.Response, error) {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.mu.Lock()
	access := c.accessToken
	c.mu.Unlock()
	if access != "" {
		req.Header.Set(common.AuthorizationHeaderName, "Bearer "+access)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	return resp, nil
}

func (c *HTTPClient) GetAccountWithGithubID(ctx context.Context, githubID int64) (*AccountDTO, error) {
	var dto AccountDTO
	found, err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/accounts/github/%d", githubID), nil, &dto)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &dto, nil
}

func (c *HTTPClient) CreateAccount(ctx context.Context, req CreateAccountRequest) (*AccountDTO, error) {
	var out struct {
		Account AccountDTO   `json:"account"`
		Tokens  TokenPairDTO `json:"tokens"`
	}
	found, err := c.doJSON(ctx, http.MethodPost, "/accounts", req, &out)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("create account: %w", common.ErrInternal)
	}

	if out.Tokens.AccessToken != "" {
		c.SetTokens(out.Tokens.AccessToken, out.Tokens.RefreshToken)
	}
	return &out.Account, nil
}

func (c *HTTPClient) GetAccount(ctx context.Context, id int64) (*AccountDTO, error) {
	var dto AccountDTO
	found, err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/accounts/%d", id), nil, &dto)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &dto, nil
}

func (c *HTTPClient) GetAccountFull(ctx context.Context, id int64) (*AccountFullDTO, error) {
	var dto AccountFullDTO
	found, err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/accounts/%d/full", id), nil, &dto)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &dto, nil
}

func (c *HTTPClient) GetLeaderboard(ctx context.Context) ([]AccountLightDTO, error) {
	var dtos []AccountLightDTO
	if _, err := c.doJSON(ctx, http.MethodGet, "/leaderboard", nil, &dtos); err != nil {
		return nil, err
	}
	return dtos, nil
}
