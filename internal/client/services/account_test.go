package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/bizilabs/streeek/internal/client/alarms"
	"github.com/bizilabs/streeek/internal/client/remote"
	"github.com/bizilabs/streeek/internal/client/store"
	"github.com/bizilabs/streeek/internal/common"
	"github.com/bizilabs/streeek/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func testRepos(t *testing.T) *store.Repositories {
	t.Helper()
	repos, err := store.InitDatabase(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = repos.Close() })
	return repos
}

func ptr[T any](v T) *T { return &v }

// fakeRemote implements remote.Client with per-call hooks. Unset hooks
// report absence.
type fakeRemote struct {
	getWithGithub func(githubID int64) (*remote.AccountDTO, error)
	create        func(req remote.CreateAccountRequest) (*remote.AccountDTO, error)
	get           func(id int64) (*remote.AccountDTO, error)
	getFull       func(id int64) (*remote.AccountFullDTO, error)
	leaderboard   func() ([]remote.AccountLightDTO, error)
}

func (f *fakeRemote) Close() error { return nil }

func (f *fakeRemote) GetAccountWithGithubID(_ context.Context, githubID int64) (*remote.AccountDTO, error) {
	if f.getWithGithub == nil {
		return nil, nil
	}
	return f.getWithGithub(githubID)
}

func (f *fakeRemote) CreateAccount(_ context.Context, req remote.CreateAccountRequest) (*remote.AccountDTO, error) {
	return f.create(req)
}

func (f *fakeRemote) GetAccount(_ context.Context, id int64) (*remote.AccountDTO, error) {
	if f.get == nil {
		return nil, nil
	}
	return f.get(id)
}

func (f *fakeRemote) GetAccountFull(_ context.Context, id int64) (*remote.AccountFullDTO, error) {
	if f.getFull == nil {
		return nil, nil
	}
	return f.getFull(id)
}

func (f *fakeRemote) GetLeaderboard(_ context.Context) ([]remote.AccountLightDTO, error) {
	if f.leaderboard == nil {
		return nil, nil
	}
	return f.leaderboard()
}

// fakeScheduler records alarm registrations in memory.
type fakeScheduler struct {
	mu         sync.Mutex
	registered map[alarms.Key]struct{}
	exact      bool
}

func newFakeScheduler() *fakeScheduler {
	return &fakeScheduler{registered: map[alarms.Key]struct{}{}, exact: true}
}

func (f *fakeScheduler) Register(_ context.Context, key alarms.Key) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.registered[key] = struct{}{}
	return nil
}

func (f *fakeScheduler) Cancel(_ context.Context, key alarms.Key) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.registered, key)
	return nil
}

func (f *fakeScheduler) ExactSchedulingPermitted() bool { return f.exact }

func (f *fakeScheduler) keys() []alarms.Key {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]alarms.Key, 0, len(f.registered))
	for k := range f.registered {
		out = append(out, k)
	}
	return out
}

func accountDTO(id, githubID int64) *remote.AccountDTO {
	return &remote.AccountDTO{
		ID:        ptr(id),
		GithubID:  ptr(githubID),
		Username:  "octocat",
		Email:     "octo@example.com",
		AvatarURL: "https://avatars.example.com/1",
		CreatedAt: "2024-03-01T10:00:00",
		UpdatedAt: "2024-03-01T10:00:00",
	}
}

func TestAccountService_ProbeMissDoesNotTouchCache(t *testing.T) {
	repos := testRepos(t)
	svc := NewAccountService(&fakeRemote{}, repos.Accounts, repos.Metadata, testLogger())

	account, err := svc.GetAccountWithGithubID(context.Background(), 42)
	require.NoError(t, err)
	assert.Nil(t, account)

	_, err = repos.Accounts.Get(context.Background())
	assert.ErrorIs(t, err, common.ErrNotFound)
	assert.Nil(t, svc.Current())
}

func TestAccountService_CreatePublishesAndPersists(t *testing.T) {
	repos := testRepos(t)
	client := &fakeRemote{
		create: func(req remote.CreateAccountRequest) (*remote.AccountDTO, error) {
			assert.Equal(t, int64(42), req.GithubID)
			return accountDTO(1, req.GithubID), nil
		},
	}
	svc := NewAccountService(client, repos.Accounts, repos.Metadata, testLogger())

	account, err := svc.CreateAccount(context.Background(), 42, "octocat", "octo@example.com", "", "https://avatars.example.com/1")
	require.NoError(t, err)
	require.NotNil(t, account)
	assert.Equal(t, int64(1), account.ID)

	row, err := repos.Accounts.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), row.ID)

	current := svc.Current()
	require.NotNil(t, current)
	assert.Equal(t, "octocat", current.Username)
}

func TestAccountService_SyncPublishesFreshValue(t *testing.T) {
	repos := testRepos(t)
	client := &fakeRemote{
		create: func(req remote.CreateAccountRequest) (*remote.AccountDTO, error) {
			return accountDTO(1, req.GithubID), nil
		},
		getFull: func(id int64) (*remote.AccountFullDTO, error) {
			return &remote.AccountFullDTO{
				Account: *accountDTO(id, 42),
				Points:  ptr(int64(250)),
				Level: &remote.LevelDTO{
					ID: ptr(int64(3)), Name: "Contributor", Number: 3,
					MinPoints: 200, MaxPoints: 400,
				},
				Streak: &remote.StreakDTO{Current: 4, Longest: 9, UpdatedAt: "2024-03-02T08:00:00"},
			}, nil
		},
	}
	svc := NewAccountService(client, repos.Accounts, repos.Metadata, testLogger())

	_, err := svc.CreateAccount(context.Background(), 42, "octocat", "octo@example.com", "", "")
	require.NoError(t, err)

	ch, cancel := svc.Subscribe()
	defer cancel()
	<-ch // current value on subscribe

	require.NoError(t, svc.SyncAccount(context.Background()))

	fresh := <-ch
	require.NotNil(t, fresh)
	assert.Equal(t, int64(250), fresh.Points)
	require.NotNil(t, fresh.Level)
	assert.Equal(t, "Contributor", fresh.Level.Name)
	require.NotNil(t, fresh.Streak)
	assert.Equal(t, int64(4), fresh.Streak.Current)

	row, err := repos.Accounts.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(250), row.Points)
}

func TestAccountService_SyncWithoutAccount(t *testing.T) {
	repos := testRepos(t)
	svc := NewAccountService(&fakeRemote{}, repos.Accounts, repos.Metadata, testLogger())

	err := svc.SyncAccount(context.Background())
	assert.ErrorIs(t, err, common.ErrUnauthorized)
}

func TestAccountService_SyncFailureKeepsLastKnownGood(t *testing.T) {
	repos := testRepos(t)
	remoteErr := errors.New("backend down")
	client := &fakeRemote{
		create: func(req remote.CreateAccountRequest) (*remote.AccountDTO, error) {
			return accountDTO(1, req.GithubID), nil
		},
		getFull: func(id int64) (*remote.AccountFullDTO, error) {
			return nil, remoteErr
		},
	}
	svc := NewAccountService(client, repos.Accounts, repos.Metadata, testLogger())

	_, err := svc.CreateAccount(context.Background(), 42, "octocat", "octo@example.com", "", "")
	require.NoError(t, err)
	before := svc.Current()

	err = svc.SyncAccount(context.Background())
	assert.ErrorIs(t, err, remoteErr)
	assert.Equal(t, before, svc.Current())

	row, err := repos.Accounts.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), row.Points)
}

func TestAccountService_CancelledSyncWritesNothing(t *testing.T) {
	repos := testRepos(t)
	ctx, cancel := context.WithCancel(context.Background())
	client := &fakeRemote{
		create: func(req remote.CreateAccountRequest) (*remote.AccountDTO, error) {
			return accountDTO(1, req.GithubID), nil
		},
		getFull: func(id int64) (*remote.AccountFullDTO, error) {
			// Cancellation races the in-flight fetch; the response still
			// arrives but must no longer be applied.
			cancel()
			return &remote.AccountFullDTO{Account: *accountDTO(id, 42), Points: ptr(int64(999))}, nil
		},
	}
	svc := NewAccountService(client, repos.Accounts, repos.Metadata, testLogger())

	_, err := svc.CreateAccount(context.Background(), 42, "octocat", "octo@example.com", "", "")
	require.NoError(t, err)

	err = svc.SyncAccount(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, int64(0), svc.Current().Points)
}

func TestAccountService_LogoutClearsEverything(t *testing.T) {
	repos := testRepos(t)
	client := &fakeRemote{
		create: func(req remote.CreateAccountRequest) (*remote.AccountDTO, error) {
			return accountDTO(1, req.GithubID), nil
		},
	}
	svc := NewAccountService(client, repos.Accounts, repos.Metadata, testLogger())

	_, err := svc.CreateAccount(context.Background(), 42, "octocat", "octo@example.com", "", "")
	require.NoError(t, err)
	require.NoError(t, repos.Metadata.Set(context.Background(), "access_token", []byte("tok")))

	ch, cancel := svc.Subscribe()
	defer cancel()
	<-ch

	require.NoError(t, svc.Logout(context.Background()))

	assert.Nil(t, <-ch)
	assert.Nil(t, svc.Current())

	_, err = repos.Accounts.Get(context.Background())
	assert.ErrorIs(t, err, common.ErrNotFound)

	tok, err := repos.Metadata.Get(context.Background(), "access_token")
	require.NoError(t, err)
	assert.Nil(t, tok)
}

func TestAccountService_RestoreSeedsFromCacheAndInstallationID(t *testing.T) {
	repos := testRepos(t)
	client := &fakeRemote{
		create: func(req remote.CreateAccountRequest) (*remote.AccountDTO, error) {
			return accountDTO(7, req.GithubID), nil
		},
	}

	first := NewAccountService(client, repos.Accounts, repos.Metadata, testLogger())
	require.NoError(t, first.Restore(context.Background()))
	assert.Nil(t, first.Current())

	installID, err := repos.Metadata.Get(context.Background(), common.InstallationIDKey)
	require.NoError(t, err)
	require.NotEmpty(t, installID)

	_, err = first.CreateAccount(context.Background(), 42, "octocat", "octo@example.com", "", "")
	require.NoError(t, err)

	// A new service over the same cache comes up signed in, with the
	// installation id untouched.
	second := NewAccountService(client, repos.Accounts, repos.Metadata, testLogger())
	require.NoError(t, second.Restore(context.Background()))

	current := second.Current()
	require.NotNil(t, current)
	assert.Equal(t, int64(7), current.ID)

	again, err := repos.Metadata.Get(context.Background(), common.InstallationIDKey)
	require.NoError(t, err)
	assert.Equal(t, installID, again)
}
