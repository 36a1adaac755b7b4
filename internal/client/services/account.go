// Package services contains the application services of the Streeek client.
// This file implements the account service: the single authoritative account
// slot reconciled across the remote backend and the local cache, exposed as
// a hot latest-value stream.
package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/bizilabs/streeek/internal/client/mappers"
	"github.com/bizilabs/streeek/internal/client/models"
	"github.com/bizilabs/streeek/internal/client/remote"
	"github.com/bizilabs/streeek/internal/client/repositories/accounts"
	"github.com/bizilabs/streeek/internal/client/repositories/metadata"
	"github.com/bizilabs/streeek/internal/common"
	"github.com/bizilabs/streeek/internal/logging"
	"github.com/bizilabs/streeek/internal/streamx"
	"github.com/google/uuid"
)

// AccountService reconciles the signed-in account across the remote source
// of truth and the local cache.
//
// Contract:
//   - Subscribe/Current: observe the account slot; nil means signed out.
//   - GetAccountWithGithubID: read-only remote probe, (nil, nil) on miss.
//   - CreateAccount: remote create-or-link, write-through, publish.
//   - GetAccount: fetch by internal id, write-through, publish.
//   - SyncAccount: fetch the authoritative record, write-through, publish.
//     Callers observe the fresh value on the stream, not a return value.
//   - Logout: clear the cache row and publish absence.
//
// All methods honor context cancellation: a cancelled operation performs no
// further cache writes or stream publications.
type AccountService interface {
	Subscribe() (<-chan *models.Account, func())
	Current() *models.Account
	Restore(ctx context.Context) error
	GetAccountWithGithubID(ctx context.Context, githubID int64) (*models.Account, error)
	CreateAccount(ctx context.Context, githubID int64, username, email, bio, avatarURL string) (*models.Account, error)
	GetAccount(ctx context.Context, id int64) (*models.Account, error)
	SyncAccount(ctx context.Context) error
	Logout(ctx context.Context) error
}

type accountService struct {
	client   remote.Client
	accounts accounts.Repository
	meta     metadata.Repository
	log      logging.Logger

	// writeMu serializes the write-through path so racing syncs resolve
	// last-writer-wins and the cache row plus stream stay consistent.
	writeMu sync.Mutex
	stream  *streamx.Latest[*models.Account]
}

// NewAccountService constructs an AccountService bound to the given remote
// client and repositories.
func NewAccountService(client remote.Client, accountsRepo accounts.Repository, meta metadata.Repository, log logging.Logger) AccountService {
	return &accountService{
		client:   client,
		accounts: accountsRepo,
		meta:     meta,
		log:      log.With("service", "account"),
		stream:   streamx.NewLatest[*models.Account](nil),
	}
}

// Subscribe registers a stream observer. The current value arrives
// immediately, then every later change, including the transition to nil on
// logout.
func (s *accountService) Subscribe() (<-chan *models.Account, func()) {
	return s.stream.Subscribe()
}

// Current returns the latest published account, or nil when signed out.
func (s *accountService) Current() *models.Account {
	return s.stream.Get()
}

// Restore seeds the stream from the cache row and makes sure the client
// installation id exists. An empty cache is not an error.
func (s *accountService) Restore(ctx context.Context) error {
	if err := s.ensureInstallationID(ctx); err != nil {
		return err
	}

	row, err := s.accounts.Get(ctx)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to restore account: %w", err)
	}

	account := mappers.AccountFromCache(*row)
	s.stream.Publish(&account)
	s.log.Info(ctx, "account restored from cache", "id", account.ID, "username", account.Username)
	return nil
}

func (s *accountService) ensureInstallationID(ctx context.Context) error {
	existing, err := s.meta.Get(ctx, common.InstallationIDKey)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}
	return s.meta.Set(ctx, common.InstallationIDKey, []byte(uuid.NewString()))
}

// GetAccountWithGithubID probes the backend for an account linked to the
// given GitHub identity. It never mutates local state.
func (s *accountService) GetAccountWithGithubID(ctx context.Context, githubID int64) (*models.Account, error) {
	dto, err := s.client.GetAccountWithGithubID(ctx, githubID)
	if err != nil {
		return nil, fmt.Errorf("account lookup failed: %w", err)
	}
	if dto == nil {
		return nil, nil
	}
	return mappers.AccountToDomain(*dto)
}

// CreateAccount creates or links an account remotely, then writes it through
// to the cache and publishes it.
func (s *accountService) CreateAccount(ctx context.Context, githubID int64, username, email, bio, avatarURL string) (*models.Account, error) {
	dto, err := s.client.CreateAccount(ctx, remote.CreateAccountRequest{
		GithubID:  githubID,
		Username:  username,
		Email:     email,
		Bio:       bio,
		AvatarURL: avatarURL,
	})
	if err != nil {
		return nil, fmt.Errorf("account creation failed: %w", err)
	}

	account, err := mappers.AccountToDomain(*dto)
	if err != nil {
		return nil, err
	}
	if err := s.writeThrough(ctx, account); err != nil {
		return nil, err
	}
	s.log.Info(ctx, "account created", "id", account.ID, "username", account.Username)
	return account, nil
}

// GetAccount fetches an account by internal id and writes it through.
func (s *accountService) GetAccount(ctx context.Context, id int64) (*models.Account, error) {
	dto, err := s.client.GetAccount(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("account fetch failed: %w", err)
	}
	if dto == nil {
		return nil, fmt.Errorf("account %d: %w", id, common.ErrNotFound)
	}

	account, err := mappers.AccountToDomain(*dto)
	if err != nil {
		return nil, err
	}
	if err := s.writeThrough(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

// SyncAccount fetches the authoritative record, including derived points,
// level, and streak, and writes it through. On failure the last-known-good
// cached value stays published.
func (s *accountService) SyncAccount(ctx context.Context) error {
	current := s.stream.Get()
	if current == nil {
		return common.ErrUnauthorized
	}

	dto, err := s.client.GetAccountFull(ctx, current.ID)
	if err != nil {
		return fmt.Errorf("account sync failed: %w", err)
	}
	if dto == nil {
		return fmt.Errorf("account %d: %w", current.ID, common.ErrNotFound)
	}

	account, err := mappers.AccountFullToDomain(*dto)
	if err != nil {
		return fmt.Errorf("account sync failed: %w", err)
	}
	if err := s.writeThrough(ctx, account); err != nil {
		return err
	}
	s.log.Info(ctx, "account synced", "id", account.ID, "points", account.Points)
	return nil
}

// Logout clears the cache row and session metadata and publishes absence.
func (s *accountService) Logout(ctx context.Context) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := s.accounts.Delete(ctx); err != nil {
		return fmt.Errorf("failed to clear account: %w", err)
	}
	if err := s.meta.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear metadata: %w", err)
	}
	s.stream.Publish(nil)
	s.log.Info(ctx, "logged out")
	return nil
}

// writeThrough persists the account row and republishes the stream. A
// cancelled context stops the write before it reaches the cache.
func (s *accountService) writeThrough(ctx context.Context, account *models.Account) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := s.accounts.Save(ctx, mappers.AccountToCache(*account)); err != nil {
		return fmt.Errorf("failed to persist account: %w", err)
	}
	s.stream.Publish(account)
	return nil
}
