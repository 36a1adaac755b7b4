package services

import (
	"context"
	"fmt"

	"github.com/bizilabs/streeek/internal/client/mappers"
	"github.com/bizilabs/streeek/internal/client/models"
	"github.com/bizilabs/streeek/internal/client/remote"
	"github.com/bizilabs/streeek/internal/client/repositories/leaderboard"
	"github.com/bizilabs/streeek/internal/logging"
)

// LeaderboardService maintains the cached reduced-account listing.
type LeaderboardService interface {
	// Refresh fetches the remote listing and replaces the cache with it.
	// On failure the previous cache stays intact.
	Refresh(ctx context.Context) error

	// List returns the cached listing in leaderboard order.
	List(ctx context.Context) ([]models.AccountLight, error)
}

type leaderboardService struct {
	client remote.Client
	repo   leaderboard.Repository
	log    logging.Logger
}

// NewLeaderboardService constructs a LeaderboardService.
func NewLeaderboardService(client remote.Client, repo leaderboard.Repository, log logging.Logger) LeaderboardService {
	return &leaderboardService{
		client: client,
		repo:   repo,
		log:    log.With("service", "leaderboard"),
	}
}

func (s *leaderboardService) Refresh(ctx context.Context) error {
	dtos, err := s.client.GetLeaderboard(ctx)
	if err != nil {
		return fmt.Errorf("leaderboard refresh failed: %w", err)
	}

	rows := make([]models.AccountLightCache, 0, len(dtos))
	for _, dto := range dtos {
		light, err := mappers.AccountLightToDomain(dto)
		if err != nil {
			return fmt.Errorf("leaderboard refresh failed: %w", err)
		}
		rows = append(rows, mappers.AccountLightToCache(*light))
	}
	if err := s.repo.ReplaceAll(ctx, rows); err != nil {
		return fmt.Errorf("failed to store leaderboard: %w", err)
	}
	s.log.Info(ctx, "leaderboard refreshed", "entries", len(rows))
	return nil
}

func (s *leaderboardService) List(ctx context.Context) ([]models.AccountLight, error) {
	rows, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read leaderboard: %w", err)
	}
	out := make([]models.AccountLight, 0, len(rows))
	for _, row := range rows {
		out = append(out, mappers.AccountLightFromCache(row))
	}
	return out, nil
}
