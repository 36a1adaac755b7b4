package leaderboard

import (
	"context"

	"github.com/bizilabs/streeek/internal/client/models"
)

// Repository stores the cached leaderboard listing (light account rows).
type Repository interface {
	// ReplaceAll swaps the whole listing for the given rows in one
	// transaction, preserving their order.
	ReplaceAll(ctx context.Context, rows []models.AccountLightCache) error

	// GetAll returns the cached listing in stored order.
	GetAll(ctx context.Context) ([]models.AccountLightCache, error)

	// DeleteAll clears the listing.
	DeleteAll(ctx context.Context) error
}
