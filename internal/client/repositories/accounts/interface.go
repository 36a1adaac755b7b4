package accounts

import (
	"context"

	"github.com/bizilabs/streeek/internal/client/models"
)

// Repository stores the single authoritative account cache row. The cache
// holds at most one account at a time: the signed-in user.
type Repository interface {
	// Save upserts the account row. The write is atomic: a concurrent
	// reader never observes a partially updated row.
	Save(ctx context.Context, row models.AccountCache) error

	// Get returns the cached account row, or common.ErrNotFound when the
	// slot is empty.
	Get(ctx context.Context) (*models.AccountCache, error)

	// Delete clears the slot. Deleting an empty slot is not an error.
	Delete(ctx context.Context) error
}
