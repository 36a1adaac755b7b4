package reminders

import (
	"context"

	"github.com/bizilabs/streeek/internal/client/models"
)

// Repository stores reminder cache rows keyed by label.
type Repository interface {
	// Upsert inserts a reminder row or replaces the row with the same label.
	Upsert(ctx context.Context, row models.ReminderCache) error

	// GetAll returns all reminder rows.
	GetAll(ctx context.Context) ([]models.ReminderCache, error)

	// Get returns the row with the given label, or common.ErrNotFound.
	Get(ctx context.Context, label string) (*models.ReminderCache, error)

	// Delete removes the row with the given label. Expects the row to exist.
	Delete(ctx context.Context, label string) error

	// DeleteAll removes every reminder row.
	DeleteAll(ctx context.Context) error
}
