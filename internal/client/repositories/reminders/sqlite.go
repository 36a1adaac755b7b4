package reminders

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bizilabs/streeek/internal/client/models"
	"github.com/bizilabs/streeek/internal/common"
	"github.com/bizilabs/streeek/internal/dbx"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Upsert inserts or replaces a reminder row by label.
func (r *SQLiteRepository) Upsert(ctx context.Context, row models.ReminderCache) error {
	query := `INSERT INTO reminders (label, repeat, hour, minute)
			VALUES (?, ?, ?, ?)
			ON CONFLICT(label) DO UPDATE SET repeat = excluded.repeat,
				hour = excluded.hour,
				minute = excluded.minute
	`
	_, err := r.db.ExecContext(ctx, query, row.Label, row.Repeat, row.Hour, row.Minute)
	if err != nil {
		return fmt.Errorf("failed to upsert reminder: %w", err)
	}
	return nil
}

// GetAll lists every reminder row.
func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.ReminderCache, error) {
	query := `SELECT label, repeat, hour, minute FROM reminders`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select reminders: %w", err)
	}
	defer rows.Close()

	var result []models.ReminderCache
	for rows.Next() {
		var item models.ReminderCache
		if err := rows.Scan(&item.Label, &item.Repeat, &item.Hour, &item.Minute); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Get returns one reminder row by label.
func (r *SQLiteRepository) Get(ctx context.Context, label string) (*models.ReminderCache, error) {
	query := `SELECT label, repeat, hour, minute FROM reminders WHERE label = ?`
	row := r.db.QueryRowContext(ctx, query, label)

	var item models.ReminderCache
	err := row.Scan(&item.Label, &item.Repeat, &item.Hour, &item.Minute)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select reminder: %w", err)
	}
	return &item, nil
}

// Delete removes a reminder row by label. It expects exactly one row to be affected.
func (r *SQLiteRepository) Delete(ctx context.Context, label string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM reminders WHERE label = ?`, label)
	if err != nil {
		return fmt.Errorf("failed to delete reminder: %w", err)
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if ra != 1 {
		return common.ErrNotFound
	}
	return nil
}

// DeleteAll removes every reminder row.
func (r *SQLiteRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM reminders`); err != nil {
		return fmt.Errorf("failed to clear reminders: %w", err)
	}
	return nil
}
