package leaderboard

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/bizilabs/streeek/internal/client/models"
	"github.com/bizilabs/streeek/internal/dbx"
)

// SQLiteRepository implements Repository over a *sql.DB. ReplaceAll needs to
// open its own transaction, so unlike the other repositories it is bound to
// the database handle rather than a DBTX.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given database.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// ReplaceAll swaps the whole listing inside one transaction.
func (r *SQLiteRepository) ReplaceAll(ctx context.Context, rows []models.AccountLightCache) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM leaderboard`); err != nil {
			return fmt.Errorf("failed to clear leaderboard: %w", err)
		}
		query := `INSERT INTO leaderboard (position, id, username, avatar_url, created_at, fcm_token)
				VALUES (?, ?, ?, ?, ?, ?)`
		for i, row := range rows {
			if _, err := tx.ExecContext(ctx, query, i, row.ID, row.Username, row.AvatarURL, row.CreatedAt, row.FCMToken); err != nil {
				return fmt.Errorf("failed to insert leaderboard row: %w", err)
			}
		}
		return nil
	})
}

// GetAll lists the cached leaderboard in stored order.
func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.AccountLightCache, error) {
	query := `SELECT id, username, avatar_url, created_at, fcm_token FROM leaderboard ORDER BY position`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select leaderboard: %w", err)
	}
	defer rows.Close()

	var result []models.AccountLightCache
	for rows.Next() {
		var item models.AccountLightCache
		if err := rows.Scan(&item.ID, &item.Username, &item.AvatarURL, &item.CreatedAt, &item.FCMToken); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// DeleteAll clears the listing.
func (r *SQLiteRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM leaderboard`); err != nil {
		return fmt.Errorf("failed to clear leaderboard: %w", err)
	}
	return nil
}
