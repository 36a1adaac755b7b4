package accounts

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/bizilabs/streeek/internal/client/models"
	"github.com/bizilabs/streeek/internal/common"
	"github.com/bizilabs/streeek/internal/dbx"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
// The account table is constrained to a single row (slot=1) so every save is
// a whole-row replace.
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Save upserts the single account row.
func (r *SQLiteRepository) Save(ctx context.Context, row models.AccountCache) error {
	level, err := marshalNullable(row.Level)
	if err != nil {
		return fmt.Errorf("failed to encode level: %w", err)
	}
	streak, err := marshalNullable(row.Streak)
	if err != nil {
		return fmt.Errorf("failed to encode streak: %w", err)
	}

	query := `INSERT INTO account (slot, id, github_id, username, email, bio, avatar_url, created_at, updated_at, points, level, streak, fcm_token)
			VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(slot) DO UPDATE SET id = excluded.id,
				github_id = excluded.github_id,
				username = excluded.username,
				email = excluded.email,
				bio = excluded.bio,
				avatar_url = excluded.avatar_url,
				created_at = excluded.created_at,
				updated_at = excluded.updated_at,
				points = excluded.points,
				level = excluded.level,
				streak = excluded.streak,
				fcm_token = excluded.fcm_token
	`
	_, err = r.db.ExecContext(ctx, query,
		row.ID, row.GithubID, row.Username, row.Email, row.Bio, row.AvatarURL,
		row.CreatedAt, row.UpdatedAt, row.Points, level, streak, row.FCMToken)
	if err != nil {
		return fmt.Errorf("failed to upsert account: %w", err)
	}
	return nil
}

// Get returns the cached account row.
func (r *SQLiteRepository) Get(ctx context.Context) (*models.AccountCache, error) {
	query := `SELECT id, github_id, username, email, bio, avatar_url, created_at, updated_at, points, level, streak, fcm_token
			FROM account WHERE slot = 1`
	row := r.db.QueryRowContext(ctx, query)

	var c models.AccountCache
	var level, streak sql.NullString
	err := row.Scan(&c.ID, &c.GithubID, &c.Username, &c.Email, &c.Bio, &c.AvatarURL,
		&c.CreatedAt, &c.UpdatedAt, &c.Points, &level, &streak, &c.FCMToken)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select account: %w", err)
	}

	if level.Valid && level.String != "" {
		c.Level = &models.LevelCache{}
		if err := json.Unmarshal([]byte(level.String), c.Level); err != nil {
			// corrupt optional column degrades to absence
			c.Level = nil
		}
	}
	if streak.Valid && streak.String != "" {
		c.Streak = &models.StreakCache{}
		if err := json.Unmarshal([]byte(streak.String), c.Streak); err != nil {
			c.Streak = nil
		}
	}
	return &c, nil
}

// Delete clears the account slot.
func (r *SQLiteRepository) Delete(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM account WHERE slot = 1`); err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	return nil
}

func marshalNullable[T any](v *T) (sql.NullString, error) {
	if v == nil {
		return sql.NullString{}, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(b), Valid: true}, nil
}
