package accounts

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/bizilabs/streeek/internal/client/models"
	"github.com/bizilabs/streeek/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE account (
  slot INTEGER PRIMARY KEY CHECK (slot = 1),
  id INTEGER NOT NULL,
  github_id INTEGER NOT NULL,
  username TEXT NOT NULL,
  email TEXT NOT NULL,
  bio TEXT NOT NULL DEFAULT '',
  avatar_url TEXT NOT NULL DEFAULT '',
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL,
  points INTEGER NOT NULL DEFAULT 0,
  level TEXT,
  streak TEXT,
  fcm_token TEXT NOT NULL DEFAULT ''
);
`)
	require.NoError(t, err)

	return db
}

func sampleRow() models.AccountCache {
	return models.AccountCache{
		ID:        7,
		GithubID:  42,
		Username:  "ana",
		Email:     "a@b.com",
		Bio:       "hi",
		AvatarURL: "u",
		CreatedAt: "2024-01-02T03:04:05Z",
		UpdatedAt: "2024-03-04T05:06:07Z",
		Points:    300,
		Level:     &models.LevelCache{ID: 2, Name: "apprentice", Number: 2, MinPoints: 250, MaxPoints: 500},
		Streak:    &models.StreakCache{Current: 2, Longest: 14, UpdatedAt: "2024-03-04T05:06:07Z"},
		FCMToken:  "tok",
	}
}

func TestSave_InsertAndReplace(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	row := sampleRow()
	require.NoError(t, r.Save(ctx, row))

	got, err := r.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, row, *got)

	// replacing with a different account reuses the single slot
	row2 := sampleRow()
	row2.ID = 8
	row2.Username = "ben"
	row2.Level = nil
	row2.Streak = nil
	require.NoError(t, r.Save(ctx, row2))

	got, err = r.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(8), got.ID)
	assert.Equal(t, "ben", got.Username)
	assert.Nil(t, got.Level)
	assert.Nil(t, got.Streak)

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM account`).Scan(&n))
	assert.Equal(t, 1, n, "the cache never holds more than one account")
}

func TestGet_EmptySlot(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)

	_, err := r.Get(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrNotFound))
}

func TestGet_CorruptLevelDegradesToAbsence(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Save(ctx, sampleRow()))
	_, err := db.Exec(`UPDATE account SET level = 'not-json' WHERE slot = 1`)
	require.NoError(t, err)

	got, err := r.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, got.Level)
	assert.NotNil(t, got.Streak, "other fields are untouched")
}

func TestDelete(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	// deleting an empty slot is fine
	require.NoError(t, r.Delete(ctx))

	require.NoError(t, r.Save(ctx, sampleRow()))
	require.NoError(t, r.Delete(ctx))

	_, err := r.Get(ctx)
	assert.True(t, errors.Is(err, common.ErrNotFound))
}

func TestSave_ExecError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO account").WillReturnError(errors.New("disk I/O error"))

	r := NewSQLiteRepository(db)
	err = r.Save(context.Background(), sampleRow())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to upsert account")
	require.NoError(t, mock.ExpectationsWereMet())
}
