package metadata

import (
	"context"
	"database/sql"
	"testing"

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
CREATE TABLE metadata (
  key TEXT PRIMARY KEY,
  value BLOB NOT NULL
);
`)
	require.NoError(t, err)

	return db
}

func TestSetGet(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "access_token", []byte("abc")))

	got, err := r.Get(ctx, "access_token")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), got)

	// overwrite
	require.NoError(t, r.Set(ctx, "access_token", []byte("def")))
	got, err = r.Get(ctx, "access_token")
	require.NoError(t, err)
	assert.Equal(t, []byte("def"), got)
}

func TestGet_MissingKeyIsNil(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)

	got, err := r.Get(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestDeleteAndClear(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "a", []byte("1")))
	require.NoError(t, r.Set(ctx, "b", []byte("2")))

	require.NoError(t, r.Delete(ctx, "a"))
	got, err := r.Get(ctx, "a")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, r.Clear(ctx))
	got, err = r.Get(ctx, "b")
	require.NoError(t, err)
	assert.Nil(t, got)
}
