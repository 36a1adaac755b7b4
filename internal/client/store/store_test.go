package store

import (
	"context"
	"testing"

	"github.com/bizilabs/streeek/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitDatabase_MigratesAndWires(t *testing.T) {
	ctx := context.Background()

	repos, err := InitDatabase(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = repos.Close() })

	// every table exists and is usable through its repository
	require.NoError(t, repos.Metadata.Set(ctx, "k", []byte("v")))

	require.NoError(t, repos.Reminders.Upsert(ctx, models.ReminderCache{
		Label: "standup", Repeat: "1", Hour: 9, Minute: 0,
	}))

	require.NoError(t, repos.Accounts.Save(ctx, models.AccountCache{
		ID: 1, GithubID: 2, Username: "ana", Email: "a@b.com",
		CreatedAt: "2024-01-02T03:04:05Z", UpdatedAt: "2024-01-02T03:04:05Z",
	}))

	got, err := repos.Accounts.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ana", got.Username)
}

func TestInitDatabase_MigrationsAreIdempotent(t *testing.T) {
	ctx := context.Background()

	dsn := "file:store_idempotent?mode=memory&cache=shared"
	repos, err := InitDatabase(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = repos.Close() })

	require.NoError(t, RunMigrations(ctx, repos.DB), "re-running migrations must be a no-op")
}
