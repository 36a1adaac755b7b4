// Package store opens the local sqlite cache, applies migrations, and wires
// the per-entity repositories together.
package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/bizilabs/streeek/internal/client/migrations"
	"github.com/bizilabs/streeek/internal/client/repositories/accounts"
	"github.com/bizilabs/streeek/internal/client/repositories/leaderboard"
	"github.com/bizilabs/streeek/internal/client/repositories/metadata"
	"github.com/bizilabs/streeek/internal/client/repositories/reminders"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

// Repositories bundles every local cache repository plus the database
// handle they share.
type Repositories struct {
	DB          *sql.DB
	Accounts    accounts.Repository
	Leaderboard leaderboard.Repository
	Reminders   reminders.Repository
	Metadata    metadata.Repository
}

// RunMigrations applies the embedded goose migrations.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// InitDatabase opens (creating if necessary) the cache database at dsn,
// migrates it, and returns the wired repositories.
func InitDatabase(ctx context.Context, dsn string) (*Repositories, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Repositories{
		DB:          db,
		Accounts:    accounts.NewSQLiteRepository(db),
		Leaderboard: leaderboard.NewSQLiteRepository(db),
		Reminders:   reminders.NewSQLiteRepository(db),
		Metadata:    metadata.NewSQLiteRepository(db),
	}, nil
}

// Close releases the underlying database handle.
func (r *Repositories) Close() error {
	return r.DB.Close()
}
