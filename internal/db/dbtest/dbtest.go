// Package dbtest opens migrated in-memory databases for tests.
package dbtest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yigit/coursetracker/internal/app/migrations"
	"github.com/yigit/coursetracker/internal/config"
	"github.com/yigit/coursetracker/internal/db"
)

// NewExecutor returns an executor over a fresh, migrated SQLite database that
// is closed when the test ends.
func NewExecutor(t testing.TB) *db.Executor {
	t.Helper()
	return db.NewExecutor(NewProvider(t))
}

// NewProvider returns a provider over a fresh, migrated SQLite database
func NewProvider(t testing.TB) *db.Provider {
	t.Helper()

	p, err := db.NewProvider(context.Background(), &config.DatabaseConfig{
		Driver:      config.DriverSQLite,
		Path:        db.MemoryPath,
		PingTimeout: "1s",
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close() })

	require.NoError(t, migrations.NewMigrator(p.DB(), p.Dialect()).Migrate(context.Background()))
	return p
}
