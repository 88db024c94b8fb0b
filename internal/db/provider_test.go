package db

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/coursetracker/internal/config"
)

func sqliteConfig() *config.DatabaseConfig {
	return &config.DatabaseConfig{
		Driver:      config.DriverSQLite,
		Path:        MemoryPath,
		PingTimeout: "1s",
	}
}

func TestNewProvider_UnsupportedDriver(t *testing.T) {
	_, err := NewProvider(context.Background(), &config.DatabaseConfig{Driver: "oracle"})
	assert.Error(t, err)
}

func TestProvider_EnsureLiveHealthy(t *testing.T) {
	opens := 0
	open := func(ctx context.Context, cfg *config.DatabaseConfig) (*sql.DB, func() error, error) {
		opens++
		return openSQLite(ctx, cfg)
	}

	p, err := NewProviderWithOpener(context.Background(), sqliteConfig(), open)
	require.NoError(t, err)
	defer p.Close()

	first := p.DB()
	require.NoError(t, p.EnsureLive(context.Background()))
	assert.Same(t, first, p.DB())
	assert.Equal(t, 1, opens)
	assert.Equal(t, SQLite.Name, p.Dialect().Name)
}

func TestProvider_EnsureLiveReconnects(t *testing.T) {
	opens := 0
	open := func(ctx context.Context, cfg *config.DatabaseConfig) (*sql.DB, func() error, error) {
		opens++
		return openSQLite(ctx, cfg)
	}

	p, err := NewProviderWithOpener(context.Background(), sqliteConfig(), open)
	require.NoError(t, err)
	defer p.Close()

	stale := p.DB()
	require.NoError(t, stale.Close())

	require.NoError(t, p.EnsureLive(context.Background()))
	assert.NotSame(t, stale, p.DB())
	assert.Equal(t, 2, opens)
	assert.NoError(t, p.DB().Ping())
}

func TestProvider_Close(t *testing.T) {
	p, err := NewProvider(context.Background(), sqliteConfig())
	require.NoError(t, err)

	require.NoError(t, p.Close())
	require.NoError(t, p.Close())
	assert.ErrorIs(t, p.EnsureLive(context.Background()), ErrProviderClosed)
}

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, "file::memory:?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", sqliteDSN(MemoryPath))
	assert.Equal(t, "data.db?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", sqliteDSN("data.db"))
	assert.Equal(t, "file:x.db?mode=rwc&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", sqliteDSN("file:x.db?mode=rwc"))
}
