package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/yigit/coursetracker/internal/config"
	"github.com/yigit/coursetracker/internal/pkg/logger"
)

// ErrProviderClosed is returned once Close has been called
var ErrProviderClosed = errors.New("database provider is closed")

// OpenFunc opens a handle for a driver. The release func frees every resource
// behind the handle, including pools the *sql.DB does not own.
type OpenFunc func(ctx context.Context, cfg *config.DatabaseConfig) (*sql.DB, func() error, error)

var openers = map[string]OpenFunc{
	config.DriverPostgres: openPostgres,
	config.DriverMySQL:    openMySQL,
	config.DriverSQLite:   openSQLite,
}

// Provider owns the single live database handle of the process and
// re-establishes it when the server drops the connection.
type Provider struct {
	mu          sync.RWMutex
	db          *sql.DB
	release     func() error
	closed      bool
	cfg         config.DatabaseConfig
	open        OpenFunc
	dialect     Dialect
	pingTimeout time.Duration
}

// NewProvider opens the configured database
func NewProvider(ctx context.Context, cfg *config.DatabaseConfig) (*Provider, error) {
	open, ok := openers[cfg.Driver]
	if !ok {
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
	return NewProviderWithOpener(ctx, cfg, open)
}

// NewProviderWithOpener opens the database through a custom opener
func NewProviderWithOpener(ctx context.Context, cfg *config.DatabaseConfig, open OpenFunc) (*Provider, error) {
	dialect, err := DialectFor(cfg.Driver)
	if err != nil {
		return nil, err
	}

	pingTimeout, err := time.ParseDuration(cfg.PingTimeout)
	if err != nil || pingTimeout <= 0 {
		pingTimeout = 5 * time.Second
	}

	handle, release, err := open(ctx, cfg)
	if err != nil {
		return nil, err
	}

	logger.Info().Str("driver", cfg.Driver).Msg("Database connection established")

	return &Provider{
		db:          handle,
		release:     release,
		cfg:         *cfg,
		open:        open,
		dialect:     dialect,
		pingTimeout: pingTimeout,
	}, nil
}

// DB returns the current handle
func (p *Provider) DB() *sql.DB {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.db
}

// Dialect returns the SQL dialect of the open database
func (p *Provider) Dialect() Dialect {
	return p.dialect
}

// EnsureLive pings the database and replaces the handle when the ping fails.
// Concurrent callers observing the same dead handle reconnect only once.
func (p *Provider) EnsureLive(ctx context.Context) error {
	p.mu.RLock()
	current, closed := p.db, p.closed
	p.mu.RUnlock()
	if closed {
		return ErrProviderClosed
	}

	pingCtx, cancel := context.WithTimeout(ctx, p.pingTimeout)
	err := current.PingContext(pingCtx)
	cancel()
	if err == nil {
		return nil
	}

	logger.Ctx(ctx).Warn().Err(err).Str("driver", p.cfg.Driver).Msg("Database ping failed, reconnecting")

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrProviderClosed
	}
	if p.db != current {
		return nil
	}

	fresh, release, err := p.open(ctx, &p.cfg)
	if err != nil {
		return fmt.Errorf("failed to reconnect to database: %w", err)
	}

	if p.release != nil {
		if err := p.release(); err != nil {
			logger.Warn().Err(err).Msg("Failed to close stale database handle")
		}
	}
	p.db, p.release = fresh, release

	logger.Info().Str("driver", p.cfg.Driver).Msg("Database connection re-established")
	return nil
}

// Close releases the handle. Further EnsureLive calls fail.
func (p *Provider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true

	if p.release != nil {
		return p.release()
	}
	return p.db.Close()
}
