package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"github.com/yigit/coursetracker/internal/config"
)

// MemoryPath opens a private in-memory SQLite database
const MemoryPath = ":memory:"

// openSQLite opens a single shared SQLite connection with foreign keys enforced
func openSQLite(ctx context.Context, cfg *config.DatabaseConfig) (*sql.DB, func() error, error) {
	sqlDB, err := sql.Open("sqlite", sqliteDSN(cfg.Path))
	if err != nil {
		return nil, nil, fmt.Errorf("open sqlite: %w", err)
	}

	// One connection: an in-memory database lives and dies with it
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)

	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, nil, fmt.Errorf("ping sqlite: %w", err)
	}

	return sqlDB, sqlDB.Close, nil
}

func sqliteDSN(path string) string {
	if path == "" || path == MemoryPath {
		path = "file::memory:"
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}
