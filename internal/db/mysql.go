package db

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/yigit/coursetracker/internal/config"
)

// openMySQL connects to the MySQL schema the course tracker originally ran on
func openMySQL(ctx context.Context, cfg *config.DatabaseConfig) (*sql.DB, func() error, error) {
	port := cfg.Port
	if port == "" {
		port = "3306"
	}

	myCfg := mysql.NewConfig()
	myCfg.User = cfg.User
	myCfg.Passwd = cfg.Password
	myCfg.Net = "tcp"
	myCfg.Addr = net.JoinHostPort(cfg.Host, port)
	myCfg.DBName = cfg.DBName
	myCfg.ParseTime = true
	// Report matched rows so an UPDATE writing the current value still counts
	myCfg.ClientFoundRows = true

	connector, err := mysql.NewConnector(myCfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build mysql connector: %w", err)
	}

	sqlDB := sql.OpenDB(connector)
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if maxLifetime, err := time.ParseDuration(cfg.ConnMaxLifetime); err == nil {
		sqlDB.SetConnMaxLifetime(maxLifetime)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		sqlDB.Close()
		return nil, nil, fmt.Errorf("failed to establish database connection: %w", err)
	}

	return sqlDB, sqlDB.Close, nil
}
