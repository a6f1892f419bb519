// Package db opens the relational store behind the todo API.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/hmans/todoql/internal/config"
	"github.com/hmans/todoql/internal/logging"
	"github.com/hmans/todoql/internal/todo"
)

const (
	pingTimeout   = 3 * time.Second
	slowThreshold = 200 * time.Millisecond
)

// Now is the clock used for created_at/updated_at. Values are UTC with
// millisecond precision so they survive a round trip through every driver.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

// Open connects to the database described by cfg and verifies the connection.
func Open(cfg config.DatabaseConfig, log zerolog.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case config.DriverSQLite:
		dialector = sqlite.Open(cfg.URL)
	case config.DriverPostgres:
		dialector = postgres.Open(cfg.URL)
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}

	gdb, err := gorm.Open(dialector, &gorm.Config{
		NowFunc: Now,
		Logger: logging.GormLogger{
			Logger:        log.With().Str("component", "gorm").Logger(),
			SlowThreshold: slowThreshold,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%s open: %w", cfg.Driver, err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("%s handle: %w", cfg.Driver, err)
	}
	if cfg.Driver == config.DriverSQLite {
		// SQLite allows one writer; a single connection also keeps
		// ":memory:" databases from splitting across the pool.
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(10)
		sqlDB.SetMaxIdleConns(2)
		sqlDB.SetConnMaxIdleTime(5 * time.Minute)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("%s ping: %w", cfg.Driver, err)
	}

	log.Debug().
		Str("driver", cfg.Driver).
		Msg("connected to database")

	return gdb, nil
}

// Migrate creates or upgrades the tables used by the todo store.
func Migrate(gdb *gorm.DB) error {
	if err := gdb.AutoMigrate(&todo.Todo{}); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// Close releases the connection pool behind gdb.
func Close(gdb *gorm.DB) error {
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
