package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var migrationsFS embed.FS

// RunMigrations applies every pending migration for driver ("sqlite" or
// "postgres").
func RunMigrations(db *sql.DB, driver string, logger *zap.Logger) error {
	source, err := iofs.New(migrationsFS, "migrations/"+migrationDir(driver))
	if err != nil {
		return fmt.Errorf("load migrations: %w", err)
	}

	var (
		instance database.Driver
		name     string
	)
	switch driver {
	case "postgres":
		instance, err = postgres.WithInstance(db, &postgres.Config{})
		name = "postgres"
	default:
		instance, err = sqlite3.WithInstance(db, &sqlite3.Config{})
		name = "sqlite3"
	}
	if err != nil {
		return fmt.Errorf("create migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, name, instance)
	if err != nil {
		return fmt.Errorf("init migrate: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}

	version, dirty, _ := m.Version()
	if dirty {
		logger.Warn("database migration is dirty", zap.Uint("version", version))
	} else {
		logger.Info("database migrated", zap.Uint("version", version))
	}

	return nil
}

func migrationDir(driver string) string {
	if driver == "postgres" {
		return "postgres"
	}
	return "sqlite"
}
