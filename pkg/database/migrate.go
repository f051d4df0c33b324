package database

import (
	"context"
	"embed"
	"fmt"
	"sync"

	"biblioteca/pkg/config"
	"biblioteca/pkg/logger"

	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrationsFS embed.FS

const MigrationTableName = "schema_migrations"

// goose keeps its settings in package globals.
var gooseMu sync.Mutex

// Migrate applies all pending migrations for the given driver.
func Migrate(ctx context.Context, db *gorm.DB, driver string) error {
	return RunMigrations(ctx, db, driver, "up")
}

// RunMigrations executes a goose command (up, down, status, version) against db.
func RunMigrations(ctx context.Context, db *gorm.DB, driver, command string) error {
	dialect, dir, err := migrationSource(driver)
	if err != nil {
		return err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(migrationsFS)
	goose.SetLogger(logger.NewWriter("goose", zerolog.InfoLevel))
	goose.SetTableName(MigrationTableName)
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}

	log.Info().Str("command", command).Str("dialect", dialect).Msg("Running migrations")

	switch command {
	case "up":
		err = goose.UpContext(ctx, sqlDB, dir)
	case "down":
		err = goose.DownContext(ctx, sqlDB, dir)
	case "status":
		err = goose.StatusContext(ctx, sqlDB, dir)
	case "version":
		err = goose.VersionContext(ctx, sqlDB, dir)
	default:
		return fmt.Errorf("unknown migration command %q", command)
	}
	if err != nil {
		return fmt.Errorf("migration %s failed: %w", command, err)
	}
	return nil
}

// SchemaVersion returns the latest applied migration version.
func SchemaVersion(ctx context.Context, db *gorm.DB, driver string) (int64, error) {
	dialect, _, err := migrationSource(driver)
	if err != nil {
		return 0, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return 0, fmt.Errorf("failed to get database instance: %w", err)
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetTableName(MigrationTableName)
	if err := goose.SetDialect(dialect); err != nil {
		return 0, fmt.Errorf("failed to set dialect: %w", err)
	}
	return goose.GetDBVersionContext(ctx, sqlDB)
}

func migrationSource(driver string) (dialect, dir string, err error) {
	switch driver {
	case config.DriverPostgres:
		return "postgres", "migrations/postgres", nil
	case config.DriverSQLite:
		return "sqlite3", "migrations/sqlite", nil
	default:
		return "", "", fmt.Errorf("no migrations for database driver %q", driver)
	}
}
