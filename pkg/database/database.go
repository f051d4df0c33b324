package database

import (
	"biblioteca/pkg/config"
	"biblioteca/pkg/logger"
	"biblioteca/pkg/models"
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Open connects to the configured database and brings the schema up to date.
func Open(cfg config.Database) (*gorm.DB, error) {
	db, err := Connect(cfg)
	if err != nil {
		return nil, err
	}

	if cfg.AutoMigrate {
		err = AutoMigrate(db)
	} else {
		err = Migrate(context.Background(), db, cfg.Driver)
	}
	if err != nil {
		Close(db)
		return nil, err
	}
	return db, nil
}

// Connect opens the connection pool, retrying while the server comes up.
func Connect(cfg config.Database) (*gorm.DB, error) {
	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("driver", cfg.Driver).
		Str("target", cfg.Target()).
		Msg("Connecting to database")

	attempts := max(cfg.ConnectRetries, 1)
	var db *gorm.DB
	for i := 0; i < attempts; i++ {
		db, err = gorm.Open(dialector, gormConfig())
		if err == nil {
			break
		}
		log.Warn().Err(err).
			Int("attempt", i+1).
			Int("max_attempts", attempts).
			Msg("Database connection attempt failed")
		if i < attempts-1 {
			time.Sleep(cfg.ConnectRetryDelay)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	log.Info().Msg("Database connection established successfully")
	return db, nil
}

// AutoMigrate creates the schema straight from the models. Used by tests and
// throwaway SQLite databases; deployments run the versioned migrations.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Author{}, &models.Book{}); err != nil {
		return fmt.Errorf("database migration failed: %w", err)
	}
	return nil
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ping reports whether the database answers within the context deadline.
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

func dialectorFor(cfg config.Database) (gorm.Dialector, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		return postgres.Open(cfg.DSN()), nil
	case config.DriverSQLite:
		return sqlite.Open(cfg.DSN()), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

func gormConfig() *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
		Logger: gormlogger.New(logger.NewWriter("gorm", zerolog.WarnLevel), gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	}
}
