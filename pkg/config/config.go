package config

import (
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type (
	Config struct {
		HTTP
		Database
		Search
		Log
	}

	HTTP struct {
		Port            int           `validate:"gt=0,lt=65536"`
		Host            string        `validate:"required"`
		ShutdownTimeout time.Duration `validate:"gt=0"`
		GinMode         string        `validate:"oneof=debug release test"`
	}

	Database struct {
		Driver     string `validate:"oneof=postgres sqlite"`
		URL        string
		Host       string `validate:"required_without=URL"`
		Port       int    `validate:"gt=0,lt=65536"`
		User       string
		Password   string
		Name       string `validate:"required_without=URL"`
		SQLitePath string `validate:"required_if=Driver sqlite"`

		MaxOpenConns    int           `validate:"gte=1"`
		MaxIdleConns    int           `validate:"gte=0"`
		ConnMaxLifetime time.Duration `validate:"gte=0"`

		ConnectRetries    int           `validate:"gte=1"`
		ConnectRetryDelay time.Duration `validate:"gte=0"`
		AutoMigrate       bool
		Seed              bool
	}

	Search struct {
		// EmptyIsNotFound makes a search with no matches answer 404 instead of [].
		EmptyIsNotFound bool
	}

	Log struct {
		Level  string `validate:"oneof=trace debug info warn error fatal panic disabled"`
		Format string `validate:"oneof=json console"`
	}
)

// Load reads the configuration from the environment and validates it.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("port", 8080)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout", "5s")
	v.SetDefault("gin_mode", "release")

	v.SetDefault("db_driver", DriverPostgres)
	v.SetDefault("database_url", "")
	v.SetDefault("db_host", "postgres")
	v.SetDefault("db_port", 5432)
	v.SetDefault("db_user", "program")
	v.SetDefault("db_password", "test")
	v.SetDefault("db_name", "library")
	v.SetDefault("db_sqlite_path", "library.db")
	v.SetDefault("db_max_open_conns", 25)
	v.SetDefault("db_max_idle_conns", 10)
	v.SetDefault("db_conn_max_lifetime", "5m")
	v.SetDefault("db_connect_retries", 10)
	v.SetDefault("db_connect_retry_delay", "5s")
	v.SetDefault("db_auto_migrate", false)
	v.SetDefault("db_seed", false)

	v.SetDefault("search_empty_not_found", true)

	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")

	cfg := &Config{
		HTTP: HTTP{
			Port:            v.GetInt("PORT"),
			Host:            v.GetString("HOST"),
			ShutdownTimeout: v.GetDuration("SHUTDOWN_TIMEOUT"),
			GinMode:         strings.ToLower(v.GetString("GIN_MODE")),
		},
		Database: Database{
			Driver:            strings.ToLower(v.GetString("DB_DRIVER")),
			URL:               v.GetString("DATABASE_URL"),
			Host:              v.GetString("DB_HOST"),
			Port:              v.GetInt("DB_PORT"),
			User:              v.GetString("DB_USER"),
			Password:          v.GetString("DB_PASSWORD"),
			Name:              v.GetString("DB_NAME"),
			SQLitePath:        v.GetString("DB_SQLITE_PATH"),
			MaxOpenConns:      v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:      v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime:   v.GetDuration("DB_CONN_MAX_LIFETIME"),
			ConnectRetries:    v.GetInt("DB_CONNECT_RETRIES"),
			ConnectRetryDelay: v.GetDuration("DB_CONNECT_RETRY_DELAY"),
			AutoMigrate:       v.GetBool("DB_AUTO_MIGRATE"),
			Seed:              v.GetBool("DB_SEED"),
		},
		Search: Search{
			EmptyIsNotFound: v.GetBool("SEARCH_EMPTY_NOT_FOUND"),
		},
		Log: Log{
			Level:  strings.ToLower(v.GetString("LOG_LEVEL")),
			Format: strings.ToLower(v.GetString("LOG_FORMAT")),
		},
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Addr is the listen address of the HTTP server.
func (h HTTP) Addr() string {
	return net.JoinHostPort(h.Host, fmt.Sprint(h.Port))
}

// DSN builds the connection string for the configured driver. For PostgreSQL an
// explicit DATABASE_URL wins over the discrete settings.
func (d Database) DSN() string {
	if d.Driver == DriverSQLite {
		return sqliteDSN(d.SQLitePath)
	}
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=disable",
		d.Host, d.User, d.Password, d.Name, d.Port)
}

// Target describes the database for logs without leaking credentials.
func (d Database) Target() string {
	if d.Driver == DriverSQLite {
		return d.SQLitePath
	}
	if d.URL != "" {
		u, err := url.Parse(d.URL)
		if err != nil {
			return "<unparseable DATABASE_URL>"
		}
		return u.Redacted()
	}
	return fmt.Sprintf("%s@%s:%d/%s", d.User, d.Host, d.Port, d.Name)
}

func sqliteDSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_foreign_keys=on"
}
