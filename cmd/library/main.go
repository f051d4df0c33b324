package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"biblioteca/pkg/config"
	"biblioteca/pkg/database"
	"biblioteca/pkg/handlers"
	"biblioteca/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const usage = `usage: library [serve | migrate [up|down|status|version]]`

func main() {
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger.Init(cfg.Log.Level, cfg.Log.Format)
	if envErr != nil && !errors.Is(envErr, os.ErrNotExist) {
		log.Warn().Err(envErr).Msg("Failed to load .env file")
	}

	cmd, migrateCmd, err := parseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	switch cmd {
	case "migrate":
		err = migrate(cfg, migrateCmd)
	default:
		err = serve(cfg)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("Library service failed")
	}
}

func parseArgs(args []string) (cmd, migrateCmd string, err error) {
	if len(args) == 0 {
		return "serve", "", nil
	}
	switch args[0] {
	case "serve":
		if len(args) > 1 {
			return "", "", errors.New("serve takes no arguments")
		}
		return "serve", "", nil
	case "migrate":
		migrateCmd = "up"
		if len(args) > 1 {
			migrateCmd = args[1]
		}
		switch migrateCmd {
		case "up", "down", "status", "version":
			return "migrate", migrateCmd, nil
		}
		return "", "", fmt.Errorf("unknown migrate command %q", migrateCmd)
	}
	return "", "", fmt.Errorf("unknown command %q", args[0])
}

func migrate(cfg *config.Config, command string) error {
	db, err := database.Connect(cfg.Database)
	if err != nil {
		return err
	}
	defer database.Close(db)

	return database.RunMigrations(context.Background(), db, cfg.Database.Driver, command)
}

func serve(cfg *config.Config) error {
	log.Info().Msg("Starting library service...")

	db, err := database.Open(cfg.Database)
	if err != nil {
		return err
	}
	defer database.Close(db)

	if cfg.Database.Seed {
		if err := database.Seed(context.Background(), db); err != nil {
			return fmt.Errorf("seeding database: %w", err)
		}
	}

	srv := newServer(cfg, db)

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("Library service listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("Shutting down server...")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	log.Info().Msg("Server exited")
	return nil
}

func newServer(cfg *config.Config, db *gorm.DB) *http.Server {
	gin.SetMode(cfg.HTTP.GinMode)

	router := handlers.NewRouter(db, handlers.Options{
		EmptySearchIsNotFound: cfg.Search.EmptyIsNotFound,
	})

	return &http.Server{
		Addr:              cfg.HTTP.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
}
