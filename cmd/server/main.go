package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	zlog "github.com/rs/zerolog/log"

	"github.com/diewo77/invoicedesk/internal/config"
	"github.com/diewo77/invoicedesk/internal/db"
	"github.com/diewo77/invoicedesk/internal/logger"
)

var (
	configFlag      = flag.String("config", "", "Path to a YAML config file")
	migrateOnlyFlag = flag.Bool("migrate-only", false, "Run DB migrations and exit")
	seedOnlyFlag    = flag.Bool("seed-only", false, "Run DB seed and exit")
)

func main() {
	flag.Parse()

	// Load environment variables from .env file
	_ = godotenv.Load()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		zlog.Fatal().Err(err).Msg("failed to load configuration")
	}
	if err := logger.Setup(cfg.Log.Logger()); err != nil {
		zlog.Fatal().Err(err).Msg("failed to set up logging")
	}
	log := logger.WithComponent("server")

	if *migrateOnlyFlag || *seedOnlyFlag {
		conn, err := db.Open(cfg.Database, log)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to database")
		}
		if *migrateOnlyFlag {
			if err := db.Migrate(conn, cfg.Database, log); err != nil {
				log.Fatal().Err(err).Msg("migration failed")
			}
			log.Info().Msg("migrations completed successfully")
		}
		if *seedOnlyFlag {
			if err := db.Seed(conn, cfg.App.DefaultCountry); err != nil {
				log.Fatal().Err(err).Msg("seeding failed")
			}
			log.Info().Msg("seeding completed successfully")
		}
		return
	}

	conn, err := db.Setup(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to prepare database")
	}

	app := NewApp(conn, cfg, logger.WithComponent("http"))

	// Create server with config timeouts
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      app,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Server.Port).Bool("dev", cfg.App.Dev).Str("driver", cfg.Database.Driver).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutdown signal received")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("error during shutdown")
	}
	log.Info().Msg("server stopped gracefully")
}
