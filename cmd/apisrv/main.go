package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/safewings/api/pkg/config"
	"github.com/safewings/api/pkg/db"
	"github.com/safewings/api/pkg/janitor"
	"github.com/safewings/api/pkg/log"
	"github.com/safewings/api/pkg/storage"
	"github.com/safewings/api/pkg/webserver"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := log.Init(&cfg.Logging); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	logger := log.GetLogger()

	logger.Info("Starting SafeWings API Server")
	logger.WithField("version", "1.0.0").Info("Server initialization")

	// Initialize database
	logger.Info("Connecting to database...")
	database, err := db.New(&cfg.Database)
	if err != nil {
		logger.WithError(err).Fatal("Failed to connect to database")
	}
	defer func() {
		if err := database.Close(); err != nil {
			logger.WithError(err).Error("Failed to close database connection")
		}
	}()

	// Run database migrations
	logger.Info("Running database migrations...")
	if err := database.Migrate(); err != nil {
		logger.WithError(err).Fatal("Failed to run database migrations")
	}

	// Initialize blob storage
	logger.Info("Initializing blob storage...")
	store, err := storage.New(&cfg.Storage, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize blob storage")
	}
	uploads := storage.NewUploadTokens(janitor.TokenTTL(&cfg.Janitor))

	// Initialize web server
	logger.Info("Initializing web server...")
	server, err := webserver.New(cfg, database, logger, store, uploads)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize web server")
	}

	// Start background maintenance
	logger.Info("Starting janitor...")
	jan := janitor.New(&cfg.Janitor, db.NewRepository(database), store, uploads, server.FlowController(), logger)
	if err := jan.Start(); err != nil {
		logger.WithError(err).Fatal("Failed to start janitor")
	}

	// Start server in a goroutine
	go func() {
		if err := server.Start(); err != nil {
			logger.WithError(err).Fatal("Failed to start server")
		}
	}()

	logger.WithField("address", cfg.Server.GetServerAddr()).Info("Server started successfully")

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Create a context with timeout for graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.Server.GracefulStop)*time.Second)
	defer shutdownCancel()

	// Gracefully stop the web server
	if err := server.Stop(shutdownCtx); err != nil {
		logger.WithError(err).Error("Server forced to shutdown")
	} else {
		logger.Info("Web server exited gracefully")
	}

	// Stop background maintenance
	jan.Stop()

	logger.Info("Application exited gracefully")
}
