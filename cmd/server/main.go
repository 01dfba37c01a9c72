package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/mroshb/filmorate/internal/config"
	"github.com/mroshb/filmorate/internal/server"
	"github.com/mroshb/filmorate/pkg/logger"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	}

	// Initialize logger
	logger.Init()
	defer logger.Sync()

	logger.Info("Starting Filmorate...")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load config", err)
	}

	// Validate production security settings
	if cfg.AppEnv == "production" {
		if err := cfg.ValidateProductionSecurity(); err != nil {
			logger.Fatal("Production security validation failed", err)
		}
		logger.Info("Production security validation passed")
	}

	srv, err := server.Init(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize server", err)
	}
	errCh := srv.Start()

	logger.Info("Server started successfully", "env", cfg.AppEnv, "storage", cfg.StorageDriver, "port", cfg.AppPort)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
		logger.Info("Shutting down gracefully...")
	case err := <-errCh:
		if err != nil {
			logger.Error("HTTP server failed", "error", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.GetShutdownTimeout())
	defer cancel()
	if err := srv.Stop(ctx); err != nil {
		logger.Warn("Server forced to shutdown", "error", err)
	}
	logger.Info("Server stopped")
}
