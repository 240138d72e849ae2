// Package main provides the entry point for the chatkitd development backend.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/setinbound/chatkit/internal/backend"
	"github.com/setinbound/chatkit/internal/config"
)

const version = "0.1.0"

func main() {
	// Load configuration
	cfg := config.Load()

	// Setup logger (dual output: stderr text + file JSON)
	logger, cleanup := config.SetupLogger(cfg.LogFile, cfg.LogLevel)
	defer cleanup()

	// Log startup info
	logger.Info("chatkitd starting",
		"version", version,
		"addr", cfg.ListenAddr,
		"responder", cfg.Responder,
	)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	// Create responder
	responder, err := backend.NewResponder(cfg)
	if err != nil {
		logger.Error("failed to create responder", "error", err)
		os.Exit(1)
	}

	// Run server (blocks until shutdown)
	srv := backend.New(cfg, responder, logger)
	if err := srv.Run(ctx); err != nil && ctx.Err() == nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}

	logger.Info("shutdown complete")
}
