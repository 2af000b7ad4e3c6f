package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/RiaanWest/whatsapp-fpv-groups/internal/api"
	"github.com/RiaanWest/whatsapp-fpv-groups/internal/config"
	"github.com/RiaanWest/whatsapp-fpv-groups/internal/scanner"
	"github.com/RiaanWest/whatsapp-fpv-groups/internal/transport"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	var logger zerolog.Logger
	if cfg.IsDevelopment() {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
			With().
			Timestamp().
			Logger()
	} else {
		logger = zerolog.New(os.Stdout).
			With().
			Timestamp().
			Logger()
	}

	// WhatsApp sidecar bridge
	bridge := transport.NewBridge(cfg.BridgeURL)

	// Detection and lifecycle engine
	svc := scanner.NewService(bridge, scanner.Options{
		Window:        time.Duration(cfg.ScanWindowDays) * 24 * time.Hour,
		ItemCap:       cfg.ScanItemCap,
		FetchLimit:    cfg.GroupFetchLimit,
		CacheTTL:      cfg.CacheTTL,
		SoldRetention: cfg.SoldRetention,
	}, logger)

	// Create router
	router := api.NewRouter(logger, svc, bridge)

	// Create server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 5 * time.Minute, // windowed scans can take a while
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info().
			Str("port", cfg.Port).
			Str("env", cfg.Env).
			Str("bridge", cfg.BridgeURL).
			Msg("starting FPV marketplace server")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server...")

	// Graceful shutdown with 30 second timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server forced to shutdown")
	}

	logger.Info().Msg("server stopped")
}
