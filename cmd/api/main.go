// Package main is the entry point for the Hijri calendar API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/zapponejosh/hijri-api/internal/api"
	"github.com/zapponejosh/hijri-api/internal/calendar"
	"github.com/zapponejosh/hijri-api/internal/config"
	"github.com/zapponejosh/hijri-api/internal/i18n"
	"github.com/zapponejosh/hijri-api/internal/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	// Setup structured logging
	log := logger.Setup(cfg)

	if err := run(cfg, log); err != nil {
		log.Error("server stopped", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *slog.Logger) error {
	catalogue, err := i18n.Load()
	if err != nil {
		return fmt.Errorf("load messages: %w", err)
	}

	cal := calendar.UmmAlQura
	almanac := calendar.NewAlmanac(cal, calendar.RealClock{}, cfg.Location())
	handlers := api.NewHandlers(almanac, catalogue, api.NewMetrics(), cfg)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           api.SetupRoutes(handlers, cfg, log),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Info("starting hijri API",
		slog.Int("port", cfg.Port),
		slog.String("timezone", cfg.Timezone),
		slog.String("log_level", cfg.LogLevel),
		slog.Int("first_year", cal.FirstYear()),
		slog.Int("last_year", cal.LastYear()),
		slog.Any("today", almanac.Today()),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	log.Info("hijri API stopped")
	return nil
}
