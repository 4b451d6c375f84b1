// Command server runs the user session analytics HTTP API.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/useractivity/analytics/internal/api"
	"github.com/useractivity/analytics/internal/core/service"
	"github.com/useractivity/analytics/internal/infrastructure/config"
	"github.com/useractivity/analytics/internal/infrastructure/db/memory"
	"github.com/useractivity/analytics/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.LogPretty,
	})

	// The registry is constructed once here and handed to every consumer;
	// no ambient state anywhere.
	registry := memory.NewAnalyticsRepository()

	e := api.NewRouter(registry, service.Strictness{
		SessionOrder: cfg.Strict.SessionOrder,
		InactiveDays: cfg.Strict.InactiveDays,
	}, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
