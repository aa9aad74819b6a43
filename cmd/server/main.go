// Package main is the entry point for the fallback flight aggregation service.
//
//	@title						Fallback Flight Aggregator API
//	@version					1.0.0
//	@description				Searches a primary flight API and falls back to scraped sources when it fails or returns nothing. Also manages price alerts.
//
//	@contact.name				API Support
//	@contact.url				https://github.com/flight-search/fallback-flight-aggregator/issues
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
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

	"github.com/labstack/echo/v4"

	// Import generated docs for swagger
	_ "github.com/flight-search/fallback-flight-aggregator/docs"

	flighthttp "github.com/flight-search/fallback-flight-aggregator/internal/adapter/http"
	"github.com/flight-search/fallback-flight-aggregator/internal/adapter/http/middleware"
	"github.com/flight-search/fallback-flight-aggregator/internal/bootstrap"
	"github.com/flight-search/fallback-flight-aggregator/internal/config"
	"github.com/flight-search/fallback-flight-aggregator/internal/infrastructure/logger"
)

const (
	shutdownTimeout = 10 * time.Second
)

func main() {
	cfg := config.MustLoad()

	log := logger.New(logger.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		ServiceName: "flight-aggregator",
	})
	logger.SetGlobal(log)

	log.Info().
		Str("env", cfg.App.Env).
		Int("port", cfg.Server.Port).
		Msg("Configuration loaded")

	app, err := bootstrap.Build(context.Background(), cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to wire application")
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Error().Err(err).Msg("Error releasing resources")
		}
	}()

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	middleware.Setup(e, log)

	flighthttp.RegisterRoutes(e,
		flighthttp.NewFlightHandler(app.Aggregator),
		flighthttp.NewAlertHandler(app.Alerts),
		flighthttp.NewInsightsHandler(app.Insights),
	)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	go func() {
		log.Info().Str("address", addr).Msg("Starting server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	gracefulShutdown(e, log)
}

// gracefulShutdown handles graceful server shutdown on interrupt signals.
func gracefulShutdown(e *echo.Echo, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Error during server shutdown")
	}

	log.Info().Msg("Server stopped")
}
