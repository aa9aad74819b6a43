package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/flight-search/fallback-flight-aggregator/internal/infrastructure/logger"
)

// Setup registers all middleware on the Echo instance in the correct order:
//  1. RequestID, so every later entry can carry it
//  2. RequestLogger, which also stores the request logger in the context
//  3. Trace
//  4. Recover, innermost, so a panic still produces a logged response
//
// Call it before registering routes.
func Setup(e *echo.Echo, log *logger.Logger) {
	for _, m := range Chain(log) {
		e.Use(m)
	}
}

// Chain returns all middleware as a slice for use with route groups.
func Chain(log *logger.Logger) []echo.MiddlewareFunc {
	return []echo.MiddlewareFunc{
		RequestID(),
		RequestLogger(log),
		Trace(),
		Recover(log),
	}
}
