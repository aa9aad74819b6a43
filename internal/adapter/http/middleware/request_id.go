// Package middleware provides HTTP middleware for cross-cutting concerns.
package middleware

import (
	"regexp"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/flight-search/fallback-flight-aggregator/internal/infrastructure/logger"
)

// RequestIDHeader is the HTTP header name for request ID.
const RequestIDHeader = "X-Request-ID"

// Client-supplied IDs end up in logs and on upstream requests.
var requestIDPattern = regexp.MustCompile(`^[A-Za-z0-9._:\-]{1,128}$`)

// RequestID returns middleware that adopts a well-formed X-Request-ID or
// generates a UUID. The ID is echoed in the response and stored in the
// request context, where source clients forward it upstream.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			reqID := c.Request().Header.Get(RequestIDHeader)
			if !requestIDPattern.MatchString(reqID) {
				reqID = uuid.NewString()
			}

			req := c.Request()
			c.SetRequest(req.WithContext(logger.ContextWithRequestID(req.Context(), reqID)))
			c.Response().Header().Set(RequestIDHeader, reqID)

			return next(c)
		}
	}
}

// GetRequestID returns the request ID of c, or "" before RequestID ran.
func GetRequestID(c echo.Context) string {
	return logger.RequestIDFromContext(c.Request().Context())
}
