package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/flight-search/fallback-flight-aggregator/internal/infrastructure/logger"
)

// RequestLogger returns middleware that attaches a request-scoped logger to
// the request context and logs every request on completion.
// Handlers and the use cases below them pick the logger up with
// logger.FromContext, so their entries carry the same request_id.
func RequestLogger(log *logger.Logger) echo.MiddlewareFunc {
	if log == nil {
		log = logger.Nop()
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			reqID := GetRequestID(c)

			reqLog := log.WithRequestID(reqID)
			req := c.Request()
			c.SetRequest(req.WithContext(reqLog.IntoContext(req.Context())))

			if err := next(c); err != nil {
				// Let Echo's error handler write the response
				c.Error(err)
			}

			res := c.Response()
			status := res.Status

			var event *zerolog.Event
			switch {
			case status >= 500:
				event = reqLog.Error()
			case status >= 400:
				event = reqLog.Warn()
			default:
				event = reqLog.Info()
			}

			event.
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Str("query", req.URL.RawQuery).
				Int("status", status).
				Int64("duration_ms", time.Since(start).Milliseconds()).
				Int64("bytes_out", res.Size).
				Str("client_ip", c.RealIP()).
				Str("user_agent", req.UserAgent()).
				Msg("HTTP request")

			return nil
		}
	}
}
