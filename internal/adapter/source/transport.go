// Package source holds what every flight source adapter shares: the HTTP
// client setup and the mapping of transport outcomes onto FetchErrors.
package source

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/flight-search/fallback-flight-aggregator/internal/domain"
	"github.com/flight-search/fallback-flight-aggregator/internal/infrastructure/logger"
)

// ClientConfig configures the HTTP client of one source.
type ClientConfig struct {
	// Name is the source name, used for the tracer and error tagging
	Name string

	// BaseURL is the upstream root (e.g., "http://localhost:3001")
	BaseURL string

	// Timeout bounds a single HTTP exchange
	Timeout time.Duration

	// UserAgent is sent on every request when set
	UserAgent string
}

// RequestIDHeader carries the inbound request ID onto source calls.
const RequestIDHeader = "X-Request-ID"

// NewClient creates a resty client for one source with tracing hooks.
func NewClient(cfg ClientConfig) *resty.Client {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetHeader("Accept", "application/json, text/html;q=0.9")
	if cfg.Timeout > 0 {
		client.SetTimeout(cfg.Timeout)
	}
	if cfg.UserAgent != "" {
		client.SetHeader("User-Agent", cfg.UserAgent)
	}

	client.OnBeforeRequest(forwardRequestID)
	instrument(client, "source/"+cfg.Name)
	return client
}

func forwardRequestID(_ *resty.Client, req *resty.Request) error {
	if id := logger.RequestIDFromContext(req.Context()); id != "" {
		req.SetHeader(RequestIDHeader, id)
	}
	return nil
}

func instrument(client *resty.Client, tracerName string) {
	tracer := otel.Tracer(tracerName)

	client.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		ctx, _ := tracer.Start(req.Context(), "http "+req.Method,
			trace.WithSpanKind(trace.SpanKindClient),
			trace.WithAttributes(attribute.String("http.url", req.URL)),
		)
		req.SetContext(ctx)
		return nil
	})

	client.OnAfterResponse(func(_ *resty.Client, res *resty.Response) error {
		span := trace.SpanFromContext(res.Request.Context())
		defer span.End()

		span.SetAttributes(
			attribute.Int("http.status_code", res.StatusCode()),
			attribute.Int("http.response_size", len(res.Body())),
		)
		if res.IsError() {
			span.SetStatus(codes.Error, res.Status())
		}
		return nil
	})

	client.OnError(func(req *resty.Request, err error) {
		span := trace.SpanFromContext(req.Context())
		defer span.End()

		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	})
}

// Classify maps the result of a resty call onto the FetchError taxonomy.
// It returns nil for a 2xx response.
func Classify(name string, res *resty.Response, err error) *domain.FetchError {
	if err != nil {
		if isTimeout(err) {
			return domain.NewTimeoutError(name, err)
		}
		return domain.NewTransportError(name, err)
	}
	if res == nil {
		return domain.NewTransportError(name, errors.New("no response"))
	}

	status := res.StatusCode()
	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		return domain.NewUpstreamRejectedError(name, status, fmt.Errorf("unexpected status %s", res.Status()))
	}
	return nil
}

// Retryable reports whether a FetchError is worth another attempt:
// transport failures, 429 and 5xx.
func Retryable(err error) bool {
	var fe *domain.FetchError
	if !errors.As(err, &fe) {
		return false
	}
	switch fe.Kind {
	case domain.FetchTransport:
		return true
	case domain.FetchUpstreamRejected:
		return fe.StatusCode == http.StatusTooManyRequests || fe.StatusCode >= http.StatusInternalServerError
	default:
		return false
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
