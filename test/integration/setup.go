// Package integration provides helpers and integration tests for the flight aggregator.
// Integration tests wire the real adapters, use cases and HTTP layer together
// against fake upstream sites served by httptest.
package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	httpAdapter "github.com/flight-search/fallback-flight-aggregator/internal/adapter/http"
	"github.com/flight-search/fallback-flight-aggregator/internal/adapter/http/middleware"
	"github.com/flight-search/fallback-flight-aggregator/internal/bootstrap"
	"github.com/flight-search/fallback-flight-aggregator/internal/config"
	"github.com/flight-search/fallback-flight-aggregator/internal/domain"
	"github.com/flight-search/fallback-flight-aggregator/internal/infrastructure/logger"
	"github.com/flight-search/fallback-flight-aggregator/internal/usecase"
	"github.com/flight-search/fallback-flight-aggregator/test/mock"
	"github.com/flight-search/fallback-flight-aggregator/test/testutil"
)

// Upstreams are the base URLs of the fake source sites. An empty scraper URL
// leaves that scraper out.
type Upstreams struct {
	Primary   string
	Cardsite  string
	Tablesite string
}

// TestServer wraps an Echo instance and the wired application.
type TestServer struct {
	Echo     *echo.Echo
	App      *bootstrap.App
	Notifier *mock.Notifier
}

// TestConfig returns a configuration pointing at the given upstreams with
// short timeouts and rate limiting disabled.
func TestConfig(up Upstreams) *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Port: 8080, ReadTimeout: 5 * time.Second, WriteTimeout: 5 * time.Second},
		Search: config.SearchConfig{Deadline: 3 * time.Second, SourceTimeout: time.Second},
		Primary: config.PrimaryConfig{
			BaseURL:     up.Primary,
			MaxAttempts: 2,
		},
		Scrapers: config.ScraperConfig{
			CardsiteBaseURL:  up.Cardsite,
			TablesiteBaseURL: up.Tablesite,
			UserAgent:        "integration-test",
			Timezone:         "UTC",
			KnownAirlines:    []string{"Emirates", "SriLankan Airlines", "Qatar Airways", "flydubai"},
		},
		Alerts:  config.AlertConfig{Store: config.AlertStoreMemory},
		Logging: config.LoggingConfig{Level: "error", Format: "json"},
		App:     config.AppConfig{Env: "development"},
	}
}

// NewTestServer wires the application against up and registers every route
// behind the production middleware chain.
func NewTestServer(t *testing.T, up Upstreams) *TestServer {
	t.Helper()
	return NewTestServerWithConfig(t, TestConfig(up))
}

// NewTestServerWithConfig is NewTestServer with a caller-tuned configuration.
func NewTestServerWithConfig(t *testing.T, cfg *config.Config) *TestServer {
	t.Helper()

	log := logger.Nop()
	notifier := mock.NewNotifier()

	app, err := bootstrap.Build(context.Background(), cfg, log,
		bootstrap.WithClock(testutil.Clock()),
		bootstrap.WithNotifier(notifier),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	middleware.Setup(e, log)

	httpAdapter.RegisterRoutes(e,
		httpAdapter.NewFlightHandler(app.Aggregator),
		httpAdapter.NewAlertHandler(app.Alerts),
		httpAdapter.NewInsightsHandler(app.Insights),
	)

	return &TestServer{Echo: e, App: app, Notifier: notifier}
}

// NewAggregator builds an aggregator over in-memory sources with the test clock.
func NewAggregator(t *testing.T, primary *mock.Source, scrapers []*mock.Source, cfg usecase.Config) *usecase.Aggregator {
	t.Helper()

	sources := make([]domain.FlightSource, 0, len(scrapers))
	for _, s := range scrapers {
		sources = append(sources, s)
	}

	agg, err := usecase.NewAggregator(primary, sources, cfg, testutil.Clock(), logger.Nop())
	require.NoError(t, err)
	return agg
}

// Request represents a test HTTP request configuration.
type Request struct {
	Method      string
	Path        string
	Body        interface{}
	ContentType string
	Headers     map[string]string
}

// Response represents a test HTTP response.
type Response struct {
	Code    int
	Body    []byte
	Headers http.Header
}

// Do executes a test request and returns the response.
func (ts *TestServer) Do(req Request) Response {
	var bodyReader *bytes.Reader
	switch b := req.Body.(type) {
	case nil:
		bodyReader = bytes.NewReader(nil)
	case string:
		bodyReader = bytes.NewReader([]byte(b))
	default:
		bodyBytes, _ := json.Marshal(b)
		bodyReader = bytes.NewReader(bodyBytes)
	}

	httpReq := httptest.NewRequest(req.Method, req.Path, bodyReader)

	if req.ContentType != "" {
		httpReq.Header.Set(echo.HeaderContentType, req.ContentType)
	} else if req.Body != nil {
		httpReq.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	ts.Echo.ServeHTTP(rec, httpReq)

	return Response{
		Code:    rec.Code,
		Body:    rec.Body.Bytes(),
		Headers: rec.Header(),
	}
}

// SearchRequest posts a search.
func (ts *TestServer) SearchRequest(body interface{}) Response {
	return ts.Do(Request{
		Method: http.MethodPost,
		Path:   "/api/v1/flights/search",
		Body:   body,
	})
}

// HealthRequest makes a health check request.
func (ts *TestServer) HealthRequest() Response {
	return ts.Do(Request{
		Method: http.MethodGet,
		Path:   "/health",
	})
}

// ParseSearchResponse parses the response body as a SearchResponseDTO.
func (r *Response) ParseSearchResponse(t *testing.T) httpAdapter.SearchResponseDTO {
	t.Helper()
	var resp httpAdapter.SearchResponseDTO
	require.NoError(t, json.Unmarshal(r.Body, &resp), "body: %s", r.Body)
	return resp
}

// ParseAlert parses the response body as an AlertDTO.
func (r *Response) ParseAlert(t *testing.T) httpAdapter.AlertDTO {
	t.Helper()
	var resp httpAdapter.AlertDTO
	require.NoError(t, json.Unmarshal(r.Body, &resp), "body: %s", r.Body)
	return resp
}

// ParseError parses the response body to extract error information.
func (r *Response) ParseError(t *testing.T) map[string]interface{} {
	t.Helper()
	var errResp map[string]interface{}
	require.NoError(t, json.Unmarshal(r.Body, &errResp), "body: %s", r.Body)
	return errResp
}

// DefaultSearchRequest returns a valid CMB to DXB search for the day after
// the test clock's date.
func DefaultSearchRequest() httpAdapter.SearchFlightsRequest {
	return httpAdapter.SearchFlightsRequest{
		Origin:        "CMB",
		Destination:   "DXB",
		DepartureDate: testutil.SearchDate,
		Passengers:    testutil.Ptr(1),
		Class:         "Economy",
	}
}
