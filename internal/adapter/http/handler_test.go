package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flight-search/fallback-flight-aggregator/internal/adapter/http/response"
	"github.com/flight-search/fallback-flight-aggregator/internal/adapter/notifier"
	"github.com/flight-search/fallback-flight-aggregator/internal/adapter/store/memory"
	"github.com/flight-search/fallback-flight-aggregator/internal/domain"
	"github.com/flight-search/fallback-flight-aggregator/internal/infrastructure/timeutil"
	"github.com/flight-search/fallback-flight-aggregator/internal/usecase"
)

// mockUseCase is a mock implementation of FlightSearchUseCase for testing.
type mockUseCase struct {
	searchFunc func(ctx context.Context, params domain.SearchParams) (*domain.AggregateOutcome, error)
	calls      []domain.SearchParams
}

func (m *mockUseCase) Search(ctx context.Context, params domain.SearchParams) (*domain.AggregateOutcome, error) {
	m.calls = append(m.calls, params)
	if m.searchFunc != nil {
		return m.searchFunc(ctx, params)
	}
	return &domain.AggregateOutcome{
		Status:         domain.StatusFailed,
		SourcesQueried: []string{"flightapi"},
	}, nil
}

// listingUseCase also reports its sources for /health.
type listingUseCase struct {
	mockUseCase
}

func (listingUseCase) Sources() (string, []string) {
	return "flightapi", []string{"cardsite", "tablesite"}
}

func testFlight(id, flightNumber string, price float64, minutes, stops, hour int) domain.Flight {
	dep := time.Date(2026, 10, 19, hour, 0, 0, 0, time.UTC)
	return domain.Flight{
		ID:              id,
		Airline:         "Emirates",
		FlightNumber:    flightNumber,
		Origin:          domain.Airport{City: "Colombo", Code: "CMB"},
		Destination:     domain.Airport{City: "Dubai", Code: "DXB", Terminal: "3"},
		DepartureTime:   dep,
		ArrivalTime:     dep.Add(time.Duration(minutes) * time.Minute),
		DurationMinutes: minutes,
		Price:           domain.Price{Amount: price, Currency: "USD"},
		Stops:           stops,
		AvailableSeats:  4,
		Class:           domain.ClassEconomy,
		Source:          "flightapi",
	}
}

// setupTestHandler creates a test Echo instance with both handlers registered.
func setupTestHandler(t *testing.T, uc usecase.FlightSearchUseCase) *echo.Echo {
	t.Helper()

	clock := timeutil.NewMockClock(time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC))
	registry, err := usecase.NewAlertRegistry(memory.NewAlertStore(), notifier.NewLogNotifier(nil), clock, nil)
	require.NoError(t, err)

	e := echo.New()
	RegisterRoutes(e, NewFlightHandler(uc), NewAlertHandler(registry), nil)
	return e
}

// makeRequest is a helper to make test requests.
func makeRequest(e *echo.Echo, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reqBody []byte
	switch b := body.(type) {
	case nil:
	case string:
		reqBody = []byte(b)
	default:
		reqBody, _ = json.Marshal(b)
	}

	req := httptest.NewRequest(method, path, bytes.NewBuffer(reqBody))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func validSearchBody() map[string]interface{} {
	return map[string]interface{}{
		"origin":        "cmb",
		"destination":   "dxb",
		"departureDate": "2026-10-19",
		"passengers":    1,
		"class":         "economy",
	}
}

// =====================================================
// Search
// =====================================================

func TestSearchFlights_Success(t *testing.T) {
	uc := &mockUseCase{
		searchFunc: func(_ context.Context, params domain.SearchParams) (*domain.AggregateOutcome, error) {
			return &domain.AggregateOutcome{
				Status:         domain.StatusOK,
				Flights:        []domain.Flight{testFlight("1", "EK 651", 412, 275, 0, 2)},
				SourcesQueried: []string{"flightapi"},
				Elapsed:        150 * time.Millisecond,
			}, nil
		},
	}
	e := setupTestHandler(t, uc)

	rec := makeRequest(e, http.MethodPost, "/api/v1/flights/search", validSearchBody())
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	require.Len(t, uc.calls, 1)
	assert.Equal(t, "CMB", uc.calls[0].Origin)
	assert.Equal(t, "DXB", uc.calls[0].Destination)
	assert.Equal(t, domain.ClassEconomy, uc.calls[0].Class)

	resp := decode[SearchResponseDTO](t, rec)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "CMB", resp.SearchCriteria.Origin)
	assert.Equal(t, "Economy", resp.SearchCriteria.CabinClass)
	assert.Equal(t, 1, resp.Metadata.TotalResults)
	assert.Equal(t, []string{"flightapi"}, resp.Metadata.SourcesQueried)
	assert.Empty(t, resp.Metadata.SourcesFailed)
	assert.Equal(t, int64(150), resp.Metadata.SearchTimeMs)
	require.Len(t, resp.Flights, 1)
	assert.Equal(t, "4h 35m", resp.Flights[0].Duration.Formatted)
	assert.Equal(t, "2026-10-19T02:00:00Z", resp.Flights[0].Departure.DateTime)
	assert.Equal(t, "3", resp.Flights[0].Arrival.Terminal)
	assert.NotNil(t, resp.Failures)
}

func TestSearchFlights_AppliesFiltersAndSortToResponseOnly(t *testing.T) {
	outcome := &domain.AggregateOutcome{
		Status: domain.StatusOK,
		Flights: []domain.Flight{
			testFlight("a", "EK 651", 500, 300, 1, 10),
			testFlight("b", "EK 653", 300, 400, 0, 6),
			testFlight("c", "EK 655", 400, 200, 0, 14),
		},
		SourcesQueried: []string{"flightapi"},
	}
	uc := &mockUseCase{
		searchFunc: func(context.Context, domain.SearchParams) (*domain.AggregateOutcome, error) {
			return outcome, nil
		},
	}
	e := setupTestHandler(t, uc)

	body := validSearchBody()
	body["sortBy"] = "duration"
	body["filters"] = map[string]interface{}{"stops": []int{0}}

	rec := makeRequest(e, http.MethodPost, "/api/v1/flights/search", body)
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode[SearchResponseDTO](t, rec)
	require.Len(t, resp.Flights, 2)
	assert.Equal(t, "c", resp.Flights[0].ID)
	assert.Equal(t, "b", resp.Flights[1].ID)
	assert.Equal(t, 2, resp.Metadata.TotalResults)

	assert.Equal(t, "a", outcome.Flights[0].ID, "outcome must not be reordered")
	assert.Len(t, outcome.Flights, 3)
}

func TestSearchFlights_DefaultSortIsPrice(t *testing.T) {
	uc := &mockUseCase{
		searchFunc: func(context.Context, domain.SearchParams) (*domain.AggregateOutcome, error) {
			return &domain.AggregateOutcome{
				Status: domain.StatusOK,
				Flights: []domain.Flight{
					testFlight("a", "EK 651", 500, 300, 0, 10),
					testFlight("b", "EK 653", 300, 400, 0, 6),
				},
			}, nil
		},
	}
	e := setupTestHandler(t, uc)

	resp := decode[SearchResponseDTO](t, makeRequest(e, http.MethodPost, "/api/v1/flights/search", validSearchBody()))
	require.Len(t, resp.Flights, 2)
	assert.Equal(t, "b", resp.Flights[0].ID)
}

func TestSearchFlights_StatusMapping(t *testing.T) {
	timeout := domain.SourceResult{Source: "cardsite", Err: domain.NewTimeoutError("cardsite", context.DeadlineExceeded), Duration: 3 * time.Second}
	rejected := domain.SourceResult{Source: "flightapi", Err: domain.NewUpstreamRejectedError("flightapi", http.StatusBadGateway, nil)}

	tests := []struct {
		name       string
		outcome    *domain.AggregateOutcome
		wantStatus int
		wantBody   string
	}{
		{
			name: "degraded is 200",
			outcome: &domain.AggregateOutcome{
				Status:         domain.StatusDegraded,
				Flights:        []domain.Flight{testFlight("1", "EK 651", 412, 275, 0, 2)},
				Failures:       []domain.SourceResult{timeout},
				SourcesQueried: []string{"flightapi", "cardsite", "tablesite"},
				UsedFallback:   true,
			},
			wantStatus: http.StatusOK,
			wantBody:   "degraded",
		},
		{
			name: "failed with source errors is 503",
			outcome: &domain.AggregateOutcome{
				Status:         domain.StatusFailed,
				Failures:       []domain.SourceResult{rejected, timeout},
				SourcesQueried: []string{"flightapi", "cardsite"},
				UsedFallback:   true,
			},
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   "failed",
		},
		{
			name: "failed without errors is 200",
			outcome: &domain.AggregateOutcome{
				Status:         domain.StatusFailed,
				SourcesQueried: []string{"flightapi", "cardsite"},
				UsedFallback:   true,
			},
			wantStatus: http.StatusOK,
			wantBody:   "failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockUseCase{
				searchFunc: func(context.Context, domain.SearchParams) (*domain.AggregateOutcome, error) {
					return tt.outcome, nil
				},
			}
			e := setupTestHandler(t, uc)

			rec := makeRequest(e, http.MethodPost, "/api/v1/flights/search", validSearchBody())
			assert.Equal(t, tt.wantStatus, rec.Code)

			resp := decode[SearchResponseDTO](t, rec)
			assert.Equal(t, tt.wantBody, resp.Status)
			assert.Equal(t, tt.outcome.UsedFallback, resp.Metadata.UsedFallback)
			assert.Len(t, resp.Failures, len(tt.outcome.Failures))
		})
	}
}

func TestSearchFlights_FailureDetails(t *testing.T) {
	uc := &mockUseCase{
		searchFunc: func(context.Context, domain.SearchParams) (*domain.AggregateOutcome, error) {
			return &domain.AggregateOutcome{
				Status: domain.StatusFailed,
				Failures: []domain.SourceResult{
					{Source: "flightapi", Err: domain.NewUpstreamRejectedError("flightapi", http.StatusTooManyRequests, nil), Duration: 40 * time.Millisecond},
				},
				SourcesQueried: []string{"flightapi"},
			}, nil
		},
	}
	e := setupTestHandler(t, uc)

	resp := decode[SearchResponseDTO](t, makeRequest(e, http.MethodPost, "/api/v1/flights/search", validSearchBody()))
	require.Len(t, resp.Failures, 1)
	assert.Equal(t, "flightapi", resp.Failures[0].Source)
	assert.Equal(t, "upstream_rejected", resp.Failures[0].Kind)
	assert.Equal(t, http.StatusTooManyRequests, resp.Failures[0].StatusCode)
	assert.Equal(t, int64(40), resp.Failures[0].DurationMs)
	assert.NotEmpty(t, resp.Failures[0].Message)
	assert.Equal(t, []string{"flightapi"}, resp.Metadata.SourcesFailed)
}

func TestSearchFlights_RequestValidation(t *testing.T) {
	tests := []struct {
		name      string
		modify    func(map[string]interface{})
		wantField string
	}{
		{name: "missing origin", modify: func(b map[string]interface{}) { delete(b, "origin") }, wantField: "origin"},
		{name: "bad destination", modify: func(b map[string]interface{}) { b["destination"] = "DUBAI" }, wantField: "destination"},
		{name: "same airports", modify: func(b map[string]interface{}) { b["destination"] = "CMB" }, wantField: "destination"},
		{name: "bad date", modify: func(b map[string]interface{}) { b["departureDate"] = "2026-02-30" }, wantField: "departureDate"},
		{name: "too many passengers", modify: func(b map[string]interface{}) { b["passengers"] = 10 }, wantField: "passengers"},
		{name: "unknown class", modify: func(b map[string]interface{}) { b["class"] = "premium" }, wantField: "class"},
		{name: "unknown sort", modify: func(b map[string]interface{}) { b["sortBy"] = "rating" }, wantField: "sortBy"},
		{name: "zero passengers", modify: func(b map[string]interface{}) { b["passengers"] = 0 }, wantField: "passengers"},
		{
			name: "inverted price range",
			modify: func(b map[string]interface{}) {
				b["filters"] = map[string]interface{}{"priceRange": map[string]int{"min": 500, "max": 100}}
			},
			wantField: "filters.priceRange",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockUseCase{}
			e := setupTestHandler(t, uc)

			body := validSearchBody()
			tt.modify(body)

			rec := makeRequest(e, http.MethodPost, "/api/v1/flights/search", body)
			require.Equal(t, http.StatusBadRequest, rec.Code)

			resp := decode[response.ErrorDetail](t, rec)
			assert.Equal(t, response.CodeValidationError, resp.Code)
			assert.Contains(t, resp.Details, tt.wantField)
			assert.Empty(t, uc.calls, "no search for invalid input")
		})
	}
}

func TestSearchFlights_UseCaseValidationError(t *testing.T) {
	uc := &mockUseCase{
		searchFunc: func(context.Context, domain.SearchParams) (*domain.AggregateOutcome, error) {
			return nil, domain.NewValidationError("departureDate", "departureDate cannot be in the past")
		},
	}
	e := setupTestHandler(t, uc)

	rec := makeRequest(e, http.MethodPost, "/api/v1/flights/search", validSearchBody())
	require.Equal(t, http.StatusBadRequest, rec.Code)

	resp := decode[response.ErrorDetail](t, rec)
	assert.Equal(t, "departureDate cannot be in the past", resp.Details["departureDate"])
}

func TestSearchFlights_InvalidBody(t *testing.T) {
	e := setupTestHandler(t, &mockUseCase{})

	rec := makeRequest(e, http.MethodPost, "/api/v1/flights/search", `{"origin": `)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, response.CodeInvalidRequest, decode[response.ErrorDetail](t, rec).Code)
}

func TestSearchFlights_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{name: "deadline", err: fmt.Errorf("search: %w", context.DeadlineExceeded), wantStatus: http.StatusGatewayTimeout, wantCode: response.CodeTimeout},
		{name: "cancelled", err: context.Canceled, wantStatus: http.StatusGatewayTimeout, wantCode: response.CodeTimeout},
		{name: "invalid request", err: fmt.Errorf("%w: bad", domain.ErrInvalidRequest), wantStatus: http.StatusBadRequest, wantCode: response.CodeValidationError},
		{name: "unexpected", err: domain.ErrInvalidConfig, wantStatus: http.StatusInternalServerError, wantCode: response.CodeInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockUseCase{
				searchFunc: func(context.Context, domain.SearchParams) (*domain.AggregateOutcome, error) {
					return nil, tt.err
				},
			}
			e := setupTestHandler(t, uc)

			rec := makeRequest(e, http.MethodPost, "/api/v1/flights/search", validSearchBody())
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantCode, decode[response.ErrorDetail](t, rec).Code)
		})
	}
}

// =====================================================
// Refine
// =====================================================

func TestRefineFlights(t *testing.T) {
	e := setupTestHandler(t, &mockUseCase{})
	flights := ToFlightDTOs([]domain.Flight{
		testFlight("long", "EK 651", 400, 600, 0, 8),
		testFlight("mid", "EK 653", 400, 125, 1, 9),
		testFlight("short", "EK 655", 400, 110, 0, 10),
	})

	rec := makeRequest(e, http.MethodPost, "/api/v1/flights/refine", RefineRequest{
		Flights: flights,
		SortBy:  "duration",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	resp := decode[RefineResponseDTO](t, rec)
	assert.Equal(t, 3, resp.TotalResults)
	assert.Equal(t, "short", resp.Flights[0].ID)
	assert.Equal(t, "1h 50m", resp.Flights[0].Duration.Formatted)
	assert.Equal(t, "mid", resp.Flights[1].ID)
	assert.Equal(t, "long", resp.Flights[2].ID)

	rec = makeRequest(e, http.MethodPost, "/api/v1/flights/refine", RefineRequest{
		Flights: flights,
		Filters: &FilterDTO{Stops: []int{0}, PriceRange: &PriceRangeDTO{Min: 0, Max: 400}},
	})
	resp = decode[RefineResponseDTO](t, rec)
	assert.Equal(t, 2, resp.TotalResults)
}

func TestRefineFlights_RejectsMalformedFlights(t *testing.T) {
	e := setupTestHandler(t, &mockUseCase{})
	bad := ToFlightDTO(testFlight("x", "EK 651", 400, 275, 0, 8))
	bad.Price.Currency = "dollars"
	noTime := ToFlightDTO(testFlight("y", "EK 653", 400, 275, 0, 8))
	noTime.Departure.DateTime = "tomorrow"

	rec := makeRequest(e, http.MethodPost, "/api/v1/flights/refine", RefineRequest{Flights: []FlightDTO{bad, noTime}})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	resp := decode[response.ErrorDetail](t, rec)
	assert.Contains(t, resp.Details, "flights[0].price.currency")
	assert.Contains(t, resp.Details, "flights[1].departure.datetime")
}

func TestRefineFlights_RequiresFlights(t *testing.T) {
	e := setupTestHandler(t, &mockUseCase{})

	rec := makeRequest(e, http.MethodPost, "/api/v1/flights/refine", map[string]string{"sortBy": "price"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode[response.ErrorDetail](t, rec).Details, "flights")
}

// =====================================================
// Alerts
// =====================================================

func createAlert(t *testing.T, e *echo.Echo, target, current float64) AlertDTO {
	t.Helper()
	rec := makeRequest(e, http.MethodPost, "/api/v1/alerts", CreateAlertRequest{
		FlightID:     "api-1",
		TargetPrice:  target,
		CurrentPrice: current,
		Contact:      ContactDTO{Email: "traveller@example.com", EmailNotifications: true},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[AlertDTO](t, rec)
}

func TestAlerts_Lifecycle(t *testing.T) {
	e := setupTestHandler(t, &mockUseCase{})

	created := createAlert(t, e, 350, 412)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "active", created.State)
	assert.Equal(t, "USD", created.Currency)
	assert.Empty(t, created.Hints)
	assert.Equal(t, "2026-10-18T09:00:00Z", created.CreatedAt)

	rec := makeRequest(e, http.MethodGet, "/api/v1/alerts/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, created.ID, decode[AlertDTO](t, rec).ID)

	rec = makeRequest(e, http.MethodDelete, "/api/v1/alerts/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "withdrawn", decode[AlertDTO](t, rec).State)

	rec = makeRequest(e, http.MethodDelete, "/api/v1/alerts/"+created.ID, nil)
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, response.CodeConflict, decode[response.ErrorDetail](t, rec).Code)
}

func TestAlerts_TargetAboveCurrentPriceIsHinted(t *testing.T) {
	e := setupTestHandler(t, &mockUseCase{})

	created := createAlert(t, e, 500, 412)
	assert.Equal(t, "active", created.State)
	assert.Equal(t, []string{string(domain.HintAboveCurrentPrice)}, created.Hints)
	assert.False(t, created.Armed)
}

func TestAlerts_Validation(t *testing.T) {
	e := setupTestHandler(t, &mockUseCase{})

	rec := makeRequest(e, http.MethodPost, "/api/v1/alerts", CreateAlertRequest{
		FlightID:     "api-1",
		TargetPrice:  0,
		CurrentPrice: 412,
		Contact:      ContactDTO{Email: "traveller@example.com"},
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode[response.ErrorDetail](t, rec).Details, "targetPrice")

	rec = makeRequest(e, http.MethodPost, "/api/v1/alerts", CreateAlertRequest{
		FlightID:     "api-1",
		TargetPrice:  300,
		CurrentPrice: 412,
		Contact:      ContactDTO{Email: "traveller@example.com", SMSNotifications: true},
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode[response.ErrorDetail](t, rec).Details, "contact.phone")
}

func TestAlerts_NotFound(t *testing.T) {
	e := setupTestHandler(t, &mockUseCase{})

	rec := makeRequest(e, http.MethodGet, "/api/v1/alerts/missing", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, response.CodeNotFound, decode[response.ErrorDetail](t, rec).Code)

	rec = makeRequest(e, http.MethodDelete, "/api/v1/alerts/missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAlerts_Evaluate(t *testing.T) {
	e := setupTestHandler(t, &mockUseCase{})
	low := createAlert(t, e, 300, 412)
	high := createAlert(t, e, 380, 412)

	rec := makeRequest(e, http.MethodPost, "/api/v1/alerts/evaluate", EvaluateAlertsRequest{FlightID: "api-1", CurrentPrice: 350})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	resp := decode[EvaluateAlertsResponseDTO](t, rec)
	require.Len(t, resp.Triggered, 1)
	assert.Equal(t, high.ID, resp.Triggered[0].ID)
	assert.Equal(t, "triggered", resp.Triggered[0].State)
	assert.Equal(t, 350.0, resp.Triggered[0].CurrentPrice)

	rec = makeRequest(e, http.MethodGet, "/api/v1/alerts/"+low.ID, nil)
	assert.Equal(t, "active", decode[AlertDTO](t, rec).State)

	rec = makeRequest(e, http.MethodDelete, "/api/v1/alerts/"+high.ID, nil)
	assert.Equal(t, http.StatusConflict, rec.Code, "triggered is terminal")

	rec = makeRequest(e, http.MethodPost, "/api/v1/alerts/evaluate", EvaluateAlertsRequest{FlightID: "api-1"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// =====================================================
// Health & routing
// =====================================================

func TestHealth(t *testing.T) {
	e := setupTestHandler(t, &listingUseCase{})

	rec := makeRequest(e, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode[response.HealthResponse](t, rec)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "flightapi", resp.Primary)
	assert.Equal(t, []string{"cardsite", "tablesite"}, resp.Scrapers)
}

func TestHealth_WithoutSourceLister(t *testing.T) {
	e := setupTestHandler(t, &mockUseCase{})

	rec := makeRequest(e, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decode[response.HealthResponse](t, rec).Status)
}

func TestRegisterRoutes_WithoutAlerts(t *testing.T) {
	e := echo.New()
	RegisterRoutes(e, NewFlightHandler(&mockUseCase{}), nil, nil)

	rec := makeRequest(e, http.MethodGet, "/api/v1/alerts/a1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = makeRequest(e, http.MethodGet, "/api/v1/destinations/popular", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = makeRequest(e, http.MethodPost, "/api/v1/flights/search", validSearchBody())
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRegisterRoutesWithMiddleware_AppliesToAPIGroupOnly(t *testing.T) {
	var hits int
	counting := func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			hits++
			return next(c)
		}
	}

	e := echo.New()
	RegisterRoutesWithMiddleware(e, NewFlightHandler(&mockUseCase{}), nil, nil, counting)

	makeRequest(e, http.MethodGet, "/health", nil)
	assert.Equal(t, 0, hits)

	makeRequest(e, http.MethodPost, "/api/v1/flights/search", validSearchBody())
	assert.Equal(t, 1, hits)
}
