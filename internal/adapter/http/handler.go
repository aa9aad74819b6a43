// Package http provides the HTTP handler layer for the flight search API.
// It handles request parsing, validation, response formatting, and error mapping.
package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/flight-search/fallback-flight-aggregator/internal/adapter/http/response"
	"github.com/flight-search/fallback-flight-aggregator/internal/domain"
	"github.com/flight-search/fallback-flight-aggregator/internal/infrastructure/logger"
	"github.com/flight-search/fallback-flight-aggregator/internal/usecase"
)

// SourceLister is implemented by search use cases that can name their sources.
type SourceLister interface {
	Sources() (primary string, scrapers []string)
}

// FlightHandler handles HTTP requests for flight-related endpoints.
type FlightHandler struct {
	useCase usecase.FlightSearchUseCase
}

// NewFlightHandler creates a new FlightHandler with the given use case.
func NewFlightHandler(uc usecase.FlightSearchUseCase) *FlightHandler {
	return &FlightHandler{
		useCase: uc,
	}
}

// SearchFlights handles POST /api/v1/flights/search
//
// The outcome is returned as-is apart from the optional filters and sortBy,
// which are applied to a copy of the merged flights.
//
// @Summary Search for flights
// @Description Ask the primary source and, when it fails or is empty, every scraper concurrently
// @Tags flights
// @Accept json
// @Produce json
// @Param request body SearchFlightsRequest true "Search criteria"
// @Success 200 {object} SearchResponseDTO "ok, degraded, or failed with no source errors"
// @Failure 400 {object} response.ErrorDetail "Validation error"
// @Failure 503 {object} SearchResponseDTO "Every queried source failed"
// @Failure 504 {object} response.ErrorDetail "Gateway timeout"
// @Router /api/v1/flights/search [post]
func (h *FlightHandler) SearchFlights(c echo.Context) error {
	var req SearchFlightsRequest
	if err := c.Bind(&req); err != nil {
		return response.InvalidRequestBody(c)
	}

	if err := req.Validate(); err != nil {
		return handleValidationError(c, err)
	}

	params := ToSearchParams(&req)
	params.SetDefaults()
	opts := ToSearchOptions(req.Filters, req.SortBy)

	outcome, err := h.useCase.Search(c.Request().Context(), params)
	if err != nil {
		return handleError(c, err)
	}

	dto := ToSearchResponseDTO(params, outcome, usecase.Present(outcome.Flights, opts))
	if outcome.Status == domain.StatusFailed && len(outcome.Failures) > 0 {
		return response.ServiceUnavailable(c, dto)
	}
	return response.OK(c, dto)
}

// RefineFlights handles POST /api/v1/flights/refine
//
// @Summary Filter and sort a flight list
// @Description Applies filters and a sort key to flights returned by an earlier search. No source is queried.
// @Tags flights
// @Accept json
// @Produce json
// @Param request body RefineRequest true "Flights with filters and sort key"
// @Success 200 {object} RefineResponseDTO
// @Failure 400 {object} response.ErrorDetail "Validation error"
// @Router /api/v1/flights/refine [post]
func (h *FlightHandler) RefineFlights(c echo.Context) error {
	var req RefineRequest
	if err := c.Bind(&req); err != nil {
		return response.InvalidRequestBody(c)
	}

	if err := req.Validate(); err != nil {
		return handleValidationError(c, err)
	}

	flights := make([]domain.Flight, 0, len(req.Flights))
	errs := &ValidationErrors{}
	for i, dto := range req.Flights {
		f, err := ToDomainFlight(dto)
		if err != nil {
			var ve *domain.ValidationError
			if errors.As(err, &ve) {
				errs.Add(fmt.Sprintf("flights[%d].%s", i, ve.Field), ve.Message)
				continue
			}
			return handleError(c, err)
		}
		flights = append(flights, f)
	}
	if errs.HasErrors() {
		return response.ValidationError(c, errs.ToMap())
	}

	refined := usecase.Present(flights, ToSearchOptions(req.Filters, req.SortBy))
	return response.OK(c, RefineResponseDTO{
		TotalResults: len(refined),
		Flights:      ToFlightDTOs(refined),
	})
}

// Health handles GET /health
//
// @Summary Health check
// @Tags system
// @Produce json
// @Success 200 {object} response.HealthResponse
// @Router /health [get]
func (h *FlightHandler) Health(c echo.Context) error {
	if lister, ok := h.useCase.(SourceLister); ok {
		primary, scrapers := lister.Sources()
		return response.Health(c, primary, scrapers)
	}
	return response.Health(c, "", nil)
}

// handleValidationError handles validation errors and returns a 400 response.
func handleValidationError(c echo.Context, err error) error {
	var validationErrs *ValidationErrors
	if errors.As(err, &validationErrs) {
		return response.ValidationError(c, validationErrs.ToMap())
	}

	// Fallback for non-structured validation errors
	return response.ValidationErrorWithMessage(c, err.Error())
}

// handleError maps domain errors to HTTP responses.
func handleError(c echo.Context, err error) error {
	var (
		fieldErr *domain.ValidationError
		fetchErr *domain.FetchError
	)

	switch {
	case errors.As(err, &fieldErr):
		return response.ValidationError(c, map[string]string{fieldErr.Field: fieldErr.Message})
	case errors.Is(err, domain.ErrInvalidRequest):
		return response.ValidationErrorWithMessage(c, err.Error())
	case errors.Is(err, domain.ErrAlertNotFound):
		return response.NotFound(c, "alert not found")
	case errors.Is(err, domain.ErrInvalidAlertTransition):
		return response.Conflict(c, err.Error())
	case errors.As(err, &fetchErr):
		return handleFetchError(c, fetchErr)
	case errors.Is(err, context.DeadlineExceeded):
		return response.GatewayTimeout(c)
	case errors.Is(err, context.Canceled):
		return response.RequestCancelled(c)
	}

	logger.FromContext(c.Request().Context(), nil).Error().Err(err).Msg("unhandled error")
	return response.InternalServerError(c)
}

// handleFetchError maps a failed call to a single source. An upstream 404 is
// passed through so unknown flights read as such.
func handleFetchError(c echo.Context, err *domain.FetchError) error {
	switch {
	case err.Kind == domain.FetchTimeout:
		return response.GatewayTimeout(c)
	case err.Kind == domain.FetchUpstreamRejected && err.StatusCode == http.StatusNotFound:
		return response.NotFound(c, "")
	}

	logger.FromContext(c.Request().Context(), nil).Warn().Err(err).Str("source", err.Source).Msg("upstream call failed")
	return response.BadGateway(c)
}
