package http

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/flight-search/fallback-flight-aggregator/internal/adapter/http/response"
	"github.com/flight-search/fallback-flight-aggregator/internal/usecase"
)

// MaxDestinationsLimit caps the limit query parameter of popular destinations.
const MaxDestinationsLimit = 50

// InsightsHandler handles HTTP requests for fare insights.
type InsightsHandler struct {
	insights usecase.InsightsUseCase
}

// NewInsightsHandler creates a new InsightsHandler.
func NewInsightsHandler(insights usecase.InsightsUseCase) *InsightsHandler {
	return &InsightsHandler{insights: insights}
}

// PriceHistory handles GET /api/v1/flights/:id/prices
//
// @Summary Fare history of a flight
// @Description Daily prices from the primary source, oldest day first
// @Tags insights
// @Produce json
// @Param id path string true "Flight ID"
// @Success 200 {object} PriceHistoryDTO
// @Failure 400 {object} response.ErrorDetail "Invalid flight ID"
// @Failure 404 {object} response.ErrorDetail "Unknown flight"
// @Failure 502 {object} response.ErrorDetail "Upstream error"
// @Failure 504 {object} response.ErrorDetail "Gateway timeout"
// @Router /api/v1/flights/{id}/prices [get]
func (h *InsightsHandler) PriceHistory(c echo.Context) error {
	history, err := h.insights.PriceHistory(c.Request().Context(), c.Param("id"))
	if err != nil {
		return handleError(c, err)
	}
	return response.OK(c, ToPriceHistoryDTO(history))
}

// PopularDestinations handles GET /api/v1/destinations/popular
//
// @Summary Popular destinations
// @Tags insights
// @Produce json
// @Param limit query int false "Maximum number of destinations (1-50)"
// @Success 200 {object} PopularDestinationsDTO
// @Failure 400 {object} response.ErrorDetail "Invalid limit"
// @Failure 502 {object} response.ErrorDetail "Upstream error"
// @Failure 504 {object} response.ErrorDetail "Gateway timeout"
// @Router /api/v1/destinations/popular [get]
func (h *InsightsHandler) PopularDestinations(c echo.Context) error {
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > MaxDestinationsLimit {
			return response.ValidationError(c, map[string]string{"limit": "limit must be between 1 and 50"})
		}
		limit = n
	}

	dests, err := h.insights.PopularDestinations(c.Request().Context(), limit)
	if err != nil {
		return handleError(c, err)
	}
	return response.OK(c, ToPopularDestinationsDTO(dests))
}
