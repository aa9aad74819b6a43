package http

import (
	"github.com/labstack/echo/v4"

	"github.com/flight-search/fallback-flight-aggregator/internal/adapter/http/response"
	"github.com/flight-search/fallback-flight-aggregator/internal/domain"
	"github.com/flight-search/fallback-flight-aggregator/internal/usecase"
)

// AlertHandler handles HTTP requests for price alerts.
type AlertHandler struct {
	alerts usecase.AlertUseCase
}

// NewAlertHandler creates a new AlertHandler.
func NewAlertHandler(alerts usecase.AlertUseCase) *AlertHandler {
	return &AlertHandler{alerts: alerts}
}

// CreateAlert handles POST /api/v1/alerts
//
// @Summary Register a price alert
// @Description A target above the current price is accepted, carries the target_above_current_price hint and stays unarmed until the price rises past it. An omitted currentPrice is looked up from the flight's price history.
// @Tags alerts
// @Accept json
// @Produce json
// @Param request body CreateAlertRequest true "Alert intent"
// @Success 201 {object} AlertDTO
// @Failure 400 {object} response.ErrorDetail "Validation error"
// @Router /api/v1/alerts [post]
func (h *AlertHandler) CreateAlert(c echo.Context) error {
	var req CreateAlertRequest
	if err := c.Bind(&req); err != nil {
		return response.InvalidRequestBody(c)
	}

	alert, err := h.alerts.Register(c.Request().Context(), ToAlertRequest(&req))
	if err != nil {
		return handleError(c, err)
	}
	return response.Created(c, ToAlertDTO(alert))
}

// GetAlert handles GET /api/v1/alerts/:id
//
// @Summary Get a price alert
// @Tags alerts
// @Produce json
// @Param id path string true "Alert ID"
// @Success 200 {object} AlertDTO
// @Failure 404 {object} response.ErrorDetail "Unknown alert"
// @Router /api/v1/alerts/{id} [get]
func (h *AlertHandler) GetAlert(c echo.Context) error {
	alert, err := h.alerts.Get(c.Request().Context(), domain.AlertHandle(c.Param("id")))
	if err != nil {
		return handleError(c, err)
	}
	return response.OK(c, ToAlertDTO(alert))
}

// WithdrawAlert handles DELETE /api/v1/alerts/:id
//
// @Summary Withdraw a price alert
// @Tags alerts
// @Produce json
// @Param id path string true "Alert ID"
// @Success 200 {object} AlertDTO
// @Failure 404 {object} response.ErrorDetail "Unknown alert"
// @Failure 409 {object} response.ErrorDetail "Alert already triggered or withdrawn"
// @Router /api/v1/alerts/{id} [delete]
func (h *AlertHandler) WithdrawAlert(c echo.Context) error {
	alert, err := h.alerts.Withdraw(c.Request().Context(), domain.AlertHandle(c.Param("id")))
	if err != nil {
		return handleError(c, err)
	}
	return response.OK(c, ToAlertDTO(alert))
}

// EvaluateAlerts handles POST /api/v1/alerts/evaluate
//
// @Summary Evaluate alerts against a new price
// @Description Triggers every armed alert of the flight whose target is at or above the price; alerts registered above the current price arm once the price rises past their target
// @Tags alerts
// @Accept json
// @Produce json
// @Param request body EvaluateAlertsRequest true "Flight and observed price"
// @Success 200 {object} EvaluateAlertsResponseDTO
// @Failure 400 {object} response.ErrorDetail "Validation error"
// @Router /api/v1/alerts/evaluate [post]
func (h *AlertHandler) EvaluateAlerts(c echo.Context) error {
	var req EvaluateAlertsRequest
	if err := c.Bind(&req); err != nil {
		return response.InvalidRequestBody(c)
	}

	triggered, err := h.alerts.Evaluate(c.Request().Context(), req.FlightID, req.CurrentPrice)
	if err != nil {
		return handleError(c, err)
	}
	return response.OK(c, EvaluateAlertsResponseDTO{Triggered: ToAlertDTOs(triggered)})
}
