package http

import (
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// RegisterRoutes registers every API route plus the swagger UI.
// A nil AlertHandler or InsightsHandler leaves its routes out.
func RegisterRoutes(e *echo.Echo, h *FlightHandler, ah *AlertHandler, ih *InsightsHandler) {
	RegisterRoutesWithMiddleware(e, h, ah, ih)
}

// RegisterRoutesWithMiddleware registers routes with middleware applied to
// the /api/v1 group only. /health and /swagger stay unwrapped.
func RegisterRoutesWithMiddleware(e *echo.Echo, h *FlightHandler, ah *AlertHandler, ih *InsightsHandler, middleware ...echo.MiddlewareFunc) {
	e.GET("/health", h.Health)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api/v1", middleware...)

	flights := api.Group("/flights")
	flights.POST("/search", h.SearchFlights)
	flights.POST("/refine", h.RefineFlights)

	if ih != nil {
		flights.GET("/:id/prices", ih.PriceHistory)
		api.GET("/destinations/popular", ih.PopularDestinations)
	}

	if ah != nil {
		alerts := api.Group("/alerts")
		alerts.POST("", ah.CreateAlert)
		alerts.POST("/evaluate", ah.EvaluateAlerts)
		alerts.GET("/:id", ah.GetAlert)
		alerts.DELETE("/:id", ah.WithdrawAlert)
	}
}
