package response

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status   string   `json:"status"`
	Primary  string   `json:"primary"`
	Scrapers []string `json:"scrapers"`
}

// Health writes a health check response naming the configured sources.
func Health(c echo.Context, primary string, scrapers []string) error {
	if scrapers == nil {
		scrapers = []string{}
	}
	return c.JSON(http.StatusOK, &HealthResponse{
		Status:   "ok",
		Primary:  primary,
		Scrapers: scrapers,
	})
}
