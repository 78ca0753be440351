package handler

import (
	"net/http"

	"github.com/Prashant-2024/Rental-App/pkg/config"
	"github.com/labstack/echo/v4"
)

// Home handles the root route
func Home(c echo.Context) error {
	return c.String(http.StatusOK, "Server is running at home Route")
}

// HealthCheck handles the health check endpoint
func HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"status":  "healthy",
		"service": config.ServiceName,
	})
}
