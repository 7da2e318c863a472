package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/courtbook/court-reservation/internal/handler" // import the handlers that implement the endpoints
)

// RegisterRoutes registers routes that do not require authentication on
// the provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// The GET /healthz endpoint can be used by load balancers or
	// monitoring systems to verify that the service is up and running.
	e.GET("/healthz", handler.Health)
}
