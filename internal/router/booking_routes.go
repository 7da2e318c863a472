package router

import (
	"github.com/labstack/echo/v4"

	"github.com/courtbook/court-reservation/internal/booking"
	"github.com/courtbook/court-reservation/internal/handler"
	"github.com/courtbook/court-reservation/internal/middleware"
)

// RegisterBookings registers the booking endpoints under /v1.  All
// routes require a valid JWT; clients and admins can create bookings
// and manage their own, while the /all listing is admin-only.  The
// optional rate limiter middleware guards the whole group when
// provided.
func RegisterBookings(e *echo.Echo, h *handler.BookingHandler, jwtSecret string, limiter echo.MiddlewareFunc) {
	mws := []echo.MiddlewareFunc{
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(booking.RoleClient, booking.RoleAdmin),
	}
	if limiter != nil {
		mws = append(mws, limiter)
	}
	g := e.Group("/v1/bookings", mws...)

	g.POST("", h.Create)
	g.GET("/my", h.ListMine)
	g.GET("/all", h.ListAll)
	g.GET("/:id", h.GetByID)
	g.PATCH("/:id/status", h.UpdateStatus)
	g.DELETE("/:id", h.Cancel)
}
