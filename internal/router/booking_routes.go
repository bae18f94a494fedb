package router

import (
    "github.com/labstack/echo/v4"

    "github.com/wildriver/resort-booking/internal/handler"
    "github.com/wildriver/resort-booking/internal/middleware"
)

// RegisterBookings registers the booking endpoints under /v1.  Creation is
// open to guests: OptionalAuth decodes a bearer token when one is present
// and valid, and otherwise lets the request through anonymously.  The
// user-scoped listing and stats endpoints require a valid JWT.
func RegisterBookings(e *echo.Echo, h *handler.BookingHandler, jwtSecret string, limiter echo.MiddlewareFunc) {
	// Place a booking.  Works with or without a token; rate limited so one
	// client cannot hammer the conflict-checked write path.
	e.POST("/v1/bookings", h.CreateBooking, middleware.OptionalAuth(jwtSecret), limiter)

	// Endpoints scoped to the authenticated account.
	g := e.Group("/v1/bookings", middleware.JWTAuth(jwtSecret))
	g.GET("/user", h.ListUserBookings)
	g.GET("/stats", h.UserStats)
}
