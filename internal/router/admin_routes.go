package router

import (
    "github.com/labstack/echo/v4"

    "github.com/wildriver/resort-booking/internal/handler"
    "github.com/wildriver/resort-booking/internal/middleware"
)

// RegisterAdmin registers the management endpoints.  All routes require a
// valid JWT carrying the admin role.  The dashboard group lives under
// /v1/admin; the booking mutation endpoints stay under /v1/bookings so the
// resource path matches the public read path.
func RegisterAdmin(e *echo.Echo, a *handler.AdminHandler, ct *handler.ContactHandler, jwtSecret string) {
	adminOnly := []echo.MiddlewareFunc{
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("admin"),
	}

	// Booking mutations share the public resource path.
	e.PATCH("/v1/bookings/:id/status", a.UpdateBookingStatus, adminOnly...)
	e.DELETE("/v1/bookings/:id", a.DeleteBooking, adminOnly...)

	// Contact inbox.  The form submission at POST /v1/contacts stays public;
	// reading and managing the inbox is admin work on the same resource path.
	e.GET("/v1/contacts", ct.List, adminOnly...)
	e.GET("/v1/contacts/:id", ct.Get, adminOnly...)
	e.PATCH("/v1/contacts/:id/status", ct.UpdateStatus, adminOnly...)
	e.DELETE("/v1/contacts/:id", ct.Delete, adminOnly...)

	g := e.Group("/v1/admin", adminOnly...)

	// Dashboard aggregates plus the most recent bookings.
	g.GET("/stats", a.Stats)
	// Full booking list joined with the owning accounts.
	g.GET("/bookings", a.ListBookings)
	// Alias kept for dashboard clients addressing bookings under the admin
	// prefix.
	g.PATCH("/bookings/:id/status", a.UpdateBookingStatus)
	// Account list with booking histories.
	g.GET("/users", a.ListUsers)

	// Room catalog management.
	g.GET("/rooms", a.ListAllRooms)
	g.POST("/rooms", a.CreateRoom)
	g.PUT("/rooms/:id", a.UpdateRoom)
	g.DELETE("/rooms/:id", a.DeleteRoom)
}
