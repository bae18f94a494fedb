package router

import (
    "github.com/labstack/echo/v4"

    "github.com/wildriver/resort-booking/internal/handler"
)

// RegisterPublic registers unauthenticated browse endpoints on the provided
// Echo instance.  These routes apply no JWT or role middleware and are
// intended for guest visitors: browsing the room catalog, probing
// availability, reading a single booking and submitting the contact form.
//
// The cache middleware wraps the catalog listing because it is read-mostly
// and identical for every visitor; the limiter wraps the availability probe
// because it hits the bookings table on every call.  Both middlewares pass
// requests straight through when Redis is not configured.
func RegisterPublic(e *echo.Echo, r *handler.RoomHandler, b *handler.BookingHandler, ct *handler.ContactHandler, cache, limiter echo.MiddlewareFunc) {
	// Expose the list of available rooms, cheapest first.
	e.GET("/v1/rooms", r.ListRooms, cache)
	// Fetch a single room by id.
	e.GET("/v1/rooms/:id", r.GetRoom)
	// List available rooms of one type.
	e.GET("/v1/rooms/type/:type", r.ListRoomsByType)
	// Probe whether a date range is free for a room or room type.
	e.POST("/v1/rooms/check-availability", r.CheckAvailability, limiter)
	// Fetch a single booking by id, e.g. from a confirmation link.
	e.GET("/v1/bookings/:id", b.GetBooking)
	// Accept a contact form submission.
	e.POST("/v1/contacts", ct.Submit)
}
