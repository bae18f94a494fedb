package model

import (
    "encoding/json"
    "time"
)

// DateLayout is the wire format for check-in and check-out dates.  Bookings
// are day-granular; no time-of-day component is ever transmitted or stored.
const DateLayout = "2006-01-02"

// Booking status values.  A booking is created pending and moves between
// states through admin action only.  Cancelled bookings never block
// availability checks.
const (
    StatusPending   = "pending"
    StatusConfirmed = "confirmed"
    StatusCancelled = "cancelled"
)

// ValidStatus reports whether s is one of the three booking states.
func ValidStatus(s string) bool {
    switch s {
    case StatusPending, StatusConfirmed, StatusCancelled:
        return true
    }
    return false
}

// CanTransition reports whether a booking may move from one status to
// another.  Every transition between valid states is currently allowed,
// including confirmed back to pending; call sites go through this function
// so a stricter table can be introduced without touching them.
func CanTransition(from, to string) bool {
    return ValidStatus(from) && ValidStatus(to)
}

// Booking records a guest's stay request for a room type over a half-open
// date range [Checkin, Checkout).  The room type is a free-text string
// matched against Room.Type rather than a foreign key, so bookings survive
// catalog edits and legacy type names keep working.  TotalPrice is a
// snapshot computed at creation time and is never recomputed by later
// status changes.
//
// Fields:
//  ID         – primary key identifier.
//  UserID     – owning user, nil for anonymous bookings.
//  Name       – guest name as entered on the form.
//  Email      – guest contact email.
//  Checkin    – first night of the stay (date only).
//  Checkout   – day of departure (date only, strictly after Checkin).
//  RoomType   – requested room category, matched against rooms.type.
//  Guests     – number of guests, at least 1.
//  Message    – optional free-text note from the guest.
//  Status     – one of pending, confirmed, cancelled.
//  TotalPrice – nights × nightly rate at creation time.
//  CreatedAt  – creation timestamp.
//  UpdatedAt  – last update timestamp.
type Booking struct {
    ID         uint64    `json:"id"`          // bookings.id
    UserID     *uint64   `json:"user_id"`     // bookings.user_id (nullable)
    Name       string    `json:"name"`        // bookings.name
    Email      string    `json:"email"`       // bookings.email
    Checkin    time.Time `json:"-"`           // bookings.checkin (DATE)
    Checkout   time.Time `json:"-"`           // bookings.checkout (DATE)
    RoomType   string    `json:"room_type"`   // bookings.room_type
    Guests     int       `json:"guests"`      // bookings.guests
    Message    string    `json:"message"`     // bookings.message
    Status     string    `json:"status"`      // bookings.status
    TotalPrice float64   `json:"total_price"` // bookings.total_price
    CreatedAt  time.Time `json:"created_at"`  // bookings.created_at
    UpdatedAt  time.Time `json:"updated_at"`  // bookings.updated_at
}

// MarshalJSON renders Checkin and Checkout as date-only strings so every
// endpoint returns the same wire shape without per-handler mapping.
func (b Booking) MarshalJSON() ([]byte, error) {
    type alias Booking
    return json.Marshal(struct {
        alias
        Checkin  string `json:"checkin"`
        Checkout string `json:"checkout"`
    }{
        alias:    alias(b),
        Checkin:  b.Checkin.Format(DateLayout),
        Checkout: b.Checkout.Format(DateLayout),
    })
}
