// Package queue defines message payloads exchanged over the message broker.
package queue

// Event kinds carried on the booking.events queue.
const (
    KindBookingCreated = "booking.created"
    KindBookingStatus  = "booking.status"
)

// BookingEvent is published when a booking is created or when an admin
// changes its status.  It contains enough information for downstream
// consumers to log, notify, or trigger analytics without querying the
// primary database.  Fields that only apply to one kind are left zero for
// the other.
type BookingEvent struct {
    Kind       string  `json:"kind"`
    BookingID  uint64  `json:"booking_id"`
    UserID     *uint64 `json:"user_id,omitempty"` // nil for anonymous bookings
    GuestName  string  `json:"guest_name,omitempty"`
    GuestEmail string  `json:"guest_email,omitempty"`
    RoomType   string  `json:"room_type"`
    Checkin    string  `json:"checkin,omitempty"`
    Checkout   string  `json:"checkout,omitempty"`
    Nights     int     `json:"nights,omitempty"`
    TotalPrice float64 `json:"total_price,omitempty"`
    OldStatus  string  `json:"old_status,omitempty"`
    NewStatus  string  `json:"new_status"`
    OccurredAt string  `json:"occurred_at"`
}
