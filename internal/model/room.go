package model

import "time"

// Room represents one bookable room definition in the catalog as stored in
// the `rooms` table.  The catalog is read-mostly: guests browse it and the
// booking path reads prices from it, while writes happen only through the
// admin endpoints.  IsAvailable flags whether the room is offered at all;
// date-based occupancy is decided against the bookings table, not here.
//
// Fields:
//  ID            – primary key identifier of the room.
//  Name          – display name (e.g. "Deluxe Mountain View Room").
//  Type          – category string (e.g. "Deluxe").  Availability is checked
//                  per type: all rooms sharing a type count as one bookable
//                  unit.
//  Description   – marketing description.
//  PricePerNight – nightly rate, two decimal places.
//  Capacity      – maximum number of guests, at least 1.
//  Amenities     – ordered list of amenity labels, stored as JSON.
//  ImageURL      – reference to the room's photo (nullable).
//  IsAvailable   – whether the room is offered at all.
//  CreatedAt     – timestamp of creation.
//  UpdatedAt     – timestamp of last update.
type Room struct {
    ID            uint64    `json:"id"`              // rooms.id
    Name          string    `json:"name"`            // rooms.name
    Type          string    `json:"type"`            // rooms.type
    Description   string    `json:"description"`     // rooms.description
    PricePerNight float64   `json:"price_per_night"` // rooms.price_per_night
    Capacity      int       `json:"capacity"`        // rooms.capacity
    Amenities     []string  `json:"amenities"`       // rooms.amenities (JSON column)
    ImageURL      *string   `json:"image_url"`       // rooms.image_url (nullable)
    IsAvailable   bool      `json:"is_available"`    // rooms.is_available
    CreatedAt     time.Time `json:"created_at"`      // rooms.created_at
    UpdatedAt     time.Time `json:"updated_at"`      // rooms.updated_at
}
