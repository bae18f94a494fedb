package handler

import (
    "context"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/wildriver/resort-booking/internal/model"
    "github.com/wildriver/resort-booking/internal/queue"
    "github.com/wildriver/resort-booking/internal/repository"
    queue_publisher "github.com/wildriver/resort-booking/internal/service"
)

// AdminHandler bundles the operations behind the admin route group: the
// dashboard stats, booking management, user listing and room catalog CRUD.
type AdminHandler struct {
	Rooms    *repository.RoomRepo
	Bookings *repository.BookingRepo
	Users    *repository.UserRepo
}

// NewAdminHandler constructs an AdminHandler.  All dependencies must be
// non-nil.
func NewAdminHandler(rooms *repository.RoomRepo, bookings *repository.BookingRepo, users *repository.UserRepo) *AdminHandler {
	if rooms == nil || bookings == nil || users == nil {
		panic("nil repository passed to NewAdminHandler")
	}
	return &AdminHandler{Rooms: rooms, Bookings: bookings, Users: users}
}

// Stats handles GET /v1/admin/stats.  Returns the dashboard aggregates
// together with the ten most recent bookings.
func (h *AdminHandler) Stats(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	totalBookings, err := h.Bookings.Count(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	totalUsers, err := h.Users.Count(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	totalRooms, err := h.Rooms.Count(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	confirmed, err := h.Bookings.CountConfirmed(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	revenue, err := h.Bookings.TotalRevenue(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	mostBooked, err := h.Bookings.MostBookedRoomType(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	recent, err := h.Bookings.ListRecent(ctx, 10)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"stats": echo.Map{
			"totalBookings":     totalBookings,
			"totalUsers":        totalUsers,
			"totalRooms":        totalRooms,
			"confirmedBookings": confirmed,
			"totalRevenue":      revenue,
			"mostBookedRoom":    mostBooked,
		},
		"recentBookings": recent,
	})
}

// ListBookings handles GET /v1/admin/bookings.  Each row carries the
// booking plus the owning account's name and email when the booking is not
// anonymous.
func (h *AdminHandler) ListBookings(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	bookings, err := h.Bookings.ListAllWithUser(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, bookings)
}

type updateStatusReq struct {
	Status string `json:"status"`
}

// UpdateBookingStatus handles PATCH /v1/bookings/:id/status.  Any status
// may move to any other status; the stored total price is never touched.
func (h *AdminHandler) UpdateBookingStatus(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}

	var req updateStatusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Status = strings.ToLower(strings.TrimSpace(req.Status))
	if !model.ValidStatus(req.Status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	current, err := h.Bookings.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrBookingNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if !model.CanTransition(current.Status, req.Status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status transition"})
	}

	booking, err := h.Bookings.UpdateStatus(ctx, id, req.Status)
	if err != nil {
		if err == repository.ErrBookingNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update booking"})
	}

	go func(before, after model.Booking) {
		_ = queue_publisher.PublishBookingEvent(context.Background(), queue.BookingEvent{
			Kind:       queue.KindBookingStatus,
			BookingID:  after.ID,
			UserID:     after.UserID,
			RoomType:   after.RoomType,
			OldStatus:  before.Status,
			NewStatus:  after.Status,
			OccurredAt: time.Now().UTC().Format(time.RFC3339),
		})
	}(current, booking)

	return c.JSON(http.StatusOK, booking)
}

// DeleteBooking handles DELETE /v1/bookings/:id.
func (h *AdminHandler) DeleteBooking(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Bookings.Delete(ctx, id); err != nil {
		if err == repository.ErrBookingNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete booking"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Booking deleted successfully"})
}

// ListUsers handles GET /v1/admin/users.  Returns every account together
// with its booking count.
func (h *AdminHandler) ListUsers(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	users, err := h.Users.ListWithBookings(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, users)
}

// ListAllRooms handles GET /v1/admin/rooms.  Unlike the public listing it
// also includes rooms flagged unavailable.
func (h *AdminHandler) ListAllRooms(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rooms, err := h.Rooms.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, rooms)
}

type roomReq struct {
	Name          string   `json:"name"`
	Type          string   `json:"type"`
	Description   string   `json:"description"`
	PricePerNight float64  `json:"price_per_night"`
	Capacity      int      `json:"capacity"`
	Amenities     []string `json:"amenities"`
	ImageURL      *string  `json:"image_url"`
	IsAvailable   *bool    `json:"is_available"`
}

func (r *roomReq) validate() string {
	r.Name = strings.TrimSpace(r.Name)
	r.Type = strings.TrimSpace(r.Type)
	switch {
	case r.Name == "":
		return "name is required"
	case r.Type == "":
		return "type is required"
	case r.PricePerNight < 0:
		return "price_per_night must not be negative"
	case r.Capacity < 1:
		return "capacity must be at least 1"
	}
	return ""
}

// CreateRoom handles POST /v1/admin/rooms.
func (h *AdminHandler) CreateRoom(c echo.Context) error {
	var req roomReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	room := model.Room{
		Name:          req.Name,
		Type:          req.Type,
		Description:   req.Description,
		PricePerNight: req.PricePerNight,
		Capacity:      req.Capacity,
		Amenities:     req.Amenities,
		ImageURL:      req.ImageURL,
		IsAvailable:   true,
	}
	if req.IsAvailable != nil {
		room.IsAvailable = *req.IsAvailable
	}
	if room.Amenities == nil {
		room.Amenities = []string{}
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Rooms.Create(ctx, &room); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create room"})
	}
	return c.JSON(http.StatusCreated, room)
}

// UpdateRoom handles PUT /v1/admin/rooms/:id.  The body replaces the full
// room definition.
func (h *AdminHandler) UpdateRoom(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}

	var req roomReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	current, err := h.Rooms.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrRoomNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	room := model.Room{
		ID:            id,
		Name:          req.Name,
		Type:          req.Type,
		Description:   req.Description,
		PricePerNight: req.PricePerNight,
		Capacity:      req.Capacity,
		Amenities:     req.Amenities,
		ImageURL:      req.ImageURL,
		IsAvailable:   current.IsAvailable,
	}
	if req.IsAvailable != nil {
		room.IsAvailable = *req.IsAvailable
	}
	if room.Amenities == nil {
		room.Amenities = []string{}
	}

	if err := h.Rooms.Update(ctx, &room); err != nil {
		if err == repository.ErrRoomNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update room"})
	}
	return c.JSON(http.StatusOK, room)
}

// DeleteRoom handles DELETE /v1/admin/rooms/:id.
func (h *AdminHandler) DeleteRoom(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Rooms.Delete(ctx, id); err != nil {
		if err == repository.ErrRoomNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete room"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Room deleted successfully"})
}
