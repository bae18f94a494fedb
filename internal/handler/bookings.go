package handler

import (
    "context"
    "net/http"
    "net/mail"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/wildriver/resort-booking/internal/config"
    "github.com/wildriver/resort-booking/internal/middleware"
    "github.com/wildriver/resort-booking/internal/model"
    "github.com/wildriver/resort-booking/internal/queue"
    "github.com/wildriver/resort-booking/internal/repository"
    queue_publisher "github.com/wildriver/resort-booking/internal/service"
    "github.com/wildriver/resort-booking/internal/utils"
)

// BookingHandler owns the booking write path and the guest-facing booking
// reads.  Creation validates input, prices the stay, re-checks availability
// inside a transaction and only then inserts, so that two concurrent
// overlapping requests for the same room type cannot both succeed.
type BookingHandler struct {
	Cfg      config.Config
	Rooms    *repository.RoomRepo
	Bookings *repository.BookingRepo
}

// NewBookingHandler constructs a BookingHandler with the provided
// repositories.  All dependencies must be non-nil.
func NewBookingHandler(cfg config.Config, rooms *repository.RoomRepo, bookings *repository.BookingRepo) *BookingHandler {
	if rooms == nil || bookings == nil {
		panic("nil repository passed to NewBookingHandler")
	}
	return &BookingHandler{Cfg: cfg, Rooms: rooms, Bookings: bookings}
}

type createBookingReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Checkin  string `json:"checkin"`
	Checkout string `json:"checkout"`
	RoomType string `json:"room_type"`
	Guests   int    `json:"guests"`
	Message  string `json:"message"`
}

// CreateBooking handles POST /v1/bookings.  Authentication is optional: a
// decodable bearer token attaches the booking to that account, anything
// else produces an anonymous booking.  The room type is free text; when it
// matches no catalog row the stay is priced at the configured default
// nightly rate instead of failing.
func (h *BookingHandler) CreateBooking(c echo.Context) error {
	var req createBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.RoomType = strings.TrimSpace(req.RoomType)

	missing := make([]string, 0, 5)
	if req.Name == "" {
		missing = append(missing, "name")
	}
	if req.Email == "" {
		missing = append(missing, "email")
	}
	if req.Checkin == "" {
		missing = append(missing, "checkin")
	}
	if req.Checkout == "" {
		missing = append(missing, "checkout")
	}
	if req.RoomType == "" {
		missing = append(missing, "room_type")
	}
	if len(missing) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "missing required fields: " + strings.Join(missing, ", "),
		})
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid email"})
	}

	checkin, err := utils.ParseDate(req.Checkin)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid checkin date"})
	}
	checkout, err := utils.ParseDate(req.Checkout)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid checkout date"})
	}
	if !checkout.After(checkin) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "checkout must be after checkin"})
	}
	if req.Guests < 1 {
		req.Guests = 1
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	// Resolve the nightly rate; an unknown room type falls back to the
	// default rate rather than rejecting the booking.
	rate := h.Cfg.DefaultNightlyRate
	if room, err := h.Rooms.FindByType(ctx, req.RoomType); err == nil {
		rate = room.PricePerNight
	} else if err != repository.ErrRoomNotFound {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	nights := utils.Nights(checkin, checkout)
	total := utils.TotalPrice(nights, rate)

	booking := model.Booking{
		Name:       req.Name,
		Email:      req.Email,
		Checkin:    checkin,
		Checkout:   checkout,
		RoomType:   req.RoomType,
		Guests:     req.Guests,
		Message:    req.Message,
		Status:     model.StatusPending,
		TotalPrice: total,
	}
	// Best-effort identity: a valid token attaches the booking to the
	// account, absence or decode failure leaves it anonymous.
	if id, ok := middleware.Identity(c); ok {
		uid := id.UserID
		booking.UserID = &uid
	}

	// The overlap count and the insert share one transaction, so the
	// availability answer cannot go stale between check and insert.  When
	// two creates race for the same free range their gap locks deadlock on
	// the insert and InnoDB rolls one back; that loser is reported as a
	// conflict below, so overlapping concurrent requests yield exactly one
	// 201 and one 409.
	tx, err := h.Bookings.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	n, err := h.Bookings.CountOverlappingTx(ctx, tx, req.RoomType,
		checkin.Format(model.DateLayout), checkout.Format(model.DateLayout))
	if err != nil {
		if repository.IsLockConflict(err) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "room type is already booked for the selected dates"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to check availability"})
	}
	if n > 0 {
		return c.JSON(http.StatusConflict, echo.Map{"error": "room type is already booked for the selected dates"})
	}
	if err := h.Bookings.CreateTx(ctx, tx, &booking); err != nil {
		if repository.IsLockConflict(err) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "room type is already booked for the selected dates"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create booking"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true

	// Publish after commit; a broker outage never fails the booking.
	go func(b model.Booking) {
		_ = queue_publisher.PublishBookingEvent(context.Background(), queue.BookingEvent{
			Kind:       queue.KindBookingCreated,
			BookingID:  b.ID,
			UserID:     b.UserID,
			GuestName:  b.Name,
			GuestEmail: b.Email,
			RoomType:   b.RoomType,
			Checkin:    b.Checkin.Format(model.DateLayout),
			Checkout:   b.Checkout.Format(model.DateLayout),
			Nights:     nights,
			TotalPrice: b.TotalPrice,
			NewStatus:  b.Status,
			OccurredAt: time.Now().UTC().Format(time.RFC3339),
		})
	}(booking)

	return c.JSON(http.StatusCreated, booking)
}

// ListUserBookings handles GET /v1/bookings/user.  Returns the
// authenticated user's bookings, newest first.
func (h *BookingHandler) ListUserBookings(c echo.Context) error {
	id, ok := middleware.Identity(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	bookings, err := h.Bookings.ListByUser(ctx, id.UserID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, bookings)
}

// UserStats handles GET /v1/bookings/stats.  Returns aggregate counts and
// spend for the authenticated user plus their five most recent bookings.
func (h *BookingHandler) UserStats(c echo.Context) error {
	id, ok := middleware.Identity(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	stats, err := h.Bookings.StatsByUser(ctx, id.UserID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	recent, err := h.Bookings.ListRecentByUser(ctx, id.UserID, 5)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"stats":          stats,
		"recentBookings": recent,
	})
}

// GetBooking handles GET /v1/bookings/:id.
func (h *BookingHandler) GetBooking(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	booking, err := h.Bookings.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrBookingNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, booking)
}
