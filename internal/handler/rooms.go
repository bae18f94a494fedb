package handler

import (
    "context"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/wildriver/resort-booking/internal/model"
    "github.com/wildriver/resort-booking/internal/repository"
    "github.com/wildriver/resort-booking/internal/utils"
)

// RoomHandler serves the public room catalog and the availability check.
// Availability is decided per room type: all rooms sharing a type count as
// one bookable unit, and any pending or confirmed booking whose date range
// overlaps the requested one blocks it.
type RoomHandler struct {
	Rooms    *repository.RoomRepo
	Bookings *repository.BookingRepo
}

// NewRoomHandler constructs a RoomHandler with the provided repositories.
func NewRoomHandler(rooms *repository.RoomRepo, bookings *repository.BookingRepo) *RoomHandler {
	if rooms == nil || bookings == nil {
		panic("nil repository passed to NewRoomHandler")
	}
	return &RoomHandler{Rooms: rooms, Bookings: bookings}
}

// ListRooms handles GET /v1/rooms.  Returns offered rooms, cheapest first.
func (h *RoomHandler) ListRooms(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rooms, err := h.Rooms.ListAvailable(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, rooms)
}

// GetRoom handles GET /v1/rooms/:id.
func (h *RoomHandler) GetRoom(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	room, err := h.Rooms.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrRoomNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, room)
}

// ListRoomsByType handles GET /v1/rooms/type/:type.
func (h *RoomHandler) ListRoomsByType(c echo.Context) error {
	roomType := strings.TrimSpace(c.Param("type"))
	if roomType == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room type"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rooms, err := h.Rooms.ListAvailableByType(ctx, roomType)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, rooms)
}

type availabilityReq struct {
	RoomID   uint64 `json:"room_id"`
	RoomType string `json:"room_type"`
	Checkin  string `json:"checkin"`
	Checkout string `json:"checkout"`
}

type availabilityResp struct {
	Available bool   `json:"available"`
	RoomID    uint64 `json:"room_id,omitempty"`
	RoomType  string `json:"room_type"`
	Checkin   string `json:"checkin"`
	Checkout  string `json:"checkout"`
}

// CheckAvailability handles POST /v1/rooms/check-availability.  The room may
// be selected either by id (resolved to its type through the catalog) or by
// passing the type string directly; both call sites exist in the clients.
// The check is a plain read: it takes no locks and a result may go stale the
// moment it returns, which is why booking creation re-checks under a guard.
func (h *RoomHandler) CheckAvailability(c echo.Context) error {
	var req availabilityReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.RoomType = strings.TrimSpace(req.RoomType)
	if req.Checkin == "" || req.Checkout == "" || (req.RoomID == 0 && req.RoomType == "") {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "room_id or room_type, checkin and checkout are required"})
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

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	roomType := req.RoomType
	if req.RoomID != 0 {
		room, err := h.Rooms.GetByID(ctx, req.RoomID)
		if err != nil {
			if err == repository.ErrRoomNotFound {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
		roomType = room.Type
	}

	n, err := h.Bookings.CountOverlapping(ctx, roomType,
		checkin.Format(model.DateLayout), checkout.Format(model.DateLayout))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	return c.JSON(http.StatusOK, availabilityResp{
		Available: n == 0,
		RoomID:    req.RoomID,
		RoomType:  roomType,
		Checkin:   checkin.Format(model.DateLayout),
		Checkout:  checkout.Format(model.DateLayout),
	})
}
