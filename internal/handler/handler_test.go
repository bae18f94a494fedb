package handler

import (
    "net/http/httptest"
    "strings"
    "testing"
    "time"

    "github.com/DATA-DOG/go-sqlmock"
    "github.com/labstack/echo/v4"
    "github.com/stretchr/testify/require"

    "github.com/wildriver/resort-booking/internal/config"
    "github.com/wildriver/resort-booking/internal/repository"
)

const testSecret = "handler-test-secret"

func testConfig() config.Config {
	return config.Config{
		JWTSecret:          testSecret,
		TokenTTLHours:      1,
		BcryptCost:         4,
		DefaultNightlyRate: 150.00,
	}
}

// newMockRepos returns the repositories wired to a single sqlmock database
// so cross-repo flows (price lookup followed by a guarded insert) run
// against one expectation script.
func newMockRepos(t *testing.T) (*repository.RoomRepo, *repository.BookingRepo, *repository.UserRepo, *repository.ContactRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return repository.NewRoomRepo(db), repository.NewBookingRepo(db),
		repository.NewUserRepo(db), repository.NewContactRepo(db), mock
}

// doJSON runs one JSON request through a fresh Echo instance and returns
// the recorder.  Extra middleware wraps the handler the same way the router
// would.
func doJSON(t *testing.T, h echo.HandlerFunc, method, target, body string, hdr, params map[string]string, mw ...echo.MiddlewareFunc) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	names := make([]string, 0, len(params))
	values := make([]string, 0, len(params))
	for k, v := range params {
		names = append(names, k)
		values = append(values, v)
	}
	c.SetParamNames(names...)
	c.SetParamValues(values...)

	wrapped := h
	for i := len(mw) - 1; i >= 0; i-- {
		wrapped = mw[i](wrapped)
	}
	require.NoError(t, wrapped(c))
	return rec
}

var roomCols = []string{
	"id", "name", "type", "description", "price_per_night", "capacity",
	"amenities", "image_url", "is_available", "created_at", "updated_at",
}

func roomRow(id int64, roomType string, price float64) *sqlmock.Rows {
	now := time.Now().UTC()
	return sqlmock.NewRows(roomCols).AddRow(
		id, "Deluxe Mountain View Room", roomType, "a room", price, 3,
		[]byte(`["Free WiFi"]`), "/images/room1.jpg", true, now, now)
}

var bookingCols = []string{
	"id", "user_id", "name", "email", "checkin", "checkout", "room_type",
	"guests", "message", "status", "total_price", "created_at", "updated_at",
}

func bookingRow(id int64, userID interface{}, status string, total float64) *sqlmock.Rows {
	checkin := time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC)
	checkout := time.Date(2024, 2, 18, 0, 0, 0, 0, time.UTC)
	now := time.Now().UTC()
	return sqlmock.NewRows(bookingCols).AddRow(
		id, userID, "Jordan Guest", "jordan@example.com", checkin, checkout,
		"Deluxe", 2, "", status, total, now, now)
}
