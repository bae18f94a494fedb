package handler

import (
    "encoding/json"
    "net/http"
    "testing"

    "github.com/DATA-DOG/go-sqlmock"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func decodeAvailability(t *testing.T, body []byte) map[string]interface{} {
	t.Helper()
	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &got))
	return got
}

func TestCheckAvailabilityFreeRange(t *testing.T) {
	rooms, bookings, _, _, mock := newMockRepos(t)
	h := NewRoomHandler(rooms, bookings)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM bookings WHERE room_type = \?`).
		WithArgs("Deluxe", "2024-02-18", "2024-02-15").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	rec := doJSON(t, h.CheckAvailability, http.MethodPost, "/v1/rooms/check-availability",
		`{"room_type":"Deluxe","checkin":"2024-02-15","checkout":"2024-02-18"}`, nil, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	got := decodeAvailability(t, rec.Body.Bytes())
	assert.Equal(t, true, got["available"])
	assert.Equal(t, "Deluxe", got["room_type"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckAvailabilityOverlappingRange(t *testing.T) {
	rooms, bookings, _, _, mock := newMockRepos(t)
	h := NewRoomHandler(rooms, bookings)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM bookings WHERE room_type = \?`).
		WithArgs("Deluxe", "2024-02-17", "2024-02-14").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	rec := doJSON(t, h.CheckAvailability, http.MethodPost, "/v1/rooms/check-availability",
		`{"room_type":"Deluxe","checkin":"2024-02-14","checkout":"2024-02-17"}`, nil, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	got := decodeAvailability(t, rec.Body.Bytes())
	assert.Equal(t, false, got["available"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckAvailabilityByRoomID(t *testing.T) {
	rooms, bookings, _, _, mock := newMockRepos(t)
	h := NewRoomHandler(rooms, bookings)

	// The room id resolves to its type before the overlap count runs.
	mock.ExpectQuery(`SELECT .+ FROM rooms WHERE id = \?`).
		WithArgs(2).
		WillReturnRows(roomRow(2, "Suite", 149.99))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM bookings WHERE room_type = \?`).
		WithArgs("Suite", "2024-03-12", "2024-03-10").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	rec := doJSON(t, h.CheckAvailability, http.MethodPost, "/v1/rooms/check-availability",
		`{"room_id":2,"checkin":"2024-03-10","checkout":"2024-03-12"}`, nil, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	got := decodeAvailability(t, rec.Body.Bytes())
	assert.Equal(t, true, got["available"])
	assert.Equal(t, "Suite", got["room_type"])
	assert.Equal(t, float64(2), got["room_id"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckAvailabilityUnknownRoomID(t *testing.T) {
	rooms, bookings, _, _, mock := newMockRepos(t)
	h := NewRoomHandler(rooms, bookings)

	mock.ExpectQuery(`SELECT .+ FROM rooms WHERE id = \?`).
		WithArgs(99).
		WillReturnRows(sqlmock.NewRows(roomCols))

	rec := doJSON(t, h.CheckAvailability, http.MethodPost, "/v1/rooms/check-availability",
		`{"room_id":99,"checkin":"2024-03-10","checkout":"2024-03-12"}`, nil, nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckAvailabilityRejectsBadInput(t *testing.T) {
	rooms, bookings, _, _, mock := newMockRepos(t)
	h := NewRoomHandler(rooms, bookings)

	cases := []struct {
		name string
		body string
	}{
		{"missing selector", `{"checkin":"2024-02-15","checkout":"2024-02-18"}`},
		{"missing dates", `{"room_type":"Deluxe"}`},
		{"zero length stay", `{"room_type":"Deluxe","checkin":"2024-02-15","checkout":"2024-02-15"}`},
		{"inverted range", `{"room_type":"Deluxe","checkin":"2024-02-18","checkout":"2024-02-15"}`},
		{"garbage date", `{"room_type":"Deluxe","checkin":"15/02/2024","checkout":"2024-02-18"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doJSON(t, h.CheckAvailability, http.MethodPost, "/v1/rooms/check-availability", tc.body, nil, nil)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
	// No database call is made for rejected input.
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetRoomNotFound(t *testing.T) {
	rooms, bookings, _, _, mock := newMockRepos(t)
	h := NewRoomHandler(rooms, bookings)

	mock.ExpectQuery(`SELECT .+ FROM rooms WHERE id = \?`).
		WithArgs(42).
		WillReturnRows(sqlmock.NewRows(roomCols))

	rec := doJSON(t, h.GetRoom, http.MethodGet, "/v1/rooms/42", "", nil,
		map[string]string{"id": "42"})

	assert.Equal(t, http.StatusNotFound, rec.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListRooms(t *testing.T) {
	rooms, bookings, _, _, mock := newMockRepos(t)
	h := NewRoomHandler(rooms, bookings)

	mock.ExpectQuery(`SELECT .+ FROM rooms WHERE is_available = 1 ORDER BY price_per_night ASC`).
		WillReturnRows(roomRow(1, "Deluxe", 89.99))

	rec := doJSON(t, h.ListRooms, http.MethodGet, "/v1/rooms", "", nil, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var got []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "Deluxe", got[0]["type"])
	assert.Equal(t, 89.99, got[0]["price_per_night"])
	assert.Equal(t, []interface{}{"Free WiFi"}, got[0]["amenities"])
	require.NoError(t, mock.ExpectationsWereMet())
}
