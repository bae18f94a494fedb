package model

import (
    "encoding/json"
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func TestValidStatus(t *testing.T) {
	assert.True(t, ValidStatus(StatusPending))
	assert.True(t, ValidStatus(StatusConfirmed))
	assert.True(t, ValidStatus(StatusCancelled))
	assert.False(t, ValidStatus(""))
	assert.False(t, ValidStatus("PENDING"))
	assert.False(t, ValidStatus("done"))
}

func TestCanTransition(t *testing.T) {
	states := []string{StatusPending, StatusConfirmed, StatusCancelled}
	for _, from := range states {
		for _, to := range states {
			assert.True(t, CanTransition(from, to), "%s -> %s", from, to)
		}
	}
	assert.False(t, CanTransition(StatusPending, "done"))
	assert.False(t, CanTransition("unknown", StatusConfirmed))
}

func TestBookingMarshalJSONDates(t *testing.T) {
	uid := uint64(7)
	b := Booking{
		ID:         3,
		UserID:     &uid,
		Name:       "Jordan Guest",
		Email:      "jordan@example.com",
		Checkin:    time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC),
		Checkout:   time.Date(2024, 2, 18, 0, 0, 0, 0, time.UTC),
		RoomType:   "Deluxe",
		Guests:     2,
		Status:     StatusPending,
		TotalPrice: 269.97,
	}

	raw, err := json.Marshal(b)
	require.NoError(t, err)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, "2024-02-15", got["checkin"])
	assert.Equal(t, "2024-02-18", got["checkout"])
	assert.Equal(t, "pending", got["status"])
	assert.Equal(t, 269.97, got["total_price"])
	assert.Equal(t, float64(7), got["user_id"])
}

func TestBookingMarshalJSONAnonymous(t *testing.T) {
	raw, err := json.Marshal(Booking{Name: "Walk In", Status: StatusPending})
	require.NoError(t, err)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Nil(t, got["user_id"])
}

func TestValidContactStatus(t *testing.T) {
	assert.True(t, ValidContactStatus(ContactNew))
	assert.True(t, ValidContactStatus(ContactRead))
	assert.True(t, ValidContactStatus(ContactResolved))
	assert.False(t, ValidContactStatus("archived"))
}
