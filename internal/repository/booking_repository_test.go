package repository

import (
    "context"
    "testing"
    "time"

    "github.com/DATA-DOG/go-sqlmock"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/wildriver/resort-booking/internal/model"
)

var bookingCols = []string{
	"id", "user_id", "name", "email", "checkin", "checkout", "room_type",
	"guests", "message", "status", "total_price", "created_at", "updated_at",
}

func bookingRow(id int64, status string, total float64) *sqlmock.Rows {
	checkin := time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC)
	checkout := time.Date(2024, 2, 18, 0, 0, 0, 0, time.UTC)
	now := time.Now().UTC()
	return sqlmock.NewRows(bookingCols).AddRow(
		id, nil, "Jordan Guest", "jordan@example.com", checkin, checkout,
		"Deluxe", 2, "late arrival", status, total, now, now)
}

func newBookingRepo(t *testing.T) (*BookingRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewBookingRepo(db), mock
}

func TestCountOverlappingArgOrder(t *testing.T) {
	repo, mock := newBookingRepo(t)

	// The requested range is passed as (type, checkout, checkin): each
	// range must start before the other ends.
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM bookings WHERE room_type = \? AND status IN \('pending','confirmed'\) AND checkin < \? AND checkout > \?`).
		WithArgs("Deluxe", "2024-02-18", "2024-02-15").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	n, err := repo.CountOverlapping(context.Background(), "Deluxe", "2024-02-15", "2024-02-18")
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCountOverlappingTxLocksRows(t *testing.T) {
	repo, mock := newBookingRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM bookings WHERE room_type = .+ FOR UPDATE`).
		WithArgs("Suite", "2024-03-12", "2024-03-10").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()

	tx, err := repo.DB().BeginTx(context.Background(), nil)
	require.NoError(t, err)
	n, err := repo.CountOverlappingTx(context.Background(), tx, "Suite", "2024-03-10", "2024-03-12")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	require.NoError(t, tx.Rollback())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateTxScansBackInsertedRow(t *testing.T) {
	repo, mock := newBookingRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO bookings`).
		WithArgs(nil, "Jordan Guest", "jordan@example.com", "2024-02-15", "2024-02-18",
			"Deluxe", 2, "late arrival", model.StatusPending, 269.97).
		WillReturnResult(sqlmock.NewResult(5, 1))
	mock.ExpectQuery(`SELECT .+ FROM bookings WHERE id = \?`).
		WithArgs(int64(5)).
		WillReturnRows(bookingRow(5, model.StatusPending, 269.97))
	mock.ExpectCommit()

	tx, err := repo.DB().BeginTx(context.Background(), nil)
	require.NoError(t, err)

	b := model.Booking{
		Name:       "Jordan Guest",
		Email:      "jordan@example.com",
		Checkin:    time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC),
		Checkout:   time.Date(2024, 2, 18, 0, 0, 0, 0, time.UTC),
		RoomType:   "Deluxe",
		Guests:     2,
		Message:    "late arrival",
		Status:     model.StatusPending,
		TotalPrice: 269.97,
	}
	require.NoError(t, repo.CreateTx(context.Background(), tx, &b))
	require.NoError(t, tx.Commit())

	assert.Equal(t, uint64(5), b.ID)
	assert.Nil(t, b.UserID)
	assert.Equal(t, 269.97, b.TotalPrice)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByIDNotFound(t *testing.T) {
	repo, mock := newBookingRepo(t)

	mock.ExpectQuery(`SELECT .+ FROM bookings WHERE id = \?`).
		WithArgs(99).
		WillReturnRows(sqlmock.NewRows(bookingCols))

	_, err := repo.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrBookingNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatusKeepsTotalPrice(t *testing.T) {
	repo, mock := newBookingRepo(t)

	mock.ExpectQuery(`SELECT .+ FROM bookings WHERE id = \?`).
		WithArgs(3).
		WillReturnRows(bookingRow(3, model.StatusPending, 269.97))
	mock.ExpectExec(`UPDATE bookings SET status = \? WHERE id = \?`).
		WithArgs(model.StatusConfirmed, 3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT .+ FROM bookings WHERE id = \?`).
		WithArgs(3).
		WillReturnRows(bookingRow(3, model.StatusConfirmed, 269.97))

	b, err := repo.UpdateStatus(context.Background(), 3, model.StatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, model.StatusConfirmed, b.Status)
	assert.Equal(t, 269.97, b.TotalPrice)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteNotFound(t *testing.T) {
	repo, mock := newBookingRepo(t)

	mock.ExpectExec(`DELETE FROM bookings WHERE id = \?`).
		WithArgs(44).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.Delete(context.Background(), 44), ErrBookingNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStatsByUser(t *testing.T) {
	repo, mock := newBookingRepo(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\),`).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"total", "pending", "confirmed", "spent"}).
			AddRow(4, 1, 2, 519.96))

	s, err := repo.StatsByUser(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, UserStats{TotalBookings: 4, Pending: 1, Confirmed: 2, TotalSpent: 519.96}, s)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMostBookedRoomTypeEmptyLedger(t *testing.T) {
	repo, mock := newBookingRepo(t)

	mock.ExpectQuery(`SELECT room_type FROM bookings GROUP BY room_type`).
		WillReturnRows(sqlmock.NewRows([]string{"room_type"}))

	rt, err := repo.MostBookedRoomType(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "N/A", rt)
	require.NoError(t, mock.ExpectationsWereMet())
}
