package repository

import (
    "context"
    "database/sql"
    "encoding/json"
    "strings"

    "github.com/wildriver/resort-booking/internal/model"
)

// BookingRepo provides access to the booking ledger.  The ledger is the
// source of truth for availability: a room type is free for a date range
// exactly when no pending or confirmed booking in this table overlaps it.
// Inserts that must be conflict-safe run through the *Tx methods inside a
// transaction owned by the handler.
type BookingRepo struct {
    db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions that
// span the availability check and the insert.
func (r *BookingRepo) DB() *sql.DB { return r.db }

const bookingColumns = `id, user_id, name, email, checkin, checkout, room_type, guests, message, status, total_price, created_at, updated_at`

// overlapWhere matches bookings that block a requested half-open range
// [checkin, checkout) for a room type.  Two ranges overlap iff each starts
// before the other ends; cancelled bookings never block.
const overlapWhere = `room_type = ? AND status IN ('pending','confirmed') AND checkin < ? AND checkout > ?`

func scanBooking(row interface{ Scan(...interface{}) error }) (model.Booking, error) {
    var b model.Booking
    var userID sql.NullInt64
    var message sql.NullString
    err := row.Scan(&b.ID, &userID, &b.Name, &b.Email, &b.Checkin, &b.Checkout,
        &b.RoomType, &b.Guests, &message, &b.Status, &b.TotalPrice, &b.CreatedAt, &b.UpdatedAt)
    if err != nil {
        return model.Booking{}, err
    }
    if userID.Valid {
        uid := uint64(userID.Int64)
        b.UserID = &uid
    }
    if message.Valid {
        b.Message = message.String
    }
    return b, nil
}

// CountOverlapping returns how many pending or confirmed bookings for the
// room type intersect the half-open range [checkin, checkout).  Dates are
// passed in wire format (YYYY-MM-DD).  This is the read used by the
// availability check endpoint; it takes no locks and may go stale the
// moment it returns.
func (r *BookingRepo) CountOverlapping(ctx context.Context, roomType, checkin, checkout string) (int, error) {
    const q = `SELECT COUNT(*) FROM bookings WHERE ` + overlapWhere
    var n int
    err := r.db.QueryRowContext(ctx, q, roomType, checkout, checkin).Scan(&n)
    return n, err
}

// CountOverlappingTx is the transactional variant used on the booking write
// path.  FOR UPDATE locks the matching rows (and, through the conflict
// index, the gap the new range would occupy) so that two concurrent
// overlapping inserts serialize: the second sees the first's row and the
// handler returns a conflict instead of double-booking the room type.
func (r *BookingRepo) CountOverlappingTx(ctx context.Context, tx *sql.Tx, roomType, checkin, checkout string) (int, error) {
    const q = `SELECT COUNT(*) FROM bookings WHERE ` + overlapWhere + ` FOR UPDATE`
    var n int
    err := tx.QueryRowContext(ctx, q, roomType, checkout, checkin).Scan(&n)
    return n, err
}

// CreateTx inserts a new booking within the scope of an existing
// transaction.  It scans the full row back onto the provided record so the
// caller returns the persisted identity, defaults and timestamps.  The
// caller must commit or rollback the transaction.
func (r *BookingRepo) CreateTx(ctx context.Context, tx *sql.Tx, b *model.Booking) error {
    const q = `INSERT INTO bookings (user_id, name, email, checkin, checkout, room_type, guests, message, status, total_price)
               VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
    var userID interface{}
    if b.UserID != nil {
        userID = *b.UserID
    }
    res, err := tx.ExecContext(ctx, q, userID, b.Name, b.Email,
        b.Checkin.Format(model.DateLayout), b.Checkout.Format(model.DateLayout),
        b.RoomType, b.Guests, b.Message, b.Status, b.TotalPrice)
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    const sel = `SELECT ` + bookingColumns + ` FROM bookings WHERE id = ?`
    created, err := scanBooking(tx.QueryRowContext(ctx, sel, id))
    if err != nil {
        return err
    }
    *b = created
    return nil
}

// GetByID fetches a single booking.  Returns ErrBookingNotFound when the id
// does not exist.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (model.Booking, error) {
    const q = `SELECT ` + bookingColumns + ` FROM bookings WHERE id = ?`
    b, err := scanBooking(r.db.QueryRowContext(ctx, q, id))
    if err == sql.ErrNoRows {
        return model.Booking{}, ErrBookingNotFound
    }
    return b, err
}

// ListByUser returns all bookings owned by a user, newest first.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Booking, error) {
    const q = `SELECT ` + bookingColumns + ` FROM bookings WHERE user_id = ? ORDER BY created_at DESC`
    return r.list(ctx, q, userID)
}

// ListRecentByUser returns the user's most recent bookings, limited.
func (r *BookingRepo) ListRecentByUser(ctx context.Context, userID uint64, limit int) ([]model.Booking, error) {
    const q = `SELECT ` + bookingColumns + ` FROM bookings WHERE user_id = ? ORDER BY created_at DESC LIMIT ?`
    return r.list(ctx, q, userID, limit)
}

// ListRecent returns the most recent bookings across all users, limited.
func (r *BookingRepo) ListRecent(ctx context.Context, limit int) ([]model.Booking, error) {
    const q = `SELECT ` + bookingColumns + ` FROM bookings ORDER BY created_at DESC LIMIT ?`
    return r.list(ctx, q, limit)
}

func (r *BookingRepo) list(ctx context.Context, q string, args ...interface{}) ([]model.Booking, error) {
    rows, err := r.db.QueryContext(ctx, q, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.Booking, 0)
    for rows.Next() {
        b, err := scanBooking(rows)
        if err != nil {
            return nil, err
        }
        out = append(out, b)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}

// UpdateStatus persists a new status on an existing booking and returns the
// updated record.  The total price is deliberately untouched: it is a
// creation-time snapshot.  Returns ErrBookingNotFound for an unknown id.
func (r *BookingRepo) UpdateStatus(ctx context.Context, id uint64, status string) (model.Booking, error) {
    if _, err := r.GetByID(ctx, id); err != nil {
        return model.Booking{}, err
    }
    const q = `UPDATE bookings SET status = ? WHERE id = ?`
    if _, err := r.db.ExecContext(ctx, q, status, id); err != nil {
        return model.Booking{}, err
    }
    return r.GetByID(ctx, id)
}

// Delete hard-deletes a booking.  Returns ErrBookingNotFound when nothing
// was deleted.
func (r *BookingRepo) Delete(ctx context.Context, id uint64) error {
    res, err := r.db.ExecContext(ctx, `DELETE FROM bookings WHERE id = ?`, id)
    if err != nil {
        return err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if n == 0 {
        return ErrBookingNotFound
    }
    return nil
}

// UserStats aggregates one user's booking history for the dashboard:
// total count, counts per active status and the amount spent across
// confirmed bookings.
type UserStats struct {
    TotalBookings int     `json:"totalBookings"`
    Pending       int     `json:"pending"`
    Confirmed     int     `json:"confirmed"`
    TotalSpent    float64 `json:"totalSpent"`
}

// StatsByUser computes UserStats with a single conditional aggregate.
func (r *BookingRepo) StatsByUser(ctx context.Context, userID uint64) (UserStats, error) {
    const q = `SELECT COUNT(*),
                      COALESCE(SUM(status = 'pending'), 0),
                      COALESCE(SUM(status = 'confirmed'), 0),
                      COALESCE(SUM(CASE WHEN status = 'confirmed' THEN total_price ELSE 0 END), 0)
               FROM bookings WHERE user_id = ?`
    var s UserStats
    err := r.db.QueryRowContext(ctx, q, userID).Scan(&s.TotalBookings, &s.Pending, &s.Confirmed, &s.TotalSpent)
    return s, err
}

// Count returns the total number of bookings.
func (r *BookingRepo) Count(ctx context.Context) (int, error) {
    var n int
    err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM bookings`).Scan(&n)
    return n, err
}

// CountConfirmed returns the number of confirmed bookings.
func (r *BookingRepo) CountConfirmed(ctx context.Context) (int, error) {
    var n int
    err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM bookings WHERE status = 'confirmed'`).Scan(&n)
    return n, err
}

// TotalRevenue sums total_price across confirmed bookings.
func (r *BookingRepo) TotalRevenue(ctx context.Context) (float64, error) {
    var total float64
    err := r.db.QueryRowContext(ctx,
        `SELECT COALESCE(SUM(total_price), 0) FROM bookings WHERE status = 'confirmed'`).Scan(&total)
    return total, err
}

// MostBookedRoomType returns the room type with the most bookings, or
// "N/A" when the ledger is empty.
func (r *BookingRepo) MostBookedRoomType(ctx context.Context) (string, error) {
    const q = `SELECT room_type FROM bookings GROUP BY room_type ORDER BY COUNT(*) DESC LIMIT 1`
    var roomType string
    err := r.db.QueryRowContext(ctx, q).Scan(&roomType)
    if err == sql.ErrNoRows {
        return "N/A", nil
    }
    if err != nil {
        return "", err
    }
    return roomType, nil
}

// AdminBookingDetail is a booking joined with its owner's name and email for
// the admin list.  Both are nil for anonymous bookings.
type AdminBookingDetail struct {
    model.Booking
    UserName  *string `json:"user_name"`
    UserEmail *string `json:"user_email"`
}

// MarshalJSON merges the booking fields with the joined user columns.  The
// embedded Booking marshaler would otherwise shadow the extra fields.
func (d AdminBookingDetail) MarshalJSON() ([]byte, error) {
    base, err := d.Booking.MarshalJSON()
    if err != nil {
        return nil, err
    }
    extra, err := json.Marshal(struct {
        UserName  *string `json:"user_name"`
        UserEmail *string `json:"user_email"`
    }{d.UserName, d.UserEmail})
    if err != nil {
        return nil, err
    }
    merged := append(base[:len(base)-1], ',')
    return append(merged, extra[1:]...), nil
}

// ListAllWithUser returns every booking, newest first, each carrying the
// owning user's name and email when the booking is not anonymous.
func (r *BookingRepo) ListAllWithUser(ctx context.Context) ([]AdminBookingDetail, error) {
    const q = `SELECT b.id, b.user_id, b.name, b.email, b.checkin, b.checkout, b.room_type,
                      b.guests, b.message, b.status, b.total_price, b.created_at, b.updated_at,
                      u.name, u.email
               FROM bookings b
               LEFT JOIN users u ON u.id = b.user_id
               ORDER BY b.created_at DESC`
    rows, err := r.db.QueryContext(ctx, q)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]AdminBookingDetail, 0)
    for rows.Next() {
        var d AdminBookingDetail
        var userID sql.NullInt64
        var message, userName, userEmail sql.NullString
        if err := rows.Scan(&d.ID, &userID, &d.Name, &d.Email, &d.Checkin, &d.Checkout,
            &d.RoomType, &d.Guests, &message, &d.Status, &d.TotalPrice, &d.CreatedAt, &d.UpdatedAt,
            &userName, &userEmail); err != nil {
            return nil, err
        }
        if userID.Valid {
            uid := uint64(userID.Int64)
            d.UserID = &uid
        }
        if message.Valid {
            d.Message = message.String
        }
        if userName.Valid {
            n := userName.String
            d.UserName = &n
        }
        if userEmail.Valid {
            e := strings.ToLower(userEmail.String)
            d.UserEmail = &e
        }
        out = append(out, d)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}
