package repository

import (
    "context"
    "database/sql"
    "errors"
    "strings"

    "github.com/wildriver/resort-booking/internal/model"
    "github.com/wildriver/resort-booking/internal/utils"
)

// UserRepo provides access to the `users` table.
type UserRepo struct{ DB *sql.DB }

// NewUserRepo returns a new UserRepo bound to the given database.
func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

var ErrEmailExists = errors.New("email already exists")

const userColumns = `id, name, email, password_hash, role, created_at, updated_at`

// Create inserts a user with a bcrypt-hashed password and returns its ID.
// Duplicate emails surface as ErrEmailExists.
func (r *UserRepo) Create(ctx context.Context, name, email, password, role string, cost int) (uint64, error) {
    email = strings.ToLower(strings.TrimSpace(email))
    hash, err := utils.HashPassword(password, cost)
    if err != nil {
        return 0, err
    }
    res, err := r.DB.ExecContext(ctx,
        "INSERT INTO users (name, email, password_hash, role) VALUES (?,?,?,?)",
        name, email, hash, role)
    if err != nil {
        // MySQL duplicate-key error code
        if strings.Contains(strings.ToLower(err.Error()), "1062") {
            return 0, ErrEmailExists
        }
        return 0, err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return 0, err
    }
    return uint64(id), nil
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
    email = strings.ToLower(strings.TrimSpace(email))
    var u model.User
    err := r.DB.QueryRowContext(ctx,
        "SELECT "+userColumns+" FROM users WHERE email=? LIMIT 1", email).
        Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt)
    return u, err
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
    var u model.User
    err := r.DB.QueryRowContext(ctx,
        "SELECT "+userColumns+" FROM users WHERE id=? LIMIT 1", id).
        Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt)
    return u, err
}

// Count returns the number of registered users.
func (r *UserRepo) Count(ctx context.Context) (int, error) {
    var n int
    err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n)
    return n, err
}

// UserWithBookings pairs a user with their booking history for the admin
// users view.  Password hashes are excluded by the model's json tags.
type UserWithBookings struct {
    model.User
    Bookings []model.Booking `json:"bookings"`
}

// ListWithBookings returns all users together with their bookings.  Bookings
// for every returned user are fetched in one IN query and distributed by
// owner id.
func (r *UserRepo) ListWithBookings(ctx context.Context) ([]UserWithBookings, error) {
    rows, err := r.DB.QueryContext(ctx, "SELECT "+userColumns+" FROM users ORDER BY created_at DESC")
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]UserWithBookings, 0)
    index := make(map[uint64]int)
    for rows.Next() {
        var u model.User
        if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt); err != nil {
            return nil, err
        }
        index[u.ID] = len(out)
        out = append(out, UserWithBookings{User: u, Bookings: []model.Booking{}})
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    if len(out) == 0 {
        return out, nil
    }
    ids := make([]interface{}, 0, len(out))
    placeholders := make([]string, 0, len(out))
    for _, u := range out {
        ids = append(ids, u.ID)
        placeholders = append(placeholders, "?")
    }
    q := `SELECT ` + bookingColumns + ` FROM bookings WHERE user_id IN (` +
        strings.Join(placeholders, ",") + `) ORDER BY user_id, created_at DESC`
    brows, err := r.DB.QueryContext(ctx, q, ids...)
    if err != nil {
        return nil, err
    }
    defer brows.Close()
    for brows.Next() {
        b, err := scanBooking(brows)
        if err != nil {
            return nil, err
        }
        if b.UserID == nil {
            continue
        }
        if idx, ok := index[*b.UserID]; ok {
            out[idx].Bookings = append(out[idx].Bookings, b)
        }
    }
    if err := brows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}
