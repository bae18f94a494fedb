package repository

import (
    "context"
    "database/sql"
    "encoding/json"

    "github.com/wildriver/resort-booking/internal/model"
)

// RoomRepo provides access to the room catalog.  The catalog is read-mostly:
// the public site lists it and the booking path resolves nightly prices from
// it, while inserts and updates happen only through admin endpoints.
type RoomRepo struct {
    db *sql.DB
}

// NewRoomRepo returns a new RoomRepo bound to the given database.
func NewRoomRepo(db *sql.DB) *RoomRepo { return &RoomRepo{db: db} }

const roomColumns = `id, name, type, description, price_per_night, capacity, amenities, image_url, is_available, created_at, updated_at`

// scanRoom reads one room row.  Amenities are stored as a JSON array and
// decode into an empty slice when the column is NULL so responses always
// carry a list.
func scanRoom(row interface{ Scan(...interface{}) error }) (model.Room, error) {
    var r model.Room
    var amenities []byte
    var imageURL sql.NullString
    err := row.Scan(&r.ID, &r.Name, &r.Type, &r.Description, &r.PricePerNight,
        &r.Capacity, &amenities, &imageURL, &r.IsAvailable, &r.CreatedAt, &r.UpdatedAt)
    if err != nil {
        return model.Room{}, err
    }
    r.Amenities = []string{}
    if len(amenities) > 0 {
        _ = json.Unmarshal(amenities, &r.Amenities)
    }
    if imageURL.Valid {
        u := imageURL.String
        r.ImageURL = &u
    }
    return r, nil
}

// GetByID fetches a single room.  Returns ErrRoomNotFound when the id does
// not exist.
func (r *RoomRepo) GetByID(ctx context.Context, id uint64) (model.Room, error) {
    const q = `SELECT ` + roomColumns + ` FROM rooms WHERE id = ?`
    room, err := scanRoom(r.db.QueryRowContext(ctx, q, id))
    if err == sql.ErrNoRows {
        return model.Room{}, ErrRoomNotFound
    }
    return room, err
}

// ListAvailable returns all rooms currently offered, cheapest first.
func (r *RoomRepo) ListAvailable(ctx context.Context) ([]model.Room, error) {
    const q = `SELECT ` + roomColumns + ` FROM rooms WHERE is_available = 1 ORDER BY price_per_night ASC`
    return r.list(ctx, q)
}

// ListAvailableByType returns offered rooms of one category, cheapest first.
func (r *RoomRepo) ListAvailableByType(ctx context.Context, roomType string) ([]model.Room, error) {
    const q = `SELECT ` + roomColumns + ` FROM rooms WHERE type = ? AND is_available = 1 ORDER BY price_per_night ASC`
    return r.list(ctx, q, roomType)
}

// ListAll returns the full catalog for the admin dashboard, newest first.
func (r *RoomRepo) ListAll(ctx context.Context) ([]model.Room, error) {
    const q = `SELECT ` + roomColumns + ` FROM rooms ORDER BY created_at DESC`
    return r.list(ctx, q)
}

func (r *RoomRepo) list(ctx context.Context, q string, args ...interface{}) ([]model.Room, error) {
    rows, err := r.db.QueryContext(ctx, q, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.Room, 0)
    for rows.Next() {
        room, err := scanRoom(rows)
        if err != nil {
            return nil, err
        }
        out = append(out, room)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}

// FindByType returns the first room carrying the given type string, used to
// resolve the nightly rate when pricing a booking.  Returns ErrRoomNotFound
// when no catalog row matches; callers fall back to the configured default
// rate in that case rather than failing the booking.
func (r *RoomRepo) FindByType(ctx context.Context, roomType string) (model.Room, error) {
    const q = `SELECT ` + roomColumns + ` FROM rooms WHERE type = ? ORDER BY id ASC LIMIT 1`
    room, err := scanRoom(r.db.QueryRowContext(ctx, q, roomType))
    if err == sql.ErrNoRows {
        return model.Room{}, ErrRoomNotFound
    }
    return room, err
}

// Create inserts a new catalog row and returns it with generated id and
// timestamps populated.
func (r *RoomRepo) Create(ctx context.Context, room *model.Room) error {
    amenities, err := json.Marshal(room.Amenities)
    if err != nil {
        return err
    }
    const q = `INSERT INTO rooms (name, type, description, price_per_night, capacity, amenities, image_url, is_available)
               VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
    res, err := r.db.ExecContext(ctx, q, room.Name, room.Type, room.Description,
        room.PricePerNight, room.Capacity, amenities, room.ImageURL, room.IsAvailable)
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    created, err := r.GetByID(ctx, uint64(id))
    if err != nil {
        return err
    }
    *room = created
    return nil
}

// Update overwrites the mutable fields of a catalog row.  Returns
// ErrRoomNotFound when the id does not exist.
func (r *RoomRepo) Update(ctx context.Context, room *model.Room) error {
    amenities, err := json.Marshal(room.Amenities)
    if err != nil {
        return err
    }
    const q = `UPDATE rooms SET name = ?, type = ?, description = ?, price_per_night = ?,
               capacity = ?, amenities = ?, image_url = ?, is_available = ? WHERE id = ?`
    if _, err := r.db.ExecContext(ctx, q, room.Name, room.Type, room.Description,
        room.PricePerNight, room.Capacity, amenities, room.ImageURL, room.IsAvailable, room.ID); err != nil {
        return err
    }
    updated, err := r.GetByID(ctx, room.ID)
    if err != nil {
        return err
    }
    *room = updated
    return nil
}

// Delete removes a catalog row.  Returns ErrRoomNotFound when nothing was
// deleted.
func (r *RoomRepo) Delete(ctx context.Context, id uint64) error {
    res, err := r.db.ExecContext(ctx, `DELETE FROM rooms WHERE id = ?`, id)
    if err != nil {
        return err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if n == 0 {
        return ErrRoomNotFound
    }
    return nil
}

// Count returns the catalog size for the admin stats panel.
func (r *RoomRepo) Count(ctx context.Context) (int, error) {
    var n int
    err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM rooms`).Scan(&n)
    return n, err
}
