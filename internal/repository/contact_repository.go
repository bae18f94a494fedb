package repository

import (
    "context"
    "database/sql"

    "github.com/wildriver/resort-booking/internal/model"
)

// ContactRepo provides access to contact form submissions.
type ContactRepo struct {
    db *sql.DB
}

// NewContactRepo returns a new ContactRepo bound to the given database.
func NewContactRepo(db *sql.DB) *ContactRepo { return &ContactRepo{db: db} }

const contactColumns = `id, name, email, subject, message, status, created_at, updated_at`

func scanContact(row interface{ Scan(...interface{}) error }) (model.Contact, error) {
    var c model.Contact
    var subject sql.NullString
    err := row.Scan(&c.ID, &c.Name, &c.Email, &subject, &c.Message, &c.Status, &c.CreatedAt, &c.UpdatedAt)
    if err != nil {
        return model.Contact{}, err
    }
    if subject.Valid {
        c.Subject = subject.String
    }
    return c, nil
}

// Create inserts a submission and returns it with id, status and timestamps
// populated.
func (r *ContactRepo) Create(ctx context.Context, c *model.Contact) error {
    res, err := r.db.ExecContext(ctx,
        `INSERT INTO contacts (name, email, subject, message) VALUES (?, ?, ?, ?)`,
        c.Name, c.Email, c.Subject, c.Message)
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
    *c = created
    return nil
}

// GetByID fetches a single submission.  Returns ErrContactNotFound when the
// id does not exist.
func (r *ContactRepo) GetByID(ctx context.Context, id uint64) (model.Contact, error) {
    const q = `SELECT ` + contactColumns + ` FROM contacts WHERE id = ?`
    c, err := scanContact(r.db.QueryRowContext(ctx, q, id))
    if err == sql.ErrNoRows {
        return model.Contact{}, ErrContactNotFound
    }
    return c, err
}

// ListAll returns all submissions, newest first.
func (r *ContactRepo) ListAll(ctx context.Context) ([]model.Contact, error) {
    const q = `SELECT ` + contactColumns + ` FROM contacts ORDER BY created_at DESC`
    rows, err := r.db.QueryContext(ctx, q)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.Contact, 0)
    for rows.Next() {
        c, err := scanContact(rows)
        if err != nil {
            return nil, err
        }
        out = append(out, c)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}

// UpdateStatus moves a submission through the admin inbox states and
// returns the updated record.
func (r *ContactRepo) UpdateStatus(ctx context.Context, id uint64, status string) (model.Contact, error) {
    if _, err := r.GetByID(ctx, id); err != nil {
        return model.Contact{}, err
    }
    if _, err := r.db.ExecContext(ctx, `UPDATE contacts SET status = ? WHERE id = ?`, status, id); err != nil {
        return model.Contact{}, err
    }
    return r.GetByID(ctx, id)
}

// Delete removes a submission.  Returns ErrContactNotFound when nothing was
// deleted.
func (r *ContactRepo) Delete(ctx context.Context, id uint64) error {
    res, err := r.db.ExecContext(ctx, `DELETE FROM contacts WHERE id = ?`, id)
    if err != nil {
        return err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if n == 0 {
        return ErrContactNotFound
    }
    return nil
}
