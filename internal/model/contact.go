package model

import "time"

// Contact message states used by the admin inbox.
const (
    ContactNew      = "new"
    ContactRead     = "read"
    ContactResolved = "resolved"
)

// ValidContactStatus reports whether s is a known contact state.
func ValidContactStatus(s string) bool {
    switch s {
    case ContactNew, ContactRead, ContactResolved:
        return true
    }
    return false
}

// Contact is a message submitted through the public contact form and
// reviewed by admins, stored in the `contacts` table.
type Contact struct {
    ID        uint64    `json:"id"`         // contacts.id
    Name      string    `json:"name"`       // contacts.name
    Email     string    `json:"email"`      // contacts.email
    Subject   string    `json:"subject"`    // contacts.subject
    Message   string    `json:"message"`    // contacts.message
    Status    string    `json:"status"`     // contacts.status
    CreatedAt time.Time `json:"created_at"` // contacts.created_at
    UpdatedAt time.Time `json:"updated_at"` // contacts.updated_at
}
