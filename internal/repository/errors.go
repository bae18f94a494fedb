// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios; the
// not-found values map to HTTP 404 responses.
package repository

import (
    "errors"

    "github.com/go-sql-driver/mysql"
)

// ErrRoomNotFound is returned when a room lookup by id matches nothing.
var ErrRoomNotFound = errors.New("room not found")

// ErrBookingNotFound is returned when a booking lookup, status update or
// delete targets an id that does not exist.
var ErrBookingNotFound = errors.New("booking not found")

// ErrContactNotFound is returned when a contact message lookup by id
// matches nothing.
var ErrContactNotFound = errors.New("contact not found")

// IsLockConflict reports whether err is a MySQL deadlock (1213) or lock
// wait timeout (1205).  Concurrent booking creates for the same free date
// range take gap locks on the conflict index that are compatible with each
// other but block both inserts, so InnoDB rolls one transaction back with
// 1213.  That loser lost a race against an overlapping booking and is a
// conflict, not a server failure.
func IsLockConflict(err error) bool {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Number == 1213 || me.Number == 1205
	}
	return false
}
