// Package repository defines error values that are reused across multiple
// repositories. These sentinel values allow higher layers such as the
// booking service and handlers to distinguish between failure scenarios
// without parsing driver errors themselves. For example, ErrTrainNotFound
// maps to an HTTP 404 while ErrConflict signals that an operation cannot
// proceed due to dependent records (e.g. deleting a train that still has
// bookings).
package repository

import (
	"errors"
	"strings"
)

// ErrTrainNotFound is returned when a train id does not exist in the
// store.
var ErrTrainNotFound = errors.New("train not found")

// ErrSeatsUnavailable is returned by the seat reservation path when the
// train exists but has fewer available seats than requested.
var ErrSeatsUnavailable = errors.New("not enough seats available")

// ErrConflict is returned when a delete or update cannot be performed
// because of conflicting state, such as deleting a train that still has
// bookings. Handlers should translate this into an HTTP 409 response.
var ErrConflict = errors.New("conflict")

// ErrDuplicate is returned when an insert violates a uniqueness
// constraint (booking PNR, payment transaction id, train number, user
// identity). Callers decide whether to retry with a fresh value or to
// surface a conflict.
var ErrDuplicate = errors.New("duplicate entry")

// isDuplicateKey reports whether err is a MySQL duplicate-entry error
// (error number 1062).
func isDuplicateKey(err error) bool {
	return err != nil && strings.Contains(err.Error(), "1062")
}

// isForeignKeyViolation reports whether err is a MySQL
// cannot-delete-parent-row error (error number 1451).
func isForeignKeyViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "1451")
}
