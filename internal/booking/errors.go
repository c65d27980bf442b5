// Package booking implements the seat-reservation core: the seat
// allocator, the PNR / transaction-id generator and the booking facade
// that composes them into a single transactional unit of work.
package booking

import "errors"

// Error kinds surfaced by the booking facade.  Handlers map these onto
// HTTP status codes; nothing below this package should need to inspect
// driver errors.
var (
	// ErrTrainNotFound means the requested train does not exist.
	ErrTrainNotFound = errors.New("train not found")

	// ErrSeatsUnavailable means the train exists but has fewer
	// available seats than the requested passenger count.
	ErrSeatsUnavailable = errors.New("not enough seats available")

	// ErrCodeGenerationExhausted means the bounded regenerate-and-retry
	// loop for booking codes or transaction ids ran out of attempts.
	ErrCodeGenerationExhausted = errors.New("code generation exhausted")

	// ErrBookingAborted means the store failed after the seat
	// reservation; the whole unit of work was rolled back, including
	// the seat decrement.
	ErrBookingAborted = errors.New("booking aborted")

	// ErrValidation means the request was malformed (passenger count
	// below one, unknown payment method).  Nothing was mutated.
	ErrValidation = errors.New("validation failed")
)
