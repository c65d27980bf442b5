package model

import "time"

// Payment records the settlement of a booking as stored in the
// `payments` table.  Each booking has exactly one payment and the
// amount always equals the booking's total.  The transaction id is
// unique across all payments.
//
// Fields:
//
//	ID            – primary key identifier.
//	BookingID     – booking being paid for (one-to-one).
//	AmountPaise   – amount charged, equal to the booking total.
//	Method        – payment instrument used.
//	TransactionID – unique external transaction reference.
//	Status        – settlement state.
//	PaymentDate   – when the payment was recorded (UTC).
type Payment struct {
	ID            uint64        // payments.id
	BookingID     uint64        // payments.booking_id
	AmountPaise   uint32        // payments.amount_paise
	Method        PaymentMethod // payments.method
	TransactionID string        // payments.transaction_id
	Status        PaymentStatus // payments.status
	PaymentDate   time.Time     // payments.payment_date
}
