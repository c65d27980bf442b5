package model

import "time"

// Booking records a user's reservation on a train as stored in the
// `bookings` table.  A booking is created atomically with the seat
// decrement that funds it and is never silently re-created; the PNR is
// unique across all bookings.
//
// Fields:
//
//	ID               – primary key identifier.
//	UserID           – user who made the booking.
//	TrainID          – train being booked.
//	BookingDate      – when the booking was made (UTC).
//	PassengersCount  – number of passengers, always >= 1.
//	TotalAmountPaise – fare snapshot x passengers, fixed at booking time.
//	Status           – booking lifecycle state.
//	PaymentStatus    – settlement state mirrored from the payment row.
//	PNR              – unique human-facing booking code.
type Booking struct {
	ID               uint64        // bookings.id
	UserID           uint64        // bookings.user_id
	TrainID          uint64        // bookings.train_id
	BookingDate      time.Time     // bookings.booking_date
	PassengersCount  uint32        // bookings.passengers_count
	TotalAmountPaise uint32        // bookings.total_amount_paise
	Status           BookingStatus // bookings.booking_status
	PaymentStatus    PaymentStatus // bookings.payment_status
	PNR              string        // bookings.pnr
}
