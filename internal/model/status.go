package model

// This file defines the closed sets of status values used across the
// booking domain.  The database stores plain strings; the repository
// layer converts between the typed variants declared here and their
// string form at the scan/exec boundary.  Parse helpers reject any
// value outside the closed set so that an unexpected row never leaks
// an unknown status into business logic.

// BookingStatus describes the lifecycle state of a booking.
type BookingStatus string

const (
	BookingConfirmed BookingStatus = "confirmed"
	BookingPending   BookingStatus = "pending"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

// ParseBookingStatus maps a stored string onto a BookingStatus.  The
// boolean result is false when the value is not part of the closed set.
func ParseBookingStatus(s string) (BookingStatus, bool) {
	switch BookingStatus(s) {
	case BookingConfirmed, BookingPending, BookingCancelled, BookingCompleted:
		return BookingStatus(s), true
	}
	return "", false
}

// PaymentStatus describes the settlement state of a payment and of the
// payment_status column on bookings.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
	PaymentRefunded  PaymentStatus = "refunded"
)

// ParsePaymentStatus maps a stored string onto a PaymentStatus.
func ParsePaymentStatus(s string) (PaymentStatus, bool) {
	switch PaymentStatus(s) {
	case PaymentPending, PaymentCompleted, PaymentFailed, PaymentRefunded:
		return PaymentStatus(s), true
	}
	return "", false
}

// PaymentMethod enumerates the accepted payment instruments.
type PaymentMethod string

const (
	MethodCreditCard PaymentMethod = "credit_card"
	MethodDebitCard  PaymentMethod = "debit_card"
	MethodUPI        PaymentMethod = "upi"
	MethodNetBanking PaymentMethod = "net_banking"
)

// ParsePaymentMethod validates a client-supplied payment method string.
func ParsePaymentMethod(s string) (PaymentMethod, bool) {
	switch PaymentMethod(s) {
	case MethodCreditCard, MethodDebitCard, MethodUPI, MethodNetBanking:
		return PaymentMethod(s), true
	}
	return "", false
}

// TrainStatus describes the operational state of a train.
type TrainStatus string

const (
	TrainScheduled TrainStatus = "scheduled"
	TrainDelayed   TrainStatus = "delayed"
	TrainCancelled TrainStatus = "cancelled"
	TrainCompleted TrainStatus = "completed"
)

// ParseTrainStatus maps a stored string onto a TrainStatus.
func ParseTrainStatus(s string) (TrainStatus, bool) {
	switch TrainStatus(s) {
	case TrainScheduled, TrainDelayed, TrainCancelled, TrainCompleted:
		return TrainStatus(s), true
	}
	return "", false
}
