package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iliyamo/train-ticket-booking/internal/model"
	"github.com/iliyamo/train-ticket-booking/internal/repository"
)

// Service is the booking facade.  CreateBooking runs the whole
// reservation as one database transaction: seat decrement, booking
// insert, payment insert and the payment-status flip either all become
// durable together or none of them do.  No partial state is observable
// outside a terminal success or a full rollback.
type Service struct {
	db        *sql.DB
	allocator *Allocator
	bookings  *repository.BookingRepo
	payments  *repository.PaymentRepo
}

// NewService constructs the facade.  All dependencies must be non-nil.
func NewService(db *sql.DB, allocator *Allocator, bookings *repository.BookingRepo, payments *repository.PaymentRepo) *Service {
	if db == nil || allocator == nil || bookings == nil || payments == nil {
		panic("nil dependency passed to booking.NewService")
	}
	return &Service{db: db, allocator: allocator, bookings: bookings, payments: payments}
}

// CreateBooking reserves seats for userID on trainID and records the
// booking and its payment.  The passenger count must be at least one
// and method must name a known payment instrument; both are checked
// before anything touches the store.
//
// Error kinds: ErrValidation, ErrTrainNotFound, ErrSeatsUnavailable,
// ErrCodeGenerationExhausted, and ErrBookingAborted for store failures
// after the reservation (the rollback releases the reserved seats).
func (s *Service) CreateBooking(ctx context.Context, userID, trainID uint64, passengers uint32, method string) (*model.Booking, error) {
	if passengers < 1 {
		return nil, fmt.Errorf("%w: passengers_count must be >= 1", ErrValidation)
	}
	payMethod, ok := model.ParsePaymentMethod(method)
	if !ok {
		return nil, fmt.Errorf("%w: unknown payment method %q", ErrValidation, method)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: begin: %v", ErrBookingAborted, err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	grant, err := s.allocator.ReserveTx(ctx, tx, trainID, passengers)
	if err != nil {
		if errors.Is(err, ErrTrainNotFound) || errors.Is(err, ErrSeatsUnavailable) || errors.Is(err, ErrValidation) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: reserve: %v", ErrBookingAborted, err)
	}

	bkg, err := s.insertBooking(ctx, tx, userID, grant)
	if err != nil {
		return nil, err
	}
	if err := s.insertPayment(ctx, tx, bkg, payMethod); err != nil {
		return nil, err
	}

	if err := s.bookings.SetPaymentStatusTx(ctx, tx, bkg.ID, model.PaymentCompleted); err != nil {
		return nil, fmt.Errorf("%w: update payment status: %v", ErrBookingAborted, err)
	}
	bkg.PaymentStatus = model.PaymentCompleted

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%w: commit: %v", ErrBookingAborted, err)
	}
	committed = true
	return bkg, nil
}

// insertBooking mints a PNR and persists the booking, regenerating the
// code on a uniqueness collision up to codeAttempts times.
func (s *Service) insertBooking(ctx context.Context, tx *sql.Tx, userID uint64, grant Grant) (*model.Booking, error) {
	for attempt := 0; attempt < codeAttempts; attempt++ {
		pnr, err := NewBookingCode()
		if err != nil {
			return nil, fmt.Errorf("%w: mint booking code: %v", ErrBookingAborted, err)
		}
		bkg := &model.Booking{
			UserID:           userID,
			TrainID:          grant.TrainID,
			PassengersCount:  grant.Passengers,
			TotalAmountPaise: grant.TotalPaise(),
			Status:           model.BookingConfirmed,
			PaymentStatus:    model.PaymentPending,
			PNR:              pnr,
		}
		err = s.bookings.CreateTx(ctx, tx, bkg)
		if err == nil {
			return bkg, nil
		}
		if errors.Is(err, repository.ErrDuplicate) {
			continue
		}
		return nil, fmt.Errorf("%w: create booking: %v", ErrBookingAborted, err)
	}
	return nil, ErrCodeGenerationExhausted
}

// insertPayment mints a transaction id and persists the payment for the
// booking, with the same bounded collision retry as insertBooking.
func (s *Service) insertPayment(ctx context.Context, tx *sql.Tx, bkg *model.Booking, method model.PaymentMethod) error {
	for attempt := 0; attempt < codeAttempts; attempt++ {
		txnID, err := NewTransactionID()
		if err != nil {
			return fmt.Errorf("%w: mint transaction id: %v", ErrBookingAborted, err)
		}
		p := &model.Payment{
			BookingID:     bkg.ID,
			AmountPaise:   bkg.TotalAmountPaise,
			Method:        method,
			TransactionID: txnID,
			Status:        model.PaymentCompleted,
		}
		err = s.payments.CreateTx(ctx, tx, p)
		if err == nil {
			return nil
		}
		if errors.Is(err, repository.ErrDuplicate) {
			continue
		}
		return fmt.Errorf("%w: create payment: %v", ErrBookingAborted, err)
	}
	return ErrCodeGenerationExhausted
}
