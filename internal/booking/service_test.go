package booking

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/iliyamo/train-ticket-booking/internal/model"
	"github.com/iliyamo/train-ticket-booking/internal/repository"
)

func newTestService(t *testing.T) (*Service, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	trains := repository.NewTrainRepo(db)
	svc := NewService(db, NewAllocator(trains), repository.NewBookingRepo(db), repository.NewPaymentRepo(db))
	return svc, mock, func() { _ = db.Close() }
}

func expectReserve(mock sqlmock.Sqlmock, trainID uint64, seats uint32, fare uint32) {
	mock.ExpectExec("UPDATE trains SET available_seats = available_seats -").
		WithArgs(seats, trainID, seats).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT base_fare_paise FROM trains").
		WithArgs(trainID).
		WillReturnRows(sqlmock.NewRows([]string{"base_fare_paise"}).AddRow(fare))
}

func expectBookingInsert(mock sqlmock.Sqlmock, userID, trainID uint64, seats, total uint32, bookingID int64) {
	mock.ExpectExec("INSERT INTO bookings").
		WithArgs(userID, trainID, seats, total, "confirmed", "pending", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(bookingID, 1))
	mock.ExpectQuery("SELECT booking_date FROM bookings").
		WithArgs(uint64(bookingID)).
		WillReturnRows(sqlmock.NewRows([]string{"booking_date"}).AddRow(time.Now().UTC()))
}

func expectPaymentInsert(mock sqlmock.Sqlmock, bookingID uint64, total uint32, paymentID int64) {
	mock.ExpectExec("INSERT INTO payments").
		WithArgs(bookingID, total, "credit_card", sqlmock.AnyArg(), "completed").
		WillReturnResult(sqlmock.NewResult(paymentID, 1))
	mock.ExpectQuery("SELECT payment_date FROM payments").
		WithArgs(uint64(paymentID)).
		WillReturnRows(sqlmock.NewRows([]string{"payment_date"}).AddRow(time.Now().UTC()))
}

func TestCreateBookingSuccess(t *testing.T) {
	svc, mock, done := newTestService(t)
	defer done()

	mock.ExpectBegin()
	expectReserve(mock, 7, 2, 5000)
	expectBookingInsert(mock, 42, 7, 2, 10000, 11)
	expectPaymentInsert(mock, 11, 10000, 21)
	mock.ExpectExec("UPDATE bookings SET payment_status").
		WithArgs("completed", uint64(11)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	bkg, err := svc.CreateBooking(context.Background(), 42, 7, 2, "credit_card")
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if bkg.ID != 11 {
		t.Fatalf("booking id = %d, want 11", bkg.ID)
	}
	if bkg.TotalAmountPaise != 10000 {
		t.Fatalf("total = %d, want fare x passengers = 10000", bkg.TotalAmountPaise)
	}
	if bkg.Status != model.BookingConfirmed {
		t.Fatalf("status = %q, want confirmed", bkg.Status)
	}
	if bkg.PaymentStatus != model.PaymentCompleted {
		t.Fatalf("payment status = %q, want completed", bkg.PaymentStatus)
	}
	if len(bkg.PNR) != 10 {
		t.Fatalf("pnr %q: length %d, want 10", bkg.PNR, len(bkg.PNR))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateBookingLastSeat(t *testing.T) {
	svc, mock, done := newTestService(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE trains SET available_seats = available_seats -").
		WithArgs(uint32(1), uint64(3), uint32(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT base_fare_paise FROM trains").
		WithArgs(uint64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"base_fare_paise"}).AddRow(50))
	expectBookingInsert(mock, 42, 3, 1, 50, 14)
	expectPaymentInsert(mock, 14, 50, 24)
	mock.ExpectExec("UPDATE bookings SET payment_status").
		WithArgs("completed", uint64(14)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	bkg, err := svc.CreateBooking(context.Background(), 42, 3, 1, "credit_card")
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if bkg.TotalAmountPaise != 50 {
		t.Fatalf("total = %d, want 50", bkg.TotalAmountPaise)
	}
	if bkg.PaymentStatus != model.PaymentCompleted {
		t.Fatalf("payment status = %q, want completed", bkg.PaymentStatus)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateBookingInsufficientSeatsRollsBack(t *testing.T) {
	svc, mock, done := newTestService(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE trains SET available_seats = available_seats -").
		WithArgs(uint32(5), uint64(7), uint32(5)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT available_seats FROM trains").
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"available_seats"}).AddRow(3))
	mock.ExpectRollback()

	_, err := svc.CreateBooking(context.Background(), 42, 7, 5, "upi")
	if !errors.Is(err, ErrSeatsUnavailable) {
		t.Fatalf("expected ErrSeatsUnavailable, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateBookingTrainNotFound(t *testing.T) {
	svc, mock, done := newTestService(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE trains SET available_seats = available_seats -").
		WithArgs(uint32(1), uint64(999), uint32(1)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT available_seats FROM trains").
		WithArgs(uint64(999)).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	_, err := svc.CreateBooking(context.Background(), 42, 999, 1, "upi")
	if !errors.Is(err, ErrTrainNotFound) {
		t.Fatalf("expected ErrTrainNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateBookingValidationBeforeStore(t *testing.T) {
	svc, mock, done := newTestService(t)
	defer done()

	if _, err := svc.CreateBooking(context.Background(), 42, 7, 0, "upi"); !errors.Is(err, ErrValidation) {
		t.Fatalf("zero passengers: expected ErrValidation, got %v", err)
	}
	if _, err := svc.CreateBooking(context.Background(), 42, 7, 1, "barter"); !errors.Is(err, ErrValidation) {
		t.Fatalf("unknown method: expected ErrValidation, got %v", err)
	}
	// No expectations were declared, so any database call would have
	// failed the calls above.
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("store was touched during validation: %v", err)
	}
}

func TestCreateBookingRegeneratesPNROnCollision(t *testing.T) {
	svc, mock, done := newTestService(t)
	defer done()

	mock.ExpectBegin()
	expectReserve(mock, 7, 1, 5000)
	mock.ExpectExec("INSERT INTO bookings").
		WithArgs(uint64(42), uint64(7), uint32(1), uint32(5000), "confirmed", "pending", sqlmock.AnyArg()).
		WillReturnError(errors.New("Error 1062 (23000): Duplicate entry 'ABCDEF1234' for key 'bookings.uq_bookings_pnr'"))
	expectBookingInsert(mock, 42, 7, 1, 5000, 12)
	expectPaymentInsert(mock, 12, 5000, 22)
	mock.ExpectExec("UPDATE bookings SET payment_status").
		WithArgs("completed", uint64(12)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	bkg, err := svc.CreateBooking(context.Background(), 42, 7, 1, "credit_card")
	if err != nil {
		t.Fatalf("expected success after regenerate, got %v", err)
	}
	if bkg.ID != 12 {
		t.Fatalf("booking id = %d, want 12", bkg.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateBookingGivesUpAfterRepeatedCollisions(t *testing.T) {
	svc, mock, done := newTestService(t)
	defer done()

	mock.ExpectBegin()
	expectReserve(mock, 7, 1, 5000)
	for i := 0; i < codeAttempts; i++ {
		mock.ExpectExec("INSERT INTO bookings").
			WillReturnError(errors.New("Error 1062 (23000): Duplicate entry"))
	}
	mock.ExpectRollback()

	_, err := svc.CreateBooking(context.Background(), 42, 7, 1, "credit_card")
	if !errors.Is(err, ErrCodeGenerationExhausted) {
		t.Fatalf("expected ErrCodeGenerationExhausted, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateBookingRollsBackWhenPaymentFails(t *testing.T) {
	svc, mock, done := newTestService(t)
	defer done()

	mock.ExpectBegin()
	expectReserve(mock, 7, 3, 4000)
	expectBookingInsert(mock, 42, 7, 3, 12000, 13)
	mock.ExpectExec("INSERT INTO payments").
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	_, err := svc.CreateBooking(context.Background(), 42, 7, 3, "debit_card")
	if !errors.Is(err, ErrBookingAborted) {
		t.Fatalf("expected ErrBookingAborted, got %v", err)
	}
	// The rollback is the compensation: no separate seat release runs,
	// so no extra UPDATE expectation exists to satisfy.
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestConcurrentBookingsExactlyOneWins(t *testing.T) {
	svc, mock, done := newTestService(t)
	defer done()

	// Two seats left; two requests race, each wanting both seats.
	// Unordered matching hands the successful conditional UPDATE to
	// whichever request reaches the store first and the zero-row
	// result to the other.
	mock.MatchExpectationsInOrder(false)
	mock.ExpectBegin()
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE trains SET available_seats = available_seats -").
		WithArgs(uint32(2), uint64(7), uint32(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE trains SET available_seats = available_seats -").
		WithArgs(uint32(2), uint64(7), uint32(2)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT base_fare_paise FROM trains").
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"base_fare_paise"}).AddRow(10000))
	mock.ExpectQuery("SELECT available_seats FROM trains").
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"available_seats"}).AddRow(0))
	mock.ExpectExec("INSERT INTO bookings").
		WillReturnResult(sqlmock.NewResult(11, 1))
	mock.ExpectQuery("SELECT booking_date FROM bookings").
		WillReturnRows(sqlmock.NewRows([]string{"booking_date"}).AddRow(time.Now().UTC()))
	mock.ExpectExec("INSERT INTO payments").
		WillReturnResult(sqlmock.NewResult(21, 1))
	mock.ExpectQuery("SELECT payment_date FROM payments").
		WillReturnRows(sqlmock.NewRows([]string{"payment_date"}).AddRow(time.Now().UTC()))
	mock.ExpectExec("UPDATE bookings SET payment_status").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectRollback()

	var wg sync.WaitGroup
	results := make([]error, 2)
	granted := make([]*model.Booking, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			granted[i], results[i] = svc.CreateBooking(context.Background(), uint64(100+i), 7, 2, "upi")
		}(i)
	}
	wg.Wait()

	var wins, losses int
	for i, err := range results {
		switch {
		case err == nil:
			wins++
			if granted[i].TotalAmountPaise != 20000 {
				t.Fatalf("winner amount = %d, want fare x passengers = 20000", granted[i].TotalAmountPaise)
			}
		case errors.Is(err, ErrSeatsUnavailable):
			losses++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if wins != 1 || losses != 1 {
		t.Fatalf("wins=%d losses=%d, want exactly one of each", wins, losses)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
