package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/iliyamo/train-ticket-booking/internal/model"
)

// BookingRepo provides persistence for bookings.  Bookings are only
// ever created inside the booking service's transaction, together with
// the seat decrement that funds them; the plain read methods here back
// the listing endpoints.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// CreateTx inserts a new booking within the scope of an existing
// transaction.  It populates the generated ID and the DB-assigned
// booking date on the provided record.  A PNR collision surfaces as
// ErrDuplicate so the caller can regenerate the code and retry.  The
// caller must commit or roll back the transaction.
func (r *BookingRepo) CreateTx(ctx context.Context, tx *sql.Tx, b *model.Booking) error {
	const q = `INSERT INTO bookings (user_id, train_id, passengers_count, total_amount_paise, booking_status, payment_status, pnr)
               VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q,
		b.UserID, b.TrainID, b.PassengersCount, b.TotalAmountPaise,
		string(b.Status), string(b.PaymentStatus), b.PNR)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicate
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	return tx.QueryRowContext(ctx, `SELECT booking_date FROM bookings WHERE id = ?`, b.ID).Scan(&b.BookingDate)
}

// SetPaymentStatusTx updates the payment_status mirror column on a
// booking within the caller's transaction.
func (r *BookingRepo) SetPaymentStatusTx(ctx context.Context, tx *sql.Tx, bookingID uint64, status model.PaymentStatus) error {
	_, err := tx.ExecContext(ctx, `UPDATE bookings SET payment_status = ? WHERE id = ?`, string(status), bookingID)
	return err
}

// BookingDetail is a booking joined with its train, as returned to
// clients by the listing endpoints.
type BookingDetail struct {
	ID               uint64              `json:"booking_id"`
	UserID           uint64              `json:"user_id"`
	TrainID          uint64              `json:"train_id"`
	BookingDate      time.Time           `json:"booking_date"`
	PassengersCount  uint32              `json:"passengers_count"`
	TotalAmountPaise uint32              `json:"total_amount_paise"`
	Status           model.BookingStatus `json:"booking_status"`
	PaymentStatus    model.PaymentStatus `json:"payment_status"`
	PNR              string              `json:"pnr"`
	Train            TrainSummary        `json:"train"`
}

// TrainSummary carries the train columns nested inside a BookingDetail.
type TrainSummary struct {
	ID                 uint64    `json:"train_id"`
	TrainNumber        string    `json:"train_number"`
	TrainName          string    `json:"train_name"`
	SourceStation      string    `json:"source_station"`
	DestinationStation string    `json:"destination_station"`
	DepartureTime      time.Time `json:"departure_time"`
	ArrivalTime        time.Time `json:"arrival_time"`
	BaseFarePaise      uint32    `json:"base_fare_paise"`
	TrainType          string    `json:"train_type"`
}

const bookingDetailQuery = `SELECT b.id, b.user_id, b.train_id, b.booking_date, b.passengers_count,
       b.total_amount_paise, b.booking_status, b.payment_status, b.pnr,
       t.id, t.train_number, t.train_name, t.source_station, t.destination_station,
       t.departure_time, t.arrival_time, t.base_fare_paise, t.train_type
       FROM bookings b
       JOIN trains t ON t.id = b.train_id`

func scanBookingDetail(scan func(dest ...any) error) (BookingDetail, error) {
	var d BookingDetail
	var bookingStatus, paymentStatus string
	err := scan(&d.ID, &d.UserID, &d.TrainID, &d.BookingDate, &d.PassengersCount,
		&d.TotalAmountPaise, &bookingStatus, &paymentStatus, &d.PNR,
		&d.Train.ID, &d.Train.TrainNumber, &d.Train.TrainName, &d.Train.SourceStation,
		&d.Train.DestinationStation, &d.Train.DepartureTime, &d.Train.ArrivalTime,
		&d.Train.BaseFarePaise, &d.Train.TrainType)
	if err != nil {
		return BookingDetail{}, err
	}
	bs, ok := model.ParseBookingStatus(bookingStatus)
	if !ok {
		return BookingDetail{}, fmt.Errorf("booking %d: unknown status %q", d.ID, bookingStatus)
	}
	ps, ok := model.ParsePaymentStatus(paymentStatus)
	if !ok {
		return BookingDetail{}, fmt.Errorf("booking %d: unknown payment status %q", d.ID, paymentStatus)
	}
	d.Status = bs
	d.PaymentStatus = ps
	return d, nil
}

// GetDetailByID returns one booking with its train.  Used by the
// booking endpoint to build the created response.  Returns
// sql.ErrNoRows when the id is unknown.
func (r *BookingRepo) GetDetailByID(ctx context.Context, id uint64) (BookingDetail, error) {
	row := r.db.QueryRowContext(ctx, bookingDetailQuery+` WHERE b.id = ?`, id)
	return scanBookingDetail(row.Scan)
}

// ListByUser returns all bookings made by a user, newest first, each
// with its train nested.  An empty slice is returned when the user has
// no bookings.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64) ([]BookingDetail, error) {
	return r.queryDetails(ctx, bookingDetailQuery+` WHERE b.user_id = ? ORDER BY b.booking_date DESC`, userID)
}

// ListAll returns every booking with its train, newest first.  Used by
// the admin listing endpoint.
func (r *BookingRepo) ListAll(ctx context.Context) ([]BookingDetail, error) {
	return r.queryDetails(ctx, bookingDetailQuery+` ORDER BY b.booking_date DESC`)
}

func (r *BookingRepo) queryDetails(ctx context.Context, q string, args ...any) ([]BookingDetail, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	details := make([]BookingDetail, 0)
	for rows.Next() {
		d, err := scanBookingDetail(rows.Scan)
		if err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return details, nil
}
