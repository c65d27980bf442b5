package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/train-ticket-booking/internal/model"
)

// PaymentRepo provides persistence for payments.  A payment row is
// created in the same transaction as its booking; there is exactly one
// payment per booking and the transaction id is globally unique.
type PaymentRepo struct {
	db *sql.DB
}

// NewPaymentRepo returns a new PaymentRepo bound to the given database.
func NewPaymentRepo(db *sql.DB) *PaymentRepo { return &PaymentRepo{db: db} }

// CreateTx inserts a payment within the scope of an existing
// transaction and populates the generated ID and payment date on the
// record.  A transaction-id collision surfaces as ErrDuplicate so the
// caller can regenerate and retry.
func (r *PaymentRepo) CreateTx(ctx context.Context, tx *sql.Tx, p *model.Payment) error {
	const q = `INSERT INTO payments (booking_id, amount_paise, method, transaction_id, status)
               VALUES (?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q, p.BookingID, p.AmountPaise, string(p.Method), p.TransactionID, string(p.Status))
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
	p.ID = uint64(id)
	return tx.QueryRowContext(ctx, `SELECT payment_date FROM payments WHERE id = ?`, p.ID).Scan(&p.PaymentDate)
}

// GetByBookingID returns the payment attached to a booking.
func (r *PaymentRepo) GetByBookingID(ctx context.Context, bookingID uint64) (model.Payment, error) {
	const q = `SELECT id, booking_id, amount_paise, method, transaction_id, status, payment_date
               FROM payments WHERE booking_id = ?`
	var p model.Payment
	var method, status string
	err := r.db.QueryRowContext(ctx, q, bookingID).Scan(
		&p.ID, &p.BookingID, &p.AmountPaise, &method, &p.TransactionID, &status, &p.PaymentDate)
	if err != nil {
		return model.Payment{}, err
	}
	if m, ok := model.ParsePaymentMethod(method); ok {
		p.Method = m
	}
	if s, ok := model.ParsePaymentStatus(status); ok {
		p.Status = s
	}
	return p, nil
}
