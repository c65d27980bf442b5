package booking

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/train-ticket-booking/internal/repository"
)

// Grant is the result of a successful seat reservation.  It carries the
// fare snapshot taken at the moment of reservation so the total amount
// of the booking is immune to a concurrent fare edit.
type Grant struct {
	TrainID       uint64
	Passengers    uint32
	BaseFarePaise uint32
}

// TotalPaise is the booking amount funded by this grant.
func (g Grant) TotalPaise() uint32 { return g.BaseFarePaise * g.Passengers }

// Allocator performs the check-then-decrement on a train's shared seat
// pool.  The decrement is a single conditional UPDATE verified by the
// affected-row count (see TrainRepo.ReserveSeatsTx), so reservations
// against the same train are serialized by the database row lock and
// can never jointly oversell, whatever the transaction isolation level.
type Allocator struct {
	trains *repository.TrainRepo
}

// NewAllocator returns an Allocator backed by the given train repo.
func NewAllocator(trains *repository.TrainRepo) *Allocator {
	if trains == nil {
		panic("nil TrainRepo passed to NewAllocator")
	}
	return &Allocator{trains: trains}
}

// ReserveTx reserves passengers seats on a train within the caller's
// transaction and returns the grant.  The decrement is durable once
// the transaction commits; rolling the transaction back releases the
// seats, which is how the facade compensates on downstream failure.
func (a *Allocator) ReserveTx(ctx context.Context, tx *sql.Tx, trainID uint64, passengers uint32) (Grant, error) {
	if passengers < 1 {
		return Grant{}, ErrValidation
	}
	fare, err := a.trains.ReserveSeatsTx(ctx, tx, trainID, passengers)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrTrainNotFound):
			return Grant{}, ErrTrainNotFound
		case errors.Is(err, repository.ErrSeatsUnavailable):
			return Grant{}, ErrSeatsUnavailable
		}
		return Grant{}, err
	}
	return Grant{TrainID: trainID, Passengers: passengers, BaseFarePaise: fare}, nil
}

// ReleaseTx hands the seats of a grant back to the pool.  Only needed
// when a grant must be undone outside the transaction that made it,
// e.g. a future cancellation flow; the facade itself compensates by
// rolling back.
func (a *Allocator) ReleaseTx(ctx context.Context, tx *sql.Tx, g Grant) error {
	return a.trains.ReleaseSeatsTx(ctx, tx, g.TrainID, g.Passengers)
}
