package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/iliyamo/train-ticket-booking/internal/model"
)

// TrainRepo provides CRUD operations for trains plus the two seat-pool
// mutations used by the booking core.  available_seats is a shared
// counter; outside of Create/Update by an administrator it must only be
// touched through ReserveSeatsTx and ReleaseSeatsTx so the capacity
// invariant (0 <= available <= total) cannot be violated.
type TrainRepo struct {
	db *sql.DB
}

// NewTrainRepo returns a new TrainRepo bound to the given database.
func NewTrainRepo(db *sql.DB) *TrainRepo { return &TrainRepo{db: db} }

// DB exposes the underlying sql.DB.  It allows callers to begin
// transactions spanning multiple repositories.
func (r *TrainRepo) DB() *sql.DB { return r.db }

const trainColumns = `id, train_number, train_name, railway_id, source_station, destination_station,
       departure_time, arrival_time, total_seats, available_seats, base_fare_paise,
       train_status, train_type, created_by, created_at`

// scanTrain reads one trains row from any row scanner and converts the
// stored status string into its typed variant.
func scanTrain(scan func(dest ...any) error) (model.Train, error) {
	var t model.Train
	var status string
	err := scan(&t.ID, &t.TrainNumber, &t.TrainName, &t.RailwayID, &t.SourceStation, &t.DestinationStation,
		&t.DepartureTime, &t.ArrivalTime, &t.TotalSeats, &t.AvailableSeats, &t.BaseFarePaise,
		&status, &t.TrainType, &t.CreatedBy, &t.CreatedAt)
	if err != nil {
		return model.Train{}, err
	}
	st, ok := model.ParseTrainStatus(status)
	if !ok {
		return model.Train{}, fmt.Errorf("train %d: unknown status %q", t.ID, status)
	}
	t.Status = st
	return t, nil
}

// Create inserts a new train.  The available seat pool always starts at
// full capacity regardless of what the caller put in AvailableSeats.
// On success the generated ID and DB defaults are populated on t.
func (r *TrainRepo) Create(ctx context.Context, t *model.Train) error {
	const q = `INSERT INTO trains (train_number, train_name, railway_id, source_station, destination_station,
               departure_time, arrival_time, total_seats, available_seats, base_fare_paise, train_type, created_by)
               VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q,
		t.TrainNumber, t.TrainName, t.RailwayID, t.SourceStation, t.DestinationStation,
		t.DepartureTime.UTC(), t.ArrivalTime.UTC(), t.TotalSeats, t.TotalSeats, t.BaseFarePaise,
		t.TrainType, t.CreatedBy)
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
	got, err := r.GetByID(ctx, uint64(id))
	if err != nil {
		return err
	}
	*t = got
	return nil
}

// GetByID returns a single train or ErrTrainNotFound.
func (r *TrainRepo) GetByID(ctx context.Context, id uint64) (model.Train, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+trainColumns+` FROM trains WHERE id = ?`, id)
	t, err := scanTrain(row.Scan)
	if err == sql.ErrNoRows {
		return model.Train{}, ErrTrainNotFound
	}
	return t, err
}

// Search returns bookable trains (available_seats > 0), optionally
// filtered by source station, destination station and an earliest
// departure time.  Empty string / zero time disable a filter.
func (r *TrainRepo) Search(ctx context.Context, source, destination string, from time.Time) ([]model.Train, error) {
	q := `SELECT ` + trainColumns + ` FROM trains WHERE available_seats > 0`
	args := make([]any, 0, 3)
	if source != "" {
		q += ` AND source_station = ?`
		args = append(args, source)
	}
	if destination != "" {
		q += ` AND destination_station = ?`
		args = append(args, destination)
	}
	if !from.IsZero() {
		q += ` AND departure_time >= ?`
		args = append(args, from.UTC())
	}
	q += ` ORDER BY departure_time`
	return r.queryTrains(ctx, q, args...)
}

// ListAll returns every train regardless of availability.  Used by the
// admin listing endpoint.
func (r *TrainRepo) ListAll(ctx context.Context) ([]model.Train, error) {
	return r.queryTrains(ctx, `SELECT `+trainColumns+` FROM trains ORDER BY departure_time`)
}

func (r *TrainRepo) queryTrains(ctx context.Context, q string, args ...any) ([]model.Train, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Train, 0)
	for rows.Next() {
		t, err := scanTrain(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Stations returns the distinct station names appearing as either a
// source or a destination of any train, sorted alphabetically.
func (r *TrainRepo) Stations(ctx context.Context) ([]string, error) {
	const q = `SELECT source_station AS station FROM trains
               UNION SELECT destination_station FROM trains
               ORDER BY station`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]string, 0)
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update rewrites the editable columns of a train, including the seat
// counters.  Callers are expected to have recomputed available_seats so
// that the booked count is preserved when total_seats changes.
func (r *TrainRepo) Update(ctx context.Context, t *model.Train) error {
	const q = `UPDATE trains SET train_number = ?, train_name = ?, railway_id = ?, source_station = ?,
               destination_station = ?, departure_time = ?, arrival_time = ?, total_seats = ?,
               available_seats = ?, base_fare_paise = ?, train_status = ?, train_type = ?
               WHERE id = ?`
	_, err := r.db.ExecContext(ctx, q,
		t.TrainNumber, t.TrainName, t.RailwayID, t.SourceStation, t.DestinationStation,
		t.DepartureTime.UTC(), t.ArrivalTime.UTC(), t.TotalSeats, t.AvailableSeats,
		t.BaseFarePaise, string(t.Status), t.TrainType, t.ID)
	if err != nil && isDuplicateKey(err) {
		return ErrDuplicate
	}
	return err
}

// Delete removes a train only when it has no bookings.  The existence
// check and the delete run in one transaction so a concurrent booking
// cannot slip in between them.  Returns ErrConflict when bookings
// exist and ErrTrainNotFound when the id is unknown.
func (r *TrainRepo) Delete(ctx context.Context, id uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	var bookings uint64
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM bookings WHERE train_id = ?`, id).Scan(&bookings); err != nil {
		return err
	}
	if bookings > 0 {
		return ErrConflict
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM trains WHERE id = ?`, id)
	if err != nil {
		// A booking committed between the count and the delete still
		// trips the foreign key on bookings.train_id.
		if isForeignKeyViolation(err) {
			return ErrConflict
		}
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrTrainNotFound
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// ReserveSeatsTx atomically decrements the seat pool of a train within
// the caller's transaction.  The decrement and the availability check
// are a single conditional UPDATE verified by the affected-row count,
// so two concurrent reservations can never jointly oversell the train
// regardless of isolation level.  On success it returns the base fare
// at the moment of reservation; on failure it distinguishes an unknown
// train (ErrTrainNotFound) from an exhausted pool (ErrSeatsUnavailable)
// with a follow-up read.
func (r *TrainRepo) ReserveSeatsTx(ctx context.Context, tx *sql.Tx, trainID uint64, seats uint32) (uint32, error) {
	res, err := tx.ExecContext(ctx,
		`UPDATE trains SET available_seats = available_seats - ? WHERE id = ? AND available_seats >= ?`,
		seats, trainID, seats)
	if err != nil {
		return 0, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if affected == 0 {
		var available uint32
		err := tx.QueryRowContext(ctx, `SELECT available_seats FROM trains WHERE id = ?`, trainID).Scan(&available)
		if err == sql.ErrNoRows {
			return 0, ErrTrainNotFound
		}
		if err != nil {
			return 0, err
		}
		return 0, ErrSeatsUnavailable
	}
	var fare uint32
	if err := tx.QueryRowContext(ctx, `SELECT base_fare_paise FROM trains WHERE id = ?`, trainID).Scan(&fare); err != nil {
		return 0, err
	}
	return fare, nil
}

// ReleaseSeatsTx returns previously reserved seats to the pool,
// clamping at total_seats so a stray double release cannot push the
// counter past capacity.
func (r *TrainRepo) ReleaseSeatsTx(ctx context.Context, tx *sql.Tx, trainID uint64, seats uint32) error {
	_, err := tx.ExecContext(ctx,
		`UPDATE trains SET available_seats = LEAST(total_seats, available_seats + ?) WHERE id = ?`,
		seats, trainID)
	return err
}
