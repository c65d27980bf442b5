package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/train-ticket-booking/internal/model"
)

// RailwayRepo provides read access to the railways table.  Railways are
// reference data seeded by migrations; only listing is exposed.
type RailwayRepo struct {
	db *sql.DB
}

// NewRailwayRepo returns a new RailwayRepo bound to the given database.
func NewRailwayRepo(db *sql.DB) *RailwayRepo { return &RailwayRepo{db: db} }

// List returns all active railways ordered by name.
func (r *RailwayRepo) List(ctx context.Context) ([]model.Railway, error) {
	const q = `SELECT id, railway_name, railway_code, contact_number, email, is_active
               FROM railways WHERE is_active = 1 ORDER BY railway_name`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Railway, 0)
	for rows.Next() {
		var rw model.Railway
		if err := rows.Scan(&rw.ID, &rw.RailwayName, &rw.RailwayCode, &rw.ContactNumber, &rw.Email, &rw.IsActive); err != nil {
			return nil, err
		}
		out = append(out, rw)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
