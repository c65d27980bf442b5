package model

import "time"

// Train represents a scheduled service between two stations as stored
// in the `trains` table.  Capacity is modelled as a single shared
// counter: TotalSeats is fixed at creation and AvailableSeats is the
// mutable remainder.  AvailableSeats must only ever change through the
// seat allocator so that 0 <= available <= total holds at all times.
//
// Fields:
//
//	ID                 – primary key identifier.
//	TrainNumber        – unique human-facing train number.
//	TrainName          – display name of the service.
//	RailwayID          – operating railway (foreign key).
//	SourceStation      – departure station name.
//	DestinationStation – arrival station name.
//	DepartureTime      – scheduled departure (UTC).
//	ArrivalTime        – scheduled arrival (UTC).
//	TotalSeats         – fixed capacity of the train.
//	AvailableSeats     – seats still open for booking.
//	BaseFarePaise      – fare per passenger in paise.
//	Status             – operational state of the train.
//	TrainType          – free-form category (Express, Superfast, ...).
//	CreatedBy          – administrator who created the record.
//	CreatedAt          – creation timestamp.
type Train struct {
	ID                 uint64      // trains.id
	TrainNumber        string      // trains.train_number
	TrainName          string      // trains.train_name
	RailwayID          uint64      // trains.railway_id
	SourceStation      string      // trains.source_station
	DestinationStation string      // trains.destination_station
	DepartureTime      time.Time   // trains.departure_time
	ArrivalTime        time.Time   // trains.arrival_time
	TotalSeats         uint32      // trains.total_seats
	AvailableSeats     uint32      // trains.available_seats
	BaseFarePaise      uint32      // trains.base_fare_paise
	Status             TrainStatus // trains.train_status
	TrainType          string      // trains.train_type
	CreatedBy          uint64      // trains.created_by
	CreatedAt          time.Time   // trains.created_at
}
