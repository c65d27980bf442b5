// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingConfirmedEvent is published when a booking completes its unit of
// work. It carries enough information for downstream consumers to log,
// notify, or trigger analytics without querying the primary database.
type BookingConfirmedEvent struct {
	BookingID        uint64 `json:"booking_id"`
	UserID           uint64 `json:"user_id"`
	TrainID          uint64 `json:"train_id"`
	TrainNumber      string `json:"train_number"`
	TrainName        string `json:"train_name"`
	SourceStation    string `json:"source_station"`
	Destination      string `json:"destination_station"`
	DepartureTime    string `json:"departure_time"`
	PassengersCount  uint32 `json:"passengers_count"`
	TotalAmountPaise uint32 `json:"total_amount_paise"`
	PNR              string `json:"pnr"`
	ConfirmedAt      string `json:"confirmed_at"`
}
