package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/train-ticket-booking/internal/model"
	"github.com/iliyamo/train-ticket-booking/internal/repository"
)

// PublicHandler serves the unauthenticated browse endpoints: train
// search, train details, station and railway listings.  These are the
// endpoints fronted by the Redis response cache.
type PublicHandler struct {
	Trains   *repository.TrainRepo
	Railways *repository.RailwayRepo
}

func NewPublicHandler(t *repository.TrainRepo, r *repository.RailwayRepo) *PublicHandler {
	return &PublicHandler{Trains: t, Railways: r}
}

// trainPart is the JSON shape of a train in browse responses.
type trainPart struct {
	ID                 uint64    `json:"train_id"`
	TrainNumber        string    `json:"train_number"`
	TrainName          string    `json:"train_name"`
	RailwayID          uint64    `json:"railway_id"`
	SourceStation      string    `json:"source_station"`
	DestinationStation string    `json:"destination_station"`
	DepartureTime      time.Time `json:"departure_time"`
	ArrivalTime        time.Time `json:"arrival_time"`
	TotalSeats         uint32    `json:"total_seats"`
	AvailableSeats     uint32    `json:"available_seats"`
	BaseFarePaise      uint32    `json:"base_fare_paise"`
	Status             string    `json:"train_status"`
	TrainType          string    `json:"train_type"`
}

type railwayPart struct {
	ID          uint64  `json:"railway_id"`
	RailwayName string  `json:"railway_name"`
	RailwayCode string  `json:"railway_code"`
	Contact     *string `json:"contact_number"`
	Email       *string `json:"email"`
}

func toTrainPart(t model.Train) trainPart {
	return trainPart{
		ID:                 t.ID,
		TrainNumber:        t.TrainNumber,
		TrainName:          t.TrainName,
		RailwayID:          t.RailwayID,
		SourceStation:      t.SourceStation,
		DestinationStation: t.DestinationStation,
		DepartureTime:      t.DepartureTime,
		ArrivalTime:        t.ArrivalTime,
		TotalSeats:         t.TotalSeats,
		AvailableSeats:     t.AvailableSeats,
		BaseFarePaise:      t.BaseFarePaise,
		Status:             string(t.Status),
		TrainType:          t.TrainType,
	}
}

func toTrainParts(ts []model.Train) []trainPart {
	out := make([]trainPart, 0, len(ts))
	for _, t := range ts {
		out = append(out, toTrainPart(t))
	}
	return out
}

// SearchTrains lists bookable trains, optionally filtered by the
// source, destination and date query parameters.  The date parameter
// accepts YYYY-MM-DD and limits results to departures on or after the
// start of that day (UTC).
func (h *PublicHandler) SearchTrains(c echo.Context) error {
	source := c.QueryParam("source")
	destination := c.QueryParam("destination")
	var from time.Time
	if d := c.QueryParam("date"); d != "" {
		parsed, err := time.Parse("2006-01-02", d)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
		}
		from = parsed
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	trains, err := h.Trains.Search(ctx, source, destination, from)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"trains": toTrainParts(trains), "count": len(trains)})
}

// GetTrain returns a single train by id.
func (h *PublicHandler) GetTrain(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid train id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	t, err := h.Trains.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrTrainNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "train not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"train": toTrainPart(t)})
}

// ListStations returns every station served by at least one train.
func (h *PublicHandler) ListStations(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	stations, err := h.Trains.Stations(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"stations": stations, "count": len(stations)})
}

// ListRailways returns the active railway operators.
func (h *PublicHandler) ListRailways(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	railways, err := h.Railways.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]railwayPart, 0, len(railways))
	for _, r := range railways {
		out = append(out, railwayPart{
			ID:          r.ID,
			RailwayName: r.RailwayName,
			RailwayCode: r.RailwayCode,
			Contact:     r.ContactNumber,
			Email:       r.Email,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"railways": out, "count": len(out)})
}
