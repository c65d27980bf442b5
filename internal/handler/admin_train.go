package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/train-ticket-booking/internal/model"
	"github.com/iliyamo/train-ticket-booking/internal/repository"
)

// AdminTrainHandler serves the admin-only train management endpoints.
type AdminTrainHandler struct {
	Trains *repository.TrainRepo
}

func NewAdminTrainHandler(t *repository.TrainRepo) *AdminTrainHandler {
	return &AdminTrainHandler{Trains: t}
}

type trainReq struct {
	TrainNumber        string    `json:"train_number"`
	TrainName          string    `json:"train_name"`
	RailwayID          uint64    `json:"railway_id"`
	SourceStation      string    `json:"source_station"`
	DestinationStation string    `json:"destination_station"`
	DepartureTime      time.Time `json:"departure_time"`
	ArrivalTime        time.Time `json:"arrival_time"`
	TotalSeats         uint32    `json:"total_seats"`
	BaseFarePaise      uint32    `json:"base_fare_paise"`
	TrainStatus        string    `json:"train_status"` // optional on update
	TrainType          string    `json:"train_type"`
}

func (r *trainReq) validate() string {
	r.TrainNumber = strings.TrimSpace(r.TrainNumber)
	r.TrainName = strings.TrimSpace(r.TrainName)
	r.SourceStation = strings.TrimSpace(r.SourceStation)
	r.DestinationStation = strings.TrimSpace(r.DestinationStation)
	r.TrainType = strings.TrimSpace(r.TrainType)
	switch {
	case r.TrainNumber == "" || r.TrainName == "":
		return "train_number and train_name required"
	case r.RailwayID == 0:
		return "railway_id required"
	case r.SourceStation == "" || r.DestinationStation == "":
		return "source_station and destination_station required"
	case strings.EqualFold(r.SourceStation, r.DestinationStation):
		return "source and destination must differ"
	case r.DepartureTime.IsZero() || r.ArrivalTime.IsZero():
		return "departure_time and arrival_time required"
	case !r.ArrivalTime.After(r.DepartureTime):
		return "arrival_time must be after departure_time"
	case r.TotalSeats == 0:
		return "total_seats must be positive"
	case r.BaseFarePaise == 0:
		return "base_fare_paise must be positive"
	}
	return ""
}

// CreateTrain adds a new train with a full seat pool.
func (h *AdminTrainHandler) CreateTrain(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req trainReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	t := model.Train{
		TrainNumber:        req.TrainNumber,
		TrainName:          req.TrainName,
		RailwayID:          req.RailwayID,
		SourceStation:      req.SourceStation,
		DestinationStation: req.DestinationStation,
		DepartureTime:      req.DepartureTime,
		ArrivalTime:        req.ArrivalTime,
		TotalSeats:         req.TotalSeats,
		BaseFarePaise:      req.BaseFarePaise,
		TrainType:          req.TrainType,
		CreatedBy:          uid,
	}
	if err := h.Trains.Create(ctx, &t); err != nil {
		if err == repository.ErrDuplicate {
			return c.JSON(http.StatusConflict, echo.Map{"error": "train_number already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create train failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"train": toTrainPart(t)})
}

// UpdateTrain rewrites a train's editable fields.  The available seat
// pool is recomputed so already-booked seats stay booked: shrinking
// total_seats below the booked count is rejected.
func (h *AdminTrainHandler) UpdateTrain(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid train id"})
	}
	var req trainReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	cur, err := h.Trains.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrTrainNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "train not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	booked := cur.TotalSeats - cur.AvailableSeats
	if req.TotalSeats < booked {
		return c.JSON(http.StatusConflict, echo.Map{"error": "total_seats below booked seat count"})
	}

	status := cur.Status
	if req.TrainStatus != "" {
		st, ok := model.ParseTrainStatus(req.TrainStatus)
		if !ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown train_status"})
		}
		status = st
	}

	cur.TrainNumber = req.TrainNumber
	cur.TrainName = req.TrainName
	cur.RailwayID = req.RailwayID
	cur.SourceStation = req.SourceStation
	cur.DestinationStation = req.DestinationStation
	cur.DepartureTime = req.DepartureTime
	cur.ArrivalTime = req.ArrivalTime
	cur.TotalSeats = req.TotalSeats
	cur.AvailableSeats = req.TotalSeats - booked
	cur.BaseFarePaise = req.BaseFarePaise
	cur.Status = status
	cur.TrainType = req.TrainType

	if err := h.Trains.Update(ctx, &cur); err != nil {
		if err == repository.ErrDuplicate {
			return c.JSON(http.StatusConflict, echo.Map{"error": "train_number already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update train failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"train": toTrainPart(cur)})
}

// DeleteTrain removes a train that has no bookings.
func (h *AdminTrainHandler) DeleteTrain(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid train id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	switch err := h.Trains.Delete(ctx, id); err {
	case nil:
		return c.JSON(http.StatusOK, echo.Map{"deleted": id})
	case repository.ErrTrainNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"error": "train not found"})
	case repository.ErrConflict:
		return c.JSON(http.StatusConflict, echo.Map{"error": "train has bookings"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete train failed"})
	}
}

// ListTrains returns every train, including sold-out and cancelled
// ones, for the admin console.
func (h *AdminTrainHandler) ListTrains(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	trains, err := h.Trains.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"trains": toTrainParts(trains), "count": len(trains)})
}
