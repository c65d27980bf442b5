package handler

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/train-ticket-booking/internal/booking"
	"github.com/iliyamo/train-ticket-booking/internal/queue"
	"github.com/iliyamo/train-ticket-booking/internal/repository"
	queue_publisher "github.com/iliyamo/train-ticket-booking/internal/service"
)

// BookingHandler serves booking creation and the booking listings.
type BookingHandler struct {
	Svc      *booking.Service
	Bookings *repository.BookingRepo
}

func NewBookingHandler(svc *booking.Service, bookings *repository.BookingRepo) *BookingHandler {
	return &BookingHandler{Svc: svc, Bookings: bookings}
}

type createBookingReq struct {
	TrainID         uint64 `json:"train_id"`
	PassengersCount uint32 `json:"passengers_count"`
	PaymentMethod   string `json:"payment_method"`
}

// CreateBooking reserves seats on a train for the authenticated user
// and records the payment.  On success the booking is returned joined
// with its train, and a confirmation event goes out to the broker on a
// best-effort basis.
func (h *BookingHandler) CreateBooking(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.TrainID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "train_id required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	bkg, err := h.Svc.CreateBooking(ctx, uid, req.TrainID, req.PassengersCount, req.PaymentMethod)
	if err != nil {
		switch {
		case errors.Is(err, booking.ErrValidation):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		case errors.Is(err, booking.ErrTrainNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "train not found"})
		case errors.Is(err, booking.ErrSeatsUnavailable):
			return c.JSON(http.StatusConflict, echo.Map{"error": "not enough seats available"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "booking failed"})
		}
	}

	detail, err := h.Bookings.GetDetailByID(ctx, bkg.ID)
	if err != nil {
		// The booking committed; return what we have rather than fail.
		log.Printf("booking %d: load detail failed: %v", bkg.ID, err)
		return c.JSON(http.StatusCreated, echo.Map{
			"booking_id": bkg.ID,
			"pnr":        bkg.PNR,
		})
	}

	go publishConfirmed(detail)

	return c.JSON(http.StatusCreated, echo.Map{"booking": detail})
}

// publishConfirmed sends the confirmation event for a committed
// booking.  Runs in its own goroutine with its own timeout; a broker
// outage never affects the HTTP response.
func publishConfirmed(d repository.BookingDetail) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = queue_publisher.PublishBookingConfirmed(ctx, queue.BookingConfirmedEvent{
		BookingID:        d.ID,
		UserID:           d.UserID,
		TrainID:          d.TrainID,
		TrainNumber:      d.Train.TrainNumber,
		TrainName:        d.Train.TrainName,
		SourceStation:    d.Train.SourceStation,
		Destination:      d.Train.DestinationStation,
		DepartureTime:    d.Train.DepartureTime.UTC().Format(time.RFC3339),
		PassengersCount:  d.PassengersCount,
		TotalAmountPaise: d.TotalAmountPaise,
		PNR:              d.PNR,
		ConfirmedAt:      time.Now().UTC().Format(time.RFC3339),
	})
}

// GetBooking returns one of the caller's bookings by id.
func (h *BookingHandler) GetBooking(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := parseID(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	detail, err := h.Bookings.GetDetailByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if detail.UserID != uid {
		// Hide other users' bookings entirely.
		return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
	}
	return c.JSON(http.StatusOK, echo.Map{"booking": detail})
}

// ListBookings returns the caller's bookings, newest first.
func (h *BookingHandler) ListBookings(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	details, err := h.Bookings.ListByUser(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"bookings": details, "count": len(details)})
}

// ListAllBookings returns every booking in the system.  Admin only.
func (h *BookingHandler) ListAllBookings(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	details, err := h.Bookings.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"bookings": details, "count": len(details)})
}
