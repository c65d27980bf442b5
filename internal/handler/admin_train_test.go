package handler

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/train-ticket-booking/internal/repository"
)

func newAdminTrainHandler(t *testing.T) (*AdminTrainHandler, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	return NewAdminTrainHandler(repository.NewTrainRepo(db)), mock, func() { _ = db.Close() }
}

func fmtTotal(total int) string {
	return fmt.Sprintf(adminTrainBody, total)
}

const adminTrainBody = `{
	"train_number": "12345",
	"train_name": "Deccan Express",
	"railway_id": 1,
	"source_station": "Mumbai",
	"destination_station": "Pune",
	"departure_time": "2026-10-01T08:00:00Z",
	"arrival_time": "2026-10-01T11:00:00Z",
	"total_seats": %d,
	"base_fare_paise": 25000,
	"train_type": "Express"
}`

func trainRow(total, available uint32) *sqlmock.Rows {
	now := time.Now().UTC()
	return sqlmock.NewRows([]string{"id", "train_number", "train_name", "railway_id", "source_station",
		"destination_station", "departure_time", "arrival_time", "total_seats", "available_seats",
		"base_fare_paise", "train_status", "train_type", "created_by", "created_at"}).
		AddRow(5, "12345", "Deccan Express", 1, "Mumbai", "Pune",
			now.Add(8*time.Hour), now.Add(11*time.Hour), total, available, 25000,
			"scheduled", "Express", 1, now)
}

func putTrain(t *testing.T, h *AdminTrainHandler, id, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPut, "/v1/admin/trains/"+id, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(id)
	require.NoError(t, h.UpdateTrain(c))
	return rec
}

func TestUpdateTrainPreservesBookedSeats(t *testing.T) {
	h, mock, done := newAdminTrainHandler(t)
	defer done()

	// 100 total with 40 available means 60 booked; shrinking to 80
	// must persist available_seats = 80 - 60 = 20.
	mock.ExpectQuery("SELECT .+ FROM trains WHERE id =").
		WithArgs(uint64(5)).
		WillReturnRows(trainRow(100, 40))
	mock.ExpectExec("UPDATE trains SET train_number =").
		WithArgs("12345", "Deccan Express", uint64(1), "Mumbai", "Pune",
			sqlmock.AnyArg(), sqlmock.AnyArg(), uint32(80), uint32(20),
			uint32(25000), "scheduled", "Express", uint64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	rec := putTrain(t, h, "5", fmtTotal(80))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"available_seats":20`)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateTrainRejectsShrinkBelowBooked(t *testing.T) {
	h, mock, done := newAdminTrainHandler(t)
	defer done()

	// 60 seats are booked; asking for 50 total would strand passengers.
	mock.ExpectQuery("SELECT .+ FROM trains WHERE id =").
		WithArgs(uint64(5)).
		WillReturnRows(trainRow(100, 40))

	rec := putTrain(t, h, "5", fmtTotal(50))
	require.Equal(t, http.StatusConflict, rec.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateTrainUnknownID(t *testing.T) {
	h, mock, done := newAdminTrainHandler(t)
	defer done()

	mock.ExpectQuery("SELECT .+ FROM trains WHERE id =").
		WithArgs(uint64(404)).
		WillReturnError(sql.ErrNoRows)

	rec := putTrain(t, h, "404", fmtTotal(80))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateTrainDuplicateNumber(t *testing.T) {
	h, mock, done := newAdminTrainHandler(t)
	defer done()

	mock.ExpectExec("INSERT INTO trains").
		WillReturnError(errors.New("Error 1062 (23000): Duplicate entry '12345' for key 'trains.uq_trains_train_number'"))

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/admin/trains", strings.NewReader(fmtTotal(100)))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", uint64(1))
	require.NoError(t, h.CreateTrain(c))
	require.Equal(t, http.StatusConflict, rec.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateTrainStartsWithFullPool(t *testing.T) {
	h, mock, done := newAdminTrainHandler(t)
	defer done()

	// available_seats is seeded from total_seats, both bound as 100.
	mock.ExpectExec("INSERT INTO trains").
		WithArgs("12345", "Deccan Express", uint64(1), "Mumbai", "Pune",
			sqlmock.AnyArg(), sqlmock.AnyArg(), uint32(100), uint32(100),
			uint32(25000), "Express", uint64(1)).
		WillReturnResult(sqlmock.NewResult(5, 1))
	mock.ExpectQuery("SELECT .+ FROM trains WHERE id =").
		WithArgs(uint64(5)).
		WillReturnRows(trainRow(100, 100))

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/admin/trains", strings.NewReader(fmtTotal(100)))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", uint64(1))
	require.NoError(t, h.CreateTrain(c))
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Contains(t, rec.Body.String(), `"available_seats":100`)
	require.NoError(t, mock.ExpectationsWereMet())
}
