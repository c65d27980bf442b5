// Package router wires HTTP routes to their handlers and middleware.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/train-ticket-booking/internal/handler"
	"github.com/iliyamo/train-ticket-booking/internal/middleware"
)

// Handlers groups every handler the router needs.
type Handlers struct {
	Auth    *handler.AuthHandler
	Public  *handler.PublicHandler
	Admin   *handler.AdminTrainHandler
	Booking *handler.BookingHandler
}

// Register mounts all routes on e.  The browse group is public and may
// be fronted by the response cache; everything under /v1 with a user
// scope requires a valid access token, and /v1/admin additionally
// requires the admin user type.
func Register(e *echo.Echo, h Handlers, jwtSecret string, cache echo.MiddlewareFunc) {
	e.GET("/healthz", handler.Health)

	v1 := e.Group("/v1")

	auth := v1.Group("/auth")
	auth.POST("/register", h.Auth.Register)
	auth.POST("/login", h.Auth.Login)

	browse := v1.Group("")
	if cache != nil {
		browse.Use(cache)
	}
	browse.GET("/trains", h.Public.SearchTrains)
	browse.GET("/trains/:id", h.Public.GetTrain)
	browse.GET("/stations", h.Public.ListStations)
	browse.GET("/railways", h.Public.ListRailways)

	user := v1.Group("", middleware.JWTAuth(jwtSecret))
	user.GET("/me", h.Auth.Me)
	user.POST("/bookings", h.Booking.CreateBooking)
	user.GET("/bookings", h.Booking.ListBookings)
	user.GET("/bookings/:id", h.Booking.GetBooking)

	admin := v1.Group("/admin", middleware.JWTAuth(jwtSecret), middleware.RequireUserType("admin"))
	admin.POST("/trains", h.Admin.CreateTrain)
	admin.GET("/trains", h.Admin.ListTrains)
	admin.PUT("/trains/:id", h.Admin.UpdateTrain)
	admin.DELETE("/trains/:id", h.Admin.DeleteTrain)
	admin.GET("/bookings", h.Booking.ListAllBookings)
}
