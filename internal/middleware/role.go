package middleware // middleware provides shared request processing for handlers

import (
	"net/http" // http package defines standard HTTP status codes

	"github.com/labstack/echo/v4" // echo provides middleware chaining and context
)

// RequireUserType returns a middleware that enforces that the
// authenticated user has one of the specified user types ("admin" or
// "user", matching the JWT's user_type claim).  Requests by users
// outside the allowed set are aborted with 403 Forbidden.  It assumes
// JWTAuth has already stored the user_type in the context.
func RequireUserType(types ...string) echo.MiddlewareFunc {
	allowed := make(map[string]bool, len(types))
	for _, t := range types {
		allowed[t] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			v := c.Get("user_type")
			userType, ok := v.(string)
			if !ok || !allowed[userType] {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
