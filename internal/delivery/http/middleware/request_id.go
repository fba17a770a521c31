// Package middleware contains the HTTP middleware for the delivery layer.
package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// RequestIDHeader is the response header carrying the generated request id.
const RequestIDHeader = "X-Request-Id"

// RequestID assigns every request a UUID, stored on the context for the
// response envelope and echoed in the response headers. An id supplied by the
// client is kept so upstream proxies can correlate.
func RequestID(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := c.Request().Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		c.Set("requestID", id)
		c.Response().Header().Set(RequestIDHeader, id)

		return next(c)
	}
}
