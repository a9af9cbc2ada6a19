package router

import (
	"github.com/labstack/echo/v4"

	"github.com/flintic/eats-reservation/internal/handler"
)

// RegisterPublic registers the guest-facing endpoints: the availability
// lookup, booking creation and the contact form.  No authentication is
// required.  The rate limiter guards the two write endpoints against
// form spam; the cache middleware sits only on the availability lookup,
// where a short TTL is acceptable because the booking path re-checks
// capacity inside its own transaction.
func RegisterPublic(e *echo.Echo, avail *handler.AvailabilityHandler, res *handler.ReservationHandler,
	contact *handler.ContactHandler, ratelimit, cache echo.MiddlewareFunc) {
	e.GET("/v1/availability", avail.Check, cache)
	e.POST("/v1/reservations", res.Create, ratelimit)
	e.POST("/v1/contact", contact.Submit, ratelimit)
}
