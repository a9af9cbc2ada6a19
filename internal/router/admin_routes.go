package router

import (
	"github.com/labstack/echo/v4"

	"github.com/flintic/eats-reservation/internal/handler"
	"github.com/flintic/eats-reservation/internal/middleware"
)

// RegisterAdmin registers staff-only reservation endpoints under
// /v1/admin.  Every route requires a valid access token with the STAFF
// or ADMIN role; the reservation listing is never reachable without one.
func RegisterAdmin(e *echo.Echo, h *handler.AdminReservationHandler, jwtSecret string) {
	g := e.Group(
		"/v1/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("STAFF", "ADMIN"),
	)
	g.GET("/reservations", h.List)
	g.GET("/reservations/:id", h.Get)
	g.PATCH("/reservations/:id/status", h.UpdateStatus)
}
