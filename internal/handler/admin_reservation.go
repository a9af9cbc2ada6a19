package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/flintic/eats-reservation/internal/model"
	"github.com/flintic/eats-reservation/internal/repository"
)

// AdminReservationStore covers the reads and status writes the admin
// panel needs.  Implemented by repository.ReservationRepo.
type AdminReservationStore interface {
	List(ctx context.Context, f repository.ReservationFilter) ([]model.Reservation, error)
	GetByID(ctx context.Context, id string) (model.Reservation, error)
	UpdateStatus(ctx context.Context, id string, next model.Status) (model.Reservation, error)
}

// AdminReservationHandler serves the staff reservation views.  All
// methods assume JWT authentication and role validation have already
// been performed by middleware.
type AdminReservationHandler struct {
	Store AdminReservationStore
}

func NewAdminReservationHandler(store AdminReservationStore) *AdminReservationHandler {
	if store == nil {
		panic("nil store passed to NewAdminReservationHandler")
	}
	return &AdminReservationHandler{Store: store}
}

// List handles GET /v1/admin/reservations.  Optional query parameters
// `date` (exact match) and `status` ("all" or one of the four lifecycle
// values) narrow the result.  With a date filter rows are ordered by
// (date, time) ascending for the day view; without one, newest first.
func (h *AdminReservationHandler) List(c echo.Context) error {
	f := repository.ReservationFilter{
		Date:   c.QueryParam("date"),
		Status: c.QueryParam("status"),
	}
	if f.Status != "" && f.Status != "all" {
		if _, ok := model.ParseStatus(f.Status); !ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown status"})
		}
	}

	reservations, err := h.Store.List(c.Request().Context(), f)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to fetch reservations"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"reservations": reservations,
		"total":        len(reservations),
	})
}

// Get handles GET /v1/admin/reservations/:id.
func (h *AdminReservationHandler) Get(c echo.Context) error {
	id := c.Param("id")
	res, err := h.Store.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to fetch reservation"})
	}
	return c.JSON(http.StatusOK, echo.Map{"reservation": res})
}

type updateStatusReq struct {
	Status string `json:"status"`
}

// UpdateStatus handles PATCH /v1/admin/reservations/:id/status.  Only
// lifecycle-legal moves are allowed: booked to seated or cancelled, and
// seated to completed.  Anything else is rejected with a 409; in
// particular un-cancelling, which could silently overbook a slot.
func (h *AdminReservationHandler) UpdateStatus(c echo.Context) error {
	id := c.Param("id")

	var req updateStatusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	next, ok := model.ParseStatus(req.Status)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown status"})
	}

	res, err := h.Store.UpdateStatus(c.Request().Context(), id, next)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrReservationNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		case errors.Is(err, repository.ErrInvalidTransition):
			return c.JSON(http.StatusConflict, echo.Map{"error": "invalid status transition"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update reservation"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"reservation": res})
}
