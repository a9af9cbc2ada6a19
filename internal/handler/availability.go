package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
)

// SlotCounter exposes the read side of slot occupancy.  It is implemented
// by repository.ReservationRepo.
type SlotCounter interface {
	CountActiveBySlot(ctx context.Context, date, timeOfDay string) (int, error)
}

// AvailabilityHandler answers the public availability lookup used by the
// booking form before it shows the guest the contact-details step.
type AvailabilityHandler struct {
	Store    SlotCounter
	Capacity int // same SLOT_CAPACITY the booking path enforces
}

func NewAvailabilityHandler(store SlotCounter, capacity int) *AvailabilityHandler {
	if store == nil {
		panic("nil store passed to NewAvailabilityHandler")
	}
	return &AvailabilityHandler{Store: store, Capacity: capacity}
}

// Check handles GET /v1/availability?date=YYYY-MM-DD&time=HH:MM.  It is
// read-only and idempotent: calling it any number of times without an
// intervening booking returns the same answer.  Both query parameters
// are required.
func (h *AvailabilityHandler) Check(c echo.Context) error {
	date := c.QueryParam("date")
	timeOfDay := c.QueryParam("time")
	if date == "" || timeOfDay == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Date and time are required"})
	}

	count, err := h.Store.CountActiveBySlot(c.Request().Context(), date, timeOfDay)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to check availability"})
	}

	available := count < h.Capacity
	remaining := h.Capacity - count
	if remaining < 0 {
		remaining = 0
	}
	message := "Time slot available"
	if !available {
		message = "This time slot is already booked"
	}

	return c.JSON(http.StatusOK, echo.Map{
		"available": available,
		"remaining": remaining,
		"message":   message,
	})
}
