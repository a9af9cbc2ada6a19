package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/flintic/eats-reservation/internal/model"
	"github.com/flintic/eats-reservation/internal/repository"
)

// ReservationCreator is the write side of the slot manager.  The
// implementation must make the capacity check and the insert atomic:
// of two concurrent calls for the last free place in a slot, exactly one
// may succeed.  repository.ReservationRepo satisfies this.
type ReservationCreator interface {
	CreateIfCapacity(ctx context.Context, res *model.Reservation, capacity int) error
}

// Notifier delivers the booking confirmation to the guest.  Failures are
// the notifier's problem; it never reports back to the handler.
type Notifier interface {
	NotifyBooked(ctx context.Context, r model.Reservation)
}

// ReservationHandler implements the public booking endpoint.
type ReservationHandler struct {
	Store    ReservationCreator
	Notify   Notifier
	Capacity int
}

func NewReservationHandler(store ReservationCreator, notify Notifier, capacity int) *ReservationHandler {
	if store == nil || notify == nil {
		panic("nil dependency passed to NewReservationHandler")
	}
	return &ReservationHandler{Store: store, Notify: notify, Capacity: capacity}
}

type createReservationReq struct {
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	PartySize       int    `json:"party_size"`
	ReservationDate string `json:"reservation_date"`
	ReservationTime string `json:"reservation_time"`
	Occasion        string `json:"occasion"`
	ExtraNotes      string `json:"extra_notes"`
}

// Create handles POST /v1/reservations.  The booking form validates
// input client-side, but this is a public write endpoint so everything
// is re-checked here.  On success the reservation is persisted with
// status booked and the confirmation is fired off without blocking the
// response; a notification failure is observable only in logs.
func (h *ReservationHandler) Create(c echo.Context) error {
	var req createReservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	if req.FirstName == "" || req.LastName == "" || req.Email == "" || req.Phone == "" ||
		req.PartySize == 0 || req.ReservationDate == "" || req.ReservationTime == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Missing required fields"})
	}
	if req.PartySize < 1 || req.PartySize > 10 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Party size must be between 1 and 10"})
	}
	if _, err := time.Parse("2006-01-02", req.ReservationDate); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid reservation date"})
	}
	t, err := time.Parse("15:04", req.ReservationTime)
	if err != nil || t.Minute()%30 != 0 {
		// Slots are offered at 30-minute increments only.
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid reservation time"})
	}

	res := model.Reservation{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Email:           req.Email,
		Phone:           req.Phone,
		PartySize:       req.PartySize,
		ReservationDate: req.ReservationDate,
		ReservationTime: req.ReservationTime,
		Occasion:        req.Occasion,
		ExtraNotes:      req.ExtraNotes,
	}

	if err := h.Store.CreateIfCapacity(c.Request().Context(), &res, h.Capacity); err != nil {
		if errors.Is(err, repository.ErrSlotFull) {
			return c.JSON(http.StatusConflict, echo.Map{
				"error": "This time slot is already booked. Please select another time.",
			})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to create reservation"})
	}

	// The request context dies with the response; the notification gets
	// its own.
	go h.Notify.NotifyBooked(context.Background(), res)

	return c.JSON(http.StatusOK, echo.Map{
		"success":     true,
		"reservation": res,
	})
}
