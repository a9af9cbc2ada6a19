// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios: a full
// slot maps to HTTP 409, a missing reservation to 404, and so on.
package repository

import "errors"

// ErrSlotFull is returned when a reservation cannot be created because
// the requested (date, time) slot already holds the configured number of
// non-cancelled reservations. Handlers translate this into an HTTP 409
// response with a "pick another time" message.
var ErrSlotFull = errors.New("slot full")

// ErrReservationNotFound is returned when no reservation exists for the
// requested ID. Handlers translate this into an HTTP 404 response.
var ErrReservationNotFound = errors.New("reservation not found")

// ErrInvalidTransition is returned when a status update would violate
// the reservation lifecycle (for example cancelled back to booked).
// Handlers translate this into an HTTP 409 response.
var ErrInvalidTransition = errors.New("invalid status transition")

// ErrEmailExists is returned when a staff account cannot be created
// because the email address is already registered.
var ErrEmailExists = errors.New("email already exists")
