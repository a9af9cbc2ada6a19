package model

import "time"

// Status enumerates the lifecycle states of a reservation.  A reservation
// is created as StatusBooked and only moves forward: booked guests are
// either seated or cancel, and seated guests eventually complete their
// visit.  Cancelled and completed are terminal.
type Status string

const (
	StatusBooked    Status = "booked"
	StatusSeated    Status = "seated"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

// transitions encodes the legal forward moves of the lifecycle.  Anything
// not listed here (including moving back to booked) is rejected.
var transitions = map[Status][]Status{
	StatusBooked: {StatusSeated, StatusCancelled},
	StatusSeated: {StatusCompleted},
}

// ParseStatus validates a raw status string and returns the typed value.
// The second return value is false for unknown statuses.
func ParseStatus(raw string) (Status, bool) {
	switch Status(raw) {
	case StatusBooked, StatusSeated, StatusCancelled, StatusCompleted:
		return Status(raw), true
	}
	return "", false
}

// CanTransitionTo reports whether moving from s to next is a legal
// lifecycle transition.
func (s Status) CanTransitionTo(next Status) bool {
	for _, t := range transitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

// Reservation records a guest's booking for a (date, time) slot.
// Reservations are never deleted; cancelling one frees its slot because
// capacity only counts non-cancelled rows.
//
// Fields:
//  ID              – UUID assigned at creation, immutable.
//  FirstName       – guest first name.
//  LastName        – guest last name.
//  Email           – guest email, used for the confirmation message.
//  Phone           – guest phone number.
//  PartySize       – number of guests, 1–10.
//  ReservationDate – calendar date string (YYYY-MM-DD), no time zone math.
//  ReservationTime – time-of-day string (HH:MM) at 30-minute granularity.
//  Occasion        – optional free-text label (birthday, anniversary, …).
//  ExtraNotes      – optional free-text notes for staff.
//  Status          – lifecycle state, see Status.
//  CreatedAt       – server-assigned creation timestamp, immutable.
type Reservation struct {
	ID              string    `json:"id"`
	FirstName       string    `json:"first_name"`
	LastName        string    `json:"last_name"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	PartySize       int       `json:"party_size"`
	ReservationDate string    `json:"reservation_date"`
	ReservationTime string    `json:"reservation_time"`
	Occasion        string    `json:"occasion,omitempty"`
	ExtraNotes      string    `json:"extra_notes,omitempty"`
	Status          Status    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}
