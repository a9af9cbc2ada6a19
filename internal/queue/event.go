// Package queue defines message payloads exchanged over the message broker.
package queue

// ReservationBookedQueue is the durable queue new-booking events are
// published to.  The in-process consumer reads it to send confirmation
// email; other consumers (analytics, ops dashboards) can bind alongside.
const ReservationBookedQueue = "reservation.booked"

// ReservationBookedEvent is published when a reservation is successfully
// created.  It carries enough information for downstream consumers to
// notify the guest without querying the primary database.
type ReservationBookedEvent struct {
	ReservationID   string `json:"reservation_id"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Email           string `json:"email"`
	PartySize       int    `json:"party_size"`
	ReservationDate string `json:"reservation_date"`
	ReservationTime string `json:"reservation_time"`
	Occasion        string `json:"occasion,omitempty"`
	BookedAt        string `json:"booked_at"`
}
