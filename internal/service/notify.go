package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/flintic/eats-reservation/internal/model"
	"github.com/flintic/eats-reservation/internal/notifier"
	"github.com/flintic/eats-reservation/internal/queue"
)

// BookingNotifier fans a freshly created reservation out to the guest.
// The preferred path publishes a durable reservation.booked event that
// the background consumer turns into email; when the broker is
// unreachable it sends the confirmation inline instead.  Every failure
// is logged and swallowed; notification must never fail a booking that
// has already been written.
type BookingNotifier struct {
	Mailer *notifier.Mailer
	Log    zerolog.Logger
}

func NewBookingNotifier(m *notifier.Mailer, log zerolog.Logger) *BookingNotifier {
	return &BookingNotifier{Mailer: m, Log: log}
}

// NotifyBooked delivers the confirmation for r.  It blocks for at most a
// few seconds and returns nothing: the caller has already committed the
// reservation and only needs the attempt made.
func (n *BookingNotifier) NotifyBooked(ctx context.Context, r model.Reservation) {
	ev := queue.ReservationBookedEvent{
		ReservationID:   r.ID,
		FirstName:       r.FirstName,
		LastName:        r.LastName,
		Email:           r.Email,
		PartySize:       r.PartySize,
		ReservationDate: r.ReservationDate,
		ReservationTime: r.ReservationTime,
		Occasion:        r.Occasion,
		BookedAt:        r.CreatedAt.UTC().Format(time.RFC3339),
	}

	if err := PublishReservationBooked(ctx, ev, n.Log); err == nil {
		return
	}

	// Broker unavailable: send the confirmation directly, still best-effort.
	if err := n.Mailer.Send(r.Email, notifier.ReservationSubject,
		notifier.ReservationEmailHTML(r), notifier.ReservationEmailText(r)); err != nil {
		n.Log.Error().Err(err).
			Str("reservation_id", r.ID).
			Str("email", r.Email).
			Msg("confirmation email failed")
	}
}
