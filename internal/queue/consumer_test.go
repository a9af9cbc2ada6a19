package queue

import (
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"

	"github.com/flintic/eats-reservation/internal/config"
	"github.com/flintic/eats-reservation/internal/notifier"
)

func TestHandleMessage(t *testing.T) {
	mailer := notifier.NewMailer(config.SMTPConfig{Enabled: false}, zerolog.Nop())

	ev := ReservationBookedEvent{
		ReservationID:   "res-1",
		FirstName:       "Ada",
		LastName:        "Byron",
		Email:           "ada@example.com",
		PartySize:       2,
		ReservationDate: "2026-09-01",
		ReservationTime: "19:00",
		BookedAt:        "2026-08-29T12:00:00Z",
	}
	body, err := json.Marshal(ev)
	if err != nil {
		t.Fatal(err)
	}

	if err := handleMessage(body, mailer, zerolog.Nop()); err != nil {
		t.Errorf("handleMessage = %v, want nil", err)
	}
}

func TestHandleMessagePoison(t *testing.T) {
	mailer := notifier.NewMailer(config.SMTPConfig{Enabled: false}, zerolog.Nop())

	if err := handleMessage([]byte("not json"), mailer, zerolog.Nop()); err == nil {
		t.Error("malformed body must fail so the delivery is rejected")
	}
}
