package notifier

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/flintic/eats-reservation/internal/config"
	"github.com/flintic/eats-reservation/internal/model"
)

func sampleReservation() model.Reservation {
	return model.Reservation{
		ID:              "res-1",
		FirstName:       "Ada",
		LastName:        "Byron",
		Email:           "ada@example.com",
		PartySize:       4,
		ReservationDate: "2026-09-01",
		ReservationTime: "19:30",
	}
}

func TestReservationEmailBodies(t *testing.T) {
	r := sampleReservation()
	for name, body := range map[string]string{
		"html": ReservationEmailHTML(r),
		"text": ReservationEmailText(r),
	} {
		for _, want := range []string{"Ada", "2026-09-01", "19:30", "4"} {
			if !strings.Contains(body, want) {
				t.Errorf("%s body missing %q:\n%s", name, want, body)
			}
		}
	}
	if !strings.Contains(ReservationEmailHTML(r), "<h1>Reservation Confirmed!</h1>") {
		t.Error("html body missing heading")
	}
}

func TestSendDisabled(t *testing.T) {
	m := NewMailer(config.SMTPConfig{Enabled: false}, zerolog.Nop())
	if err := m.Send("ada@example.com", ReservationSubject, "<p>hi</p>", "hi"); err != nil {
		t.Errorf("disabled mailer Send = %v, want nil", err)
	}
}

func TestSendMisconfigured(t *testing.T) {
	m := NewMailer(config.SMTPConfig{Enabled: true}, zerolog.Nop())
	if err := m.Send("ada@example.com", ReservationSubject, "", "hi"); err == nil {
		t.Error("enabled mailer with no host should error")
	}
}
