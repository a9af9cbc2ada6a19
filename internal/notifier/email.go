// Package notifier delivers outbound email to guests.  Delivery is
// best-effort everywhere in the application: a failed send is logged and
// never surfaced to the guest or rolled into the booking response.
package notifier

import (
	"fmt"
	"net/smtp"

	"github.com/rs/zerolog"

	"github.com/flintic/eats-reservation/internal/config"
	"github.com/flintic/eats-reservation/internal/model"
)

// Mailer sends email over SMTP.  When the config is disabled (the
// default outside production) it logs the message instead of sending,
// so local development needs no mail server.
type Mailer struct {
	cfg config.SMTPConfig
	log zerolog.Logger
}

func NewMailer(cfg config.SMTPConfig, log zerolog.Logger) *Mailer {
	return &Mailer{cfg: cfg, log: log}
}

// Send delivers a multipart HTML email with plain text fallback.  A
// single attempt is made; there is no retry queue.
func (m *Mailer) Send(to, subject, htmlBody, textBody string) error {
	if !m.cfg.Enabled {
		m.log.Info().
			Str("to", to).
			Str("subject", subject).
			Msg("smtp disabled, logging email instead of sending")
		return nil
	}

	if m.cfg.Host == "" || m.cfg.Username == "" || m.cfg.Password == "" {
		return fmt.Errorf("mailer not properly configured")
	}

	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)

	from := m.cfg.FromEmail
	if m.cfg.FromName != "" {
		from = fmt.Sprintf("%s <%s>", m.cfg.FromName, m.cfg.FromEmail)
	}

	// Build multipart message
	boundary := "----=_NextPart_1234567890"

	message := fmt.Sprintf("From: %s\r\n", from) +
		fmt.Sprintf("To: %s\r\n", to) +
		fmt.Sprintf("Subject: %s\r\n", subject) +
		"MIME-Version: 1.0\r\n" +
		fmt.Sprintf("Content-Type: multipart/alternative; boundary=\"%s\"\r\n", boundary) +
		"\r\n" +
		fmt.Sprintf("--%s\r\n", boundary) +
		"Content-Type: text/plain; charset=UTF-8\r\n" +
		"\r\n" +
		textBody + "\r\n"

	if htmlBody != "" {
		message += fmt.Sprintf("--%s\r\n", boundary) +
			"Content-Type: text/html; charset=UTF-8\r\n" +
			"\r\n" +
			htmlBody + "\r\n"
	}

	message += fmt.Sprintf("--%s--\r\n", boundary)

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	if err := smtp.SendMail(addr, auth, m.cfg.FromEmail, []string{to}, []byte(message)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// ReservationSubject is the subject line of the booking confirmation.
const ReservationSubject = "Your Flintic Eats Reservation is Confirmed"

// ReservationEmailHTML renders the confirmation body sent to a guest
// right after their reservation is created.
func ReservationEmailHTML(r model.Reservation) string {
	return fmt.Sprintf(`
    <h1>Reservation Confirmed!</h1>
    <p>Hi %s,</p>
    <p>Your table at Flintic Eats is booked.</p>
    <ul>
      <li><strong>Date:</strong> %s</li>
      <li><strong>Time:</strong> %s</li>
      <li><strong>Guests:</strong> %d</li>
    </ul>
    <p>See you soon!</p>
  `, r.FirstName, r.ReservationDate, r.ReservationTime, r.PartySize)
}

// ReservationEmailText is the plain text fallback for the confirmation.
func ReservationEmailText(r model.Reservation) string {
	return fmt.Sprintf(`Hi %s,

Your table at Flintic Eats is booked.

Date: %s
Time: %s
Guests: %d

See you soon!
`, r.FirstName, r.ReservationDate, r.ReservationTime, r.PartySize)
}
