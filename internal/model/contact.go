package model

import "time"

// ContactMessage is a write-only record created from the public contact
// form.  It has no lifecycle beyond creation.
type ContactMessage struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
