package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/flintic/eats-reservation/internal/model"
)

// ContactRepo persists messages from the public contact form.  Messages
// are write-only records; nothing in the application updates or deletes
// them.
type ContactRepo struct {
	db *sql.DB
}

func NewContactRepo(db *sql.DB) *ContactRepo { return &ContactRepo{db: db} }

// Create inserts a contact message and populates the generated ID and
// creation timestamp on the provided record.
func (r *ContactRepo) Create(ctx context.Context, m *model.ContactMessage) error {
	m.ID = uuid.NewString()
	const ins = `INSERT INTO contact_messages (id, name, email, message) VALUES (?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, ins, m.ID, m.Name, m.Email, m.Message); err != nil {
		return err
	}
	const sel = `SELECT created_at FROM contact_messages WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, m.ID).Scan(&m.CreatedAt)
}
