package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/flintic/eats-reservation/internal/model"
)

// ReservationRepo provides persistence for reservations.  A reservation
// occupies one unit of capacity in its (reservation_date,
// reservation_time) slot for as long as its status is not cancelled.
// All timestamp columns are stored in UTC; the date and time of the
// booking itself are kept as strings exactly as the guest submitted them.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// DB exposes the underlying handle for callers that need to coordinate
// transactions across repositories.
func (r *ReservationRepo) DB() *sql.DB { return r.db }

// reservationColumns is the SELECT list shared by every read in this
// repository.  reservation_date is formatted back to YYYY-MM-DD so the
// value round-trips as the string the guest sent.
const reservationColumns = `id, first_name, last_name, email, phone, party_size,
       DATE_FORMAT(reservation_date, '%Y-%m-%d'), reservation_time,
       occasion, extra_notes, status, created_at`

// CountActiveBySlot returns the number of non-cancelled reservations for
// the given (date, time) slot.  It is a plain read with no locking and is
// used by the availability check only; the booking path re-counts inside
// its own transaction.
func (r *ReservationRepo) CountActiveBySlot(ctx context.Context, date, timeOfDay string) (int, error) {
	const q = `SELECT COUNT(*) FROM reservations
               WHERE reservation_date = ? AND reservation_time = ? AND status <> ?`
	var n int
	err := r.db.QueryRowContext(ctx, q, date, timeOfDay, model.StatusCancelled).Scan(&n)
	return n, err
}

// CreateIfCapacity inserts a new reservation for the slot named by
// res.ReservationDate and res.ReservationTime, but only while the slot
// holds fewer than capacity non-cancelled reservations.  The count and
// the insert run in one transaction with the count locked FOR UPDATE, so
// two concurrent calls for the last free place in a slot serialize and
// exactly one succeeds; the loser gets ErrSlotFull.
//
// On success res is populated with the generated UUID, the booked status
// and the server-assigned creation timestamp.
func (r *ReservationRepo) CreateIfCapacity(ctx context.Context, res *model.Reservation, capacity int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	const countQ = `SELECT COUNT(*) FROM reservations
                    WHERE reservation_date = ? AND reservation_time = ? AND status <> ?
                    FOR UPDATE`
	var n int
	if err := tx.QueryRowContext(ctx, countQ,
		res.ReservationDate, res.ReservationTime, model.StatusCancelled).Scan(&n); err != nil {
		return err
	}
	if n >= capacity {
		return ErrSlotFull
	}

	res.ID = uuid.NewString()
	res.Status = model.StatusBooked
	const ins = `INSERT INTO reservations
                 (id, first_name, last_name, email, phone, party_size,
                  reservation_date, reservation_time, occasion, extra_notes, status)
                 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	if _, err := tx.ExecContext(ctx, ins,
		res.ID, res.FirstName, res.LastName, res.Email, res.Phone, res.PartySize,
		res.ReservationDate, res.ReservationTime,
		nullable(res.Occasion), nullable(res.ExtraNotes), res.Status); err != nil {
		return err
	}

	// Query back the full row to populate created_at and defaults.
	sel := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = ?`
	row := tx.QueryRowContext(ctx, sel, res.ID)
	if err := scanReservation(row, res); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// ReservationFilter narrows List results.  Zero values mean "no filter":
// an empty Date matches every date and an empty or "all" Status matches
// every status.
type ReservationFilter struct {
	Date   string
	Status string
}

// List returns reservations matching the filter.  With a date filter the
// rows come back in (reservation_date, reservation_time) ascending order,
// which is how the admin day view reads them; without one the newest
// reservations come first.  The full result set is returned; there is no
// pagination.
func (r *ReservationRepo) List(ctx context.Context, f ReservationFilter) ([]model.Reservation, error) {
	q := `SELECT ` + reservationColumns + ` FROM reservations`
	var (
		conds []string
		args  []interface{}
	)
	if f.Date != "" {
		conds = append(conds, "reservation_date = ?")
		args = append(args, f.Date)
	}
	if f.Status != "" && f.Status != "all" {
		conds = append(conds, "status = ?")
		args = append(args, f.Status)
	}
	for i, c := range conds {
		if i == 0 {
			q += " WHERE " + c
		} else {
			q += " AND " + c
		}
	}
	if f.Date != "" {
		q += " ORDER BY reservation_date ASC, reservation_time ASC"
	} else {
		q += " ORDER BY created_at DESC"
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Reservation, 0)
	for rows.Next() {
		var res model.Reservation
		if err := scanReservation(rows, &res); err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID returns a single reservation.  ErrReservationNotFound is
// returned when no row matches.
func (r *ReservationRepo) GetByID(ctx context.Context, id string) (model.Reservation, error) {
	sel := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = ?`
	var res model.Reservation
	err := scanReservation(r.db.QueryRowContext(ctx, sel, id), &res)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Reservation{}, ErrReservationNotFound
	}
	if err != nil {
		return model.Reservation{}, err
	}
	return res, nil
}

// UpdateStatus moves a reservation to next, enforcing the lifecycle
// transition table.  The current status is read FOR UPDATE so concurrent
// updates to the same reservation serialize.  It returns the updated
// record, ErrReservationNotFound for unknown IDs and ErrInvalidTransition
// when the move is not legal from the current status.
func (r *ReservationRepo) UpdateStatus(ctx context.Context, id string, next model.Status) (model.Reservation, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Reservation{}, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var current model.Status
	err = tx.QueryRowContext(ctx,
		`SELECT status FROM reservations WHERE id = ? FOR UPDATE`, id).Scan(&current)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Reservation{}, ErrReservationNotFound
	}
	if err != nil {
		return model.Reservation{}, err
	}
	if !current.CanTransitionTo(next) {
		return model.Reservation{}, ErrInvalidTransition
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE reservations SET status = ? WHERE id = ?`, next, id); err != nil {
		return model.Reservation{}, err
	}

	sel := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = ?`
	var res model.Reservation
	if err := scanReservation(tx.QueryRowContext(ctx, sel, id), &res); err != nil {
		return model.Reservation{}, err
	}

	if err := tx.Commit(); err != nil {
		return model.Reservation{}, err
	}
	committed = true
	return res, nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReservation(row rowScanner, res *model.Reservation) error {
	var occasion, notes sql.NullString
	if err := row.Scan(
		&res.ID, &res.FirstName, &res.LastName, &res.Email, &res.Phone, &res.PartySize,
		&res.ReservationDate, &res.ReservationTime,
		&occasion, &notes, &res.Status, &res.CreatedAt,
	); err != nil {
		return err
	}
	res.Occasion = occasion.String
	res.ExtraNotes = notes.String
	return nil
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
