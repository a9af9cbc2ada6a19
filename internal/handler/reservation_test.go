package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/flintic/eats-reservation/internal/model"
	"github.com/flintic/eats-reservation/internal/repository"
)

// fakeReservationStore counts non-cancelled reservations per slot under a
// mutex, mirroring the transactional capacity check of the real repo.
type fakeReservationStore struct {
	mu   sync.Mutex
	rows []model.Reservation
	err  error
	next int
}

func (f *fakeReservationStore) CreateIfCapacity(_ context.Context, res *model.Reservation, capacity int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	active := 0
	for _, r := range f.rows {
		if r.ReservationDate == res.ReservationDate && r.ReservationTime == res.ReservationTime &&
			r.Status != model.StatusCancelled {
			active++
		}
	}
	if active >= capacity {
		return repository.ErrSlotFull
	}
	f.next++
	res.ID = fmt.Sprintf("res-%d", f.next)
	res.Status = model.StatusBooked
	res.CreatedAt = time.Now().UTC()
	f.rows = append(f.rows, *res)
	return nil
}

func (f *fakeReservationStore) cancel(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.rows {
		if f.rows[i].ID == id {
			f.rows[i].Status = model.StatusCancelled
		}
	}
}

// fakeNotifier records notified reservations and signals on each call so
// tests can wait for the handler's fire-and-forget goroutine.
type fakeNotifier struct {
	mu     sync.Mutex
	seen   []model.Reservation
	called chan struct{}
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{called: make(chan struct{}, 32)}
}

func (f *fakeNotifier) NotifyBooked(_ context.Context, r model.Reservation) {
	f.mu.Lock()
	f.seen = append(f.seen, r)
	f.mu.Unlock()
	f.called <- struct{}{}
}

func validBookingJSON() string {
	return `{
		"first_name": "Ada",
		"last_name": "Byron",
		"email": "ada@example.com",
		"phone": "+1-555-0100",
		"party_size": 2,
		"reservation_date": "2026-09-01",
		"reservation_time": "19:00",
		"occasion": "birthday"
	}`
}

func doCreate(t *testing.T, h *ReservationHandler, payload string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/reservations", strings.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := h.Create(c); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	return rec, body
}

func TestCreateReservation(t *testing.T) {
	store := &fakeReservationStore{}
	notify := newFakeNotifier()
	h := NewReservationHandler(store, notify, 1)

	rec, body := doCreate(t, h, validBookingJSON())
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", rec.Code, rec.Body.String())
	}
	if body["success"] != true {
		t.Errorf("success = %v, want true", body["success"])
	}

	res, ok := body["reservation"].(map[string]interface{})
	if !ok {
		t.Fatalf("reservation missing from response: %v", body)
	}
	if res["id"] == "" || res["id"] == nil {
		t.Error("reservation id not assigned")
	}
	if res["status"] != "booked" {
		t.Errorf("status = %v, want booked", res["status"])
	}
	if res["first_name"] != "Ada" || res["party_size"] != float64(2) {
		t.Errorf("guest fields not echoed back: %v", res)
	}

	select {
	case <-notify.called:
	case <-time.After(2 * time.Second):
		t.Fatal("notifier was never called")
	}
	notify.mu.Lock()
	defer notify.mu.Unlock()
	if len(notify.seen) != 1 || notify.seen[0].Email != "ada@example.com" {
		t.Errorf("notified = %+v", notify.seen)
	}
}

func TestCreateReservationSlotFull(t *testing.T) {
	store := &fakeReservationStore{}
	notify := newFakeNotifier()
	h := NewReservationHandler(store, notify, 1)

	if rec, _ := doCreate(t, h, validBookingJSON()); rec.Code != http.StatusOK {
		t.Fatalf("first booking failed: %d", rec.Code)
	}
	<-notify.called

	rec, body := doCreate(t, h, validBookingJSON())
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
	if body["error"] != "This time slot is already booked. Please select another time." {
		t.Errorf("error = %v", body["error"])
	}

	select {
	case <-notify.called:
		t.Error("notifier called for a rejected booking")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestCreateReservationCancelFreesSlot(t *testing.T) {
	store := &fakeReservationStore{}
	notify := newFakeNotifier()
	h := NewReservationHandler(store, notify, 1)

	rec, body := doCreate(t, h, validBookingJSON())
	if rec.Code != http.StatusOK {
		t.Fatalf("first booking failed: %d", rec.Code)
	}
	<-notify.called
	first := body["reservation"].(map[string]interface{})
	store.cancel(first["id"].(string))

	// A cancelled reservation no longer counts against the slot.
	rec, _ = doCreate(t, h, validBookingJSON())
	if rec.Code != http.StatusOK {
		t.Fatalf("rebooking a freed slot: status = %d, want 200", rec.Code)
	}
	<-notify.called
}

func TestCreateReservationValidation(t *testing.T) {
	cases := []struct {
		name    string
		payload string
		wantErr string
	}{
		{
			"missing fields",
			`{"first_name": "Ada"}`,
			"Missing required fields",
		},
		{
			"party size too large",
			`{"first_name":"A","last_name":"B","email":"a@b.c","phone":"1","party_size":11,"reservation_date":"2026-09-01","reservation_time":"19:00"}`,
			"Party size must be between 1 and 10",
		},
		{
			"negative party size",
			`{"first_name":"A","last_name":"B","email":"a@b.c","phone":"1","party_size":-2,"reservation_date":"2026-09-01","reservation_time":"19:00"}`,
			"Party size must be between 1 and 10",
		},
		{
			"bad date",
			`{"first_name":"A","last_name":"B","email":"a@b.c","phone":"1","party_size":2,"reservation_date":"01/09/2026","reservation_time":"19:00"}`,
			"Invalid reservation date",
		},
		{
			"bad time",
			`{"first_name":"A","last_name":"B","email":"a@b.c","phone":"1","party_size":2,"reservation_date":"2026-09-01","reservation_time":"7pm"}`,
			"Invalid reservation time",
		},
		{
			"off-grid time",
			`{"first_name":"A","last_name":"B","email":"a@b.c","phone":"1","party_size":2,"reservation_date":"2026-09-01","reservation_time":"19:10"}`,
			"Invalid reservation time",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := &fakeReservationStore{}
			h := NewReservationHandler(store, newFakeNotifier(), 1)
			rec, body := doCreate(t, h, tc.payload)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
			if body["error"] != tc.wantErr {
				t.Errorf("error = %v, want %q", body["error"], tc.wantErr)
			}
			if len(store.rows) != 0 {
				t.Error("invalid request reached the store")
			}
		})
	}
}

func TestCreateReservationStoreFailure(t *testing.T) {
	store := &fakeReservationStore{err: errors.New("db down")}
	h := NewReservationHandler(store, newFakeNotifier(), 1)

	rec, body := doCreate(t, h, validBookingJSON())
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if body["error"] != "Failed to create reservation" {
		t.Errorf("error = %v", body["error"])
	}
}

func TestCreateReservationConcurrentLastPlace(t *testing.T) {
	store := &fakeReservationStore{}
	notify := newFakeNotifier()
	h := NewReservationHandler(store, notify, 1)

	const n = 16
	var wg sync.WaitGroup
	codes := make(chan int, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			e := echo.New()
			req := httptest.NewRequest(http.MethodPost, "/v1/reservations", strings.NewReader(validBookingJSON()))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()
			if err := h.Create(e.NewContext(req, rec)); err != nil {
				codes <- http.StatusInternalServerError
				return
			}
			codes <- rec.Code
		}()
	}
	wg.Wait()
	close(codes)

	won, lost := 0, 0
	for code := range codes {
		switch code {
		case http.StatusOK:
			won++
		case http.StatusConflict:
			lost++
		default:
			t.Errorf("unexpected status %d", code)
		}
	}
	if won != 1 {
		t.Errorf("winners = %d, want exactly 1", won)
	}
	if lost != n-1 {
		t.Errorf("conflicts = %d, want %d", lost, n-1)
	}
	if len(store.rows) != 1 {
		t.Errorf("stored rows = %d, want 1", len(store.rows))
	}
}
