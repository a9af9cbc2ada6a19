package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

type fakeSlotCounter struct {
	count int
	err   error
	calls int
}

func (f *fakeSlotCounter) CountActiveBySlot(_ context.Context, _, _ string) (int, error) {
	f.calls++
	return f.count, f.err
}

func doAvailability(t *testing.T, h *AvailabilityHandler, query string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/availability"+query, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := h.Check(c); err != nil {
		t.Fatalf("Check returned error: %v", err)
	}
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	return rec, body
}

func TestAvailabilityMissingParams(t *testing.T) {
	h := NewAvailabilityHandler(&fakeSlotCounter{}, 1)

	for _, query := range []string{"", "?date=2026-09-01", "?time=19:00"} {
		rec, body := doAvailability(t, h, query)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("query %q: status = %d, want 400", query, rec.Code)
		}
		if body["error"] != "Date and time are required" {
			t.Errorf("query %q: error = %v", query, body["error"])
		}
	}
}

func TestAvailabilityFreeSlot(t *testing.T) {
	h := NewAvailabilityHandler(&fakeSlotCounter{count: 0}, 1)

	rec, body := doAvailability(t, h, "?date=2026-09-01&time=19:00")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if body["available"] != true {
		t.Errorf("available = %v, want true", body["available"])
	}
	if body["remaining"] != float64(1) {
		t.Errorf("remaining = %v, want 1", body["remaining"])
	}
	if body["message"] != "Time slot available" {
		t.Errorf("message = %v", body["message"])
	}
}

func TestAvailabilityFullSlot(t *testing.T) {
	h := NewAvailabilityHandler(&fakeSlotCounter{count: 1}, 1)

	rec, body := doAvailability(t, h, "?date=2026-09-01&time=19:00")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if body["available"] != false {
		t.Errorf("available = %v, want false", body["available"])
	}
	if body["remaining"] != float64(0) {
		t.Errorf("remaining = %v, want 0", body["remaining"])
	}
	if body["message"] != "This time slot is already booked" {
		t.Errorf("message = %v", body["message"])
	}
}

func TestAvailabilityRemainingNeverNegative(t *testing.T) {
	// Count above capacity can happen after capacity is lowered in config.
	h := NewAvailabilityHandler(&fakeSlotCounter{count: 5}, 2)

	_, body := doAvailability(t, h, "?date=2026-09-01&time=19:00")
	if body["remaining"] != float64(0) {
		t.Errorf("remaining = %v, want 0", body["remaining"])
	}
}

func TestAvailabilityStoreError(t *testing.T) {
	h := NewAvailabilityHandler(&fakeSlotCounter{err: errors.New("db down")}, 1)

	rec, body := doAvailability(t, h, "?date=2026-09-01&time=19:00")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if body["error"] != "Failed to check availability" {
		t.Errorf("error = %v", body["error"])
	}
}

func TestAvailabilityIdempotent(t *testing.T) {
	store := &fakeSlotCounter{count: 0}
	h := NewAvailabilityHandler(store, 3)

	var first map[string]interface{}
	for i := 0; i < 3; i++ {
		_, body := doAvailability(t, h, "?date=2026-09-01&time=19:00")
		if i == 0 {
			first = body
			continue
		}
		if body["available"] != first["available"] || body["remaining"] != first["remaining"] {
			t.Fatalf("response changed between identical calls: %v vs %v", body, first)
		}
	}
	if store.calls != 3 {
		t.Errorf("store calls = %d, want 3", store.calls)
	}
}
