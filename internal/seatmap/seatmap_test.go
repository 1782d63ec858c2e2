package seatmap

import (
	"context"
	"errors"
	"testing"

	"github.com/cinematix/booking-orchestrator/internal/client"
	"github.com/cinematix/booking-orchestrator/internal/model"
)

type fakeCatalog struct {
	showtime model.Showtime
	seats    []model.Seat
	stErr    error
	seatsErr error
}

func (f *fakeCatalog) GetShowtime(ctx context.Context, cred client.Credential, id uint64) (model.Showtime, error) {
	return f.showtime, f.stErr
}

func (f *fakeCatalog) GetHallSeats(ctx context.Context, cred client.Credential, hallID uint64) ([]model.Seat, error) {
	return f.seats, f.seatsErr
}

type fakeReservations struct {
	reserved map[uint64]struct{}
	err      error
}

func (f *fakeReservations) ListReservedSeatIDs(ctx context.Context, cred client.Credential, showtimeID uint64) (map[uint64]struct{}, error) {
	return f.reserved, f.err
}

func testCatalog() *fakeCatalog {
	return &fakeCatalog{
		showtime: model.Showtime{ID: 7, MovieID: 3, HallID: 2, PriceCents: 1250},
		seats: []model.Seat{
			{ID: 1, HallID: 2, RowNumber: 1, SeatNumber: 1},
			{ID: 2, HallID: 2, RowNumber: 1, SeatNumber: 2},
			{ID: 3, HallID: 2, RowNumber: 2, SeatNumber: 1},
		},
	}
}

func TestLoadMarksReservedSeats(t *testing.T) {
	res := &fakeReservations{reserved: map[uint64]struct{}{2: {}}}
	sm, err := Load(context.Background(), testCatalog(), res, "tok", 7)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	entries := sm.Entries()
	if len(entries) != 3 {
		t.Fatalf("Entries() length = %d, want 3", len(entries))
	}
	for _, e := range entries {
		want := Available
		if e.Seat.ID == 2 {
			want = Reserved
		}
		if e.Status != want {
			t.Errorf("seat %d status = %s, want %s", e.Seat.ID, e.Status, want)
		}
	}
}

func TestLoadFailsSafeWhenReservationStatusUnknown(t *testing.T) {
	res := &fakeReservations{err: client.ErrUpstream}
	sm, err := Load(context.Background(), testCatalog(), res, "tok", 7)
	if err == nil {
		t.Fatal("Load() error = nil, want reservation status error")
	}
	if sm == nil {
		t.Fatal("Load() map = nil, want degraded map")
	}
	for _, e := range sm.Entries() {
		if e.Status != Reserved {
			t.Errorf("seat %d status = %s, want RESERVED when status unknown", e.Seat.ID, e.Status)
		}
	}
	if err := sm.ToggleSelection(1); !errors.Is(err, ErrSeatUnavailable) {
		t.Errorf("ToggleSelection on degraded map error = %v, want ErrSeatUnavailable", err)
	}
}

func TestLoadUnknownShowtime(t *testing.T) {
	cat := testCatalog()
	cat.stErr = client.ErrNotFound
	if _, err := Load(context.Background(), cat, &fakeReservations{}, "tok", 99); !errors.Is(err, client.ErrNotFound) {
		t.Errorf("Load() error = %v, want ErrNotFound", err)
	}
}

func TestLoadEmptyHall(t *testing.T) {
	cat := testCatalog()
	cat.seats = nil
	if _, err := Load(context.Background(), cat, &fakeReservations{}, "tok", 7); !errors.Is(err, client.ErrNotFound) {
		t.Errorf("Load() error = %v, want ErrNotFound for empty hall", err)
	}
}

func TestToggleSelectionAndTotal(t *testing.T) {
	res := &fakeReservations{reserved: map[uint64]struct{}{3: {}}}
	sm, err := Load(context.Background(), testCatalog(), res, "tok", 7)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if got := sm.SelectedTotalCents(); got != 0 {
		t.Errorf("SelectedTotalCents() = %d, want 0 before any selection", got)
	}

	if err := sm.ToggleSelection(1); err != nil {
		t.Fatalf("ToggleSelection(1) error = %v", err)
	}
	if err := sm.ToggleSelection(2); err != nil {
		t.Fatalf("ToggleSelection(2) error = %v", err)
	}
	if got := sm.SelectedTotalCents(); got != 2500 {
		t.Errorf("SelectedTotalCents() = %d, want 2500 for two seats at 1250", got)
	}

	// Deselect flips back and the total follows immediately.
	if err := sm.ToggleSelection(2); err != nil {
		t.Fatalf("ToggleSelection(2) again error = %v", err)
	}
	if got := sm.SelectedTotalCents(); got != 1250 {
		t.Errorf("SelectedTotalCents() = %d, want 1250 after deselect", got)
	}
	ids := sm.SelectedSeatIDs()
	if len(ids) != 1 || ids[0] != 1 {
		t.Errorf("SelectedSeatIDs() = %v, want [1]", ids)
	}

	// A reserved seat cannot be selected and the toggle is a no-op.
	if err := sm.ToggleSelection(3); !errors.Is(err, ErrSeatUnavailable) {
		t.Errorf("ToggleSelection(3) error = %v, want ErrSeatUnavailable", err)
	}
	if got := sm.SelectedTotalCents(); got != 1250 {
		t.Errorf("SelectedTotalCents() = %d, want 1250 after failed toggle", got)
	}

	if err := sm.ToggleSelection(42); !errors.Is(err, ErrUnknownSeat) {
		t.Errorf("ToggleSelection(42) error = %v, want ErrUnknownSeat", err)
	}
}
