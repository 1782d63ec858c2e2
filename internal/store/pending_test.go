package store

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/cinematix/booking-orchestrator/internal/model"
)

const testKey = "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"

func samplePending() *model.PendingTransaction {
	return &model.PendingTransaction{
		ID:     "tx-1",
		UserID: 42,
		Movie:  model.Movie{ID: 3, Title: "Blade Runner"},
		Showtime: model.Showtime{
			ID: 7, MovieID: 3, HallID: 2, PriceCents: 1250,
			StartTime: time.Date(2026, time.September, 1, 19, 0, 0, 0, time.UTC),
		},
		Seats: []model.PendingSeat{
			{SeatID: 1, RowNumber: 1, SeatNumber: 1, ReservationID: 100},
			{SeatID: 2, RowNumber: 1, SeatNumber: 2, ReservationID: 101, TicketID: 9, Done: true},
		},
		SubtotalCents: 2500,
		FeeCents:      150,
		TotalCents:    2650,
		Attempts:      1,
		CreatedAt:     time.Date(2026, time.August, 29, 10, 0, 0, 0, time.UTC),
	}
}

func TestNewSealerKeyValidation(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		wantErr string
	}{
		{"Valid key", testKey, ""},
		{"Not hex", strings.Repeat("zz", 32), "decode seal key"},
		{"Too short", "0011223344", "must be 32 bytes"},
		{"Empty", "", "must be 32 bytes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newSealer(tt.key)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("newSealer() error = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("newSealer() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestSealOpenRoundTrip(t *testing.T) {
	s, err := newSealer(testKey)
	if err != nil {
		t.Fatalf("newSealer() error = %v", err)
	}
	in := samplePending()
	sealed, err := s.seal(in)
	if err != nil {
		t.Fatalf("seal() error = %v", err)
	}
	if strings.Contains(string(sealed), "Blade Runner") {
		t.Error("sealed payload leaks plaintext")
	}
	out, err := s.open(sealed)
	if err != nil {
		t.Fatalf("open() error = %v", err)
	}
	if out.ID != in.ID || out.TotalCents != in.TotalCents || len(out.Seats) != 2 {
		t.Errorf("round trip = %+v, want %+v", out, in)
	}
	if !out.Seats[1].Done || out.Seats[1].TicketID != 9 {
		t.Errorf("per-seat progress lost in round trip: %+v", out.Seats[1])
	}
}

func TestOpenRejectsTamperedPayload(t *testing.T) {
	s, err := newSealer(testKey)
	if err != nil {
		t.Fatalf("newSealer() error = %v", err)
	}
	sealed, err := s.seal(samplePending())
	if err != nil {
		t.Fatalf("seal() error = %v", err)
	}
	sealed[len(sealed)-1] ^= 0xff
	if _, err := s.open(sealed); err == nil {
		t.Error("open() accepted a tampered payload")
	}
	if _, err := s.open(sealed[:4]); err == nil {
		t.Error("open() accepted a truncated payload")
	}
}

func TestMemoryPendingStore(t *testing.T) {
	ms, err := NewMemoryPendingStore(testKey)
	if err != nil {
		t.Fatalf("NewMemoryPendingStore() error = %v", err)
	}
	ctx := context.Background()

	if _, err := ms.Load(ctx, 42); !errors.Is(err, ErrNoPending) {
		t.Errorf("Load() on empty store error = %v, want ErrNoPending", err)
	}

	in := samplePending()
	if err := ms.Save(ctx, 42, in); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	// Mutating the original after Save must not affect the stored copy.
	in.TotalCents = 9999

	out, err := ms.Load(ctx, 42)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if out.TotalCents != 2650 {
		t.Errorf("Load() TotalCents = %d, want 2650 (stored copy mutated)", out.TotalCents)
	}

	// Last write wins for the single per-user slot.
	replacement := samplePending()
	replacement.ID = "tx-2"
	if err := ms.Save(ctx, 42, replacement); err != nil {
		t.Fatalf("Save() replacement error = %v", err)
	}
	out, err = ms.Load(ctx, 42)
	if err != nil {
		t.Fatalf("Load() after replace error = %v", err)
	}
	if out.ID != "tx-2" {
		t.Errorf("Load() ID = %q, want tx-2", out.ID)
	}

	if err := ms.Delete(ctx, 42); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := ms.Load(ctx, 42); !errors.Is(err, ErrNoPending) {
		t.Errorf("Load() after Delete error = %v, want ErrNoPending", err)
	}
}

func TestRemainingSeats(t *testing.T) {
	pt := samplePending()
	if got := pt.RemainingSeats(); got != 1 {
		t.Errorf("RemainingSeats() = %d, want 1", got)
	}
}
