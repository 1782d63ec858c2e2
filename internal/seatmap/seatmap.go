// Package seatmap models a hall's seat grid with per-seat availability
// for one showtime.  Availability is derived from the backend's
// reservation list at load time; Selected is purely local state that
// has not been committed anywhere.
package seatmap

import (
	"context"
	"errors"
	"fmt"

	"github.com/cinematix/booking-orchestrator/internal/client"
	"github.com/cinematix/booking-orchestrator/internal/model"
)

// Status is the showtime-scoped state of one seat as the selection UI
// sees it.
type Status string

const (
	// Available means the seat can be selected.
	Available Status = "AVAILABLE"
	// Selected means the seat is chosen locally but not yet reserved.
	Selected Status = "SELECTED"
	// Reserved means the seat is committed by some user, possibly the
	// caller, and cannot be selected.
	Reserved Status = "RESERVED"
)

// ErrSeatUnavailable is reported when a toggle targets a seat that is
// not Available; the toggle itself is a no-op.
var ErrSeatUnavailable = errors.New("seat unavailable")

// ErrUnknownSeat is reported when a toggle targets a seat ID that does
// not exist in the loaded hall.
var ErrUnknownSeat = errors.New("unknown seat")

// Entry pairs a seat with its current status.
type Entry struct {
	Seat   model.Seat `json:"seat"`
	Status Status     `json:"status"`
}

// Catalog is the subset of the catalogue client the seat map needs.
type Catalog interface {
	GetShowtime(ctx context.Context, cred client.Credential, id uint64) (model.Showtime, error)
	GetHallSeats(ctx context.Context, cred client.Credential, hallID uint64) ([]model.Seat, error)
}

// Reservations is the subset of the reservation client the seat map
// needs.
type Reservations interface {
	ListReservedSeatIDs(ctx context.Context, cred client.Credential, showtimeID uint64) (map[uint64]struct{}, error)
}

// SeatMap answers, for a given showtime, whether each seat is
// Available, Selected or Reserved, and tracks the running price of the
// local selection.  It is not safe for concurrent use; the booking
// flow drives it from a single goroutine per session.
type SeatMap struct {
	Showtime model.Showtime
	entries  []Entry
	index    map[uint64]int
}

// Load builds the seat map for a showtime.  Unknown showtimes or halls
// surface client.ErrNotFound.  When the reservation-status query fails
// the map is still returned but every seat is marked Reserved: with
// the true status unknown the map fails safe so no seat can be
// selected, and the returned error tells the caller why.
func Load(ctx context.Context, cat Catalog, res Reservations, cred client.Credential, showtimeID uint64) (*SeatMap, error) {
	st, err := cat.GetShowtime(ctx, cred, showtimeID)
	if err != nil {
		return nil, err
	}
	seats, err := cat.GetHallSeats(ctx, cred, st.HallID)
	if err != nil {
		return nil, err
	}
	if len(seats) == 0 {
		return nil, fmt.Errorf("%w: hall %d has no seats", client.ErrNotFound, st.HallID)
	}
	sm := &SeatMap{
		Showtime: st,
		entries:  make([]Entry, 0, len(seats)),
		index:    make(map[uint64]int, len(seats)),
	}
	reserved, resErr := res.ListReservedSeatIDs(ctx, cred, showtimeID)
	for _, seat := range seats {
		status := Available
		if resErr != nil {
			// fail safe, never fail open
			status = Reserved
		} else if _, taken := reserved[seat.ID]; taken {
			status = Reserved
		}
		sm.index[seat.ID] = len(sm.entries)
		sm.entries = append(sm.entries, Entry{Seat: seat, Status: status})
	}
	if resErr != nil {
		return sm, fmt.Errorf("reservation status unknown: %w", resErr)
	}
	return sm, nil
}

// Entries returns the grid in backend order (row, then seat number).
func (m *SeatMap) Entries() []Entry {
	return m.entries
}

// ToggleSelection flips a seat between Available and Selected.  Seats
// in any other state are left untouched and the condition is reported
// so the UI can tell the user why nothing happened.
func (m *SeatMap) ToggleSelection(seatID uint64) error {
	i, ok := m.index[seatID]
	if !ok {
		return fmt.Errorf("%w: id %d", ErrUnknownSeat, seatID)
	}
	switch m.entries[i].Status {
	case Available:
		m.entries[i].Status = Selected
	case Selected:
		m.entries[i].Status = Available
	default:
		return fmt.Errorf("%w: seat %s", ErrSeatUnavailable, m.entries[i].Seat.Label())
	}
	return nil
}

// SelectedSeatIDs returns the IDs of locally selected seats in grid
// order.
func (m *SeatMap) SelectedSeatIDs() []uint64 {
	var ids []uint64
	for _, e := range m.entries {
		if e.Status == Selected {
			ids = append(ids, e.Seat.ID)
		}
	}
	return ids
}

// SelectedTotalCents returns the price of the current selection: seat
// count times the showtime's per-seat price.  It is recomputed on
// every call so a toggle is always reflected immediately.
func (m *SeatMap) SelectedTotalCents() uint32 {
	var n uint32
	for _, e := range m.entries {
		if e.Status == Selected {
			n++
		}
	}
	return n * m.Showtime.PriceCents
}
