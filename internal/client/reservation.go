package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/cinematix/booking-orchestrator/internal/model"
)

// ReservationClient creates and lists per-seat reservations against
// the backend.  It owns no state beyond request and response; the
// uniqueness invariant (one active reservation per seat and showtime)
// is enforced server-side and surfaces here as ErrConflict.
type ReservationClient struct {
	backend *Backend
}

// NewReservationClient returns a ReservationClient bound to the shared
// backend base.
func NewReservationClient(b *Backend) *ReservationClient {
	return &ReservationClient{backend: b}
}

// Reserve claims one seat for one showtime on behalf of the
// credentialed user.  A 409 from the backend means the seat was taken
// between the seat-map read and this call and maps to ErrConflict;
// ErrUnauthorized means the credential expired and the whole
// transaction must halt.
func (r *ReservationClient) Reserve(ctx context.Context, cred Credential, showtimeID, seatID uint64) (model.Reservation, error) {
	body := struct {
		ShowtimeID uint64 `json:"showtimeId"`
		SeatID     uint64 `json:"seatId"`
	}{ShowtimeID: showtimeID, SeatID: seatID}
	var res model.Reservation
	if err := r.backend.doJSON(ctx, cred, http.MethodPost, "/api/reservation", body, &res); err != nil {
		return model.Reservation{}, fmt.Errorf("reserve seat %d: %w", seatID, err)
	}
	return res, nil
}

// ListReservedSeatIDs returns the set of seat IDs already reserved for
// the showtime.  The read is eventually consistent: a seat can become
// reserved between this call and a later Reserve, which is why Reserve
// conflicts are handled rather than prevented.
func (r *ReservationClient) ListReservedSeatIDs(ctx context.Context, cred Credential, showtimeID uint64) (map[uint64]struct{}, error) {
	var items []model.Reservation
	path := fmt.Sprintf("/api/reservation/showtime/%d", showtimeID)
	if err := r.backend.doJSON(ctx, cred, http.MethodGet, path, nil, &items); err != nil {
		return nil, fmt.Errorf("list reservations for showtime %d: %w", showtimeID, err)
	}
	out := make(map[uint64]struct{}, len(items))
	for _, it := range items {
		out[it.SeatID] = struct{}{}
	}
	return out, nil
}
