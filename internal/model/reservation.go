package model

import "time"

// Reservation is a claim on one (seat, showtime) pair by one user.
// The backend is the source of truth for its uniqueness invariant:
// for a given showtime each seat carries at most one active
// reservation.  The client therefore treats a creation conflict as
// "seat no longer available" rather than a generic failure.
//
// Fields:
//  ID         – backend identifier.
//  ShowtimeID – showtime being claimed.
//  SeatID     – seat being claimed.
//  UserID     – user holding the claim.
//  CreatedAt  – creation timestamp in UTC.
type Reservation struct {
	ID         uint64    `json:"id"`
	ShowtimeID uint64    `json:"showtimeId"`
	SeatID     uint64    `json:"seatId"`
	UserID     uint64    `json:"userId"`
	CreatedAt  time.Time `json:"createdAt"`
}
