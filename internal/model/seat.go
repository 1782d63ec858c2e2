package model

import "fmt"

// Seat describes a physical seat in a hall.  Seats are uniquely
// identified by their hall, row number and seat number.  A seat's
// availability is a showtime-scoped fact derived from reservations,
// not a property of the seat itself.
//
// Fields:
//  ID         – backend identifier.
//  HallID     – hall to which this seat belongs.
//  RowNumber  – row of the seat within the hall.
//  SeatNumber – number of the seat within the row.
type Seat struct {
	ID         uint64 `json:"id"`
	HallID     uint64 `json:"hallId"`
	RowNumber  uint32 `json:"rowNumber"`
	SeatNumber uint32 `json:"seatNumber"`
}

// Label returns the human-readable position of the seat, e.g. "R3-S7".
func (s Seat) Label() string {
	return fmt.Sprintf("R%d-S%d", s.RowNumber, s.SeatNumber)
}
