package model

import "time"

// PendingSeat tracks one seat inside an in-flight booking.  The
// reservation ID is fixed at reserve time; TicketID and Done are
// filled in as the payment phase completes so that a retried
// completion can skip seats that already went through.
type PendingSeat struct {
	SeatID        uint64 `json:"seatId"`
	RowNumber     uint32 `json:"rowNumber"`
	SeatNumber    uint32 `json:"seatNumber"`
	ReservationID uint64 `json:"reservationId"`
	TicketID      uint64 `json:"ticketId,omitempty"`
	Done          bool   `json:"done,omitempty"`
}

// PendingTransaction is the orchestrator's working record of a booking
// between "all seats reserved" and "all tickets paid".  It is owned
// exclusively by the orchestrator, persisted in an external store so
// it survives a client restart, and deleted once the booking reaches a
// terminal state.
//
// Amounts are integer cents.  TotalCents is always SubtotalCents plus
// FeeCents; it is stored rather than recomputed so the record shows
// exactly what the user was quoted.
type PendingTransaction struct {
	ID            string        `json:"id"`
	UserID        uint64        `json:"userId"`
	Movie         Movie         `json:"movie"`
	Showtime      Showtime      `json:"showtime"`
	Seats         []PendingSeat `json:"seats"`
	SubtotalCents uint32        `json:"subtotalCents"`
	FeeCents      uint32        `json:"feeCents"`
	TotalCents    uint32        `json:"totalCents"`
	Attempts      int           `json:"attempts"`
	CreatedAt     time.Time     `json:"createdAt"`
}

// RemainingSeats returns the seats that have not yet completed the
// payment phase.
func (p *PendingTransaction) RemainingSeats() int {
	n := 0
	for _, s := range p.Seats {
		if !s.Done {
			n++
		}
	}
	return n
}
