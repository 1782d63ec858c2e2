// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingCompletedEvent is published when every seat of a booking is
// paid and ticketed.  It carries enough information for downstream
// consumers to log, notify or feed analytics without calling back into
// the ticketing backend.
type BookingCompletedEvent struct {
	BookingRef  string   `json:"booking_ref"`
	UserID      uint64   `json:"user_id"`
	ShowtimeID  uint64   `json:"showtime_id"`
	MovieTitle  string   `json:"movie_title"`
	SeatLabels  []string `json:"seats"`
	TicketIDs   []uint64 `json:"ticket_ids"`
	TotalCents  uint32   `json:"total_cents"`
	CompletedAt string   `json:"completed_at"`
}
