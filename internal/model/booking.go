package model

import "time"

// BookingSeat is one finalized seat inside a completed booking,
// carrying the ticket that proves the purchase.
type BookingSeat struct {
	SeatID        uint64 `json:"seatId"`
	RowNumber     uint32 `json:"rowNumber"`
	SeatNumber    uint32 `json:"seatNumber"`
	ReservationID uint64 `json:"reservationId"`
	TicketID      uint64 `json:"ticketId"`
}

// Booking is the finalized record written once every seat of a pending
// transaction is paid and ticketed.  It outlives the pending record
// and backs later ticket document downloads.
//
// Fields:
//  Ref           – client-generated reference (UUID).
//  UserID        – purchasing user.
//  ShowtimeID    – showtime the seats belong to.
//  MovieTitle    – snapshot of the movie title at purchase time.
//  Seats         – finalized seats with their ticket IDs.
//  SubtotalCents – sum of per-seat prices in cents.
//  FeeCents      – fixed booking fee in cents.
//  TotalCents    – subtotal plus fee.
//  CreatedAt     – completion timestamp in UTC.
type Booking struct {
	Ref           string        `json:"ref"`
	UserID        uint64        `json:"userId"`
	ShowtimeID    uint64        `json:"showtimeId"`
	MovieTitle    string        `json:"movieTitle"`
	Seats         []BookingSeat `json:"seats"`
	SubtotalCents uint32        `json:"subtotalCents"`
	FeeCents      uint32        `json:"feeCents"`
	TotalCents    uint32        `json:"totalCents"`
	CreatedAt     time.Time     `json:"createdAt"`
}
