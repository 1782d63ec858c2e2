package booking

import (
	"context"
	"errors"

	"github.com/cinematix/booking-orchestrator/internal/client"
)

// SeatState tracks one seat through the booking transaction.
type SeatState string

const (
	// StateSelected is the initial, purely local state.
	StateSelected SeatState = "SELECTED"
	// StateReserving means the reservation call is in flight.
	StateReserving SeatState = "RESERVING"
	// StateReserved means the backend accepted the claim.
	StateReserved SeatState = "RESERVED"
	// StatePaying means the charge is being authorized.
	StatePaying SeatState = "PAYING"
	// StateTicketing means the ticket is being created or marked paid.
	StateTicketing SeatState = "TICKETING"
	// StateComplete means the seat is paid and ticketed.
	StateComplete SeatState = "COMPLETE"

	// StateReservationFailed is reached from StateReserving.
	StateReservationFailed SeatState = "RESERVATION_FAILED"
	// StatePaymentFailed is reached from StatePaying.
	StatePaymentFailed SeatState = "PAYMENT_FAILED"
	// StateTicketingFailed is reached from StateTicketing.
	StateTicketingFailed SeatState = "TICKETING_FAILED"
)

// SeatResult is the per-seat outcome of an orchestrator run.  Failures
// are attributed per seat and never collapsed into one opaque error.
type SeatResult struct {
	SeatID        uint64    `json:"seatId"`
	Label         string    `json:"label"`
	State         SeatState `json:"state"`
	ReservationID uint64    `json:"reservationId,omitempty"`
	TicketID      uint64    `json:"ticketId,omitempty"`
	FailureReason string    `json:"failureReason,omitempty"`
}

// DocumentResult is the outcome of one ticket document fetch.  A
// failure here is a separate, non-fatal condition: the booking stays
// complete and the fetch can be retried.
type DocumentResult struct {
	TicketID      uint64 `json:"ticketId"`
	Label         string `json:"label,omitempty"`
	OK            bool   `json:"ok"`
	Size          int    `json:"size,omitempty"`
	FailureReason string `json:"failureReason,omitempty"`
}

// Failure reason labels surfaced in results.  They mirror the client
// error taxonomy so callers can branch without parsing error text.
const (
	ReasonConflict     = "conflict"
	ReasonUnauthorized = "unauthorized"
	ReasonForbidden    = "forbidden"
	ReasonDeclined     = "declined"
	ReasonNotFound     = "not_found"
	ReasonInvalid      = "invalid"
	ReasonUpstream     = "upstream"
	ReasonCancelled    = "cancelled"
)

// failureReason classifies an error from a backend client into one of
// the reason labels above.
func failureReason(err error) string {
	switch {
	case errors.Is(err, client.ErrConflict):
		return ReasonConflict
	case errors.Is(err, client.ErrUnauthorized):
		return ReasonUnauthorized
	case errors.Is(err, client.ErrForbidden):
		return ReasonForbidden
	case errors.Is(err, client.ErrDeclined):
		return ReasonDeclined
	case errors.Is(err, client.ErrNotFound):
		return ReasonNotFound
	case errors.Is(err, client.ErrInvalid):
		return ReasonInvalid
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return ReasonCancelled
	default:
		return ReasonUpstream
	}
}
