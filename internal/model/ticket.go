package model

// TicketStatus enumerates the lifecycle of a ticket.  A ticket is
// created Unpaid alongside its reservation and moves to Paid exactly
// once after a successful charge.
type TicketStatus string

const (
	TicketUnpaid TicketStatus = "Unpaid"
	TicketPaid   TicketStatus = "Paid"
)

// Ticket is the proof of purchase tied 1:1 to a reservation.  At most
// one ticket may exist per reservation; TicketClient.CreateOrGet
// enforces this from the client side with a double-check protocol.
//
// Fields:
//  ID        – backend identifier.
//  ReserveID – the reservation this ticket pays for.
//  Status    – Unpaid or Paid.
type Ticket struct {
	ID        uint64       `json:"id"`
	ReserveID uint64       `json:"reserveId"`
	Status    TicketStatus `json:"status"`
}

// PaymentAuthorization is the backend's acknowledgement of a charge
// against one reservation.
type PaymentAuthorization struct {
	ID            uint64 `json:"id"`
	ReservationID uint64 `json:"reservationId"`
	AmountCents   uint32 `json:"amountCents"`
	Reference     string `json:"reference"`
}
