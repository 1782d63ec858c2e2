package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/cinematix/booking-orchestrator/internal/model"
)

// TicketClient creates, fetches and updates tickets and retrieves
// their rendered documents.  Ticket creation is not atomic-idempotent
// on the backend, so CreateOrGet implements an explicit double-check
// protocol to guarantee at most one ticket per reservation from the
// client's point of view.
type TicketClient struct {
	backend *Backend
}

// NewTicketClient returns a TicketClient bound to the shared backend
// base.
func NewTicketClient(b *Backend) *TicketClient {
	return &TicketClient{backend: b}
}

// GetByReservation fetches the ticket attached to a reservation, or
// ErrNotFound when none exists yet.
func (t *TicketClient) GetByReservation(ctx context.Context, cred Credential, reservationID uint64) (model.Ticket, error) {
	var ticket model.Ticket
	path := fmt.Sprintf("/api/ticket/reserve/%d", reservationID)
	if err := t.backend.doJSON(ctx, cred, http.MethodGet, path, nil, &ticket); err != nil {
		return model.Ticket{}, fmt.Errorf("get ticket for reservation %d: %w", reservationID, err)
	}
	return ticket, nil
}

// CreateOrGet converges on exactly one ticket for the reservation:
// look up an existing ticket first; if absent, attempt creation; if
// creation loses a race against a concurrent attempt, look up again
// and return the winner.  Only when both paths fail does the call
// fail.
func (t *TicketClient) CreateOrGet(ctx context.Context, cred Credential, reservationID uint64) (model.Ticket, error) {
	ticket, err := t.GetByReservation(ctx, cred, reservationID)
	if err == nil {
		return ticket, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return model.Ticket{}, err
	}
	body := struct {
		ReserveID uint64 `json:"reserveId"`
	}{ReserveID: reservationID}
	var created model.Ticket
	createErr := t.backend.doJSON(ctx, cred, http.MethodPost, "/api/ticket", body, &created)
	if createErr == nil {
		return created, nil
	}
	// A conflict means a ticket appeared between the lookup and the
	// create; fetch whatever won the race.
	if errors.Is(createErr, ErrConflict) || errors.Is(createErr, ErrInvalid) {
		if ticket, err = t.GetByReservation(ctx, cred, reservationID); err == nil {
			return ticket, nil
		}
	}
	return model.Ticket{}, fmt.Errorf("create ticket for reservation %d: %w", reservationID, createErr)
}

// SetStatus transitions a ticket to the target status.  The current
// status is checked first and an already-satisfied transition is a
// no-op, which keeps retried completions from emitting spurious
// updates.
func (t *TicketClient) SetStatus(ctx context.Context, cred Credential, ticketID uint64, status model.TicketStatus) error {
	var current model.Ticket
	getPath := fmt.Sprintf("/api/ticket/%d", ticketID)
	if err := t.backend.doJSON(ctx, cred, http.MethodGet, getPath, nil, &current); err != nil {
		return fmt.Errorf("get ticket %d: %w", ticketID, err)
	}
	if current.Status == status {
		return nil
	}
	body := struct {
		Status model.TicketStatus `json:"status"`
	}{Status: status}
	path := fmt.Sprintf("/api/ticket/%d/status", ticketID)
	if err := t.backend.doJSON(ctx, cred, http.MethodPut, path, body, nil); err != nil {
		return fmt.Errorf("set ticket %d status %s: %w", ticketID, status, err)
	}
	return nil
}

// FetchDocument retrieves the rendered PDF for a ticket.  Ownership is
// probed with a plain ticket read first so that 401/403 conditions are
// attributed before the document endpoint is hit.  Neither failure
// rolls back the payment that produced the ticket; callers surface a
// retry affordance instead.
func (t *TicketClient) FetchDocument(ctx context.Context, cred Credential, ticketID uint64) ([]byte, error) {
	probe := fmt.Sprintf("/api/ticket/%d", ticketID)
	var ticket model.Ticket
	if err := t.backend.doJSON(ctx, cred, http.MethodGet, probe, nil, &ticket); err != nil {
		return nil, fmt.Errorf("check ticket %d access: %w", ticketID, err)
	}
	path := fmt.Sprintf("/api/ticket/%d/pdf", ticketID)
	data, contentType, err := t.backend.doRaw(ctx, cred, path, "application/pdf")
	if err != nil {
		return nil, fmt.Errorf("fetch document for ticket %d: %w", ticketID, err)
	}
	if contentType != "" && contentType != "application/pdf" {
		return nil, fmt.Errorf("%w: unexpected content type %q for ticket %d", ErrUpstream, contentType, ticketID)
	}
	return data, nil
}
