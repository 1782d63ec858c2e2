package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/cinematix/booking-orchestrator/internal/card"
	"github.com/cinematix/booking-orchestrator/internal/model"
)

// PaymentClient validates card details server-side and authorizes
// charges per reservation.  Local validation lives in the card
// package; the remote call is never skipped even when local checks
// pass, because card status can change between the two.
type PaymentClient struct {
	backend *Backend
}

// NewPaymentClient returns a PaymentClient bound to the shared backend
// base.
func NewPaymentClient(b *Backend) *PaymentClient {
	return &PaymentClient{backend: b}
}

// ValidateCard submits the card details for server-side validation.  A
// rejection (4xx other than auth failures) maps to ErrDeclined since
// the card cannot be charged in its current state.
func (p *PaymentClient) ValidateCard(ctx context.Context, cred Credential, details card.Details) error {
	err := p.backend.doJSON(ctx, cred, http.MethodPost, "/api/payment/validate", details, nil)
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrUpstream) {
		return fmt.Errorf("validate card: %w", err)
	}
	return fmt.Errorf("validate card: %w: %v", ErrDeclined, err)
}

// Authorize charges the price of one reservation.  Only the masked
// card summary crosses this boundary; full card details were consumed
// by ValidateCard.  ErrDeclined is terminal for the seat, ErrUpstream
// is retryable.
func (p *PaymentClient) Authorize(ctx context.Context, cred Credential, reservationID uint64, priceCents uint32, summary string) (model.PaymentAuthorization, error) {
	body := struct {
		ReservationID uint64 `json:"reservationId"`
		AmountCents   uint32 `json:"amountCents"`
		CardSummary   string `json:"cardSummary"`
	}{ReservationID: reservationID, AmountCents: priceCents, CardSummary: summary}
	var auth model.PaymentAuthorization
	if err := p.backend.doJSON(ctx, cred, http.MethodPost, "/api/payment/authorize", body, &auth); err != nil {
		return model.PaymentAuthorization{}, fmt.Errorf("authorize reservation %d: %w", reservationID, err)
	}
	return auth, nil
}
