// Package booking implements the transaction orchestrator: the
// sequence that turns a set of selected seats for one showtime into
// confirmed, paid, downloadable tickets.  It coordinates the
// reservation, payment, ticket and catalogue clients and the pending
// transaction store under partial-failure conditions.
//
// Seats move through Selected → Reserving → Reserved → Paying →
// Ticketing → Complete, with ReservationFailed, PaymentFailed and
// TicketingFailed branches.  There is no compensating rollback of a
// successful reservation when a later seat fails: a multi-seat
// purchase may end with some seats reserved but unpaid, and that is
// surfaced as a per-seat failure count rather than silently discarded.
package booking

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/cinematix/booking-orchestrator/internal/card"
	"github.com/cinematix/booking-orchestrator/internal/client"
	"github.com/cinematix/booking-orchestrator/internal/model"
	"github.com/cinematix/booking-orchestrator/internal/queue"
	"github.com/cinematix/booking-orchestrator/internal/store"
)

// ErrNoSeatsSelected is returned when ReserveSelection is called with
// an empty seat list.
var ErrNoSeatsSelected = errors.New("no seats selected")

// ErrNoPendingTransaction is returned when CompleteTransaction finds
// no in-flight record for the user, e.g. a reload without a saved
// transaction.
var ErrNoPendingTransaction = errors.New("no pending transaction")

// ErrCardValidation is returned when local card validation fails; the
// per-field messages ride along in the result and no network call has
// been made.
var ErrCardValidation = errors.New("card validation failed")

// ErrTooManyAttempts is returned when a pending transaction has been
// retried past the configured bound.  The record is deleted; the user
// starts over from seat selection.
var ErrTooManyAttempts = errors.New("too many completion attempts")

// PartialFailureError aggregates a completion run in which some seats
// failed.  The pending transaction is kept so a retry can skip the
// seats that already completed.
type PartialFailureError struct {
	Failed int
	Total  int
}

func (e *PartialFailureError) Error() string {
	return fmt.Sprintf("%d of %d seats failed to complete", e.Failed, e.Total)
}

// ReservationAPI is the slice of the reservation client the
// orchestrator drives.
type ReservationAPI interface {
	Reserve(ctx context.Context, cred client.Credential, showtimeID, seatID uint64) (model.Reservation, error)
}

// PaymentAPI validates cards server-side and authorizes charges.
type PaymentAPI interface {
	ValidateCard(ctx context.Context, cred client.Credential, details card.Details) error
	Authorize(ctx context.Context, cred client.Credential, reservationID uint64, priceCents uint32, summary string) (model.PaymentAuthorization, error)
}

// TicketAPI creates, updates and renders tickets.
type TicketAPI interface {
	CreateOrGet(ctx context.Context, cred client.Credential, reservationID uint64) (model.Ticket, error)
	SetStatus(ctx context.Context, cred client.Credential, ticketID uint64, status model.TicketStatus) error
	FetchDocument(ctx context.Context, cred client.Credential, ticketID uint64) ([]byte, error)
}

// CatalogAPI supplies the reference data snapshotted into pending
// transactions.
type CatalogAPI interface {
	GetMovie(ctx context.Context, cred client.Credential, id uint64) (model.Movie, error)
	GetShowtime(ctx context.Context, cred client.Credential, id uint64) (model.Showtime, error)
	GetHallSeats(ctx context.Context, cred client.Credential, hallID uint64) ([]model.Seat, error)
}

// Recorder persists finalized bookings.
type Recorder interface {
	Create(ctx context.Context, b *model.Booking) error
	GetByRef(ctx context.Context, ref string, userID uint64) (*model.Booking, error)
}

// Config tunes the orchestrator.  Zero values fall back to the
// defaults below.
type Config struct {
	FeeCents      uint32        // fixed booking fee added to every transaction
	DocumentDelay time.Duration // pacing between sequential document fetches
	MaxAttempts   int           // completion attempts before the pending record is dropped
}

const (
	defaultFeeCents      = 150
	defaultDocumentDelay = 500 * time.Millisecond
	defaultMaxAttempts   = 5
)

// Orchestrator drives the booking transaction.  All collaborator
// calls are sequential: the orchestrator never proceeds to the next
// seat or phase until the current call resolves, which keeps partial
// states unsurprising and error attribution per seat unambiguous.
type Orchestrator struct {
	reservations ReservationAPI
	payments     PaymentAPI
	tickets      TicketAPI
	catalog      CatalogAPI
	pending      store.PendingStore
	bookings     Recorder
	publish      func(ctx context.Context, ev queue.BookingCompletedEvent) error
	cfg          Config
}

// New constructs an Orchestrator.  publish may be nil when no event
// broker is wired; all other collaborators are required.
func New(res ReservationAPI, pay PaymentAPI, tick TicketAPI, cat CatalogAPI, pending store.PendingStore, rec Recorder, publish func(ctx context.Context, ev queue.BookingCompletedEvent) error, cfg Config) *Orchestrator {
	if res == nil || pay == nil || tick == nil || cat == nil || pending == nil || rec == nil {
		panic("nil collaborator passed to booking.New")
	}
	if cfg.FeeCents == 0 {
		cfg.FeeCents = defaultFeeCents
	}
	if cfg.DocumentDelay <= 0 {
		cfg.DocumentDelay = defaultDocumentDelay
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = defaultMaxAttempts
	}
	return &Orchestrator{
		reservations: res,
		payments:     pay,
		tickets:      tick,
		catalog:      cat,
		pending:      pending,
		bookings:     rec,
		publish:      publish,
		cfg:          cfg,
	}
}

// ReserveResult reports one ReserveSelection run.  Pending is non-nil
// only when every seat was reserved and the transaction was persisted.
type ReserveResult struct {
	Pending *model.PendingTransaction `json:"pending,omitempty"`
	Seats   []SeatResult              `json:"seats"`
	Failed  int                       `json:"failed"`
}

// ReserveSelection reserves each selected seat independently.  A
// conflict on one seat does not cancel reservations already obtained
// for other seats in the same call; those remain committed server-side
// and are reported so the caller can re-drive the seat map.  Only when
// all seats succeed is a pending transaction built and persisted.
// ErrUnauthorized halts the loop immediately: continuing with a dead
// credential would fail every remaining seat for the same reason.
func (o *Orchestrator) ReserveSelection(ctx context.Context, cred client.Credential, userID, showtimeID uint64, seatIDs []uint64) (*ReserveResult, error) {
	seatIDs = dedupe(seatIDs)
	if len(seatIDs) == 0 {
		return nil, ErrNoSeatsSelected
	}
	showtime, err := o.catalog.GetShowtime(ctx, cred, showtimeID)
	if err != nil {
		return nil, err
	}
	movie, err := o.catalog.GetMovie(ctx, cred, showtime.MovieID)
	if err != nil {
		return nil, err
	}
	hallSeats, err := o.catalog.GetHallSeats(ctx, cred, showtime.HallID)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint64]model.Seat, len(hallSeats))
	for _, s := range hallSeats {
		byID[s.ID] = s
	}

	result := &ReserveResult{Seats: make([]SeatResult, 0, len(seatIDs))}
	reserved := make([]model.PendingSeat, 0, len(seatIDs))
	for _, seatID := range seatIDs {
		seat, ok := byID[seatID]
		if !ok {
			return nil, fmt.Errorf("%w: seat %d not in hall %d", client.ErrNotFound, seatID, showtime.HallID)
		}
		sr := SeatResult{SeatID: seatID, Label: seat.Label(), State: StateReserving}
		res, err := o.reservations.Reserve(ctx, cred, showtimeID, seatID)
		if err != nil {
			sr.State = StateReservationFailed
			sr.FailureReason = failureReason(err)
			result.Seats = append(result.Seats, sr)
			result.Failed++
			if errors.Is(err, client.ErrUnauthorized) {
				return result, fmt.Errorf("reserve selection: %w", err)
			}
			continue
		}
		sr.State = StateReserved
		sr.ReservationID = res.ID
		result.Seats = append(result.Seats, sr)
		reserved = append(reserved, model.PendingSeat{
			SeatID:        seatID,
			RowNumber:     seat.RowNumber,
			SeatNumber:    seat.SeatNumber,
			ReservationID: res.ID,
		})
	}
	if result.Failed > 0 {
		// Nothing is persisted: the caller re-drives the seat map and
		// the user re-selects.  Reservations already committed stay
		// with the backend's expiry policy.
		return result, nil
	}

	subtotal := showtime.PriceCents * uint32(len(reserved))
	pt := &model.PendingTransaction{
		ID:            uuid.NewString(),
		UserID:        userID,
		Movie:         movie,
		Showtime:      showtime,
		Seats:         reserved,
		SubtotalCents: subtotal,
		FeeCents:      o.cfg.FeeCents,
		TotalCents:    subtotal + o.cfg.FeeCents,
		CreatedAt:     time.Now().UTC(),
	}
	if err := o.pending.Save(ctx, userID, pt); err != nil {
		return result, fmt.Errorf("persist pending transaction: %w", err)
	}
	result.Pending = pt
	return result, nil
}

// CompleteResult reports one CompleteTransaction run, including the
// document fetches attempted after full success.
type CompleteResult struct {
	BookingRef  string            `json:"bookingRef,omitempty"`
	Seats       []SeatResult      `json:"seats"`
	Completed   int               `json:"completed"`
	Failed      int               `json:"failed"`
	FieldErrors map[string]string `json:"fieldErrors,omitempty"`
	Documents   []DocumentResult  `json:"documents,omitempty"`
}

// CompleteTransaction drives the payment phase of the pending
// transaction: per seat, sequentially, authorize the charge, create or
// fetch the ticket and mark it paid.  Seats completed by an earlier
// attempt are skipped, so a retry after a partial failure re-attempts
// only the seats that failed.  On full success the finalized booking
// is recorded, the pending record deleted, a completion event
// published and the ticket documents fetched with a pacing delay.
// Document failures are reported but never reverse the completed
// state.
func (o *Orchestrator) CompleteTransaction(ctx context.Context, cred client.Credential, userID uint64, details card.Details) (*CompleteResult, error) {
	pt, err := o.pending.Load(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNoPending) {
			return nil, ErrNoPendingTransaction
		}
		return nil, err
	}

	// Local validation first: field errors cost no network traffic.
	if fieldErrs := details.Validate(); len(fieldErrs) > 0 {
		return &CompleteResult{FieldErrors: fieldErrs}, ErrCardValidation
	}

	pt.Attempts++
	if pt.Attempts > o.cfg.MaxAttempts {
		if delErr := o.pending.Delete(ctx, userID); delErr != nil {
			log.Printf("booking: drop exhausted transaction %s: %v", pt.ID, delErr)
		}
		return nil, ErrTooManyAttempts
	}
	if err := o.pending.Save(ctx, userID, pt); err != nil {
		return nil, fmt.Errorf("persist attempt count: %w", err)
	}

	// Server-side validation runs even though local checks passed:
	// card status can change between the two.
	if err := o.payments.ValidateCard(ctx, cred, details); err != nil {
		return nil, err
	}
	summary := details.Summary()

	result := &CompleteResult{Seats: make([]SeatResult, 0, len(pt.Seats))}
	for i := range pt.Seats {
		seat := &pt.Seats[i]
		sr := SeatResult{
			SeatID:        seat.SeatID,
			Label:         fmt.Sprintf("R%d-S%d", seat.RowNumber, seat.SeatNumber),
			ReservationID: seat.ReservationID,
		}
		if seat.Done {
			sr.State = StateComplete
			sr.TicketID = seat.TicketID
			result.Seats = append(result.Seats, sr)
			result.Completed++
			continue
		}

		sr.State = StatePaying
		if _, err := o.payments.Authorize(ctx, cred, seat.ReservationID, pt.Showtime.PriceCents, summary); err != nil {
			if halt := o.seatFailed(ctx, userID, pt, result, sr, StatePaymentFailed, err); halt {
				return result, fmt.Errorf("complete transaction: %w", err)
			}
			continue
		}

		sr.State = StateTicketing
		ticket, err := o.tickets.CreateOrGet(ctx, cred, seat.ReservationID)
		if err != nil {
			if halt := o.seatFailed(ctx, userID, pt, result, sr, StateTicketingFailed, err); halt {
				return result, fmt.Errorf("complete transaction: %w", err)
			}
			continue
		}
		if err := o.tickets.SetStatus(ctx, cred, ticket.ID, model.TicketPaid); err != nil {
			if halt := o.seatFailed(ctx, userID, pt, result, sr, StateTicketingFailed, err); halt {
				return result, fmt.Errorf("complete transaction: %w", err)
			}
			continue
		}

		seat.TicketID = ticket.ID
		seat.Done = true
		sr.State = StateComplete
		sr.TicketID = ticket.ID
		result.Seats = append(result.Seats, sr)
		result.Completed++
	}

	if result.Failed > 0 {
		// Keep the pending record with per-seat progress so a retry
		// skips the seats that already completed.
		if err := o.pending.Save(ctx, userID, pt); err != nil {
			log.Printf("booking: persist progress for %s: %v", pt.ID, err)
		}
		return result, &PartialFailureError{Failed: result.Failed, Total: len(pt.Seats)}
	}

	rec := finalize(pt)
	if err := o.bookings.Create(ctx, rec); err != nil {
		// The pending record survives: the next attempt skips every
		// seat and retries only this insert.
		if saveErr := o.pending.Save(ctx, userID, pt); saveErr != nil {
			log.Printf("booking: persist progress for %s: %v", pt.ID, saveErr)
		}
		return result, fmt.Errorf("record finalized booking: %w", err)
	}
	if err := o.pending.Delete(ctx, userID); err != nil {
		log.Printf("booking: delete pending transaction %s: %v", pt.ID, err)
	}
	result.BookingRef = rec.Ref

	if o.publish != nil {
		if err := o.publish(ctx, completedEvent(rec)); err != nil {
			log.Printf("booking: publish completion event for %s: %v", rec.Ref, err)
		}
	}

	result.Documents = o.fetchDocuments(ctx, cred, rec)
	return result, nil
}

// seatFailed records one failed seat and persists per-seat progress so
// completed seats survive the failure.  It reports whether the whole
// run must halt, which is the case only when the credential died.
func (o *Orchestrator) seatFailed(ctx context.Context, userID uint64, pt *model.PendingTransaction, result *CompleteResult, sr SeatResult, state SeatState, err error) bool {
	sr.State = state
	sr.FailureReason = failureReason(err)
	result.Seats = append(result.Seats, sr)
	result.Failed++
	if saveErr := o.pending.Save(ctx, userID, pt); saveErr != nil {
		log.Printf("booking: persist progress for %s: %v", pt.ID, saveErr)
	}
	return errors.Is(err, client.ErrUnauthorized)
}

// DownloadDocuments re-drives document retrieval from a finalized
// booking, the retry affordance for downloads that failed after a
// successful payment.
func (o *Orchestrator) DownloadDocuments(ctx context.Context, cred client.Credential, userID uint64, ref string) ([]DocumentResult, error) {
	rec, err := o.bookings.GetByRef(ctx, ref, userID)
	if err != nil {
		return nil, err
	}
	return o.fetchDocuments(ctx, cred, rec), nil
}

// fetchDocuments retrieves every ticket document sequentially with a
// pacing delay between calls so the document-rendering backend is not
// hammered.  Failures are recorded per ticket and never affect the
// booking itself.
func (o *Orchestrator) fetchDocuments(ctx context.Context, cred client.Credential, rec *model.Booking) []DocumentResult {
	out := make([]DocumentResult, 0, len(rec.Seats))
	for i, seat := range rec.Seats {
		if i > 0 {
			select {
			case <-time.After(o.cfg.DocumentDelay):
			case <-ctx.Done():
				// Cancellation is not an upstream fault.  Report the
				// remaining tickets as cancelled and stop instead of
				// iterating on a dead context.
				for _, rest := range rec.Seats[i:] {
					out = append(out, DocumentResult{
						TicketID:      rest.TicketID,
						Label:         fmt.Sprintf("R%d-S%d", rest.RowNumber, rest.SeatNumber),
						FailureReason: ReasonCancelled,
					})
				}
				return out
			}
		}
		dr := DocumentResult{TicketID: seat.TicketID, Label: fmt.Sprintf("R%d-S%d", seat.RowNumber, seat.SeatNumber)}
		data, err := o.tickets.FetchDocument(ctx, cred, seat.TicketID)
		if err != nil {
			dr.FailureReason = failureReason(err)
			log.Printf("booking: fetch document for ticket %d: %v", seat.TicketID, err)
		} else {
			dr.OK = true
			dr.Size = len(data)
		}
		out = append(out, dr)
	}
	return out
}

// finalize converts a fully paid pending transaction into the booking
// record that outlives it.
func finalize(pt *model.PendingTransaction) *model.Booking {
	seats := make([]model.BookingSeat, 0, len(pt.Seats))
	for _, s := range pt.Seats {
		seats = append(seats, model.BookingSeat{
			SeatID:        s.SeatID,
			RowNumber:     s.RowNumber,
			SeatNumber:    s.SeatNumber,
			ReservationID: s.ReservationID,
			TicketID:      s.TicketID,
		})
	}
	return &model.Booking{
		Ref:           uuid.NewString(),
		UserID:        pt.UserID,
		ShowtimeID:    pt.Showtime.ID,
		MovieTitle:    pt.Movie.Title,
		Seats:         seats,
		SubtotalCents: pt.SubtotalCents,
		FeeCents:      pt.FeeCents,
		TotalCents:    pt.TotalCents,
		CreatedAt:     time.Now().UTC(),
	}
}

// completedEvent builds the broker payload for a finalized booking.
func completedEvent(rec *model.Booking) queue.BookingCompletedEvent {
	labels := make([]string, 0, len(rec.Seats))
	tickets := make([]uint64, 0, len(rec.Seats))
	for _, s := range rec.Seats {
		labels = append(labels, fmt.Sprintf("R%d-S%d", s.RowNumber, s.SeatNumber))
		tickets = append(tickets, s.TicketID)
	}
	return queue.BookingCompletedEvent{
		BookingRef: rec.Ref,
		UserID:     rec.UserID,
		ShowtimeID: rec.ShowtimeID,
		MovieTitle: rec.MovieTitle,
		SeatLabels: labels,
		TicketIDs:  tickets,
		TotalCents: rec.TotalCents,
		CompletedAt: time.Now().UTC().Format(time.RFC3339),
	}
}

func dedupe(ids []uint64) []uint64 {
	seen := make(map[uint64]struct{}, len(ids))
	out := make([]uint64, 0, len(ids))
	for _, id := range ids {
		if id == 0 {
			continue
		}
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out
}
