package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cinematix/booking-orchestrator/internal/booking"
	"github.com/cinematix/booking-orchestrator/internal/card"
	"github.com/cinematix/booking-orchestrator/internal/client"
	"github.com/cinematix/booking-orchestrator/internal/repository"
)

// BookingHandler exposes the booking transaction over HTTP: reserving a
// seat selection, completing the payment for a pending transaction,
// re-fetching ticket documents and listing finalized bookings.  All
// methods assume JWT authentication has already been performed by
// middleware.
type BookingHandler struct {
	Orchestrator *booking.Orchestrator
	Bookings     *repository.BookingRepo
}

// NewBookingHandler constructs a BookingHandler.  Both dependencies
// must be non-nil.
func NewBookingHandler(o *booking.Orchestrator, repo *repository.BookingRepo) *BookingHandler {
	if o == nil || repo == nil {
		panic("nil dependency passed to NewBookingHandler")
	}
	return &BookingHandler{Orchestrator: o, Bookings: repo}
}

// Reserve handles POST /v1/bookings/reserve.  The body carries the
// showtime and the selected seat IDs.  When every seat reserves, the
// response is 201 with the persisted pending transaction.  When any
// seat fails, nothing is persisted and the per-seat outcomes come back
// with 409 so the caller can re-drive the seat map.
func (h *BookingHandler) Reserve(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	cred, err := getCredential(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body struct {
		ShowtimeID uint64   `json:"showtime_id"`
		SeatIDs    []uint64 `json:"seat_ids"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.ShowtimeID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "showtime_id is required"})
	}

	ctx := c.Request().Context()
	result, err := h.Orchestrator.ReserveSelection(ctx, cred, userID, body.ShowtimeID, body.SeatIDs)
	if err != nil {
		switch {
		case errors.Is(err, booking.ErrNoSeatsSelected):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "seat_ids is required"})
		case errors.Is(err, client.ErrUnauthorized):
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized", "result": result})
		case errors.Is(err, client.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
		case errors.Is(err, client.ErrForbidden):
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		default:
			return c.JSON(http.StatusBadGateway, echo.Map{"error": "ticketing backend unavailable"})
		}
	}
	if result.Failed > 0 {
		// Some seats were taken between seat-map load and reserve.
		return c.JSON(http.StatusConflict, echo.Map{
			"error":  "some seats could not be reserved",
			"result": result,
		})
	}
	return c.JSON(http.StatusCreated, echo.Map{"result": result})
}

// Complete handles POST /v1/bookings/complete.  The body carries the
// card details for the user's pending transaction.  Responses:
// 200 full success with booking reference and document results,
// 400 local card validation failure with per-field messages,
// 402 server-side card rejection,
// 404 no pending transaction,
// 409 partial failure with per-seat attribution (retry with the same
// body to re-attempt only the failed seats),
// 410 attempt budget exhausted (the pending record is gone).
func (h *BookingHandler) Complete(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	cred, err := getCredential(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var details card.Details
	if err := c.Bind(&details); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	ctx := c.Request().Context()
	result, err := h.Orchestrator.CompleteTransaction(ctx, cred, userID, details)
	if err != nil {
		var partial *booking.PartialFailureError
		switch {
		case errors.Is(err, booking.ErrNoPendingTransaction):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "no pending transaction"})
		case errors.Is(err, booking.ErrCardValidation):
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error":        "card validation failed",
				"field_errors": result.FieldErrors,
			})
		case errors.Is(err, booking.ErrTooManyAttempts):
			return c.JSON(http.StatusGone, echo.Map{"error": "too many completion attempts; start over from seat selection"})
		case errors.As(err, &partial):
			return c.JSON(http.StatusConflict, echo.Map{
				"error":  partial.Error(),
				"result": result,
			})
		case errors.Is(err, client.ErrDeclined):
			return c.JSON(http.StatusPaymentRequired, echo.Map{"error": "card was declined"})
		case errors.Is(err, client.ErrUnauthorized):
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized", "result": result})
		case errors.Is(err, client.ErrForbidden):
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		default:
			return c.JSON(http.StatusBadGateway, echo.Map{"error": "ticketing backend unavailable"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"result": result})
}

// Documents handles POST /v1/bookings/:ref/documents.  It re-drives
// document retrieval for a finalized booking, the retry path for
// downloads that failed after payment succeeded.
func (h *BookingHandler) Documents(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	cred, err := getCredential(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ref := c.Param("ref")
	if ref == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking reference"})
	}

	ctx := c.Request().Context()
	docs, err := h.Orchestrator.DownloadDocuments(ctx, cred, userID, ref)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrBookingNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		case errors.Is(err, repository.ErrForbidden):
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"documents": docs})
}

// ListMine handles GET /v1/my-bookings.  It returns the caller's
// finalized bookings, newest first.
func (h *BookingHandler) ListMine(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx := c.Request().Context()
	bookings, err := h.Bookings.ListByUser(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"bookings": bookings})
}

// GetByRef handles GET /v1/bookings/:ref.  It returns one finalized
// booking owned by the caller.
func (h *BookingHandler) GetByRef(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ref := c.Param("ref")
	if ref == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking reference"})
	}
	ctx := c.Request().Context()
	b, err := h.Bookings.GetByRef(ctx, ref, userID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrBookingNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		case errors.Is(err, repository.ErrForbidden):
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"booking": b})
}
