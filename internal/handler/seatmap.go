package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/cinematix/booking-orchestrator/internal/client"
	"github.com/cinematix/booking-orchestrator/internal/seatmap"
)

// SeatMapHandler serves the per-showtime seat grid used to drive seat
// selection.  Availability is recomputed from the backend on every
// request; this service never caches it, so a stale grid cannot mask a
// reservation conflict.
type SeatMapHandler struct {
	Catalog      seatmap.Catalog
	Reservations seatmap.Reservations
}

// NewSeatMapHandler constructs a SeatMapHandler.  Both clients must be
// non-nil.
func NewSeatMapHandler(cat seatmap.Catalog, res seatmap.Reservations) *SeatMapHandler {
	if cat == nil || res == nil {
		panic("nil client passed to NewSeatMapHandler")
	}
	return &SeatMapHandler{Catalog: cat, Reservations: res}
}

// GetSeats handles GET /v1/showtimes/:id/seats.  It returns the hall
// grid with per-seat availability plus the showtime's per-seat price.
// When the reservation-status query fails every seat is reported as
// reserved and "degraded" is set, so the client knows selection is
// blocked rather than the hall being sold out.
func (h *SeatMapHandler) GetSeats(c echo.Context) error {
	cred, err := getCredential(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	showtimeID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || showtimeID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid showtime id"})
	}

	ctx := c.Request().Context()
	sm, err := seatmap.Load(ctx, h.Catalog, h.Reservations, cred, showtimeID)
	if err != nil && sm == nil {
		switch {
		case errors.Is(err, client.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "showtime not found"})
		case errors.Is(err, client.ErrUnauthorized):
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
		case errors.Is(err, client.ErrForbidden):
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		default:
			return c.JSON(http.StatusBadGateway, echo.Map{"error": "ticketing backend unavailable"})
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"showtime_id": sm.Showtime.ID,
		"price_cents": sm.Showtime.PriceCents,
		"seats":       sm.Entries(),
		"degraded":    err != nil,
	})
}
