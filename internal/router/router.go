package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing
	"github.com/redis/go-redis/v9"

	"github.com/cinematix/booking-orchestrator/internal/config"
	"github.com/cinematix/booking-orchestrator/internal/handler"
	"github.com/cinematix/booking-orchestrator/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication on
// the provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// The health endpoint can be used by load balancers or monitoring
	// systems to verify that the service is up and running.
	e.GET("/healthz", handler.Health)
}

// RegisterBooking registers the booking flow and applies the necessary
// middleware.  Every endpoint requires a backend-issued access token:
// the orchestrator acts strictly on the user's behalf and forwards the
// same token to the ticketing backend.
func RegisterBooking(e *echo.Echo, sm *handler.SeatMapHandler, b *handler.BookingHandler, jwtSecret string, rlCfg config.RateLimitConfig, rdb *redis.Client) {
	g := e.Group("/v1")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.NewTokenBucket(rlCfg, rdb))

	// Seat map for one showtime, recomputed from the backend per request.
	g.GET("/showtimes/:id/seats", sm.GetSeats)

	// Reserve the selected seats; on full success a pending transaction
	// is persisted and awaits payment.
	g.POST("/bookings/reserve", b.Reserve)
	// Pay for the pending transaction.  Retries skip seats that already
	// completed during an earlier attempt.
	g.POST("/bookings/complete", b.Complete)
	// Re-fetch ticket documents for a finalized booking.
	g.POST("/bookings/:ref/documents", b.Documents)

	// Finalized bookings.
	g.GET("/my-bookings", b.ListMine)
	g.GET("/bookings/:ref", b.GetByRef)
}
