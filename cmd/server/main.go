package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/cinematix/booking-orchestrator/internal/booking"
	"github.com/cinematix/booking-orchestrator/internal/client"
	"github.com/cinematix/booking-orchestrator/internal/config"
	"github.com/cinematix/booking-orchestrator/internal/database"
	"github.com/cinematix/booking-orchestrator/internal/handler"
	"github.com/cinematix/booking-orchestrator/internal/queue"
	"github.com/cinematix/booking-orchestrator/internal/repository"
	"github.com/cinematix/booking-orchestrator/internal/router"
	queue_publisher "github.com/cinematix/booking-orchestrator/internal/service"
	"github.com/cinematix/booking-orchestrator/internal/store"
)

func main() {
	// Load .env if present; real deployments set env vars directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis backs the sealed pending store and rate limiting.  Without
	// it the service still runs: pending transactions fall back to the
	// in-process store and rate limiting is disabled.
	rdb := config.NewRedisClient()
	var pending store.PendingStore
	if rdb != nil {
		pending, err = store.NewRedisPendingStore(rdb, cfg.PendingSealKey, cfg.PendingTTL)
		if err != nil {
			log.Fatalf("pending store: %v", err)
		}
	} else {
		log.Println("redis unavailable; using in-memory pending store")
		pending, err = store.NewMemoryPendingStore(cfg.PendingSealKey)
		if err != nil {
			log.Fatalf("pending store: %v", err)
		}
	}

	backend := client.NewBackend(cfg.BackendBaseURL, cfg.BackendTimeout)
	reservations := client.NewReservationClient(backend)
	payments := client.NewPaymentClient(backend)
	tickets := client.NewTicketClient(backend)
	catalog := client.NewCatalogClient(backend)

	bookingRepo := repository.NewBookingRepo(db)

	orchestrator := booking.New(
		reservations, payments, tickets, catalog,
		pending, bookingRepo,
		queue_publisher.PublishBookingCompleted,
		booking.Config{
			FeeCents:      cfg.FeeCents,
			DocumentDelay: cfg.DocumentDelay,
			MaxAttempts:   cfg.MaxAttempts,
		},
	)

	// Consume completion events in the background; the consumer keeps
	// its own reconnect loop.
	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("booking consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterBooking(
		e,
		handler.NewSeatMapHandler(catalog, reservations),
		handler.NewBookingHandler(orchestrator, bookingRepo),
		cfg.JWTSecret,
		config.LoadRateLimitConfig(),
		rdb,
	)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
