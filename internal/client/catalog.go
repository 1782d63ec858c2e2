package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/cinematix/booking-orchestrator/internal/model"
)

// CatalogClient reads movie, showtime and hall reference data from the
// backend.  The data is owned by the admin-facing service and treated
// as immutable here; it feeds the seat map and the snapshots embedded
// in pending transactions.
type CatalogClient struct {
	backend *Backend
}

// NewCatalogClient returns a CatalogClient bound to the shared backend
// base.
func NewCatalogClient(b *Backend) *CatalogClient {
	return &CatalogClient{backend: b}
}

// GetMovie fetches one movie by ID.
func (c *CatalogClient) GetMovie(ctx context.Context, cred Credential, id uint64) (model.Movie, error) {
	var m model.Movie
	if err := c.backend.doJSON(ctx, cred, http.MethodGet, fmt.Sprintf("/api/movies/%d", id), nil, &m); err != nil {
		return model.Movie{}, fmt.Errorf("get movie %d: %w", id, err)
	}
	return m, nil
}

// GetShowtime fetches one showtime by ID.
func (c *CatalogClient) GetShowtime(ctx context.Context, cred Credential, id uint64) (model.Showtime, error) {
	var s model.Showtime
	if err := c.backend.doJSON(ctx, cred, http.MethodGet, fmt.Sprintf("/api/showtimes/%d", id), nil, &s); err != nil {
		return model.Showtime{}, fmt.Errorf("get showtime %d: %w", id, err)
	}
	return s, nil
}

// GetHallSeats fetches the full seat list of a hall, ordered by row
// and seat number by the backend.
func (c *CatalogClient) GetHallSeats(ctx context.Context, cred Credential, hallID uint64) ([]model.Seat, error) {
	var seats []model.Seat
	if err := c.backend.doJSON(ctx, cred, http.MethodGet, fmt.Sprintf("/api/halls/%d/seats", hallID), nil, &seats); err != nil {
		return nil, fmt.Errorf("get seats for hall %d: %w", hallID, err)
	}
	return seats, nil
}
