package store

import (
	"context"
	"sync"

	"github.com/cinematix/booking-orchestrator/internal/model"
)

// MemoryPendingStore is an in-process PendingStore used in tests and
// single-node runs without Redis.  Records are stored as JSON copies
// so callers cannot mutate a saved record through a retained pointer.
type MemoryPendingStore struct {
	mu      sync.Mutex
	records map[uint64][]byte
	sealer  *sealer
}

// NewMemoryPendingStore returns an empty in-memory store.  The seal
// round-trip is kept even in memory so both implementations exercise
// the same code path.
func NewMemoryPendingStore(hexKey string) (*MemoryPendingStore, error) {
	s, err := newSealer(hexKey)
	if err != nil {
		return nil, err
	}
	return &MemoryPendingStore{records: make(map[uint64][]byte), sealer: s}, nil
}

// Save stores a sealed copy of the record, replacing any existing one.
func (m *MemoryPendingStore) Save(_ context.Context, userID uint64, pt *model.PendingTransaction) error {
	sealed, err := m.sealer.seal(pt)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[userID] = sealed
	return nil
}

// Load returns the user's record or ErrNoPending.
func (m *MemoryPendingStore) Load(_ context.Context, userID uint64) (*model.PendingTransaction, error) {
	m.mu.Lock()
	sealed, ok := m.records[userID]
	m.mu.Unlock()
	if !ok {
		return nil, ErrNoPending
	}
	return m.sealer.open(sealed)
}

// Delete removes the user's record if present.
func (m *MemoryPendingStore) Delete(_ context.Context, userID uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, userID)
	return nil
}
