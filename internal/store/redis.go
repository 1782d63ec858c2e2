package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cinematix/booking-orchestrator/internal/model"
)

// RedisPendingStore keeps sealed pending transactions in Redis under
// one key per user.  The TTL bounds how long an abandoned booking can
// linger; reservation cleanup for abandoned seats is the backend's
// responsibility, not this store's.
type RedisPendingStore struct {
	rdb    *redis.Client
	sealer *sealer
	prefix string
	ttl    time.Duration
}

// NewRedisPendingStore builds a store over the given Redis client.
// hexKey is the 64-hex-character seal key; ttl is the record lifetime
// (zero means 30 minutes).
func NewRedisPendingStore(rdb *redis.Client, hexKey string, ttl time.Duration) (*RedisPendingStore, error) {
	if rdb == nil {
		return nil, errors.New("nil redis client")
	}
	s, err := newSealer(hexKey)
	if err != nil {
		return nil, err
	}
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &RedisPendingStore{rdb: rdb, sealer: s, prefix: "pending", ttl: ttl}, nil
}

func (r *RedisPendingStore) key(userID uint64) string {
	return fmt.Sprintf("%s:%d", r.prefix, userID)
}

// Save seals and writes the record, replacing any existing one for the
// same user and resetting the TTL.
func (r *RedisPendingStore) Save(ctx context.Context, userID uint64, pt *model.PendingTransaction) error {
	sealed, err := r.sealer.seal(pt)
	if err != nil {
		return err
	}
	if err := r.rdb.Set(ctx, r.key(userID), sealed, r.ttl).Err(); err != nil {
		return fmt.Errorf("save pending transaction: %w", err)
	}
	return nil
}

// Load reads and unseals the user's record, or ErrNoPending when the
// key is absent or has expired.
func (r *RedisPendingStore) Load(ctx context.Context, userID uint64) (*model.PendingTransaction, error) {
	sealed, err := r.rdb.Get(ctx, r.key(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNoPending
	}
	if err != nil {
		return nil, fmt.Errorf("load pending transaction: %w", err)
	}
	return r.sealer.open(sealed)
}

// Delete removes the user's record.  Deleting an absent key is not an
// error.
func (r *RedisPendingStore) Delete(ctx context.Context, userID uint64) error {
	if err := r.rdb.Del(ctx, r.key(userID)).Err(); err != nil {
		return fmt.Errorf("delete pending transaction: %w", err)
	}
	return nil
}
