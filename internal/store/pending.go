// Package store persists in-flight booking transactions between the
// seat-selection step and the payment step.  The record must survive a
// client restart, so the primary implementation lives in Redis; the
// payload is sealed with an AEAD before it leaves the process because
// it carries purchase details keyed only by user ID.
package store

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"

	"github.com/cinematix/booking-orchestrator/internal/model"
)

// ErrNoPending is returned by Load when the user has no in-flight
// transaction, e.g. after a completed booking or a fresh session.
var ErrNoPending = errors.New("no pending transaction")

// PendingStore is the durable key/value home of PendingTransaction
// records.  One record per user: saving over an existing record
// replaces it (last write wins), which is the chosen policy for two
// sessions racing over the same user.
type PendingStore interface {
	Save(ctx context.Context, userID uint64, pt *model.PendingTransaction) error
	Load(ctx context.Context, userID uint64) (*model.PendingTransaction, error)
	Delete(ctx context.Context, userID uint64) error
}

// sealer encrypts and decrypts pending payloads with
// ChaCha20-Poly1305.  The key comes from configuration and must be 32
// bytes (64 hex characters).
type sealer struct {
	key []byte
}

func newSealer(hexKey string) (*sealer, error) {
	key, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, fmt.Errorf("decode seal key: %w", err)
	}
	if len(key) != chacha20poly1305.KeySize {
		return nil, fmt.Errorf("seal key must be %d bytes, got %d", chacha20poly1305.KeySize, len(key))
	}
	return &sealer{key: key}, nil
}

// seal serializes the record and encrypts it with a random nonce
// prefixed to the ciphertext.
func (s *sealer) seal(pt *model.PendingTransaction) ([]byte, error) {
	plain, err := json.Marshal(pt)
	if err != nil {
		return nil, fmt.Errorf("marshal pending transaction: %w", err)
	}
	aead, err := chacha20poly1305.New(s.key)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}
	return aead.Seal(nonce, nonce, plain, nil), nil
}

// open decrypts and deserializes a sealed record.
func (s *sealer) open(sealed []byte) (*model.PendingTransaction, error) {
	aead, err := chacha20poly1305.New(s.key)
	if err != nil {
		return nil, err
	}
	if len(sealed) < aead.NonceSize() {
		return nil, errors.New("sealed payload too short")
	}
	nonce, ciphertext := sealed[:aead.NonceSize()], sealed[aead.NonceSize():]
	plain, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("unseal pending transaction: %w", err)
	}
	var pt model.PendingTransaction
	if err := json.Unmarshal(plain, &pt); err != nil {
		return nil, fmt.Errorf("unmarshal pending transaction: %w", err)
	}
	return &pt, nil
}
