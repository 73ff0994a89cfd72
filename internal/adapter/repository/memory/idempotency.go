// Package memory provides in-process implementations of stores that the
// single-process deployment does not need an external service for.
package memory

import (
	"context"
	"sync"
	"time"
)

// reservedMarker is stored while the first request with a key is still
// being processed, so concurrent retries neither replay nor duplicate.
var reservedMarker = []byte("processing")

type idempotencyEntry struct {
	response  []byte
	expiresAt time.Time
}

// IdempotencyStore is an in-memory TTL map keyed by idempotency key.
type IdempotencyStore struct {
	mu      sync.Mutex
	entries map[string]idempotencyEntry
}

// NewIdempotencyStore creates a new IdempotencyStore.
func NewIdempotencyStore() *IdempotencyStore {
	return &IdempotencyStore{
		entries: make(map[string]idempotencyEntry),
	}
}

// CheckAndSet atomically checks if key exists, reserving it if not.
// Returns (exists, existingValue, error).
func (s *IdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if entry, ok := s.entries[key]; ok && entry.expiresAt.After(now) {
		return true, entry.response, nil
	}

	value := response
	if value == nil {
		value = reservedMarker
	}
	s.entries[key] = idempotencyEntry{
		response:  value,
		expiresAt: now.Add(ttl),
	}
	return false, nil, nil
}

// Update updates an existing key with the final response.
func (s *IdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = idempotencyEntry{
		response:  response,
		expiresAt: time.Now().Add(ttl),
	}
	return nil
}

// Cleanup removes expired entries. Should be called periodically.
func (s *IdempotencyStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for key, entry := range s.entries {
		if !entry.expiresAt.After(now) {
			delete(s.entries, key)
		}
	}
}
