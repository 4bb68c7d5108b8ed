package store

import (
	"context"
	"sync"

	"github.com/promolens/backend/internal/domain"
)

// MemoryStore is a thread-safe in-memory record store. Appends concatenate
// whole flyer batches; readers get a copy so the underlying slice is never
// shared.
type MemoryStore struct {
	records []domain.ProductRecord
	mutex   sync.RWMutex
}

// NewMemoryStore creates an empty in-memory record store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Append adds a flyer batch to the aggregate collection.
func (s *MemoryStore) Append(ctx context.Context, records []domain.ProductRecord) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.records = append(s.records, records...)
	return nil
}

// All returns a copy of every stored record in insertion order.
func (s *MemoryStore) All(ctx context.Context) ([]domain.ProductRecord, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	out := make([]domain.ProductRecord, len(s.records))
	copy(out, s.records)
	return out, nil
}

// Count returns the number of stored records.
func (s *MemoryStore) Count(ctx context.Context) (int, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.records), nil
}

// Clear removes all records.
func (s *MemoryStore) Clear(ctx context.Context) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.records = nil
	return nil
}
