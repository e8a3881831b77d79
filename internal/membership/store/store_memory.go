package store

import (
	"context"
	"fmt"
	"sync"

	"adhesion/internal/membership/models"
	"adhesion/pkg/platform/sentinel"
)

// MemoryStore is an in-memory RecordStore for tests.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]models.Member
}

// NewMemory returns an empty in-memory store.
func NewMemory() *MemoryStore {
	return &MemoryStore{records: make(map[string]models.Member)}
}

// Save stores the record keyed by numero.
func (s *MemoryStore) Save(ctx context.Context, m models.Member) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[m.Numero] = m
	return nil
}

// Load returns the record or sentinel.ErrNotFound.
func (s *MemoryStore) Load(ctx context.Context, numero string) (models.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.records[numero]
	if !ok {
		return models.Member{}, fmt.Errorf("record %s: %w", numero, sentinel.ErrNotFound)
	}
	return m, nil
}
