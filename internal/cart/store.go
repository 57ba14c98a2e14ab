package cart

import (
	"context"
	"sync"
)

// Store persists the one outstanding cart id per shopper session.
// Writes are last-writer-wins; there is no compare-and-swap.
type Store interface {
	// Get returns ok=false when no id was ever stored for key.
	Get(ctx context.Context, key string) (id string, ok bool, err error)
	// Put overwrites any existing id.
	Put(ctx context.Context, key, id string) error
	// Clear is a no-op when nothing is stored.
	Clear(ctx context.Context, key string) error
}

type MemoryStore struct {
	mu  sync.Mutex
	ids map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{ids: make(map[string]string)}
}

func (s *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.ids[key]
	return id, ok, nil
}

func (s *MemoryStore) Put(_ context.Context, key, id string) error {
	s.mu.Lock()
	s.ids[key] = id
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Clear(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.ids, key)
	s.mu.Unlock()
	return nil
}
