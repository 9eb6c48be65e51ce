package store

import (
	"context"
	"sort"
	"sync"

	"github.com/feedgather/gather/internal/feed"
)

// MemoryStore implements Store in memory. Used in tests and as a stand-in
// when no database is configured.
type MemoryStore struct {
	mu    sync.RWMutex
	items []feed.Item
	links map[string]struct{}
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{links: make(map[string]struct{})}
}

// InsertItems saves a batch of items, skipping links already stored.
func (s *MemoryStore) InsertItems(ctx context.Context, items []feed.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, item := range items {
		if _, dup := s.links[item.Link]; dup {
			continue
		}
		s.links[item.Link] = struct{}{}
		s.items = append(s.items, item)
	}
	return nil
}

// ListItems returns all stored items newest-first, undated items last.
func (s *MemoryStore) ListItems(ctx context.Context) ([]feed.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]feed.Item, len(s.items))
	copy(items, s.items)

	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i].Published, items[j].Published
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.After(*b)
		}
	})
	return items, nil
}

// GetItem returns the item with the given ID, or nil when absent.
func (s *MemoryStore) GetItem(ctx context.Context, id string) (*feed.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, item := range s.items {
		if item.ID == id {
			found := item
			return &found, nil
		}
	}
	return nil, nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error {
	return nil
}
