// Package store persists fetched items. Persistence is optional: the fetch
// cycle has no awareness of whether storage succeeds.
package store

import (
	"context"

	"github.com/feedgather/gather/internal/feed"
)

// Store saves and retrieves fetched items.
type Store interface {
	// InsertItems saves a batch of items. Items whose link is already
	// stored are skipped silently.
	InsertItems(ctx context.Context, items []feed.Item) error

	// ListItems returns all stored items newest-first; items without a
	// publication date sort last.
	ListItems(ctx context.Context) ([]feed.Item, error)

	// GetItem returns the item with the given ID, or nil when absent.
	GetItem(ctx context.Context, id string) (*feed.Item, error)

	// Close releases the store's resources.
	Close() error
}
