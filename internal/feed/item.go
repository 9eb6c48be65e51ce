package feed

import (
	"time"
)

// Item is one normalized entry extracted from a feed. An Item is only ever
// constructed with a non-empty title and link; candidates missing either are
// dropped during decoding. Items are immutable value objects, so they can be
// shared between goroutines without synchronization.
type Item struct {
	// ID is a freshly generated identifier, never derived from the item's
	// content. Two decodes of the same feed produce items with different IDs.
	ID string

	// SourceName is the display name of the source the item came from.
	SourceName string

	// Title is entity-decoded and whitespace-normalized, never empty.
	Title string

	// Link is the absolute URL of the entry, never empty.
	Link string

	// Summary is the normalized description, empty when the feed carried none.
	Summary string

	// Published is the publication time in UTC, nil when the feed carried no
	// parseable date.
	Published *time.Time
}
