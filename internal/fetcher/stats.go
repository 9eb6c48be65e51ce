package fetcher

import (
	"fmt"

	"github.com/feedgather/gather/internal/feed"
)

// Outcome is the tagged result of fetching a single source: either a batch
// of items or an error, never both. Each source produces exactly one outcome
// per cycle.
type Outcome struct {
	SourceName string
	Items      []feed.Item
	Err        error
}

// Failed reports whether the outcome is a failure.
func (o Outcome) Failed() bool {
	return o.Err != nil
}

// SourceError pairs a source name with the text of its failure.
type SourceError struct {
	SourceName string
	Message    string
}

// Stats aggregates one fetch cycle. The numeric counters are
// order-independent; Errors reflects completion order, which varies between
// runs. Stats is mutated only between outcomes arriving at the join point,
// never while fetches are outstanding.
type Stats struct {
	TotalSources int
	Succeeded    int
	Failed       int
	TotalItems   int
	Errors       []SourceError
}

// NewStats creates zeroed statistics for a cycle over total sources.
func NewStats(total int) Stats {
	return Stats{TotalSources: total}
}

// Record folds one outcome into the statistics.
func (s *Stats) Record(o Outcome) {
	if o.Failed() {
		s.Failed++
		s.Errors = append(s.Errors, SourceError{
			SourceName: o.SourceName,
			Message:    o.Err.Error(),
		})
		return
	}
	s.Succeeded++
	s.TotalItems += len(o.Items)
}

// Summary returns a one-line description of the cycle.
func (s Stats) Summary() string {
	return fmt.Sprintf("fetched %d items from %d of %d sources",
		s.TotalItems, s.Succeeded, s.TotalSources)
}
