package feed

import (
	"fmt"
	"time"
)

// TransportError indicates the HTTP retrieval failed or the server answered
// with a non-success status.
type TransportError struct {
	Source string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error for %s: %v", e.Source, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// DecodeError indicates the response body could not be parsed as either of
// the supported feed schemas.
type DecodeError struct {
	Source string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode feed from %s as RSS or Atom", e.Source)
}

// TimeoutError indicates the per-source fetch bound elapsed before the fetch
// completed.
type TimeoutError struct {
	Source  string
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("fetch from %s timed out after %s", e.Source, e.Timeout)
}

// DateParseError indicates a date string matched none of the supported
// layouts. During full-feed decoding this degrades to "no date" instead of
// propagating.
type DateParseError struct {
	Value string
}

func (e *DateParseError) Error() string {
	return fmt.Sprintf("unable to parse date: %q", e.Value)
}
