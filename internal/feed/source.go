package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const userAgent = "gather/0.1"

// Source is anything that can report a name and address and be fetched for
// items. Fetch is the only operation that may block or fail. Implementations
// must not retry internally; retry policy, if any, belongs to the caller.
type Source interface {
	// Name returns the display identifier from configuration.
	Name() string

	// URL returns the endpoint address.
	URL() string

	// Fetch pulls and normalizes all current items from the source.
	Fetch(ctx context.Context) ([]Item, error)
}

// FeedSource fetches an RSS or Atom feed over HTTP.
type FeedSource struct {
	name   string
	url    string
	client *http.Client
}

// NewFeedSource builds a network-backed source. The name and URL are assumed
// valid; configuration validates them before sources are constructed.
func NewFeedSource(name, url string) *FeedSource {
	return &FeedSource{
		name: name,
		url:  url,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Name returns the source's display identifier.
func (s *FeedSource) Name() string {
	return s.name
}

// URL returns the feed endpoint.
func (s *FeedSource) URL() string {
	return s.url
}

// Fetch retrieves the feed and decodes it into items. A non-success HTTP
// status is a hard failure for the source. Cancelling ctx stops the
// transport call.
func (s *FeedSource) Fetch(ctx context.Context) ([]Item, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, &TransportError{Source: s.name, Err: err}
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &TransportError{Source: s.name, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &TransportError{
			Source: s.name,
			Err:    fmt.Errorf("HTTP %d from %s", resp.StatusCode, s.url),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Source: s.name, Err: err}
	}

	return DecodeFeed(body, s.name)
}
