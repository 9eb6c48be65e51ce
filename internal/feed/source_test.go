package feed

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestSource(url string) *FeedSource {
	return NewFeedSource("Test Source", url)
}

func TestFeedSourceFetchRSS(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); ua != userAgent {
			t.Errorf("unexpected user agent: %q", ua)
		}
		_, _ = w.Write([]byte(rssBasic))
	}))
	defer server.Close()

	src := newTestSource(server.URL)
	items, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}

	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if items[0].Title != "Test Article" {
		t.Errorf("unexpected title: %q", items[0].Title)
	}
	if items[0].SourceName != "Test Source" {
		t.Errorf("unexpected source name: %q", items[0].SourceName)
	}
}

func TestFeedSourceFetchAtom(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(atomBasic))
	}))
	defer server.Close()

	src := newTestSource(server.URL)
	items, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if items[0].Link != "https://example.com/atom-article" {
		t.Errorf("unexpected link: %q", items[0].Link)
	}
}

func TestFeedSourceFetchHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	src := newTestSource(server.URL)
	_, err := src.Fetch(context.Background())
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("expected TransportError, got %T: %v", err, err)
	}
}

func TestFeedSourceFetchConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse all connections

	src := newTestSource(server.URL)
	_, err := src.Fetch(context.Background())

	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("expected TransportError, got %T: %v", err, err)
	}
}

func TestFeedSourceFetchMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("this is not a feed"))
	}))
	defer server.Close()

	src := newTestSource(server.URL)
	_, err := src.Fetch(context.Background())

	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("expected DecodeError, got %T: %v", err, err)
	}
}

func TestFeedSourceFetchEmptyFeed(t *testing.T) {
	const emptyRSS = `<?xml version="1.0"?><rss version="2.0"><channel><title>Empty</title></channel></rss>`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(emptyRSS))
	}))
	defer server.Close()

	src := newTestSource(server.URL)
	items, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected 0 items, got %d", len(items))
	}
}

func TestFeedSourceAccessors(t *testing.T) {
	src := NewFeedSource("My Feed", "https://example.com/feed.xml")
	if src.Name() != "My Feed" {
		t.Errorf("unexpected name: %q", src.Name())
	}
	if src.URL() != "https://example.com/feed.xml" {
		t.Errorf("unexpected URL: %q", src.URL())
	}
}
