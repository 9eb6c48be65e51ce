package store

import (
	"context"
	"testing"
	"time"

	"github.com/feedgather/gather/internal/feed"
)

func timePtr(t time.Time) *time.Time { return &t }

func TestMemoryStoreInsertAndList(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()

	older := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	items := []feed.Item{
		{ID: "1", SourceName: "A", Title: "Old", Link: "https://example.com/old", Published: timePtr(older)},
		{ID: "2", SourceName: "A", Title: "New", Link: "https://example.com/new", Published: timePtr(newer)},
		{ID: "3", SourceName: "B", Title: "Undated", Link: "https://example.com/undated"},
	}
	if err := st.InsertItems(ctx, items); err != nil {
		t.Fatalf("InsertItems returned error: %v", err)
	}

	got, err := st.ListItems(ctx)
	if err != nil {
		t.Fatalf("ListItems returned error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 items, got %d", len(got))
	}
	if got[0].Title != "New" || got[1].Title != "Old" || got[2].Title != "Undated" {
		t.Errorf("unexpected order: %q, %q, %q", got[0].Title, got[1].Title, got[2].Title)
	}
}

func TestMemoryStoreDeduplicatesByLink(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()

	first := []feed.Item{
		{ID: "1", Title: "Original", Link: "https://example.com/a"},
	}
	second := []feed.Item{
		{ID: "2", Title: "Duplicate", Link: "https://example.com/a"},
		{ID: "3", Title: "Fresh", Link: "https://example.com/b"},
	}

	if err := st.InsertItems(ctx, first); err != nil {
		t.Fatalf("InsertItems returned error: %v", err)
	}
	if err := st.InsertItems(ctx, second); err != nil {
		t.Fatalf("InsertItems returned error: %v", err)
	}

	got, err := st.ListItems(ctx)
	if err != nil {
		t.Fatalf("ListItems returned error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 items after dedup, got %d", len(got))
	}
	for _, item := range got {
		if item.Title == "Duplicate" {
			t.Error("duplicate link was stored")
		}
	}
}

func TestMemoryStoreGetItem(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()

	if err := st.InsertItems(ctx, []feed.Item{
		{ID: "abc-123", Title: "Found", Link: "https://example.com/x"},
	}); err != nil {
		t.Fatalf("InsertItems returned error: %v", err)
	}

	item, err := st.GetItem(ctx, "abc-123")
	if err != nil {
		t.Fatalf("GetItem returned error: %v", err)
	}
	if item == nil || item.Title != "Found" {
		t.Fatalf("unexpected item: %+v", item)
	}

	missing, err := st.GetItem(ctx, "nope")
	if err != nil {
		t.Fatalf("GetItem returned error: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for unknown ID, got %+v", missing)
	}
}

func TestMemoryStoreListReturnsCopy(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()

	if err := st.InsertItems(ctx, []feed.Item{
		{ID: "1", Title: "Original", Link: "https://example.com/a"},
	}); err != nil {
		t.Fatalf("InsertItems returned error: %v", err)
	}

	first, _ := st.ListItems(ctx)
	first[0].Title = "Mutated"

	second, _ := st.ListItems(ctx)
	if second[0].Title != "Original" {
		t.Error("ListItems exposed internal storage")
	}
}
