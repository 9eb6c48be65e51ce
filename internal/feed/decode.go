package feed

import (
	"encoding/xml"
	"html"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// rssDocument mirrors the RSS 2.0 channel/item layout.
type rssDocument struct {
	XMLName xml.Name `xml:"rss"`
	Channel struct {
		Title string    `xml:"title"`
		Items []rssItem `xml:"item"`
	} `xml:"channel"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	PubDate     string `xml:"pubDate"`
}

// atomDocument mirrors the Atom feed/entry layout.
type atomDocument struct {
	XMLName xml.Name    `xml:"feed"`
	Title   string      `xml:"title"`
	Entries []atomEntry `xml:"entry"`
}

type atomEntry struct {
	Title     string     `xml:"title"`
	Links     []atomLink `xml:"link"`
	Summary   string     `xml:"summary"`
	Content   string     `xml:"content"`
	Published string     `xml:"published"`
	Updated   string     `xml:"updated"`
}

type atomLink struct {
	Rel  string `xml:"rel,attr"`
	Href string `xml:"href,attr"`
}

// DecodeFeed turns raw response bytes into normalized items. It tries RSS 2.0
// first; a structural parse of the rss element wins even when it yields zero
// qualifying items. Only when the document is not RSS is Atom attempted, and
// only when both fail is a DecodeError returned.
//
// Candidates missing a title or link are skipped, never surfaced as partial
// items or feed-level errors. Unparseable dates degrade to a nil Published.
func DecodeFeed(data []byte, sourceName string) ([]Item, error) {
	var doc rssDocument
	if err := xml.Unmarshal(data, &doc); err == nil {
		return itemsFromRSS(doc, sourceName), nil
	}

	// Atom is parsed from text, so reject bodies that are not valid UTF-8.
	if utf8.Valid(data) {
		var atom atomDocument
		if err := xml.Unmarshal(data, &atom); err == nil {
			return itemsFromAtom(atom, sourceName), nil
		}
	}

	return nil, &DecodeError{Source: sourceName}
}

func itemsFromRSS(doc rssDocument, sourceName string) []Item {
	items := make([]Item, 0, len(doc.Channel.Items))

	for _, raw := range doc.Channel.Items {
		title := NormalizeText(raw.Title)
		if title == "" {
			continue
		}

		link := strings.TrimSpace(raw.Link)
		if link == "" {
			continue
		}

		var summary string
		if raw.Description != "" {
			summary = NormalizeText(raw.Description)
		}

		items = append(items, Item{
			ID:         uuid.New().String(),
			SourceName: sourceName,
			Title:      title,
			Link:       link,
			Summary:    summary,
			Published:  parseItemDate(raw.PubDate),
		})
	}

	return items
}

func itemsFromAtom(doc atomDocument, sourceName string) []Item {
	items := make([]Item, 0, len(doc.Entries))

	for _, entry := range doc.Entries {
		title := NormalizeText(entry.Title)
		if title == "" {
			continue
		}

		link := pickAtomLink(entry.Links)
		if link == "" {
			continue
		}

		// Prefer the explicit summary, fall back to the entry body.
		body := entry.Summary
		if body == "" {
			body = entry.Content
		}
		var summary string
		if body != "" {
			summary = NormalizeText(body)
		}

		// published is optional in Atom; updated is required, so use it as a
		// best-effort fallback.
		dateValue := entry.Published
		if dateValue == "" {
			dateValue = entry.Updated
		}

		items = append(items, Item{
			ID:         uuid.New().String(),
			SourceName: sourceName,
			Title:      title,
			Link:       link,
			Summary:    summary,
			Published:  parseItemDate(dateValue),
		})
	}

	return items
}

// pickAtomLink prefers the first link marked rel="alternate", then the first
// link of any kind.
func pickAtomLink(links []atomLink) string {
	for _, l := range links {
		if l.Rel == "alternate" {
			return strings.TrimSpace(l.Href)
		}
	}
	if len(links) > 0 {
		return strings.TrimSpace(links[0].Href)
	}
	return ""
}

// parseItemDate treats an unparseable or absent date as no date at all.
func parseItemDate(value string) *time.Time {
	if value == "" {
		return nil
	}
	t, err := ParseDate(value)
	if err != nil {
		return nil
	}
	return &t
}

// NormalizeText decodes HTML entities and collapses every run of whitespace,
// newlines and tabs included, to a single space.
func NormalizeText(s string) string {
	return NormalizeWhitespace(html.UnescapeString(s))
}

// NormalizeWhitespace is idempotent: applying it to already-normalized text
// returns the same string.
func NormalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
