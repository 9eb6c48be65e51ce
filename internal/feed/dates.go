package feed

import (
	"time"
)

// Layouts tried after the two standard feed date formats. Each is attempted
// with an explicit numeric offset and, failing that, as a bare local time
// interpreted as UTC.
var extraDateLayouts = []string{
	"Mon, 2 Jan 2006 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2 Jan 2006 15:04:05",
}

// ParseDate parses the date layouts feeds use in the wild: RFC 1123 with a
// numeric zone (RSS pubDate), RFC 3339 (Atom published/updated), then a
// short list of common deviations. The result is always in UTC.
func ParseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC1123Z, value); err == nil {
		return t.UTC(), nil
	}

	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), nil
	}

	for _, layout := range extraDateLayouts {
		if t, err := time.Parse(layout+" -0700", value); err == nil {
			return t.UTC(), nil
		}
		if t, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return t, nil
		}
	}

	return time.Time{}, &DateParseError{Value: value}
}
