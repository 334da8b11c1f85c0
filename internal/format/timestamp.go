// Package format holds the display helpers shared by the CLI and server:
// relative timestamps, virality badges, count abbreviation and share links.
package format

import (
	"fmt"
	"time"
)

// timestampLayouts are tried in order. Backends often emit ISO timestamps
// without a zone; those are read as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// ParseTimestamp parses an ISO-8601 timestamp as sent by the backend.
func ParseTimestamp(ts string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, ts); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised timestamp %q", ts)
}

// FormatTimestamp renders ts relative to now: "42s ago", "5m ago", "3h ago",
// "2d ago", then "Jan 2" (or "Jan 2, 2006" in another year) from a week on.
// Unparseable input is returned unchanged; future times read as "0s ago".
func FormatTimestamp(ts string, now time.Time) string {
	t, err := ParseTimestamp(ts)
	if err != nil {
		return ts
	}

	seconds := int64(now.Sub(t) / time.Second)
	if seconds < 0 {
		seconds = 0
	}
	if seconds < 60 {
		return fmt.Sprintf("%ds ago", seconds)
	}

	minutes := seconds / 60
	if minutes < 60 {
		return fmt.Sprintf("%dm ago", minutes)
	}

	hours := minutes / 60
	if hours < 24 {
		return fmt.Sprintf("%dh ago", hours)
	}

	days := hours / 24
	if days < 7 {
		return fmt.Sprintf("%dd ago", days)
	}

	local := t.In(now.Location())
	if local.Year() != now.Year() {
		return local.Format("Jan 2, 2006")
	}
	return local.Format("Jan 2")
}
