package feed

import (
	"cmp"
	"log/slog"
	"net/mail"
	"time"

	"github.com/araddon/dateparse"
)

// ISOLayout renders timestamps as ISO-8601 with a numeric UTC offset,
// e.g. "2006-01-02T15:04:05+00:00".
const ISOLayout = "2006-01-02T15:04:05-07:00"

// NormalizeDate extracts a publication timestamp from an entry and returns
// it in ISO-8601 form. Date-bearing fields are consulted in a fixed priority
// order; absent or empty fields are skipped, a present but unparseable field
// is logged and the next one is tried. When no field yields a date the
// current time is returned, so the result is always a valid timestamp.
func NormalizeDate(e Entry) string {
	fields := []struct {
		name  string
		value string
	}{
		{"published", e.Published},
		{"updated", e.Updated},
		{"pubDate", e.PubDate},
		{"date", e.Date},
	}

	for _, field := range fields {
		if field.value == "" {
			continue
		}

		if t, err := parseDate(field.value); err == nil {
			return t.Format(ISOLayout)
		}

		slog.Warn("Failed to parse date", "field", field.name, "value", field.value)
	}

	slog.Warn("No valid date found for entry", "title", cmp.Or(e.Title, "Unknown"))
	return time.Now().Format(ISOLayout)
}

// parseDate tries RFC 2822 first (the common RSS form), then falls back to
// loose parsing for the wide variety of formats real-world feeds emit.
func parseDate(value string) (time.Time, error) {
	if t, err := mail.ParseDate(value); err == nil {
		return t, nil
	}

	return dateparse.ParseAny(value)
}
