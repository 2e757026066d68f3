package migrate

import (
	"strings"
	"time"
)

// dateFormats are tried in order. The legacy scrapers wrote dates in several
// regional and timestamped shapes depending on the source and its era.
var dateFormats = []string{
	"2006-01-02",
	"2006/01/02",
	"02.01.2006",
	"02/01/2006",
	"2006-01-02 15:04:05",
	"2006/01/02 15:04:05",
}

// ParseDate parses a legacy date string. It returns ok=false for blank input
// or an unrecognized shape; that is a normal outcome, not an error, and
// callers decide whether to skip or fall back.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
