package migrate

import (
	"fmt"
	"time"

	"github.com/jobportal/legacy-migrate/internal/config"
	"github.com/jobportal/legacy-migrate/internal/legacy"
)

// isoDate is the canonical textual form for every date sent to the portal.
const isoDate = "2006-01-02"

// dateAddedField is the only date-typed target field in the portal schema.
const dateAddedField = "date_added"

// MapFields translates one legacy row into portal fields using the source's
// configured column mapping. Columns that are absent or NULL are omitted;
// date_added values that fail to parse are omitted as well. Everything else
// is emitted as its string representation.
func MapFields(src config.Source, row legacy.Row) map[string]string {
	out := make(map[string]string, len(src.FieldMap))
	for oldName, newName := range src.FieldMap {
		value, ok := row[oldName]
		if !ok || value == nil {
			continue
		}
		if newName == dateAddedField {
			if iso, ok := toISODate(value); ok {
				out[newName] = iso
			}
			continue
		}
		out[newName] = stringify(value)
	}
	return out
}

// toISODate normalizes a date column value to YYYY-MM-DD. DATE and TIMESTAMP
// columns arrive as time.Time; older sources stored dates as free text.
func toISODate(value any) (string, bool) {
	switch v := value.(type) {
	case time.Time:
		return v.Format(isoDate), true
	case string:
		if t, ok := ParseDate(v); ok {
			return t.Format(isoDate), true
		}
	}
	return "", false
}

func stringify(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	case time.Time:
		return v.Format(isoDate)
	default:
		return fmt.Sprint(v)
	}
}
