package helpers

import (
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire and storage format of calendar dates
const DateLayout = "2006-01-02"

// NullStringValue returns the string held by ns, or "" when it is NULL.
// Aggregated name lists come back NULL when a LEFT JOIN matched nothing.
func NullStringValue(ns sql.NullString) string {
	if !ns.Valid {
		return ""
	}
	return ns.String
}

// BoolToInt converts a flag to the 0/1 integer stored in the database
func BoolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Date scans a DATE column regardless of how the driver represents it
// (time.Time for pgx and MySQL with parseTime, text for SQLite) and keeps
// it as YYYY-MM-DD.
type Date string

// Scan implements sql.Scanner
func (d *Date) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*d = ""
	case time.Time:
		*d = Date(v.Format(DateLayout))
	case []byte:
		*d = Date(normalizeDate(string(v)))
	case string:
		*d = Date(normalizeDate(v))
	default:
		return fmt.Errorf("cannot scan %T into Date", src)
	}
	return nil
}

// normalizeDate trims a time part such as "2024-09-01 00:00:00" or "2024-09-01T00:00:00Z"
func normalizeDate(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > len(DateLayout) {
		if _, err := time.Parse(DateLayout, s[:len(DateLayout)]); err == nil {
			return s[:len(DateLayout)]
		}
	}
	return s
}

// ParseDate validates a YYYY-MM-DD string
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, strings.TrimSpace(s))
}
