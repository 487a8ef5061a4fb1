package sqlite

import (
	"database/sql"
	"time"
)

// FormatTimeForDB formats a time.Time value as an RFC3339 string in UTC with
// nanosecond precision for consistent database storage.
func FormatTimeForDB(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// ParseTimeFromDB parses an RFC3339 formatted time string from the database
func ParseTimeFromDB(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// NullableString maps a nil pointer to SQL NULL.
func NullableString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// StringPtrFromDB maps SQL NULL back to a nil pointer.
func StringPtrFromDB(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

// BoolToDB stores booleans as 0/1 integers.
func BoolToDB(b bool) int {
	if b {
		return 1
	}
	return 0
}

// BoolPtrToDB is BoolToDB for optional values; nil stays NULL.
func BoolPtrToDB(b *bool) interface{} {
	if b == nil {
		return nil
	}
	return BoolToDB(*b)
}
