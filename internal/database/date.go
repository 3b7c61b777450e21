package database

import (
	"fmt"
	"time"
)

// Date scans a DATE column into a UTC midnight time.Time. SQLite may hand
// back either a parsed time or the stored YYYY-MM-DD text.
type Date struct {
	time.Time
}

// Scan implements sql.Scanner.
func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		d.Time = time.Time{}
		return nil
	case time.Time:
		d.Time = time.Date(v.Year(), v.Month(), v.Day(), 0, 0, 0, 0, time.UTC)
		return nil
	case string:
		return d.parse(v)
	case []byte:
		return d.parse(string(v))
	default:
		return fmt.Errorf("scan date: unsupported type %T", src)
	}
}

func (d *Date) parse(s string) error {
	if len(s) > len(time.DateOnly) {
		s = s[:len(time.DateOnly)]
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return fmt.Errorf("scan date: %w", err)
	}
	d.Time = t
	return nil
}

// FormatDate renders t the way dates are written to the store.
func FormatDate(t time.Time) string {
	return t.Format(time.DateOnly)
}
