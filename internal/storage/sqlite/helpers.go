package sqlite

import "time"

// dayString formats t as a YYYY-MM-DD date in UTC
func dayString(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
