package parse

import "time"

// BeginningOfDay truncates t to midnight in its own location.
func BeginningOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// Tomorrow formats the calendar day after now as it appears in the
// appointment_date column. Reminder matching is an exact string comparison
// against this value.
func Tomorrow(now time.Time) string {
	return now.AddDate(0, 0, 1).Format("2006-01-02")
}

// RetentionCutoff returns the midnight boundary retentionDays before now.
// Appointments strictly before the cutoff are eligible for archival.
func RetentionCutoff(now time.Time, retentionDays int) time.Time {
	return BeginningOfDay(now).AddDate(0, 0, -retentionDays)
}
