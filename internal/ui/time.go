package ui

import (
	"fmt"
	"time"
)

// FormatDue renders a due timestamp relative to now: "today 17:00",
// "tomorrow 09:30", a weekday for the coming week, otherwise the date.
// Overdue timestamps are marked.
func FormatDue(due time.Time, now time.Time) string {
	clock := due.Format("15:04")
	daysUntil := daysBetween(now, due)

	switch {
	case daysUntil < 0:
		return fmt.Sprintf("overdue %s", formatDayCount(-daysUntil))
	case daysUntil == 0:
		if due.Before(now) {
			return "overdue today"
		}
		return "today " + clock
	case daysUntil == 1:
		return "tomorrow " + clock
	case daysUntil < 7:
		return due.Format("Monday") + " " + clock
	default:
		return due.Format("2006-01-02") + " " + clock
	}
}

// FormatDuePtr renders an optional due timestamp, "-" when absent.
func FormatDuePtr(due *time.Time, now time.Time) string {
	if due == nil {
		return "-"
	}
	return FormatDue(*due, now)
}

// daysBetween counts calendar-day boundaries between two instants.
func daysBetween(from, to time.Time) int {
	fromDay := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())
	toDay := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, to.Location())
	return int(toDay.Sub(fromDay).Hours() / 24)
}

func formatDayCount(days int) string {
	if days == 1 {
		return "1d"
	}
	return fmt.Sprintf("%dd", days)
}
