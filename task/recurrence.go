package task

import (
	"fmt"
	"time"

	"github.com/livslogg/livslogg/internal/ids"
)

// NextOccurrence computes the due date of the occurrence after due for
// the given recurrence pattern.
//
// Daily and weekly steps are plain day arithmetic. Monthly advances one
// calendar month and clamps the day-of-month to the last valid day of
// the target month, so a task due Jan 31 recurs on Feb 28 (or Feb 29 in
// a leap year), not Mar 3.
func NextOccurrence(due time.Time, pattern Recurrence) (time.Time, error) {
	switch pattern {
	case RecurrenceDaily:
		return due.AddDate(0, 0, 1), nil
	case RecurrenceWeekly:
		return due.AddDate(0, 0, 7), nil
	case RecurrenceMonthly:
		return addMonthClamped(due), nil
	default:
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidRecurrence, pattern)
	}
}

// addMonthClamped adds one calendar month, clamping the day-of-month.
// time.AddDate normalizes overflow (Jan 31 + 1 month = Mar 3), which is
// not what a monthly schedule means.
func addMonthClamped(due time.Time) time.Time {
	year, month, day := due.Date()
	nextMonth := month + 1
	if nextMonth > time.December {
		nextMonth = time.January
		year++
	}
	if last := daysInMonth(year, nextMonth); day > last {
		day = last
	}
	hour, minute, second := due.Clock()
	return time.Date(year, nextMonth, day, hour, minute, second, due.Nanosecond(), due.Location())
}

// daysInMonth returns the number of days in the given month.
func daysInMonth(year int, month time.Month) int {
	// Day zero of the following month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Successor builds the pending task generated when parent completes.
// All fields are copied from the parent except the lifecycle ones: the
// successor starts pending with CompletedAt cleared, records the parent
// linkage, and is due at the next occurrence of the parent's due date.
//
// The parent must carry both a due date and a recurrence pattern;
// callers check this before generating.
func Successor(parent Task, now time.Time) (Task, error) {
	if parent.DueAt == nil {
		return Task{}, ErrNoDueDate
	}
	nextDue, err := NextOccurrence(*parent.DueAt, parent.Recurrence)
	if err != nil {
		return Task{}, err
	}

	next := parent
	next.ID = GenerateID(parent.Title, now)
	next.Status = StatusPending
	next.DueAt = &nextDue
	next.ParentID = parent.ID
	next.CreatedAt = now
	next.UpdatedAt = now
	next.CompletedAt = nil
	next.Tags = append([]string(nil), parent.Tags...)
	return next, nil
}

// GenerateID creates a unique 8-character alphanumeric ID from a title and timestamp.
func GenerateID(title string, timestamp time.Time) string {
	return ids.GenerateWithTimestamp(title, timestamp, ids.DefaultLength)
}
