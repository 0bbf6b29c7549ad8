package ui

import (
	"testing"
	"time"
)

func TestFormatDue(t *testing.T) {
	now := time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC) // Wednesday

	tests := []struct {
		name string
		due  time.Time
		want string
	}{
		{"later today", time.Date(2025, 1, 15, 17, 0, 0, 0, time.UTC), "today 17:00"},
		{"earlier today", time.Date(2025, 1, 15, 8, 0, 0, 0, time.UTC), "overdue today"},
		{"tomorrow", time.Date(2025, 1, 16, 17, 0, 0, 0, time.UTC), "tomorrow 17:00"},
		{"this week", time.Date(2025, 1, 20, 17, 0, 0, 0, time.UTC), "Monday 17:00"},
		{"next month", time.Date(2025, 2, 20, 17, 0, 0, 0, time.UTC), "2025-02-20 17:00"},
		{"yesterday", time.Date(2025, 1, 14, 17, 0, 0, 0, time.UTC), "overdue 1d"},
		{"last week", time.Date(2025, 1, 10, 17, 0, 0, 0, time.UTC), "overdue 5d"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatDue(tt.due, now); got != tt.want {
				t.Errorf("FormatDue(%v) = %q, want %q", tt.due, got, tt.want)
			}
		})
	}
}

func TestFormatDuePtr(t *testing.T) {
	now := time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC)
	if got := FormatDuePtr(nil, now); got != "-" {
		t.Errorf("FormatDuePtr(nil) = %q, want %q", got, "-")
	}
}
