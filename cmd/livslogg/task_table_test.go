package main

import (
	"strings"
	"testing"
	"time"

	"github.com/livslogg/livslogg/task"
)

func tableFixture(now time.Time) []task.Task {
	due := now.Add(26 * time.Hour)
	return []task.Task{
		{
			ID:        "abc12345",
			Title:     "First item",
			Status:    task.StatusPending,
			Priority:  task.PriorityHigh,
			Points:    20,
			DueAt:     &due,
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			ID:        "abd67890",
			Title:     "Second item",
			Status:    task.StatusInProgress,
			Priority:  task.PriorityLow,
			Points:    5,
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}

func TestFormatTaskTablePreservesAlignmentWithANSI(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	tasks := tableFixture(now)

	plain := formatTaskTable(tasks, func(id string, prefix int) string { return id }, now)
	ansi := formatTaskTable(tasks, func(id string, prefix int) string {
		if prefix <= 0 || prefix > len(id) {
			return id
		}
		return "\x1b[1m\x1b[36m" + id[:prefix] + "\x1b[0m" + id[prefix:]
	}, now)

	if stripANSI(ansi) != plain {
		t.Fatalf("expected ANSI output to align with plain output\nplain:\n%s\nansi:\n%s", plain, ansi)
	}
}

func TestFormatTaskTableColumns(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	tasks := tableFixture(now)

	output := formatTaskTable(tasks, func(id string, prefix int) string { return id }, now)
	for _, want := range []string{"HIGH", "LOW", "pending", "in_progress", "tomorrow 14:00", "-", "First item"} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q:\n%s", want, output)
		}
	}
}

func TestPriorityShort(t *testing.T) {
	tests := []struct {
		priority task.Priority
		want     string
	}{
		{task.PriorityLow, "LOW"},
		{task.PriorityMedium, "MED"},
		{task.PriorityHigh, "HIGH"},
		{task.PriorityUrgent, "URG"},
		{task.Priority("odd"), "ODD"},
	}
	for _, test := range tests {
		if got := priorityShort(test.priority); got != test.want {
			t.Errorf("priorityShort(%q) = %q, want %q", test.priority, got, test.want)
		}
	}
}

func stripANSI(input string) string {
	var builder strings.Builder
	inEscape := false
	for i := 0; i < len(input); i++ {
		char := input[i]
		if inEscape {
			if char == 'm' {
				inEscape = false
			}
			continue
		}
		if char == '\x1b' {
			inEscape = true
			continue
		}
		builder.WriteByte(char)
	}
	return builder.String()
}
