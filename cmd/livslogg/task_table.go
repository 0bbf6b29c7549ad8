package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/livslogg/livslogg/internal/ids"
	"github.com/livslogg/livslogg/internal/ui"
	"github.com/livslogg/livslogg/task"
)

// printTaskTable prints tasks in a table format.
func printTaskTable(tasks []task.Task, now time.Time) {
	if len(tasks) == 0 {
		fmt.Println("No tasks found.")
		return
	}

	fmt.Print(formatTaskTable(tasks, ui.HighlightID, now))
}

func formatTaskTable(tasks []task.Task, highlight func(string, int) string, now time.Time) string {
	builder := ui.NewTableBuilder([]string{"ID", "PRI", "PTS", "STATUS", "DUE", "TITLE"}, len(tasks))

	prefixLengths := taskIDPrefixLengths(tasks)
	for _, t := range tasks {
		prefixLen := ui.PrefixLength(prefixLengths, t.ID)
		row := []string{
			highlight(t.ID, prefixLen),
			priorityShort(t.Priority),
			strconv.Itoa(t.Points),
			string(t.Status),
			ui.FormatDuePtr(t.DueAt, now),
			ui.TruncateTableCell(t.Title),
		}
		builder.AddRow(row)
	}

	return builder.String()
}

func taskIDPrefixLengths(tasks []task.Task) map[string]int {
	taskIDs := make([]string, 0, len(tasks))
	for _, t := range tasks {
		taskIDs = append(taskIDs, t.ID)
	}
	return ids.UniquePrefixLengths(taskIDs)
}

// priorityShort returns a short representation of priority.
func priorityShort(p task.Priority) string {
	switch p {
	case task.PriorityLow:
		return "LOW"
	case task.PriorityMedium:
		return "MED"
	case task.PriorityHigh:
		return "HIGH"
	case task.PriorityUrgent:
		return "URG"
	default:
		return strings.ToUpper(string(p))
	}
}

// printTaskDetail prints detailed information about a task.
func printTaskDetail(t task.Task) {
	fmt.Printf("ID:       %s\n", ui.HighlightID(t.ID, len(t.ID)))
	fmt.Printf("Title:    %s\n", t.Title)
	fmt.Printf("Status:   %s\n", t.Status)
	fmt.Printf("Priority: %s (%d points)\n", t.Priority, t.Points)
	if len(t.Tags) > 0 {
		fmt.Printf("Tags:     %s\n", strings.Join(t.Tags, ", "))
	}
	if t.Category != "" {
		fmt.Printf("Category: %s\n", t.Category)
	}
	if t.DueAt != nil {
		fmt.Printf("Due:      %s\n", t.DueAt.Format("2006-01-02 15:04"))
	}
	if t.Recurrence != task.RecurrenceNone {
		fmt.Printf("Repeats:  %s\n", t.Recurrence)
	}
	if t.ParentID != "" {
		fmt.Printf("Parent:   %s\n", t.ParentID)
	}
	fmt.Printf("Created:  %s\n", t.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("Updated:  %s\n", t.UpdatedAt.Format("2006-01-02 15:04:05"))
	if t.CompletedAt != nil {
		fmt.Printf("Done:     %s\n", t.CompletedAt.Format("2006-01-02 15:04:05"))
	}
}
