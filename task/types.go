// Package task implements the task half of the livslogg tracker.
//
// Tasks are structured records parsed from free text ("Buy milk
// tomorrow 5pm !high #shopping") or entered explicitly. They are
// stored in a JSONL file next to the activity log and move through a
// small lifecycle:
//
//	pending -> in_progress -> completed
//
// Completing a task that carries a recurrence pattern generates
// exactly one pending successor linked back to its parent.
package task

import "time"

// Status represents the state of a task.
type Status string

const (
	// StatusPending indicates the task has not been started.
	StatusPending Status = "pending"

	// StatusInProgress indicates the task is currently being worked on.
	StatusInProgress Status = "in_progress"

	// StatusCompleted indicates the task is finished.
	StatusCompleted Status = "completed"
)

// ValidStatuses returns all valid status values.
func ValidStatuses() []Status {
	return []Status{StatusPending, StatusInProgress, StatusCompleted}
}

// IsValid returns true if the status is a known valid value.
func (s Status) IsValid() bool {
	for _, valid := range ValidStatuses() {
		if s == valid {
			return true
		}
	}
	return false
}

// Priority represents the importance level of a task.
type Priority string

const (
	// PriorityNone indicates no priority was assigned.
	PriorityNone Priority = "none"

	// PriorityLow is worth 5 points.
	PriorityLow Priority = "low"

	// PriorityMedium is the default, worth 10 points.
	PriorityMedium Priority = "medium"

	// PriorityHigh is worth 20 points.
	PriorityHigh Priority = "high"

	// PriorityUrgent is worth 30 points.
	PriorityUrgent Priority = "urgent"
)

// ValidPriorities returns all valid priority values.
func ValidPriorities() []Priority {
	return []Priority{PriorityNone, PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}
}

// IsValid returns true if the priority is a known valid value.
func (p Priority) IsValid() bool {
	for _, valid := range ValidPriorities() {
		if p == valid {
			return true
		}
	}
	return false
}

// Points returns the point value earned by completing a task of this
// priority. Unassigned priorities score the same as medium.
func (p Priority) Points() int {
	switch p {
	case PriorityLow:
		return 5
	case PriorityHigh:
		return 20
	case PriorityUrgent:
		return 30
	default:
		return 10
	}
}

// ParsePriority maps a priority word (as written after a "!" marker)
// to a Priority. Unrecognized words map to PriorityMedium.
func ParsePriority(word string) Priority {
	switch Priority(word) {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return Priority(word)
	default:
		return PriorityMedium
	}
}

// Recurrence represents how often a completed task regenerates.
type Recurrence string

const (
	// RecurrenceNone indicates the task does not repeat.
	RecurrenceNone Recurrence = ""

	// RecurrenceDaily repeats one day after the previous due date.
	RecurrenceDaily Recurrence = "daily"

	// RecurrenceWeekly repeats seven days after the previous due date.
	RecurrenceWeekly Recurrence = "weekly"

	// RecurrenceMonthly repeats one calendar month after the previous
	// due date, clamped to the last day of the target month.
	RecurrenceMonthly Recurrence = "monthly"
)

// ValidRecurrences returns the non-empty recurrence values.
func ValidRecurrences() []Recurrence {
	return []Recurrence{RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly}
}

// IsValid returns true if the recurrence is a known valid value.
// RecurrenceNone is valid.
func (r Recurrence) IsValid() bool {
	if r == RecurrenceNone {
		return true
	}
	for _, valid := range ValidRecurrences() {
		if r == valid {
			return true
		}
	}
	return false
}

// Task represents a single tracked task.
type Task struct {
	// ID is a unique identifier (8-char alphanumeric, derived from initial title + timestamp).
	ID string `json:"id"`

	// Title is the short summary of the task (max 500 chars).
	Title string `json:"title"`

	// Status is the current lifecycle state.
	Status Status `json:"status"`

	// Priority is the importance level.
	Priority Priority `json:"priority"`

	// Points is the score earned on completion. Always positive.
	Points int `json:"points"`

	// Tags is the set of lowercase tags parsed from "#tag" tokens.
	Tags []string `json:"tags,omitempty"`

	// Category groups the task ("@category" token or configured default).
	Category string `json:"category,omitempty"`

	// DueAt is when the task is due (nil if no due date). When set it
	// always carries a time-of-day component.
	DueAt *time.Time `json:"due_at,omitempty"`

	// Recurrence controls automatic regeneration on completion.
	Recurrence Recurrence `json:"recurrence,omitempty"`

	// ParentID links a recurrence-generated task to the completed task
	// that produced it.
	ParentID string `json:"parent_id,omitempty"`

	// CreatedAt is when the task was created.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is when the task was last modified.
	UpdatedAt time.Time `json:"updated_at"`

	// CompletedAt is when the task completed (nil when not completed).
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// MaxTitleLength is the maximum allowed length for a task title.
const MaxTitleLength = 500
