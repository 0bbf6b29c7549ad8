package task

import (
	"errors"
	"fmt"
	"strings"

	"github.com/livslogg/livslogg/internal/validation"
)

var (
	// ErrEmptyTitle is returned when a task title is empty after trimming.
	ErrEmptyTitle = errors.New("title cannot be empty")

	// ErrTitleTooLong is returned when a task title exceeds MaxTitleLength.
	ErrTitleTooLong = errors.New("title exceeds maximum length")

	// ErrInvalidStatus is returned when an invalid status is provided.
	ErrInvalidStatus = errors.New("invalid status")

	// ErrInvalidPriority is returned when an invalid priority is provided.
	ErrInvalidPriority = errors.New("invalid priority")

	// ErrInvalidRecurrence is returned when an invalid recurrence pattern is provided.
	ErrInvalidRecurrence = errors.New("invalid recurrence")

	// ErrNonPositivePoints is returned when points are zero or negative.
	ErrNonPositivePoints = errors.New("points must be positive")

	// ErrNoDueDate is returned when recurrence is requested for a task without a due date.
	ErrNoDueDate = errors.New("recurring task requires a due date")

	// ErrTaskNotFound is returned when a task with the given ID doesn't exist.
	ErrTaskNotFound = errors.New("task not found")

	// ErrAmbiguousTaskIDPrefix is returned when an ID prefix matches multiple tasks.
	ErrAmbiguousTaskIDPrefix = errors.New("ambiguous task ID prefix")
)

// ValidateTitle checks if the title is valid.
func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return ErrEmptyTitle
	}
	if len(title) > MaxTitleLength {
		return fmt.Errorf("%w: %d > %d", ErrTitleTooLong, len(title), MaxTitleLength)
	}
	return nil
}

// ValidatePoints checks if the point value is valid. Zero and negative
// values are rejected; there is no upper bound.
func ValidatePoints(points int) error {
	if points <= 0 {
		return fmt.Errorf("%w: got %d", ErrNonPositivePoints, points)
	}
	return nil
}

// ValidateTask checks all invariants on a task.
func ValidateTask(t *Task) error {
	if err := ValidateTitle(t.Title); err != nil {
		return err
	}
	if !t.Status.IsValid() {
		return validation.FormatInvalidValueError(ErrInvalidStatus, t.Status, ValidStatuses())
	}
	if !t.Priority.IsValid() {
		return validation.FormatInvalidValueError(ErrInvalidPriority, t.Priority, ValidPriorities())
	}
	if !t.Recurrence.IsValid() {
		return validation.FormatInvalidValueError(ErrInvalidRecurrence, t.Recurrence, ValidRecurrences())
	}
	if err := ValidatePoints(t.Points); err != nil {
		return err
	}
	if t.Recurrence != RecurrenceNone && t.DueAt == nil {
		return ErrNoDueDate
	}
	if t.Status == StatusCompleted && t.CompletedAt == nil {
		return errors.New("completed task must have completed_at timestamp")
	}
	if t.Status != StatusCompleted && t.CompletedAt != nil {
		return errors.New("non-completed task cannot have completed_at timestamp")
	}
	return nil
}

func normalizeStatus(status Status) Status {
	return Status(strings.ToLower(strings.TrimSpace(string(status))))
}

func normalizeStatusInput(status Status) (Status, error) {
	normalized := normalizeStatus(status)
	if !normalized.IsValid() {
		return "", validation.FormatInvalidValueError(ErrInvalidStatus, status, ValidStatuses())
	}
	return normalized, nil
}

func normalizePriorityInput(priority Priority) (Priority, error) {
	normalized := Priority(strings.ToLower(strings.TrimSpace(string(priority))))
	if !normalized.IsValid() {
		return "", validation.FormatInvalidValueError(ErrInvalidPriority, priority, ValidPriorities())
	}
	return normalized, nil
}

func normalizeRecurrenceInput(recurrence Recurrence) (Recurrence, error) {
	normalized := Recurrence(strings.ToLower(strings.TrimSpace(string(recurrence))))
	if normalized == "none" {
		normalized = RecurrenceNone
	}
	if !normalized.IsValid() {
		return "", validation.FormatInvalidValueError(ErrInvalidRecurrence, recurrence, ValidRecurrences())
	}
	return normalized, nil
}
