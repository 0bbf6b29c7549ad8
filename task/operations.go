package task

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// CreateOptions configures a new task.
type CreateOptions struct {
	// Priority is the importance level. Defaults to PriorityMedium.
	Priority Priority

	// Points overrides the point value derived from priority.
	Points *int

	// Tags is the lowercase tag set.
	Tags []string

	// Category groups the task. Free-form; any value is accepted.
	Category string

	// DueAt is when the task is due.
	DueAt *time.Time

	// Recurrence controls regeneration on completion.
	Recurrence Recurrence
}

// Create creates a new task with the given title.
func (s *Store) Create(title string, now time.Time, opts CreateOptions) (*Task, error) {
	title = strings.TrimSpace(title)
	if err := ValidateTitle(title); err != nil {
		return nil, err
	}

	priority := opts.Priority
	if priority == "" {
		priority = PriorityMedium
	}
	normalizedPriority, err := normalizePriorityInput(priority)
	if err != nil {
		return nil, err
	}

	recurrence, err := normalizeRecurrenceInput(opts.Recurrence)
	if err != nil {
		return nil, err
	}

	points := normalizedPriority.Points()
	if opts.Points != nil {
		points = *opts.Points
	}
	if err := ValidatePoints(points); err != nil {
		return nil, err
	}

	t := Task{
		ID:         GenerateID(title, now),
		Title:      title,
		Status:     StatusPending,
		Priority:   normalizedPriority,
		Points:     points,
		Tags:       normalizeTags(opts.Tags),
		Category:   strings.TrimSpace(opts.Category),
		DueAt:      opts.DueAt,
		Recurrence: recurrence,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := ValidateTask(&t); err != nil {
		return nil, err
	}

	tasks, err := s.readTasks()
	if err != nil {
		return nil, err
	}
	tasks = append(tasks, t)

	if err := s.writeTasks(tasks); err != nil {
		return nil, fmt.Errorf("write tasks: %w", err)
	}
	return &t, nil
}

// UpdateOptions configures fields to update on tasks.
// Nil pointers mean "don't update this field".
type UpdateOptions struct {
	Title      *string
	Priority   *Priority
	Points     *int
	Category   *string
	DueAt      **time.Time
	Recurrence *Recurrence
}

// Update updates one or more tasks with the given options.
// Returns the updated tasks.
func (s *Store) Update(ids []string, now time.Time, opts UpdateOptions) ([]Task, error) {
	if opts.Title != nil {
		trimmed := strings.TrimSpace(*opts.Title)
		if err := ValidateTitle(trimmed); err != nil {
			return nil, err
		}
		opts.Title = &trimmed
	}
	if opts.Priority != nil {
		normalized, err := normalizePriorityInput(*opts.Priority)
		if err != nil {
			return nil, err
		}
		opts.Priority = &normalized
	}
	if opts.Points != nil {
		if err := ValidatePoints(*opts.Points); err != nil {
			return nil, err
		}
	}
	if opts.Recurrence != nil {
		normalized, err := normalizeRecurrenceInput(*opts.Recurrence)
		if err != nil {
			return nil, err
		}
		opts.Recurrence = &normalized
	}

	tasks, err := s.readTasks()
	if err != nil {
		return nil, err
	}
	resolvedIDs, err := resolveTaskIDs(ids, tasks)
	if err != nil {
		return nil, err
	}

	idSet := make(map[string]bool)
	for _, id := range resolvedIDs {
		idSet[id] = true
	}

	var updated []Task
	for i := range tasks {
		if !idSet[tasks[i].ID] {
			continue
		}

		if opts.Title != nil {
			tasks[i].Title = *opts.Title
		}
		if opts.Priority != nil {
			tasks[i].Priority = *opts.Priority
			if opts.Points == nil {
				tasks[i].Points = opts.Priority.Points()
			}
		}
		if opts.Points != nil {
			tasks[i].Points = *opts.Points
		}
		if opts.Category != nil {
			tasks[i].Category = strings.TrimSpace(*opts.Category)
		}
		if opts.DueAt != nil {
			tasks[i].DueAt = *opts.DueAt
		}
		if opts.Recurrence != nil {
			tasks[i].Recurrence = *opts.Recurrence
		}
		tasks[i].UpdatedAt = now

		if err := ValidateTask(&tasks[i]); err != nil {
			return nil, fmt.Errorf("validate task %s: %w", tasks[i].ID, err)
		}
		updated = append(updated, tasks[i])
	}

	if err := s.writeTasks(tasks); err != nil {
		return nil, fmt.Errorf("write tasks: %w", err)
	}
	return updated, nil
}

// Start marks one or more tasks as in progress. Completed tasks cannot
// be restarted.
func (s *Store) Start(ids []string, now time.Time) ([]Task, error) {
	tasks, err := s.readTasks()
	if err != nil {
		return nil, err
	}
	resolvedIDs, err := resolveTaskIDs(ids, tasks)
	if err != nil {
		return nil, err
	}

	idSet := make(map[string]bool)
	for _, id := range resolvedIDs {
		idSet[id] = true
	}

	var started []Task
	for i := range tasks {
		if !idSet[tasks[i].ID] {
			continue
		}
		if tasks[i].Status == StatusCompleted {
			return nil, fmt.Errorf("task %s is already completed", tasks[i].ID)
		}
		tasks[i].Status = StatusInProgress
		tasks[i].UpdatedAt = now
		started = append(started, tasks[i])
	}

	if err := s.writeTasks(tasks); err != nil {
		return nil, fmt.Errorf("write tasks: %w", err)
	}
	return started, nil
}

// CompleteResult reports the outcome of completing one task.
type CompleteResult struct {
	// Task is the completed task.
	Task Task

	// Successor is the recurrence-generated follow-up, nil when the
	// task does not recur or was already completed.
	Successor *Task
}

// Complete marks one or more tasks completed. Each task with an
// enabled recurrence pattern generates exactly one pending successor
// due at the next occurrence. Completing an already-completed task is
// a no-op: it is not modified again and no second successor is ever
// generated.
func (s *Store) Complete(ids []string, now time.Time) ([]CompleteResult, error) {
	tasks, err := s.readTasks()
	if err != nil {
		return nil, err
	}
	resolvedIDs, err := resolveTaskIDs(ids, tasks)
	if err != nil {
		return nil, err
	}

	idSet := make(map[string]bool)
	for _, id := range resolvedIDs {
		idSet[id] = true
	}

	var results []CompleteResult
	var successors []Task
	for i := range tasks {
		if !idSet[tasks[i].ID] {
			continue
		}

		if tasks[i].Status == StatusCompleted {
			results = append(results, CompleteResult{Task: tasks[i]})
			continue
		}

		tasks[i].Status = StatusCompleted
		tasks[i].CompletedAt = &now
		tasks[i].UpdatedAt = now

		result := CompleteResult{Task: tasks[i]}
		if tasks[i].Recurrence != RecurrenceNone {
			next, err := Successor(tasks[i], now)
			if err != nil {
				return nil, fmt.Errorf("generate successor for %s: %w", tasks[i].ID, err)
			}
			successors = append(successors, next)
			result.Successor = &next
		}
		results = append(results, result)
	}

	tasks = append(tasks, successors...)
	if err := s.writeTasks(tasks); err != nil {
		return nil, fmt.Errorf("write tasks: %w", err)
	}
	return results, nil
}

// Remove deletes one or more tasks from the store.
func (s *Store) Remove(ids []string) ([]Task, error) {
	tasks, err := s.readTasks()
	if err != nil {
		return nil, err
	}
	resolvedIDs, err := resolveTaskIDs(ids, tasks)
	if err != nil {
		return nil, err
	}

	idSet := make(map[string]bool)
	for _, id := range resolvedIDs {
		idSet[id] = true
	}

	var removed []Task
	kept := tasks[:0]
	for _, t := range tasks {
		if idSet[t.ID] {
			removed = append(removed, t)
			continue
		}
		kept = append(kept, t)
	}

	if err := s.writeTasks(kept); err != nil {
		return nil, fmt.Errorf("write tasks: %w", err)
	}
	return removed, nil
}

// Show returns the full details of one or more tasks.
func (s *Store) Show(ids []string) ([]Task, error) {
	tasks, err := s.readTasks()
	if err != nil {
		return nil, err
	}
	resolvedIDs, err := resolveTaskIDs(ids, tasks)
	if err != nil {
		return nil, err
	}

	taskByID := make(map[string]Task, len(tasks))
	for _, t := range tasks {
		taskByID[t.ID] = t
	}

	var result []Task
	seen := make(map[string]bool)
	for _, id := range resolvedIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		result = append(result, taskByID[id])
	}
	return result, nil
}

// ListFilter configures which tasks to return.
type ListFilter struct {
	// Status filters by exact status match.
	Status *Status

	// Priority filters by exact priority match.
	Priority *Priority

	// Tag filters to tasks carrying this tag.
	Tag string

	// Category filters by exact category match.
	Category string

	// DueBefore filters to tasks due strictly before this instant.
	DueBefore *time.Time

	// TitleSubstring filters to tasks with this substring in the title.
	TitleSubstring string
}

// List returns tasks matching the filter, sorted by due date (tasks
// without a due date last), then priority points descending, then
// creation time.
func (s *Store) List(filter ListFilter) ([]Task, error) {
	if filter.Status != nil {
		normalized, err := normalizeStatusInput(*filter.Status)
		if err != nil {
			return nil, err
		}
		filter.Status = &normalized
	}
	if filter.Priority != nil {
		normalized, err := normalizePriorityInput(*filter.Priority)
		if err != nil {
			return nil, err
		}
		filter.Priority = &normalized
	}

	tag := strings.ToLower(strings.TrimSpace(filter.Tag))
	titleQuery := strings.ToLower(filter.TitleSubstring)

	tasks, err := s.readTasks()
	if err != nil {
		return nil, err
	}

	var result []Task
	for _, t := range tasks {
		if filter.Status != nil && t.Status != *filter.Status {
			continue
		}
		if filter.Priority != nil && t.Priority != *filter.Priority {
			continue
		}
		if tag != "" && !hasTag(t, tag) {
			continue
		}
		if filter.Category != "" && !strings.EqualFold(t.Category, filter.Category) {
			continue
		}
		if filter.DueBefore != nil {
			if t.DueAt == nil || !t.DueAt.Before(*filter.DueBefore) {
				continue
			}
		}
		if titleQuery != "" && !strings.Contains(strings.ToLower(t.Title), titleQuery) {
			continue
		}
		result = append(result, t)
	}

	sort.SliceStable(result, func(i, j int) bool {
		di, dj := result[i].DueAt, result[j].DueAt
		switch {
		case di != nil && dj != nil && !di.Equal(*dj):
			return di.Before(*dj)
		case di == nil && dj != nil:
			return false
		case di != nil && dj == nil:
			return true
		}
		if result[i].Points != result[j].Points {
			return result[i].Points > result[j].Points
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})

	return result, nil
}

func hasTag(t Task, tag string) bool {
	for _, candidate := range t.Tags {
		if candidate == tag {
			return true
		}
	}
	return false
}

func normalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(tags))
	var normalized []string
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		normalized = append(normalized, tag)
	}
	sort.Strings(normalized)
	return normalized
}
