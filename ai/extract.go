package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/livslogg/livslogg/activity"
	"github.com/livslogg/livslogg/internal/validation"
	"github.com/livslogg/livslogg/task"
)

const activitySystemPrompt = `You are an assistant that converts journal entries into structured data.
Analyze the text and identify all trackable activities.
Return a JSON list of objects, where each object contains 'activity', 'quantity', and 'unit'.
Use these categories for 'activity': %s.
If quantity is not specified, set it to 1.

Example:
User: "drank a large glass of water, about 500ml, and smoked a joint"
You respond:
[
  {"activity": "Water", "quantity": 500, "unit": "ml"},
  {"activity": "Cannabis", "quantity": 1, "unit": "unit"}
]`

const taskSystemPrompt = `You are an assistant that converts freeform reminders into structured tasks.
Return a JSON list of objects, where each object contains 'title' and may contain
'due_at' (RFC 3339 timestamp), 'priority' (one of low, medium, high, urgent),
'tags' (list of lowercase words), and 'category'.

Example:
User: "buy milk tomorrow evening and call the dentist"
You respond:
[
  {"title": "Buy milk", "due_at": "2025-01-16T17:00:00Z", "category": "shopping"},
  {"title": "Call the dentist", "priority": "medium"}
]`

// Rejection records one candidate dropped during validation.
type Rejection struct {
	// Index is the candidate's position in the response batch.
	Index int

	// Reason explains why the candidate was rejected.
	Reason error
}

// ActivityCandidate is the untrusted activity shape proposed by the
// model, prior to validation.
type ActivityCandidate struct {
	Activity string  `json:"activity"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

// ExtractActivities submits raw text and returns the validated
// activity records the model proposed. Invalid candidates are dropped
// individually and reported via rejections; they never abort valid
// siblings in the same batch. A returned error means the whole call
// failed (network, timeout, auth, malformed JSON) and the caller
// should fall back to the heuristic parser.
func (c *Client) ExtractActivities(ctx context.Context, text string) ([]activity.Activity, []Rejection, error) {
	system := fmt.Sprintf(activitySystemPrompt, validation.FormatValidValues(activity.Categories()))
	content, err := c.complete(ctx, system, text)
	if err != nil {
		return nil, nil, err
	}
	if content == "" {
		return nil, nil, nil
	}

	var candidates []ActivityCandidate
	if err := decodeCandidateList(content, &candidates); err != nil {
		return nil, nil, fmt.Errorf("parsing extraction content: %w", err)
	}

	var accepted []activity.Activity
	var rejected []Rejection
	for i, candidate := range candidates {
		a := activity.Activity{
			Name:     activity.Category(strings.TrimSpace(candidate.Activity)),
			Quantity: candidate.Quantity,
			Unit:     strings.TrimSpace(candidate.Unit),
		}
		if err := activity.Validate(&a); err != nil {
			rejected = append(rejected, Rejection{Index: i, Reason: err})
			continue
		}
		accepted = append(accepted, a)
	}
	return accepted, rejected, nil
}

// TaskCandidate is the untrusted task shape proposed by the model,
// prior to validation.
type TaskCandidate struct {
	Title    string   `json:"title"`
	DueAt    string   `json:"due_at,omitempty"`
	Priority string   `json:"priority,omitempty"`
	Tags     []string `json:"tags,omitempty"`
	Category string   `json:"category,omitempty"`
}

// ProposedTask is a validated task candidate, ready to create.
type ProposedTask struct {
	Title   string
	Options task.CreateOptions
}

// ExtractTasks submits raw text and returns validated task proposals.
// As with activities, invalid candidates are rejected individually and
// call-level failures require heuristic fallback.
func (c *Client) ExtractTasks(ctx context.Context, text string) ([]ProposedTask, []Rejection, error) {
	content, err := c.complete(ctx, taskSystemPrompt, text)
	if err != nil {
		return nil, nil, err
	}
	if content == "" {
		return nil, nil, nil
	}

	var candidates []TaskCandidate
	if err := decodeCandidateList(content, &candidates); err != nil {
		return nil, nil, fmt.Errorf("parsing extraction content: %w", err)
	}

	var accepted []ProposedTask
	var rejected []Rejection
	for i, candidate := range candidates {
		proposed, err := validateTaskCandidate(candidate)
		if err != nil {
			rejected = append(rejected, Rejection{Index: i, Reason: err})
			continue
		}
		accepted = append(accepted, proposed)
	}
	return accepted, rejected, nil
}

func validateTaskCandidate(candidate TaskCandidate) (ProposedTask, error) {
	title := strings.TrimSpace(candidate.Title)
	if err := task.ValidateTitle(title); err != nil {
		return ProposedTask{}, err
	}

	// Unrecognized priority words get the same treatment as an
	// unrecognized "!" marker: medium.
	priority := task.PriorityMedium
	if word := strings.ToLower(strings.TrimSpace(candidate.Priority)); word != "" {
		priority = task.ParsePriority(word)
	}

	opts := task.CreateOptions{
		Priority: priority,
		Tags:     candidate.Tags,
		Category: strings.TrimSpace(candidate.Category),
	}

	// An unparseable due timestamp is recoverable ambiguity, not a
	// rejection: the task is still usable without a due date.
	if candidate.DueAt != "" {
		if due, err := parseDueAt(candidate.DueAt); err == nil {
			opts.DueAt = &due
		}
	}

	return ProposedTask{Title: title, Options: opts}, nil
}

func parseDueAt(value string) (time.Time, error) {
	layouts := []string{time.RFC3339, "2006-01-02 15:04", "2006-01-02T15:04", "2006-01-02"}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable due timestamp %q", value)
}

// decodeCandidateList accepts either a bare JSON list or a single-key
// object wrapping one ("{\"activities\": [...]}"). Models in
// json_object mode sometimes wrap the list even when asked not to.
func decodeCandidateList(content string, out any) error {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "[") {
		return json.Unmarshal([]byte(content), out)
	}

	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal([]byte(content), &wrapper); err != nil {
		return err
	}
	for _, raw := range wrapper {
		trimmed := strings.TrimSpace(string(raw))
		if strings.HasPrefix(trimmed, "[") {
			return json.Unmarshal(raw, out)
		}
	}
	return fmt.Errorf("no candidate list in response object")
}
