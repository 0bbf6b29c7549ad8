// Package logbook turns raw free-text entries into persisted activity and
// task records. Extraction goes through the configured AI client first,
// for activities and then for task proposals; any failure or empty result
// falls back to the heuristic parser so an entry is never lost.
package logbook

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/livslogg/livslogg/activity"
	"github.com/livslogg/livslogg/ai"
	"github.com/livslogg/livslogg/entry"
	"github.com/livslogg/livslogg/task"
)

// ErrEmptyEntry reports an entry with no content.
var ErrEmptyEntry = errors.New("entry text is empty")

// ActivityExtractor is the AI extraction surface the logbook depends on.
type ActivityExtractor interface {
	ExtractActivities(ctx context.Context, text string) ([]activity.Activity, []ai.Rejection, error)
	Model() string
}

// TaskExtractor proposes structured tasks from entry text. When set,
// entries that yield no activities are offered to it before the
// heuristic parser.
type TaskExtractor interface {
	ExtractTasks(ctx context.Context, text string) ([]ai.ProposedTask, []ai.Rejection, error)
}

// Options configures a Logbook.
type Options struct {
	Activities *activity.Store
	Tasks      *task.Store
	// Extractor may be nil, in which case every entry takes the
	// heuristic path.
	Extractor ActivityExtractor
	// TaskExtractor may be nil, in which case entries that are not
	// activities go straight to the heuristic parser.
	TaskExtractor TaskExtractor
	Logger        Logger
	Parse         entry.Options
	Now           func() time.Time
}

// Logbook coordinates extraction, fallback, and persistence for entries.
type Logbook struct {
	activities    *activity.Store
	tasks         *task.Store
	extractor     ActivityExtractor
	taskExtractor TaskExtractor
	logger        Logger
	parseOpts     entry.Options
	now           func() time.Time
}

// New builds a Logbook from options.
func New(opts Options) *Logbook {
	logger := opts.Logger
	if logger == nil {
		logger = noopLogger{}
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Logbook{
		activities:    opts.Activities,
		tasks:         opts.Tasks,
		extractor:     opts.Extractor,
		taskExtractor: opts.TaskExtractor,
		logger:        logger,
		parseOpts:     opts.Parse,
		now:           now,
	}
}

// Result reports what an entry became.
type Result struct {
	Activities []activity.Activity
	Rejections []ai.Rejection
	// Tasks are AI-proposed tasks that passed validation.
	Tasks []*task.Task
	// Task is the single task created by the heuristic parser.
	Task *task.Task
	// Fallback is true when extraction was attempted and the heuristic
	// path was used instead.
	Fallback       bool
	FallbackReason string
	Degraded       bool
}

// Log processes one free-text entry end to end.
func (book *Logbook) Log(ctx context.Context, text string) (Result, error) {
	if strings.TrimSpace(text) == "" {
		return Result{}, ErrEmptyEntry
	}

	if book.extractor == nil {
		return book.logHeuristic(text)
	}

	acts, rejections, err := book.extractor.ExtractActivities(ctx, text)
	if err == nil && len(acts) > 0 {
		book.logger.Extraction(ExtractionLog{
			Model:      book.extractor.Model(),
			Accepted:   len(acts),
			Rejections: rejections,
		})
		if err := book.activities.Append(acts, book.now()); err != nil {
			return Result{}, err
		}
		book.logger.Saved(SavedLog{Activities: acts})
		return Result{Activities: acts, Rejections: rejections}, nil
	}

	// Nothing activity-shaped came back. While the API is reachable,
	// the entry may still read as one or more tasks.
	if err == nil && book.taskExtractor != nil {
		proposals, taskRejections, terr := book.taskExtractor.ExtractTasks(ctx, text)
		rejections = append(rejections, taskRejections...)
		if terr == nil && len(proposals) > 0 {
			created, cerr := book.createProposedTasks(proposals)
			if cerr != nil {
				return Result{}, cerr
			}
			book.logger.Extraction(ExtractionLog{
				Model:      book.extractor.Model(),
				Accepted:   len(created),
				Rejections: taskRejections,
			})
			book.logger.Saved(SavedLog{Tasks: created})
			return Result{Tasks: created, Rejections: rejections}, nil
		}
		err = terr
	}

	reason := "no usable candidates in response"
	if err != nil {
		reason = err.Error()
	}
	book.logger.Fallback(FallbackLog{Reason: reason})
	result, herr := book.logHeuristic(text)
	if herr != nil {
		return Result{}, herr
	}
	result.Rejections = rejections
	result.Fallback = true
	result.FallbackReason = reason
	return result, nil
}

func (book *Logbook) createProposedTasks(proposals []ai.ProposedTask) ([]*task.Task, error) {
	now := book.now()
	created := make([]*task.Task, 0, len(proposals))
	for _, proposal := range proposals {
		t, err := book.tasks.Create(proposal.Title, now, proposal.Options)
		if err != nil {
			return nil, err
		}
		created = append(created, t)
	}
	return created, nil
}

func (book *Logbook) logHeuristic(text string) (Result, error) {
	created, parsed, err := book.AddTask(text)
	if err != nil {
		return Result{}, err
	}
	book.logger.Saved(SavedLog{Task: created, Degraded: parsed.Degraded})
	return Result{Task: created, Degraded: parsed.Degraded}, nil
}

// AddTask parses entry text heuristically and persists the resulting task.
func (book *Logbook) AddTask(text string) (*task.Task, entry.Result, error) {
	now := book.now()
	parsed := entry.Parse(text, now, book.parseOpts)
	created, err := book.tasks.Create(parsed.Title, now, task.CreateOptions{
		Priority: parsed.Priority,
		Points:   &parsed.Points,
		Tags:     parsed.Tags,
		Category: parsed.Category,
		DueAt:    parsed.DueAt,
	})
	if err != nil {
		return nil, entry.Result{}, err
	}
	return created, parsed, nil
}
