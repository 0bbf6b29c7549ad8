package entry

import (
	"strings"
	"time"

	"github.com/livslogg/livslogg/task"
)

// Options configures defaults applied when the text carries no
// explicit marker.
type Options struct {
	// DefaultPriority is used when no "!" marker is written.
	// Defaults to task.PriorityMedium.
	DefaultPriority task.Priority

	// DefaultCategory is used when no "@" marker is written.
	DefaultCategory string
}

// Result is one structured record parsed from one line of text.
type Result struct {
	// Title is the entry subject with all recognized tokens stripped.
	// Never empty.
	Title string

	// DueAt is the resolved due timestamp, nil when the text carries
	// no date expression. When set it always includes a time-of-day.
	DueAt *time.Time

	// Priority is the parsed or defaulted priority.
	Priority task.Priority

	// Tags is the lowercased, duplicate-collapsed tag set.
	Tags []string

	// Category is the parsed or defaulted category.
	Category string

	// Points is derived from Priority via the fixed table.
	Points int

	// Degraded reports that parsing failed internally and the result
	// fell back to the raw input as title with everything else at
	// defaults. Callers that care (the log command does) can surface
	// the degradation; the record itself is still usable.
	Degraded bool
}

// Parse builds one structured record from one line of text.
//
// It is a pure function of (text, now, opts): the reference instant is
// injected rather than sampled, so identical inputs always produce
// identical results. Parse never fails: an internal panic degrades to
// a record with the trimmed raw input as title and every other field
// at its default.
func Parse(text string, now time.Time, opts Options) (result Result) {
	defaultPriority := opts.DefaultPriority
	if defaultPriority == "" {
		defaultPriority = task.PriorityMedium
	}

	defer func() {
		if recover() == nil {
			return
		}
		result = Result{
			Title:    strings.TrimSpace(text),
			Priority: defaultPriority,
			Category: opts.DefaultCategory,
			Points:   defaultPriority.Points(),
			Degraded: true,
		}
		if result.Title == "" {
			result.Title = text
		}
	}()

	tokens := ExtractTokens(text)
	due, matchedSpans := ResolveDue(tokens.Stripped, now)
	title := NormalizeTitle(tokens.Stripped, matchedSpans, text)

	priority := defaultPriority
	if tokens.Priority != nil {
		priority = *tokens.Priority
	}

	category := tokens.Category
	if category == "" {
		category = opts.DefaultCategory
	}

	return Result{
		Title:    title,
		DueAt:    due,
		Priority: priority,
		Tags:     tokens.Tags,
		Category: category,
		Points:   priority.Points(),
	}
}
