package entry

import (
	"reflect"
	"testing"
	"time"

	"github.com/livslogg/livslogg/task"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		text string
		opts Options
		want Result
	}{
		{
			name: "full entry",
			text: "Buy milk tomorrow 5pm !high #shopping @errands",
			want: Result{
				Title:    "Buy milk",
				DueAt:    timePtr(time.Date(2025, time.January, 16, 17, 0, 0, 0, time.Local)),
				Priority: task.PriorityHigh,
				Tags:     []string{"shopping"},
				Category: "errands",
				Points:   20,
			},
		},
		{
			name: "bare word",
			text: "walk",
			want: Result{
				Title:    "walk",
				Priority: task.PriorityMedium,
				Points:   10,
			},
		},
		{
			name: "urgent marker scores thirty",
			text: "fix prod !urgent",
			want: Result{
				Title:    "fix prod",
				Priority: task.PriorityUrgent,
				Points:   30,
			},
		},
		{
			name: "low marker scores five",
			text: "tidy desk !low",
			want: Result{
				Title:    "tidy desk",
				Priority: task.PriorityLow,
				Points:   5,
			},
		},
		{
			name: "defaults apply without markers",
			text: "water the plants",
			opts: Options{DefaultPriority: task.PriorityLow, DefaultCategory: "home"},
			want: Result{
				Title:    "water the plants",
				Priority: task.PriorityLow,
				Category: "home",
				Points:   5,
			},
		},
		{
			name: "explicit markers beat defaults",
			text: "water the plants !high @garden",
			opts: Options{DefaultPriority: task.PriorityLow, DefaultCategory: "home"},
			want: Result{
				Title:    "water the plants",
				Priority: task.PriorityHigh,
				Category: "garden",
				Points:   20,
			},
		},
		{
			name: "date words removed from title",
			text: "file taxes by 2025-04-15",
			want: Result{
				Title:    "file taxes",
				DueAt:    timePtr(time.Date(2025, time.April, 15, 17, 0, 0, 0, time.Local)),
				Priority: task.PriorityMedium,
				Points:   10,
			},
		},
		{
			name: "all tokens falls back to raw title",
			text: "!high #chores",
			want: Result{
				Title:    "!high #chores",
				Priority: task.PriorityHigh,
				Tags:     []string{"chores"},
				Points:   20,
			},
		},
		{
			name: "whitespace collapses",
			text: "  buy   milk\ttomorrow  ",
			want: Result{
				Title:    "buy milk",
				DueAt:    timePtr(time.Date(2025, time.January, 16, 17, 0, 0, 0, time.Local)),
				Priority: task.PriorityMedium,
				Points:   10,
			},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := Parse(test.text, reference, test.opts)
			if got.Degraded {
				t.Fatal("result unexpectedly degraded")
			}
			assertResult(t, got, test.want)
		})
	}
}

func TestParseIsDeterministic(t *testing.T) {
	text := "Buy milk tomorrow 5pm !high #shopping @errands"
	first := Parse(text, reference, Options{})
	second := Parse(text, reference, Options{})
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated parse differs:\n%+v\n%+v", first, second)
	}
}

func assertResult(t *testing.T, got, want Result) {
	t.Helper()
	if got.Title != want.Title {
		t.Errorf("title = %q, want %q", got.Title, want.Title)
	}
	if (got.DueAt == nil) != (want.DueAt == nil) {
		t.Fatalf("due presence = %v, want %v", got.DueAt != nil, want.DueAt != nil)
	}
	if got.DueAt != nil && !got.DueAt.Equal(*want.DueAt) {
		t.Errorf("due = %s, want %s", got.DueAt, want.DueAt)
	}
	if got.Priority != want.Priority {
		t.Errorf("priority = %q, want %q", got.Priority, want.Priority)
	}
	if !reflect.DeepEqual(got.Tags, want.Tags) {
		t.Errorf("tags = %v, want %v", got.Tags, want.Tags)
	}
	if got.Category != want.Category {
		t.Errorf("category = %q, want %q", got.Category, want.Category)
	}
	if got.Points != want.Points {
		t.Errorf("points = %d, want %d", got.Points, want.Points)
	}
}

func timePtr(value time.Time) *time.Time {
	return &value
}
