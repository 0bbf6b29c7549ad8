package activity

import (
	"reflect"
	"strings"
	"testing"
	"time"
)

func day(dayOfMonth, hour int) time.Time {
	return time.Date(2025, time.January, dayOfMonth, hour, 0, 0, 0, time.UTC)
}

var sampleLog = []Activity{
	{Timestamp: day(10, 8), Name: CategoryWater, Quantity: 500, Unit: "ml"},
	{Timestamp: day(10, 12), Name: CategoryWalk, Quantity: 2.5, Unit: "km"},
	{Timestamp: day(11, 9), Name: CategoryWater, Quantity: 300, Unit: "ml"},
	{Timestamp: day(12, 20), Name: CategoryAlcohol, Quantity: 1, Unit: "unit"},
	{Timestamp: day(12, 7), Name: CategoryWater, Quantity: 200, Unit: "ml"},
}

func TestTotals(t *testing.T) {
	got := Totals(sampleLog)
	want := []Total{
		{Name: CategoryAlcohol, Quantity: 1},
		{Name: CategoryWalk, Quantity: 2.5},
		{Name: CategoryWater, Quantity: 1000},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Totals = %v, want %v", got, want)
	}
}

func TestSummarize(t *testing.T) {
	summary := Summarize(sampleLog)
	if summary.TotalEntries != 5 {
		t.Errorf("total entries = %d, want 5", summary.TotalEntries)
	}
	if summary.UniqueActivities != 3 {
		t.Errorf("unique activities = %d, want 3", summary.UniqueActivities)
	}
	if !summary.FirstEntry.Equal(day(10, 8)) {
		t.Errorf("first entry = %s, want %s", summary.FirstEntry, day(10, 8))
	}
	if !summary.LastEntry.Equal(day(12, 20)) {
		t.Errorf("last entry = %s, want %s", summary.LastEntry, day(12, 20))
	}
	if summary.DaysTracked != 3 {
		t.Errorf("days tracked = %d, want 3", summary.DaysTracked)
	}
	if summary.Counts[CategoryWater] != 3 {
		t.Errorf("water count = %d, want 3", summary.Counts[CategoryWater])
	}
	if summary.Totals[CategoryWater] != 1000 {
		t.Errorf("water total = %g, want 1000", summary.Totals[CategoryWater])
	}
}

func TestSummarizeEmpty(t *testing.T) {
	if got := Summarize(nil); !reflect.DeepEqual(got, Summary{}) {
		t.Errorf("Summarize(nil) = %+v, want zero", got)
	}
}

func TestForDate(t *testing.T) {
	got := ForDate(sampleLog, day(12, 0))
	if len(got) != 2 {
		t.Fatalf("got %d activities, want 2", len(got))
	}
	if got[0].Name != CategoryWater || got[1].Name != CategoryAlcohol {
		t.Errorf("results not chronological: %v then %v", got[0].Name, got[1].Name)
	}
}

func TestForRange(t *testing.T) {
	got, err := ForRange(sampleLog, day(11, 23), day(12, 0))
	if err != nil {
		t.Fatalf("ForRange: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("got %d activities, want 3 (range is inclusive by day)", len(got))
	}

	if _, err := ForRange(sampleLog, day(12, 0), day(11, 0)); err == nil {
		t.Error("inverted range did not fail")
	}
}

func TestTimeline(t *testing.T) {
	byDay, err := Timeline(sampleLog, CategoryWater, GroupByDay)
	if err != nil {
		t.Fatalf("Timeline by day: %v", err)
	}
	want := []TimelinePoint{
		{Period: "2025-01-10", Quantity: 500},
		{Period: "2025-01-11", Quantity: 300},
		{Period: "2025-01-12", Quantity: 200},
	}
	if !reflect.DeepEqual(byDay, want) {
		t.Errorf("by day = %v, want %v", byDay, want)
	}

	byWeek, err := Timeline(sampleLog, CategoryWater, GroupByWeek)
	if err != nil {
		t.Fatalf("Timeline by week: %v", err)
	}
	if len(byWeek) != 1 || byWeek[0].Period != "2025-W02" || byWeek[0].Quantity != 1000 {
		t.Errorf("by week = %v, want one 2025-W02 bucket of 1000", byWeek)
	}

	byMonth, err := Timeline(sampleLog, CategoryWater, GroupByMonth)
	if err != nil {
		t.Fatalf("Timeline by month: %v", err)
	}
	if len(byMonth) != 1 || byMonth[0].Period != "2025-01" {
		t.Errorf("by month = %v, want one 2025-01 bucket", byMonth)
	}
}

func TestTimelineErrors(t *testing.T) {
	if _, err := Timeline(sampleLog, CategoryCigarette, GroupByDay); err == nil {
		t.Error("absent activity did not fail")
	}
	if _, err := Timeline(sampleLog, CategoryWater, GroupBy("year")); err == nil {
		t.Error("unknown grouping did not fail")
	}
}

func TestFormatSummary(t *testing.T) {
	if got := FormatSummary(nil); got != "No activities logged yet." {
		t.Errorf("empty = %q", got)
	}

	got := FormatSummary(sampleLog[:2])
	lines := strings.Split(got, "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if lines[0] != "- Water: 500.0 ml" {
		t.Errorf("line = %q, want %q", lines[0], "- Water: 500.0 ml")
	}
}
