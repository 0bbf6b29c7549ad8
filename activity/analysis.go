package activity

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Total is the summed quantity for one activity category.
type Total struct {
	Name     Category
	Quantity float64
}

// Totals returns summed quantities per activity, sorted by name.
func Totals(activities []Activity) []Total {
	sums := make(map[Category]float64)
	for _, a := range activities {
		sums[a.Name] += a.Quantity
	}

	totals := make([]Total, 0, len(sums))
	for name, quantity := range sums {
		totals = append(totals, Total{Name: name, Quantity: quantity})
	}
	sort.Slice(totals, func(i, j int) bool {
		return totals[i].Name < totals[j].Name
	})
	return totals
}

// Summary holds aggregate statistics about the activity log.
type Summary struct {
	TotalEntries     int
	UniqueActivities int
	FirstEntry       time.Time
	LastEntry        time.Time
	DaysTracked      int
	Counts           map[Category]int
	Totals           map[Category]float64
}

// Summarize computes summary statistics. An empty log yields a zero
// Summary.
func Summarize(activities []Activity) Summary {
	if len(activities) == 0 {
		return Summary{}
	}

	summary := Summary{
		TotalEntries: len(activities),
		Counts:       make(map[Category]int),
		Totals:       make(map[Category]float64),
		FirstEntry:   activities[0].Timestamp,
		LastEntry:    activities[0].Timestamp,
	}
	for _, a := range activities {
		summary.Counts[a.Name]++
		summary.Totals[a.Name] += a.Quantity
		if a.Timestamp.Before(summary.FirstEntry) {
			summary.FirstEntry = a.Timestamp
		}
		if a.Timestamp.After(summary.LastEntry) {
			summary.LastEntry = a.Timestamp
		}
	}
	summary.UniqueActivities = len(summary.Counts)
	summary.DaysTracked = int(summary.LastEntry.Sub(summary.FirstEntry).Hours()/24) + 1
	return summary
}

// ForDate returns activities logged on the given calendar date, in
// chronological order.
func ForDate(activities []Activity, date time.Time) []Activity {
	year, month, day := date.Date()
	var result []Activity
	for _, a := range activities {
		ay, am, ad := a.Timestamp.Date()
		if ay == year && am == month && ad == day {
			result = append(result, a)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Timestamp.Before(result[j].Timestamp)
	})
	return result
}

// ForRange returns activities within the date range, inclusive on both
// ends. start must not be after end.
func ForRange(activities []Activity, start, end time.Time) ([]Activity, error) {
	startDay := truncateToDay(start)
	endDay := truncateToDay(end)
	if startDay.After(endDay) {
		return nil, fmt.Errorf("start date %s must be before or equal to end date %s",
			startDay.Format("2006-01-02"), endDay.Format("2006-01-02"))
	}

	var result []Activity
	for _, a := range activities {
		day := truncateToDay(a.Timestamp)
		if day.Before(startDay) || day.After(endDay) {
			continue
		}
		result = append(result, a)
	}
	return result, nil
}

func truncateToDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// GroupBy selects the aggregation period for Timeline.
type GroupBy string

const (
	// GroupByDay aggregates per calendar day.
	GroupByDay GroupBy = "day"

	// GroupByWeek aggregates per ISO week.
	GroupByWeek GroupBy = "week"

	// GroupByMonth aggregates per calendar month.
	GroupByMonth GroupBy = "month"
)

// TimelinePoint is one aggregated period for one activity.
type TimelinePoint struct {
	// Period labels the bucket ("2025-01-15", "2025-W03", "2025-01").
	Period string

	// Quantity is the summed quantity for the period.
	Quantity float64
}

// Timeline aggregates one activity's quantities over time periods,
// sorted chronologically. The activity must exist in the data.
func Timeline(activities []Activity, name Category, groupBy GroupBy) ([]TimelinePoint, error) {
	found := false
	buckets := make(map[string]float64)
	for _, a := range activities {
		if a.Name != name {
			continue
		}
		found = true
		label, err := periodLabel(a.Timestamp, groupBy)
		if err != nil {
			return nil, err
		}
		buckets[label] += a.Quantity
	}
	if !found {
		return nil, fmt.Errorf("activity %q not found in data", name)
	}

	points := make([]TimelinePoint, 0, len(buckets))
	for label, quantity := range buckets {
		points = append(points, TimelinePoint{Period: label, Quantity: quantity})
	}
	sort.Slice(points, func(i, j int) bool {
		return points[i].Period < points[j].Period
	})
	return points, nil
}

func periodLabel(t time.Time, groupBy GroupBy) (string, error) {
	switch groupBy {
	case GroupByDay:
		return t.Format("2006-01-02"), nil
	case GroupByWeek:
		year, week := t.ISOWeek()
		return fmt.Sprintf("%04d-W%02d", year, week), nil
	case GroupByMonth:
		return t.Format("2006-01"), nil
	default:
		return "", fmt.Errorf("group by must be day, week, or month, got %q", groupBy)
	}
}

// FormatSummary renders activities as a human-readable itemized list.
func FormatSummary(activities []Activity) string {
	if len(activities) == 0 {
		return "No activities logged yet."
	}

	var builder strings.Builder
	for i, a := range activities {
		if i > 0 {
			builder.WriteByte('\n')
		}
		line := fmt.Sprintf("- %s: %.1f %s", a.Name, a.Quantity, a.Unit)
		builder.WriteString(strings.TrimSpace(line))
	}
	return builder.String()
}
