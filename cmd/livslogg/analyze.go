package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/livslogg/livslogg/activity"
	"github.com/livslogg/livslogg/internal/markdown"
	"github.com/livslogg/livslogg/internal/ui"
	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze the activity log",
	Long: `Analyze the activity log.

With no flags, prints overall statistics. --totals sums quantities per
activity, --today shows today's entries, and --activity with --by
aggregates one activity over time. --report renders everything as a
formatted markdown report.`,
	Args: cobra.NoArgs,
	RunE: runAnalyze,
}

var (
	analyzeTotals   bool
	analyzeToday    bool
	analyzeActivity string
	analyzeBy       string
	analyzeReport   bool
	analyzeJSON     bool
)

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().BoolVar(&analyzeTotals, "totals", false, "Show summed quantities per activity")
	analyzeCmd.Flags().BoolVar(&analyzeToday, "today", false, "Show today's entries")
	analyzeCmd.Flags().StringVarP(&analyzeActivity, "activity", "a", "", "Aggregate one activity over time")
	analyzeCmd.Flags().StringVar(&analyzeBy, "by", "day", "Aggregation period (day, week, month)")
	analyzeCmd.Flags().BoolVar(&analyzeReport, "report", false, "Render a markdown report")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "Output as JSON")
}

const reportLineWidth = 80

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	activities, err := openActivityStore(cfg).Load()
	if err != nil {
		return err
	}
	now := time.Now()

	switch {
	case analyzeActivity != "":
		return analyzeTimeline(activities)
	case analyzeToday:
		return analyzeDay(activities, now)
	case analyzeTotals:
		return analyzeTotalsOutput(activities)
	case analyzeReport:
		return analyzeFullReport(activities, now)
	default:
		return analyzeSummary(activities)
	}
}

func analyzeTimeline(activities []activity.Activity) error {
	points, err := activity.Timeline(activities, activity.Category(analyzeActivity), activity.GroupBy(analyzeBy))
	if err != nil {
		return err
	}
	if analyzeJSON {
		return encodeJSONToStdout(points)
	}

	rows := make([][]string, 0, len(points))
	for _, point := range points {
		rows = append(rows, []string{point.Period, strconv.FormatFloat(point.Quantity, 'f', -1, 64)})
	}
	fmt.Print(ui.FormatTable([]string{"PERIOD", "QUANTITY"}, rows))
	return nil
}

func analyzeDay(activities []activity.Activity, now time.Time) error {
	today := activity.ForDate(activities, now)
	if analyzeJSON {
		return encodeJSONToStdout(today)
	}
	fmt.Println(activity.FormatSummary(today))
	return nil
}

func analyzeTotalsOutput(activities []activity.Activity) error {
	totals := activity.Totals(activities)
	if analyzeJSON {
		return encodeJSONToStdout(totals)
	}
	if len(totals) == 0 {
		fmt.Println("No activities logged yet.")
		return nil
	}

	rows := make([][]string, 0, len(totals))
	for _, total := range totals {
		rows = append(rows, []string{string(total.Name), strconv.FormatFloat(total.Quantity, 'f', -1, 64)})
	}
	fmt.Print(ui.FormatTable([]string{"ACTIVITY", "TOTAL"}, rows))
	return nil
}

func analyzeSummary(activities []activity.Activity) error {
	summary := activity.Summarize(activities)
	if analyzeJSON {
		return encodeJSONToStdout(summary)
	}
	if summary.TotalEntries == 0 {
		fmt.Println("No activities logged yet.")
		return nil
	}

	fmt.Printf("Entries:     %d\n", summary.TotalEntries)
	fmt.Printf("Activities:  %d\n", summary.UniqueActivities)
	fmt.Printf("First entry: %s\n", summary.FirstEntry.Format("2006-01-02 15:04"))
	fmt.Printf("Last entry:  %s\n", summary.LastEntry.Format("2006-01-02 15:04"))
	fmt.Printf("Days:        %d\n", summary.DaysTracked)
	return nil
}

// analyzeFullReport renders the whole log as formatted markdown.
func analyzeFullReport(activities []activity.Activity, now time.Time) error {
	summary := activity.Summarize(activities)
	if summary.TotalEntries == 0 {
		fmt.Println("No activities logged yet.")
		return nil
	}

	var doc strings.Builder
	doc.WriteString("# Activity report\n\n")
	fmt.Fprintf(&doc, "%d entries across %d activities, %d days tracked (%s to %s).\n\n",
		summary.TotalEntries, summary.UniqueActivities, summary.DaysTracked,
		summary.FirstEntry.Format("2006-01-02"), summary.LastEntry.Format("2006-01-02"))

	doc.WriteString("## Totals\n\n")
	for _, total := range activity.Totals(activities) {
		fmt.Fprintf(&doc, "- **%s**: %s (%d entries)\n",
			total.Name, strconv.FormatFloat(total.Quantity, 'f', -1, 64), summary.Counts[total.Name])
	}

	today := activity.ForDate(activities, now)
	doc.WriteString("\n## Today\n\n")
	if len(today) == 0 {
		doc.WriteString("Nothing logged today.\n")
	} else {
		for _, a := range today {
			fmt.Fprintf(&doc, "- %s %s: %s %s\n",
				a.Timestamp.Format("15:04"), a.Name,
				strconv.FormatFloat(a.Quantity, 'f', -1, 64), a.Unit)
		}
	}

	fmt.Print(string(markdown.SafeRender(reportLineWidth, 0, []byte(doc.String()))))
	return nil
}
