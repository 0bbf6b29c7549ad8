package logbook

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/livslogg/livslogg/activity"
	"github.com/livslogg/livslogg/ai"
	internalstrings "github.com/livslogg/livslogg/internal/strings"
	"github.com/livslogg/livslogg/internal/ui"
	"github.com/livslogg/livslogg/task"
)

const (
	lineWidth      = 80
	documentIndent = 4
)

// Logger captures structured log-entry processing events.
type Logger interface {
	Extraction(ExtractionLog)
	Fallback(FallbackLog)
	Saved(SavedLog)
}

// ExtractionLog captures the outcome of an extraction request.
type ExtractionLog struct {
	Model      string
	Accepted   int
	Rejections []ai.Rejection
}

// FallbackLog captures why the heuristic path was taken.
type FallbackLog struct {
	Reason string
}

// SavedLog captures what was persisted for an entry.
type SavedLog struct {
	Activities []activity.Activity
	Tasks      []*task.Task
	Task       *task.Task
	Degraded   bool
}

type noopLogger struct{}

func (noopLogger) Extraction(ExtractionLog) {}
func (noopLogger) Fallback(FallbackLog)     {}
func (noopLogger) Saved(SavedLog)           {}

// ConsoleLogger writes formatted log output.
type ConsoleLogger struct {
	writer      io.Writer
	headerStyle lipgloss.Style
	dimStyle    lipgloss.Style
	started     bool
}

// NewConsoleLogger builds a styled logger for interactive output.
func NewConsoleLogger(writer io.Writer) *ConsoleLogger {
	if writer == nil {
		writer = io.Discard
	}
	return &ConsoleLogger{
		writer:      writer,
		headerStyle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("33")),
		dimStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	}
}

// Extraction logs an extraction outcome.
func (logger *ConsoleLogger) Extraction(log ExtractionLog) {
	if logger == nil {
		return
	}
	lines := []string{
		formatLogLabel(logger.headerStyle.Render("Extraction:"), documentIndent),
		formatLogBody(fmt.Sprintf("model %s accepted %d candidate(s)", log.Model, log.Accepted), documentIndent+4),
	}
	for _, rejection := range log.Rejections {
		lines = append(lines, formatLogBody(
			fmt.Sprintf("rejected candidate %d: %s", rejection.Index, rejection.Reason),
			documentIndent+4))
	}
	logger.writeBlock(lines...)
}

// Fallback logs a switch to the heuristic path.
func (logger *ConsoleLogger) Fallback(log FallbackLog) {
	if logger == nil {
		return
	}
	logger.writeBlock(
		formatLogLabel(logger.headerStyle.Render("Heuristic fallback:"), documentIndent),
		formatLogBody(log.Reason, documentIndent+4),
	)
}

// Saved logs the persisted records for an entry.
func (logger *ConsoleLogger) Saved(log SavedLog) {
	if logger == nil {
		return
	}
	lines := []string{formatLogLabel(logger.headerStyle.Render("Saved:"), documentIndent)}
	if len(log.Activities) > 0 {
		rows := make([][]string, 0, len(log.Activities))
		for _, act := range log.Activities {
			rows = append(rows, []string{
				string(act.Name),
				strconv.FormatFloat(act.Quantity, 'f', -1, 64),
				act.Unit,
			})
		}
		body := ui.FormatTable([]string{"Activity", "Quantity", "Unit"}, rows)
		lines = append(lines, formatLogBody(body, documentIndent+4))
	}
	for _, t := range log.Tasks {
		lines = append(lines, formatLogBody(taskSummary(t), documentIndent+4))
	}
	if log.Task != nil {
		lines = append(lines, formatLogBody(taskSummary(log.Task), documentIndent+4))
		if log.Degraded {
			lines = append(lines, formatLogBody(
				logger.dimStyle.Render("stored as-is; no structure recognized"),
				documentIndent+4))
		}
	}
	logger.writeBlock(lines...)
}

func taskSummary(t *task.Task) string {
	summary := fmt.Sprintf("task %q (%s, %d points)", t.Title, t.Priority, t.Points)
	if t.DueAt != nil {
		summary += " due " + t.DueAt.Format("2006-01-02 15:04")
	}
	return summary
}

func (logger *ConsoleLogger) writeBlock(lines ...string) {
	if len(lines) == 0 {
		return
	}
	if logger.started {
		fmt.Fprintln(logger.writer)
	}
	logger.started = true
	for _, line := range lines {
		fmt.Fprintln(logger.writer, line)
	}
}

func formatLogLabel(label string, indent int) string {
	if strings.TrimSpace(label) == "" {
		return ""
	}
	return indentBlock(label, indent)
}

func formatLogBody(body string, indent int) string {
	body = strings.TrimRight(body, "\r\n")
	if strings.TrimSpace(body) == "" {
		body = "-"
	}
	wrapWidth := lineWidth - indent
	if wrapWidth < 1 {
		wrapWidth = 1
	}
	if !strings.Contains(body, "\n") {
		body = wordwrap.String(body, wrapWidth)
	}
	return indentBlock(body, indent)
}

func indentBlock(value string, spaces int) string {
	value = internalstrings.TrimTrailingNewlines(value)
	if spaces <= 0 {
		return value
	}
	prefix := strings.Repeat(" ", spaces)
	lines := strings.Split(value, "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}
