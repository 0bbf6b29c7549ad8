package ui

import (
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/term"
)

const tableCellMaxWidth = 50
const tableCellEllipsis = "..."
const tableColumnGap = 2
const fallbackViewportWidth = 120

// tableViewportWidth reports the width tables may occupy. Overridable
// in tests.
var tableViewportWidth = detectViewportWidth

func detectViewportWidth() int {
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	return fallbackViewportWidth
}

// TableBuilder collects rows and renders a formatted table.
type TableBuilder struct {
	headers []string
	rows    [][]string
}

// NewTableBuilder returns a builder with preallocated rows.
func NewTableBuilder(headers []string, capacity int) *TableBuilder {
	return &TableBuilder{headers: headers, rows: make([][]string, 0, capacity)}
}

// AddRow appends a row to the table.
func (builder *TableBuilder) AddRow(row []string) {
	builder.rows = append(builder.rows, row)
}

// String renders the table output.
func (builder *TableBuilder) String() string {
	return FormatTable(builder.headers, builder.rows)
}

// FormatTable renders headers and rows as an aligned table. Every line
// is padded to the same total width; when the natural width exceeds
// the viewport, the widest column shrinks and its cells are truncated.
func FormatTable(headers []string, rows [][]string) string {
	normalizedHeaders := make([]string, len(headers))
	for i, header := range headers {
		normalizedHeaders[i] = normalizeTableCell(header)
	}

	normalizedRows := make([][]string, 0, len(rows))
	for _, row := range rows {
		normalizedRow := make([]string, len(row))
		for i, cell := range row {
			normalizedRow[i] = normalizeTableCell(cell)
		}
		normalizedRows = append(normalizedRows, normalizedRow)
	}

	widths := columnWidths(normalizedHeaders, normalizedRows)
	fitColumnsToViewport(widths, tableViewportWidth())

	var builder strings.Builder
	writeRow := func(row []string) {
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			if displayWidth(cell) > widths[i] {
				cell = truncateToWidth(cell, widths[i])
			}
			builder.WriteString(cell)
			padding := widths[i] - displayWidth(cell)
			if i < len(row)-1 {
				padding += tableColumnGap
			}
			builder.WriteString(strings.Repeat(" ", padding))
		}
		builder.WriteByte('\n')
	}

	writeRow(normalizedHeaders)
	for _, row := range normalizedRows {
		writeRow(row)
	}

	return builder.String()
}

func columnWidths(headers []string, rows [][]string) []int {
	widths := make([]int, len(headers))
	for i, header := range headers {
		widths[i] = displayWidth(header)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			if width := displayWidth(cell); width > widths[i] {
				widths[i] = width
			}
		}
	}
	return widths
}

// fitColumnsToViewport shrinks the widest column until the table fits.
func fitColumnsToViewport(widths []int, viewport int) {
	if len(widths) == 0 || viewport <= 0 {
		return
	}
	total := func() int {
		sum := tableColumnGap * (len(widths) - 1)
		for _, width := range widths {
			sum += width
		}
		return sum
	}
	minWidth := displayWidth(tableCellEllipsis) + 1
	for total() > viewport {
		widest := 0
		for i, width := range widths {
			if width > widths[widest] {
				widest = i
			}
		}
		if widths[widest] <= minWidth {
			return
		}
		widths[widest]--
	}
}

// TruncateTableCell limits cell width while preserving visible characters.
func TruncateTableCell(value string) string {
	value = normalizeTableCell(value)
	if displayWidth(value) <= tableCellMaxWidth {
		return value
	}
	return truncateToWidth(value, tableCellMaxWidth)
}

func truncateToWidth(value string, width int) string {
	max := width - displayWidth(tableCellEllipsis)
	if max <= 0 {
		return tableCellEllipsis
	}
	return truncateVisible(value, max) + tableCellEllipsis
}

func displayWidth(value string) int {
	return utf8.RuneCountInString(stripANSICodes(value))
}

func normalizeTableCell(value string) string {
	return strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", "\t", " ").Replace(value)
}

// truncateVisible keeps at most max visible runes, passing ANSI escape
// sequences through uncounted.
func truncateVisible(value string, max int) string {
	if max <= 0 {
		return ""
	}

	var builder strings.Builder
	visible := 0
	for i := 0; i < len(value); {
		if value[i] == '\x1b' {
			end := i + 1
			if end < len(value) && value[end] == '[' {
				end++
				for end < len(value) && value[end] != 'm' {
					end++
				}
				if end < len(value) {
					end++
				}
				builder.WriteString(value[i:end])
				i = end
				continue
			}
		}
		if visible >= max {
			break
		}
		r, size := utf8.DecodeRuneInString(value[i:])
		if r == utf8.RuneError && size == 1 {
			builder.WriteByte(value[i])
			visible++
			i++
			continue
		}
		builder.WriteRune(r)
		visible++
		i += size
	}
	return builder.String()
}

func stripANSICodes(input string) string {
	var builder strings.Builder
	inEscape := false
	for i := 0; i < len(input); i++ {
		char := input[i]
		if inEscape {
			if char == 'm' {
				inEscape = false
			}
			continue
		}
		if char == '\x1b' {
			inEscape = true
			continue
		}
		builder.WriteByte(char)
	}
	return builder.String()
}
