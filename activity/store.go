package activity

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// CSV columns, in file order. The date column is derived from the
// timestamp; it exists so the file stays easy to eyeball and to import
// into a spreadsheet.
var csvHeader = []string{"timestamp", "activity", "quantity", "unit", "date"}

// Legacy files written by the original Norwegian version used these
// column names.
var legacyColumns = map[string]string{
	"tidspunkt": "timestamp",
	"aktivitet": "activity",
	"mengde":    "quantity",
	"enhet":     "unit",
}

// Store provides access to the activity CSV log.
type Store struct {
	path string
}

// NewStore returns a store backed by the given CSV file path.
// The file does not need to exist yet.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Append writes activities to the end of the CSV log, creating the
// file with a header row when it doesn't exist or is empty. Records
// without a timestamp get stamped with now.
func (s *Store) Append(activities []Activity, now time.Time) error {
	if len(activities) == 0 {
		return nil
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create activities directory %s: %w", dir, err)
	}

	needsHeader := true
	if info, err := os.Stat(s.path); err == nil && info.Size() > 0 {
		needsHeader = false
	}

	file, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open activities file %s: %w", s.path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if needsHeader {
		if err := writer.Write(csvHeader); err != nil {
			return fmt.Errorf("write activities header: %w", err)
		}
	}
	for _, a := range activities {
		timestamp := a.Timestamp
		if timestamp.IsZero() {
			timestamp = now
		}
		record := []string{
			timestamp.Format(time.RFC3339),
			string(a.Name),
			strconv.FormatFloat(a.Quantity, 'f', -1, 64),
			a.Unit,
			timestamp.Format("2006-01-02"),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write activity record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush activities file: %w", err)
	}
	return file.Close()
}

// Load reads and cleans the activity log. Legacy Norwegian column
// names are accepted, and rows with an unparseable timestamp or
// quantity are dropped rather than failing the whole load; the log
// is append-only and a single bad row shouldn't hide the rest.
// A missing file is an empty log, not an error.
func (s *Store) Load() ([]Activity, error) {
	file, err := os.Open(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open activities file %s: %w", s.path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse activities file %s: %w", s.path, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	columns := columnIndexes(rows[0])

	var activities []Activity
	for _, row := range rows[1:] {
		a, ok := parseRow(row, columns)
		if !ok {
			continue
		}
		activities = append(activities, a)
	}
	return activities, nil
}

// columnIndexes maps logical column names to positions in the header
// row, translating legacy names.
func columnIndexes(header []string) map[string]int {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		if english, ok := legacyColumns[name]; ok {
			name = english
		}
		columns[name] = i
	}
	return columns
}

func parseRow(row []string, columns map[string]int) (Activity, bool) {
	field := func(name string) string {
		i, ok := columns[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	timestamp, err := time.Parse(time.RFC3339, field("timestamp"))
	if err != nil {
		return Activity{}, false
	}
	quantity, err := strconv.ParseFloat(field("quantity"), 64)
	if err != nil {
		return Activity{}, false
	}

	return Activity{
		Timestamp: timestamp,
		Name:      Category(field("activity")),
		Quantity:  quantity,
		Unit:      field("unit"),
	}, true
}
