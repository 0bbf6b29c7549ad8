package task

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const maxJSONLineBytes = 1024 * 1024

// Store provides access to the task data file.
//
// Tasks live in a JSONL file, one task per line. The file is small
// (a personal tracker, not a database) so every operation reads and
// rewrites it whole. Writes go through a temp file and rename so a
// crash never leaves a half-written store behind.
type Store struct {
	path string
}

// NewStore returns a store backed by the given JSONL file path.
// The file does not need to exist yet.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) readTasks() ([]Task, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read tasks file %s: %w", s.path, err)
	}

	var tasks []Task
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), maxJSONLineBytes)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var t Task
		if err := json.Unmarshal([]byte(line), &t); err != nil {
			return nil, fmt.Errorf("parse task at %s:%d: %w", s.path, lineNum, err)
		}
		tasks = append(tasks, t)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan tasks file %s: %w", s.path, err)
	}
	return tasks, nil
}

func (s *Store) writeTasks(tasks []Task) error {
	var buf bytes.Buffer
	for _, t := range tasks {
		line, err := json.Marshal(t)
		if err != nil {
			return fmt.Errorf("encode task %s: %w", t.ID, err)
		}
		buf.Write(line)
		buf.WriteByte('\n')
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create tasks directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp tasks file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp tasks file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp tasks file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace tasks file: %w", err)
	}
	return nil
}

// resolveTaskIDs resolves full IDs or unique prefixes against the
// stored tasks. A prefix that matches several tasks is ambiguous.
func resolveTaskIDs(inputs []string, tasks []Task) ([]string, error) {
	resolved := make([]string, 0, len(inputs))
	for _, input := range inputs {
		normalized := strings.ToLower(strings.TrimSpace(input))
		if normalized == "" {
			return nil, fmt.Errorf("%w: empty id", ErrTaskNotFound)
		}

		var matches []string
		for _, t := range tasks {
			if t.ID == normalized {
				matches = []string{t.ID}
				break
			}
			if strings.HasPrefix(t.ID, normalized) {
				matches = append(matches, t.ID)
			}
		}

		switch len(matches) {
		case 0:
			return nil, fmt.Errorf("%w: %s", ErrTaskNotFound, input)
		case 1:
			resolved = append(resolved, matches[0])
		default:
			return nil, fmt.Errorf("%w: %s matches %s", ErrAmbiguousTaskIDPrefix, input, strings.Join(matches, ", "))
		}
	}
	return resolved, nil
}
