package activity

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestStoreAppendAndLoad(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "livslogg.csv"))
	now := time.Date(2025, time.January, 15, 9, 30, 0, 0, time.UTC)

	first := []Activity{
		{Name: CategoryWater, Quantity: 500, Unit: "ml"},
		{Name: CategoryWalk, Quantity: 2.5, Unit: "km"},
	}
	if err := store.Append(first, now); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := store.Append([]Activity{{Name: CategoryFood, Quantity: 1, Unit: "meal"}}, now.Add(time.Hour)); err != nil {
		t.Fatalf("second Append: %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(loaded) != 3 {
		t.Fatalf("got %d activities, want 3", len(loaded))
	}
	if loaded[0].Name != CategoryWater || loaded[0].Quantity != 500 || loaded[0].Unit != "ml" {
		t.Errorf("first record = %+v", loaded[0])
	}
	if !loaded[0].Timestamp.Equal(now) {
		t.Errorf("timestamp = %s, want %s", loaded[0].Timestamp, now)
	}
	if !loaded[2].Timestamp.Equal(now.Add(time.Hour)) {
		t.Errorf("third timestamp = %s, want %s", loaded[2].Timestamp, now.Add(time.Hour))
	}

	data, err := os.ReadFile(store.Path())
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 4 {
		t.Fatalf("file has %d lines, want header plus 3 records", len(lines))
	}
	if lines[0] != "timestamp,activity,quantity,unit,date" {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.HasSuffix(lines[1], ",2025-01-15") {
		t.Errorf("record lacks derived date column: %q", lines[1])
	}
}

func TestStoreAppendCreatesDirectory(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "nested", "dir", "livslogg.csv"))
	err := store.Append([]Activity{{Name: CategoryWater, Quantity: 1, Unit: "glass"}}, time.Now())
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
}

func TestStoreLoadMissingFile(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "absent.csv"))
	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded != nil {
		t.Errorf("got %v, want nil", loaded)
	}
}

func TestStoreLoadLegacyColumns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "livslogg.csv")
	legacy := strings.Join([]string{
		"tidspunkt,aktivitet,mengde,enhet",
		"2024-06-01T08:00:00Z,Water,500,ml",
		"2024-06-01T12:00:00Z,Walk,3.2,km",
	}, "\n") + "\n"
	if err := os.WriteFile(path, []byte(legacy), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	loaded, err := NewStore(path).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("got %d activities, want 2", len(loaded))
	}
	if loaded[1].Name != CategoryWalk || loaded[1].Quantity != 3.2 {
		t.Errorf("second record = %+v", loaded[1])
	}
}

func TestStoreLoadDropsBadRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "livslogg.csv")
	mixed := strings.Join([]string{
		"timestamp,activity,quantity,unit,date",
		"2024-06-01T08:00:00Z,Water,500,ml,2024-06-01",
		"not-a-timestamp,Water,500,ml,2024-06-01",
		"2024-06-01T09:00:00Z,Water,lots,ml,2024-06-01",
		"2024-06-01T10:00:00Z,Walk,2,km,2024-06-01",
	}, "\n") + "\n"
	if err := os.WriteFile(path, []byte(mixed), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	loaded, err := NewStore(path).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("got %d activities, want 2 (bad rows dropped)", len(loaded))
	}
}
