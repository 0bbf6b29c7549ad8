package web

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/livslogg/livslogg/activity"
	"github.com/livslogg/livslogg/logbook"
	"github.com/livslogg/livslogg/task"
)

var testNow = time.Date(2025, time.January, 15, 9, 0, 0, 0, time.UTC)

func newTestHandler(t *testing.T) (*Handler, *task.Store, *activity.Store) {
	t.Helper()
	dir := t.TempDir()
	activities := activity.NewStore(filepath.Join(dir, "livslogg.csv"))
	tasks := task.NewStore(filepath.Join(dir, "tasks.jsonl"))
	book := logbook.New(logbook.Options{
		Activities: activities,
		Tasks:      tasks,
		Now:        func() time.Time { return testNow },
	})
	handler := NewHandler(Options{
		Logbook:    book,
		Activities: activities,
		Tasks:      tasks,
		Now:        func() time.Time { return testNow },
	})
	return handler, tasks, activities
}

func get(t *testing.T, handler http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, path, nil))
	return recorder
}

func postForm(t *testing.T, handler http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	request := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

func TestRootRedirectsToLog(t *testing.T) {
	handler, _, _ := newTestHandler(t)
	response := get(t, handler, "/")
	if response.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", response.Code)
	}
	if location := response.Header().Get("Location"); location != "/web/log" {
		t.Errorf("location = %q", location)
	}
}

func TestLogPageRendersForm(t *testing.T) {
	handler, _, _ := newTestHandler(t)
	response := get(t, handler, "/web/log")
	if response.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", response.Code)
	}
	body := response.Body.String()
	if !strings.Contains(body, `action="/web/log/submit"`) {
		t.Error("log form missing")
	}
	if !strings.Contains(body, "Nothing logged today.") {
		t.Error("empty state missing")
	}
}

func TestLogSubmitSavesTaskAndFlashes(t *testing.T) {
	handler, tasks, _ := newTestHandler(t)

	response := postForm(t, handler, "/web/log/submit", url.Values{"text": {"buy milk tomorrow !high"}})
	if response.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", response.Code)
	}

	stored, err := tasks.List(task.ListFilter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(stored) != 1 || stored[0].Title != "buy milk" {
		t.Fatalf("stored = %v", stored)
	}

	followUp := get(t, handler, "/web/log")
	if !strings.Contains(followUp.Body.String(), "Saved task") {
		t.Error("flash message missing after redirect")
	}
	again := get(t, handler, "/web/log")
	if strings.Contains(again.Body.String(), "Saved task") {
		t.Error("flash message survived a second load")
	}
}

func TestLogSubmitRejectsEmpty(t *testing.T) {
	handler, _, _ := newTestHandler(t)
	postForm(t, handler, "/web/log/submit", url.Values{"text": {"   "}})
	followUp := get(t, handler, "/web/log")
	if !strings.Contains(followUp.Body.String(), logbook.ErrEmptyEntry.Error()) {
		t.Error("error flash missing")
	}
}

func TestTasksPageListsAndSelects(t *testing.T) {
	handler, tasks, _ := newTestHandler(t)
	created, err := tasks.Create("water the plants", testNow, task.CreateOptions{})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	response := get(t, handler, "/web/tasks")
	if response.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", response.Code)
	}
	body := response.Body.String()
	if !strings.Contains(body, "water the plants") {
		t.Error("task title missing from list")
	}
	if !strings.Contains(body, created.ID) {
		t.Error("first task not auto-selected")
	}
}

func TestTasksCreateParsesEntryText(t *testing.T) {
	handler, tasks, _ := newTestHandler(t)
	response := postForm(t, handler, "/web/tasks/create", url.Values{"text": {"call dentist friday !urgent #health"}})
	if response.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", response.Code)
	}

	stored, err := tasks.List(task.ListFilter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(stored) != 1 {
		t.Fatalf("got %d tasks, want 1", len(stored))
	}
	if stored[0].Title != "call dentist" || stored[0].Priority != task.PriorityUrgent {
		t.Errorf("stored = %+v", stored[0])
	}
	if stored[0].DueAt == nil {
		t.Error("weekday expression not resolved")
	}
}

func TestTasksCompleteRedirectsToSuccessor(t *testing.T) {
	handler, tasks, _ := newTestHandler(t)
	due := testNow.AddDate(0, 0, 1)
	created, err := tasks.Create("pay rent", testNow, task.CreateOptions{
		DueAt:      &due,
		Recurrence: task.RecurrenceMonthly,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	response := postForm(t, handler, "/web/tasks/complete?id="+created.ID, nil)
	if response.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", response.Code)
	}
	location := response.Header().Get("Location")
	if location == "/web/tasks?id="+created.ID {
		t.Error("redirect did not target the recurrence successor")
	}
	if !strings.HasPrefix(location, "/web/tasks?id=") {
		t.Errorf("location = %q", location)
	}
}

func TestActivitiesPageShowsTotals(t *testing.T) {
	handler, _, activities := newTestHandler(t)
	err := activities.Append([]activity.Activity{
		{Name: activity.CategoryWater, Quantity: 500, Unit: "ml"},
		{Name: activity.CategoryWater, Quantity: 300, Unit: "ml"},
	}, testNow)
	if err != nil {
		t.Fatalf("Append: %v", err)
	}

	response := get(t, handler, "/web/activities")
	if response.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", response.Code)
	}
	body := response.Body.String()
	if !strings.Contains(body, "Water") || !strings.Contains(body, "800") {
		t.Error("totals missing from page")
	}
}

func TestMethodNotAllowed(t *testing.T) {
	handler, _, _ := newTestHandler(t)
	response := postForm(t, handler, "/web/log", nil)
	if response.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", response.Code)
	}
}
