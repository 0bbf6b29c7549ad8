// Package web serves the livslogg dashboard: a log-entry form, the
// task list, and activity summaries, rendered server-side with no
// client script.
package web

import (
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/livslogg/livslogg/activity"
	"github.com/livslogg/livslogg/logbook"
	"github.com/livslogg/livslogg/task"
)

// Options configures the web handler.
type Options struct {
	Logbook    *logbook.Logbook
	Activities *activity.Store
	Tasks      *task.Store

	// Now is injected for tests. Defaults to time.Now.
	Now func() time.Time
}

// Handler serves the dashboard.
type Handler struct {
	logbook    *logbook.Logbook
	activities *activity.Store
	tasks      *task.Store
	now        func() time.Time
	mux        *http.ServeMux
	templates  *templateWrapper

	mu        sync.Mutex
	logDraft  *logFormDraft
	taskDraft *taskFormDraft
}

// NewHandler creates a new web handler.
func NewHandler(opts Options) *Handler {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	handler := &Handler{
		logbook:    opts.Logbook,
		activities: opts.Activities,
		tasks:      opts.Tasks,
		now:        now,
		templates:  newTemplateWrapper(),
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/", handler.handleRoot)
	mux.HandleFunc("/web/log", handler.handleLog)
	mux.HandleFunc("/web/log/submit", handler.handleLogSubmit)
	mux.HandleFunc("/web/tasks", handler.handleTasks)
	mux.HandleFunc("/web/tasks/create", handler.handleTasksCreate)
	mux.HandleFunc("/web/tasks/start", handler.handleTasksStart)
	mux.HandleFunc("/web/tasks/complete", handler.handleTasksComplete)
	mux.HandleFunc("/web/activities", handler.handleActivities)
	handler.mux = mux
	return handler
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

type templateWrapper struct {
	tmpl *template.Template
}

func newTemplateWrapper() *templateWrapper {
	return &templateWrapper{tmpl: newTemplates()}
}

func (tw *templateWrapper) Render(w http.ResponseWriter, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_ = tw.tmpl.ExecuteTemplate(w, "page", data)
}

type pageData struct {
	ActiveTab string

	// Log tab.
	LogText    string
	LogMessage string
	LogError   string

	// Tasks tab.
	Tasks          []task.Task
	SelectedTask   *task.Task
	SelectedTaskID string
	TaskError      string

	// Activities tab.
	Totals        []activity.Total
	Summary       activity.Summary
	TodayEntries  []activity.Activity
	ActivityError string
}

type logFormDraft struct {
	text    string
	message string
	err     string
}

type taskFormDraft struct {
	id  string
	err string
}

func (h *Handler) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	http.Redirect(w, r, "/web/log", http.StatusSeeOther)
}

func (h *Handler) handleLog(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}

	data := pageData{ActiveTab: "log"}
	if draft := h.consumeLogDraft(); draft != nil {
		data.LogText = draft.text
		data.LogMessage = draft.message
		data.LogError = draft.err
	}

	all, err := h.activities.Load()
	if err != nil {
		data.ActivityError = err.Error()
	} else {
		data.TodayEntries = activity.ForDate(all, h.now())
	}
	h.templates.Render(w, data)
}

func (h *Handler) handleLogSubmit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}
	if err := r.ParseForm(); err != nil {
		h.setLogDraft(logFormDraft{err: "invalid form input"})
		http.Redirect(w, r, "/web/log", http.StatusSeeOther)
		return
	}
	text := r.FormValue("text")

	result, err := h.logbook.Log(r.Context(), text)
	if err != nil {
		h.setLogDraft(logFormDraft{text: text, err: err.Error()})
		http.Redirect(w, r, "/web/log", http.StatusSeeOther)
		return
	}

	h.setLogDraft(logFormDraft{message: describeResult(result)})
	http.Redirect(w, r, "/web/log", http.StatusSeeOther)
}

func describeResult(result logbook.Result) string {
	if result.Task != nil {
		message := fmt.Sprintf("Saved task %q.", result.Task.Title)
		if result.Fallback {
			message += " (extraction unavailable; parsed heuristically)"
		}
		return message
	}
	if len(result.Tasks) > 0 {
		titles := make([]string, 0, len(result.Tasks))
		for _, t := range result.Tasks {
			titles = append(titles, fmt.Sprintf("%q", t.Title))
		}
		return fmt.Sprintf("Saved %d tasks: %s.", len(titles), strings.Join(titles, ", "))
	}
	names := make([]string, 0, len(result.Activities))
	for _, act := range result.Activities {
		names = append(names, string(act.Name))
	}
	return fmt.Sprintf("Logged %d activities: %s.", len(names), strings.Join(names, ", "))
}

func (h *Handler) handleTasks(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}

	data := pageData{ActiveTab: "tasks"}
	tasks, err := h.tasks.List(task.ListFilter{})
	if err != nil {
		data.TaskError = err.Error()
	}
	data.Tasks = tasks

	selectedID := trimmedQueryValue(r, "id")
	selected := selectTask(tasks, selectedID)
	if selected == nil && len(tasks) > 0 {
		selected = &tasks[0]
		selectedID = selected.ID
	}
	data.SelectedTask = selected
	data.SelectedTaskID = selectedID

	if draft := h.consumeTaskDraft(selectedID); draft != nil && draft.err != "" {
		data.TaskError = draft.err
	}
	h.templates.Render(w, data)
}

func (h *Handler) handleTasksCreate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}
	if err := r.ParseForm(); err != nil {
		h.setTaskDraft(taskFormDraft{err: "invalid form input"})
		http.Redirect(w, r, "/web/tasks", http.StatusSeeOther)
		return
	}

	created, _, err := h.logbook.AddTask(r.FormValue("text"))
	if err != nil {
		h.setTaskDraft(taskFormDraft{err: err.Error()})
		http.Redirect(w, r, "/web/tasks", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, taskPath(created.ID), http.StatusSeeOther)
}

func (h *Handler) handleTasksStart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}
	taskID := trimmedQueryValue(r, "id")
	if taskID == "" {
		h.setTaskDraft(taskFormDraft{err: "task id is required"})
		http.Redirect(w, r, "/web/tasks", http.StatusSeeOther)
		return
	}
	if _, err := h.tasks.Start([]string{taskID}, h.now()); err != nil {
		h.setTaskDraft(taskFormDraft{id: taskID, err: err.Error()})
	}
	http.Redirect(w, r, taskPath(taskID), http.StatusSeeOther)
}

func (h *Handler) handleTasksComplete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}
	taskID := trimmedQueryValue(r, "id")
	if taskID == "" {
		h.setTaskDraft(taskFormDraft{err: "task id is required"})
		http.Redirect(w, r, "/web/tasks", http.StatusSeeOther)
		return
	}
	results, err := h.tasks.Complete([]string{taskID}, h.now())
	if err != nil {
		h.setTaskDraft(taskFormDraft{id: taskID, err: err.Error()})
		http.Redirect(w, r, taskPath(taskID), http.StatusSeeOther)
		return
	}
	// Jump to the recurrence successor when one was generated.
	if len(results) == 1 && results[0].Successor != nil {
		http.Redirect(w, r, taskPath(results[0].Successor.ID), http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, taskPath(taskID), http.StatusSeeOther)
}

func (h *Handler) handleActivities(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}

	data := pageData{ActiveTab: "activities"}
	all, err := h.activities.Load()
	if err != nil {
		data.ActivityError = err.Error()
	}
	data.Totals = activity.Totals(all)
	data.Summary = activity.Summarize(all)
	data.TodayEntries = activity.ForDate(all, h.now())
	h.templates.Render(w, data)
}

func (h *Handler) setLogDraft(draft logFormDraft) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.logDraft = &draft
}

func (h *Handler) consumeLogDraft() *logFormDraft {
	h.mu.Lock()
	defer h.mu.Unlock()
	draft := h.logDraft
	h.logDraft = nil
	return draft
}

func (h *Handler) setTaskDraft(draft taskFormDraft) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.taskDraft = &draft
}

func (h *Handler) consumeTaskDraft(selectedID string) *taskFormDraft {
	h.mu.Lock()
	defer h.mu.Unlock()
	draft := h.taskDraft
	if draft == nil {
		return nil
	}
	if draft.id != "" && draft.id != selectedID {
		return nil
	}
	h.taskDraft = nil
	return draft
}

func selectTask(tasks []task.Task, id string) *task.Task {
	if id == "" {
		return nil
	}
	for i := range tasks {
		if tasks[i].ID == id {
			return &tasks[i]
		}
	}
	return nil
}

func taskPath(id string) string {
	return "/web/tasks?id=" + url.QueryEscape(id)
}

func trimmedQueryValue(r *http.Request, key string) string {
	return strings.TrimSpace(r.URL.Query().Get(key))
}

func writeMethodNotAllowed(w http.ResponseWriter, allowed string) {
	w.Header().Set("Allow", allowed)
	http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
}
