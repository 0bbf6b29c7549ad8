package web

import (
	"html/template"
	"strconv"
	"time"

	"github.com/livslogg/livslogg/internal/ui"
)

func newTemplates() *template.Template {
	funcs := template.FuncMap{
		"formatTime":         formatTime,
		"formatOptionalTime": formatOptionalTime,
		"formatDue":          func(due *time.Time) string { return ui.FormatDuePtr(due, time.Now()) },
		"formatQuantity":     formatQuantity,
	}
	return template.Must(template.New("page").Funcs(funcs).Parse(pageTemplate))
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return "-"
	}
	return value.Format("2006-01-02 15:04")
}

func formatOptionalTime(value *time.Time) string {
	if value == nil {
		return "-"
	}
	return formatTime(*value)
}

func formatQuantity(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

const pageTemplate = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>Livslogg</title>
  <style>
    :root {
      color-scheme: light;
    }
    body {
      margin: 0;
      font-family: "Charter", "Georgia", serif;
      color: #2b2520;
      background: radial-gradient(circle at top left, #f4efe3 0%, #fcfaf6 55%, #f6f2e8 100%);
    }
    header {
      padding: 16px 24px;
      border-bottom: 1px solid #d7cdbd;
      background: rgba(255, 255, 255, 0.72);
      backdrop-filter: blur(6px);
    }
    header h1 {
      margin: 0 0 8px 0;
      font-size: 20px;
      letter-spacing: 0.02em;
    }
    .tabs {
      display: flex;
      gap: 12px;
    }
    .tab {
      padding: 8px 14px;
      border-radius: 999px;
      text-decoration: none;
      color: #5b5148;
      border: 1px solid transparent;
    }
    .tab.active {
      color: #1d1712;
      border-color: #d1c6b6;
      background: #f5efe4;
      font-weight: 600;
    }
    main {
      display: flex;
      gap: 18px;
      padding: 18px 24px 28px;
    }
    .pane {
      background: #ffffff;
      border: 1px solid #d7cdbd;
      border-radius: 14px;
      box-shadow: 0 8px 24px rgba(60, 45, 30, 0.08);
    }
    .list-pane {
      width: 35%;
      min-width: 240px;
      padding: 16px;
      display: flex;
      flex-direction: column;
      gap: 12px;
    }
    .detail-pane {
      flex: 1;
      padding: 18px 22px 22px;
    }
    .item-list {
      list-style: none;
      padding: 0;
      margin: 0;
      display: flex;
      flex-direction: column;
      gap: 8px;
      overflow-y: auto;
    }
    .list-item a {
      display: block;
      padding: 10px 12px;
      border-radius: 10px;
      border: 1px solid transparent;
      text-decoration: none;
      color: inherit;
    }
    .list-item.active a {
      border-color: #c7baa8;
      background: #f6f0e6;
    }
    .item-title {
      font-weight: 600;
      display: block;
    }
    .item-meta {
      color: #72685f;
      font-size: 12px;
    }
    .field {
      display: flex;
      flex-direction: column;
      gap: 6px;
      margin-bottom: 12px;
    }
    input[type="text"],
    textarea {
      width: 100%;
      padding: 8px 10px;
      border-radius: 8px;
      border: 1px solid #cbbfae;
      font-family: inherit;
      font-size: 14px;
      background: #fffdf9;
      box-sizing: border-box;
    }
    .actions {
      display: flex;
      flex-wrap: wrap;
      gap: 10px;
      margin-top: 16px;
    }
    button {
      padding: 8px 14px;
      border-radius: 8px;
      border: 1px solid #bfb3a2;
      background: #efe6d7;
      font-family: inherit;
      cursor: pointer;
    }
    .readonly {
      display: grid;
      grid-template-columns: 140px 1fr;
      gap: 6px 12px;
      font-size: 14px;
      margin: 16px 0 8px;
    }
    .readonly dt {
      font-weight: 600;
      color: #4f4540;
    }
    .readonly dd {
      margin: 0;
      color: #2b2520;
    }
    .error {
      padding: 10px 12px;
      border-radius: 8px;
      background: #f7d9d6;
      border: 1px solid #d9a7a2;
      margin-bottom: 12px;
      color: #5b1d17;
    }
    .notice {
      padding: 10px 12px;
      border-radius: 8px;
      background: #e3efdd;
      border: 1px solid #b4cda8;
      margin-bottom: 12px;
      color: #2d4a22;
    }
    .muted {
      color: #72685f;
    }
    table.stats {
      border-collapse: collapse;
      font-size: 14px;
      width: 100%;
    }
    table.stats th,
    table.stats td {
      text-align: left;
      padding: 6px 10px;
      border-bottom: 1px solid #e7dfd1;
    }
    @media (max-width: 900px) {
      main {
        flex-direction: column;
      }
      .list-pane {
        width: auto;
      }
    }
  </style>
</head>
<body>
  <header>
    <h1>Livslogg</h1>
    <nav class="tabs">
      <a class="tab {{if eq .ActiveTab "log"}}active{{end}}" href="/web/log">Log</a>
      <a class="tab {{if eq .ActiveTab "tasks"}}active{{end}}" href="/web/tasks">Tasks</a>
      <a class="tab {{if eq .ActiveTab "activities"}}active{{end}}" href="/web/activities">Activities</a>
    </nav>
  </header>
  <main>
    {{if eq .ActiveTab "log"}}
      <section class="pane detail-pane">
        {{if .LogError}}<div class="error">{{.LogError}}</div>{{end}}
        {{if .LogMessage}}<div class="notice">{{.LogMessage}}</div>{{end}}
        <h2>What happened?</h2>
        <form method="post" action="/web/log/submit">
          <div class="field">
            <input type="text" name="text" value="{{.LogText}}" placeholder="drank 500ml of water, walked 2km" autofocus required>
          </div>
          <div class="actions">
            <button type="submit">Log it</button>
          </div>
        </form>
        <h3>Today</h3>
        {{if .TodayEntries}}
          <table class="stats">
            <tr><th>Time</th><th>Activity</th><th>Quantity</th></tr>
            {{range .TodayEntries}}
              <tr>
                <td>{{.Timestamp.Format "15:04"}}</td>
                <td>{{.Name}}</td>
                <td>{{formatQuantity .Quantity}} {{.Unit}}</td>
              </tr>
            {{end}}
          </table>
        {{else}}
          <p class="muted">Nothing logged today.</p>
        {{end}}
      </section>
    {{else if eq .ActiveTab "tasks"}}
      <section class="pane list-pane">
        <strong>Tasks</strong>
        <form method="post" action="/web/tasks/create">
          <div class="field">
            <input type="text" name="text" placeholder="buy milk tomorrow 5pm !high #shopping" required>
          </div>
          <button type="submit">Add task</button>
        </form>
        <ul class="item-list">
          {{range .Tasks}}
            <li class="list-item {{if eq .ID $.SelectedTaskID}}active{{end}}">
              <a href="/web/tasks?id={{.ID}}">
                <span class="item-title">{{.Title}}</span>
                <span class="item-meta">{{.Status}} · {{.Priority}} · due {{formatDue .DueAt}}</span>
              </a>
            </li>
          {{else}}
            <li class="muted">No tasks yet.</li>
          {{end}}
        </ul>
      </section>
      <section class="pane detail-pane">
        {{if .TaskError}}<div class="error">{{.TaskError}}</div>{{end}}
        {{if .SelectedTask}}
          <h2>{{.SelectedTask.Title}}</h2>
          <dl class="readonly">
            <dt>ID</dt><dd>{{.SelectedTask.ID}}</dd>
            <dt>Status</dt><dd>{{.SelectedTask.Status}}</dd>
            <dt>Priority</dt><dd>{{.SelectedTask.Priority}} ({{.SelectedTask.Points}} points)</dd>
            {{if .SelectedTask.Tags}}<dt>Tags</dt><dd>{{range .SelectedTask.Tags}}#{{.}} {{end}}</dd>{{end}}
            {{if .SelectedTask.Category}}<dt>Category</dt><dd>{{.SelectedTask.Category}}</dd>{{end}}
            <dt>Due</dt><dd>{{formatOptionalTime .SelectedTask.DueAt}}</dd>
            {{if .SelectedTask.Recurrence}}<dt>Repeats</dt><dd>{{.SelectedTask.Recurrence}}</dd>{{end}}
            {{if .SelectedTask.ParentID}}<dt>Generated by</dt><dd>{{.SelectedTask.ParentID}}</dd>{{end}}
            <dt>Created</dt><dd>{{formatTime .SelectedTask.CreatedAt}}</dd>
            <dt>Updated</dt><dd>{{formatTime .SelectedTask.UpdatedAt}}</dd>
            <dt>Completed</dt><dd>{{formatOptionalTime .SelectedTask.CompletedAt}}</dd>
          </dl>
          {{if ne .SelectedTask.Status "completed"}}
            <div class="actions">
              <form method="post" action="/web/tasks/start?id={{.SelectedTask.ID}}">
                <button type="submit">Start</button>
              </form>
              <form method="post" action="/web/tasks/complete?id={{.SelectedTask.ID}}">
                <button type="submit">Complete</button>
              </form>
            </div>
          {{end}}
        {{else}}
          <p class="muted">No task selected.</p>
        {{end}}
      </section>
    {{else}}
      <section class="pane detail-pane">
        {{if .ActivityError}}<div class="error">{{.ActivityError}}</div>{{end}}
        <h2>Activity totals</h2>
        {{if .Totals}}
          <table class="stats">
            <tr><th>Activity</th><th>Total</th><th>Entries</th></tr>
            {{range .Totals}}
              <tr>
                <td>{{.Name}}</td>
                <td>{{formatQuantity .Quantity}}</td>
                <td>{{index $.Summary.Counts .Name}}</td>
              </tr>
            {{end}}
          </table>
          <dl class="readonly">
            <dt>Entries</dt><dd>{{.Summary.TotalEntries}}</dd>
            <dt>First entry</dt><dd>{{formatTime .Summary.FirstEntry}}</dd>
            <dt>Last entry</dt><dd>{{formatTime .Summary.LastEntry}}</dd>
            <dt>Days tracked</dt><dd>{{.Summary.DaysTracked}}</dd>
          </dl>
        {{else}}
          <p class="muted">No activities logged yet.</p>
        {{end}}
      </section>
    {{end}}
  </main>
</body>
</html>
`
