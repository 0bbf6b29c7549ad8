package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/livslogg/livslogg/entry"
	"github.com/livslogg/livslogg/internal/ui"
	"github.com/livslogg/livslogg/task"
	"github.com/spf13/cobra"
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage tasks",
}

// task add
var taskAddCmd = &cobra.Command{
	Use:   "add <text>...",
	Short: "Add a task from entry text",
	Long: `Add a task from entry text.

The text is parsed the same way as a log entry: !word sets priority,
#word adds tags, @word sets a category, and date expressions like
"tomorrow 5pm" or "by 2025-04-15" become the due date. Flags override
whatever was parsed.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runTaskAdd,
}

var (
	taskAddPriority string
	taskAddPoints   int
	taskAddTags     []string
	taskAddCategory string
	taskAddDue      string
	taskAddRecur    string
)

// task list
var taskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	Args:  cobra.NoArgs,
	RunE:  runTaskList,
}

var (
	taskListStatus    string
	taskListPriority  string
	taskListTag       string
	taskListCategory  string
	taskListDueBefore string
	taskListTitle     string
	taskListJSON      bool
)

// task show
var taskShowCmd = &cobra.Command{
	Use:   "show <id>...",
	Short: "Show detailed information about tasks",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTaskShow,
}

var taskShowJSON bool

// task start
var taskStartCmd = &cobra.Command{
	Use:   "start <id>...",
	Short: "Mark one or more tasks as in progress",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTaskStart,
}

// task done
var taskDoneCmd = &cobra.Command{
	Use:   "done <id>...",
	Short: "Mark one or more tasks as completed",
	Long: `Mark one or more tasks as completed.

Completing a recurring task schedules its next occurrence as a new
pending task. Completing an already-completed task changes nothing.`,
	Aliases: []string{
		"complete",
	},
	Args: cobra.MinimumNArgs(1),
	RunE: runTaskDone,
}

// task update
var taskUpdateCmd = &cobra.Command{
	Use:   "update <id>...",
	Short: "Update one or more tasks",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTaskUpdate,
}

var (
	taskUpdateTitle    string
	taskUpdatePriority string
	taskUpdatePoints   int
	taskUpdateCategory string
	taskUpdateDue      string
	taskUpdateClearDue bool
	taskUpdateRecur    string
)

// task rm
var taskRemoveCmd = &cobra.Command{
	Use:   "rm <id>...",
	Short: "Remove one or more tasks",
	Aliases: []string{
		"remove",
	},
	Args: cobra.MinimumNArgs(1),
	RunE: runTaskRemove,
}

func init() {
	rootCmd.AddCommand(taskCmd)
	taskCmd.AddCommand(taskAddCmd, taskListCmd, taskShowCmd, taskStartCmd, taskDoneCmd, taskUpdateCmd, taskRemoveCmd)

	// task add flags
	taskAddCmd.Flags().StringVarP(&taskAddPriority, "priority", "p", "", "Priority (low, medium, high, urgent)")
	taskAddCmd.Flags().IntVar(&taskAddPoints, "points", 0, "Point value (overrides priority-derived points)")
	taskAddCmd.Flags().StringArrayVarP(&taskAddTags, "tag", "t", nil, "Tag (repeatable)")
	taskAddCmd.Flags().StringVarP(&taskAddCategory, "category", "c", "", "Category")
	taskAddCmd.Flags().StringVar(&taskAddDue, "due", "", "Due date (2006-01-02 or 2006-01-02 15:04)")
	taskAddCmd.Flags().StringVar(&taskAddRecur, "recur", "", "Recurrence (daily, weekly, monthly)")

	// task list flags
	taskListCmd.Flags().StringVar(&taskListStatus, "status", "", "Filter by status (pending, in_progress, completed)")
	taskListCmd.Flags().StringVarP(&taskListPriority, "priority", "p", "", "Filter by priority")
	taskListCmd.Flags().StringVarP(&taskListTag, "tag", "t", "", "Filter by tag")
	taskListCmd.Flags().StringVarP(&taskListCategory, "category", "c", "", "Filter by category")
	taskListCmd.Flags().StringVar(&taskListDueBefore, "due-before", "", "Filter to tasks due before this date")
	taskListCmd.Flags().StringVar(&taskListTitle, "title", "", "Filter by title substring")
	taskListCmd.Flags().BoolVar(&taskListJSON, "json", false, "Output as JSON")

	// task show flags
	taskShowCmd.Flags().BoolVar(&taskShowJSON, "json", false, "Output as JSON")

	// task update flags
	taskUpdateCmd.Flags().StringVar(&taskUpdateTitle, "title", "", "New title")
	taskUpdateCmd.Flags().StringVarP(&taskUpdatePriority, "priority", "p", "", "New priority")
	taskUpdateCmd.Flags().IntVar(&taskUpdatePoints, "points", 0, "New point value")
	taskUpdateCmd.Flags().StringVarP(&taskUpdateCategory, "category", "c", "", "New category")
	taskUpdateCmd.Flags().StringVar(&taskUpdateDue, "due", "", "New due date")
	taskUpdateCmd.Flags().BoolVar(&taskUpdateClearDue, "clear-due", false, "Remove the due date")
	taskUpdateCmd.Flags().StringVar(&taskUpdateRecur, "recur", "", "New recurrence (none, daily, weekly, monthly)")

	addTaskFlagAliases(taskAddCmd, taskListCmd, taskUpdateCmd)
}

func runTaskAdd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store := openTaskStore(cfg)
	now := time.Now()

	parsed := entry.Parse(strings.Join(args, " "), now, entry.Options{
		DefaultCategory: cfg.Entry.DefaultCategory,
	})

	opts := task.CreateOptions{
		Priority: parsed.Priority,
		Tags:     parsed.Tags,
		Category: parsed.Category,
		DueAt:    parsed.DueAt,
	}
	if cmd.Flags().Changed("priority") {
		opts.Priority = task.Priority(taskAddPriority)
	}
	if cmd.Flags().Changed("points") {
		opts.Points = &taskAddPoints
	}
	if len(taskAddTags) > 0 {
		opts.Tags = append(opts.Tags, taskAddTags...)
	}
	if cmd.Flags().Changed("category") {
		opts.Category = taskAddCategory
	}
	if cmd.Flags().Changed("due") {
		due, err := parseDueFlag(taskAddDue)
		if err != nil {
			return err
		}
		opts.DueAt = &due
	}
	if cmd.Flags().Changed("recur") {
		opts.Recurrence = task.Recurrence(taskAddRecur)
	}

	created, err := store.Create(parsed.Title, now, opts)
	if err != nil {
		return err
	}

	fmt.Printf("Created task %s: %s\n", ui.HighlightID(created.ID, len(created.ID)), created.Title)
	if created.DueAt != nil {
		fmt.Printf("Due %s\n", ui.FormatDue(*created.DueAt, now))
	}
	return nil
}

func runTaskList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store := openTaskStore(cfg)

	filter := task.ListFilter{
		Tag:            taskListTag,
		Category:       taskListCategory,
		TitleSubstring: taskListTitle,
	}
	if taskListStatus != "" {
		status := task.Status(taskListStatus)
		filter.Status = &status
	}
	if taskListPriority != "" {
		priority := task.Priority(taskListPriority)
		filter.Priority = &priority
	}
	if taskListDueBefore != "" {
		dueBefore, err := parseDueFlag(taskListDueBefore)
		if err != nil {
			return err
		}
		filter.DueBefore = &dueBefore
	}

	tasks, err := store.List(filter)
	if err != nil {
		return err
	}

	if taskListJSON {
		return encodeJSONToStdout(tasks)
	}
	printTaskTable(tasks, time.Now())
	return nil
}

func runTaskShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store := openTaskStore(cfg)

	tasks, err := store.Show(args)
	if err != nil {
		return err
	}

	if taskShowJSON {
		return encodeJSONToStdout(tasks)
	}
	for i, t := range tasks {
		if i > 0 {
			fmt.Println()
		}
		printTaskDetail(t)
	}
	return nil
}

func runTaskStart(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store := openTaskStore(cfg)

	started, err := store.Start(args, time.Now())
	if err != nil {
		return err
	}
	for _, t := range started {
		fmt.Printf("Started task %s: %s\n", ui.HighlightID(t.ID, len(t.ID)), t.Title)
	}
	return nil
}

func runTaskDone(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store := openTaskStore(cfg)
	now := time.Now()

	results, err := store.Complete(args, now)
	if err != nil {
		return err
	}
	for _, result := range results {
		fmt.Printf("Completed task %s: %s\n", ui.HighlightID(result.Task.ID, len(result.Task.ID)), result.Task.Title)
		if result.Successor != nil {
			fmt.Printf("Next occurrence %s due %s\n",
				ui.HighlightID(result.Successor.ID, len(result.Successor.ID)),
				ui.FormatDuePtr(result.Successor.DueAt, now))
		}
	}
	return nil
}

func runTaskUpdate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store := openTaskStore(cfg)

	var opts task.UpdateOptions
	if cmd.Flags().Changed("title") {
		opts.Title = &taskUpdateTitle
	}
	if cmd.Flags().Changed("priority") {
		priority := task.Priority(taskUpdatePriority)
		opts.Priority = &priority
	}
	if cmd.Flags().Changed("points") {
		opts.Points = &taskUpdatePoints
	}
	if cmd.Flags().Changed("category") {
		opts.Category = &taskUpdateCategory
	}
	if taskUpdateClearDue {
		var cleared *time.Time
		opts.DueAt = &cleared
	} else if cmd.Flags().Changed("due") {
		due, err := parseDueFlag(taskUpdateDue)
		if err != nil {
			return err
		}
		duePtr := &due
		opts.DueAt = &duePtr
	}
	if cmd.Flags().Changed("recur") {
		recurrence := task.Recurrence(taskUpdateRecur)
		opts.Recurrence = &recurrence
	}

	updated, err := store.Update(args, time.Now(), opts)
	if err != nil {
		return err
	}
	for _, t := range updated {
		fmt.Printf("Updated task %s: %s\n", ui.HighlightID(t.ID, len(t.ID)), t.Title)
	}
	return nil
}

func runTaskRemove(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store := openTaskStore(cfg)

	removed, err := store.Remove(args)
	if err != nil {
		return err
	}
	for _, t := range removed {
		fmt.Printf("Removed task %s: %s\n", ui.HighlightID(t.ID, len(t.ID)), t.Title)
	}
	return nil
}

// parseDueFlag accepts the explicit due date formats taken on the
// command line. Date-only values land on the default due hour.
func parseDueFlag(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	layouts := []string{"2006-01-02 15:04", "2006-01-02T15:04", time.RFC3339}
	for _, layout := range layouts {
		if parsed, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return parsed, nil
		}
	}
	if parsed, err := time.ParseInLocation("2006-01-02", value, time.Local); err == nil {
		return time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 17, 0, 0, 0, time.Local), nil
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q (want 2006-01-02 or 2006-01-02 15:04)", value)
}
