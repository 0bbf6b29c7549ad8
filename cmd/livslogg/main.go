// Package main implements the livslogg CLI tool.
package main

import (
	"errors"
	"os"

	"github.com/livslogg/livslogg/activity"
	"github.com/livslogg/livslogg/ai"
	"github.com/livslogg/livslogg/entry"
	"github.com/livslogg/livslogg/internal/config"
	"github.com/livslogg/livslogg/logbook"
	"github.com/livslogg/livslogg/task"
	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		var exitErr interface{ ExitCode() int }
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.ExitCode())
		}
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "livslogg",
	Short: "Livslogg - personal activity and task tracking",
	Long: `Livslogg tracks two kinds of records from free-text entries:
quantified activities ("drank 500ml of water") and tasks ("buy milk
tomorrow 5pm !high #shopping"). Entries go through AI extraction when
an API key is configured and fall back to a heuristic parser otherwise.`,
}

// loadConfig resolves configuration for the working directory.
func loadConfig() (*config.Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return config.Load(cwd)
}

func openActivityStore(cfg *config.Config) *activity.Store {
	return activity.NewStore(cfg.Storage.ActivitiesFile)
}

func openTaskStore(cfg *config.Config) *task.Store {
	return task.NewStore(cfg.Storage.TasksFile)
}

// newExtractor returns the AI extraction client, or nil when no usable
// API key is configured. A nil extractor means every entry takes the
// heuristic path.
func newExtractor(cfg *config.Config) *ai.Client {
	if !cfg.ValidAPIKey() {
		return nil
	}
	client, err := ai.NewClient(ai.Config{
		APIKey:  cfg.APIKey(),
		BaseURL: cfg.API.URL,
		Model:   cfg.API.Model,
	})
	if err != nil {
		return nil
	}
	return client
}

func newLogbook(cfg *config.Config, logger logbook.Logger, disableExtraction bool) *logbook.Logbook {
	opts := logbook.Options{
		Activities: openActivityStore(cfg),
		Tasks:      openTaskStore(cfg),
		Logger:     logger,
		Parse:      entry.Options{DefaultCategory: cfg.Entry.DefaultCategory},
	}
	if !disableExtraction {
		// Assign only a non-nil client so the logbook sees nil
		// interfaces, not typed nils.
		if client := newExtractor(cfg); client != nil {
			opts.Extractor = client
			opts.TaskExtractor = client
		}
	}
	return logbook.New(opts)
}
