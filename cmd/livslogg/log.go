package main

import (
	"strings"

	"github.com/livslogg/livslogg/logbook"
	"github.com/spf13/cobra"
)

var logCmd = &cobra.Command{
	Use:   "log <text>...",
	Short: "Log a free-text entry",
	Long: `Log a free-text entry.

The entry is sent to the extraction API and saved as one or more
activity records, or as structured tasks when it reads as reminders
rather than activities. When no API key is configured, or the API
fails or returns nothing usable, the entry is parsed heuristically and
saved as a task instead - an entry is never lost.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runLog,
}

var logNoAI bool

func init() {
	rootCmd.AddCommand(logCmd)
	logCmd.Flags().BoolVar(&logNoAI, "no-ai", false, "Skip extraction and parse heuristically")
}

func runLog(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	book := newLogbook(cfg, logbook.NewConsoleLogger(cmd.OutOrStdout()), logNoAI)
	_, err = book.Log(cmd.Context(), strings.Join(args, " "))
	return err
}
