package main

import (
	"fmt"
	"strings"

	"github.com/livslogg/livslogg/ai"
	"github.com/livslogg/livslogg/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and change configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the resolved configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the global config file path",
	Args:  cobra.NoArgs,
	RunE:  runConfigPath,
}

var configSetKeyCmd = &cobra.Command{
	Use:   "set-key <api-key>",
	Short: "Store the extraction API key in the global config",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigSetKey,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd, configPathCmd, configSetKeyCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	key := cfg.APIKey()
	keyDisplay := "(not set)"
	if key != "" {
		keyDisplay = config.MaskKey(key)
		if !cfg.ValidAPIKey() {
			keyDisplay += " (does not look like an OpenRouter key)"
		}
	}
	model := cfg.API.Model
	if model == "" {
		model = ai.DefaultModel
	}
	url := cfg.API.URL
	if url == "" {
		url = ai.DefaultBaseURL
	}

	fmt.Printf("api.key:                 %s\n", keyDisplay)
	fmt.Printf("api.url:                 %s\n", url)
	fmt.Printf("api.model:               %s\n", model)
	fmt.Printf("storage.activities-file: %s\n", cfg.Storage.ActivitiesFile)
	fmt.Printf("storage.tasks-file:      %s\n", cfg.Storage.TasksFile)
	if cfg.Entry.DefaultCategory != "" {
		fmt.Printf("entry.default-category:  %s\n", cfg.Entry.DefaultCategory)
	}
	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	path, err := config.GlobalPath()
	if err != nil {
		return err
	}
	fmt.Println(path)
	return nil
}

func runConfigSetKey(cmd *cobra.Command, args []string) error {
	key := strings.TrimSpace(args[0])
	if !strings.HasPrefix(key, "sk-") || len(key) < 20 {
		return fmt.Errorf("key does not look like an OpenRouter API key (sk- prefix, at least 20 characters)")
	}

	path, err := config.GlobalPath()
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cfg.API.Key = key
	if err := config.SaveGlobal(cfg); err != nil {
		return err
	}

	fmt.Printf("Saved API key %s to %s\n", config.MaskKey(key), path)
	return nil
}
