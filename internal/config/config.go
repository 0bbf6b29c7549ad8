// Package config handles loading livslogg.toml configuration files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Defaults applied when a key is configured nowhere.
const (
	DefaultActivitiesFile = "livslogg.csv"
	DefaultTasksFile      = "tasks.jsonl"
)

// EnvAPIKey is the environment variable consulted when no API key is
// configured in a file.
const EnvAPIKey = "OPENROUTER_API_KEY"

// Config represents the livslogg.toml configuration file.
type Config struct {
	API     API     `toml:"api"`
	Storage Storage `toml:"storage"`
	Entry   Entry   `toml:"entry"`
}

// API contains remote extraction settings.
type API struct {
	// Key authenticates against the extraction API. Falls back to
	// $OPENROUTER_API_KEY when unset.
	Key string `toml:"key"`

	// URL overrides the API base URL.
	URL string `toml:"url"`

	// Model selects the extraction model.
	Model string `toml:"model"`
}

// Storage contains data file locations.
type Storage struct {
	// ActivitiesFile is the activity CSV log path.
	ActivitiesFile string `toml:"activities-file"`

	// TasksFile is the task JSONL store path.
	TasksFile string `toml:"tasks-file"`
}

// Entry contains parsing defaults.
type Entry struct {
	// DefaultCategory is applied to tasks parsed without an "@" marker.
	DefaultCategory string `toml:"default-category"`
}

// Load loads configuration from the working directory and the global
// config file, with working-directory values taking precedence.
// Returns a config with defaults filled in when no config files exist.
func Load(dir string) (*Config, error) {
	globalPath, err := globalConfigPath()
	if err != nil {
		return nil, err
	}

	globalCfg, globalMeta, err := loadConfigFile(globalPath)
	if err != nil {
		return nil, err
	}

	localCfg, localMeta, err := loadConfigFile(filepath.Join(dir, "livslogg.toml"))
	if err != nil {
		return nil, err
	}

	merged := mergeConfigs(globalCfg, localCfg, globalMeta, localMeta)
	applyDefaults(merged)
	return merged, nil
}

// APIKey returns the configured key, falling back to the environment.
func (c *Config) APIKey() string {
	if c.API.Key != "" {
		return c.API.Key
	}
	return os.Getenv(EnvAPIKey)
}

// ValidAPIKey reports whether an API key is present and looks like an
// OpenRouter key (sk- prefix, minimum length).
func (c *Config) ValidAPIKey() bool {
	key := strings.TrimSpace(c.APIKey())
	if key == "" {
		return false
	}
	if !strings.HasPrefix(key, "sk-or-") && !strings.HasPrefix(key, "sk-") {
		return false
	}
	return len(key) >= 20
}

// MaskKey renders an API key for display, keeping only the ends.
func MaskKey(key string) string {
	if len(key) <= 8 {
		return strings.Repeat("*", len(key))
	}
	return key[:6] + "..." + key[len(key)-4:]
}

// GlobalPath returns the global config file path.
func GlobalPath() (string, error) {
	return globalConfigPath()
}

// SaveGlobal writes cfg to the global config file, creating the
// directory when needed.
func SaveGlobal(cfg *Config) error {
	path, err := globalConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("open config file %s: %w", path, err)
	}
	defer file.Close()

	if err := toml.NewEncoder(file).Encode(cfg); err != nil {
		return fmt.Errorf("encode config file %s: %w", path, err)
	}
	return file.Close()
}

func globalConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "livslogg", "config.toml"), nil
}

func loadConfigFile(path string) (*Config, toml.MetaData, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{}, toml.MetaData{}, nil
	}
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("read config file %s: %w", path, err)
	}

	var cfg Config
	meta, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("parse config file %s: %w", path, err)
	}

	return &cfg, meta, nil
}

func mergeConfigs(globalCfg, localCfg *Config, globalMeta, localMeta toml.MetaData) *Config {
	if globalCfg == nil {
		globalCfg = &Config{}
	}
	if localCfg == nil {
		localCfg = &Config{}
	}

	merged := Config{}
	merged.API.Key = mergeString(localMeta.IsDefined("api", "key"), localCfg.API.Key, globalCfg.API.Key)
	merged.API.URL = mergeString(localMeta.IsDefined("api", "url"), localCfg.API.URL, globalCfg.API.URL)
	merged.API.Model = mergeString(localMeta.IsDefined("api", "model"), localCfg.API.Model, globalCfg.API.Model)
	merged.Storage.ActivitiesFile = mergeString(localMeta.IsDefined("storage", "activities-file"), localCfg.Storage.ActivitiesFile, globalCfg.Storage.ActivitiesFile)
	merged.Storage.TasksFile = mergeString(localMeta.IsDefined("storage", "tasks-file"), localCfg.Storage.TasksFile, globalCfg.Storage.TasksFile)
	merged.Entry.DefaultCategory = mergeString(localMeta.IsDefined("entry", "default-category"), localCfg.Entry.DefaultCategory, globalCfg.Entry.DefaultCategory)
	return &merged
}

func mergeString(localDefined bool, localValue, globalValue string) string {
	value := globalValue
	if localDefined {
		value = localValue
	}
	return strings.TrimSpace(value)
}

func applyDefaults(cfg *Config) {
	if cfg.Storage.ActivitiesFile == "" {
		cfg.Storage.ActivitiesFile = DefaultActivitiesFile
	}
	if cfg.Storage.TasksFile == "" {
		cfg.Storage.TasksFile = DefaultTasksFile
	}
}
