// Package testsupport provides helpers for testscript-driven CLI tests.
package testsupport

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/livslogg/livslogg/task"
	"github.com/rogpeppe/go-internal/testscript"
)

var (
	buildOnce    sync.Once
	livsloggPath string
	buildErr     error
)

// BuildLivslogg builds the livslogg binary once and returns its path.
func BuildLivslogg(t testing.TB) string {
	t.Helper()

	buildOnce.Do(func() {
		moduleRoot, err := findModuleRoot()
		if err != nil {
			buildErr = err
			return
		}

		binDir, err := os.MkdirTemp("", "livslogg-bin-")
		if err != nil {
			buildErr = err
			return
		}

		livsloggPath = filepath.Join(binDir, "livslogg")
		cmd := exec.Command("go", "build", "-o", livsloggPath, "./cmd/livslogg")
		cmd.Dir = moduleRoot
		output, err := cmd.CombinedOutput()
		if err != nil {
			buildErr = fmt.Errorf("build livslogg: %w: %s", err, strings.TrimSpace(string(output)))
		}
	})

	if buildErr != nil {
		t.Fatalf("%v", buildErr)
	}

	return livsloggPath
}

// SetupScriptEnv configures common environment variables for testscript.
func SetupScriptEnv(t testing.TB, env *testscript.Env) error {
	t.Helper()

	env.Setenv("LIVSLOGG", BuildLivslogg(t))

	homeDir := filepath.Join(env.WorkDir, "home")
	if err := os.MkdirAll(filepath.Join(homeDir, ".config", "livslogg"), 0o755); err != nil {
		return err
	}
	env.Setenv("HOME", homeDir)
	return nil
}

// SetupTestHome creates a temp home directory and sets HOME.
func SetupTestHome(t testing.TB) string {
	t.Helper()

	homeDir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(homeDir, ".config", "livslogg"), 0o755); err != nil {
		t.Fatalf("setup home dir: %v", err)
	}
	t.Setenv("HOME", homeDir)
	return homeDir
}

// CmdTaskID finds a task by title in a JSONL store file and stores its
// ID in an env var.
func CmdTaskID(ts *testscript.TestScript, neg bool, args []string) {
	if neg {
		ts.Fatalf("taskid does not support negation")
	}
	if len(args) != 3 {
		ts.Fatalf("usage: taskid FILE TITLE VAR")
	}

	data := ts.ReadFile(args[0])
	title := args[1]

	scanner := bufio.NewScanner(strings.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var item task.Task
		if err := json.Unmarshal([]byte(line), &item); err != nil {
			ts.Fatalf("parse task line: %v", err)
		}
		if item.Title == title {
			ts.Setenv(args[2], item.ID)
			return
		}
	}

	ts.Fatalf("task with title %q not found", title)
}

func findModuleRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("could not find module root (go.mod)")
		}
		dir = parent
	}
}
