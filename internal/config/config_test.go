package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"todo/internal/config"
)

// clearEnv unsets the variables config reads for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{config.EnvTasksFile, config.EnvNoColor} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0600); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
}

func TestNew_Defaults(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	cfg, err := config.New(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Dir != dir {
		t.Errorf("expected Dir %q, got %q", dir, cfg.Dir)
	}
	if want := filepath.Join(dir, "tasks.txt"); cfg.TasksPath() != want {
		t.Errorf("expected TasksPath %q, got %q", want, cfg.TasksPath())
	}
	if !cfg.Color {
		t.Error("expected Color to default to true")
	}
	if cfg.RemoteList != "" {
		t.Errorf("expected empty RemoteList, got %q", cfg.RemoteList)
	}
}

func TestNew_ConfigFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeFile(t, dir, config.ConfigFile, "tasks_file: lists/home.txt\nremote_list: Chores\ncolor: false\n")

	cfg, err := config.New(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := filepath.Join(dir, "lists", "home.txt"); cfg.TasksPath() != want {
		t.Errorf("expected TasksPath %q, got %q", want, cfg.TasksPath())
	}
	if cfg.RemoteList != "Chores" {
		t.Errorf("expected RemoteList Chores, got %q", cfg.RemoteList)
	}
	if cfg.Color {
		t.Error("expected Color false")
	}
}

func TestNew_AbsoluteTasksFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	abs := filepath.Join(t.TempDir(), "elsewhere.txt")
	writeFile(t, dir, config.ConfigFile, "tasks_file: "+abs+"\n")

	cfg, err := config.New(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.TasksPath() != abs {
		t.Errorf("expected TasksPath %q, got %q", abs, cfg.TasksPath())
	}
}

func TestNew_InvalidConfigFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeFile(t, dir, config.ConfigFile, "tasks_file: [unterminated\n")

	if _, err := config.New(dir); err == nil {
		t.Fatal("expected error for malformed config.yaml")
	}
}

func TestNew_DotEnvOverridesConfigFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeFile(t, dir, config.ConfigFile, "tasks_file: from-yaml.txt\n")
	writeFile(t, dir, config.EnvFile, "TODO_TASKS_FILE=from-dotenv.txt\nNO_COLOR=1\n")

	cfg, err := config.New(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.TasksFile != "from-dotenv.txt" {
		t.Errorf("expected TasksFile from .env, got %q", cfg.TasksFile)
	}
	if cfg.Color {
		t.Error("expected NO_COLOR from .env to disable color")
	}
	if _, ok := os.LookupEnv(config.EnvTasksFile); ok {
		t.Error(".env must not modify the process environment")
	}
}

func TestNew_ProcessEnvWins(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeFile(t, dir, config.EnvFile, "TODO_TASKS_FILE=from-dotenv.txt\n")
	t.Setenv(config.EnvTasksFile, "from-env.txt")

	cfg, err := config.New(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.TasksFile != "from-env.txt" {
		t.Errorf("expected TasksFile from environment, got %q", cfg.TasksFile)
	}
}

func TestDefaultConfigDir_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")

	if got := config.DefaultConfigDir(); got != filepath.Join("/tmp/xdg", "todo") {
		t.Errorf("unexpected config dir %q", got)
	}
}

func TestTokenLifecycle(t *testing.T) {
	cfg := &config.Config{Dir: t.TempDir()}

	if cfg.HasToken() {
		t.Fatal("expected no token")
	}
	writeFile(t, cfg.Dir, config.TokenFile, "{}")
	if !cfg.HasToken() {
		t.Fatal("expected token")
	}
	if err := cfg.RemoveToken(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HasToken() {
		t.Error("expected token removed")
	}
}
