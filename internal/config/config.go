// Package config handles the XDG configuration directory, config file and paths.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// AppName is the application directory name.
	AppName = "todo"

	// ConfigFile is the optional YAML settings filename.
	ConfigFile = "config.yaml"

	// EnvFile is the optional dotenv filename.
	EnvFile = ".env"

	// DefaultTasksFile is the save file name used when none is configured.
	DefaultTasksFile = "tasks.txt"

	// OAuthClientFile is the OAuth client credentials filename.
	OAuthClientFile = "oauth_client.json"

	// TokenFile is the stored OAuth token filename.
	TokenFile = "token.json"

	// EnvTasksFile overrides tasks_file.
	EnvTasksFile = "TODO_TASKS_FILE"

	// EnvNoColor disables styled output when set to any value.
	EnvNoColor = "NO_COLOR"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// TasksFile is the save file. Relative paths are resolved against Dir.
	TasksFile string

	// RemoteList is the Google Tasks list name used by push when --list is not given.
	RemoteList string

	// Color enables styled output on terminals.
	Color bool

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool
}

// fileConfig is the on-disk shape of config.yaml.
type fileConfig struct {
	TasksFile  string `yaml:"tasks_file"`
	RemoteList string `yaml:"remote_list"`
	Color      *bool  `yaml:"color"`
}

// New creates a Config with the default or specified config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/todo or $HOME/.config/todo.
// Settings come from config.yaml, then .env, then the process environment;
// missing files are not an error.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	cfg := &Config{
		Dir:       dir,
		TasksFile: DefaultTasksFile,
		Color:     true,
	}

	if err := cfg.readFile(); err != nil {
		return nil, err
	}

	env, err := cfg.readEnv()
	if err != nil {
		return nil, err
	}
	if v := env(EnvTasksFile); v != "" {
		cfg.TasksFile = v
	}
	if env(EnvNoColor) != "" {
		cfg.Color = false
	}

	return cfg, nil
}

func (c *Config) readFile() error {
	data, err := os.ReadFile(c.ConfigPath())
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", ConfigFile, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("invalid %s: %w", ConfigFile, err)
	}
	if strings.TrimSpace(fc.TasksFile) != "" {
		c.TasksFile = strings.TrimSpace(fc.TasksFile)
	}
	c.RemoteList = strings.TrimSpace(fc.RemoteList)
	if fc.Color != nil {
		c.Color = *fc.Color
	}
	return nil
}

// readEnv returns a lookup that prefers the process environment over .env.
// The .env file is read without modifying the process environment.
func (c *Config) readEnv() (func(string) string, error) {
	dotenv, err := godotenv.Read(filepath.Join(c.Dir, EnvFile))
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("invalid %s: %w", EnvFile, err)
		}
		dotenv = nil
	}
	return func(key string) string {
		if v, ok := os.LookupEnv(key); ok {
			return v
		}
		return dotenv[key]
	}, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// ConfigPath returns the path to config.yaml.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.Dir, ConfigFile)
}

// TasksPath returns the resolved path of the save file.
func (c *Config) TasksPath() string {
	if filepath.IsAbs(c.TasksFile) {
		return c.TasksFile
	}
	return filepath.Join(c.Dir, c.TasksFile)
}

// OAuthClientPath returns the path to the OAuth client credentials file.
func (c *Config) OAuthClientPath() string {
	return filepath.Join(c.Dir, OAuthClientFile)
}

// TokenPath returns the path to the stored OAuth token file.
func (c *Config) TokenPath() string {
	return filepath.Join(c.Dir, TokenFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasOAuthClient checks if the OAuth client credentials file exists.
func (c *Config) HasOAuthClient() bool {
	_, err := os.Stat(c.OAuthClientPath())
	return err == nil
}

// HasToken checks if the token file exists.
func (c *Config) HasToken() bool {
	_, err := os.Stat(c.TokenPath())
	return err == nil
}

// RemoveToken deletes the token file.
func (c *Config) RemoveToken() error {
	return os.Remove(c.TokenPath())
}
