// Package config handles the configuration directory, data file paths and environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

const (
	// AppName is the application directory name.
	AppName = "todos"

	// EnvFile is the optional environment file in the config directory.
	EnvFile = "todos.env"

	// SQLiteFile is the default SQLite database filename.
	SQLiteFile = "todos.db"

	// JSONFile is the default data filename for the file backend.
	JSONFile = "todos.json"

	// HistoryFile is the shell history filename.
	HistoryFile = "history"
)

// Environment keys.
const (
	EnvBackend   = "TODOS_BACKEND"
	EnvData      = "TODOS_DATA"
	EnvLogLevel  = "TODOS_LOG_LEVEL"
	EnvLogFormat = "TODOS_LOG_FORMAT"
)

// Error reports a problem with the configuration itself, such as an unknown
// backend name or an unusable config directory.
type Error struct {
	Err error
}

func (e *Error) Error() string { return e.Err.Error() }

func (e *Error) Unwrap() error { return e.Err }

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// Backend is the key-value backend name ("sqlite" or "file").
	Backend string

	// DataFile overrides the data file path when set.
	DataFile string

	// LogLevel is the log level name used when Debug is off.
	LogLevel string

	// LogFormat is "text" or "json".
	LogFormat string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool
}

// New creates a new Config with the default or specified config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/todos or $HOME/.config/todos.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	return &Config{Dir: dir, Backend: "sqlite", LogLevel: "warn", LogFormat: "text"}, nil
}

// Load creates a Config like New and applies overrides from the optional
// todos.env file in the config directory and then from the process environment.
func Load(configDir string) (*Config, error) {
	cfg, err := New(configDir)
	if err != nil {
		return nil, err
	}

	fileEnv, err := godotenv.Read(cfg.EnvPath())
	if err != nil && !os.IsNotExist(err) {
		return nil, &Error{Err: fmt.Errorf("read %s: %w", cfg.EnvPath(), err)}
	}
	lookup := func(key string) string {
		if v, ok := os.LookupEnv(key); ok {
			return strings.TrimSpace(v)
		}
		return strings.TrimSpace(fileEnv[key])
	}

	if v := lookup(EnvBackend); v != "" {
		cfg.Backend = strings.ToLower(v)
	}
	if v := lookup(EnvData); v != "" {
		cfg.DataFile = v
	}
	if v := lookup(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
	if v := lookup(EnvLogFormat); v != "" {
		cfg.LogFormat = v
	}
	return cfg, nil
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

// EnvPath returns the path to the optional environment file.
func (c *Config) EnvPath() string {
	return filepath.Join(c.Dir, EnvFile)
}

// DataPath returns the key-value store location for the configured backend.
func (c *Config) DataPath() string {
	if c.DataFile != "" {
		return c.DataFile
	}
	if c.Backend == "file" {
		return filepath.Join(c.Dir, JSONFile)
	}
	return filepath.Join(c.Dir, SQLiteFile)
}

// HistoryPath returns the path to the shell history file.
func (c *Config) HistoryPath() string {
	return filepath.Join(c.Dir, HistoryFile)
}

// Level returns the effective log level name.
func (c *Config) Level() string {
	if c.Debug {
		return "debug"
	}
	return c.LogLevel
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	if err := os.MkdirAll(c.Dir, 0700); err != nil {
		return &Error{Err: fmt.Errorf("create config dir: %w", err)}
	}
	return nil
}
