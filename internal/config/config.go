package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	DefaultConfigFileName = "config.toml"
	DefaultSQLiteName     = "listo-snapshot"
	EnvConfigPath         = "LISTO_CONFIG"

	SnapshotMemory = "memory"
	SnapshotSQLite = "sqlite"
)

type Config struct {
	// Snapshot selects where "save" keeps its copy: "memory" or "sqlite".
	// The sqlite store is always an in-memory database.
	Snapshot   string `toml:"snapshot"`
	SQLiteName string `toml:"sqlite_name"`
	Color      bool   `toml:"color"`
	Prompt     string `toml:"prompt"`
	LogLevel   string `toml:"log_level"`
	LogFormat  string `toml:"log_format"`
}

// ResolveConfigPath returns $LISTO_CONFIG when set, otherwise config.toml
// under the user config directory, falling back to the working directory.
func ResolveConfigPath() string {
	if p := strings.TrimSpace(os.Getenv(EnvConfigPath)); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return DefaultConfigFileName
	}
	return filepath.Join(dir, "listo", DefaultConfigFileName)
}

func LoadOrCreate(path string) (Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) normalize() {
	c.Snapshot = strings.ToLower(strings.TrimSpace(c.Snapshot))
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat))
	if c.Snapshot == "" {
		c.Snapshot = SnapshotMemory
	}
	if c.SQLiteName == "" {
		c.SQLiteName = DefaultSQLiteName
	}
	if c.LogLevel == "" {
		c.LogLevel = "warn"
	}
	if c.LogFormat == "" {
		c.LogFormat = "text"
	}
}

// SetLogLevel overrides log_level with the same normalisation the file gets.
func (c *Config) SetLogLevel(level string) error {
	c.LogLevel = strings.ToLower(strings.TrimSpace(level))
	if c.LogLevel == "" {
		c.LogLevel = "warn"
	}
	return c.Validate()
}

func (c Config) Validate() error {
	switch c.Snapshot {
	case SnapshotMemory, SnapshotSQLite:
	default:
		return fmt.Errorf("snapshot: unknown store %q (want %q or %q)", c.Snapshot, SnapshotMemory, SnapshotSQLite)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level: unknown level %q", c.LogLevel)
	}
	switch c.LogFormat {
	case "text", "json", "logfmt":
	default:
		return fmt.Errorf("log_format: unknown format %q", c.LogFormat)
	}
	return nil
}

func write(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}

func Default() Config {
	return Config{
		Snapshot:   SnapshotMemory,
		SQLiteName: DefaultSQLiteName,
		Color:      true,
		Prompt:     "",
		LogLevel:   "warn",
		LogFormat:  "text",
	}
}
