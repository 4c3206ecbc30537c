// Package config handles configuration loading and defaults.
package config

import "path/filepath"

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUserFile ConfigSource = "user file"
	SourceProjFile ConfigSource = "project file"
	SourceEnv      ConfigSource = "environment"
	SourceFlag     ConfigSource = "flag"
)

// ConfigWithSources holds configuration along with source information for each field.
type ConfigWithSources struct {
	Config  *Config
	Sources map[string]ConfigSource
	// Files lists the config files that were read, in load order.
	Files []string
}

// Default values.
const (
	DefaultBackend       = "file"
	DefaultDataDir       = "~/.tasks"
	DefaultStorageFile   = "storage.json"
	DefaultSQLiteFile    = "tasks.db"
	DefaultRedisPrefix   = "tasks:"
	DefaultFilter        = "all"
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "text"
	DefaultLogFile       = "tasks.log"
	DefaultValidateLoad  = true
	configFileName       = "tasks.toml"
	hiddenConfigFileName = ".tasks.toml"
)

// Config holds the full configuration for tasks.
type Config struct {
	// Storage
	Backend     string `toml:"backend"`
	DataDir     string `toml:"data_dir"`
	StorageFile string `toml:"storage_file"`
	SQLitePath  string `toml:"sqlite_path"`

	// Redis backend
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
	RedisPrefix   string `toml:"redis_prefix"`

	// View
	DefaultFilter string `toml:"default_filter"`

	// Reject stored task lists that fail schema validation
	ValidateOnLoad bool `toml:"validate_on_load"`

	// Logging configuration
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`

	// Suppress informational CLI output (flag only)
	Quiet bool `toml:"-"`
}

// StoragePath returns the file backend path. A relative StorageFile is
// resolved against DataDir.
func (c *Config) StoragePath() string {
	if c.StorageFile == "" {
		return filepath.Join(c.DataDir, DefaultStorageFile)
	}
	if filepath.IsAbs(c.StorageFile) {
		return c.StorageFile
	}
	return filepath.Join(c.DataDir, c.StorageFile)
}

// LogPath returns the log file used while the terminal UI owns the screen.
func (c *Config) LogPath() string {
	return filepath.Join(c.DataDir, DefaultLogFile)
}
