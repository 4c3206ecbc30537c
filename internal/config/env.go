package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// loadFromEnv overrides config from TASKS_* environment variables and
// records each override in sources.
func loadFromEnv(cfg *Config, sources map[string]ConfigSource) error {
	setEnv := func(field string) {
		if sources != nil {
			sources[field] = SourceEnv
		}
	}

	strVars := []struct {
		env   string
		field string
		dst   *string
	}{
		{"TASKS_BACKEND", "backend", &cfg.Backend},
		{"TASKS_DATA_DIR", "data_dir", &cfg.DataDir},
		{"TASKS_STORAGE_FILE", "storage_file", &cfg.StorageFile},
		{"TASKS_SQLITE_PATH", "sqlite_path", &cfg.SQLitePath},
		{"TASKS_REDIS_ADDR", "redis_addr", &cfg.RedisAddr},
		{"TASKS_REDIS_PASSWORD", "redis_password", &cfg.RedisPassword},
		{"TASKS_REDIS_PREFIX", "redis_prefix", &cfg.RedisPrefix},
		{"TASKS_DEFAULT_FILTER", "default_filter", &cfg.DefaultFilter},
		{"TASKS_LOG_LEVEL", "log_level", &cfg.LogLevel},
		{"TASKS_LOG_FORMAT", "log_format", &cfg.LogFormat},
	}
	for _, v := range strVars {
		if val := os.Getenv(v.env); val != "" {
			*v.dst = val
			setEnv(v.field)
		}
	}

	if v := os.Getenv("TASKS_REDIS_DB"); v != "" {
		db, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("TASKS_REDIS_DB: %w", err)
		}
		cfg.RedisDB = db
		setEnv("redis_db")
	}

	boolVars := []struct {
		env   string
		field string
		dst   *bool
	}{
		{"TASKS_VALIDATE_ON_LOAD", "validate_on_load", &cfg.ValidateOnLoad},
		{"TASKS_LOG_TIMESTAMPS", "log_timestamps", &cfg.LogTimestamps},
		{"TASKS_LOG_CALLER", "log_caller", &cfg.LogCaller},
	}
	for _, v := range boolVars {
		if val := os.Getenv(v.env); val != "" {
			*v.dst = boolFromString(val)
			setEnv(v.field)
		}
	}

	return nil
}

// boolFromString parses a boolean from a string.
func boolFromString(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "1" || s == "true" || s == "yes" || s == "on"
}
