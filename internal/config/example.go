package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# tasks configuration file
# Values can be overridden by TASKS_* environment variables or CLI flags

# Storage backend: file, memory, redis or sqlite
backend = "file"

# Data directory (supports ~ expansion and %VAR% on Windows)
data_dir = "~/.tasks"

# File backend storage file (relative to data_dir)
storage_file = "storage.json"

# SQLite backend database (relative to data_dir)
sqlite_path = "tasks.db"

# Redis backend
redis_addr = "localhost:6379"
# redis_password = ""
redis_db = 0
redis_prefix = "tasks:"

# Filter the terminal UI opens with: all, active, completed or favorites
default_filter = "all"

# Reject a stored task list that fails schema validation
validate_on_load = true

# Logging
log_level = "info"      # debug, info, warn, error
log_format = "text"     # text, json, logfmt
log_timestamps = false
log_caller = false
`
}
