package config

import (
	"github.com/spf13/pflag"
)

// Flags holds the global CLI flags that override configuration.
type Flags struct {
	fs *pflag.FlagSet

	backend    string
	dataDir    string
	redisAddr  string
	sqlitePath string
	logLevel   string
	logFormat  string
	quiet      bool
}

// RegisterFlags defines the global flags on fs and returns the holder
// passed to Load after parsing.
func RegisterFlags(fs *pflag.FlagSet) *Flags {
	f := &Flags{fs: fs}
	fs.StringVar(&f.backend, "backend", "", "Storage backend (file, memory, redis, sqlite)")
	fs.StringVar(&f.dataDir, "data-dir", "", "Data directory (default ~/.tasks)")
	fs.StringVar(&f.redisAddr, "redis-addr", "", "Redis address for the redis backend")
	fs.StringVar(&f.sqlitePath, "sqlite-path", "", "Database path for the sqlite backend")
	fs.StringVar(&f.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&f.logFormat, "log-format", "", "Log format (text, json, logfmt)")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "Suppress informational output")
	return f
}

// apply copies explicitly set flags into cfg.
func (f *Flags) apply(cfg *Config, sources map[string]ConfigSource) {
	if f == nil || f.fs == nil {
		return
	}

	bindings := []struct {
		flag  string
		field string
		dst   *string
		val   string
	}{
		{"backend", "backend", &cfg.Backend, f.backend},
		{"data-dir", "data_dir", &cfg.DataDir, f.dataDir},
		{"redis-addr", "redis_addr", &cfg.RedisAddr, f.redisAddr},
		{"sqlite-path", "sqlite_path", &cfg.SQLitePath, f.sqlitePath},
		{"log-level", "log_level", &cfg.LogLevel, f.logLevel},
		{"log-format", "log_format", &cfg.LogFormat, f.logFormat},
	}
	for _, b := range bindings {
		if !f.fs.Changed(b.flag) {
			continue
		}
		*b.dst = b.val
		if sources != nil {
			sources[b.field] = SourceFlag
		}
	}

	cfg.Quiet = f.quiet
}
