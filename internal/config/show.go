package config

import "strconv"

// Field is one resolved setting and where it came from.
type Field struct {
	Key    string
	Value  string
	Source ConfigSource
}

// Fields returns every setting in configFields order. Secrets are masked.
func (cws *ConfigWithSources) Fields() []Field {
	c := cws.Config
	values := map[string]string{
		"backend":          c.Backend,
		"data_dir":         c.DataDir,
		"storage_file":     c.StorageFile,
		"sqlite_path":      c.SQLitePath,
		"redis_addr":       c.RedisAddr,
		"redis_password":   mask(c.RedisPassword),
		"redis_db":         strconv.Itoa(c.RedisDB),
		"redis_prefix":     c.RedisPrefix,
		"default_filter":   c.DefaultFilter,
		"validate_on_load": strconv.FormatBool(c.ValidateOnLoad),
		"log_level":        c.LogLevel,
		"log_format":       c.LogFormat,
		"log_timestamps":   strconv.FormatBool(c.LogTimestamps),
		"log_caller":       strconv.FormatBool(c.LogCaller),
	}
	fields := make([]Field, 0, len(values))
	for _, key := range configFields() {
		src := cws.Sources[key]
		if src == "" {
			src = SourceDefault
		}
		fields = append(fields, Field{Key: key, Value: values[key], Source: src})
	}
	return fields
}

func mask(secret string) string {
	if secret == "" {
		return ""
	}
	return "********"
}
