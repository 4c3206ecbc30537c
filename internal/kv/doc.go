// Package kv provides the key-value persistence service the task list and
// theme are stored in.
//
// A Store holds string values under string keys, in the manner of a
// browser's local storage. Four backends are available:
//
//   - memory: process-local map, nothing survives exit
//   - file:   a single JSON object file ({"key": "value", ...})
//   - redis:  GET/SET on prefixed keys
//   - sqlite: a kv(key, value) table
//
// Values are opaque to this package; callers encode JSON themselves.
package kv
