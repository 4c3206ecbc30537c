// Package cmd provides tests for CLI command handlers.
package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/nibzard/tasks/internal/exitcode"
	"github.com/nibzard/tasks/internal/theme"
	"github.com/nibzard/tasks/internal/todo"
)

// testEnv isolates config lookup and returns a data dir for --data-dir.
func testEnv(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	for _, name := range []string{
		"TASKS_BACKEND", "TASKS_DATA_DIR", "TASKS_STORAGE_FILE", "TASKS_SQLITE_PATH",
		"TASKS_REDIS_ADDR", "TASKS_REDIS_PASSWORD", "TASKS_REDIS_PREFIX", "TASKS_REDIS_DB",
		"TASKS_DEFAULT_FILTER", "TASKS_LOG_LEVEL", "TASKS_LOG_FORMAT",
		"TASKS_VALIDATE_ON_LOAD", "TASKS_LOG_TIMESTAMPS", "TASKS_LOG_CALLER",
	} {
		t.Setenv(name, "")
	}
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(home))
	t.Cleanup(func() { os.Chdir(wd) })
	return filepath.Join(home, "data")
}

type result struct {
	code   int
	stdout string
	stderr string
}

func run(t *testing.T, dataDir string, args ...string) result {
	t.Helper()
	var out, errb bytes.Buffer
	full := append([]string{"--data-dir", dataDir}, args...)
	code := Run(context.Background(), full, &out, &errb)
	return result{code: code, stdout: out.String(), stderr: errb.String()}
}

func mustRun(t *testing.T, dataDir string, args ...string) string {
	t.Helper()
	r := run(t, dataDir, args...)
	require.Equal(t, exitcode.Success, r.code, "tasks %v failed: %s", args, r.stderr)
	return r.stdout
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "tasks", cmd.Use)
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := []string{"tui", "add", "ls", "done", "fav", "edit", "rm", "clear", "stats", "export", "theme", "config", "version"}
	for _, name := range commands {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, sub.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()
	for _, name := range []string{"backend", "data-dir", "redis-addr", "sqlite-path", "log-level", "log-format", "quiet"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), "missing --%s", name)
	}
	assert.Equal(t, "q", cmd.PersistentFlags().Lookup("quiet").Shorthand)
}

func TestVersion(t *testing.T) {
	dir := testEnv(t)
	out := mustRun(t, dir, "version")
	assert.Equal(t, "tasks version dev\n", out)
}

func TestUnknownCommand(t *testing.T) {
	dir := testEnv(t)
	r := run(t, dir, "frobnicate")
	assert.Equal(t, exitcode.UserError, r.code)
	assert.Contains(t, r.stderr, "unknown command")
}

func TestAddAndList(t *testing.T) {
	dir := testEnv(t)

	assert.Equal(t, "   1  [ ]   Buy milk\n", mustRun(t, dir, "add", "Buy", "milk"))
	assert.Equal(t, "   1  [ ]   Walk dog\n", mustRun(t, dir, "add", "  Walk dog  "))

	out := mustRun(t, dir, "ls")
	assert.Equal(t, "   1  [ ]   Walk dog\n   2  [ ]   Buy milk\n", out)

	// Without a TTY the bare command lists.
	assert.Equal(t, out, mustRun(t, dir))
}

func TestAdd_BlankTextIgnored(t *testing.T) {
	dir := testEnv(t)
	mustRun(t, dir, "add", "Buy milk")

	r := run(t, dir, "add", "   ")
	assert.Equal(t, exitcode.Success, r.code)
	assert.Empty(t, r.stdout)
	assert.Empty(t, r.stderr)
	assert.Equal(t, "   1  [ ]   Buy milk\n", mustRun(t, dir, "ls"))
}

func TestList_Empty(t *testing.T) {
	dir := testEnv(t)
	assert.Equal(t, "No tasks found. Add your first task!\n", mustRun(t, dir, "ls"))
	assert.Equal(t, "No tasks found. No tasks match this filter\n", mustRun(t, dir, "ls", "--filter", "completed"))
}

func TestToggleAndFilters(t *testing.T) {
	dir := testEnv(t)
	mustRun(t, dir, "add", "Buy milk")
	mustRun(t, dir, "add", "Walk dog")
	mustRun(t, dir, "add", "Call mom")

	assert.Equal(t, "   3  [x]   Buy milk\n", mustRun(t, dir, "done", "3"))
	assert.Equal(t, "   2  [ ] * Walk dog\n", mustRun(t, dir, "fav", "2"))

	assert.Equal(t, "   3  [x]   Buy milk\n", mustRun(t, dir, "ls", "--filter", "completed"))
	assert.Equal(t, "   1  [ ]   Call mom\n   2  [ ] * Walk dog\n", mustRun(t, dir, "ls", "-f", "active"))
	assert.Equal(t, "   2  [ ] * Walk dog\n", mustRun(t, dir, "ls", "-f", "favorites"))

	// Search applies under all and is ignored under other filters.
	assert.Equal(t, "   3  [x]   Buy milk\n", mustRun(t, dir, "ls", "--search", "MILK"))
	assert.Equal(t, "   1  [ ]   Call mom\n   2  [ ] * Walk dog\n", mustRun(t, dir, "ls", "-f", "active", "-s", "milk"))
	assert.Equal(t, "No tasks found. Try a different search\n", mustRun(t, dir, "ls", "-s", "zzz"))

	assert.Equal(t, "Total: 3  Active: 2  Done: 1  Favorites: 1\n", mustRun(t, dir, "stats"))

	// Toggling again restores the task.
	assert.Equal(t, "   3  [ ]   Buy milk\n", mustRun(t, dir, "done", "3"))
}

func TestList_InvalidFilter(t *testing.T) {
	dir := testEnv(t)
	r := run(t, dir, "ls", "--filter", "someday")
	assert.Equal(t, exitcode.UserError, r.code)
	assert.Contains(t, r.stderr, "invalid filter")
}

func TestEdit(t *testing.T) {
	dir := testEnv(t)
	mustRun(t, dir, "add", "Buy milk")

	assert.Equal(t, "   1  [ ]   Buy oat milk\n", mustRun(t, dir, "edit", "1", "Buy", "oat", "milk"))

	assert.Equal(t, "   1  [ ]   Buy oat milk\n", mustRun(t, dir, "ls"))
}

func TestEdit_BlankTextIgnored(t *testing.T) {
	dir := testEnv(t)
	mustRun(t, dir, "add", "Buy milk")

	r := run(t, dir, "edit", "1", "   ")
	assert.Equal(t, exitcode.Success, r.code)
	assert.Empty(t, r.stdout)
	assert.Empty(t, r.stderr)
	assert.Equal(t, "   1  [ ]   Buy milk\n", mustRun(t, dir, "ls"))

	// The ref is still checked.
	r = run(t, dir, "edit", "9", "   ")
	assert.Equal(t, exitcode.UserError, r.code)
	assert.Contains(t, r.stderr, "no matching task")
}

func TestRemoveAndClear(t *testing.T) {
	dir := testEnv(t)
	mustRun(t, dir, "add", "A")
	mustRun(t, dir, "add", "B")
	mustRun(t, dir, "add", "C")

	assert.Equal(t, "Removed: B\n", mustRun(t, dir, "rm", "2"))
	mustRun(t, dir, "done", "1")
	mustRun(t, dir, "done", "2")

	assert.Equal(t, "Cleared 2 completed tasks\n", mustRun(t, dir, "clear"))
	assert.Equal(t, "No tasks found. Add your first task!\n", mustRun(t, dir, "ls"))
	assert.Equal(t, "Cleared 0 completed tasks\n", mustRun(t, dir, "clear"))
}

func TestRefErrors(t *testing.T) {
	dir := testEnv(t)
	mustRun(t, dir, "add", "A")

	for _, args := range [][]string{
		{"done", "5"},
		{"fav", "nope"},
		{"rm", "0"},
		{"edit", "9", "x"},
	} {
		r := run(t, dir, args...)
		assert.Equal(t, exitcode.UserError, r.code, "tasks %v", args)
		assert.Contains(t, r.stderr, "no matching task", "tasks %v", args)
	}
}

func TestRefByIDPrefix(t *testing.T) {
	dir := testEnv(t)
	mustRun(t, dir, "add", "A")

	var doc struct {
		Tasks []struct {
			ID string `json:"id"`
		} `json:"tasks"`
	}
	require.NoError(t, json.Unmarshal([]byte(mustRun(t, dir, "export")), &doc))
	require.Len(t, doc.Tasks, 1)

	// A prefix long enough to contain a letter is never read as a position.
	id := doc.Tasks[0].ID
	prefix := id
	for i, r := range id {
		if r < '0' || r > '9' {
			prefix = id[:i+1]
			break
		}
	}
	assert.Equal(t, "   1  [x]   A\n", mustRun(t, dir, "done", prefix))
}

func TestQuiet(t *testing.T) {
	dir := testEnv(t)
	assert.Empty(t, mustRun(t, dir, "-q", "add", "A"))
	assert.Empty(t, mustRun(t, dir, "--quiet", "done", "1"))
	assert.Equal(t, "   1  [x]   A\n", mustRun(t, dir, "-q", "ls"))
}

func TestPersistsStorageLayout(t *testing.T) {
	dir := testEnv(t)
	mustRun(t, dir, "add", "Buy milk")
	mustRun(t, dir, "theme", "dark")

	data, err := os.ReadFile(filepath.Join(dir, "storage.json"))
	require.NoError(t, err)
	var kv map[string]string
	require.NoError(t, json.Unmarshal(data, &kv))

	assert.Equal(t, "true", kv[theme.StorageKey])
	var tasks []todo.Task
	require.NoError(t, json.Unmarshal([]byte(kv[todo.StorageKey]), &tasks))
	require.Len(t, tasks, 1)
	assert.Equal(t, "Buy milk", tasks[0].Text)
}

func TestCorruptStorage(t *testing.T) {
	dir := testEnv(t)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	raw := `{"todo-list-app": "[{\"id\":\"a\",\"text\":\"\",\"completed\":false}]"}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "storage.json"), []byte(raw), 0o644))

	r := run(t, dir, "ls")
	assert.Equal(t, exitcode.StorageError, r.code)
	assert.Contains(t, r.stderr, "[0].text")
}

func TestTheme(t *testing.T) {
	dir := testEnv(t)
	assert.Equal(t, "light\n", mustRun(t, dir, "theme"))
	assert.Equal(t, "dark\n", mustRun(t, dir, "theme", "toggle"))
	assert.Equal(t, "dark\n", mustRun(t, dir, "theme"))
	assert.Equal(t, "light\n", mustRun(t, dir, "theme", "light"))

	r := run(t, dir, "theme", "sepia")
	assert.Equal(t, exitcode.UserError, r.code)
}

func TestExport(t *testing.T) {
	dir := testEnv(t)
	mustRun(t, dir, "add", "A")
	mustRun(t, dir, "add", "B")
	mustRun(t, dir, "done", "2")

	var doc struct {
		Stats todo.Counts `yaml:"stats"`
		Tasks []struct {
			Text      string `yaml:"text"`
			Completed bool   `yaml:"completed"`
		} `yaml:"tasks"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(mustRun(t, dir, "export", "--format", "yaml")), &doc))
	assert.Equal(t, todo.Counts{Total: 2, Active: 1, Completed: 1}, doc.Stats)
	require.Len(t, doc.Tasks, 2)
	assert.Equal(t, "B", doc.Tasks[0].Text)
	assert.True(t, doc.Tasks[1].Completed)

	r := run(t, dir, "export", "--format", "xml")
	assert.Equal(t, exitcode.UserError, r.code)
}

func TestMemoryBackend(t *testing.T) {
	dir := testEnv(t)
	mustRun(t, dir, "--backend", "memory", "add", "A")
	assert.Equal(t, "No tasks found. Add your first task!\n", mustRun(t, dir, "--backend", "memory", "ls"))
	_, err := os.Stat(filepath.Join(dir, "storage.json"))
	assert.True(t, os.IsNotExist(err))
}

func TestSQLiteBackend(t *testing.T) {
	dir := testEnv(t)
	mustRun(t, dir, "--backend", "sqlite", "add", "A")
	assert.Equal(t, "   1  [ ]   A\n", mustRun(t, dir, "--backend", "sqlite", "ls"))
	_, err := os.Stat(filepath.Join(dir, "tasks.db"))
	assert.NoError(t, err)
}

func TestUnknownBackend(t *testing.T) {
	dir := testEnv(t)
	r := run(t, dir, "--backend", "floppy", "ls")
	assert.Equal(t, exitcode.StorageError, r.code)
	assert.Contains(t, r.stderr, "unknown backend")
}

func TestConfigShow(t *testing.T) {
	dir := testEnv(t)
	out := mustRun(t, dir, "--backend", "memory", "config", "show")
	assert.Contains(t, out, "Config files: none")
	lines := strings.Split(out, "\n")
	var backend, dataDir string
	for _, l := range lines {
		if strings.HasPrefix(l, "backend ") {
			backend = l
		}
		if strings.HasPrefix(l, "data_dir ") {
			dataDir = l
		}
	}
	assert.Contains(t, backend, "memory")
	assert.Contains(t, backend, "(flag)")
	assert.Contains(t, dataDir, "(flag)")
}

func TestConfigExample(t *testing.T) {
	dir := testEnv(t)
	out := mustRun(t, dir, "config", "example")
	assert.Contains(t, out, "backend")
}

func TestTUI_RequiresTTY(t *testing.T) {
	dir := testEnv(t)
	r := run(t, dir, "tui")
	assert.Equal(t, exitcode.UserError, r.code)
	assert.Contains(t, r.stderr, "TTY")
}

func TestCompletion(t *testing.T) {
	dir := testEnv(t)
	out := mustRun(t, dir, "completion", "bash")
	assert.Contains(t, out, "bash completion")
}

func TestInterrupted(t *testing.T) {
	dir := testEnv(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out, errb bytes.Buffer
	code := Run(ctx, []string{"--data-dir", dir, "--backend", "redis", "--redis-addr", "127.0.0.1:1", "ls"}, &out, &errb)
	assert.Equal(t, exitcode.Interrupted, code)
}
