// Package output provides formatters for CLI output.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/nibzard/tasks/internal/todo"
)

// Empty-state text shared by the CLI and the TUI.
const (
	EmptyTitle        = "No tasks found"
	EmptySearchHint   = "Try a different search"
	EmptyFilterHint   = "No tasks match this filter"
	EmptyFirstRunHint = "Add your first task!"
)

// EmptyHint returns the hint shown when the view is empty. A search query
// takes precedence over the filter, even under filters that ignore it.
func EmptyHint(f todo.Filter, query string) string {
	switch {
	case query != "":
		return EmptySearchHint
	case f != todo.FilterAll:
		return EmptyFilterHint
	default:
		return EmptyFirstRunHint
	}
}

// FormatTask formats a task line.
// Format: "{N:>4}  [{x| }] {*| } {TEXT}\n"
func FormatTask(w io.Writer, num int, task todo.Task) {
	check := " "
	if task.Completed {
		check = "x"
	}
	star := " "
	if task.Favorite {
		star = "*"
	}
	fmt.Fprintf(w, "%4d  [%s] %s %s\n", num, check, star, NormalizeText(task.Text))
}

// FormatList writes visible as task lines numbered by their position in
// all, so the numbers can be passed back as task references.
func FormatList(w io.Writer, all, visible []todo.Task) {
	pos := make(map[todo.ID]int, len(all))
	for i, t := range all {
		pos[t.ID] = i + 1
	}
	for _, t := range visible {
		FormatTask(w, pos[t.ID], t)
	}
}

// FormatEmpty writes the empty-state message.
func FormatEmpty(w io.Writer, f todo.Filter, query string) {
	fmt.Fprintf(w, "%s. %s\n", EmptyTitle, EmptyHint(f, query))
}

// FormatStats writes the counts on one line.
func FormatStats(w io.Writer, c todo.Counts) {
	fmt.Fprintf(w, "Total: %d  Active: %d  Done: %d  Favorites: %d\n",
		c.Total, c.Active, c.Completed, c.Favorites)
}

// NormalizeText prepares task text for a single line.
// - Empty or whitespace-only text becomes "(untitled)"
// - Newlines are replaced with spaces
func NormalizeText(text string) string {
	text = strings.ReplaceAll(text, "\r", " ")
	text = strings.ReplaceAll(text, "\n", " ")
	if strings.TrimSpace(text) == "" {
		return "(untitled)"
	}
	return text
}

// Export formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

type exportTask struct {
	ID        string `json:"id" yaml:"id"`
	Text      string `json:"text" yaml:"text"`
	Completed bool   `json:"completed" yaml:"completed"`
	Favorite  bool   `json:"favorite" yaml:"favorite"`
	CreatedAt string `json:"createdAt,omitempty" yaml:"createdAt,omitempty"`
}

type exportDoc struct {
	Stats todo.Counts  `json:"stats" yaml:"stats"`
	Tasks []exportTask `json:"tasks" yaml:"tasks"`
}

// Export writes tasks and their counts as indented JSON or YAML.
func Export(w io.Writer, tasks []todo.Task, format string) error {
	doc := exportDoc{Stats: todo.Count(tasks), Tasks: make([]exportTask, 0, len(tasks))}
	for _, t := range tasks {
		et := exportTask{ID: string(t.ID), Text: t.Text, Completed: t.Completed, Favorite: t.Favorite}
		if !t.CreatedAt.IsZero() {
			et.CreatedAt = t.CreatedAt.UTC().Format(time.RFC3339Nano)
		}
		doc.Tasks = append(doc.Tasks, et)
	}

	switch strings.ToLower(format) {
	case FormatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case FormatYAML, "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unknown export format %q, must be json or yaml", format)
}
