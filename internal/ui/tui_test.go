package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nibzard/tasks/internal/kv"
	"github.com/nibzard/tasks/internal/theme"
	"github.com/nibzard/tasks/internal/todo"
)

func newTestModel(t *testing.T, tasks ...todo.Task) (*tuiModel, *todo.MemoryRepository, kv.Store) {
	t.Helper()
	repo := &todo.MemoryRepository{Tasks: tasks}
	seq := 0
	store, err := todo.Open(context.Background(), repo, todo.WithIDGenerator(func() todo.ID {
		seq++
		return todo.ID(fmt.Sprintf("id-%d", seq))
	}))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	themeStore := kv.NewMemory()
	return newTUIModel(context.Background(), store, theme.New(themeStore, false)), repo, themeStore
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(m *tuiModel, keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = m.Update(key(k))
	}
	return cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func sampleTasks() []todo.Task {
	return []todo.Task{
		{ID: "c", Text: "Call mom", Favorite: true},
		{ID: "w", Text: "Walk dog"},
		{ID: "b", Text: "Buy milk", Completed: true},
	}
}

func TestTUI_StartsInAddMode(t *testing.T) {
	m, _, _ := newTestModel(t)
	if m.mode != modeAdd {
		t.Errorf("mode = %v, want add", m.mode)
	}
	if !m.addInput.Focused() {
		t.Error("add input should have focus")
	}
	if !strings.Contains(m.View(), "Add your first task!") {
		t.Error("empty view should invite adding a task")
	}
}

func TestTUI_InputsFramed(t *testing.T) {
	m, _, _ := newTestModel(t)
	view := m.View()
	if got := strings.Count(view, "╭"); got != 2 {
		t.Errorf("view has %d input frames, want 2:\n%s", got, view)
	}
}

func TestTUI_AddTask(t *testing.T) {
	m, repo, _ := newTestModel(t)
	send(m, "  Buy milk ", "enter")

	tasks := m.store.Tasks()
	if len(tasks) != 1 || tasks[0].Text != "Buy milk" {
		t.Fatalf("Tasks() = %+v", tasks)
	}
	if m.addInput.Value() != "" {
		t.Errorf("input not cleared: %q", m.addInput.Value())
	}
	if repo.Saves != 1 {
		t.Errorf("Saves = %d", repo.Saves)
	}

	// Letters that are list keys are just text while adding.
	send(m, "q", "enter")
	if got := len(m.store.Tasks()); got != 2 {
		t.Errorf("len = %d, want 2", got)
	}

	send(m, "   ", "enter")
	if got := len(m.store.Tasks()); got != 2 {
		t.Errorf("blank add created a task, len = %d", got)
	}
}

func TestTUI_QuitFromList(t *testing.T) {
	m, _, _ := newTestModel(t)
	send(m, "esc")
	if m.mode != modeList {
		t.Fatalf("mode = %v, want list", m.mode)
	}
	if !isQuit(send(m, "q")) {
		t.Error("q should quit")
	}
}

func TestTUI_CtrlCQuitsAnywhere(t *testing.T) {
	m, _, _ := newTestModel(t)
	if !isQuit(send(m, "ctrl+c")) {
		t.Error("ctrl+c should quit from add mode")
	}
}

func TestTUI_ToggleAndFavorite(t *testing.T) {
	m, _, _ := newTestModel(t, sampleTasks()...)
	send(m, "esc", "down", "enter")
	got, _ := m.store.Task("w")
	if !got.Completed {
		t.Error("enter should complete the selected task")
	}
	send(m, "f")
	got, _ = m.store.Task("w")
	if !got.Favorite {
		t.Error("f should favorite the selected task")
	}
}

func TestTUI_FilterKeys(t *testing.T) {
	m, _, _ := newTestModel(t, sampleTasks()...)
	send(m, "esc")

	tests := []struct {
		key  string
		want todo.Filter
	}{
		{"2", todo.FilterActive},
		{"3", todo.FilterCompleted},
		{"4", todo.FilterFavorites},
		{"1", todo.FilterAll},
		{"3", todo.FilterCompleted},
		{"0", todo.FilterAll},
	}
	for _, tt := range tests {
		send(m, tt.key)
		if got := m.store.Filter(); got != tt.want {
			t.Errorf("after %q filter = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestTUI_Search(t *testing.T) {
	m, _, _ := newTestModel(t, sampleTasks()...)
	send(m, "esc", "/", "MILK")
	if m.store.Search() != "MILK" {
		t.Fatalf("Search() = %q", m.store.Search())
	}
	if got := m.store.Visible(); len(got) != 1 || got[0].ID != "b" {
		t.Errorf("Visible() = %+v", got)
	}
	send(m, "enter")
	if m.mode != modeList {
		t.Errorf("enter should leave search mode")
	}

	// Search is ignored under other filters.
	send(m, "2")
	if got := len(m.store.Visible()); got != 2 {
		t.Errorf("active view = %d tasks, want 2", got)
	}

	send(m, "1", "/", "zzz")
	if !strings.Contains(m.View(), "Try a different search") {
		t.Error("empty search should suggest a different search")
	}
	send(m, "esc", "esc")
	if m.store.Search() != "" {
		t.Errorf("esc in list mode should clear search, got %q", m.store.Search())
	}
}

func TestTUI_EmptyFilterMessage(t *testing.T) {
	m, _, _ := newTestModel(t, todo.Task{ID: "a", Text: "A"})
	send(m, "esc", "3")
	if !strings.Contains(m.View(), "No tasks match this filter") {
		t.Error("empty completed view should say no tasks match")
	}
}

func TestTUI_Edit(t *testing.T) {
	m, _, _ := newTestModel(t, sampleTasks()...)
	send(m, "esc", "e")
	if m.mode != modeEdit || m.editingID != "c" {
		t.Fatalf("mode = %v editing %q", m.mode, m.editingID)
	}
	if m.editInput.Value() != "Call mom" {
		t.Errorf("edit input = %q", m.editInput.Value())
	}
	m.editInput.SetValue("  Call dad ")
	send(m, "enter")
	got, _ := m.store.Task("c")
	if got.Text != "Call dad" {
		t.Errorf("Text = %q", got.Text)
	}
	if m.mode != modeList {
		t.Error("enter should end editing")
	}
}

func TestTUI_EditCancelAndEmpty(t *testing.T) {
	m, repo, _ := newTestModel(t, sampleTasks()...)
	saves := repo.Saves

	send(m, "esc", "e")
	m.editInput.SetValue("Something else")
	send(m, "esc")
	got, _ := m.store.Task("c")
	if got.Text != "Call mom" {
		t.Errorf("esc should discard the edit, got %q", got.Text)
	}

	send(m, "e")
	m.editInput.SetValue("   ")
	send(m, "enter")
	got, _ = m.store.Task("c")
	if got.Text != "Call mom" {
		t.Errorf("empty edit should be abandoned, got %q", got.Text)
	}
	if repo.Saves != saves {
		t.Errorf("cancelled edits saved %d times", repo.Saves-saves)
	}
}

func TestTUI_Delete(t *testing.T) {
	m, _, _ := newTestModel(t, sampleTasks()...)
	send(m, "esc", "down", "down", "d")
	if _, ok := m.store.Task("b"); ok {
		t.Error("d should delete the selected task")
	}
	if m.cursor != 1 {
		t.Errorf("cursor = %d, want clamped to 1", m.cursor)
	}
}

func TestTUI_ClearCompleted(t *testing.T) {
	m, _, _ := newTestModel(t, sampleTasks()...)
	send(m, "esc")
	if !strings.Contains(m.View(), "Clear Completed (1)") {
		t.Error("clear button should show with one completed task")
	}
	send(m, "C")
	if c := m.store.Counts(); c.Completed != 0 || c.Total != 2 {
		t.Errorf("Counts() = %+v", c)
	}
	if strings.Contains(m.View(), "Clear Completed") {
		t.Error("clear button should hide when nothing is completed")
	}
}

func TestTUI_ToggleTheme(t *testing.T) {
	m, _, themeStore := newTestModel(t)
	send(m, "esc", "t")
	if !m.theme.Dark() {
		t.Error("t should switch to dark mode")
	}
	raw, _, _ := themeStore.Get(context.Background(), theme.StorageKey)
	if raw != "true" {
		t.Errorf("stored %q, want true", raw)
	}
	if !strings.Contains(m.View(), "dark") {
		t.Error("header should show dark mode")
	}
}

func TestTUI_Help(t *testing.T) {
	m, _, _ := newTestModel(t)
	send(m, "esc", "?")
	if !strings.Contains(m.View(), "Keyboard Shortcuts") {
		t.Error("? should show help")
	}
	send(m, "h")
	if strings.Contains(m.View(), "Keyboard Shortcuts") {
		t.Error("h should hide help")
	}
}

func TestTUI_Stats(t *testing.T) {
	m, _, _ := newTestModel(t, sampleTasks()...)
	view := m.View()
	for _, label := range []string{"Total", "Active", "Done", "Favorites"} {
		if !strings.Contains(view, label) {
			t.Errorf("view missing %s", label)
		}
	}
}

func TestTUI_SaveErrorKeepsChange(t *testing.T) {
	m, repo, _ := newTestModel(t, sampleTasks()...)
	repo.SaveErr = errors.New("disk full")
	send(m, "esc", "d")
	if _, ok := m.store.Task("c"); ok {
		t.Error("delete should apply despite the failed save")
	}
	if !errors.Is(m.lastErr, repo.SaveErr) {
		t.Errorf("lastErr = %v", m.lastErr)
	}
	if !strings.Contains(m.View(), "disk full") {
		t.Error("view should report the save error")
	}

	repo.SaveErr = nil
	send(m, "f")
	if m.lastErr != nil {
		t.Errorf("successful save should clear the error, got %v", m.lastErr)
	}
}
