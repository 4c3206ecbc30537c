// Package ui provides the interactive terminal interface.
package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/nibzard/tasks/internal/theme"
	"github.com/nibzard/tasks/internal/todo"
)

// ErrNotTTY is returned by RunTUI when stdout is not a terminal.
var ErrNotTTY = errors.New("tui requires a TTY")

// TUIOption configures the TUI behavior.
type TUIOption func(*tuiModel)

// WithLogger sets the logger for UI events.
func WithLogger(l *log.Logger) TUIOption {
	return func(m *tuiModel) { m.logger = l }
}

// RunTUI starts the TUI over store and th. It requires stdout to be a TTY.
func RunTUI(ctx context.Context, store *todo.Store, th *theme.Theme, opts ...TUIOption) error {
	if !IsTTY(os.Stdout) {
		return ErrNotTTY
	}
	return runProgram(ctx, newTUIModel(ctx, store, th, opts...))
}

func runProgram(ctx context.Context, model *tuiModel) error {
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	finalModel, err := program.Run()
	if err != nil {
		return err
	}
	if m, ok := finalModel.(*tuiModel); ok && m.lastErr != nil {
		return m.lastErr
	}
	return nil
}

type mode int

const (
	modeList mode = iota
	modeAdd
	modeSearch
	modeEdit
)

type tuiModel struct {
	ctx    context.Context
	store  *todo.Store
	theme  *theme.Theme
	styles theme.Styles
	logger *log.Logger

	mode      mode
	cursor    int
	editingID todo.ID
	addInput  textinput.Model
	search    textinput.Model
	editInput textinput.Model

	showHelp bool
	status   string
	// lastErr is the most recent save error; it is reported on exit.
	lastErr error
	width   int
}

func newTUIModel(ctx context.Context, store *todo.Store, th *theme.Theme, opts ...TUIOption) *tuiModel {
	add := textinput.New()
	add.Placeholder = "What needs to be done?"
	add.Prompt = "+ "
	add.CharLimit = 500
	add.Width = 50

	search := textinput.New()
	search.Placeholder = "Search tasks..."
	search.Prompt = "/ "
	search.Width = 50
	search.SetValue(store.Search())

	edit := textinput.New()
	edit.Prompt = "> "
	edit.CharLimit = 500
	edit.Width = 50

	m := &tuiModel{
		ctx:       ctx,
		store:     store,
		theme:     th,
		styles:    th.Styles(),
		logger:    log.New(io.Discard),
		addInput:  add,
		search:    search,
		editInput: edit,
	}
	for _, opt := range opts {
		opt(m)
	}
	// The add input has focus on start.
	m.mode = modeAdd
	m.addInput.Focus()
	return m
}

func (m *tuiModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		w := msg.Width - 10
		if w > 10 {
			m.addInput.Width = w
			m.search.Width = w
			m.editInput.Width = w
		}
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.showHelp {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "h", "?", "esc":
				m.showHelp = false
			}
			return m, nil
		}
		switch m.mode {
		case modeAdd:
			return m.updateAdd(msg)
		case modeSearch:
			return m.updateSearch(msg)
		case modeEdit:
			return m.updateEdit(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m *tuiModel) updateAdd(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "tab":
		m.addInput.Blur()
		m.mode = modeList
		return m, nil
	case "enter":
		task, ok, err := m.store.Add(m.ctx, m.addInput.Value())
		m.report(err)
		if ok {
			m.addInput.SetValue("")
			m.cursor = 0
			if err == nil {
				m.status = fmt.Sprintf("Added %q", task.Text)
			}
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.addInput, cmd = m.addInput.Update(msg)
	return m, cmd
}

func (m *tuiModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter", "tab":
		m.search.Blur()
		m.mode = modeList
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.store.SetSearch(m.search.Value())
	m.clampCursor()
	return m, cmd
}

func (m *tuiModel) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.finishEdit()
		m.status = "Edit cancelled"
		return m, nil
	case "enter":
		changed, err := m.store.Edit(m.ctx, m.editingID, m.editInput.Value())
		m.report(err)
		if changed && err == nil {
			m.status = "Task updated"
		}
		m.finishEdit()
		return m, nil
	}
	var cmd tea.Cmd
	m.editInput, cmd = m.editInput.Update(msg)
	return m, cmd
}

func (m *tuiModel) finishEdit() {
	m.editInput.Blur()
	m.editInput.SetValue("")
	m.editingID = ""
	m.mode = modeList
	m.clampCursor()
}

func (m *tuiModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "h", "?":
		m.showHelp = true
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		m.cursor++
		m.clampCursor()
	case "a", "i":
		m.mode = modeAdd
		return m, m.addInput.Focus()
	case "/":
		m.mode = modeSearch
		return m, m.search.Focus()
	case "esc":
		m.search.SetValue("")
		m.store.SetSearch("")
		m.clampCursor()
	case "1":
		m.setFilter(todo.FilterAll)
	case "2":
		m.setFilter(todo.FilterActive)
	case "3":
		m.setFilter(todo.FilterCompleted)
	case "4":
		m.setFilter(todo.FilterFavorites)
	case "0":
		m.setFilter(todo.FilterAll)
		m.search.SetValue("")
		m.store.SetSearch("")
	case " ", "space", "enter":
		if t, ok := m.selected(); ok {
			_, err := m.store.ToggleCompleted(m.ctx, t.ID)
			m.report(err)
			m.clampCursor()
		}
	case "f":
		if t, ok := m.selected(); ok {
			_, err := m.store.ToggleFavorite(m.ctx, t.ID)
			m.report(err)
			m.clampCursor()
		}
	case "e":
		if t, ok := m.selected(); ok {
			m.mode = modeEdit
			m.editingID = t.ID
			m.editInput.SetValue(t.Text)
			m.editInput.CursorEnd()
			return m, m.editInput.Focus()
		}
	case "d", "x", "delete":
		if t, ok := m.selected(); ok {
			_, err := m.store.Remove(m.ctx, t.ID)
			m.report(err)
			if err == nil {
				m.status = fmt.Sprintf("Deleted %q", t.Text)
			}
			m.clampCursor()
		}
	case "C":
		if m.store.Counts().Completed > 0 {
			n, err := m.store.ClearCompleted(m.ctx)
			m.report(err)
			if err == nil {
				m.status = fmt.Sprintf("Cleared %d completed", n)
			}
			m.clampCursor()
		}
	case "t":
		dark, err := m.theme.Toggle(m.ctx)
		m.report(err)
		m.styles = m.theme.Styles()
		m.logger.Debug("theme toggled", "dark", dark)
	}
	return m, nil
}

func (m *tuiModel) setFilter(f todo.Filter) {
	m.store.SetFilter(f)
	m.cursor = 0
}

func (m *tuiModel) selected() (todo.Task, bool) {
	visible := m.store.Visible()
	if m.cursor < 0 || m.cursor >= len(visible) {
		return todo.Task{}, false
	}
	return visible[m.cursor], true
}

func (m *tuiModel) clampCursor() {
	n := len(m.store.Visible())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// report records the outcome of a save. A failed save leaves the change
// applied in memory.
func (m *tuiModel) report(err error) {
	if err == nil {
		m.lastErr = nil
		return
	}
	m.lastErr = err
	m.status = "Error: " + err.Error()
	m.logger.Error("save failed", "err", err)
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
