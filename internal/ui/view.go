package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nibzard/tasks/internal/output"
	"github.com/nibzard/tasks/internal/theme"
	"github.com/nibzard/tasks/internal/todo"
	"github.com/nibzard/tasks/internal/utils"
)

const maxTextWidth = 60

func (m *tuiModel) View() string {
	var b strings.Builder
	m.writeHeader(&b)

	if m.showHelp {
		writeHelp(&b, m.styles)
		return b.String()
	}

	m.writeStats(&b)
	m.writeInputs(&b)
	m.writeTabs(&b)
	m.writeList(&b)
	m.writeClear(&b)
	m.writeFooter(&b)
	return b.String()
}

func (m *tuiModel) writeHeader(b *strings.Builder) {
	icon := "☾ dark"
	if m.theme.Mode() == theme.Light {
		icon = "☀ light"
	}
	title := m.styles.Title.Render("✓ Todo List")
	b.WriteString(title + "  " + m.styles.Status.Render(icon) + "\n")
	b.WriteString(m.styles.Tagline.Render("My Task Manager") + "\n\n")
}

func (m *tuiModel) writeStats(b *strings.Builder) {
	c := m.store.Counts()
	numbers := lipgloss.JoinHorizontal(lipgloss.Top,
		m.styles.StatNumber.Render(fmt.Sprint(c.Total)),
		m.styles.StatActive.Render(fmt.Sprint(c.Active)),
		m.styles.StatDone.Render(fmt.Sprint(c.Completed)),
		m.styles.StatFav.Render(fmt.Sprint(c.Favorites)),
	)
	labels := lipgloss.JoinHorizontal(lipgloss.Top,
		m.styles.StatLabel.Render("Total"),
		m.styles.StatLabel.Render("Active"),
		m.styles.StatLabel.Render("Done"),
		m.styles.StatLabel.Render("Favorites"),
	)
	b.WriteString(numbers + "\n" + labels + "\n\n")
}

func (m *tuiModel) writeInputs(b *strings.Builder) {
	b.WriteString(m.styles.Input.Render(m.addInput.View()) + "\n")
	b.WriteString(m.styles.Input.Render(m.search.View()) + "\n\n")
}

func (m *tuiModel) writeTabs(b *strings.Builder) {
	current := m.store.Filter()
	tabs := make([]string, 0, 4)
	for i, f := range todo.Filters() {
		label := fmt.Sprintf("%d %s", i+1, f.Title())
		if f == current {
			tabs = append(tabs, m.styles.ActiveTab.Render(label))
		} else {
			tabs = append(tabs, m.styles.Tab.Render(label))
		}
	}
	b.WriteString(strings.Join(tabs, " ") + "\n\n")
}

func (m *tuiModel) writeList(b *strings.Builder) {
	visible := m.store.Visible()
	if len(visible) == 0 {
		hint := output.EmptyHint(m.store.Filter(), m.store.Search())
		b.WriteString(m.styles.Empty.Render(
			m.styles.EmptyTitle.Render(output.EmptyTitle)+"\n"+hint) + "\n\n")
		return
	}
	for i, t := range visible {
		if m.mode == modeEdit && t.ID == m.editingID {
			b.WriteString("  " + m.editInput.View() + "\n")
			continue
		}
		b.WriteString(m.renderTask(t, i == m.cursor && m.mode == modeList) + "\n")
	}
	b.WriteString("\n")
}

func (m *tuiModel) renderTask(t todo.Task, selected bool) string {
	check := "[ ]"
	if t.Completed {
		check = "[x]"
	}
	star := " "
	if t.Favorite {
		star = m.styles.Star.Render("★")
	}
	text := utils.Truncate(output.NormalizeText(t.Text), maxTextWidth)
	if t.Completed {
		text = m.styles.Done.Render(text)
	}
	cursor := "  "
	if selected {
		cursor = "> "
	}
	line := fmt.Sprintf("%s%s %s %s", cursor, check, star, text)
	if selected {
		return m.styles.Selected.Render(line)
	}
	return m.styles.Item.Render(line)
}

func (m *tuiModel) writeClear(b *strings.Builder) {
	if n := m.store.Counts().Completed; n > 0 {
		b.WriteString(m.styles.ClearButton.Render(fmt.Sprintf("C  Clear Completed (%d)", n)) + "\n\n")
	}
}

func (m *tuiModel) writeFooter(b *strings.Builder) {
	if m.status != "" {
		style := m.styles.Status
		if strings.HasPrefix(m.status, "Error:") {
			style = m.styles.Error
		}
		b.WriteString(style.Render(m.status) + "\n")
	}
	var hint string
	switch m.mode {
	case modeAdd:
		hint = "enter add | esc done"
	case modeSearch:
		hint = "type to search | enter/esc done"
	case modeEdit:
		hint = "enter save | esc cancel"
	default:
		hint = "Press h for help | q to quit"
	}
	b.WriteString(m.styles.Help.Render(hint) + "\n")
}

func writeHelp(b *strings.Builder, s theme.Styles) {
	b.WriteString(s.EmptyTitle.Render("Keyboard Shortcuts") + "\n\n")
	b.WriteString(s.Help.Render(strings.Join([]string{
		"  a, i         Add a task",
		"  /            Search (applies to All)",
		"  esc          Clear search",
		"  up/k down/j  Move",
		"  space, enter Toggle completed",
		"  f            Toggle favorite",
		"  e            Edit (enter saves, esc cancels)",
		"  d, x         Delete",
		"  C            Clear completed",
		"  1            Show all",
		"  2            Show active",
		"  3            Show completed",
		"  4            Show favorites",
		"  0            Reset filter and search",
		"  t            Toggle dark mode",
		"  h, ?         Toggle this help screen",
		"  q, ctrl+c    Quit",
	}, "\n")) + "\n")
}
