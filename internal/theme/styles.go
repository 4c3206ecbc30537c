package theme

import "github.com/charmbracelet/lipgloss"

// Palette is the set of colors a mode uses.
type Palette struct {
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Accent     lipgloss.Color
	Active     lipgloss.Color
	Completed  lipgloss.Color
	Favorite   lipgloss.Color
	Danger     lipgloss.Color
	Border     lipgloss.Color
	Selection  lipgloss.Color
}

var (
	LightPalette = Palette{
		Foreground: lipgloss.Color("#1f2937"),
		Muted:      lipgloss.Color("#6b7280"),
		Accent:     lipgloss.Color("#6366f1"),
		Active:     lipgloss.Color("#3b82f6"),
		Completed:  lipgloss.Color("#10b981"),
		Favorite:   lipgloss.Color("#f59e0b"),
		Danger:     lipgloss.Color("#ef4444"),
		Border:     lipgloss.Color("#e5e7eb"),
		Selection:  lipgloss.Color("#eef2ff"),
	}
	DarkPalette = Palette{
		Foreground: lipgloss.Color("#f3f4f6"),
		Muted:      lipgloss.Color("#9ca3af"),
		Accent:     lipgloss.Color("#818cf8"),
		Active:     lipgloss.Color("#60a5fa"),
		Completed:  lipgloss.Color("#34d399"),
		Favorite:   lipgloss.Color("#fbbf24"),
		Danger:     lipgloss.Color("#f87171"),
		Border:     lipgloss.Color("#374151"),
		Selection:  lipgloss.Color("#312e81"),
	}
)

// Styles are the rendered building blocks of the UI.
type Styles struct {
	Title       lipgloss.Style
	Tagline     lipgloss.Style
	StatNumber  lipgloss.Style
	StatActive  lipgloss.Style
	StatDone    lipgloss.Style
	StatFav     lipgloss.Style
	StatLabel   lipgloss.Style
	Input       lipgloss.Style
	Tab         lipgloss.Style
	ActiveTab   lipgloss.Style
	Item        lipgloss.Style
	Selected    lipgloss.Style
	Done        lipgloss.Style
	Star        lipgloss.Style
	Empty       lipgloss.Style
	EmptyTitle  lipgloss.Style
	ClearButton lipgloss.Style
	Status      lipgloss.Style
	Error       lipgloss.Style
	Help        lipgloss.Style
}

// NewStyles builds Styles from p.
func NewStyles(p Palette) Styles {
	stat := lipgloss.NewStyle().Bold(true).Width(10).Align(lipgloss.Center)
	tab := lipgloss.NewStyle().Padding(0, 1)
	return Styles{
		Title:       lipgloss.NewStyle().Bold(true).Foreground(p.Accent),
		Tagline:     lipgloss.NewStyle().Foreground(p.Muted).Italic(true),
		StatNumber:  stat.Foreground(p.Foreground),
		StatActive:  stat.Foreground(p.Active),
		StatDone:    stat.Foreground(p.Completed),
		StatFav:     stat.Foreground(p.Favorite),
		StatLabel:   lipgloss.NewStyle().Foreground(p.Muted).Width(10).Align(lipgloss.Center),
		Input:       lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(p.Border).Padding(0, 1),
		Tab:         tab.Foreground(p.Muted),
		ActiveTab:   tab.Bold(true).Foreground(p.Accent).Underline(true),
		Item:        lipgloss.NewStyle().Foreground(p.Foreground),
		Selected:    lipgloss.NewStyle().Foreground(p.Foreground).Background(p.Selection).Bold(true),
		Done:        lipgloss.NewStyle().Foreground(p.Muted).Strikethrough(true),
		Star:        lipgloss.NewStyle().Foreground(p.Favorite),
		Empty:       lipgloss.NewStyle().Foreground(p.Muted).Padding(1, 2),
		EmptyTitle:  lipgloss.NewStyle().Bold(true).Foreground(p.Foreground),
		ClearButton: lipgloss.NewStyle().Foreground(p.Danger),
		Status:      lipgloss.NewStyle().Foreground(p.Muted),
		Error:       lipgloss.NewStyle().Foreground(p.Danger).Bold(true),
		Help:        lipgloss.NewStyle().Foreground(p.Muted),
	}
}
