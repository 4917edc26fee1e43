package tui

import "github.com/charmbracelet/lipgloss"

// Theme defines TUI colors and styles.
type Theme struct {
	Primary lipgloss.Color
	Danger  lipgloss.Color
	Warning lipgloss.Color
	Muted   lipgloss.Color
	Text    lipgloss.Color
	TextDim lipgloss.Color

	ActiveTabStyle   lipgloss.Style
	InactiveTabStyle lipgloss.Style
	SelectedStyle    lipgloss.Style
	DoneStyle        lipgloss.Style
	MutedStyle       lipgloss.Style
	WarningStyle     lipgloss.Style
	DangerStyle      lipgloss.Style
	InputStyle       lipgloss.Style
}

// DefaultTheme is the default theme.
func DefaultTheme() Theme {
	t := Theme{
		Primary: lipgloss.Color("#7C3AED"),
		Danger:  lipgloss.Color("#EF4444"),
		Warning: lipgloss.Color("#F59E0B"),
		Muted:   lipgloss.Color("#6B7280"),
		Text:    lipgloss.Color("#E5E7EB"),
		TextDim: lipgloss.Color("#9CA3AF"),
	}

	t.ActiveTabStyle = lipgloss.NewStyle().
		Foreground(t.Text).
		Background(t.Primary).
		Padding(0, 2).
		Bold(true)

	t.InactiveTabStyle = lipgloss.NewStyle().
		Foreground(t.TextDim).
		Padding(0, 2)

	t.SelectedStyle = lipgloss.NewStyle().
		Foreground(t.Primary).
		Bold(true)

	t.DoneStyle = lipgloss.NewStyle().
		Foreground(t.Muted).
		Strikethrough(true)

	t.MutedStyle = lipgloss.NewStyle().
		Foreground(t.Muted)

	t.WarningStyle = lipgloss.NewStyle().
		Foreground(t.Warning)

	t.DangerStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(t.Danger).
		Bold(true).
		Padding(0, 1)

	t.InputStyle = lipgloss.NewStyle().
		BorderBottom(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(t.Muted)

	return t
}
