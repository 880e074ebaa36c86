package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/sebastiantruijens/vincent/theme"
)

// palette holds the colours of one theme.
type palette struct {
	primary   lipgloss.Color
	secondary lipgloss.Color
	accent    lipgloss.Color
	muted     lipgloss.Color
	errorFg   lipgloss.Color
	infoFg    lipgloss.Color
}

var (
	darkPalette = palette{
		primary:   lipgloss.Color("#E50914"),
		secondary: lipgloss.Color("#F5F5F1"),
		accent:    lipgloss.Color("#564D4D"),
		muted:     lipgloss.Color("#8C8C8C"),
		errorFg:   lipgloss.Color("#FF5F5F"),
		infoFg:    lipgloss.Color("#5FAFFF"),
	}

	lightPalette = palette{
		primary:   lipgloss.Color("#B20710"),
		secondary: lipgloss.Color("#1C1C1C"),
		accent:    lipgloss.Color("#B8B0B0"),
		muted:     lipgloss.Color("#6C6C6C"),
		errorFg:   lipgloss.Color("#D70000"),
		infoFg:    lipgloss.Color("#005FAF"),
	}
)

// styles are rebuilt whenever the theme changes.
type styles struct {
	title       lipgloss.Style
	subtitle    lipgloss.Style
	normal      lipgloss.Style
	muted       lipgloss.Style
	highlighted lipgloss.Style
	score       lipgloss.Style

	tab       lipgloss.Style
	activeTab lipgloss.Style

	input       lipgloss.Style
	filterPanel lipgloss.Style
	control     lipgloss.Style
	activeCtl   lipgloss.Style

	card      lipgloss.Style
	smallCard lipgloss.Style
	selected  lipgloss.Style

	overlay lipgloss.Style

	errorToast lipgloss.Style
	infoToast  lipgloss.Style

	spinner lipgloss.Style
}

func newStyles(p theme.Preference) styles {
	c := lightPalette
	if p.IsDark() {
		c = darkPalette
	}

	return styles{
		title: lipgloss.NewStyle().
			Foreground(c.primary).
			Bold(true),
		subtitle: lipgloss.NewStyle().
			Foreground(c.secondary).
			Bold(true),
		normal: lipgloss.NewStyle().
			Foreground(c.secondary),
		muted: lipgloss.NewStyle().
			Foreground(c.muted),
		highlighted: lipgloss.NewStyle().
			Foreground(c.primary).
			Bold(true),
		score: lipgloss.NewStyle().
			Foreground(c.secondary).
			Bold(true),

		tab: lipgloss.NewStyle().
			Foreground(c.muted).
			Padding(0, 1),
		activeTab: lipgloss.NewStyle().
			Foreground(c.primary).
			Bold(true).
			Underline(true).
			Padding(0, 1),

		input: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(c.primary).
			Padding(0, 1),
		filterPanel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(c.accent).
			Padding(0, 1),
		control: lipgloss.NewStyle().
			Foreground(c.secondary).
			Padding(0, 1),
		activeCtl: lipgloss.NewStyle().
			Foreground(c.primary).
			Bold(true).
			Padding(0, 1),

		card: lipgloss.NewStyle().
			Foreground(c.secondary),
		smallCard: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(c.accent).
			Padding(0, 1),
		selected: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(c.primary).
			Padding(0, 1),

		overlay: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(c.primary).
			Padding(1, 2),

		errorToast: lipgloss.NewStyle().
			Foreground(c.errorFg).
			Bold(true),
		infoToast: lipgloss.NewStyle().
			Foreground(c.infoFg),

		spinner: lipgloss.NewStyle().
			Foreground(c.primary),
	}
}
