// Package render draws memes, templates and collection summaries for the
// terminal in the light or dark palette.
package render

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/s9b/memenem/internal/domain"
)

var (
	// Light mode
	LightForeground = lipgloss.Color("#111827")
	LightMuted      = lipgloss.Color("#6B7280")
	LightBorder     = lipgloss.Color("#E5E7EB")
	LightAccent     = lipgloss.Color("#7C3AED")

	// Dark mode
	DarkForeground = lipgloss.Color("#F9FAFB")
	DarkMuted      = lipgloss.Color("#9CA3AF")
	DarkBorder     = lipgloss.Color("#374151")
	DarkAccent     = lipgloss.Color("#A78BFA")

	Destructive = lipgloss.Color("#DC2626")
	Success     = lipgloss.Color("#16A34A")
)

// Theme holds the palette and derived styles for one colour scheme.
type Theme struct {
	Name       domain.Theme
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	Accent     lipgloss.Color

	Title   lipgloss.Style
	Text    lipgloss.Style
	Faint   lipgloss.Style
	Card    lipgloss.Style
	Header  lipgloss.Style
	Error   lipgloss.Style
	Success lipgloss.Style
}

// LightTheme returns the light mode theme.
func LightTheme() Theme {
	return newTheme(domain.ThemeLight, LightForeground, LightMuted, LightBorder, LightAccent)
}

// DarkTheme returns the dark mode theme.
func DarkTheme() Theme {
	return newTheme(domain.ThemeDark, DarkForeground, DarkMuted, DarkBorder, DarkAccent)
}

// ThemeFor returns the theme matching t; anything unknown is light.
func ThemeFor(t domain.Theme) Theme {
	if t == domain.ThemeDark {
		return DarkTheme()
	}
	return LightTheme()
}

func newTheme(name domain.Theme, fg, muted, border, accent lipgloss.Color) Theme {
	return Theme{
		Name:       name,
		Foreground: fg,
		Muted:      muted,
		Border:     border,
		Accent:     accent,
		Title:      lipgloss.NewStyle().Bold(true).Foreground(accent),
		Text:       lipgloss.NewStyle().Foreground(fg),
		Faint:      lipgloss.NewStyle().Foreground(muted),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 1),
		Header:  lipgloss.NewStyle().Bold(true).Foreground(fg).Underline(true),
		Error:   lipgloss.NewStyle().Bold(true).Foreground(Destructive),
		Success: lipgloss.NewStyle().Foreground(Success),
	}
}
