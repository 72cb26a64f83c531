package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/portholedev/porthole/internal/logring"
)

// Theme defines colors for the UI.
type Theme struct {
	Name string

	Background string
	Surface    string

	SelectionBg   string
	SelectionText string

	Border      string
	BorderFocus string

	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string
	Info    string
}

// Styles contains pre-built Lipgloss styles for the theme.
type Styles struct {
	Text       lipgloss.Style
	MutedText  lipgloss.Style
	FaintText  lipgloss.Style
	AccentText lipgloss.Style

	Header lipgloss.Style
	Footer lipgloss.Style
	Border lipgloss.Style

	levels map[logring.Level]lipgloss.Style
	muted  string
}

// Styles returns Lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Text:       lipgloss.NewStyle().Foreground(lipgloss.Color(t.Text)),
		MutedText:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.Muted)),
		FaintText:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.Faint)),
		AccentText: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Accent)),

		Header: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)).
			Padding(0, 1),
		Footer: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Muted)).
			Padding(0, 1),
		Border: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Border)),

		// Level palette follows the classic log window convention: warnings
		// yellow, errors light red, fatal solid red.
		levels: map[logring.Level]lipgloss.Style{
			logring.LevelTrace: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Faint)),
			logring.LevelDebug: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Info)),
			logring.LevelInfo:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.Success)),
			logring.LevelWarn:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.Warning)),
			logring.LevelError: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Danger)).Bold(true),
			logring.LevelFatal: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Danger)).Bold(true).Underline(true),
		},
		muted: t.Muted,
	}
}

// LevelStyle returns the style for a severity level.
func (s Styles) LevelStyle(level logring.Level) lipgloss.Style {
	if style, ok := s.levels[level]; ok {
		return style
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(s.muted))
}

// Theme definitions

var themes = map[string]Theme{
	"Dracula":  draculaTheme(),
	"Nightfox": nightfoxTheme(),
	"Slate":    slateTheme(),
}

var themeOrder = []string{"Dracula", "Nightfox", "Slate"}

// GetTheme returns a theme by name.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return draculaTheme()
}

// NextTheme returns the next theme name in the cycle.
func NextTheme(current string) string {
	for i, name := range themeOrder {
		if name == current {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

// ThemeNames returns available theme names.
func ThemeNames() []string {
	return themeOrder
}

func draculaTheme() Theme {
	// Dracula palette: https://draculatheme.com
	return Theme{
		Name: "Dracula",

		Background: "#282a36",
		Surface:    "#343746",

		SelectionBg:   "#44475a",
		SelectionText: "#f8f8f2",

		Border:      "#6272a4",
		BorderFocus: "#bd93f9",

		Text:    "#f8f8f2",
		Muted:   "#6272a4",
		Faint:   "#565a75",
		Accent:  "#bd93f9",
		Success: "#50fa7b",
		Warning: "#f1fa8c",
		Danger:  "#ff5555",
		Info:    "#8be9fd",
	}
}

func nightfoxTheme() Theme {
	// Nightfox palette: https://github.com/EdenEast/nightfox.nvim
	return Theme{
		Name: "Nightfox",

		Background: "#131a24", // bg0
		Surface:    "#192330", // bg1

		SelectionBg:   "#2b3b51", // sel0
		SelectionText: "#cdcecf", // fg1

		Border:      "#39506d", // bg4
		BorderFocus: "#719cd6", // blue

		Text:    "#cdcecf", // fg1
		Muted:   "#738091", // comment
		Faint:   "#71839b", // fg3
		Accent:  "#719cd6", // blue
		Success: "#81b29a", // green
		Warning: "#dbc074", // yellow
		Danger:  "#c94f6d", // red
		Info:    "#63cdcf", // cyan
	}
}

func slateTheme() Theme {
	return Theme{
		Name: "Slate",

		Background: "#1c1f26",
		Surface:    "#262a33",

		SelectionBg:   "#39404f",
		SelectionText: "#e3e6eb",

		Border:      "#454c5c",
		BorderFocus: "#7aa2f7",

		Text:    "#e3e6eb",
		Muted:   "#8a919e",
		Faint:   "#6b7280",
		Accent:  "#7aa2f7",
		Success: "#9ece6a",
		Warning: "#e0af68",
		Danger:  "#f7768e",
		Info:    "#7dcfff",
	}
}
