package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme bundles palette + glyphs + box borders.
// All UI helpers pull from `current`.
type Theme struct {
	Name string

	Title, Muted, Accent                    lipgloss.TerminalColor
	Primary, Secondary, Success, Warning    lipgloss.TerminalColor
	Danger, ButtonFg, BorderColor, Backdrop lipgloss.TerminalColor
	BoxUnchecked, BoxChecked, Bullet        string
	IconMail, IconKey, IconUser, IconList   string
	Frame                                   lipgloss.Border
}

var current Theme

func init() { SetTheme("classic") }

// SetTheme switches the palette. Unknown names fall back to classic.
func SetTheme(name string) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "neon":
		current = Theme{
			Name:  "neon",
			Title: lipgloss.Color("13"), Muted: lipgloss.Color("8"), Accent: lipgloss.Color("14"),
			Primary: lipgloss.Color("13"), Secondary: lipgloss.Color("8"), Success: lipgloss.Color("10"),
			Warning: lipgloss.Color("11"), Danger: lipgloss.Color("9"), ButtonFg: lipgloss.Color("0"),
			BorderColor: lipgloss.Color("14"), Backdrop: lipgloss.Color("241"),
			BoxUnchecked: "◻", BoxChecked: "◼", Bullet: "•",
			IconMail: "@", IconKey: "⚷", IconUser: "☺", IconList: "≡",
			Frame: lipgloss.RoundedBorder(),
		}
	case "mono":
		lipgloss.SetColorProfile(termenv.Ascii)
		none := lipgloss.NoColor{}
		current = Theme{
			Name:  "mono",
			Title: none, Muted: none, Accent: none,
			Primary: none, Secondary: none, Success: none,
			Warning: none, Danger: none, ButtonFg: none,
			BorderColor: none, Backdrop: none,
			BoxUnchecked: "[ ]", BoxChecked: "[x]", Bullet: "-",
			IconMail: "@", IconKey: "*", IconUser: "~", IconList: "#",
			Frame: lipgloss.NormalBorder(),
		}
	default: // classic
		current = Theme{
			Name:  "classic",
			Title: lipgloss.Color("15"), Muted: lipgloss.Color("245"), Accent: lipgloss.Color("12"),
			Primary: lipgloss.Color("27"), Secondary: lipgloss.Color("240"), Success: lipgloss.Color("34"),
			Warning: lipgloss.Color("214"), Danger: lipgloss.Color("160"), ButtonFg: lipgloss.Color("15"),
			BorderColor: lipgloss.Color("8"), Backdrop: lipgloss.Color("241"),
			BoxUnchecked: "☐", BoxChecked: "☑", Bullet: "•",
			IconMail: "✉", IconKey: "⚿", IconUser: "☺", IconList: "☰",
			Frame: lipgloss.RoundedBorder(),
		}
	}
}

// Current returns the active theme.
func Current() Theme { return current }

// Box is the framed surface every page and popup sits on.
func Box() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(current.Frame).
		BorderForeground(current.BorderColor).
		Padding(0, 1)
}

func TitleStyle() lipgloss.Style  { return lipgloss.NewStyle().Bold(true).Foreground(current.Title) }
func MutedStyle() lipgloss.Style  { return lipgloss.NewStyle().Foreground(current.Muted) }
func AccentStyle() lipgloss.Style { return lipgloss.NewStyle().Foreground(current.Accent) }
func ErrorStyle() lipgloss.Style  { return lipgloss.NewStyle().Foreground(current.Danger).Bold(true) }
func DoneStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(current.Muted).Strikethrough(true)
}
