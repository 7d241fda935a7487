package ui

import "github.com/charmbracelet/lipgloss"

// Variant picks a button's color from the theme.
type Variant int

const (
	Primary Variant = iota
	Secondary
	Success
	Warning
	Danger
)

func (v Variant) String() string {
	switch v {
	case Primary:
		return "primary"
	case Secondary:
		return "secondary"
	case Success:
		return "success"
	case Warning:
		return "warning"
	case Danger:
		return "danger"
	}
	return "unknown"
}

func (v Variant) color() lipgloss.TerminalColor {
	switch v {
	case Secondary:
		return current.Secondary
	case Success:
		return current.Success
	case Warning:
		return current.Warning
	case Danger:
		return current.Danger
	}
	return current.Primary
}

// Button renders a clickable label. Disabled buttons are muted and never
// look focused; focused ones are bracketed so they read without color.
func Button(label string, v Variant, active, focused bool) string {
	st := lipgloss.NewStyle().Padding(0, 1)
	switch {
	case !active:
		st = st.Foreground(current.Muted).Faint(true)
		return st.Render(" " + label + " ")
	case focused:
		st = st.Foreground(current.ButtonFg).Background(v.color()).Bold(true)
		return st.Render("[" + label + "]")
	default:
		st = st.Foreground(v.color())
		return st.Render(" " + label + " ")
	}
}
