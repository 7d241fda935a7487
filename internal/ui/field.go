package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/todolists/internal/validate"
)

// Field renders a labeled input: label line, icon + input line, and the
// validation message underneath when the result is an error.
func Field(label, icon, input string, res validate.Result, focused bool) string {
	edge := current.BorderColor
	switch {
	case res.IsError:
		edge = current.Danger
	case focused:
		edge = current.Accent
	}
	iconCell := lipgloss.NewStyle().Foreground(current.Muted).Render(icon)
	row := lipgloss.NewStyle().
		Border(current.Frame).
		BorderForeground(edge).
		Padding(0, 1).
		Render(iconCell + " " + input)

	parts := []string{}
	if label != "" {
		parts = append(parts, label)
	}
	parts = append(parts, row)
	if res.IsError {
		parts = append(parts, ErrorStyle().Render(res.Message))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// Banner is the boxed request error shown above a form.
func Banner(msg string) string {
	return lipgloss.NewStyle().
		Border(current.Frame).
		BorderForeground(current.Danger).
		Foreground(current.Danger).
		Padding(0, 1).
		Render(msg)
}
