package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

const (
	symCheck = "✔"
	symCross = "✖"
)

// OK prints a success line.
func OK(w io.Writer, msg string) {
	fmt.Fprintln(w, lipgloss.NewStyle().Foreground(current.Success).Render(symCheck+" "+msg))
}

// Fail prints an error line.
func Fail(w io.Writer, msg string) {
	fmt.Fprintln(w, ErrorStyle().Render(symCross+" "+msg))
}

// Hint prints a muted follow-up line.
func Hint(w io.Writer, msg string) {
	fmt.Fprintln(w, MutedStyle().Render(msg))
}
