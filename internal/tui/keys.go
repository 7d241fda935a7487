package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/idilsaglam/todolists/internal/ui"
)

type keyMap struct {
	Next    key.Binding
	Prev    key.Binding
	Select  key.Binding
	Back    key.Binding
	Toggle  key.Binding
	Delete  key.Binding
	NewTask key.Binding
	Confirm key.Binding
	Cancel  key.Binding
	Quit    key.Binding
}

var keys = keyMap{
	Next:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next")),
	Prev:    key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev")),
	Select:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
	Back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	Toggle:  key.NewBinding(key.WithKeys(" ", "t"), key.WithHelp("space", "toggle")),
	Delete:  key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
	NewTask: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new task")),
	Confirm: key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "confirm")),
	Cancel:  key.NewBinding(key.WithKeys("esc", "n"), key.WithHelp("esc", "cancel")),
	Quit:    key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
}

// helpLine renders bindings as "key: desc • key: desc".
func helpLine(bindings ...key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		if !b.Enabled() {
			continue
		}
		h := b.Help()
		parts = append(parts, h.Key+": "+h.Desc)
	}
	return ui.MutedStyle().Render(strings.Join(parts, " • "))
}

// cycle moves i by delta within [0,n).
func cycle(i, delta, n int) int {
	if n <= 0 {
		return 0
	}
	return ((i+delta)%n + n) % n
}
