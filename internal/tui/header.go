package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/todolists/internal/model"
	"github.com/idilsaglam/todolists/internal/ui"
)

// renderHeader is the greeting bar with the log out action.
func renderHeader(e *env, user *model.User, logoutFocused bool) string {
	name := ""
	if user != nil {
		name = user.Name
	}
	greet := "Welcome, " + ui.TitleStyle().Render(name) + "! 👋"
	btn := ui.Button("Log Out", ui.Secondary, true, logoutFocused)

	gap := e.width - lipgloss.Width(greet) - lipgloss.Width(btn) - 4
	if gap < 2 {
		gap = 2
	}
	return ui.Box().Render(greet + lipgloss.NewStyle().Width(gap).Render("") + btn)
}

// logout drops the local session even if the server call fails, saves
// that, then resets.
func logout(e *env) tea.Cmd {
	return func() tea.Msg {
		if err := e.backend.Logout(e.ctx); err != nil {
			e.log.Warnf("logout: %v", err)
		}
		e.sessionChanged()
		return sessionResetMsg{}
	}
}
