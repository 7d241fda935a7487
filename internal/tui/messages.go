package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/todolists/internal/model"
)

// Session / routing.
type sessionResolvedMsg struct{ user *model.User }
type sessionResetMsg struct{}
type navigateMsg struct{ path string }

// Transient notices.
type noticeMsg struct{ text string }
type noticeExpiredMsg struct{ seq int }

// Forms.
type loginResultMsg struct{ err error }
type registerResultMsg struct{ err error }

// Lists.
type listsLoadedMsg struct {
	userID int
	lists  []model.List
	err    error
}
type listCreatedMsg struct {
	list model.List
	err  error
}

// List detail.
type listResolvedMsg struct {
	slug string
	list model.List
	err  error
}
type tasksLoadedMsg struct {
	listID int
	tasks  []model.Task
	err    error
}
type taskCreatedMsg struct {
	listID int
	err    error
}
type taskToggledMsg struct {
	taskID int
	err    error
}
type taskDeletedMsg struct {
	listID int
	taskID int
	err    error
}

func navigate(path string) tea.Cmd {
	return func() tea.Msg { return navigateMsg{path: path} }
}

func notify(text string) tea.Cmd {
	return func() tea.Msg { return noticeMsg{text: text} }
}

func resetSession() tea.Msg { return sessionResetMsg{} }

func expireNotice(seq int, ttl time.Duration) tea.Cmd {
	return tea.Tick(ttl, func(time.Time) tea.Msg { return noticeExpiredMsg{seq: seq} })
}
