package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/todolists/internal/model"
	"github.com/idilsaglam/todolists/internal/ui"
)

// page is one routed screen.
type page interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (page, tea.Cmd)
	View() string
}

// appModel resolves the session once, then routes between pages. A reset
// drops the user and the page and resolves again.
type appModel struct {
	env     *env
	spinner spinner.Model

	loaded bool
	user   *model.User
	route  route
	page   page

	notice    string
	noticeSeq int
}

func newApp(e *env, path string) appModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = ui.AccentStyle()
	return appModel{env: e, spinner: sp, route: parseRoute(path)}
}

func (m appModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.checkSession())
}

// checkSession asks the server who is logged in. Any failure means nobody.
func (m appModel) checkSession() tea.Cmd {
	e := m.env
	return func() tea.Msg {
		u, err := e.backend.CurrentUser(e.ctx)
		if err != nil {
			e.log.Infof("session: no current user: %v", err)
			return sessionResolvedMsg{}
		}
		return sessionResolvedMsg{user: u}
	}
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if !m.loaded {
			return m, nil
		}
	case tea.WindowSizeMsg:
		m.env.width, m.env.height = msg.Width, msg.Height
	case spinner.TickMsg:
		if m.loaded {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case sessionResolvedMsg:
		m.loaded = true
		m.user = msg.user
		return m.open()
	case sessionResetMsg:
		m.loaded = false
		m.user = nil
		m.page = nil
		m.env.log.Infof("session: reset")
		return m, tea.Batch(m.spinner.Tick, m.checkSession())
	case navigateMsg:
		m.route = parseRoute(msg.path)
		if !m.loaded {
			return m, nil
		}
		return m.open()
	case noticeMsg:
		m.noticeSeq++
		m.notice = msg.text
		return m, expireNotice(m.noticeSeq, m.env.noticeTTL)
	case noticeExpiredMsg:
		if msg.seq == m.noticeSeq {
			m.notice = ""
		}
		return m, nil
	}

	if m.page == nil {
		return m, nil
	}
	var cmd tea.Cmd
	m.page, cmd = m.page.Update(msg)
	return m, cmd
}

// open builds the page for the current route.
func (m appModel) open() (tea.Model, tea.Cmd) {
	switch m.route.kind {
	case routeRegister:
		if m.user != nil {
			m.route = route{kind: routeRoot}
			return m.open()
		}
		m.page = newRegisterPage(m.env)
	case routeList:
		m.page = newListPage(m.env, m.user, m.route.slug)
	default:
		if m.user == nil {
			m.page = newLoginPage(m.env)
		} else {
			m.page = newHomePage(m.env, *m.user)
		}
	}
	m.env.log.Infof("route: %s", m.route.path())
	return m, m.page.Init()
}

func (m appModel) View() string {
	if !m.loaded || m.page == nil {
		return lipgloss.Place(m.env.width, m.env.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading...")
	}
	out := m.page.View()
	if m.notice != "" {
		out = lipgloss.JoinVertical(lipgloss.Left, ui.Banner(m.notice), out)
	}
	return out
}
