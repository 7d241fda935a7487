package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/todolists/internal/api"
	"github.com/idilsaglam/todolists/internal/ui"
	"github.com/idilsaglam/todolists/internal/validate"
)

const (
	loginFocusEmail = iota
	loginFocusPassword
	loginFocusSubmit
	loginFocusRegister
	loginFocusCount
)

type loginPage struct {
	env      *env
	email    field
	password field
	focus    int

	submitting   bool
	requestError string
}

func newLoginPage(e *env) *loginPage {
	t := ui.Current()
	p := &loginPage{
		env:      e,
		email:    newField("Your email address:", t.IconMail, "john@doe.com", validate.LoginEmail),
		password: newPasswordField("Your password:", t.IconKey, "password", validate.LoginPassword),
	}
	p.applyFocus()
	return p
}

func (p *loginPage) Init() tea.Cmd { return nil }

func (p *loginPage) canSubmit() bool {
	return !p.submitting && validate.CanSubmit(p.email.check(), p.password.check())
}

func (p *loginPage) applyFocus() {
	p.email.blur()
	p.password.blur()
	switch p.focus {
	case loginFocusEmail:
		p.email.focus()
	case loginFocusPassword:
		p.password.focus()
	}
}

func (p *loginPage) Update(msg tea.Msg) (page, tea.Cmd) {
	switch msg := msg.(type) {
	case loginResultMsg:
		p.submitting = false
		if msg.err != nil {
			p.requestError = api.Message(msg.err)
			return p, nil
		}
		return p, resetSession

	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "down":
			p.focus = cycle(p.focus, 1, loginFocusCount)
			p.applyFocus()
			return p, nil
		case "shift+tab", "up":
			p.focus = cycle(p.focus, -1, loginFocusCount)
			p.applyFocus()
			return p, nil
		case "enter":
			switch p.focus {
			case loginFocusEmail:
				p.focus = loginFocusPassword
				p.applyFocus()
				return p, nil
			case loginFocusPassword, loginFocusSubmit:
				if p.canSubmit() {
					return p, p.submit()
				}
				return p, nil
			case loginFocusRegister:
				return p, navigate("/register")
			}
		}
	}

	var cmd tea.Cmd
	switch p.focus {
	case loginFocusEmail:
		p.email, cmd = p.email.update(msg)
	case loginFocusPassword:
		p.password, cmd = p.password.update(msg)
	}
	return p, cmd
}

func (p *loginPage) submit() tea.Cmd {
	p.submitting = true
	p.requestError = ""
	e := p.env
	email := strings.TrimSpace(p.email.value())
	password := p.password.value()
	return func() tea.Msg {
		err := e.backend.Login(e.ctx, email, password)
		if err != nil {
			e.log.Warnf("login: %v", err)
		} else {
			e.sessionChanged()
		}
		return loginResultMsg{err: err}
	}
}

func (p *loginPage) View() string {
	rows := []string{ui.TitleStyle().Render("Log In"), ""}
	if p.requestError != "" {
		rows = append(rows, ui.Banner(p.requestError))
	}
	rows = append(rows, p.email.view(), p.password.view(), "")
	rows = append(rows, ui.Button("Log In", ui.Primary, p.canSubmit(), p.focus == loginFocusSubmit), "")
	rows = append(rows, linkText("Don't have an account? Register here!", p.focus == loginFocusRegister))
	rows = append(rows, "", helpLine(keys.Next, keys.Select, keys.Quit))
	return centered(p.env, ui.Box().Render(lipgloss.JoinVertical(lipgloss.Left, rows...)))
}

func linkText(s string, focused bool) string {
	if focused {
		return ui.AccentStyle().Underline(true).Render("> " + s)
	}
	return ui.AccentStyle().Render("  " + s)
}

func centered(e *env, s string) string {
	return lipgloss.PlaceHorizontal(e.width, lipgloss.Center, s)
}
