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
	registerFocusName = iota
	registerFocusEmail
	registerFocusPassword
	registerFocusSubmit
	registerFocusLogin
	registerFocusCount
)

const registeredNotice = "Your account has been created. You can log in now."

type registerPage struct {
	env      *env
	name     field
	email    field
	password field
	focus    int

	submitting   bool
	requestError string
}

func newRegisterPage(e *env) *registerPage {
	t := ui.Current()
	p := &registerPage{
		env:      e,
		name:     newField("Your name:", t.IconUser, "John Doe", validate.RegisterName),
		email:    newField("Your email address:", t.IconMail, "john@doe.com", validate.RegisterEmail),
		password: newPasswordField("Your password:", t.IconKey, "password", validate.RegisterPassword),
	}
	p.applyFocus()
	return p
}

func (p *registerPage) Init() tea.Cmd { return nil }

func (p *registerPage) canSubmit() bool {
	return !p.submitting && validate.CanSubmit(p.name.check(), p.email.check(), p.password.check())
}

func (p *registerPage) applyFocus() {
	for i, f := range []*field{&p.name, &p.email, &p.password} {
		if i == p.focus {
			f.focus()
		} else {
			f.blur()
		}
	}
}

func (p *registerPage) Update(msg tea.Msg) (page, tea.Cmd) {
	switch msg := msg.(type) {
	case registerResultMsg:
		p.submitting = false
		if msg.err != nil {
			p.requestError = api.Message(msg.err)
			return p, nil
		}
		return p, tea.Batch(navigate("/"), notify(registeredNotice))

	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "down":
			p.focus = cycle(p.focus, 1, registerFocusCount)
			p.applyFocus()
			return p, nil
		case "shift+tab", "up":
			p.focus = cycle(p.focus, -1, registerFocusCount)
			p.applyFocus()
			return p, nil
		case "enter":
			switch p.focus {
			case registerFocusName, registerFocusEmail:
				p.focus++
				p.applyFocus()
				return p, nil
			case registerFocusPassword, registerFocusSubmit:
				if p.canSubmit() {
					return p, p.submit()
				}
				return p, nil
			case registerFocusLogin:
				return p, navigate("/")
			}
		}
	}

	var cmd tea.Cmd
	switch p.focus {
	case registerFocusName:
		p.name, cmd = p.name.update(msg)
	case registerFocusEmail:
		p.email, cmd = p.email.update(msg)
	case registerFocusPassword:
		p.password, cmd = p.password.update(msg)
	}
	return p, cmd
}

func (p *registerPage) submit() tea.Cmd {
	p.submitting = true
	p.requestError = ""
	e := p.env
	name := strings.TrimSpace(p.name.value())
	email := strings.TrimSpace(p.email.value())
	password := p.password.value()
	return func() tea.Msg {
		err := e.backend.Register(e.ctx, name, email, password)
		if err != nil {
			e.log.Warnf("register: %v", err)
		}
		return registerResultMsg{err: err}
	}
}

func (p *registerPage) View() string {
	rows := []string{ui.TitleStyle().Render("Register"), ""}
	if p.requestError != "" {
		rows = append(rows, ui.Banner(p.requestError))
	}
	rows = append(rows, p.name.view(), p.email.view(), p.password.view(), "")
	rows = append(rows, ui.Button("Register", ui.Primary, p.canSubmit(), p.focus == registerFocusSubmit), "")
	rows = append(rows, linkText("Already have an account? Log in here!", p.focus == registerFocusLogin))
	rows = append(rows, "", helpLine(keys.Next, keys.Select, keys.Quit))
	return centered(p.env, ui.Box().Render(lipgloss.JoinVertical(lipgloss.Left, rows...)))
}
