package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/todolists/internal/model"
)

const (
	homeFocusName = iota
	homeFocusCreate
	homeFocusLists
	homeFocusLogout
	homeFocusCount
)

// homePage is the header plus the user's lists.
type homePage struct {
	env   *env
	user  model.User
	lists listCollection
	focus int
}

func newHomePage(e *env, user model.User) *homePage {
	p := &homePage{env: e, user: user, lists: newListCollection(e, user.ID)}
	p.applyFocus()
	return p
}

func (p *homePage) Init() tea.Cmd { return p.lists.load() }

func (p *homePage) applyFocus() {
	if p.focus == homeFocusName {
		p.lists.name.focus()
	} else {
		p.lists.name.blur()
	}
}

func (p *homePage) Update(msg tea.Msg) (page, tea.Cmd) {
	if handled, cmd := p.lists.handle(msg); handled {
		return p, cmd
	}

	if km, ok := msg.(tea.KeyMsg); ok {
		// the filter prompt owns every key while it is open
		if p.focus == homeFocusLists && p.lists.filtering() {
			var cmd tea.Cmd
			p.lists.list, cmd = p.lists.list.Update(msg)
			return p, cmd
		}
		switch km.String() {
		case "tab":
			p.focus = cycle(p.focus, 1, homeFocusCount)
			p.applyFocus()
			return p, nil
		case "shift+tab":
			p.focus = cycle(p.focus, -1, homeFocusCount)
			p.applyFocus()
			return p, nil
		case "enter":
			switch p.focus {
			case homeFocusName, homeFocusCreate:
				return p, p.lists.create()
			case homeFocusLists:
				if l, ok := p.lists.selected(); ok {
					return p, navigate(listPath(l.URL))
				}
				return p, nil
			case homeFocusLogout:
				return p, logout(p.env)
			}
		}
	}

	var cmd tea.Cmd
	switch p.focus {
	case homeFocusName:
		p.lists.name, cmd = p.lists.name.update(msg)
	case homeFocusLists:
		p.lists.list, cmd = p.lists.list.Update(msg)
	}
	return p, cmd
}

func (p *homePage) View() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		renderHeader(p.env, &p.user, p.focus == homeFocusLogout),
		p.lists.view(p.focus == homeFocusName, p.focus == homeFocusCreate, p.focus == homeFocusLists),
		helpLine(keys.Next, keys.Select, keys.Quit),
	)
}
