package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/todolists/internal/model"
	"github.com/idilsaglam/todolists/internal/ui"
	"github.com/idilsaglam/todolists/internal/validate"
)

const noListsText = "You don't have a list yet.\nConsider creating one. 😉"

// listItem adapts model.List to bubbles/list.Item.
type listItem struct{ list model.List }

func (i listItem) FilterValue() string { return i.list.Name }

type listDelegate struct{ userID int }

func (d listDelegate) Height() int                         { return 1 }
func (d listDelegate) Spacing() int                        { return 0 }
func (d listDelegate) Update(tea.Msg, *list.Model) tea.Cmd { return nil }
func (d listDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, _ := item.(listItem)
	owner := "You"
	if it.list.OwnerID != d.userID {
		owner = fmt.Sprintf("#%d", it.list.OwnerID)
	}
	prefix, name := "  ", it.list.Name
	if index == m.Index() {
		prefix = ui.AccentStyle().Render("> ")
		name = ui.TitleStyle().Render(name)
	}
	fmt.Fprintf(w, "%s%s %s  %s", prefix, ui.Current().Bullet, name, ui.MutedStyle().Render("Owner: "+owner))
}

// listCollection is the user's lists plus the create-list row.
type listCollection struct {
	env      *env
	userID   int
	loaded   bool
	list     list.Model
	name     field
	creating bool
}

func newListCollection(e *env, userID int) listCollection {
	l := list.New(nil, listDelegate{userID: userID}, 0, 0)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetStatusBarItemName("list", "lists")
	l.DisableQuitKeybindings()
	l.FilterInput.Prompt = "/ "

	return listCollection{
		env:    e,
		userID: userID,
		list:   l,
		name:   newField("", ui.Current().IconList, "Name of the new list", validate.ListName),
	}
}

func (c *listCollection) load() tea.Cmd {
	e, userID := c.env, c.userID
	return func() tea.Msg {
		lists, err := e.backend.ListsForUser(e.ctx, userID)
		return listsLoadedMsg{userID: userID, lists: lists, err: err}
	}
}

func (c *listCollection) canCreate() bool {
	return !c.creating && validate.ListNameReady(c.name.value())
}

func (c *listCollection) create() tea.Cmd {
	if !c.canCreate() {
		return nil
	}
	c.creating = true
	e := c.env
	name := strings.TrimSpace(c.name.value())
	return func() tea.Msg {
		l, err := e.backend.CreateList(e.ctx, name)
		return listCreatedMsg{list: l, err: err}
	}
}

func (c *listCollection) selected() (model.List, bool) {
	it, ok := c.list.SelectedItem().(listItem)
	return it.list, ok
}

func (c *listCollection) filtering() bool {
	return c.list.FilterState() == list.Filtering
}

// handle applies collection results. It reports whether msg was one.
func (c *listCollection) handle(msg tea.Msg) (bool, tea.Cmd) {
	switch msg := msg.(type) {
	case listsLoadedMsg:
		if msg.userID != c.userID {
			return true, nil
		}
		c.loaded = true
		if msg.err != nil {
			c.env.log.Warnf("lists for user %d: %v", c.userID, msg.err)
			return true, c.list.SetItems(nil)
		}
		items := make([]list.Item, 0, len(msg.lists))
		for _, l := range msg.lists {
			items = append(items, listItem{list: l})
		}
		return true, c.list.SetItems(items)

	case listCreatedMsg:
		c.creating = false
		if msg.err != nil {
			c.env.log.Warnf("create list: %v", msg.err)
			return true, nil
		}
		c.name.reset()
		cmd := c.list.InsertItem(0, listItem{list: msg.list})
		c.list.Select(0)
		return true, cmd
	}
	return false, nil
}

func (c *listCollection) view(focusName, focusCreate, focusLists bool) string {
	create := lipgloss.JoinHorizontal(lipgloss.Center,
		c.name.view(), " ",
		ui.Button("Create", ui.Secondary, c.canCreate(), focusCreate))

	var body string
	switch {
	case !c.loaded:
		body = ui.MutedStyle().Render("Loading...")
	case len(c.list.Items()) == 0:
		body = ui.MutedStyle().Render(noListsText)
	default:
		w, h := c.env.width-6, c.env.height-14
		if w < 20 {
			w = 20
		}
		if h < 5 {
			h = 5
		}
		c.list.SetSize(w, h)
		body = c.list.View()
	}

	title := ui.TitleStyle().Render("Your Lists")
	if focusLists {
		title = ui.AccentStyle().Bold(true).Render("Your Lists")
	}
	return ui.Box().Render(lipgloss.JoinVertical(lipgloss.Left, title, "", create, "", body))
}
