package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/todolists/internal/api"
	"github.com/idilsaglam/todolists/internal/model"
	"github.com/idilsaglam/todolists/internal/ui"
)

const (
	listFocusTasks = iota
	listFocusBack
	listFocusCreate
	listFocusLogout
	listFocusCount
)

// listPage shows one list, resolved by its slug, and its tasks.
type listPage struct {
	env  *env
	user *model.User
	slug string

	list        *model.List
	tasks       list.Model
	tasksLoaded bool
	focus       int

	// at most one popup is open at a time
	form    *taskForm
	confirm *deleteConfirm
	detail  string
}

func newListPage(e *env, user *model.User, slug string) *listPage {
	return &listPage{env: e, user: user, slug: slug, tasks: newTaskList()}
}

func (p *listPage) Init() tea.Cmd {
	e, slug := p.env, p.slug
	return func() tea.Msg {
		l, err := e.backend.ListByURL(e.ctx, slug)
		return listResolvedMsg{slug: slug, list: l, err: err}
	}
}

func (p *listPage) loadTasks() tea.Cmd {
	if p.list == nil {
		return nil
	}
	e, id := p.env, p.list.ID
	return func() tea.Msg {
		tasks, err := e.backend.TasksForList(e.ctx, id)
		return tasksLoadedMsg{listID: id, tasks: tasks, err: err}
	}
}

func (p *listPage) currentListID() int {
	if p.list == nil {
		return 0
	}
	return p.list.ID
}

func (p *listPage) Update(msg tea.Msg) (page, tea.Cmd) {
	switch msg := msg.(type) {
	case listResolvedMsg:
		if msg.slug != p.slug {
			return p, nil
		}
		if msg.err != nil {
			p.env.log.Warnf("list %s: %v", p.slug, msg.err)
			return p, navigate("/")
		}
		l := msg.list
		p.list = &l
		return p, p.loadTasks()

	case tasksLoadedMsg:
		// drop responses for a list this page no longer shows
		if msg.listID != p.currentListID() {
			return p, nil
		}
		p.tasksLoaded = true
		if msg.err != nil {
			p.env.log.Warnf("tasks for list %d: %v", msg.listID, msg.err)
			return p, p.tasks.SetItems(nil)
		}
		return p, p.tasks.SetItems(taskItems(msg.tasks))

	case taskCreatedMsg:
		if msg.err != nil {
			p.env.log.Warnf("create task: %v", msg.err)
			return p, notify("Could not create the task: " + api.Message(msg.err))
		}
		if msg.listID != p.currentListID() {
			return p, nil
		}
		return p, p.loadTasks()

	case taskToggledMsg:
		if msg.err == nil {
			return p, nil
		}
		p.env.log.Warnf("toggle task %d: %v", msg.taskID, msg.err)
		items := p.tasks.Items()
		i := indexOfTask(items, msg.taskID)
		if i < 0 {
			return p, notify("Could not update the task.")
		}
		// The server toggles rather than sets, so undo by flipping again.
		it := items[i].(taskItem)
		it.task.IsDone = !it.task.IsDone
		return p, tea.Batch(
			p.tasks.SetItem(i, it),
			notify(fmt.Sprintf("Could not update %q. Its status was reverted.", it.task.Title)),
		)

	case taskDeletedMsg:
		var cmds []tea.Cmd
		if msg.err != nil {
			p.env.log.Warnf("delete task %d: %v", msg.taskID, msg.err)
			cmds = append(cmds, notify("Could not delete the task: "+api.Message(msg.err)))
		}
		if msg.listID == p.currentListID() {
			cmds = append(cmds, p.loadTasks())
		}
		return p, tea.Batch(cmds...)

	case tea.KeyMsg:
		return p.handleKey(msg)
	}

	var cmd tea.Cmd
	p.tasks, cmd = p.tasks.Update(msg)
	return p, cmd
}

func (p *listPage) handleKey(msg tea.KeyMsg) (page, tea.Cmd) {
	// popups first
	switch {
	case p.form != nil:
		action, cmd := p.form.update(msg)
		switch action {
		case formCancel:
			p.form = nil
		case formSubmit:
			return p, p.createTask()
		}
		return p, cmd

	case p.confirm != nil:
		switch msg.String() {
		case "left", "right", "tab", "shift+tab":
			p.confirm.onConfirm = !p.confirm.onConfirm
		case "y":
			return p, p.deleteTask()
		case "enter":
			if p.confirm.onConfirm {
				return p, p.deleteTask()
			}
			p.confirm = nil
		case "esc", "n":
			p.confirm = nil
		}
		return p, nil

	case p.detail != "":
		switch msg.String() {
		case "esc", "enter", "q":
			p.detail = ""
		}
		return p, nil
	}

	if p.focus == listFocusTasks && p.tasks.FilterState() == list.Filtering {
		var cmd tea.Cmd
		p.tasks, cmd = p.tasks.Update(msg)
		return p, cmd
	}

	switch msg.String() {
	case "tab":
		p.focus = cycle(p.focus, 1, listFocusCount)
		return p, nil
	case "shift+tab":
		p.focus = cycle(p.focus, -1, listFocusCount)
		return p, nil
	case "esc":
		if p.tasks.FilterState() == list.FilterApplied {
			p.tasks.ResetFilter()
			return p, nil
		}
		return p, navigate("/")
	case "n":
		return p, p.openForm()
	case "enter":
		switch p.focus {
		case listFocusBack:
			return p, navigate("/")
		case listFocusCreate:
			return p, p.openForm()
		case listFocusLogout:
			return p, logout(p.env)
		}
		if t, ok := p.selectedTask(); ok {
			p.detail = renderDescription(t, 50)
		}
		return p, nil
	case " ", "t":
		return p, p.toggle()
	case "d", "delete":
		if t, ok := p.selectedTask(); ok {
			p.confirm = &deleteConfirm{task: t, onConfirm: true}
		}
		return p, nil
	}

	if p.focus != listFocusTasks {
		return p, nil
	}
	var cmd tea.Cmd
	p.tasks, cmd = p.tasks.Update(msg)
	return p, cmd
}

func (p *listPage) selectedTask() (model.Task, bool) {
	it, ok := p.tasks.SelectedItem().(taskItem)
	return it.task, ok
}

func (p *listPage) openForm() tea.Cmd {
	if p.list == nil {
		return nil
	}
	f := newTaskForm()
	p.form = &f
	return nil
}

func (p *listPage) createTask() tea.Cmd {
	title, description := p.form.values()
	p.form = nil
	e := p.env
	nt := model.NewTask{ListID: p.list.ID, Title: title, Description: description}
	return func() tea.Msg {
		_, err := e.backend.CreateTask(e.ctx, nt)
		return taskCreatedMsg{listID: nt.ListID, err: err}
	}
}

// toggle flips the selected task right away and sends the request; the
// response only matters if it failed.
func (p *listPage) toggle() tea.Cmd {
	t, ok := p.selectedTask()
	if !ok {
		return nil
	}
	items := p.tasks.Items()
	i := indexOfTask(items, t.ID)
	if i < 0 {
		return nil
	}
	t.IsDone = !t.IsDone
	setCmd := p.tasks.SetItem(i, taskItem{task: t})

	e, id := p.env, t.ID
	return tea.Batch(setCmd, func() tea.Msg {
		err := e.backend.ToggleTask(e.ctx, id)
		return taskToggledMsg{taskID: id, err: err}
	})
}

func (p *listPage) deleteTask() tea.Cmd {
	t := p.confirm.task
	p.confirm = nil
	e, listID := p.env, p.currentListID()
	return func() tea.Msg {
		err := e.backend.DeleteTask(e.ctx, t.ID)
		return taskDeletedMsg{listID: listID, taskID: t.ID, err: err}
	}
}

func (p *listPage) View() string {
	header := renderHeader(p.env, p.user, p.focus == listFocusLogout)
	if p.list == nil {
		return lipgloss.JoinVertical(lipgloss.Left, header, ui.MutedStyle().Render("Loading..."))
	}

	nav := lipgloss.JoinHorizontal(lipgloss.Center,
		ui.Button("‹ Back", ui.Secondary, true, p.focus == listFocusBack), "  ",
		ui.TitleStyle().Render(p.list.Name), "  ",
		ui.Button("Create New Task", ui.Primary, true, p.focus == listFocusCreate))

	all := tasksOf(p.tasks.Items())
	done, _ := model.Stats(all)
	progress := fmt.Sprintf("%s  %d/%d done", ui.ProgressBar(done, len(all), 20), done, len(all))

	var body string
	switch {
	case !p.tasksLoaded:
		body = ui.MutedStyle().Render("Loading...")
	case len(all) == 0:
		body = ui.MutedStyle().Render(noTasksText)
	default:
		w, h := p.env.width-6, p.env.height-12
		if w < 30 {
			w = 30
		}
		if h < 8 {
			h = 8
		}
		p.tasks.SetSize(w, h)
		body = p.tasks.View()
	}

	help := helpLine(keys.Toggle, keys.Delete, keys.NewTask, keys.Select, keys.Back, keys.Quit)
	base := lipgloss.JoinVertical(lipgloss.Left,
		header,
		ui.Box().Render(lipgloss.JoinVertical(lipgloss.Left, nav, progress, "", body)),
		help,
	)

	var box string
	switch {
	case p.form != nil:
		box = p.form.view()
	case p.confirm != nil:
		box = p.confirm.view()
	case p.detail != "":
		box = ui.Popup("Task", p.detail+"\n\n"+helpLine(keys.Back))
	default:
		return base
	}
	return ui.Overlay(base, box, p.env.width, p.env.height)
}
