package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	xansi "github.com/charmbracelet/x/ansi"

	"github.com/idilsaglam/todolists/internal/model"
	"github.com/idilsaglam/todolists/internal/ui"
)

const noTasksText = "You don't have a task yet.\nConsider creating one. 😉"

// taskItem adapts model.Task to bubbles/list.Item.
type taskItem struct{ task model.Task }

func (i taskItem) FilterValue() string { return i.task.Title }

// toggleLabel names the action, i.e. the status the task would move to.
func toggleLabel(t model.Task) string {
	if t.IsDone {
		return "Mark as IN PROGRESS"
	}
	return "Mark as DONE"
}

// taskDelegate renders title + status, the description, and for the
// selected row its two actions.
type taskDelegate struct{}

func (d taskDelegate) Height() int                         { return 3 }
func (d taskDelegate) Spacing() int                        { return 1 }
func (d taskDelegate) Update(tea.Msg, *list.Model) tea.Cmd { return nil }
func (d taskDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, _ := item.(taskItem)
	t := it.task
	th := ui.Current()

	box, title := ui.MutedStyle().Render(th.BoxUnchecked), ui.TitleStyle().Render(t.Title)
	status := ui.AccentStyle().Render(t.Status())
	if t.IsDone {
		box = ui.DoneStyle().Strikethrough(false).Render(th.BoxChecked)
		title = ui.DoneStyle().Render(t.Title)
		status = ui.MutedStyle().Render(t.Status())
	}

	selected := index == m.Index()
	prefix := "  "
	if selected {
		prefix = ui.AccentStyle().Render("> ")
	}

	desc := t.Description
	if w := m.Width() - 6; w > 0 {
		desc = xansi.Truncate(desc, w, "…")
	}

	actions := ""
	if selected {
		actions = "    " + ui.Button(toggleLabel(t), ui.Warning, true, false) + " " +
			ui.Button("Delete", ui.Danger, true, false)
	}
	fmt.Fprintf(w, "%s%s %s - %s\n    %s\n%s", prefix, box, title, status, ui.MutedStyle().Render(desc), actions)
}

func newTaskList() list.Model {
	l := list.New(nil, taskDelegate{}, 0, 0)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetStatusBarItemName("task", "tasks")
	l.DisableQuitKeybindings()
	l.FilterInput.Prompt = "/ "
	return l
}

func taskItems(tasks []model.Task) []list.Item {
	items := make([]list.Item, 0, len(tasks))
	for _, t := range tasks {
		items = append(items, taskItem{task: t})
	}
	return items
}

// indexOfTask finds a task in the unfiltered items.
func indexOfTask(items []list.Item, id int) int {
	for i, it := range items {
		if ti, ok := it.(taskItem); ok && ti.task.ID == id {
			return i
		}
	}
	return -1
}

func tasksOf(items []list.Item) []model.Task {
	out := make([]model.Task, 0, len(items))
	for _, it := range items {
		if ti, ok := it.(taskItem); ok {
			out = append(out, ti.task)
		}
	}
	return out
}
