package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/todolists/internal/model"
	"github.com/idilsaglam/todolists/internal/ui"
	"github.com/idilsaglam/todolists/internal/validate"
)

const (
	formFocusTitle = iota
	formFocusDescription
	formFocusCreate
	formFocusCancel
	formFocusCount
)

// taskForm is the create-task popup.
type taskForm struct {
	title       field
	description field
	focus       int
}

func newTaskForm() taskForm {
	t := ui.Current()
	f := taskForm{
		title:       newField("Title:", t.IconList, "Buy milk", validate.TaskTitle),
		description: newField("Description:", t.Bullet, "What needs doing", validate.TaskDescription),
	}
	f.applyFocus()
	return f
}

func (f *taskForm) applyFocus() {
	f.title.blur()
	f.description.blur()
	switch f.focus {
	case formFocusTitle:
		f.title.focus()
	case formFocusDescription:
		f.description.focus()
	}
}

func (f *taskForm) canSubmit() bool {
	return validate.CanSubmit(f.title.check(), f.description.check())
}

func (f *taskForm) values() (title, description string) {
	return strings.TrimSpace(f.title.value()), strings.TrimSpace(f.description.value())
}

type formAction int

const (
	formNone formAction = iota
	formSubmit
	formCancel
)

func (f *taskForm) update(msg tea.Msg) (formAction, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "esc":
			return formCancel, nil
		case "tab", "down":
			f.focus = cycle(f.focus, 1, formFocusCount)
			f.applyFocus()
			return formNone, nil
		case "shift+tab", "up":
			f.focus = cycle(f.focus, -1, formFocusCount)
			f.applyFocus()
			return formNone, nil
		case "enter":
			switch f.focus {
			case formFocusTitle:
				f.focus = formFocusDescription
				f.applyFocus()
				return formNone, nil
			case formFocusCancel:
				return formCancel, nil
			}
			if f.canSubmit() {
				return formSubmit, nil
			}
			return formNone, nil
		}
	}
	var cmd tea.Cmd
	switch f.focus {
	case formFocusTitle:
		f.title, cmd = f.title.update(msg)
	case formFocusDescription:
		f.description, cmd = f.description.update(msg)
	}
	return formNone, cmd
}

func (f *taskForm) view() string {
	buttons := ui.Button("Create", ui.Success, f.canSubmit(), f.focus == formFocusCreate) + " " +
		ui.Button("Cancel", ui.Secondary, true, f.focus == formFocusCancel)
	return ui.Popup("Create a new task",
		lipgloss.JoinVertical(lipgloss.Left, f.title.view(), f.description.view(), "", buttons))
}

// deleteConfirm asks before a task is deleted.
type deleteConfirm struct {
	task      model.Task
	onConfirm bool
}

func (d deleteConfirm) view() string {
	body := fmt.Sprintf("Delete %q? This cannot be undone.", d.task.Title)
	buttons := ui.Button("Delete", ui.Danger, true, d.onConfirm) + " " +
		ui.Button("Cancel", ui.Secondary, true, !d.onConfirm)
	return ui.Popup("Delete task", body+"\n\n"+buttons+"\n\n"+helpLine(keys.Confirm, keys.Cancel))
}

// renderDescription formats a task for the detail popup. The description is
// treated as markdown.
func renderDescription(t model.Task, width int) string {
	src := "## " + t.Title + "\n\n"
	if strings.TrimSpace(t.Description) == "" {
		src += "_No description._\n"
	} else {
		src += t.Description + "\n"
	}
	src += fmt.Sprintf("\nStatus: **%s** · created %s\n", t.Status(), t.CreatedAt.Format("2006-01-02 15:04"))

	style := "dark"
	if ui.Current().Name == "mono" {
		style = "notty"
	}
	r, err := glamour.NewTermRenderer(glamour.WithStandardStyle(style), glamour.WithWordWrap(width))
	if err != nil {
		return src
	}
	out, err := r.Render(src)
	if err != nil {
		return src
	}
	return strings.Trim(out, "\n")
}
