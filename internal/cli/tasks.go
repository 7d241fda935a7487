package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/todolists/internal/api"
	"github.com/idilsaglam/todolists/internal/model"
	"github.com/idilsaglam/todolists/internal/ui"
	"github.com/idilsaglam/todolists/internal/validate"
)

func newTasksCmd(app *App) *cobra.Command {
	var group bool
	cmd := &cobra.Command{
		Use:   "tasks <listUrl>",
		Short: "Show the tasks of a list",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.connect()
			if err != nil {
				return err
			}
			l, tasks, err := loadList(cmd, c, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Panel(taskPanel(l, tasks, group)))
			return nil
		},
	}
	cmd.Flags().BoolVar(&group, "group", false, "Group tasks by in progress / done")

	cmd.AddCommand(newTasksAddCmd(app))
	cmd.AddCommand(newTasksDoneCmd(app))
	cmd.AddCommand(newTasksRmCmd(app))
	return cmd
}

func newTasksAddCmd(app *App) *cobra.Command {
	var title, description string
	cmd := &cobra.Command{
		Use:   "add <listUrl>",
		Short: "Add a task to a list",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title = strings.TrimSpace(title)
			description = strings.TrimSpace(description)
			if title == "" || description == "" {
				return usagef("tasks add: --title and --description are required")
			}
			if r := validate.TaskTitle(title); r.IsError {
				return usageError{msg: r.Message}
			}
			if r := validate.TaskDescription(description); r.IsError {
				return usageError{msg: r.Message}
			}

			c, err := app.connect()
			if err != nil {
				return err
			}
			l, err := c.ListByURL(cmd.Context(), args[0])
			if err != nil {
				return remoteErr(cmd, "tasks add", err)
			}
			if _, err := c.CreateTask(cmd.Context(), model.NewTask{ListID: l.ID, Title: title, Description: description}); err != nil {
				return remoteErr(cmd, "tasks add", err)
			}
			ui.OK(cmd.OutOrStdout(), "added")
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "Task title (3-32 characters)")
	cmd.Flags().StringVar(&description, "description", "", "Task description (up to 256 characters)")
	return cmd
}

func newTasksDoneCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "done <listUrl> <index>",
		Short: "Toggle done for the task at a 1-based index",
		Args:  exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := parseIndex("done", args[1])
			if err != nil {
				return err
			}
			c, err := app.connect()
			if err != nil {
				return err
			}
			_, tasks, err := loadList(cmd, c, args[0])
			if err != nil {
				return err
			}
			t, err := pick(cmd, tasks, n, args[0])
			if err != nil {
				return err
			}
			if err := c.ToggleTask(cmd.Context(), t.ID); err != nil {
				return remoteErr(cmd, "done", err)
			}
			t.IsDone = !t.IsDone
			ui.OK(cmd.OutOrStdout(), fmt.Sprintf("%s - %s", t.Title, t.Status()))
			return nil
		},
	}
}

func newTasksRmCmd(app *App) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "rm <listUrl> <index>",
		Short: "Delete the task at a 1-based index",
		Args:  exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := parseIndex("rm", args[1])
			if err != nil {
				return err
			}
			c, err := app.connect()
			if err != nil {
				return err
			}
			_, tasks, err := loadList(cmd, c, args[0])
			if err != nil {
				return err
			}
			t, err := pick(cmd, tasks, n, args[0])
			if err != nil {
				return err
			}
			if !yes {
				ok, err := confirm(cmd, fmt.Sprintf("Delete %q?", t.Title))
				if err != nil {
					return err
				}
				if !ok {
					ui.Hint(cmd.OutOrStdout(), "cancelled")
					return nil
				}
			}
			if err := c.DeleteTask(cmd.Context(), t.ID); err != nil {
				return remoteErr(cmd, "rm", err)
			}
			ui.OK(cmd.OutOrStdout(), "removed")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}

func loadList(cmd *cobra.Command, c *api.Client, slug string) (model.List, []model.Task, error) {
	l, err := c.ListByURL(cmd.Context(), slug)
	if err != nil {
		return model.List{}, nil, remoteErr(cmd, "list "+slug, err)
	}
	tasks, err := c.TasksForList(cmd.Context(), l.ID)
	if err != nil {
		return model.List{}, nil, remoteErr(cmd, "tasks", err)
	}
	return l, tasks, nil
}

func parseIndex(verb, s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, usagef("%s: not a number: %s", verb, s)
	}
	return n, nil
}

func pick(cmd *cobra.Command, tasks []model.Task, userIndex int, slug string) (model.Task, error) {
	if userIndex < 1 || userIndex > len(tasks) {
		ui.Hint(cmd.ErrOrStderr(), "Hint: run `todolists tasks "+slug+"` to see valid indexes")
		return model.Task{}, usagef("index out of range: have %d, got %d", len(tasks), userIndex)
	}
	return tasks[userIndex-1], nil
}

// -------------- rendering helpers --------------

func taskPanel(l model.List, tasks []model.Task, group bool) []string {
	d, p := model.Stats(tasks)
	th := ui.Current()
	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		ui.TitleStyle().Render(l.Name),
		ui.DoneStyle().Strikethrough(false).Render("✔"), d,
		ui.AccentStyle().Render(th.Bullet), p,
		ui.AccentStyle().Render("Total"), len(tasks),
	)

	lines := []string{header, ui.MutedStyle().Render(ui.ProgressBar(d, d+p, 28)), ""}
	if group {
		lines = append(lines, groupLines(tasks)...)
	} else {
		lines = append(lines, flatLines(tasks, nil)...)
	}
	lines = append(lines, "", ui.MutedStyle().Render("Tip: todolists tasks done "+l.URL+" <index>"))
	return lines
}

// flatLines numbers tasks by their position in the list; idx, when set,
// carries those positions for a subset.
func flatLines(tasks []model.Task, idx []int) []string {
	if len(tasks) == 0 {
		return []string{ui.MutedStyle().Render("You don't have a task yet. Consider creating one. 😉")}
	}
	th := ui.Current()
	out := make([]string, 0, len(tasks))
	for i, t := range tasks {
		n := i + 1
		if idx != nil {
			n = idx[i] + 1
		}
		box, title := ui.MutedStyle().Render(th.BoxUnchecked), t.Title
		if t.IsDone {
			box, title = ui.AccentStyle().Render(th.BoxChecked), ui.DoneStyle().Render(t.Title)
		}
		out = append(out, fmt.Sprintf("%s %s %s - %s", ui.MutedStyle().Render(fmt.Sprintf("%2d.", n)), box, title, t.Status()))
		if t.Description != "" {
			out = append(out, "       "+ui.MutedStyle().Render(t.Description))
		}
	}
	return out
}

func groupLines(tasks []model.Task) []string {
	var pend, done []model.Task
	var pendIdx, doneIdx []int
	for i, t := range tasks {
		if t.IsDone {
			done, doneIdx = append(done, t), append(doneIdx, i)
		} else {
			pend, pendIdx = append(pend, t), append(pendIdx, i)
		}
	}
	section := func(title string, ts []model.Task, idx []int) []string {
		lines := []string{ui.AccentStyle().Render(title)}
		if len(ts) == 0 {
			return append(lines, ui.MutedStyle().Render("(none)"))
		}
		return append(lines, flatLines(ts, idx)...)
	}
	lines := section("In progress", pend, pendIdx)
	lines = append(lines, "")
	return append(lines, section("Done", done, doneIdx)...)
}
