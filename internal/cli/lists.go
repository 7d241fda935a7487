package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/todolists/internal/model"
	"github.com/idilsaglam/todolists/internal/ui"
	"github.com/idilsaglam/todolists/internal/validate"
)

func newListsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lists",
		Short: "Show your lists",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.connect()
			if err != nil {
				return err
			}
			u, err := c.CurrentUser(cmd.Context())
			if err != nil {
				return remoteErr(cmd, "lists", err)
			}
			lists, err := c.ListsForUser(cmd.Context(), u.ID)
			if err != nil {
				return remoteErr(cmd, "lists", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Panel(listLines(*u, lists)))
			return nil
		},
	}
	cmd.AddCommand(newListsAddCmd(app))
	return cmd
}

func newListsAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add <name...>",
		Short: "Create a list (name can be multiple words)",
		Args:  minArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.TrimSpace(strings.Join(args, " "))
			if !validate.ListNameReady(name) {
				return usagef("lists add: the name has to be at least %d characters long", validate.ListNameMin)
			}
			c, err := app.connect()
			if err != nil {
				return err
			}
			l, err := c.CreateList(cmd.Context(), name)
			if err != nil {
				return remoteErr(cmd, "lists add", err)
			}
			ui.OK(cmd.OutOrStdout(), fmt.Sprintf("created %q", l.Name))
			ui.Hint(cmd.OutOrStdout(), "Open it with: todolists tasks "+l.URL)
			return nil
		},
	}
}

func listLines(u model.User, lists []model.List) []string {
	lines := []string{
		fmt.Sprintf("%s  %s %d", ui.TitleStyle().Render("Your Lists"), ui.AccentStyle().Render("Total"), len(lists)),
		"",
	}
	if len(lists) == 0 {
		lines = append(lines,
			ui.MutedStyle().Render("You don't have a list yet. Consider creating one. 😉"),
			"",
			ui.MutedStyle().Render("Tip: todolists lists add \"Groceries\""))
		return lines
	}
	for _, l := range lists {
		owner := "You"
		if l.OwnerID != u.ID {
			owner = fmt.Sprintf("#%d", l.OwnerID)
		}
		lines = append(lines, fmt.Sprintf("%s %s  %s  %s",
			ui.Current().Bullet, l.Name,
			ui.AccentStyle().Render(l.URL),
			ui.MutedStyle().Render("Owner: "+owner)))
	}
	return lines
}
