package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/todolists/internal/session"
	"github.com/idilsaglam/todolists/internal/ui"
	"github.com/idilsaglam/todolists/internal/validate"
)

func newAuthCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Log in, log out and inspect the saved session",
	}
	cmd.AddCommand(newAuthLoginCmd(app))
	cmd.AddCommand(newAuthLogoutCmd(app))
	cmd.AddCommand(newAuthStatusCmd(app))
	cmd.AddCommand(newAuthWhoamiCmd(app))
	return cmd
}

func newAuthLoginCmd(app *App) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and save the session cookie",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			email = strings.TrimSpace(email)
			if email == "" {
				return usagef("login: --email is required")
			}
			if r := validate.LoginEmail(email); r.IsError {
				return usageError{msg: r.Message}
			}
			if password == "" {
				p, err := readPassword(cmd)
				if err != nil {
					return err
				}
				password = p
			}
			if password == "" {
				return usagef("login: empty password")
			}
			if r := validate.LoginPassword(password); r.IsError {
				return usageError{msg: r.Message}
			}

			c, err := app.connect()
			if err != nil {
				return err
			}
			if err := c.Login(cmd.Context(), email, password); err != nil {
				return remoteErr(cmd, "login", err)
			}
			if err := app.saveSession(); err != nil {
				return fmt.Errorf("save session: %w", err)
			}

			who := email
			if u, err := c.CurrentUser(cmd.Context()); err == nil {
				who = u.Name
			}
			ui.OK(cmd.OutOrStdout(), "logged in as "+who)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password (prompted when omitted)")
	return cmd
}

func newAuthLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out and forget the saved session",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.connect()
			if err != nil {
				return err
			}
			if err := c.Logout(cmd.Context()); err != nil {
				app.log.Warnf("logout: %v", err)
			}
			if err := session.Clear(app.cfg.Server); err != nil {
				return fmt.Errorf("clear session: %w", err)
			}
			ui.OK(cmd.OutOrStdout(), "logged out")
			return nil
		},
	}
}

func newAuthStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show where the session comes from and when it expires",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			info, err := session.Load(app.cfg.Server)
			if err != nil {
				return err
			}
			if info == nil {
				fmt.Fprintf(out, "Not logged in to %s.\n", app.cfg.Server)
				ui.Hint(out, "Hint: run `todolists auth login`")
				return nil
			}
			fmt.Fprintf(out, "server:  %s\n", app.cfg.Server)
			fmt.Fprintf(out, "source:  %s\n", info.Source)
			if !info.SavedAt.IsZero() {
				fmt.Fprintf(out, "saved:   %s\n", info.SavedAt.Local().Format(time.RFC3339))
			}
			if exp, ok := info.Expiry(); ok {
				state := "valid"
				if time.Now().After(exp) {
					state = "expired"
				}
				fmt.Fprintf(out, "expires: %s (%s)\n", exp.Local().Format(time.RFC3339), state)
			} else {
				fmt.Fprintln(out, "expires: unknown")
			}
			return nil
		},
	}
}

func newAuthWhoamiCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Ask the server who the session belongs to",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.connect()
			if err != nil {
				return err
			}
			u, err := c.CurrentUser(cmd.Context())
			if err != nil {
				return remoteErr(cmd, "whoami", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s <%s> (id %d)\n", u.Name, u.Email, u.ID)
			return nil
		},
	}
}

func newRegisterCmd(app *App) *cobra.Command {
	var name, email, password string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" && email != "" {
				p, err := readPassword(cmd)
				if err != nil {
					return err
				}
				password = p
			}
			fields := []validate.Field{
				validate.Check(name, validate.RegisterName),
				validate.Check(email, validate.RegisterEmail),
				validate.Check(password, validate.RegisterPassword),
			}
			for _, f := range fields {
				if f.Result.IsError {
					return usageError{msg: f.Result.Message}
				}
			}
			if !validate.CanSubmit(fields...) {
				return usagef("register: --name, --email and --password are required")
			}

			c, err := app.connect()
			if err != nil {
				return err
			}
			email = strings.TrimSpace(email)
			if err := c.Register(cmd.Context(), strings.TrimSpace(name), email, password); err != nil {
				return remoteErr(cmd, "register", err)
			}
			ui.OK(cmd.OutOrStdout(), "registered "+email)
			ui.Hint(cmd.OutOrStdout(), "Next: todolists auth login --email "+email)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Display name (3-32 characters)")
	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Password (6-64 characters, prompted when omitted)")
	return cmd
}
