// Package cli wires the todolists command tree: the interactive TUI at the
// root and scriptable commands for auth, lists and tasks.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/todolists/internal/api"
	"github.com/idilsaglam/todolists/internal/config"
	"github.com/idilsaglam/todolists/internal/logging"
	"github.com/idilsaglam/todolists/internal/session"
	"github.com/idilsaglam/todolists/internal/tui"
	"github.com/idilsaglam/todolists/internal/ui"
)

type App struct {
	Server  string
	Theme   string
	LogFile string
	Path    string

	cfg    config.Config
	log    *logging.Logger
	client *api.Client
}

// NewRootCmd builds the command tree. Callers that execute it directly own
// closing the log; Execute does that for them.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&App{})
}

// Execute runs the command tree on os.Args, prints any failure and returns
// the process exit code.
func Execute() int {
	app := &App{}
	err := execute(newRootCmd(app), app)
	if err != nil {
		ui.Fail(os.Stderr, err.Error())
	}
	return ExitCode(err)
}

// execute closes the log on every path; cobra skips post-run hooks when a
// command fails.
func execute(cmd *cobra.Command, app *App) error {
	defer app.close()
	return cmd.Execute()
}

func newRootCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "todolists",
		Short:         "Todo lists client (TUI + CLI)",
		SilenceUsage:  true,
		SilenceErrors: true,
		Example: strings.TrimSpace(`
  # Start the interactive client
  todolists

  # Open a list directly
  todolists --path /lists/groceries-1a2b3c4d

  # Scriptable commands
  todolists auth login --email john@doe.com
  todolists lists
  todolists tasks groceries-1a2b3c4d
  todolists tasks done groceries-1a2b3c4d 2
`),
		Args: noSubcommand,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, app)
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return app.setup()
	}
	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return usageError{msg: err.Error() + "\n" + c.UseLine()}
	})

	cmd.PersistentFlags().StringVar(&app.Server, "server", "", "API server URL (default from config, TODOLISTS_SERVER or "+config.DefaultServer+")")
	cmd.PersistentFlags().StringVar(&app.Theme, "theme", "", "Color theme (classic|neon|mono)")
	cmd.PersistentFlags().StringVar(&app.LogFile, "log-file", "", "Write a debug log to this file")
	cmd.Flags().StringVar(&app.Path, "path", envOr("TODOLISTS_PATH", "/"), "Initial route: /, /register or /lists/<url>")

	cmd.AddCommand(newRegisterCmd(app))
	cmd.AddCommand(newAuthCmd(app))
	cmd.AddCommand(newListsCmd(app))
	cmd.AddCommand(newTasksCmd(app))

	return cmd
}

// setup resolves configuration and opens the log.
func (a *App) setup() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	a.cfg = cfg.WithOverrides(a.Server, a.Theme, a.LogFile)
	ui.SetTheme(a.cfg.Theme)

	a.log = logging.Nop()
	if a.cfg.LogFile != "" {
		l, err := logging.Open(a.cfg.LogFile)
		if err != nil {
			return fmt.Errorf("log file: %w", err)
		}
		a.log = l
	}
	a.log.Infof("server %s, theme %s", a.cfg.Server, a.cfg.Theme)
	return nil
}

func (a *App) close() {
	if err := a.log.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "close log: %v\n", err)
	}
}

// connect builds the API client and restores any saved session.
func (a *App) connect() (*api.Client, error) {
	if a.client != nil {
		return a.client, nil
	}
	c, err := api.New(a.cfg.Server, api.WithLogger(a.log))
	if err != nil {
		return nil, usageError{msg: err.Error()}
	}
	info, err := session.Load(a.cfg.Server)
	if err != nil {
		a.log.Warnf("session: %v", err)
	} else if info != nil {
		c.SetCookies(info.HTTPCookies())
	}
	a.client = c
	return c, nil
}

// saveSession persists whatever cookies the client holds now.
func (a *App) saveSession() error {
	if a.client == nil {
		return nil
	}
	return session.Save(a.cfg.Server, a.client.Cookies())
}

func runTUI(cmd *cobra.Command, app *App) error {
	c, err := app.connect()
	if err != nil {
		return err
	}
	return tui.Run(cmd.Context(), tui.Options{
		Backend: c,
		Log:     app.log,
		Path:    app.Path,
		OnSessionChange: func() {
			if err := app.saveSession(); err != nil {
				app.log.Errorf("save session: %v", err)
			}
		},
	})
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}
