package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/todolists/internal/api"
	"github.com/idilsaglam/todolists/internal/ui"
)

// usageError marks bad input: wrong arguments, flags or field values.
type usageError struct{ msg string }

func (e usageError) Error() string { return e.msg }

func usagef(format string, args ...any) error {
	return usageError{msg: fmt.Sprintf(format, args...)}
}

// ExitCode maps an Execute error to the process exit code:
// 0 ok, 1 error, 2 usage.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var ue usageError
	if errors.As(err, &ue) {
		return 2
	}
	return 1
}

// remoteErr surfaces the server's message and, for a missing session, a
// hint on how to get one.
func remoteErr(cmd *cobra.Command, what string, err error) error {
	if api.IsUnauthorized(err) {
		ui.Hint(cmd.ErrOrStderr(), "Hint: run `todolists auth login`")
	}
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return fmt.Errorf("%s: %s", what, apiErr.Message)
	}
	return fmt.Errorf("%s: %w", what, err)
}

func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return usagef("usage: %s", cmd.UseLine())
		}
		return nil
	}
}

// noSubcommand rejects positional arguments on a command that only
// dispatches, so a mistyped subcommand is a usage error.
func noSubcommand(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return usagef("unknown command %q for %q\nRun '%s --help' for usage.", args[0], cmd.CommandPath(), cmd.CommandPath())
	}
	return nil
}

func minArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) < n {
			return usagef("usage: %s", cmd.UseLine())
		}
		return nil
	}
}
