// Package cli implements the cogform command-line interface (spec §6):
// validate, compile, info, and examples subcommands wired directly to
// internal/facade, following the teacher pack's spf13/cobra idiom
// (grounded on kailayerhq-kai/ivcs/cmd/ivcs/main.go's root-command
// factory + nested RunE handlers, since the teacher's own CLI was a
// stdlib flag.FlagSet that did not survive the runtime rewrite).
package cli

import (
	"fmt"

	"github.com/cogform/cogform/internal/facade"
	"github.com/spf13/cobra"
)

// ExitError carries a process exit code alongside its message, the
// convention every subcommand's RunE returns so main can translate a
// returned error into spec §6's documented 0/1 exit codes without
// re-deriving them from error text.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string { return e.Message }

func exitErrorf(code int, format string, args ...any) *ExitError {
	return &ExitError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// NewRootCommand builds the cogform root command, wired to f for every
// subcommand. Passing the facade in rather than reaching for a package
// global keeps the command tree testable in isolation.
func NewRootCommand(f *facade.Facade) *cobra.Command {
	root := &cobra.Command{
		Use:           "cogform",
		Short:         "Compile, validate, and execute cogform cognitive documents",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newValidateCommand(f),
		newCompileCommand(f),
		newInfoCommand(f),
		newExamplesCommand(),
	)
	return root
}

// ExitCode translates err (nil, *ExitError, or any other error) into the
// process exit code spec §6 documents: 0 on success, 1 on any failure.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if ee, ok := err.(*ExitError); ok {
		return ee.Code
	}
	return 1
}
