package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

func newExecCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "exec <command...>",
		Short: "Run a single command and print the response",
		Example: `  rconsh exec /list
  rconsh -P survival exec /time set day`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(opts)
			if err != nil {
				return err
			}
			defer app.Close()

			remote, address, err := app.connect(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer remote.Close()

			return NewShell(app, remote, address).send(cmd.Context(), strings.Join(args, " "))
		},
	}
}
