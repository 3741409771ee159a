package cli

import (
	"context"

	"github.com/spf13/cobra"
)

// rootOptions are the persistent flags shared by all commands.
type rootOptions struct {
	address    string
	password   string
	profile    string
	configPath string
	noColor    bool
}

// NewRootCommand builds the rconsh command tree.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "rconsh",
		Short: "Interactive RCON shell for Minecraft servers",
		Long: `rconsh connects to a Minecraft server over RCON and opens a shell with
completion, inline hints and highlighting built from the server's own
command listing.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(cmd.Context(), opts)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.address, "address", "a", "", "server address (host:port)")
	flags.StringVarP(&opts.password, "password", "p", "", "RCON password (prompted when empty)")
	flags.StringVarP(&opts.profile, "profile", "P", "", "saved server profile")
	flags.StringVar(&opts.configPath, "config", "", "config file (default: user config dir)")
	flags.BoolVar(&opts.noColor, "no-color", false, "disable colored output")

	cmd.AddCommand(
		newExecCommand(opts),
		newGrammarCommand(opts),
		newProfileCommand(opts),
		newHistoryCommand(opts),
	)
	return cmd
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

// runShell connects and runs the interactive shell.
func runShell(ctx context.Context, opts *rootOptions) error {
	app, err := newApp(opts)
	if err != nil {
		return err
	}
	defer app.Close()

	remote, address, err := app.connect(ctx, opts)
	if err != nil {
		return err
	}
	defer remote.Close()

	shell := NewShell(app, remote, address)
	shell.reload(ctx)
	app.ui.Success("Connected to " + address + ". Type Minecraft commands or 'exit' to quit.")

	return shell.Run(ctx)
}
