package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"rconsh/internal/model"
	"rconsh/internal/secret"
)

func newProfileCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage saved server profiles",
	}
	cmd.AddCommand(
		newProfileAddCommand(opts),
		newProfileListCommand(opts),
		newProfileRemoveCommand(opts),
	)
	return cmd
}

func newProfileAddCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "add <name>",
		Short:   "Save or update a server profile",
		Example: "  rconsh profile add survival --address mc.example.net:25575 --password secret",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.address == "" {
				return fmt.Errorf("--address is required")
			}
			app, err := newApp(opts)
			if err != nil {
				return err
			}
			defer app.Close()

			profile := model.Profile{Name: args[0], Address: opts.address}
			if opts.password != "" {
				key, err := app.key()
				if err != nil {
					return err
				}
				profile.Password, err = secret.Seal(key, profile.Name, []byte(opts.password))
				if err != nil {
					return err
				}
			}

			if err := app.store.ProfileAdd(profile); err != nil {
				return err
			}
			app.ui.Success(fmt.Sprintf("Profile '%s' saved", profile.Name))
			return nil
		},
	}
}

func newProfileListCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List saved server profiles",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(opts)
			if err != nil {
				return err
			}
			defer app.Close()

			profiles, err := app.store.ProfileList()
			if err != nil {
				return err
			}
			if len(profiles) == 0 {
				app.ui.Info("No profiles saved")
				return nil
			}

			theme := app.ui.Theme()
			app.ui.Println(theme.Bold(fmt.Sprintf("%-16s %-32s %s", "NAME", "ADDRESS", "PASSWORD")))
			for _, p := range profiles {
				password := "prompt"
				if p.HasPassword() {
					password = "saved"
				}
				app.ui.Printf("%-16s %-32s %s\n", p.Name, p.Address, theme.Info(password))
			}
			return nil
		},
	}
}

func newProfileRemoveCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <name>",
		Aliases: []string{"rm"},
		Short:   "Delete a saved server profile",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(opts)
			if err != nil {
				return err
			}
			defer app.Close()

			if err := app.store.ProfileDelete(args[0]); err != nil {
				return err
			}
			app.ui.Success(fmt.Sprintf("Profile '%s' removed", args[0]))
			return nil
		},
	}
}
