package cli

import (
	"github.com/spf13/cobra"
)

func newHistoryCommand(opts *rootOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recently sent commands",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(opts)
			if err != nil {
				return err
			}
			defer app.Close()

			entries, err := app.store.HistoryRecent(limit)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				app.ui.Info("No history")
				return nil
			}

			theme := app.ui.Theme()
			for _, e := range entries {
				status := theme.Success("ok ")
				if !e.Success {
					status = theme.Error("err")
				}
				app.ui.Printf("%s %s %s %s\n",
					theme.Info(e.Created.Local().Format("2006-01-02 15:04:05")),
					status, theme.Info(e.Address), e.Command)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of entries to show")
	return cmd
}
