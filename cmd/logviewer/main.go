// Command logviewer prints and follows the JSON log files written by rconsh.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"rconsh/internal/model"
	"rconsh/internal/ui"
)

type options struct {
	follow   bool
	filter   string
	interval time.Duration
	noColor  bool
}

func newCommand() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "logviewer [log directory]",
		Short: "Show rconsh JSON logs in a compact colored format",
		Long: `logviewer reads every *.log file in the directory (default ./logs),
prints each JSON entry as "time level message" with the remaining fields
indented below, and with --follow keeps printing new entries.`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "./logs"
			if len(args) > 0 {
				dir = args[0]
			}
			if info, err := os.Stat(dir); err != nil || !info.IsDir() {
				return fmt.Errorf("log directory '%s' does not exist", dir)
			}

			color := !opts.noColor && ui.ColorEnabled(model.ColorAuto, os.Stdout)
			v := newViewer(cmd.OutOrStdout(), dir, opts.filter, color)
			if !opts.follow {
				_, err := v.scan()
				return err
			}
			return follow(cmd.Context(), v, opts.interval)
		},
	}

	cmd.Flags().BoolVarP(&opts.follow, "follow", "f", false, "keep printing new entries")
	cmd.Flags().StringVar(&opts.filter, "filter", "", "only show entries containing this text (case-insensitive)")
	cmd.Flags().DurationVarP(&opts.interval, "interval", "i", time.Second, "polling interval in follow mode")
	cmd.Flags().BoolVar(&opts.noColor, "no-color", false, "disable colored output")
	return cmd
}

// follow scans the directory every interval until ctx is done, printing a
// separator after each burst of entries.
func follow(ctx context.Context, v *viewer, interval time.Duration) error {
	if interval <= 0 {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	pending := false
	for {
		n, err := v.scan()
		if err != nil {
			return err
		}
		if n > 0 {
			pending = true
		} else if pending {
			v.gap()
			pending = false
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
