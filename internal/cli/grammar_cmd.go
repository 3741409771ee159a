package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"rconsh/internal/grammar"
)

type grammarOptions struct {
	format   string
	fromFile string
}

func newGrammarCommand(opts *rootOptions) *cobra.Command {
	gopts := &grammarOptions{}

	cmd := &cobra.Command{
		Use:   "grammar",
		Short: "Print the command grammar parsed from a server listing",
		Long: `Fetch the server's command listing (or read it from a file) and print
the resolved commands with their arguments.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			listing, err := readListing(cmd, opts, gopts)
			if err != nil {
				return err
			}
			reg, err := grammar.Build(listing)
			if err != nil {
				return err
			}
			return writeGrammar(cmd.OutOrStdout(), gopts.format, reg)
		},
	}

	cmd.Flags().StringVarP(&gopts.format, "format", "f", "yaml", "output format (yaml, json or text)")
	cmd.Flags().StringVar(&gopts.fromFile, "from-file", "", "read the listing from a file instead of the server ('-' for stdin)")
	return cmd
}

// readListing returns the listing text from a file, stdin or the server.
func readListing(cmd *cobra.Command, opts *rootOptions, gopts *grammarOptions) (string, error) {
	switch gopts.fromFile {
	case "":
	case "-":
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read listing: %w", err)
		}
		return string(data), nil
	default:
		data, err := os.ReadFile(gopts.fromFile)
		if err != nil {
			return "", fmt.Errorf("failed to read listing: %w", err)
		}
		return string(data), nil
	}

	app, err := newApp(opts)
	if err != nil {
		return "", err
	}
	defer app.Close()

	remote, _, err := app.connect(cmd.Context(), opts)
	if err != nil {
		return "", err
	}
	defer remote.Close()

	return remote.Command(cmd.Context(), app.cfg.HelpCommand)
}

// writeGrammar prints the registry in the requested format.
func writeGrammar(w io.Writer, format string, reg *grammar.Registry) error {
	commands := reg.Commands()
	switch format {
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(map[string][]grammar.Command{"commands": commands}); err != nil {
			return fmt.Errorf("failed to encode grammar: %w", err)
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(map[string][]grammar.Command{"commands": commands}); err != nil {
			return fmt.Errorf("failed to encode grammar: %w", err)
		}
		return nil
	case "text":
		for _, c := range commands {
			if _, err := fmt.Fprintln(w, c.Usage()); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown format %q (want yaml, json or text)", format)
	}
}
