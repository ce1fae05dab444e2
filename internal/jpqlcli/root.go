// Package jpqlcli wires the façade, cache and config loaders into a
// github.com/spf13/cobra command tree.
package jpqlcli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// RootOptions holds flags shared by every subcommand.
type RootOptions struct {
	Verbose bool
	Format  string // "text" | "json"
}

// ValidFormats lists the allowed --format values.
var ValidFormats = []string{"text", "json"}

// NewRootCommand builds the jpqlrw root command.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "jpqlrw",
		Short: "jpqlrw rewrites JPQL queries",
		Long:  "A syntax-directed JPQL 3.1 query rewriter: sort injection, count-query derivation, alias and projection extraction.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (text|json)")

	cmd.AddCommand(NewRewriteCommand(opts))
	cmd.AddCommand(NewRewriteSortCommand(opts))
	cmd.AddCommand(NewCountCommand(opts))
	cmd.AddCommand(NewAliasCommand(opts))
	cmd.AddCommand(NewProjectionCommand(opts))
	cmd.AddCommand(NewHasConstructorCommand(opts))
	cmd.AddCommand(NewCacheCommand(opts))

	return cmd
}

func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// readQuery returns args[0] if present, otherwise reads stdin in full.
// Every rewrite/inspection subcommand accepts a query this way.
func readQuery(args []string, stdin io.Reader) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("reading query from stdin: %w", err)
	}
	return string(data), nil
}

func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:     opts.Format,
		Writer:     cmd.OutOrStdout(),
		ErrWriter:  cmd.ErrOrStderr(),
		Verbose:    opts.Verbose,
		RequestIDs: UUIDv7Generator{},
	}
}
