package jpqlcli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/catalystquery/jpqlrw/internal/jpqlrw"
)

// NewCountCommand builds the count subcommand.
func NewCountCommand(rootOpts *RootOptions) *cobra.Command {
	var countProjection string

	cmd := &cobra.Command{
		Use:           "count [query]",
		Short:         "Derive a count(...) query from a JPQL select",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCount(rootOpts, countProjection, args, cmd)
		},
	}

	cmd.Flags().StringVar(&countProjection, "count-projection", "", "override the inner count(...) projection verbatim")

	return cmd
}

func runCount(rootOpts *RootOptions, countProjection string, args []string, cmd *cobra.Command) error {
	formatter := newFormatter(rootOpts, cmd)

	query, err := readQuery(args, cmd.InOrStdin())
	if err != nil {
		return WrapExitError(ExitCommandError, "reading query", err)
	}

	out, err := jpqlrw.CountQuery(query, countProjection)
	if err != nil {
		_ = formatter.Error(err.Error(), query)
		return NewExitError(ExitFailure, fmt.Sprintf("count derivation failed: %v", err))
	}
	return formatter.Success(out)
}
