package jpqlcli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/catalystquery/jpqlrw/internal/jpqlparse"
	"github.com/catalystquery/jpqlrw/internal/jpqlrw"
)

// NewProjectionCommand builds the projection subcommand.
func NewProjectionCommand(rootOpts *RootOptions) *cobra.Command {
	var failFast bool

	cmd := &cobra.Command{
		Use:           "projection [query]",
		Short:         "Print the query's rendered top-level select items",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProjection(rootOpts, failFast, args, cmd)
		},
	}

	cmd.Flags().BoolVar(&failFast, "fail-fast", false, "reject a query that does not parse instead of printing an empty projection")

	return cmd
}

func runProjection(rootOpts *RootOptions, failFast bool, args []string, cmd *cobra.Command) error {
	formatter := newFormatter(rootOpts, cmd)

	query, err := readQuery(args, cmd.InOrStdin())
	if err != nil {
		return WrapExitError(ExitCommandError, "reading query", err)
	}

	if failFast {
		if _, err := jpqlparse.ParseFailFast(query); err != nil {
			_ = formatter.Error(err.Error(), query)
			return NewExitError(ExitFailure, fmt.Sprintf("query did not parse: %v", err))
		}
	}

	return formatter.Success(jpqlrw.Projection(query))
}
