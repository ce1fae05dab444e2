package jpqlcli

import (
	"github.com/spf13/cobra"

	"github.com/catalystquery/jpqlrw/internal/jpqlrw"
)

// NewHasConstructorCommand builds the has-constructor subcommand.
func NewHasConstructorCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "has-constructor [query]",
		Short:         "Report whether the query's select clause contains a NEW constructor expression",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHasConstructor(rootOpts, args, cmd)
		},
	}
	return cmd
}

func runHasConstructor(rootOpts *RootOptions, args []string, cmd *cobra.Command) error {
	formatter := newFormatter(rootOpts, cmd)

	query, err := readQuery(args, cmd.InOrStdin())
	if err != nil {
		return WrapExitError(ExitCommandError, "reading query", err)
	}

	return formatter.Success(jpqlrw.HasConstructorExpression(query))
}
