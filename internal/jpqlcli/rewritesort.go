package jpqlcli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/catalystquery/jpqlrw/internal/jpqlconfig"
	"github.com/catalystquery/jpqlrw/internal/jpqlwalk"
)

// NewRewriteSortCommand builds the rewrite-sort subcommand.
func NewRewriteSortCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &rewriteOptions{RootOptions: rootOpts}
	var profile, sortFile string

	cmd := &cobra.Command{
		Use:           "rewrite-sort [query]",
		Short:         "Rewrite a JPQL query with an additional sort order injected",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRewriteSort(opts, profile, sortFile, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.CachePath, "cache", "", "rewrite cache database path")
	cmd.Flags().StringVar(&opts.AllowFunctions, "allow-functions", "", "vendor function allow-list path (yaml)")
	cmd.Flags().StringVar(&profile, "profile", "", "named sort profile; requires --sort-file to hold a profiles: document")
	cmd.Flags().StringVar(&sortFile, "sort-file", "", "sort order source (yaml): an ad hoc list on its own, or a profiles: document when paired with --profile")

	return cmd
}

// resolveSort turns --profile/--sort-file into a sort order list.
// --sort-file alone loads an ad hoc flat list; --sort-file with
// --profile loads a profiles: document and looks the name up in it.
// --profile without --sort-file has nothing to look a name up in, so
// it's rejected rather than silently ignored.
func resolveSort(profile, sortFile string) ([]jpqlwalk.SortOrder, error) {
	switch {
	case sortFile == "":
		return nil, fmt.Errorf("rewrite-sort requires --sort-file")
	case profile != "":
		set, err := jpqlconfig.LoadProfiles(sortFile)
		if err != nil {
			return nil, fmt.Errorf("loading sort profiles: %w", err)
		}
		sort, ok := set.Lookup(profile)
		if !ok {
			return nil, fmt.Errorf("profile %q not found in %s", profile, sortFile)
		}
		return sort, nil
	default:
		sort, err := jpqlconfig.LoadSortList(sortFile)
		if err != nil {
			return nil, fmt.Errorf("loading sort list: %w", err)
		}
		return sort, nil
	}
}

func runRewriteSort(opts *rewriteOptions, profile, sortFile string, args []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	sort, err := resolveSort(profile, sortFile)
	if err != nil {
		return NewExitError(ExitCommandError, err.Error())
	}

	query, err := readQuery(args, cmd.InOrStdin())
	if err != nil {
		return WrapExitError(ExitCommandError, "reading query", err)
	}

	allowList, err := opts.loadAllowList()
	if err != nil {
		return WrapExitError(ExitCommandError, "loading allow-list", err)
	}

	out, err := opts.withCache(cmd.Context(), query, sort, allowList)
	if err != nil {
		_ = formatter.Error(err.Error(), query)
		return NewExitError(ExitFailure, fmt.Sprintf("rewrite failed: %v", err))
	}
	return formatter.Success(out)
}
