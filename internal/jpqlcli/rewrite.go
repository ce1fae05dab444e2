package jpqlcli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/catalystquery/jpqlrw/internal/jpqlcache"
	"github.com/catalystquery/jpqlrw/internal/jpqlconfig"
	"github.com/catalystquery/jpqlrw/internal/jpqlparse"
	"github.com/catalystquery/jpqlrw/internal/jpqlrender"
	"github.com/catalystquery/jpqlrw/internal/jpqlrw"
	"github.com/catalystquery/jpqlrw/internal/jpqlwalk"
)

// rewriteChecked runs the same fail-fast parse-walk-render pipeline as
// jpqlrw.Rewrite/RewriteWithSort, except it additionally threads an
// allow-list into the walker state — a CLI-only concern
// the façade's operations don't need, since the allow-list
// only matters at the point a query is handed to a user-facing tool.
func rewriteChecked(query string, sort []jpqlwalk.SortOrder, allowList jpqlwalk.FunctionAllowList) (out string, err error) {
	stmt, perr := jpqlparse.ParseFailFast(query)
	if perr != nil {
		return "", &jpqlrw.InvalidQuery{Query: query, Err: perr}
	}
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if unknown, ok := r.(*jpqlwalk.UnknownFunctionError); ok {
			err = &jpqlrw.InvalidQuery{Query: query, Err: unknown}
			return
		}
		panic(r)
	}()
	state := jpqlwalk.NewState()
	state.Sort = sort
	state.FailFast = allowList != nil
	state.AllowList = allowList
	return jpqlrender.Render(jpqlwalk.Walk(stmt, state)), nil
}

// rewriteOptions are the flags shared by rewrite and rewrite-sort.
type rewriteOptions struct {
	*RootOptions
	CachePath      string
	AllowFunctions string
}

// loadAllowList returns nil (the plain interface nil, not a typed-nil
// pointer wrapped in an interface) when no allow-list was configured,
// so rewriteChecked's "allowList != nil" check behaves correctly.
func (o *rewriteOptions) loadAllowList() (jpqlwalk.FunctionAllowList, error) {
	if o.AllowFunctions == "" {
		return nil, nil
	}
	list, err := jpqlconfig.LoadFunctionAllowList(o.AllowFunctions)
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (o *rewriteOptions) withCache(ctx context.Context, query string, sort []jpqlwalk.SortOrder, allowList jpqlwalk.FunctionAllowList) (string, error) {
	if o.CachePath == "" {
		return rewriteChecked(query, sort, allowList)
	}
	cache, err := jpqlcache.Open(o.CachePath)
	if err != nil {
		return "", err
	}
	defer cache.Close()
	if allowList != nil {
		// An allow-list changes the rewrite's outcome for a subset of
		// queries, so a cached entry computed without one cannot be
		// reused blindly; fall back to the checked pipeline uncached.
		return rewriteChecked(query, sort, allowList)
	}
	return jpqlcache.CachedRewrite(ctx, cache, query, sort, time.Now().Unix())
}

// NewRewriteCommand builds the rewrite subcommand.
func NewRewriteCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &rewriteOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "rewrite [query]",
		Short:         "Rewrite a JPQL query, passing it through unchanged at the AST level",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRewrite(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.CachePath, "cache", "", "rewrite cache database path")
	cmd.Flags().StringVar(&opts.AllowFunctions, "allow-functions", "", "vendor function allow-list path (yaml)")

	return cmd
}

func runRewrite(opts *rewriteOptions, args []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	query, err := readQuery(args, cmd.InOrStdin())
	if err != nil {
		return WrapExitError(ExitCommandError, "reading query", err)
	}

	allowList, err := opts.loadAllowList()
	if err != nil {
		return WrapExitError(ExitCommandError, "loading allow-list", err)
	}

	out, err := opts.withCache(cmd.Context(), query, nil, allowList)
	if err != nil {
		_ = formatter.Error(err.Error(), query)
		return NewExitError(ExitFailure, fmt.Sprintf("rewrite failed: %v", err))
	}
	return formatter.Success(out)
}
