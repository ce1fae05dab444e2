package jpqlcli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/catalystquery/jpqlrw/internal/jpqlcache"
)

// CacheEntryCount is the json/text payload for "cache show".
type CacheEntryCount struct {
	Path    string `json:"path"`
	Entries int    `json:"entries"`
}

func (c CacheEntryCount) String() string {
	return fmt.Sprintf("%s: %d entr%s", c.Path, c.Entries, pluralSuffix(c.Entries))
}

func pluralSuffix(n int) string {
	if n == 1 {
		return "y"
	}
	return "ies"
}

// NewCacheCommand builds the cache command and its show/clear children.
func NewCacheCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear a rewrite cache database",
	}

	cmd.AddCommand(newCacheShowCommand(rootOpts))
	cmd.AddCommand(newCacheClearCommand(rootOpts))

	return cmd
}

func newCacheShowCommand(rootOpts *RootOptions) *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:           "show",
		Short:         "Print the number of entries in a rewrite cache",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCacheShow(rootOpts, path, cmd)
		},
	}
	cmd.Flags().StringVar(&path, "cache", "", "rewrite cache database path")
	_ = cmd.MarkFlagRequired("cache")

	return cmd
}

func runCacheShow(rootOpts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(rootOpts, cmd)

	cache, err := jpqlcache.Open(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "opening cache", err)
	}
	defer cache.Close()

	n, err := cache.Count(cmd.Context())
	if err != nil {
		return WrapExitError(ExitCommandError, "counting cache entries", err)
	}

	return formatter.Success(CacheEntryCount{Path: path, Entries: n})
}

func newCacheClearCommand(rootOpts *RootOptions) *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:           "clear",
		Short:         "Remove every entry from a rewrite cache",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCacheClear(rootOpts, path, cmd)
		},
	}
	cmd.Flags().StringVar(&path, "cache", "", "rewrite cache database path")
	_ = cmd.MarkFlagRequired("cache")

	return cmd
}

func runCacheClear(rootOpts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(rootOpts, cmd)

	cache, err := jpqlcache.Open(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "opening cache", err)
	}
	defer cache.Close()

	if err := cache.Clear(cmd.Context()); err != nil {
		return WrapExitError(ExitCommandError, "clearing cache", err)
	}

	return formatter.Success("cache cleared")
}
