package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/doeshing/investigator-go/internal/app"
	"github.com/doeshing/investigator-go/internal/infrastructure/cache"
)

// NewCacheCommand creates the cache command with all subcommands
func NewCacheCommand(provider *app.Provider) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the classification cache",
	}

	cacheCmd.AddCommand(
		newCacheListCommand(provider),
		newCacheClearCommand(provider),
		newCacheSizeCommand(provider),
	)

	return cacheCmd
}

// newCacheListCommand creates the 'cache list' subcommand
func newCacheListCommand(provider *app.Provider) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List cached classifications, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := cacheStore(cmd, provider)
			if err != nil {
				return err
			}
			return listCacheEntries(cmd.OutOrStdout(), store)
		},
	}
}

// newCacheClearCommand creates the 'cache clear' subcommand
func newCacheClearCommand(provider *app.Provider) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear cache directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := cacheStore(cmd, provider)
			if err != nil {
				return err
			}
			if err := store.Clear(); err != nil {
				return fmt.Errorf("failed to clear cache: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Cache cleared.")
			return nil
		},
	}
}

// newCacheSizeCommand creates the 'cache size' subcommand
func newCacheSizeCommand(provider *app.Provider) *cobra.Command {
	return &cobra.Command{
		Use:   "size",
		Short: "Show cache size",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := cacheStore(cmd, provider)
			if err != nil {
				return err
			}
			return showCacheSize(cmd.OutOrStdout(), store.Dir())
		},
	}
}

func cacheStore(cmd *cobra.Command, provider *app.Provider) (*cache.FileCache, error) {
	container, err := provider.Get(cmd.Context())
	if err != nil {
		return nil, err
	}
	if container.CacheStore == nil {
		return nil, errors.New(ErrCacheStoreUnavailable)
	}
	return container.CacheStore, nil
}

// listCacheEntries lists all cache entries
func listCacheEntries(out io.Writer, store *cache.FileCache) error {
	entries, err := store.Entries()
	if err != nil {
		return fmt.Errorf("failed to retrieve cache entries: %w", err)
	}
	if len(entries) == 0 {
		fmt.Fprintln(out, MsgNoCachedResponses)
		return nil
	}

	for _, entry := range entries {
		result := string(entry.Intent.Action) + " " + entry.Intent.Target
		if !entry.Found {
			result = "unknown"
		}
		fmt.Fprintf(out, "%s | %s | %s | %s\n",
			shortKey(entry.Key),
			entry.Model,
			entry.CreatedAt.Local().Format(TimestampFormat),
			result)
	}

	return nil
}

// showCacheSize displays the cache directory size
func showCacheSize(out io.Writer, dir string) error {
	totalSize, err := calculateDirectorySize(dir)
	if err != nil {
		return fmt.Errorf("failed to calculate cache size: %w", err)
	}

	fmt.Fprintf(out, "Cache directory: %s\nSize: %s\n", dir, humanize.Bytes(uint64(totalSize)))
	return nil
}

// calculateDirectorySize calculates the total size of a directory
func calculateDirectorySize(dirPath string) (int64, error) {
	var totalSize int64

	err := filepath.WalkDir(dirPath, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) && path == dirPath {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		totalSize += info.Size()
		return nil
	})

	return totalSize, err
}

func shortKey(key string) string {
	if len(key) > 12 {
		return key[:12]
	}
	return key
}
