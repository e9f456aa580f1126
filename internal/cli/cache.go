package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/matzehuels/verbump/pkg/cache"
	"github.com/matzehuels/verbump/pkg/config"
	"github.com/matzehuels/verbump/pkg/errors"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the registry response cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached registry response",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.config.Cache
			if cfg.Backend == config.BackendNone {
				printInfo(c.Out, "Response cache is disabled (cache.backend = %s)", cfg.Backend)
				return nil
			}

			backend, err := newCache(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer backend.Close()

			switch b := backend.(type) {
			case *cache.FileCache:
				if err := b.Clear(); err != nil {
					return errors.Wrap(errors.ErrCodeInvalidPath, err, "clear %s", b.Dir())
				}
				printSuccess(c.Out, "Cleared file cache")
				printDetail(c.Out, "Directory: %s", b.Dir())
			case *cache.RedisCache:
				if err := b.Clear(cmd.Context()); err != nil {
					return errors.Wrap(errors.ErrCodeNetwork, err, "clear redis cache")
				}
				printSuccess(c.Out, "Cleared redis cache")
			}
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print where responses are cached",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.config.Cache
			if cfg.Backend == config.BackendRedis {
				fmt.Fprintln(c.Out, redactURL(cfg.RedisURL))
				return nil
			}
			dir, err := fileCacheDir(cfg)
			if err != nil {
				return err
			}
			fmt.Fprintln(c.Out, dir)
			return nil
		},
	}
}

// redactURL hides the password of a connection URL.
func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "(unparsable url)"
	}
	return u.Redacted()
}
