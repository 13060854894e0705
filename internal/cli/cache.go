package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eddi-weiss/mavenizor/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the conversion result cache",
	}
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "configuration file (default ./mavenizor.toml)")

	cmd.AddCommand(c.cacheClearCommand(&configPath))
	cmd.AddCommand(c.cachePathCommand(&configPath))

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached conversion results",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := printer{cmd.OutOrStdout()}

			cfg, err := loadConfig(loggerFromContext(ctx), *configPath)
			if err != nil {
				return err
			}
			backend, err := newCache(ctx, cfg, false)
			if err != nil {
				return err
			}
			defer backend.Close()

			var count int
			switch b := backend.(type) {
			case *cache.FileCache:
				if count, err = b.Clear(); err != nil {
					return err
				}
				out.success("Cleared %d cached results", count)
				out.detail("Directory: %s", b.Dir())
			case *cache.RedisCache:
				if count, err = b.Clear(ctx); err != nil {
					return err
				}
				out.success("Cleared %d cached results", count)
			default:
				out.info("Cache is disabled")
			}
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(loggerFromContext(cmd.Context()), *configPath)
			if err != nil {
				return err
			}
			dir := cfg.Path(cfg.Cache.Dir)
			if dir == "" {
				if dir, err = cacheDir(); err != nil {
					return fmt.Errorf("get cache dir: %w", err)
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}
}
