package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/uxl/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the layout and artifact cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached layout and artifact",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCacheClear(cmd.Context())
		},
	}
}

func (c *CLI) runCacheClear(ctx context.Context) error {
	backend := c.Config.Cache.Backend
	ch, err := cache.Open(ctx, c.Config.CacheOptions())
	if err != nil {
		return fmt.Errorf("open %s cache: %w", backend, err)
	}
	defer ch.Close()

	clearer, ok := ch.(cache.Clearer)
	if !ok {
		return fmt.Errorf("%s cache cannot be cleared", backend)
	}
	if err := clearer.Clear(ctx); err != nil {
		return fmt.Errorf("clear %s cache: %w", backend, err)
	}

	if backend == cache.BackendNone {
		printInfo("Caching is disabled")
		return nil
	}
	printSuccess("Cleared %s cache", backend)
	printDetail("Location: %s", cacheLocation(c.Config.CacheOptions()))
	return nil
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print where the cache lives",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(cacheLocation(c.Config.CacheOptions()))
			return nil
		},
	}
}

// cacheLocation describes the configured backend: a directory for the file
// cache, an address for the network backends.
func cacheLocation(cfg cache.Config) string {
	switch cfg.Backend {
	case cache.BackendRedis:
		return "redis://" + cfg.RedisAddr
	case cache.BackendMongo:
		return cfg.MongoURI + "/" + cfg.MongoDB
	case cache.BackendNone:
		return "none"
	default:
		return cfg.Dir
	}
}
