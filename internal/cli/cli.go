package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/eddi-weiss/mavenizor/pkg/buildinfo"
	"github.com/eddi-weiss/mavenizor/pkg/cache"
	"github.com/eddi-weiss/mavenizor/pkg/config"
	"github.com/eddi-weiss/mavenizor/pkg/convert"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "mavenizor"

	// Environment variables read at startup (also from .env).
	envCacheDir = "MAVENIZOR_CACHE_DIR"
	envRedisURL = "MAVENIZOR_REDIS_URL"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance logging to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Mavenizor converts OSGi bundles into Maven artifacts",
		Long: `Mavenizor derives Maven coordinates for a resolved graph of OSGi bundles,
translates their version ranges, and decides what happens to every library
embedded inside a bundle.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.convertCommand())
	root.AddCommand(c.coordinateCommand())
	root.AddCommand(c.rangeCommand())
	root.AddCommand(c.scanCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Configuration
// =============================================================================

// loadConfig reads the file at path, or mavenizor.toml from the working
// directory, or falls back to defaults.
func loadConfig(logger *log.Logger, path string) (*config.Config, error) {
	if path == "" {
		found, ok := config.Discover(".")
		if !ok {
			logger.Debug("no configuration file, using defaults")
			return config.Default(), nil
		}
		path = found
	}
	logger.Debug("loading configuration", "path", path)
	return config.Load(path)
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a conversion runner backed by the configured cache.
func (c *CLI) newRunner(ctx context.Context, cfg *config.Config, noCache bool) (*convert.Runner, error) {
	ttl, err := cfg.CacheTTL()
	if err != nil {
		return nil, err
	}
	backend, err := newCache(ctx, cfg, noCache)
	if err != nil {
		return nil, err
	}
	// Results of different releases never share cache entries.
	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), buildinfo.Version+":")
	r := convert.NewRunner(backend, keyer, c.Logger)
	r.TTL = ttl
	return r, nil
}

func newCache(ctx context.Context, cfg *config.Config, noCache bool) (cache.Cache, error) {
	if noCache || cfg.Cache.Backend == config.BackendNone {
		return cache.NewNullCache(), nil
	}
	if cfg.Cache.Backend == config.BackendRedis || os.Getenv(envRedisURL) != "" {
		url := cfg.Cache.RedisURL
		if env := os.Getenv(envRedisURL); env != "" {
			url = env
		}
		rc, err := cache.NewRedisCache(ctx, url, appName+":")
		if err != nil {
			return nil, err
		}
		return rc, nil
	}

	dir := cfg.Path(cfg.Cache.Dir)
	if dir == "" {
		var err error
		if dir, err = cacheDir(); err != nil {
			return cache.NewNullCache(), nil
		}
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the result cache directory: $MAVENIZOR_CACHE_DIR, or the
// XDG cache home (~/.cache/mavenizor/).
func cacheDir() (string, error) {
	if dir := os.Getenv(envCacheDir); dir != "" {
		return dir, nil
	}
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
