package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/uxl/pkg/buildinfo"
	"github.com/matzehuels/uxl/pkg/cache"
	"github.com/matzehuels/uxl/pkg/config"
	"github.com/matzehuels/uxl/pkg/parser"
	"github.com/matzehuels/uxl/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display and output paths.
const appName = "uxl"

// stdinName is the input argument that reads UXL text from standard input.
const stdinName = "-"

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

	// Config is loaded before any command runs.
	Config config.Config

	configPath string
	permissive bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "uxl turns UXL wireframe descriptions into layouts and maps",
		Long:         `uxl parses UXL interface descriptions, lays out their pages as positioned boxes and draws wireframes and navigation maps.`,
		Version:      buildinfo.Get().Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.loadConfig(cmd)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: $UXL_CONFIG or ~/.config/uxl/config.toml)")
	root.PersistentFlags().BoolVar(&c.permissive, "permissive", false, "drop unknown actions and actions on tables instead of failing")

	root.AddCommand(c.checkCommand())
	root.AddCommand(c.parseCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.mapCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())
	registerCompletions(root)

	return root
}

// loadConfig reads the configuration file and attaches the logger to the
// command context.
func (c *CLI) loadConfig(cmd *cobra.Command) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	if c.permissive {
		cfg.Mode = parser.Permissive.String()
	}
	c.Config = cfg
	if cfg.Path != "" {
		c.Logger.Debug("loaded config", "path", cfg.Path)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(withLogger(ctx, c.Logger))
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	ch, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(ch, c.Config.Keyer(), c.Logger), nil
}

// newCache opens the configured cache backend. A backend that cannot be
// reached degrades to no caching.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	ch, err := cache.Open(ctx, c.Config.CacheOptions())
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		c.Logger.Warn("cache disabled", "backend", c.Config.Cache.Backend, "err", err)
		return cache.NewNullCache(), nil
	}
	return ch, nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// sourceOptions reads the UXL input and returns pipeline options seeded from
// the configuration.
func (c *CLI) sourceOptions(input string) (pipeline.Options, error) {
	text, name, err := readSource(input)
	if err != nil {
		return pipeline.Options{}, err
	}
	opts, err := c.Config.PipelineOptions()
	if err != nil {
		return pipeline.Options{}, err
	}
	opts.Source = text
	opts.SourceName = name
	opts.Logger = c.Logger
	if input != stdinName {
		opts.ImageDir = filepath.Dir(input)
	}
	return opts, nil
}

// readSource reads UXL text from path, or from stdin when path is "-".
func readSource(path string) (text, name string, err error) {
	if path == stdinName {
		data, err := io.ReadAll(io.LimitReader(os.Stdin, pipeline.MaxSourceSize+1))
		if err != nil {
			return "", "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), "<stdin>", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), path, nil
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return strings.Split(s, ",")
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a known format extension, it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		if input == stdinName {
			return appName
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if knownFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

var knownFormats = map[string]bool{
	pipeline.FormatSVG:  true,
	pipeline.FormatPNG:  true,
	pipeline.FormatPDF:  true,
	pipeline.FormatJSON: true,
	pipeline.FormatDOT:  true,
}
