// Package cli implements the seatplan command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/seatplan/pkg/buildinfo"
	"github.com/matzehuels/seatplan/pkg/cache"
	"github.com/matzehuels/seatplan/pkg/config"
	"github.com/matzehuels/seatplan/pkg/layout/standing"
	"github.com/matzehuels/seatplan/pkg/pipeline"
	"github.com/matzehuels/seatplan/pkg/session"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "seatplan"

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

	// Config is loaded before any subcommand runs.
	Config *config.Config

	configPath string
}

// New creates a new CLI instance with a default logger.
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
		Short: "Seatplan compiles venue configurations into seat maps",
		Long: `Seatplan compiles declarative venue configurations (sections, row blocks,
numbering rules and standing areas) into a flat list of positioned seats and
row labels, with live reserved/blocked/sold statuses merged in.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/seatplan/config.toml)")

	root.AddCommand(c.compileCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.standingCommand())
	root.AddCommand(c.sessionCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.versionCommand())
	root.AddCommand(c.completionCommand())

	return root
}

func (c *CLI) loadConfig() error {
	if c.Config != nil && c.configPath == "" {
		return nil
	}
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	store, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	var keyer cache.Keyer
	if ns := c.Config.Cache.Namespace; ns != "" {
		keyer = cache.NewScopedKeyer(cache.NewDefaultKeyer(), ns+":")
	}
	r := pipeline.NewRunner(store, keyer, c.Logger)
	r.TTL = c.Config.Cache.TTL
	return r, nil
}

// newCache opens the configured cache backend. An unreachable Redis
// degrades to no caching with a warning.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch c.Config.Cache.Backend {
	case config.BackendNone:
		return cache.NewNullCache(), nil
	case config.BackendRedis:
		rc, err := cache.NewRedisCache(ctx, c.Config.Redis.Options())
		if err != nil {
			c.Logger.Warn("redis unavailable, caching disabled", "addr", c.Config.Redis.Addr, "error", err)
			return cache.NewNullCache(), nil
		}
		return rc, nil
	default:
		dir, err := c.Config.CacheDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
		return cache.NewFileCache(dir)
	}
}

// newSessionStore opens the file-backed session store.
func (c *CLI) newSessionStore() (*session.FileStore, error) {
	dir, err := c.Config.SessionDir()
	if err != nil {
		return nil, fmt.Errorf("session dir: %w", err)
	}
	return session.NewFileStore(dir)
}

// =============================================================================
// Options Helpers
// =============================================================================

// standingFlags are the standing-id flags shared by several commands.
type standingFlags struct {
	seed     uint64
	strategy string
}

func (f *standingFlags) register(cmd *cobra.Command) {
	cmd.Flags().Uint64Var(&f.seed, "seed", 0, "random seed for standing ids (default from config)")
	cmd.Flags().StringVar(&f.strategy, "strategy", "", "standing id strategy: random, sequential (default from config)")
}

// options merges the flags over the loaded config.
func (c *CLI) options(f standingFlags) (pipeline.Options, error) {
	opts := pipeline.Options{
		Seed:       c.Config.Standing.Seed,
		SessionTTL: c.Config.Session.TTL,
		Logger:     c.Logger,
	}
	strategy := c.Config.Standing.Strategy
	if f.seed != 0 {
		opts.Seed = f.seed
	}
	if f.strategy != "" {
		strategy = f.strategy
	}
	s, err := standing.ParseStrategy(strategy)
	if err != nil {
		return pipeline.Options{}, err
	}
	opts.Strategy = s
	return opts, nil
}
