// Package cli implements the hamcount command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/hamcount/pkg/buildinfo"
	"github.com/matzehuels/hamcount/pkg/cache"
	"github.com/matzehuels/hamcount/pkg/config"
	"github.com/matzehuels/hamcount/pkg/counting"
	"github.com/matzehuels/hamcount/pkg/enumerate"
	"github.com/matzehuels/hamcount/pkg/observability"
	"github.com/matzehuels/hamcount/pkg/observability/prom"
	"github.com/matzehuels/hamcount/pkg/results"
)

// =============================================================================
// Constants
// =============================================================================

const appName = config.AppName

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
		Short: "Count Hamiltonian paths and cycles",
		Long: `hamcount counts Hamiltonian paths and cycles of structured graph families.

Vertices are first ordered so that the frontier of the counting engine stays
small; the exact orderer minimizes the vertex separation with a MaxSAT solver.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/hamcount/config.toml)")

	root.AddCommand(c.countCommand())
	root.AddCommand(c.orderCommand())
	root.AddCommand(c.sequenceCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.familiesCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.resultsCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Environment - Per-Command Wiring
// =============================================================================

// env bundles the backends a counting command needs. Close flushes
// metrics and releases the cache and the ledger.
type env struct {
	cfg     config.Config
	counter *counting.Counter
	ledger  results.Ledger
	metrics *prom.Metrics
	runID   string
}

// loadConfig reads the --config file, or the default file when it exists.
func (c *CLI) loadConfig() (config.Config, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// newEnv loads the configuration and opens cache, ledger and metrics.
func (c *CLI) newEnv(ctx context.Context, noCache bool) (*env, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}

	ch, err := c.newCache(ctx, cfg, noCache)
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	ledger, err := results.Open(ctx, cfg.Results.Ledger())
	if err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("open results ledger: %w", err)
	}

	rt := &env{
		cfg:    cfg,
		ledger: ledger,
		runID:  results.NewRunID(),
	}
	if cfg.Metrics.Textfile != "" {
		rt.metrics = prom.New()
		rt.metrics.Install()
	}

	var keyer cache.Keyer
	if ns := cfg.Cache.Namespace; ns != "" {
		keyer = cache.NewScopedKeyer(cache.NewDefaultKeyer(), ns+":")
	}
	rt.counter = counting.NewCounter(enumerate.NewFrontier(c.Logger), ch, keyer, c.Logger)
	rt.counter.SolverOptions = cfg.Solver.Options()
	rt.counter.OrderTTL = time.Duration(cfg.Cache.TTL)

	c.Logger.Debug("environment ready",
		"cache", cfg.Cache.Backend,
		"results", cfg.Results.Backend,
		"run", rt.runID)
	return rt, nil
}

// record appends results to the ledger under the env's run ID.
func (rt *env) record(ctx context.Context, rs ...*counting.Result) error {
	records := make([]results.Record, 0, len(rs))
	for _, r := range rs {
		records = append(records, results.NewRecord(rt.runID, r))
	}
	if err := rt.ledger.Append(ctx, records...); err != nil {
		return fmt.Errorf("record results: %w", err)
	}
	return nil
}

// Close writes the metrics textfile and closes the backends.
func (rt *env) Close() error {
	var errs []error
	if rt.metrics != nil {
		if err := rt.metrics.WriteToTextfile(rt.cfg.Metrics.Textfile); err != nil {
			errs = append(errs, fmt.Errorf("write metrics: %w", err))
		}
		observability.Reset()
	}
	if err := rt.counter.Cache.Close(); err != nil {
		errs = append(errs, err)
	}
	if err := rt.ledger.Close(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// newCache opens the configured cache backend. A file cache whose directory
// cannot be resolved degrades to no caching.
func (c *CLI) newCache(ctx context.Context, cfg config.Config, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch cfg.Cache.Backend {
	case config.CacheRedis:
		return cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr: cfg.Cache.RedisAddr,
			DB:   cfg.Cache.RedisDB,
		})
	case config.CacheFile:
		dir, err := cfg.CacheDir()
		if err != nil {
			c.Logger.Warn("cache directory unavailable, caching disabled", "error", err)
			return cache.NewNullCache(), nil
		}
		return cache.NewFileCache(dir)
	}
	return cache.NewNullCache(), nil
}
