// Package cli implements the verbump command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"

	"github.com/matzehuels/verbump/pkg/cache"
	"github.com/matzehuels/verbump/pkg/config"
	"github.com/matzehuels/verbump/pkg/errors"
	"github.com/matzehuels/verbump/pkg/integrations"
	"github.com/matzehuels/verbump/pkg/integrations/crates"
	"github.com/matzehuels/verbump/pkg/integrations/npm"
	"github.com/matzehuels/verbump/pkg/integrations/registry"
	"github.com/matzehuels/verbump/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "verbump"

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

	// Out receives previews and status lines, Err the spinner.
	Out io.Writer
	Err io.Writer
	In  io.Reader

	// exec runs lockfile refreshes; nil runs the real commands.
	exec pipeline.Exec

	viper      *viper.Viper
	config     *config.Config
	configFile string
	verbose    bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Out:    os.Stdout,
		Err:    w,
		In:     os.Stdin,
		viper:  config.New(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// loadConfig reads the config file once flags are parsed.
func (c *CLI) loadConfig() error {
	wd, err := os.Getwd()
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "get working directory")
	}
	cfg, err := config.Load(c.viper, c.configFile, wd)
	if err != nil {
		return err
	}
	c.config = cfg
	if file := config.File(c.viper); file != "" {
		c.Logger.Debug("loaded config", "file", file)
	}
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner backed by the configured registries.
// The returned cache must be closed by the caller.
func (c *CLI) newRunner(ctx context.Context, refresh bool) (*pipeline.Runner, cache.Cache, error) {
	backend, err := newCache(ctx, c.config.Cache)
	if err != nil {
		return nil, nil, err
	}

	reg := newRegistry(backend, c.config, refresh)
	runner := pipeline.NewRunner(reg, c.Logger)
	runner.Exec = c.exec
	return runner, backend, nil
}

func newRegistry(backend cache.Cache, cfg *config.Config, refresh bool) *registry.Registry {
	retry := integrations.WithRetries(cfg.Registry.Retries, cfg.Registry.RetryDelay)
	return registry.New(
		registry.WithSource(integrations.EcosystemNpm,
			npm.NewClient(backend, cfg.Cache.TTL, cfg.Registry.Npm, retry)),
		registry.WithSource(integrations.EcosystemCrates,
			crates.NewClient(backend, cfg.Cache.TTL, cfg.Registry.Crates, retry)),
		registry.WithRefresh(refresh),
	)
}

// newCache opens the response cache selected by cfg.
func newCache(ctx context.Context, cfg config.CacheConfig) (cache.Cache, error) {
	switch cfg.Backend {
	case config.BackendFile:
		dir, err := fileCacheDir(cfg)
		if err != nil {
			return nil, err
		}
		fc, err := cache.NewFileCache(dir)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "open cache %s", dir)
		}
		return fc, nil
	case config.BackendRedis:
		rc, err := cache.NewRedisCache(ctx, cfg.RedisURL, appName+":")
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeNetwork, err, "open redis cache")
		}
		return rc, nil
	default:
		return cache.NewNullCache(), nil
	}
}

// =============================================================================
// Paths
// =============================================================================

// fileCacheDir returns cache.dir, or the user cache directory when unset.
func fileCacheDir(cfg config.CacheConfig) (string, error) {
	if cfg.Dir != "" {
		return cfg.Dir, nil
	}
	dir, err := cacheDir()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidPath, err, "get cache dir")
	}
	return dir, nil
}

// cacheDir returns the cache directory using XDG standard (~/.cache/verbump/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
