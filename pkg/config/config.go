// Package config loads verbump settings from a config file, the environment
// and command-line flags.
//
// Settings are read from verbump.toml, verbump.yaml or verbump.json in the
// working directory, or from the file given with --config. Every key can be
// overridden by an environment variable: cache.redis_url becomes
// VERBUMP_CACHE_REDIS_URL. Flags bound with BindPFlag win over both.
//
//	[update]
//	release = "minor"
//	exclude = ["typescript"]
//
//	[cache]
//	backend = "file"
//	ttl = "6h"
package config

import (
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"

	verrors "github.com/matzehuels/verbump/pkg/errors"
)

// Name is the config file name without extension.
const Name = "verbump"

// EnvPrefix prefixes every environment override.
const EnvPrefix = "VERBUMP"

// Cache backends.
const (
	BackendNone  = "none"
	BackendFile  = "file"
	BackendRedis = "redis"
)

// Backends lists the accepted cache.backend values.
var Backends = []string{BackendNone, BackendFile, BackendRedis}

// Config is the full set of settings.
type Config struct {
	Update   UpdateConfig   `mapstructure:"update"`
	Bump     BumpConfig     `mapstructure:"bump"`
	Registry RegistryConfig `mapstructure:"registry"`
	Cache    CacheConfig    `mapstructure:"cache"`
}

// UpdateConfig holds defaults for the update command.
type UpdateConfig struct {
	Release  string   `mapstructure:"release"`
	Include  []string `mapstructure:"include"`
	Exclude  []string `mapstructure:"exclude"`
	Peer     bool     `mapstructure:"peer"`
	Agents   []string `mapstructure:"agents"`
	Packages []string `mapstructure:"packages"`
	Jobs     int      `mapstructure:"jobs"`

	// Install refreshes lockfiles after writing. SelectAll checks every
	// change in the confirmation list up front.
	Install   bool `mapstructure:"install"`
	SelectAll bool `mapstructure:"select_all"`
}

// BumpConfig holds defaults for the bump command.
type BumpConfig struct {
	Release string `mapstructure:"release"`
	Pre     string `mapstructure:"pre"`
	Build   string `mapstructure:"build"`
	Install bool   `mapstructure:"install"`
}

// RegistryConfig points the registry clients at their servers.
// Empty URLs select the public registries.
type RegistryConfig struct {
	Npm        string        `mapstructure:"npm"`
	Crates     string        `mapstructure:"crates"`
	Retries    int           `mapstructure:"retries"`
	RetryDelay time.Duration `mapstructure:"retry_delay"`
}

// CacheConfig selects where registry responses are kept between runs.
type CacheConfig struct {
	Backend  string        `mapstructure:"backend"`
	TTL      time.Duration `mapstructure:"ttl"`
	Dir      string        `mapstructure:"dir"` // file backend; empty for the user cache dir
	RedisURL string        `mapstructure:"redis_url"`
}

var defaults = map[string]any{
	"update.release":       "",
	"update.include":       []string{},
	"update.exclude":       []string{},
	"update.peer":          false,
	"update.agents":        []string{},
	"update.packages":      []string{},
	"update.jobs":          0,
	"update.install":       true,
	"update.select_all":    true,
	"bump.release":         "patch",
	"bump.pre":             "",
	"bump.build":           "",
	"bump.install":         true,
	"registry.npm":         "",
	"registry.crates":      "",
	"registry.retries":     1,
	"registry.retry_delay": time.Second,
	"cache.backend":        BackendNone,
	"cache.ttl":            24 * time.Hour,
	"cache.dir":            "",
	"cache.redis_url":      "",
}

// New returns a viper instance with defaults and environment overrides set.
func New() *viper.Viper {
	v := viper.New()
	// Unmarshal only sees keys viper knows about, so every key gets a
	// default for environment overrides to apply.
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the config file into v and decodes the result. With file
// empty, verbump.{toml,yaml,json} is looked up in dir; a missing file there
// is not an error. An explicit file must exist.
func Load(v *viper.Viper, file, dir string) (*Config, error) {
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(Name)
		v.AddConfigPath(dir)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, verrors.Wrap(verrors.ErrCodeInvalidInput, err, "read config")
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, verrors.Wrap(verrors.ErrCodeInvalidInput, err, "decode config")
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// File returns the config file v read, or "" when none was found.
func File(v *viper.Viper) string { return v.ConfigFileUsed() }

// Validate checks value ranges.
func (c *Config) Validate() error {
	if !slices.Contains(Backends, c.Cache.Backend) {
		return verrors.New(verrors.ErrCodeInvalidInput, "cache.backend must be one of %s, got %q",
			strings.Join(Backends, ", "), c.Cache.Backend)
	}
	if c.Cache.Backend == BackendRedis && c.Cache.RedisURL == "" {
		return verrors.New(verrors.ErrCodeInvalidInput, "cache.redis_url is required for the redis backend")
	}
	if c.Cache.TTL < 0 {
		return verrors.New(verrors.ErrCodeInvalidInput, "cache.ttl must not be negative")
	}
	if c.Registry.Retries < 1 {
		return verrors.New(verrors.ErrCodeInvalidInput, "registry.retries must be at least 1")
	}
	if c.Update.Jobs < 0 {
		return verrors.New(verrors.ErrCodeInvalidInput, "update.jobs must not be negative")
	}
	for _, u := range []string{c.Registry.Npm, c.Registry.Crates} {
		if u == "" {
			continue
		}
		if err := verrors.ValidateURL(u); err != nil {
			return err
		}
	}
	return nil
}
