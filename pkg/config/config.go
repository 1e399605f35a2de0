// Package config loads seatplan settings from a TOML file and SEATPLAN_*
// environment variables.
//
// Settings are resolved in order of precedence: environment, config file,
// defaults. The default file lives at $XDG_CONFIG_HOME/seatplan/config.toml
// (or ~/.config/seatplan/config.toml) and may be absent. Environment keys
// replace dots with underscores, so redis.addr is read from
// SEATPLAN_REDIS_ADDR.
//
//	[cache]
//	backend = "redis"
//	ttl = "72h"
//
//	[redis]
//	addr = "localhost:6379"
//
//	[standing]
//	seed = 7
//	strategy = "sequential"
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/matzehuels/seatplan/pkg/cache"
	"github.com/matzehuels/seatplan/pkg/errors"
	"github.com/matzehuels/seatplan/pkg/layout/standing"
	"github.com/matzehuels/seatplan/pkg/session"
)

const (
	appName   = "seatplan"
	envPrefix = "SEATPLAN"
)

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Config holds all seatplan settings.
type Config struct {
	Cache    CacheConfig    `mapstructure:"cache"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Session  SessionConfig  `mapstructure:"session"`
	Standing StandingConfig `mapstructure:"standing"`
}

// CacheConfig selects and tunes the layout cache.
type CacheConfig struct {
	Backend string        `mapstructure:"backend"` // file, redis, none
	Dir     string        `mapstructure:"dir"`
	TTL     time.Duration `mapstructure:"ttl"`

	// Namespace scopes cache keys, e.g. per team sharing one Redis.
	Namespace string `mapstructure:"namespace"`
}

// RedisConfig holds Redis connection settings for the redis cache backend.
type RedisConfig struct {
	Addr        string        `mapstructure:"addr"`
	Password    string        `mapstructure:"password"`
	DB          int           `mapstructure:"db"`
	Prefix      string        `mapstructure:"prefix"`
	DialTimeout time.Duration `mapstructure:"dial_timeout"`
}

// Options converts the settings into cache.RedisOptions.
func (r RedisConfig) Options() cache.RedisOptions {
	return cache.RedisOptions{
		Addr:        r.Addr,
		Password:    r.Password,
		DB:          r.DB,
		Prefix:      r.Prefix,
		DialTimeout: r.DialTimeout,
	}
}

// SessionConfig holds settings for stored standing sessions.
type SessionConfig struct {
	Dir string        `mapstructure:"dir"`
	TTL time.Duration `mapstructure:"ttl"`
}

// StandingConfig holds the standing id synthesis settings.
type StandingConfig struct {
	Seed     uint64 `mapstructure:"seed"`
	Strategy string `mapstructure:"strategy"`
}

// DefaultPath returns the default config file location.
func DefaultPath() (string, error) {
	if home := os.Getenv("XDG_CONFIG_HOME"); home != "" {
		return filepath.Join(home, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// DefaultCacheDir returns the XDG cache directory (~/.cache/seatplan).
func DefaultCacheDir() (string, error) {
	if home := os.Getenv("XDG_CACHE_HOME"); home != "" {
		return filepath.Join(home, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// LoadDotenv exports the variables of a .env file (default ".env" in the
// working directory) into the process environment without overriding
// variables that are already set. It reports whether a file was loaded.
func LoadDotenv(path string) (bool, error) {
	if path == "" {
		path = ".env"
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return false, nil
	}
	if err := godotenv.Load(path); err != nil {
		return false, errors.Wrap(errors.ErrCodeInvalidConfig, err, "load %s", path)
	}
	return true, nil
}

// Load reads configuration from path, or from DefaultPath when path is
// empty. A missing default file is not an error; a missing explicit file is.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err == nil {
			path = p
		}
	}
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			v.SetConfigType("toml")
			if err := v.ReadInConfig(); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
			}
		} else if explicit {
			return nil, errors.New(errors.ErrCodeFileNotFound, "config file %s does not exist", path)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := bindConfig(v)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("cache.backend", BackendFile)
	v.SetDefault("cache.dir", "")
	v.SetDefault("cache.ttl", cache.TTLLayout)
	v.SetDefault("cache.namespace", "")

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.prefix", cache.DefaultRedisPrefix)
	v.SetDefault("redis.dial_timeout", 5*time.Second)

	v.SetDefault("session.dir", "")
	v.SetDefault("session.ttl", session.DefaultTTL)

	v.SetDefault("standing.seed", standing.DefaultSeed)
	v.SetDefault("standing.strategy", string(standing.StrategyRandom))
}

func bindConfig(v *viper.Viper) *Config {
	cfg := &Config{}

	cfg.Cache.Backend = strings.ToLower(v.GetString("cache.backend"))
	cfg.Cache.Dir = v.GetString("cache.dir")
	cfg.Cache.TTL = v.GetDuration("cache.ttl")
	cfg.Cache.Namespace = v.GetString("cache.namespace")

	cfg.Redis.Addr = v.GetString("redis.addr")
	cfg.Redis.Password = v.GetString("redis.password")
	cfg.Redis.DB = v.GetInt("redis.db")
	cfg.Redis.Prefix = v.GetString("redis.prefix")
	cfg.Redis.DialTimeout = v.GetDuration("redis.dial_timeout")

	cfg.Session.Dir = v.GetString("session.dir")
	cfg.Session.TTL = v.GetDuration("session.ttl")

	cfg.Standing.Seed = v.GetUint64("standing.seed")
	cfg.Standing.Strategy = strings.ToLower(v.GetString("standing.strategy"))

	return cfg
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	var errs errors.List

	switch c.Cache.Backend {
	case BackendFile, BackendRedis, BackendNone:
	default:
		errs.Add(errors.ErrCodeInvalidConfig, "unknown cache backend %q", c.Cache.Backend)
	}
	if c.Cache.TTL <= 0 {
		errs.Add(errors.ErrCodeInvalidConfig, "cache ttl must be positive, got %s", c.Cache.TTL)
	}
	if c.Cache.Backend == BackendRedis && c.Redis.Addr == "" {
		errs.Add(errors.ErrCodeInvalidConfig, "redis addr is required for the redis cache backend")
	}
	if c.Redis.DB < 0 {
		errs.Add(errors.ErrCodeInvalidConfig, "invalid redis db: %d", c.Redis.DB)
	}
	if c.Session.TTL <= 0 {
		errs.Add(errors.ErrCodeInvalidConfig, "session ttl must be positive, got %s", c.Session.TTL)
	}
	if _, err := standing.ParseStrategy(c.Standing.Strategy); err != nil {
		errs.Add(errors.ErrCodeInvalidConfig, "%s", errors.UserMessage(err))
	}

	return errs.Err()
}

// CacheDir returns the configured cache directory or the XDG default.
func (c *Config) CacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	return DefaultCacheDir()
}

// SessionDir returns the configured session directory or the default.
func (c *Config) SessionDir() (string, error) {
	if c.Session.Dir != "" {
		return c.Session.Dir, nil
	}
	return session.DefaultDir()
}
