// Package config loads gridview configuration from a TOML file.
//
// Everything has a working default: with no config file at all, gridview
// serves on localhost with an in-memory store and in-memory artifact
// cache. A file is only needed to point at MongoDB/Redis or to seed the
// site with components.
package config

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/gridsmith/gridview/pkg/component"
	"github.com/gridsmith/gridview/pkg/errors"
)

// Store backends.
const (
	StoreMemory = "memory"
	StoreMongo  = "mongo"
)

// Cache backends.
const (
	CacheMemory = "memory"
	CacheRedis  = "redis"
	CacheNone   = "none"
)

// Config is the root configuration.
type Config struct {
	Listen     string          `toml:"listen"`
	Store      StoreConfig     `toml:"store"`
	Cache      CacheConfig     `toml:"cache"`
	Components []SeedComponent `toml:"components"`
}

// StoreConfig selects and configures the component store backend.
type StoreConfig struct {
	Backend string      `toml:"backend"`
	Mongo   MongoConfig `toml:"mongo"`
}

// MongoConfig configures the MongoDB store backend.
type MongoConfig struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// CacheConfig selects and configures the artifact cache backend.
type CacheConfig struct {
	Backend    string      `toml:"backend"`
	TTLMinutes int         `toml:"ttl_minutes"`
	Redis      RedisConfig `toml:"redis"`
}

// TTL returns the configured artifact lifetime.
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLMinutes) * time.Minute
}

// RedisConfig configures the Redis cache backend.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// SeedComponent describes a component loaded into the store at startup.
type SeedComponent struct {
	ID       string         `toml:"id"`
	Category string         `toml:"category"`
	Name     string         `toml:"name"`
	Config   map[string]any `toml:"config"`
}

// Default returns the zero-configuration setup: local listener, memory
// store, memory cache, no seed components.
func Default() *Config {
	return &Config{
		Listen: "127.0.0.1:8790",
		Store:  StoreConfig{Backend: StoreMemory},
		Cache:  CacheConfig{Backend: CacheMemory, TTLMinutes: 60},
	}
}

// Load reads a TOML config file and merges it over the defaults.
// A missing file (empty path, or the default path not existing) is not an
// error; the defaults are returned.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "config file not found: %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks backend selections and seed components.
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case StoreMemory:
	case StoreMongo:
		if c.Store.Mongo.URI == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "store.mongo.uri is required for the mongo backend")
		}
		if c.Store.Mongo.Database == "" {
			c.Store.Mongo.Database = "gridview"
		}
		if c.Store.Mongo.Collection == "" {
			c.Store.Mongo.Collection = "components"
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown store backend: %q", c.Store.Backend)
	}

	switch c.Cache.Backend {
	case CacheMemory, CacheNone:
	case CacheRedis:
		if c.Cache.Redis.Addr == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "cache.redis.addr is required for the redis backend")
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend: %q", c.Cache.Backend)
	}

	for i := range c.Components {
		if _, err := c.Components[i].Component(); err != nil {
			return err
		}
	}
	return nil
}

// Component converts a seed entry to a domain component.
func (s *SeedComponent) Component() (*component.Component, error) {
	cat, err := component.ParseCategory(s.Category)
	if err != nil {
		return nil, err
	}
	c := &component.Component{
		ID:       s.ID,
		Category: cat,
		Name:     s.Name,
		Config:   component.Config(s.Config),
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}
