package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/SEA6153/tableview/internal/instance"
	"github.com/SEA6153/tableview/pkg/records"
	"github.com/redis/go-redis/v9"
	"gopkg.in/yaml.v3"
)

// Defaults applied by Validate when a section or field is omitted
const (
	DefaultAddr          = ":8080"
	DefaultReadTimeout   = 5 * time.Second
	DefaultWriteTimeout  = 5 * time.Second
	DefaultIdleTimeout   = 30 * time.Minute
	DefaultSweepInterval = time.Minute
	DefaultCookieName    = "tableview_session"
)

// Config represents the top-level tableview.yml configuration
type Config struct {
	Version  string          `yaml:"version"`
	Instance string          `yaml:"instance,omitempty"` // Namespaces Redis channels (default: "default")
	Server   *ServerConfig   `yaml:"server,omitempty"`
	Session  *SessionConfig  `yaml:"session,omitempty"`
	Redis    *RedisConfig    `yaml:"redis,omitempty"` // Optional: session events are not published without it
	Catalog  *CatalogConfig  `yaml:"catalog,omitempty"`
	Seed     records.Dataset `yaml:"seed,omitempty"` // Optional: replaces the built-in default tables
}

// ServerConfig specifies the HTTP listener
type ServerConfig struct {
	Addr         string        `yaml:"addr,omitempty"`
	ReadTimeout  time.Duration `yaml:"read_timeout,omitempty"`
	WriteTimeout time.Duration `yaml:"write_timeout,omitempty"`
}

// SessionConfig specifies session lifetime and the cookie carrying its key
type SessionConfig struct {
	IdleTimeout   time.Duration `yaml:"idle_timeout,omitempty"`   // Sessions unused this long are discarded
	SweepInterval time.Duration `yaml:"sweep_interval,omitempty"` // How often idle sessions are looked for
	CookieName    string        `yaml:"cookie_name,omitempty"`
}

// RedisConfig specifies the Redis server session events are published to
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password,omitempty"`
	DB       int    `yaml:"db,omitempty"`
}

// CatalogConfig specifies table-name catalog behavior
type CatalogConfig struct {
	CascadeRemove bool `yaml:"cascade_remove"` // Removing a catalog name also drops its records
}

// Default returns a validated configuration with every default applied.
func Default() *Config {
	c := &Config{Version: "1.0"}
	if err := c.Validate(); err != nil {
		panic(fmt.Sprintf("default configuration is invalid: %v", err))
	}
	return c
}

// Validate performs strict validation on the configuration and fills in defaults
func (c *Config) Validate() error {
	// Required: version
	if c.Version != "1.0" {
		return fmt.Errorf("unsupported version: %s (expected: 1.0)", c.Version)
	}

	name, err := instance.Resolve(c.Instance)
	if err != nil {
		return fmt.Errorf("instance: %w", err)
	}
	c.Instance = name

	if c.Server == nil {
		c.Server = &ServerConfig{}
	}
	if err := c.Server.validate(); err != nil {
		return err
	}

	if c.Session == nil {
		c.Session = &SessionConfig{}
	}
	if err := c.Session.validate(); err != nil {
		return err
	}

	if c.Redis != nil {
		if err := c.Redis.validate(); err != nil {
			return err
		}
	}

	if c.Catalog == nil {
		c.Catalog = &CatalogConfig{}
	}

	if len(c.Seed) > 0 {
		if err := c.Seed.Validate(); err != nil {
			return fmt.Errorf("seed: %w", err)
		}
	}

	return nil
}

func (s *ServerConfig) validate() error {
	if s.Addr == "" {
		s.Addr = DefaultAddr
	}
	if s.ReadTimeout == 0 {
		s.ReadTimeout = DefaultReadTimeout
	}
	if s.WriteTimeout == 0 {
		s.WriteTimeout = DefaultWriteTimeout
	}
	if s.ReadTimeout < 0 || s.WriteTimeout < 0 {
		return fmt.Errorf("server timeouts must be positive")
	}
	return nil
}

func (s *SessionConfig) validate() error {
	if s.IdleTimeout == 0 {
		s.IdleTimeout = DefaultIdleTimeout
	}
	if s.SweepInterval == 0 {
		s.SweepInterval = DefaultSweepInterval
	}
	if s.CookieName == "" {
		s.CookieName = DefaultCookieName
	}

	if s.IdleTimeout < 0 {
		return fmt.Errorf("session.idle_timeout must be positive, got %s", s.IdleTimeout)
	}
	if s.SweepInterval < 0 {
		return fmt.Errorf("session.sweep_interval must be positive, got %s", s.SweepInterval)
	}
	if strings.ContainsAny(s.CookieName, " ;=,") {
		return fmt.Errorf("invalid session.cookie_name: %q", s.CookieName)
	}
	return nil
}

func (r *RedisConfig) validate() error {
	if r.Addr == "" {
		return fmt.Errorf("redis.addr is required when the redis section is present")
	}
	if r.DB < 0 {
		return fmt.Errorf("redis.db must be >= 0, got %d", r.DB)
	}
	return nil
}

// Options converts the section into go-redis client options.
func (r *RedisConfig) Options() *redis.Options {
	return &redis.Options{
		Addr:     r.Addr,
		Password: r.Password,
		DB:       r.DB,
	}
}

// Dataset returns the seed tables, or the built-in defaults when none are configured.
func (c *Config) Dataset() records.Dataset {
	if len(c.Seed) > 0 {
		return c.Seed
	}
	return records.DefaultDataset()
}

// Load reads and validates tableview.yml from the specified path
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	return Parse(data)
}

// Parse unmarshals and validates a tableview.yml document
func Parse(data []byte) (*Config, error) {
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}
