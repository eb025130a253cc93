// Package config holds gateway configuration loaded from an optional YAML
// file and the environment. Environment variables always win over file
// values so deployments can override a checked-in config.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the full gateway configuration.
type Config struct {
	// WordPressURL is the upstream CMS root, e.g. https://chouquette.ch.
	// The REST prefix (/wp-json) is appended by the upstream client.
	WordPressURL string `yaml:"wordpress_url" json:"wordpress_url"`

	Bind string `yaml:"bind,omitempty" json:"bind,omitempty"`

	UpstreamTimeoutSeconds int `yaml:"upstream_timeout_seconds,omitempty" json:"upstream_timeout_seconds,omitempty"`
	MaxPageSize            int `yaml:"max_page_size,omitempty" json:"max_page_size,omitempty"`

	LogFormat string `yaml:"log_format,omitempty" json:"log_format,omitempty"`
	LogLevel  string `yaml:"log_level,omitempty" json:"log_level,omitempty"`

	Cache     CacheConfig     `yaml:"cache,omitempty" json:"cache,omitempty"`
	RateLimit RateLimitConfig `yaml:"rate_limit,omitempty" json:"rate_limit,omitempty"`
}

// CacheConfig controls the whole-response cache for query operations.
// When RedisHost is empty an in-process TTL store is used instead.
type CacheConfig struct {
	Enabled       bool   `yaml:"enabled,omitempty" json:"enabled,omitempty"`
	RedisHost     string `yaml:"redis_host,omitempty" json:"redis_host,omitempty"`
	RedisPort     int    `yaml:"redis_port,omitempty" json:"redis_port,omitempty"`
	RedisPassword string `yaml:"redis_password,omitempty" json:"redis_password,omitempty"`
	RedisDB       int    `yaml:"redis_db,omitempty" json:"redis_db,omitempty"`
	TTLSeconds    int    `yaml:"ttl_seconds,omitempty" json:"ttl_seconds,omitempty"`
}

// RateLimitConfig bounds inbound GraphQL requests. 0 disables limiting.
type RateLimitConfig struct {
	PerMinute int `yaml:"per_minute,omitempty" json:"per_minute,omitempty"`
}

// Load reads the optional YAML file at path, an optional .env file, and the
// environment, in that order of increasing precedence.
func Load(path, envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("load env file %s: %w", envFile, err)
		}
	}

	cfg := &Config{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overrides file values with environment variables. The names match
// the deployment environment of the original site (WP_URL, PORT, REDIS_*).
func (c *Config) applyEnv() {
	setString(&c.WordPressURL, "WP_URL")
	if port, ok := lookupInt("PORT"); ok {
		c.Bind = fmt.Sprintf(":%d", port)
	}
	setString(&c.Bind, "BIND")
	setInt(&c.UpstreamTimeoutSeconds, "UPSTREAM_TIMEOUT")
	setInt(&c.MaxPageSize, "MAX_PAGE_SIZE")
	setString(&c.LogFormat, "LOG_FORMAT")
	setString(&c.LogLevel, "LOG_LEVEL")

	setString(&c.Cache.RedisHost, "REDIS_HOST")
	setInt(&c.Cache.RedisPort, "REDIS_PORT")
	setString(&c.Cache.RedisPassword, "REDIS_PASSWORD")
	setInt(&c.Cache.RedisDB, "REDIS_DB")
	setInt(&c.Cache.TTLSeconds, "CACHE_TTL")
	if v, ok := os.LookupEnv("CACHE_ENABLED"); ok {
		c.Cache.Enabled = v == "1" || v == "true"
	}

	setInt(&c.RateLimit.PerMinute, "RATE_LIMIT_RPM")
}

// ApplyDefaults fills unset values.
func (c *Config) ApplyDefaults() {
	if c.Bind == "" {
		c.Bind = ":4000"
	}
	if c.UpstreamTimeoutSeconds == 0 {
		c.UpstreamTimeoutSeconds = 30
	}
	if c.MaxPageSize == 0 {
		c.MaxPageSize = 100
	}
	if c.LogFormat == "" {
		c.LogFormat = "text"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Cache.TTLSeconds == 0 {
		c.Cache.TTLSeconds = 60
	}
	if c.Cache.RedisHost != "" && c.Cache.RedisPort == 0 {
		c.Cache.RedisPort = 6379
	}
}

// Validate rejects configurations the gateway cannot start with.
func (c *Config) Validate() error {
	if c.WordPressURL == "" {
		return fmt.Errorf("wordpress_url (WP_URL) is required")
	}
	u, err := url.Parse(c.WordPressURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("wordpress_url %q is not an absolute URL", c.WordPressURL)
	}
	if c.UpstreamTimeoutSeconds < 0 {
		return fmt.Errorf("upstream_timeout_seconds must not be negative")
	}
	if c.RateLimit.PerMinute < 0 {
		return fmt.Errorf("rate_limit.per_minute must not be negative")
	}
	return nil
}

// UpstreamTimeout returns the configured timeout as a duration.
func (c *Config) UpstreamTimeout() time.Duration {
	return time.Duration(c.UpstreamTimeoutSeconds) * time.Second
}

// CacheTTL returns the response cache TTL as a duration.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Cache.TTLSeconds) * time.Second
}

// RedisAddr returns host:port for the Redis store, or "" if unconfigured.
func (c *Config) RedisAddr() string {
	if c.Cache.RedisHost == "" {
		return ""
	}
	return fmt.Sprintf("%s:%d", c.Cache.RedisHost, c.Cache.RedisPort)
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v, ok := lookupInt(key); ok {
		*dst = v
	}
}

func lookupInt(key string) (int, bool) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}
