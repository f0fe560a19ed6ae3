package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/redis/go-redis/v9"
)

const (
	EnvRedisEnabled  = "TALENTGATE_REDIS_ENABLED"
	EnvRedisAddr     = "TALENTGATE_REDIS_ADDR"
	EnvRedisPassword = "TALENTGATE_REDIS_PASSWORD"
	EnvRedisDB       = "TALENTGATE_REDIS_DB"
)

// RedisConfig holds connection settings for the optional Redis instance
// backing submission rate limiting. Disabled by default.
type RedisConfig struct {
	Enabled  bool   `toml:"enabled"`
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// Options returns go-redis client options for the configured instance.
func (c *RedisConfig) Options() *redis.Options {
	return &redis.Options{
		Addr:     c.Addr,
		Password: c.Password,
		DB:       c.DB,
	}
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *RedisConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites fields from overlay. Enabled always applies.
func (c *RedisConfig) Merge(overlay *RedisConfig) {
	c.Enabled = overlay.Enabled
	if overlay.Addr != "" {
		c.Addr = overlay.Addr
	}
	if overlay.Password != "" {
		c.Password = overlay.Password
	}
	if overlay.DB != 0 {
		c.DB = overlay.DB
	}
}

func (c *RedisConfig) loadDefaults() {
	if c.Addr == "" {
		c.Addr = "localhost:6379"
	}
}

func (c *RedisConfig) loadEnv() {
	if v := os.Getenv(EnvRedisEnabled); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			c.Enabled = enabled
		}
	}
	if v := os.Getenv(EnvRedisAddr); v != "" {
		c.Addr = v
	}
	if v := os.Getenv(EnvRedisPassword); v != "" {
		c.Password = v
	}
	if v := os.Getenv(EnvRedisDB); v != "" {
		if db, err := strconv.Atoi(v); err == nil {
			c.DB = db
		}
	}
}

func (c *RedisConfig) validate() error {
	if c.Enabled && c.Addr == "" {
		return fmt.Errorf("addr required when enabled")
	}
	return nil
}
