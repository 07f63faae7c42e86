package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/jkosta95/recipe-app-api/internal/readiness"
)

// Config represents configuration data for the recipe API.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Redis  RedisConfig  `yaml:"redis"`
	Wait   WaitConfig   `yaml:"wait"`
	Health HealthConfig `yaml:"health"`
}

type ServerConfig struct {
	Addr            string        `yaml:"addr" env:"RECIPE_HTTP_ADDR"`
	ResponseTimeout time.Duration `yaml:"response_timeout" env:"RECIPE_RESPONSE_TIMEOUT"`
}

// DefaultConfig returns settings for a local development run.
func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ResponseTimeout: 5 * time.Second,
		},
		Redis: defaultRedisConfig(),
		Wait: WaitConfig{
			Delay: readiness.DefaultDelay,
		},
		Health: HealthConfig{
			Interval: 30 * time.Second,
		},
	}
}

// Load reads configuration from a yaml file, then applies environment
// overrides. A missing file falls back to defaults.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		content, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return Config{}, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(content, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ParseEnv loads configuration from environment variables.
// Unset variables leave the current field value untouched.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

func (c Config) Validate() error {
	if c.Server.Addr == "" {
		return errors.New("server addr is required")
	}
	if c.Server.ResponseTimeout <= 0 {
		return errors.New("server response_timeout must be positive")
	}
	if c.Redis.Addr == "" {
		return errors.New("redis addr is required")
	}
	if c.Redis.ProbeTimeout <= 0 {
		return errors.New("redis probe_timeout must be positive")
	}
	if err := c.Wait.Policy().Validate(); err != nil {
		return fmt.Errorf("wait: %w", err)
	}
	if c.Health.Interval <= 0 {
		return errors.New("health interval must be positive")
	}
	return nil
}
