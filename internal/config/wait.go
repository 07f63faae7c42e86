package config

import (
	"time"

	"github.com/jkosta95/recipe-app-api/internal/readiness"
)

// WaitConfig controls the startup wait for the database.
// MaxAttempts == 0 waits forever.
type WaitConfig struct {
	MaxAttempts int           `yaml:"max_attempts" env:"WAIT_MAX_ATTEMPTS"`
	Delay       time.Duration `yaml:"delay" env:"WAIT_DELAY"`
}

func (c WaitConfig) Policy() readiness.Policy {
	return readiness.Policy{
		MaxAttempts: c.MaxAttempts,
		Delay:       c.Delay,
	}
}

type HealthConfig struct {
	Interval time.Duration `yaml:"interval" env:"HEALTH_INTERVAL"`
}
