package config

import "time"

type RedisConfig struct {
	Addr         string        `yaml:"addr" env:"REDIS_ADDR"`
	Password     string        `yaml:"password" env:"REDIS_PASS"`
	DB           int           `yaml:"db" env:"REDIS_DB"`
	ProbeTimeout time.Duration `yaml:"probe_timeout" env:"REDIS_PROBE_TIMEOUT"`
}

const (
	// variables for local env
	localRedisAddr         = "localhost:6379"
	localRedisPass         = ""
	localRedisDB           = 0
	defaultRedisProbeLimit = time.Second
)

func defaultRedisConfig() RedisConfig {
	return RedisConfig{
		Addr:         localRedisAddr,
		Password:     localRedisPass,
		DB:           localRedisDB,
		ProbeTimeout: defaultRedisProbeLimit,
	}
}
