// Package config loads engine configuration from a YAML file with
// environment-variable overrides. Missing files fall back to defaults so
// the binary runs without any configuration present.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v2"
)

// Config holds the runtime settings of the impact API.
type Config struct {
	Port             int    `yaml:"port"`
	MonteCarloTrials int    `yaml:"monte_carlo_trials"`
	RandomSeed       int64  `yaml:"random_seed"` // 0 means time-seeded
	RedisAddr        string `yaml:"redis_addr"`  // empty means in-memory cache
	DatabaseURL      string `yaml:"database_url"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Port:             8080,
		MonteCarloTrials: 1000,
	}
}

// Load reads the YAML file at path over the defaults, then applies
// environment overrides (PORT, REDIS_ADDR, DATABASE_URL). A missing file
// is not an error.
func Load(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.Port = p
		}
	}
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		cfg.RedisAddr = addr
	}
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		cfg.DatabaseURL = dbURL
	}

	return cfg, nil
}
