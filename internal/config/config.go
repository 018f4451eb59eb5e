package config

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Environment string `envconfig:"ENVIRONMENT" default:"local"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`

	DatabaseURL string `envconfig:"DATABASE_URL"`
	DBMinConns  int32  `envconfig:"FC_DB_MIN_CONNS" default:"1"`
	DBMaxConns  int32  `envconfig:"FC_DB_MAX_CONNS" default:"8"`

	TeamsDBPath    string  `envconfig:"TEAMS_DB_PATH" default:"spdb_teams.json"`
	GeoRulesPath   string  `envconfig:"GEO_RULES_PATH" default:"channel_geo_rules.json"`
	FuzzyThreshold float64 `envconfig:"FUZZY_MATCH_THRESHOLD" default:"0.90"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.DBMinConns < 0 {
		return fmt.Errorf("FC_DB_MIN_CONNS must be >= 0")
	}
	if c.DBMaxConns < 1 {
		return fmt.Errorf("FC_DB_MAX_CONNS must be >= 1")
	}
	if c.DBMinConns > c.DBMaxConns {
		return fmt.Errorf("FC_DB_MIN_CONNS (%d) cannot exceed FC_DB_MAX_CONNS (%d)", c.DBMinConns, c.DBMaxConns)
	}
	if strings.TrimSpace(c.TeamsDBPath) == "" {
		return fmt.Errorf("TEAMS_DB_PATH is required")
	}
	if c.FuzzyThreshold <= 0 || c.FuzzyThreshold > 1 {
		return fmt.Errorf("FUZZY_MATCH_THRESHOLD must be in (0, 1]")
	}
	return nil
}

// RequireDatabase guards commands that open a Postgres pool. File-only
// commands run without DATABASE_URL set.
func (c *Config) RequireDatabase() error {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	return nil
}
