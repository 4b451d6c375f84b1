package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,       default=8080"`
	Env       string `env:"ENV,        default=development"`
	LogLevel  string `env:"LOG_LEVEL,  default=info"`
	LogPretty bool   `env:"LOG_PRETTY, default=false"`

	Strict StrictConfig
}

// StrictConfig toggles validations the original system leaves off. Both
// default to the permissive behavior.
type StrictConfig struct {
	// SessionOrder rejects sessions whose logout precedes their login.
	SessionOrder bool `env:"STRICT_SESSION_ORDER, default=false"`
	// InactiveDays rejects negative day thresholds on inactivity scans.
	InactiveDays bool `env:"STRICT_INACTIVE_DAYS, default=false"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
