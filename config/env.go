package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix prefixes every environment variable, e.g. ADAWALLET_NETWORK or
// ADAWALLET_INDEXER_API_KEY.
const EnvPrefix = "ADAWALLET"

// ApplyEnv overrides cfg with any ADAWALLET_* variables that are set.
// Unset variables leave cfg untouched.
func ApplyEnv(cfg *Config) error {
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return fmt.Errorf("environment: %w", err)
	}
	return nil
}

// EnvUsage prints the supported environment variables.
func EnvUsage() error {
	return envconfig.Usage(EnvPrefix, &Config{})
}
