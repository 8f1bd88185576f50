package config

import (
	"errors"
	"fmt"
	"strings"

	klog "github.com/Klingon-tech/adawallet/internal/log"
)

// ErrMissingAPIKey is returned when no indexer key is configured.
var ErrMissingAPIKey = errors.New("indexer.apikey is required (set ADAWALLET_INDEXER_API_KEY or --api-key)")

// Validate checks the config for operator mistakes. Commands that never
// reach the indexer can skip it.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	switch cfg.Network {
	case Auto, Mainnet, Preprod, Preview:
	default:
		return fmt.Errorf("network must be %q, %q or %q, got %q", Mainnet, Preprod, Preview, cfg.Network)
	}
	if strings.TrimSpace(cfg.Indexer.APIKey) == "" {
		return ErrMissingAPIKey
	}
	if cfg.Indexer.Timeout <= 0 {
		return fmt.Errorf("indexer.timeout must be positive")
	}
	if !strings.EqualFold(cfg.Wallet.Type, "ada") {
		return fmt.Errorf("wallet.type must be \"ada\", got %q", cfg.Wallet.Type)
	}
	if !klog.ValidLevel(cfg.Log.Level) {
		return fmt.Errorf("log.level %q is not a known level", cfg.Log.Level)
	}
	return nil
}
