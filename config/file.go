package config

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"
)

// LoadFile loads configuration values from a .conf file.
// Format: key = value (one per line, # for comments). A missing file yields
// no values.
func LoadFile(path string) (map[string]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]string), nil
		}
		return nil, err
	}
	defer file.Close()

	values := make(map[string]string)
	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return nil, fmt.Errorf("line %d: invalid format (expected key = value)", lineNum)
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		if len(value) >= 2 {
			if (value[0] == '"' && value[len(value)-1] == '"') ||
				(value[0] == '\'' && value[len(value)-1] == '\'') {
				value = value[1 : len(value)-1]
			}
		}

		values[key] = value
	}

	return values, scanner.Err()
}

// ApplyFileConfig applies file values to cfg.
func ApplyFileConfig(cfg *Config, values map[string]string) error {
	for key, value := range values {
		if err := setConfigValue(cfg, key, value); err != nil {
			return fmt.Errorf("config key %q: %w", key, err)
		}
	}
	return nil
}

func setConfigValue(cfg *Config, key, value string) error {
	switch key {
	case "network":
		cfg.Network = NetworkType(strings.ToLower(value))
	case "datadir":
		cfg.DataDir = value

	// Indexer
	case "indexer.apikey", "apikey":
		cfg.Indexer.APIKey = value
	case "indexer.url":
		cfg.Indexer.BaseURL = value
	case "indexer.timeout":
		d, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		cfg.Indexer.Timeout = d

	// Wallet
	case "wallet.type":
		cfg.Wallet.Type = value
	case "wallet.template":
		cfg.Wallet.Template = value
	case "wallet.whitelist.coins":
		cfg.Wallet.WhitelistCoins = parseStringList(value)
	case "wallet.whitelist.tokens":
		cfg.Wallet.WhitelistTokens = parseStringList(value)

	// Logging
	case "log.level":
		cfg.Log.Level = value
	case "log.file":
		cfg.Log.File = value
	case "log.json":
		cfg.Log.JSON = parseBool(value)

	default:
		// Unknown keys are ignored
	}
	return nil
}

// parseBool parses a boolean value.
func parseBool(s string) bool {
	s = strings.ToLower(s)
	return s == "true" || s == "1" || s == "yes" || s == "on"
}

// parseStringList parses a comma-separated list.
func parseStringList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}

// WriteDefaultConfig writes a commented configuration file.
func WriteDefaultConfig(path string, network NetworkType) error {
	netLine := "network = " + string(network)
	if network == Auto {
		netLine = "# network = preprod"
	}
	content := `# ADA Wallet Configuration
#
# Wallet secrets (password, mnemonic, private key) never belong here.
# Every key can also be set through ADAWALLET_* environment variables,
# e.g. ADAWALLET_INDEXER_API_KEY.

# Network: mainnet, preprod or preview.
# When unset, the network is taken from the indexer API key prefix.
` + netLine + `

# Data directory (default: ~/.adawallet)
# datadir = ~/.adawallet

# ============================================================================
# Indexer (Blockfrost)
# ============================================================================

# Project key from blockfrost.io (required)
# indexer.apikey = preprodXXXXXXXXXXXXXXXXXXXXXXXXXXXX

# Override the endpoint derived from the key
# indexer.url = https://cardano-preprod.blockfrost.io/api/v0

indexer.timeout = ` + DefaultIndexerTimeout.String() + `

# ============================================================================
# Wallet
# ============================================================================

wallet.type = ada

# Template mixed into password-derived wallets. Changing it changes every
# password wallet's address.
# wallet.template =

# Coins and tokens this wallet works with (comma-separated)
# wallet.whitelist.coins = ada
# wallet.whitelist.tokens =

# ============================================================================
# Logging
# ============================================================================

log.level = info
# log.file =
log.json = false
`
	return os.WriteFile(path, []byte(content), 0644)
}
