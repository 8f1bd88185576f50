// Package config handles application configuration.
//
// Settings are layered: built-in defaults, then the .conf file, then
// ADAWALLET_* environment variables, then command-line flags.
// Wallet secrets are never part of the configuration.
package config

import (
	"os"
	"path/filepath"
	"runtime"
	"time"
)

// NetworkType names a Cardano network.
type NetworkType string

const (
	Mainnet NetworkType = "mainnet"
	Preprod NetworkType = "preprod"
	Preview NetworkType = "preview"

	// Auto infers the network from the indexer API key prefix.
	Auto NetworkType = ""
)

// Config holds the wallet runtime configuration.
type Config struct {
	Network NetworkType `conf:"network"`
	DataDir string      `conf:"datadir" split_words:"true"`

	Indexer IndexerConfig
	Wallet  WalletConfig
	Log     LogConfig
}

// IndexerConfig holds Blockfrost connection settings.
type IndexerConfig struct {
	APIKey  string        `conf:"indexer.apikey" split_words:"true"`
	BaseURL string        `conf:"indexer.url" split_words:"true"` // empty: derived from the key
	Timeout time.Duration `conf:"indexer.timeout"`
}

// WalletConfig holds wallet settings.
type WalletConfig struct {
	Type            string   `conf:"wallet.type"`
	Template        string   `conf:"wallet.template"` // password template
	WhitelistCoins  []string `conf:"wallet.whitelist.coins" split_words:"true"`
	WhitelistTokens []string `conf:"wallet.whitelist.tokens" split_words:"true"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `conf:"log.level"`
	File  string `conf:"log.file"`
	JSON  bool   `conf:"log.json"`
}

// DefaultDataDir returns the platform-specific default data directory.
//
//	Linux:   ~/.adawallet
//	macOS:   ~/Library/Application Support/AdaWallet
//	Windows: %APPDATA%\AdaWallet
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".adawallet"
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "AdaWallet")
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData != "" {
			return filepath.Join(appData, "AdaWallet")
		}
		return filepath.Join(home, "AppData", "Roaming", "AdaWallet")
	default:
		return filepath.Join(home, ".adawallet")
	}
}

// ConfigFile returns the config file path.
func (c *Config) ConfigFile() string {
	return filepath.Join(c.DataDir, "adawallet.conf")
}

// LogsDir returns the logs directory.
func (c *Config) LogsDir() string {
	return filepath.Join(c.DataDir, "logs")
}

// LogFilePath resolves Log.File: relative names live under LogsDir, an
// empty value disables file logging.
func (c *Config) LogFilePath() string {
	if c.Log.File == "" || filepath.IsAbs(c.Log.File) {
		return c.Log.File
	}
	return filepath.Join(c.LogsDir(), c.Log.File)
}
