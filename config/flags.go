package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// ErrHelp is returned by ParseFlags when -h or --help was requested.
var ErrHelp = flag.ErrHelp

// Flags holds parsed global command-line flags.
type Flags struct {
	Version bool

	// Core
	Network string
	DataDir string
	Config  string

	// Indexer
	APIKey         string
	IndexerURL     string
	IndexerTimeout time.Duration

	// Wallet
	Template string

	// Secret source (never persisted)
	PasswordPrompt bool
	MnemonicFile   string
	KeyFile        string

	// Logging
	LogLevel string
	LogFile  string
	LogJSON  bool

	// Subcommand and its arguments
	Args []string

	// Explicitly-set bool flags (for true/false overrides).
	SetLogJSON bool
}

// ParseFlags parses the global flags in args. Parsing stops at the first
// non-flag argument, which starts the subcommand.
func ParseFlags(args []string) (*Flags, error) {
	f := &Flags{}
	fs := flag.NewFlagSet("adawallet-cli", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.BoolVar(&f.Version, "version", false, "Show version information")

	// Core
	fs.StringVar(&f.Network, "network", "", "Network: mainnet, preprod or preview")
	fs.StringVar(&f.DataDir, "datadir", "", "Data directory path")
	fs.StringVar(&f.Config, "config", "", "Config file path")
	fs.StringVar(&f.Config, "c", "", "Config file path (shorthand)")

	// Indexer
	fs.StringVar(&f.APIKey, "api-key", "", "Blockfrost project key")
	fs.StringVar(&f.IndexerURL, "indexer-url", "", "Blockfrost endpoint override")
	fs.DurationVar(&f.IndexerTimeout, "indexer-timeout", 0, "Per-request indexer timeout")

	// Wallet
	fs.StringVar(&f.Template, "template", "", "Password template")
	fs.BoolVar(&f.PasswordPrompt, "password", false, "Derive the wallet from a password (prompted)")
	fs.StringVar(&f.MnemonicFile, "mnemonic-file", "", "Read the recovery phrase from a file")
	fs.StringVar(&f.KeyFile, "key-file", "", "Read the bech32 root key from a file")

	// Logging
	fs.StringVar(&f.LogLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	fs.StringVar(&f.LogFile, "log-file", "", "Log file path")
	fs.BoolVar(&f.LogJSON, "log-json", false, "Output logs as JSON")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, ErrHelp
		}
		return nil, err
	}

	f.SetLogJSON = isFlagSet(fs, "log-json")
	f.Args = fs.Args()

	sources := 0
	for _, set := range []bool{f.PasswordPrompt, f.MnemonicFile != "", f.KeyFile != ""} {
		if set {
			sources++
		}
	}
	if sources > 1 {
		return nil, fmt.Errorf("--password, --mnemonic-file and --key-file are mutually exclusive")
	}
	return f, nil
}

// ApplyFlags applies command-line flags to cfg.
func ApplyFlags(cfg *Config, f *Flags) {
	if f.Network != "" {
		cfg.Network = NetworkType(strings.ToLower(f.Network))
	}
	if f.DataDir != "" {
		cfg.DataDir = f.DataDir
	}

	if f.APIKey != "" {
		cfg.Indexer.APIKey = f.APIKey
	}
	if f.IndexerURL != "" {
		cfg.Indexer.BaseURL = f.IndexerURL
	}
	if f.IndexerTimeout != 0 {
		cfg.Indexer.Timeout = f.IndexerTimeout
	}

	if f.Template != "" {
		cfg.Wallet.Template = f.Template
	}

	if f.LogLevel != "" {
		cfg.Log.Level = f.LogLevel
	}
	if f.LogFile != "" {
		cfg.Log.File = f.LogFile
	}
	if f.SetLogJSON {
		cfg.Log.JSON = f.LogJSON
	}
}

// isFlagSet checks if a flag was explicitly set.
func isFlagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// PrintUsage writes the global usage text to w.
func PrintUsage(w io.Writer) {
	fmt.Fprint(w, `ADA Wallet - Cardano light wallet backed by Blockfrost

Usage:
  adawallet-cli [global options] <command> [command options]

Global Options:
  --network         mainnet, preprod or preview (default: from API key)
  --datadir         Data directory (default: ~/.adawallet)
  --config, -c      Config file path (default: <datadir>/adawallet.conf)
  --api-key         Blockfrost project key (or ADAWALLET_INDEXER_API_KEY)
  --indexer-url     Blockfrost endpoint override
  --indexer-timeout Per-request timeout (default: 10s)
  --template        Password template for --password wallets
  --version         Show version information
  --help, -h        Show this help

Wallet Secret (pick one; none creates a fresh random wallet):
  --password        Prompt for a password
  --mnemonic-file   File holding the 24-word recovery phrase
  --key-file        File holding the bech32 xprv root key

Logging Options:
  --log-level       trace, debug, info, warn, error (default: info)
  --log-file        Log file; relative names go under <datadir>/logs
  --log-json        Output logs as JSON

Commands:
  address [--qr <file.png>]                 Show the wallet address
  mnemonic                                  Show the recovery phrase
  private-key                               Show the bech32 root key
  balance [--address <addr>]                Show the ADA balance
  token-info <unit>                         Show token metadata
  token-balance <unit> [--address <addr>]   Show a token balance
  send --to <addr> --amount <ada>           Send ADA
  send-token <unit> --to <addr> --amount <n>
                                            Send a native token
  init-config                               Write a default config file
  env                                       List environment variables
`)
}

// Load builds the configuration for args with the following precedence:
// 1. Default values
// 2. Config file
// 3. ADAWALLET_* environment variables
// 4. Command-line flags
func Load(args []string) (*Config, *Flags, error) {
	flags, err := ParseFlags(args)
	if err != nil {
		return nil, nil, err
	}

	cfg := Default(Auto)
	if flags.DataDir != "" {
		cfg.DataDir = flags.DataDir
	}

	configPath := flags.Config
	if configPath == "" {
		configPath = cfg.ConfigFile()
	}
	fileValues, err := LoadFile(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config file: %w", err)
	}
	if err := ApplyFileConfig(cfg, fileValues); err != nil {
		return nil, nil, fmt.Errorf("applying config file: %w", err)
	}

	if err := ApplyEnv(cfg); err != nil {
		return nil, nil, err
	}

	ApplyFlags(cfg, flags)
	return cfg, flags, nil
}

// EnsureDataDir creates the data directory and a default config file if
// they don't already exist.
func EnsureDataDir(cfg *Config) (string, error) {
	if err := os.MkdirAll(cfg.DataDir, 0700); err != nil {
		return "", fmt.Errorf("creating directory %s: %w", cfg.DataDir, err)
	}
	configPath := cfg.ConfigFile()
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := WriteDefaultConfig(configPath, cfg.Network); err != nil {
			return "", fmt.Errorf("writing config file: %w", err)
		}
	}
	return configPath, nil
}
