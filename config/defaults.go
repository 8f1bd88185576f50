package config

import "time"

// DefaultIndexerTimeout bounds each indexer request.
const DefaultIndexerTimeout = 10 * time.Second

// Default returns the default configuration for the given network. Auto
// leaves the network to be inferred from the API key.
func Default(network NetworkType) *Config {
	return &Config{
		Network: network,
		DataDir: DefaultDataDir(),
		Indexer: IndexerConfig{
			Timeout: DefaultIndexerTimeout,
		},
		Wallet: WalletConfig{
			Type: "ada",
		},
		Log: LogConfig{
			Level: "info",
			JSON:  false,
		},
	}
}
