package wallet

import "errors"

// Wallet errors.
var (
	// ErrMalformedKeyMaterial is returned at construction when a mnemonic or
	// raw key cannot be parsed.
	ErrMalformedKeyMaterial = errors.New("malformed key material")

	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrNoUTXOs           = errors.New("no UTXOs available")
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrUnsupportedType   = errors.New("unsupported wallet type")
	ErrMissingAPIKey     = errors.New("indexer API key is required")
)
