// Package types defines core primitive types shared by the Cardano wallet
// packages: hashes, outpoints, assets and multi-asset values.
package types

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// HashSize is the length of a transaction hash in bytes (blake2b-256).
const HashSize = 32

// KeyHashSize is the length of a key or policy hash in bytes (blake2b-224).
const KeyHashSize = 28

// Hash represents a 256-bit hash value.
type Hash [HashSize]byte

// KeyHash is a 224-bit hash of a verification key or minting policy.
type KeyHash [KeyHashSize]byte

// IsZero returns true if the hash is all zeros.
func (h Hash) IsZero() bool {
	return h == Hash{}
}

// String returns the hex-encoded hash.
func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// Bytes returns a copy of the hash as a byte slice.
func (h Hash) Bytes() []byte {
	b := make([]byte, HashSize)
	copy(b, h[:])
	return b
}

// MarshalJSON encodes the hash as a hex string.
func (h Hash) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.String())
}

// UnmarshalJSON decodes a hex string into a hash.
func (h *Hash) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*h = Hash{}
		return nil
	}
	parsed, err := HexToHash(s)
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}

// HexToHash converts a hex string to a Hash.
// Returns an error if the string is not exactly 64 hex characters.
func HexToHash(s string) (Hash, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return Hash{}, fmt.Errorf("invalid hex: %w", err)
	}
	if len(b) != HashSize {
		return Hash{}, fmt.Errorf("hash must be %d bytes, got %d", HashSize, len(b))
	}
	var h Hash
	copy(h[:], b)
	return h, nil
}

// String returns the hex-encoded key hash.
func (k KeyHash) String() string {
	return hex.EncodeToString(k[:])
}

// Bytes returns a copy of the key hash as a byte slice.
func (k KeyHash) Bytes() []byte {
	b := make([]byte, KeyHashSize)
	copy(b, k[:])
	return b
}

// HexToKeyHash converts a 56-character hex string to a KeyHash.
func HexToKeyHash(s string) (KeyHash, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return KeyHash{}, fmt.Errorf("invalid hex: %w", err)
	}
	if len(b) != KeyHashSize {
		return KeyHash{}, fmt.Errorf("key hash must be %d bytes, got %d", KeyHashSize, len(b))
	}
	var k KeyHash
	copy(k[:], b)
	return k, nil
}
