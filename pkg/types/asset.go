package types

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// Unit identifies an asset. The native coin uses the Lovelace sentinel;
// native tokens are the hex policy id followed by the hex asset name.
type Unit string

// Lovelace is the unit of the native coin (1 ADA = 10^6 lovelace).
const Lovelace Unit = "lovelace"

// CoinDecimals is the number of decimals between lovelace and ADA.
const CoinDecimals = 6

// policyHexLen is the length of a hex-encoded policy id.
const policyHexLen = KeyHashSize * 2

// NewUnit builds a token unit from a policy id and a raw asset name.
func NewUnit(policy KeyHash, name []byte) Unit {
	return Unit(policy.String() + hex.EncodeToString(name))
}

// ParseUnit normalizes s to lower case and checks it is either the native
// coin or a well-formed token unit.
func ParseUnit(s string) (Unit, error) {
	u := Unit(strings.ToLower(strings.TrimSpace(s)))
	if u == Lovelace {
		return u, nil
	}
	if len(u) < policyHexLen {
		return "", fmt.Errorf("unit %q: shorter than a policy id", s)
	}
	if len(u)%2 != 0 {
		return "", fmt.Errorf("unit %q: odd hex length", s)
	}
	if _, err := hex.DecodeString(string(u)); err != nil {
		return "", fmt.Errorf("unit %q: %w", s, err)
	}
	if len(u)-policyHexLen > 64 {
		return "", fmt.Errorf("unit %q: asset name longer than 32 bytes", s)
	}
	return u, nil
}

// IsLovelace reports whether u is the native coin.
func (u Unit) IsLovelace() bool {
	return u == Lovelace
}

// Equal compares two units case-insensitively.
func (u Unit) Equal(other Unit) bool {
	return strings.EqualFold(string(u), string(other))
}

// PolicyID returns the policy part of a token unit.
func (u Unit) PolicyID() (KeyHash, error) {
	if u.IsLovelace() || len(u) < policyHexLen {
		return KeyHash{}, fmt.Errorf("unit %q has no policy id", string(u))
	}
	return HexToKeyHash(string(u[:policyHexLen]))
}

// AssetName returns the raw asset name bytes of a token unit.
func (u Unit) AssetName() ([]byte, error) {
	if u.IsLovelace() || len(u) < policyHexLen {
		return nil, fmt.Errorf("unit %q has no asset name", string(u))
	}
	return hex.DecodeString(string(u[policyHexLen:]))
}

// Amount is one entry of an address balance as reported by the indexer.
// Quantity is a base-unit integer string.
type Amount struct {
	Unit     Unit   `json:"unit"`
	Quantity string `json:"quantity"`
}

// AssetInfo describes a native token.
type AssetInfo struct {
	Unit      Unit   `json:"asset"`
	PolicyID  string `json:"policy_id"`
	AssetName string `json:"asset_name"` // hex
	Decimals  int    `json:"decimals"`
	Ticker    string `json:"ticker,omitempty"`
}

// DisplayName returns the asset name decoded from hex, falling back to the
// raw hex when it is not valid.
func (a *AssetInfo) DisplayName() string {
	b, err := hex.DecodeString(a.AssetName)
	if err != nil {
		return a.AssetName
	}
	return string(b)
}
