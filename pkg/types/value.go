package types

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// ErrNegativeValue is returned when a subtraction would go below zero.
var ErrNegativeValue = errors.New("value would be negative")

// Value is a native coin amount in lovelace plus a bundle of native tokens.
type Value struct {
	Coin   uint64          `json:"coin"`
	Assets map[Unit]uint64 `json:"assets,omitempty"`
}

// NewCoinValue returns a Value holding only lovelace.
func NewCoinValue(coin uint64) Value {
	return Value{Coin: coin}
}

// Quantity returns the amount held of unit.
func (v Value) Quantity(unit Unit) uint64 {
	if unit.IsLovelace() {
		return v.Coin
	}
	return v.Assets[unit]
}

// HasAssets reports whether v carries any non-zero native token.
func (v Value) HasAssets() bool {
	for _, q := range v.Assets {
		if q > 0 {
			return true
		}
	}
	return false
}

// Units returns the token units held by v in sorted order.
func (v Value) Units() []Unit {
	units := make([]Unit, 0, len(v.Assets))
	for u, q := range v.Assets {
		if q > 0 {
			units = append(units, u)
		}
	}
	sort.Slice(units, func(i, j int) bool { return units[i] < units[j] })
	return units
}

// Clone returns a deep copy of v.
func (v Value) Clone() Value {
	out := Value{Coin: v.Coin}
	if len(v.Assets) > 0 {
		out.Assets = make(map[Unit]uint64, len(v.Assets))
		for u, q := range v.Assets {
			out.Assets[u] = q
		}
	}
	return out
}

// Add returns v + other. Overflow is reported as an error.
func (v Value) Add(other Value) (Value, error) {
	out := v.Clone()
	if out.Coin > math.MaxUint64-other.Coin {
		return Value{}, fmt.Errorf("coin overflow")
	}
	out.Coin += other.Coin
	for u, q := range other.Assets {
		if q == 0 {
			continue
		}
		if out.Assets == nil {
			out.Assets = make(map[Unit]uint64)
		}
		if out.Assets[u] > math.MaxUint64-q {
			return Value{}, fmt.Errorf("asset %s overflow", u)
		}
		out.Assets[u] += q
	}
	return out, nil
}

// Sub returns v - other, failing with ErrNegativeValue if any component of
// other exceeds v. Zero asset entries are dropped from the result.
func (v Value) Sub(other Value) (Value, error) {
	if other.Coin > v.Coin {
		return Value{}, fmt.Errorf("%w: coin have %d, need %d", ErrNegativeValue, v.Coin, other.Coin)
	}
	out := v.Clone()
	out.Coin -= other.Coin
	for u, q := range other.Assets {
		if q == 0 {
			continue
		}
		have := out.Assets[u]
		if q > have {
			return Value{}, fmt.Errorf("%w: %s have %d, need %d", ErrNegativeValue, u, have, q)
		}
		if have == q {
			delete(out.Assets, u)
		} else {
			out.Assets[u] = have - q
		}
	}
	if len(out.Assets) == 0 {
		out.Assets = nil
	}
	return out, nil
}

// Covers reports whether v holds at least every component of other.
func (v Value) Covers(other Value) bool {
	if v.Coin < other.Coin {
		return false
	}
	for u, q := range other.Assets {
		if v.Assets[u] < q {
			return false
		}
	}
	return true
}

// UTXO is an unspent transaction output owned by an address.
type UTXO struct {
	Outpoint Outpoint `json:"outpoint"`
	Address  string   `json:"address"`
	Value    Value    `json:"value"`
}

// IsCoinOnly reports whether the output holds lovelace and nothing else.
func (u UTXO) IsCoinOnly() bool {
	return !u.Value.HasAssets()
}
