package types

import (
	"fmt"
	"strconv"
	"strings"
)

// Outpoint references a specific output in a transaction.
type Outpoint struct {
	TxID  Hash   `json:"tx_hash"`
	Index uint32 `json:"output_index"`
}

// IsZero returns true if the outpoint has a zero TxID and zero index.
func (o Outpoint) IsZero() bool {
	return o.TxID.IsZero() && o.Index == 0
}

// String returns "txid#index" in hex.
func (o Outpoint) String() string {
	return fmt.Sprintf("%s#%d", o.TxID.String(), o.Index)
}

// Less orders outpoints by transaction id, then by index.
func (o Outpoint) Less(other Outpoint) bool {
	if c := strings.Compare(o.TxID.String(), other.TxID.String()); c != 0 {
		return c < 0
	}
	return o.Index < other.Index
}

// ParseOutpoint parses the "txid#index" form produced by String.
func ParseOutpoint(s string) (Outpoint, error) {
	txid, idx, ok := strings.Cut(s, "#")
	if !ok {
		return Outpoint{}, fmt.Errorf("outpoint %q: missing '#'", s)
	}
	h, err := HexToHash(txid)
	if err != nil {
		return Outpoint{}, fmt.Errorf("outpoint %q: %w", s, err)
	}
	n, err := strconv.ParseUint(idx, 10, 32)
	if err != nil {
		return Outpoint{}, fmt.Errorf("outpoint %q: bad index: %w", s, err)
	}
	return Outpoint{TxID: h, Index: uint32(n)}, nil
}
