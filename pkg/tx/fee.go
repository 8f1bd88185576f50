package tx

import "math"

// ProtocolParams holds the ledger parameters the builder needs.
type ProtocolParams struct {
	MinFeeA          uint64 `json:"min_fee_a"`
	MinFeeB          uint64 `json:"min_fee_b"`
	MaxTxSize        uint64 `json:"max_tx_size"`
	CoinsPerUTxOByte uint64 `json:"coins_per_utxo_size"`
}

// utxoEntryOverhead is the constant added to an output's serialized size
// when computing its minimum lovelace.
const utxoEntryOverhead = 160

// DefaultProtocolParams returns the current preprod/mainnet values.
func DefaultProtocolParams() ProtocolParams {
	return ProtocolParams{
		MinFeeA:          44,
		MinFeeB:          155381,
		MaxTxSize:        16384,
		CoinsPerUTxOByte: 4310,
	}
}

// MinFee returns the linear fee for a transaction of the given size in bytes.
func (p ProtocolParams) MinFee(size int) uint64 {
	return p.MinFeeA*uint64(size) + p.MinFeeB
}

// MaxTxFee returns the fee of a maximum-size transaction. Coin selection
// reserves this much on top of the requested amount.
func (p ProtocolParams) MaxTxFee() uint64 {
	return p.MinFee(int(p.MaxTxSize))
}

// MinUTxO returns the minimum lovelace an output must carry.
func (p ProtocolParams) MinUTxO(out Output) (uint64, error) {
	required, err := p.minUTxOAt(out, out.Value.Coin)
	if err != nil {
		return 0, err
	}
	if required <= out.Value.Coin {
		return required, nil
	}
	// Raising the coin may lengthen its encoding.
	return p.minUTxOAt(out, required)
}

func (p ProtocolParams) minUTxOAt(out Output, coin uint64) (uint64, error) {
	probe := out
	probe.Value = out.Value.Clone()
	probe.Value.Coin = coin
	enc, err := encodeOutput(probe)
	if err != nil {
		return 0, err
	}
	b, err := encMode.Marshal(enc)
	if err != nil {
		return 0, err
	}
	size := uint64(utxoEntryOverhead + len(b))
	if p.CoinsPerUTxOByte > 0 && size > math.MaxUint64/p.CoinsPerUTxOByte {
		return math.MaxUint64, nil
	}
	return size * p.CoinsPerUTxOByte, nil
}
