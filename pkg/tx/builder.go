package tx

import (
	"errors"
	"fmt"

	"github.com/Klingon-tech/adawallet/pkg/address"
	"github.com/Klingon-tech/adawallet/pkg/types"
)

// maxFeeIterations bounds the fee/size fixed-point search.
const maxFeeIterations = 10

// ErrNoChangeAddress is returned by Build when no change address was set.
var ErrNoChangeAddress = errors.New("change address not set")

// Builder constructs balanced transactions. Outputs that carry tokens and no
// lovelace are topped up to the minimum, the fee is computed from the
// serialized size and leftover value returns to the change address.
type Builder struct {
	params ProtocolParams
	tx     *Transaction
	spent  map[types.Outpoint]types.Value
	change address.Address
}

// NewBuilder creates a new transaction builder.
func NewBuilder(params ProtocolParams) *Builder {
	return &Builder{
		params: params,
		tx:     &Transaction{},
		spent:  make(map[types.Outpoint]types.Value),
	}
}

// AddInput adds a UTXO to spend.
func (b *Builder) AddInput(utxo types.UTXO) *Builder {
	b.tx.Inputs = append(b.tx.Inputs, Input{PrevOut: utxo.Outpoint})
	b.spent[utxo.Outpoint] = utxo.Value.Clone()
	return b
}

// AddInputs adds several UTXOs.
func (b *Builder) AddInputs(utxos []types.UTXO) *Builder {
	for _, u := range utxos {
		b.AddInput(u)
	}
	return b
}

// AddOutput pays value to addr.
func (b *Builder) AddOutput(addr address.Address, value types.Value) *Builder {
	b.tx.Outputs = append(b.tx.Outputs, Output{Address: addr, Value: value.Clone()})
	return b
}

// SetChangeAddress sets where leftover value is returned.
func (b *Builder) SetChangeAddress(addr address.Address) *Builder {
	b.change = addr
	return b
}

// SetTTL sets the slot after which the transaction is invalid.
func (b *Builder) SetTTL(slot uint64) *Builder {
	b.tx.TTL = slot
	return b
}

// Spent returns the values of the inputs added so far.
func (b *Builder) Spent() map[types.Outpoint]types.Value {
	return b.spent
}

// Build balances the transaction and returns it unsigned.
func (b *Builder) Build() (*Transaction, error) {
	tx := b.tx
	if len(tx.Inputs) == 0 {
		return nil, ErrNoInputs
	}
	if len(tx.Outputs) == 0 {
		return nil, ErrNoOutputs
	}
	if b.change.IsZero() {
		return nil, ErrNoChangeAddress
	}
	seen := make(map[types.Outpoint]bool, len(tx.Inputs))
	for i, in := range tx.Inputs {
		if seen[in.PrevOut] {
			return nil, fmt.Errorf("input %d: %w", i, ErrDuplicateInput)
		}
		seen[in.PrevOut] = true
	}
	sortInputs(tx.Inputs)

	for i := range tx.Outputs {
		out := &tx.Outputs[i]
		minCoin, err := b.params.MinUTxO(*out)
		if err != nil {
			return nil, fmt.Errorf("output %d: %w", i, err)
		}
		if out.Value.Coin >= minCoin {
			continue
		}
		if out.Value.Coin == 0 && out.Value.HasAssets() {
			out.Value.Coin = minCoin
			continue
		}
		return nil, fmt.Errorf("output %d: %w: carries %d, needs %d", i, ErrBelowMinUTxO, out.Value.Coin, minCoin)
	}

	var inTotal types.Value
	for _, in := range tx.Inputs {
		sum, err := inTotal.Add(b.spent[in.PrevOut])
		if err != nil {
			return nil, err
		}
		inTotal = sum
	}
	outTotal, err := tx.TotalOutput()
	if err != nil {
		return nil, err
	}
	if !inTotal.Covers(outTotal) {
		return nil, fmt.Errorf("%w: have %d lovelace, outputs need %d", ErrInsufficientInput, inTotal.Coin, outTotal.Coin)
	}

	payments := tx.Outputs
	var fee uint64
	for iter := 0; iter < maxFeeIterations; iter++ {
		leftover, err := inTotal.Sub(outTotal)
		if err != nil {
			return nil, err
		}
		if leftover.Coin < fee {
			return nil, fmt.Errorf("%w: have %d lovelace, need %d plus fee %d",
				ErrInsufficientInput, inTotal.Coin, outTotal.Coin, fee)
		}
		leftover.Coin -= fee

		tx.Outputs = payments
		tx.Fee = fee
		if leftover.Coin > 0 || leftover.HasAssets() {
			change := Output{Address: b.change, Value: leftover}
			minChange, err := b.params.MinUTxO(change)
			if err != nil {
				return nil, err
			}
			if leftover.Coin < minChange {
				if leftover.HasAssets() {
					return nil, fmt.Errorf("%w: change carries tokens with %d lovelace, needs %d",
						ErrInsufficientInput, leftover.Coin, minChange)
				}
				return b.finishWithoutChange(tx, inTotal, outTotal)
			}
			tx.Outputs = append(append([]Output(nil), payments...), change)
		}

		size, err := b.estimateSize(tx)
		if err != nil {
			return nil, err
		}
		required := b.params.MinFee(size)
		if required <= fee {
			if err := b.checkSize(size); err != nil {
				return nil, err
			}
			return tx, nil
		}
		fee = required
	}
	return nil, fmt.Errorf("fee did not converge after %d iterations", maxFeeIterations)
}

// finishWithoutChange gives the dust that cannot form a change output to
// the fee.
func (b *Builder) finishWithoutChange(tx *Transaction, inTotal, outTotal types.Value) (*Transaction, error) {
	tx.Fee = inTotal.Coin - outTotal.Coin
	size, err := b.estimateSize(tx)
	if err != nil {
		return nil, err
	}
	if required := b.params.MinFee(size); tx.Fee < required {
		return nil, fmt.Errorf("%w: leftover %d lovelace below fee %d", ErrInsufficientInput, tx.Fee, required)
	}
	if err := b.checkSize(size); err != nil {
		return nil, err
	}
	return tx, nil
}

// estimateSize serializes tx with a placeholder payment-key witness.
func (b *Builder) estimateSize(tx *Transaction) (int, error) {
	sized := *tx
	sized.Witnesses = []Witness{{VKey: make([]byte, 32), Signature: make([]byte, 64)}}
	return sized.Size()
}

func (b *Builder) checkSize(size int) error {
	if b.params.MaxTxSize > 0 && uint64(size) > b.params.MaxTxSize {
		return fmt.Errorf("%w: %d bytes, max %d", ErrTxTooLarge, size, b.params.MaxTxSize)
	}
	return nil
}
