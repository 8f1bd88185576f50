package tx

import (
	"errors"
	"fmt"

	"github.com/Klingon-tech/adawallet/pkg/crypto"
	"github.com/Klingon-tech/adawallet/pkg/types"
)

// Validation errors.
var (
	ErrNoInputs          = errors.New("transaction has no inputs")
	ErrNoOutputs         = errors.New("transaction has no outputs")
	ErrDuplicateInput    = errors.New("duplicate input")
	ErrOutputOverflow    = errors.New("output values overflow")
	ErrZeroOutput        = errors.New("output value is zero")
	ErrMissingWitness    = errors.New("transaction has no witnesses")
	ErrInvalidSig        = errors.New("invalid signature")
	ErrBelowMinUTxO      = errors.New("output below minimum lovelace")
	ErrTxTooLarge        = errors.New("transaction exceeds maximum size")
	ErrInsufficientInput = errors.New("inputs do not cover outputs and fee")
	ErrUnbalanced        = errors.New("inputs do not equal outputs plus fee")
	ErrInputNotFound     = errors.New("input UTXO not found")
)

// Validate checks transaction structure. It does not check signatures or
// balances.
func (tx *Transaction) Validate() error {
	if len(tx.Inputs) == 0 {
		return ErrNoInputs
	}
	if len(tx.Outputs) == 0 {
		return ErrNoOutputs
	}

	seen := make(map[types.Outpoint]bool, len(tx.Inputs))
	for i, in := range tx.Inputs {
		if seen[in.PrevOut] {
			return fmt.Errorf("input %d: %w", i, ErrDuplicateInput)
		}
		seen[in.PrevOut] = true
	}

	for i, out := range tx.Outputs {
		if out.Value.Coin == 0 && !out.Value.HasAssets() {
			return fmt.Errorf("output %d: %w", i, ErrZeroOutput)
		}
		if out.Address.IsZero() {
			return fmt.Errorf("output %d: missing address", i)
		}
	}
	if _, err := tx.TotalOutput(); err != nil {
		return err
	}
	return nil
}

// VerifySignatures checks that at least one witness is present and every
// witness signs the body hash.
func (tx *Transaction) VerifySignatures() error {
	if len(tx.Witnesses) == 0 {
		return ErrMissingWitness
	}
	hash, err := tx.Hash()
	if err != nil {
		return err
	}
	for i, w := range tx.Witnesses {
		if !crypto.VerifySignature(hash[:], w.Signature, w.VKey) {
			return fmt.Errorf("witness %d: %w", i, ErrInvalidSig)
		}
	}
	return nil
}

// CheckBalance verifies that the spent outputs equal the transaction outputs
// plus the fee. spent maps each input to the value it holds.
func (tx *Transaction) CheckBalance(spent map[types.Outpoint]types.Value) error {
	var in types.Value
	for i, input := range tx.Inputs {
		v, ok := spent[input.PrevOut]
		if !ok {
			return fmt.Errorf("input %d (%s): %w", i, input.PrevOut, ErrInputNotFound)
		}
		sum, err := in.Add(v)
		if err != nil {
			return fmt.Errorf("input %d: %w", i, err)
		}
		in = sum
	}
	out, err := tx.TotalOutput()
	if err != nil {
		return err
	}
	out, err = out.Add(types.NewCoinValue(tx.Fee))
	if err != nil {
		return err
	}
	if !in.Covers(out) || !out.Covers(in) {
		return fmt.Errorf("%w: in %d lovelace, out+fee %d lovelace", ErrUnbalanced, in.Coin, out.Coin)
	}
	return nil
}
