// Package tx defines Cardano transaction types, their CBOR encoding and
// construction.
package tx

import (
	"fmt"
	"sort"

	"github.com/Klingon-tech/adawallet/pkg/address"
	"github.com/Klingon-tech/adawallet/pkg/crypto"
	"github.com/Klingon-tech/adawallet/pkg/types"
	"github.com/fxamacker/cbor/v2"
)

// Transaction is a Shelley-style transaction with a single-key witness set.
type Transaction struct {
	Inputs    []Input   `json:"inputs"`
	Outputs   []Output  `json:"outputs"`
	Fee       uint64    `json:"fee"`
	TTL       uint64    `json:"ttl,omitempty"`
	Witnesses []Witness `json:"witnesses,omitempty"`
}

// Input references a UTXO being spent.
type Input struct {
	PrevOut types.Outpoint `json:"prevout"`
}

// Output pays a value to an address.
type Output struct {
	Address address.Address `json:"address"`
	Value   types.Value     `json:"value"`
}

// Witness is a verification key and its signature over the body hash.
type Witness struct {
	VKey      []byte `json:"vkey"`
	Signature []byte `json:"signature"`
}

var encMode cbor.EncMode

func init() {
	em, err := cbor.EncOptions{Sort: cbor.SortCanonical}.EncMode()
	if err != nil {
		panic(err)
	}
	encMode = em
}

// Wire structures. Field numbers follow the ledger CDDL.
type (
	inputCBOR struct {
		_     struct{} `cbor:",toarray"`
		TxID  []byte
		Index uint32
	}

	outputCBOR struct {
		_       struct{} `cbor:",toarray"`
		Address []byte
		Amount  cbor.RawMessage
	}

	multiAssetCBOR struct {
		_      struct{} `cbor:",toarray"`
		Coin   uint64
		Assets map[cbor.ByteString]map[cbor.ByteString]uint64
	}

	bodyCBOR struct {
		Inputs  []inputCBOR  `cbor:"0,keyasint"`
		Outputs []outputCBOR `cbor:"1,keyasint"`
		Fee     uint64       `cbor:"2,keyasint"`
		TTL     uint64       `cbor:"3,keyasint,omitempty"`
	}

	vkeyWitnessCBOR struct {
		_         struct{} `cbor:",toarray"`
		VKey      []byte
		Signature []byte
	}

	witnessSetCBOR struct {
		VKeys []vkeyWitnessCBOR `cbor:"0,keyasint,omitempty"`
	}

	txCBOR struct {
		_         struct{} `cbor:",toarray"`
		Body      cbor.RawMessage
		Witnesses witnessSetCBOR
		Valid     bool
		Auxiliary any
	}
)

// encodeValue encodes a coin-only value as an unsigned integer and a
// multi-asset value as [coin, {policy: {name: quantity}}].
func encodeValue(v types.Value) ([]byte, error) {
	if !v.HasAssets() {
		return encMode.Marshal(v.Coin)
	}
	ma := multiAssetCBOR{Coin: v.Coin, Assets: make(map[cbor.ByteString]map[cbor.ByteString]uint64)}
	for _, unit := range v.Units() {
		policy, err := unit.PolicyID()
		if err != nil {
			return nil, err
		}
		name, err := unit.AssetName()
		if err != nil {
			return nil, err
		}
		pk := cbor.ByteString(policy[:])
		if ma.Assets[pk] == nil {
			ma.Assets[pk] = make(map[cbor.ByteString]uint64)
		}
		ma.Assets[pk][cbor.ByteString(name)] = v.Assets[unit]
	}
	return encMode.Marshal(ma)
}

func decodeValue(raw []byte) (types.Value, error) {
	var coin uint64
	if err := cbor.Unmarshal(raw, &coin); err == nil {
		return types.NewCoinValue(coin), nil
	}
	var ma multiAssetCBOR
	if err := cbor.Unmarshal(raw, &ma); err != nil {
		return types.Value{}, fmt.Errorf("decode value: %w", err)
	}
	v := types.Value{Coin: ma.Coin}
	for policy, names := range ma.Assets {
		var ph types.KeyHash
		if len(policy) != types.KeyHashSize {
			return types.Value{}, fmt.Errorf("decode value: policy id has %d bytes", len(policy))
		}
		copy(ph[:], policy)
		for name, qty := range names {
			if v.Assets == nil {
				v.Assets = make(map[types.Unit]uint64)
			}
			v.Assets[types.NewUnit(ph, []byte(name))] = qty
		}
	}
	return v, nil
}

func encodeOutput(out Output) (outputCBOR, error) {
	amount, err := encodeValue(out.Value)
	if err != nil {
		return outputCBOR{}, err
	}
	return outputCBOR{Address: out.Address.Bytes(), Amount: amount}, nil
}

// BodyBytes returns the CBOR-encoded transaction body.
func (tx *Transaction) BodyBytes() ([]byte, error) {
	body := bodyCBOR{
		Inputs:  make([]inputCBOR, len(tx.Inputs)),
		Outputs: make([]outputCBOR, len(tx.Outputs)),
		Fee:     tx.Fee,
		TTL:     tx.TTL,
	}
	for i, in := range tx.Inputs {
		body.Inputs[i] = inputCBOR{TxID: in.PrevOut.TxID.Bytes(), Index: in.PrevOut.Index}
	}
	for i, out := range tx.Outputs {
		enc, err := encodeOutput(out)
		if err != nil {
			return nil, fmt.Errorf("output %d: %w", i, err)
		}
		body.Outputs[i] = enc
	}
	return encMode.Marshal(body)
}

// Hash computes the transaction id: BLAKE2b-256 of the serialized body.
// Witnesses are not part of the hash.
func (tx *Transaction) Hash() (types.Hash, error) {
	body, err := tx.BodyBytes()
	if err != nil {
		return types.Hash{}, err
	}
	return crypto.Hash(body), nil
}

// Bytes returns the full CBOR transaction ready for submission.
func (tx *Transaction) Bytes() ([]byte, error) {
	body, err := tx.BodyBytes()
	if err != nil {
		return nil, err
	}
	env := txCBOR{Body: body, Valid: true}
	for _, w := range tx.Witnesses {
		env.Witnesses.VKeys = append(env.Witnesses.VKeys, vkeyWitnessCBOR{VKey: w.VKey, Signature: w.Signature})
	}
	return encMode.Marshal(env)
}

// Size returns the length of the serialized transaction.
func (tx *Transaction) Size() (int, error) {
	b, err := tx.Bytes()
	if err != nil {
		return 0, err
	}
	return len(b), nil
}

// Sign signs the body hash with key and attaches the witness, replacing any
// earlier witness for the same key.
func (tx *Transaction) Sign(key crypto.Signer) error {
	hash, err := tx.Hash()
	if err != nil {
		return fmt.Errorf("hash tx: %w", err)
	}
	sig, err := key.Sign(hash[:])
	if err != nil {
		return fmt.Errorf("sign tx: %w", err)
	}
	pub := key.PublicKey()
	for i := range tx.Witnesses {
		if string(tx.Witnesses[i].VKey) == string(pub) {
			tx.Witnesses[i].Signature = sig
			return nil
		}
	}
	tx.Witnesses = append(tx.Witnesses, Witness{VKey: pub, Signature: sig})
	return nil
}

// TotalOutput returns the sum of all output values.
func (tx *Transaction) TotalOutput() (types.Value, error) {
	var total types.Value
	for i, out := range tx.Outputs {
		sum, err := total.Add(out.Value)
		if err != nil {
			return types.Value{}, fmt.Errorf("output %d: %w", i, ErrOutputOverflow)
		}
		total = sum
	}
	return total, nil
}

// Decode parses a CBOR transaction produced by Bytes.
func Decode(data []byte) (*Transaction, error) {
	var env txCBOR
	if err := cbor.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode tx: %w", err)
	}
	var body bodyCBOR
	if err := cbor.Unmarshal(env.Body, &body); err != nil {
		return nil, fmt.Errorf("decode body: %w", err)
	}

	tx := &Transaction{Fee: body.Fee, TTL: body.TTL}
	for i, in := range body.Inputs {
		if len(in.TxID) != types.HashSize {
			return nil, fmt.Errorf("input %d: tx id has %d bytes", i, len(in.TxID))
		}
		var op types.Outpoint
		copy(op.TxID[:], in.TxID)
		op.Index = in.Index
		tx.Inputs = append(tx.Inputs, Input{PrevOut: op})
	}
	for i, out := range body.Outputs {
		addr, err := address.FromBytes(out.Address)
		if err != nil {
			return nil, fmt.Errorf("output %d: %w", i, err)
		}
		v, err := decodeValue(out.Amount)
		if err != nil {
			return nil, fmt.Errorf("output %d: %w", i, err)
		}
		tx.Outputs = append(tx.Outputs, Output{Address: addr, Value: v})
	}
	for _, w := range env.Witnesses.VKeys {
		tx.Witnesses = append(tx.Witnesses, Witness{VKey: w.VKey, Signature: w.Signature})
	}
	return tx, nil
}

func sortInputs(inputs []Input) {
	sort.Slice(inputs, func(i, j int) bool {
		return inputs[i].PrevOut.Less(inputs[j].PrevOut)
	})
}
