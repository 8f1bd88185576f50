package wallet

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/Klingon-tech/adawallet/pkg/tx"
	"github.com/Klingon-tech/adawallet/pkg/types"
)

var errAssetNotFound = errors.New("asset not found")

// fakeIndexer serves balances and asset metadata from maps.
type fakeIndexer struct {
	amounts  map[string][]types.Amount
	assets   map[types.Unit]*types.AssetInfo
	err      error // returned by AddressAmounts
	assetErr error // returned by Asset
	queried  []string
}

func newFakeIndexer() *fakeIndexer {
	return &fakeIndexer{
		amounts: make(map[string][]types.Amount),
		assets:  make(map[types.Unit]*types.AssetInfo),
	}
}

func (f *fakeIndexer) AddressAmounts(_ context.Context, addr string) ([]types.Amount, error) {
	f.queried = append(f.queried, addr)
	if f.err != nil {
		return nil, f.err
	}
	return f.amounts[addr], nil
}

func (f *fakeIndexer) Asset(_ context.Context, unit types.Unit) (*types.AssetInfo, error) {
	if f.assetErr != nil {
		return nil, f.assetErr
	}
	info, ok := f.assets[types.Unit(strings.ToLower(string(unit)))]
	if !ok {
		return nil, errAssetNotFound
	}
	cp := *info
	return &cp, nil
}

func (f *fakeIndexer) addAsset(unit types.Unit, decimals int) {
	policy, _ := unit.PolicyID()
	name := string(unit[len(policy.String()):])
	f.assets[unit] = &types.AssetInfo{
		Unit:      unit,
		PolicyID:  policy.String(),
		AssetName: name,
		Decimals:  decimals,
	}
}

// fakeChain serves a fixed UTXO set and records submissions.
type fakeChain struct {
	mu        sync.Mutex
	utxos     []types.UTXO
	params    tx.ProtocolParams
	utxoErr   error
	paramsErr error
	submitErr error
	submitted [][]byte
}

func newFakeChain(utxos ...types.UTXO) *fakeChain {
	return &fakeChain{utxos: utxos, params: tx.DefaultProtocolParams()}
}

func (f *fakeChain) UTXOs(_ context.Context, _ string) ([]types.UTXO, error) {
	if f.utxoErr != nil {
		return nil, f.utxoErr
	}
	out := make([]types.UTXO, len(f.utxos))
	copy(out, f.utxos)
	return out, nil
}

func (f *fakeChain) ProtocolParams(_ context.Context) (*tx.ProtocolParams, error) {
	if f.paramsErr != nil {
		return nil, f.paramsErr
	}
	p := f.params
	return &p, nil
}

func (f *fakeChain) SubmitTx(_ context.Context, cbor []byte) (string, error) {
	if f.submitErr != nil {
		return "", f.submitErr
	}
	decoded, err := tx.Decode(cbor)
	if err != nil {
		return "", err
	}
	hash, err := decoded.Hash()
	if err != nil {
		return "", err
	}
	f.mu.Lock()
	f.submitted = append(f.submitted, cbor)
	f.mu.Unlock()
	return hash.String(), nil
}

// lastSubmitted decodes the most recent submission.
func (f *fakeChain) lastSubmitted() (*tx.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.submitted) == 0 {
		return nil, errors.New("nothing submitted")
	}
	return tx.Decode(f.submitted[len(f.submitted)-1])
}

// walletUTXO is a coin-only output at the test address.
func walletUTXO(id byte, coin uint64) types.UTXO {
	return types.UTXO{
		Outpoint: types.Outpoint{TxID: types.Hash{0xaa, id}, Index: uint32(id)},
		Address:  testAddress,
		Value:    types.NewCoinValue(coin),
	}
}
