package wallet

import (
	"context"
	"fmt"

	klog "github.com/Klingon-tech/adawallet/internal/log"
	"github.com/Klingon-tech/adawallet/pkg/address"
	"github.com/Klingon-tech/adawallet/pkg/tx"
	"github.com/Klingon-tech/adawallet/pkg/types"
)

// failedPrefix starts the description of every failed transfer.
const failedPrefix = "Transaction Failed: "

// TransferResult is the outcome of a transfer. On success Description is
// the transaction hash.
type TransferResult struct {
	Success     bool
	Description string
	Err         error
}

func transferOK(hash string) TransferResult {
	return TransferResult{Success: true, Description: hash}
}

func transferFailed(err error) TransferResult {
	return TransferResult{Description: failedPrefix + err.Error(), Err: err}
}

// TransferBuilder selects inputs, builds, signs and submits payments from
// one identity's enterprise address.
type TransferBuilder struct {
	id          *Identity
	indexer     IndexerClient
	chain       ChainClient
	minLovelace uint64
}

// NewTransferBuilder creates a builder spending from id.
func NewTransferBuilder(id *Identity, indexer IndexerClient, chain ChainClient) *TransferBuilder {
	return &TransferBuilder{
		id:          id,
		indexer:     indexer,
		chain:       chain,
		minLovelace: DefaultMinLovelace,
	}
}

// SendCoin pays amount ADA to the bech32 address to.
func (b *TransferBuilder) SendCoin(ctx context.Context, to, amount string) TransferResult {
	res, err := b.sendCoin(ctx, to, amount)
	if err != nil {
		return b.fail("coin", to, amount, err)
	}
	return res
}

// SendToken pays amount of unit, in the token's human units, to the bech32
// address to. The lovelace unit is sent as ADA.
func (b *TransferBuilder) SendToken(ctx context.Context, unit, to, amount string) TransferResult {
	u, err := types.ParseUnit(unit)
	if err != nil {
		return b.fail("token", to, amount, err)
	}
	if u.IsLovelace() {
		return b.SendCoin(ctx, to, amount)
	}
	res, err := b.sendToken(ctx, u, to, amount)
	if err != nil {
		return b.fail("token", to, amount, err)
	}
	return res
}

func (b *TransferBuilder) sendCoin(ctx context.Context, to, amount string) (TransferResult, error) {
	dest, err := address.ParseForNetwork(to, b.id.Network())
	if err != nil {
		return TransferResult{}, err
	}
	lovelace, err := ToBaseUnits(amount, types.CoinDecimals)
	if err != nil {
		return TransferResult{}, err
	}
	params, utxos, err := b.quote(ctx)
	if err != nil {
		return TransferResult{}, err
	}
	sel, err := LargestFirst(utxos, lovelace+params.MaxTxFee())
	if err != nil {
		return TransferResult{}, err
	}
	return b.complete(ctx, params, sel, dest, types.NewCoinValue(lovelace))
}

func (b *TransferBuilder) sendToken(ctx context.Context, unit types.Unit, to, amount string) (TransferResult, error) {
	dest, err := address.ParseForNetwork(to, b.id.Network())
	if err != nil {
		return TransferResult{}, err
	}
	info, err := b.indexer.Asset(ctx, unit)
	if err != nil {
		return TransferResult{}, fmt.Errorf("asset %s: %w", unit, err)
	}
	qty, err := ToBaseUnits(amount, info.Decimals)
	if err != nil {
		return TransferResult{}, err
	}
	params, utxos, err := b.quote(ctx)
	if err != nil {
		return TransferResult{}, err
	}
	// Coin is filled to the output minimum by the builder.
	value := types.Value{Assets: map[types.Unit]uint64{unit: qty}}
	sel, err := KeepRelevant(utxos, value, b.minLovelace)
	if err != nil {
		return TransferResult{}, err
	}
	return b.complete(ctx, params, sel, dest, value)
}

// quote fetches the ledger parameters and the spendable outputs.
func (b *TransferBuilder) quote(ctx context.Context) (*tx.ProtocolParams, []types.UTXO, error) {
	params, err := b.chain.ProtocolParams(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("protocol params: %w", err)
	}
	utxos, err := b.chain.UTXOs(ctx, b.id.Address().String())
	if err != nil {
		return nil, nil, fmt.Errorf("fetch utxos: %w", err)
	}
	return params, utxos, nil
}

// complete builds the payment from sel, signs it and submits it.
func (b *TransferBuilder) complete(ctx context.Context, params *tx.ProtocolParams, sel *CoinSelection, to address.Address, value types.Value) (TransferResult, error) {
	defer klog.Benchmark("transfer.complete")()

	builder := tx.NewBuilder(*params).
		AddInputs(sel.Inputs).
		AddOutput(to, value).
		SetChangeAddress(b.id.Address())
	transaction, err := builder.Build()
	if err != nil {
		return TransferResult{}, fmt.Errorf("build: %w", err)
	}

	signer, err := b.id.PaymentSigner()
	if err != nil {
		return TransferResult{}, err
	}
	if err := transaction.Sign(signer); err != nil {
		return TransferResult{}, err
	}
	if err := transaction.Validate(); err != nil {
		return TransferResult{}, err
	}
	if err := transaction.CheckBalance(builder.Spent()); err != nil {
		return TransferResult{}, err
	}
	if err := transaction.VerifySignatures(); err != nil {
		return TransferResult{}, err
	}

	raw, err := transaction.Bytes()
	if err != nil {
		return TransferResult{}, fmt.Errorf("encode: %w", err)
	}
	hash, err := b.chain.SubmitTx(ctx, raw)
	if err != nil {
		return TransferResult{}, fmt.Errorf("submit: %w", err)
	}

	klog.Tx.Info().
		Str("hash", hash).
		Str("to", to.String()).
		Uint64("fee", transaction.Fee).
		Int("inputs", len(transaction.Inputs)).
		Msg("Transaction submitted")
	return transferOK(hash), nil
}

func (b *TransferBuilder) fail(kind, to, amount string, err error) TransferResult {
	klog.Tx.Error().Err(err).
		Str("kind", kind).
		Str("to", to).
		Str("amount", amount).
		Msg("Transfer failed")
	return transferFailed(err)
}
