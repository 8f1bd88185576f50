package wallet

import (
	"context"

	"github.com/Klingon-tech/adawallet/pkg/tx"
	"github.com/Klingon-tech/adawallet/pkg/types"
)

// IndexerClient reads balances and asset metadata.
type IndexerClient interface {
	AddressAmounts(ctx context.Context, addr string) ([]types.Amount, error)
	Asset(ctx context.Context, unit types.Unit) (*types.AssetInfo, error)
}

// ChainClient fetches spendable outputs and ledger parameters, and submits
// signed transactions.
type ChainClient interface {
	UTXOs(ctx context.Context, addr string) ([]types.UTXO, error)
	ProtocolParams(ctx context.Context) (*tx.ProtocolParams, error)
	SubmitTx(ctx context.Context, cbor []byte) (string, error)
}
