package wallet

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	klog "github.com/Klingon-tech/adawallet/internal/log"
	"github.com/Klingon-tech/adawallet/pkg/types"
)

// BalanceResult is a human-unit amount. A failed lookup reports "0" and
// keeps the cause in Err.
type BalanceResult struct {
	Amount string
	Err    error
}

// Degraded reports whether the amount is a fallback for a failed lookup.
func (r BalanceResult) Degraded() bool { return r.Err != nil }

// TokenInfo describes a token for display.
type TokenInfo struct {
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Decimals int    `json:"decimals"`
}

// TokenInfoResult is the outcome of a token metadata lookup. Info is nil
// when the lookup failed.
type TokenInfoResult struct {
	Info *TokenInfo
	Err  error
}

// Degraded reports whether the lookup failed.
func (r TokenInfoResult) Degraded() bool { return r.Err != nil }

// BalanceReader answers balance and token queries against an indexer.
// Reads never fail; errors are folded into the result.
type BalanceReader struct {
	indexer IndexerClient
}

// NewBalanceReader creates a reader backed by indexer.
func NewBalanceReader(indexer IndexerClient) *BalanceReader {
	return &BalanceReader{indexer: indexer}
}

// CoinBalance returns the ADA held at addr.
func (r *BalanceReader) CoinBalance(ctx context.Context, addr string) BalanceResult {
	qty, err := r.quantity(ctx, addr, types.Lovelace)
	if err != nil {
		return r.degraded("coin balance", addr, err)
	}
	return BalanceResult{Amount: ScaleDecimal(qty, 0, types.CoinDecimals).String()}
}

// TokenBalance returns the amount of unit held at addr, scaled by the
// token's decimals.
func (r *BalanceReader) TokenBalance(ctx context.Context, unit, addr string) BalanceResult {
	u, err := types.ParseUnit(unit)
	if err != nil {
		return r.degraded("token balance", addr, err)
	}
	qty, err := r.quantity(ctx, addr, u)
	if err != nil {
		return r.degraded("token balance", addr, err)
	}
	if qty.IsZero() {
		return BalanceResult{Amount: "0"}
	}

	decimals := types.CoinDecimals
	if !u.IsLovelace() {
		info, err := r.indexer.Asset(ctx, u)
		if err != nil {
			return r.degraded("token balance", addr, fmt.Errorf("asset %s: %w", u, err))
		}
		decimals = info.Decimals
	}
	return BalanceResult{Amount: ScaleDecimal(qty, 0, decimals).String()}
}

// TokenInformation returns the display name, symbol and decimals of unit.
// Name and symbol are both the decoded on-chain asset name.
func (r *BalanceReader) TokenInformation(ctx context.Context, unit string) TokenInfoResult {
	u, err := types.ParseUnit(unit)
	if err == nil && u.IsLovelace() {
		err = fmt.Errorf("lovelace is not a token")
	}
	if err != nil {
		klog.Wallet.Warn().Err(err).Str("unit", unit).Msg("Token info unavailable")
		return TokenInfoResult{Err: err}
	}

	info, err := r.indexer.Asset(ctx, u)
	if err != nil {
		klog.Wallet.Warn().Err(err).Str("unit", string(u)).Msg("Token info unavailable")
		return TokenInfoResult{Err: err}
	}
	name := info.DisplayName()
	return TokenInfoResult{Info: &TokenInfo{Name: name, Symbol: name, Decimals: info.Decimals}}
}

// quantity sums the base-unit amount of unit in the address balance.
func (r *BalanceReader) quantity(ctx context.Context, addr string, unit types.Unit) (decimal.Decimal, error) {
	amounts, err := r.indexer.AddressAmounts(ctx, addr)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, a := range amounts {
		if !a.Unit.Equal(unit) {
			continue
		}
		q, err := decimal.NewFromString(a.Quantity)
		if err != nil {
			return decimal.Zero, fmt.Errorf("quantity %q: %w", a.Quantity, err)
		}
		total = total.Add(q)
	}
	return total, nil
}

func (r *BalanceReader) degraded(op, addr string, err error) BalanceResult {
	klog.Wallet.Warn().Err(err).Str("address", addr).Msgf("%s unavailable, reporting 0", op)
	return BalanceResult{Amount: "0", Err: err}
}
