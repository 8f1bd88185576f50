package blockfrost

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/Klingon-tech/adawallet/pkg/tx"
	"github.com/Klingon-tech/adawallet/pkg/types"
)

// PageSize is the number of UTXOs requested per page.
const PageSize = 100

// DefaultMaxPages caps UTXO pagination.
const DefaultMaxPages = 1000

// ErrTooManyUTXOs is returned when an address holds more UTXOs than the
// pagination cap allows the client to read.
var ErrTooManyUTXOs = errors.New("too many UTXOs at address")

type addressResponse struct {
	Address string         `json:"address"`
	Amount  []types.Amount `json:"amount"`
}

type assetMetadata struct {
	Name     string `json:"name"`
	Ticker   string `json:"ticker"`
	Decimals *int   `json:"decimals"`
}

type assetResponse struct {
	Asset     string         `json:"asset"`
	PolicyID  string         `json:"policy_id"`
	AssetName string         `json:"asset_name"`
	Quantity  string         `json:"quantity"`
	Metadata  *assetMetadata `json:"metadata"`
}

type utxoResponse struct {
	Address     string         `json:"address"`
	TxHash      string         `json:"tx_hash"`
	OutputIndex uint32         `json:"output_index"`
	Amount      []types.Amount `json:"amount"`
}

// flexUint decodes numbers that the API sends either as JSON numbers or as
// quoted strings (e.g. coins_per_utxo_size).
type flexUint uint64

func (f *flexUint) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return fmt.Errorf("parse %s: %w", s, err)
	}
	*f = flexUint(n)
	return nil
}

type paramsResponse struct {
	MinFeeA          flexUint `json:"min_fee_a"`
	MinFeeB          flexUint `json:"min_fee_b"`
	MaxTxSize        flexUint `json:"max_tx_size"`
	CoinsPerUTxOSize flexUint `json:"coins_per_utxo_size"`
}

// AddressAmounts returns the balance of addr as a list of unit/quantity
// pairs. An address the indexer has never seen has no amounts.
func (c *Client) AddressAmounts(ctx context.Context, addr string) ([]types.Amount, error) {
	var resp addressResponse
	if err := c.get(ctx, "addresses/"+url.PathEscape(addr), nil, &resp); err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	for i := range resp.Amount {
		resp.Amount[i].Unit = types.Unit(strings.ToLower(string(resp.Amount[i].Unit)))
	}
	return resp.Amount, nil
}

// Asset returns metadata for a native token.
func (c *Client) Asset(ctx context.Context, unit types.Unit) (*types.AssetInfo, error) {
	var resp assetResponse
	if err := c.get(ctx, "assets/"+url.PathEscape(string(unit)), nil, &resp); err != nil {
		return nil, err
	}
	info := &types.AssetInfo{
		Unit:      types.Unit(strings.ToLower(resp.Asset)),
		PolicyID:  resp.PolicyID,
		AssetName: resp.AssetName,
	}
	if info.Unit == "" {
		info.Unit = unit
	}
	if resp.Metadata != nil {
		info.Ticker = resp.Metadata.Ticker
		if resp.Metadata.Decimals != nil {
			info.Decimals = *resp.Metadata.Decimals
		}
	}
	return info, nil
}

// UTXOs returns every unspent output at addr, following pagination.
func (c *Client) UTXOs(ctx context.Context, addr string) ([]types.UTXO, error) {
	var out []types.UTXO
	for page := 1; page <= c.maxPages; page++ {
		q := url.Values{}
		q.Set("page", strconv.Itoa(page))
		q.Set("count", strconv.Itoa(PageSize))

		var resp []utxoResponse
		if err := c.get(ctx, "addresses/"+url.PathEscape(addr)+"/utxos", q, &resp); err != nil {
			if IsNotFound(err) {
				return out, nil
			}
			return nil, err
		}
		for _, r := range resp {
			u, err := r.toUTXO()
			if err != nil {
				return nil, err
			}
			out = append(out, u)
		}
		if len(resp) < PageSize {
			return out, nil
		}
	}
	return nil, fmt.Errorf("%w: more than %d pages", ErrTooManyUTXOs, c.maxPages)
}

func (r utxoResponse) toUTXO() (types.UTXO, error) {
	txID, err := types.HexToHash(r.TxHash)
	if err != nil {
		return types.UTXO{}, fmt.Errorf("utxo tx hash: %w", err)
	}
	value, err := amountsToValue(r.Amount)
	if err != nil {
		return types.UTXO{}, fmt.Errorf("utxo %s#%d: %w", r.TxHash, r.OutputIndex, err)
	}
	return types.UTXO{
		Outpoint: types.Outpoint{TxID: txID, Index: r.OutputIndex},
		Address:  r.Address,
		Value:    value,
	}, nil
}

func amountsToValue(amounts []types.Amount) (types.Value, error) {
	var v types.Value
	for _, a := range amounts {
		q, err := strconv.ParseUint(a.Quantity, 10, 64)
		if err != nil {
			return types.Value{}, fmt.Errorf("quantity %q: %w", a.Quantity, err)
		}
		unit := types.Unit(strings.ToLower(string(a.Unit)))
		if unit.IsLovelace() {
			v.Coin += q
			continue
		}
		if v.Assets == nil {
			v.Assets = make(map[types.Unit]uint64)
		}
		v.Assets[unit] += q
	}
	return v, nil
}

// ProtocolParams returns the fee and size parameters of the current epoch.
func (c *Client) ProtocolParams(ctx context.Context) (*tx.ProtocolParams, error) {
	var resp paramsResponse
	if err := c.get(ctx, "epochs/latest/parameters", nil, &resp); err != nil {
		return nil, err
	}
	return &tx.ProtocolParams{
		MinFeeA:          uint64(resp.MinFeeA),
		MinFeeB:          uint64(resp.MinFeeB),
		MaxTxSize:        uint64(resp.MaxTxSize),
		CoinsPerUTxOByte: uint64(resp.CoinsPerUTxOSize),
	}, nil
}

// SubmitTx posts a signed CBOR transaction and returns its hash.
func (c *Client) SubmitTx(ctx context.Context, cbor []byte) (string, error) {
	var raw json.RawMessage
	if err := c.post(ctx, "tx/submit", "application/cbor", cbor, &raw); err != nil {
		return "", err
	}
	var hash string
	if err := json.Unmarshal(raw, &hash); err != nil {
		return "", fmt.Errorf("decode tx hash: %w", err)
	}
	return hash, nil
}
