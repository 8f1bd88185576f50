package wallet

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Klingon-tech/adawallet/internal/blockfrost"
	klog "github.com/Klingon-tech/adawallet/internal/log"
	"github.com/Klingon-tech/adawallet/pkg/types"
)

// TypeADA is the only supported wallet type.
const TypeADA = "ada"

// Whitelist lists the coins and tokens a caller intends to use. It is kept
// for callers and not enforced.
type Whitelist struct {
	Coins  []string
	Tokens []string
}

// Options configures a Wallet.
type Options struct {
	Secret    Secret
	Type      string // must be "ada"
	APIKey    string // indexer project key, also selects the network
	Whitelist *Whitelist
	Template  string // password template; DefaultTemplate when empty
	Network   string // overrides the network implied by APIKey

	// Indexer endpoint settings for the default Blockfrost clients.
	IndexerURL     string
	IndexerTimeout time.Duration

	// Injected clients replace the Blockfrost defaults.
	Indexer IndexerClient
	Chain   ChainClient
}

// Wallet is a single-account Cardano wallet.
type Wallet struct {
	id        *Identity
	whitelist Whitelist
	balances  *BalanceReader
	transfers *TransferBuilder
}

// New derives the wallet identity and wires its indexer clients.
func New(opts Options) (*Wallet, error) {
	if !strings.EqualFold(opts.Type, TypeADA) {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedType, opts.Type)
	}
	if opts.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	network := types.NetworkFromAPIKey(opts.APIKey)
	if opts.Network != "" {
		n, err := types.NetworkByName(opts.Network)
		if err != nil {
			return nil, err
		}
		network = n
	}

	template := opts.Template
	if template == "" {
		template = DefaultTemplate
		if opts.Secret.Kind() == SecretPassword {
			klog.Wallet.Warn().Msg("Deriving from password with the default template")
		}
	}

	id, err := Derive(opts.Secret, template, network)
	if err != nil {
		return nil, err
	}

	indexer, chain := opts.Indexer, opts.Chain
	if indexer == nil || chain == nil {
		client := blockfrost.New(opts.APIKey,
			blockfrost.WithBaseURL(opts.IndexerURL),
			blockfrost.WithTimeout(opts.IndexerTimeout))
		if indexer == nil {
			indexer = client
		}
		if chain == nil {
			chain = client
		}
	}

	w := &Wallet{
		id:        id,
		balances:  NewBalanceReader(indexer),
		transfers: NewTransferBuilder(id, indexer, chain),
	}
	if opts.Whitelist != nil {
		w.whitelist = *opts.Whitelist
	}

	logger := klog.WithNetwork(network.Name)
	logger.Debug().
		Str("component", "wallet").
		Str("secret", opts.Secret.Kind().String()).
		Str("address", id.Address().String()).
		Msg("Wallet ready")
	return w, nil
}

// Address returns the enterprise payment address.
func (w *Wallet) Address() string { return w.id.Address().String() }

// BaseAddress returns the payment+stake address of the same account.
func (w *Wallet) BaseAddress() string { return w.id.BaseAddress().String() }

// PrivateKey returns the bech32 extended root key.
func (w *Wallet) PrivateKey() string { return w.id.PrivateKey() }

// Mnemonic returns the recovery phrase. Wallets built from a raw key have
// none.
func (w *Wallet) Mnemonic() (string, bool) { return w.id.Mnemonic() }

// Network returns the network the wallet addresses belong to.
func (w *Wallet) Network() types.Network { return w.id.Network() }

// Whitelist returns the whitelist supplied at construction.
func (w *Wallet) Whitelist() Whitelist { return w.whitelist }

// CoinBalance returns the ADA balance of addr, or of the wallet when addr
// is empty.
func (w *Wallet) CoinBalance(ctx context.Context, addr string) BalanceResult {
	return w.balances.CoinBalance(ctx, w.orSelf(addr))
}

// TokenBalance returns the balance of unit at addr, or at the wallet when
// addr is empty.
func (w *Wallet) TokenBalance(ctx context.Context, unit, addr string) BalanceResult {
	return w.balances.TokenBalance(ctx, unit, w.orSelf(addr))
}

// TokenInformation returns display metadata for unit.
func (w *Wallet) TokenInformation(ctx context.Context, unit string) TokenInfoResult {
	return w.balances.TokenInformation(ctx, unit)
}

// SendCoinTo pays amount ADA to the address to.
func (w *Wallet) SendCoinTo(ctx context.Context, to, amount string) TransferResult {
	return w.transfers.SendCoin(ctx, to, amount)
}

// SendTokenTo pays amount of unit to the address to.
func (w *Wallet) SendTokenTo(ctx context.Context, unit, to, amount string) TransferResult {
	return w.transfers.SendToken(ctx, unit, to, amount)
}

func (w *Wallet) orSelf(addr string) string {
	if addr == "" {
		return w.Address()
	}
	return addr
}
