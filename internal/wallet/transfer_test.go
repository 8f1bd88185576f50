package wallet

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Klingon-tech/adawallet/pkg/address"
	"github.com/Klingon-tech/adawallet/pkg/tx"
	"github.com/Klingon-tech/adawallet/pkg/types"
)

func transferFixture(t *testing.T, utxos ...types.UTXO) (*TransferBuilder, *fakeIndexer, *fakeChain) {
	t.Helper()
	id := mustDerive(t, Password(testPassword), types.Preprod)
	idx := newFakeIndexer()
	chain := newFakeChain(utxos...)
	return NewTransferBuilder(id, idx, chain), idx, chain
}

func requireFailed(t *testing.T, res TransferResult, target error) {
	t.Helper()
	if res.Success {
		t.Fatalf("transfer succeeded: %s", res.Description)
	}
	if !strings.HasPrefix(res.Description, "Transaction Failed: ") {
		t.Errorf("Description = %q, want failure prefix", res.Description)
	}
	if target != nil && !errors.Is(res.Err, target) {
		t.Errorf("Err = %v, want %v", res.Err, target)
	}
}

func TestSendCoin(t *testing.T) {
	b, _, chain := transferFixture(t, walletUTXO(1, 200_000_000), walletUTXO(2, 50_000_000))

	res := b.SendCoin(context.Background(), testRecipient, "100")
	if !res.Success {
		t.Fatalf("SendCoin failed: %s", res.Description)
	}

	sent, err := chain.lastSubmitted()
	if err != nil {
		t.Fatal(err)
	}
	hash, err := sent.Hash()
	if err != nil {
		t.Fatal(err)
	}
	if res.Description != hash.String() {
		t.Errorf("Description = %s, want tx hash %s", res.Description, hash)
	}

	// Largest UTXO covers amount plus fee headroom.
	if len(sent.Inputs) != 1 || sent.Inputs[0].PrevOut != walletUTXO(1, 0).Outpoint {
		t.Errorf("inputs = %+v, want the 200 ADA output only", sent.Inputs)
	}
	if len(sent.Outputs) != 2 {
		t.Fatalf("outputs = %d, want payment and change", len(sent.Outputs))
	}
	pay, change := sent.Outputs[0], sent.Outputs[1]
	if pay.Address.String() != testRecipient || pay.Value.Coin != 100_000_000 {
		t.Errorf("payment = %s %d", pay.Address, pay.Value.Coin)
	}
	if change.Address.String() != testAddress {
		t.Errorf("change address = %s, want %s", change.Address, testAddress)
	}
	if pay.Value.Coin+change.Value.Coin+sent.Fee != 200_000_000 {
		t.Errorf("unbalanced: %d + %d + fee %d", pay.Value.Coin, change.Value.Coin, sent.Fee)
	}

	size, err := sent.Size()
	if err != nil {
		t.Fatal(err)
	}
	if min := tx.DefaultProtocolParams().MinFee(size); sent.Fee < min {
		t.Errorf("fee %d below minimum %d", sent.Fee, min)
	}
	if err := sent.VerifySignatures(); err != nil {
		t.Errorf("VerifySignatures: %v", err)
	}
}

func TestSendCoin_Fractional(t *testing.T) {
	b, _, chain := transferFixture(t, walletUTXO(1, 10_000_000))

	res := b.SendCoin(context.Background(), testRecipient, "1.5")
	if !res.Success {
		t.Fatalf("SendCoin failed: %s", res.Description)
	}
	sent, err := chain.lastSubmitted()
	if err != nil {
		t.Fatal(err)
	}
	if sent.Outputs[0].Value.Coin != 1_500_000 {
		t.Errorf("payment = %d, want 1500000", sent.Outputs[0].Value.Coin)
	}
}

func TestSendCoin_Failures(t *testing.T) {
	mainnetRecipient := address.NewEnterprise(types.Mainnet, make([]byte, 32)).String()

	tests := []struct {
		name   string
		to     string
		amount string
		setup  func(*fakeChain)
		want   error
	}{
		{"bad address", "addr_test1qqqq", "1", nil, address.ErrInvalidAddress},
		{"wrong network", mainnetRecipient, "1", nil, address.ErrWrongNetwork},
		{"not a number", testRecipient, "abc", nil, ErrInvalidAmount},
		{"zero", testRecipient, "0", nil, ErrInvalidAmount},
		{"too precise", testRecipient, "0.0000001", nil, ErrInvalidAmount},
		{"insufficient", testRecipient, "1000", nil, ErrInsufficientFunds},
		{"no utxos", testRecipient, "1", func(c *fakeChain) { c.utxos = nil }, ErrNoUTXOs},
		{"utxo fetch", testRecipient, "1", func(c *fakeChain) { c.utxoErr = errors.New("503") }, nil},
		{"params fetch", testRecipient, "1", func(c *fakeChain) { c.paramsErr = errors.New("503") }, nil},
		{"submit rejected", testRecipient, "1", func(c *fakeChain) { c.submitErr = errors.New("BadInputsUTxO") }, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, _, chain := transferFixture(t, walletUTXO(1, 20_000_000))
			if tt.setup != nil {
				tt.setup(chain)
			}
			res := b.SendCoin(context.Background(), tt.to, tt.amount)
			requireFailed(t, res, tt.want)
			if len(chain.submitted) != 0 {
				t.Errorf("failed transfer was submitted")
			}
		})
	}
}

func TestSendCoin_SubmitErrorInDescription(t *testing.T) {
	b, _, chain := transferFixture(t, walletUTXO(1, 20_000_000))
	chain.submitErr = errors.New("BadInputsUTxO")

	res := b.SendCoin(context.Background(), testRecipient, "1")
	requireFailed(t, res, chain.submitErr)
	if !strings.Contains(res.Description, "BadInputsUTxO") {
		t.Errorf("Description = %q, want submit cause", res.Description)
	}
}

func TestSendCoin_SkipsTokenUTXOs(t *testing.T) {
	held := tokenUTXO(1, 900_000_000, tokenA, 5)
	b, _, _ := transferFixture(t, held, walletUTXO(1, 3_000_000))

	res := b.SendCoin(context.Background(), testRecipient, "10")
	requireFailed(t, res, ErrInsufficientFunds)
}

func TestSendToken(t *testing.T) {
	held := tokenUTXO(1, 2_000_000, tokenA, 5000)
	held.Address = testAddress
	b, idx, chain := transferFixture(t, held, walletUTXO(1, 10_000_000), walletUTXO(2, 1_000_000))
	idx.addAsset(tokenA, 2)

	res := b.SendToken(context.Background(), strings.ToUpper(string(tokenA)), testRecipient, "0.1")
	if !res.Success {
		t.Fatalf("SendToken failed: %s", res.Description)
	}

	sent, err := chain.lastSubmitted()
	if err != nil {
		t.Fatal(err)
	}
	if len(sent.Inputs) != 2 {
		t.Errorf("inputs = %d, want token holder and largest coin output", len(sent.Inputs))
	}
	pay := sent.Outputs[0]
	if pay.Address.String() != testRecipient {
		t.Errorf("payment address = %s", pay.Address)
	}
	if got := pay.Value.Quantity(tokenA); got != 10 {
		t.Errorf("payment tokens = %d, want 10", got)
	}
	min, err := tx.DefaultProtocolParams().MinUTxO(pay)
	if err != nil {
		t.Fatal(err)
	}
	if pay.Value.Coin < min {
		t.Errorf("payment coin %d below min-UTxO %d", pay.Value.Coin, min)
	}

	var change tx.Output
	for _, out := range sent.Outputs[1:] {
		if out.Address.String() == testAddress {
			change = out
		}
	}
	if got := change.Value.Quantity(tokenA); got != 4990 {
		t.Errorf("change tokens = %d, want 4990", got)
	}
	if err := sent.VerifySignatures(); err != nil {
		t.Errorf("VerifySignatures: %v", err)
	}
}

func TestSendToken_NotHeld(t *testing.T) {
	b, idx, chain := transferFixture(t, walletUTXO(1, 100_000_000))
	idx.addAsset(tokenB, 0)

	res := b.SendToken(context.Background(), string(tokenB), testRecipient, "10")
	requireFailed(t, res, ErrInsufficientFunds)
	if len(chain.submitted) != 0 {
		t.Error("failed transfer was submitted")
	}
}

func TestSendToken_UnknownAsset(t *testing.T) {
	b, _, _ := transferFixture(t, walletUTXO(1, 100_000_000))

	res := b.SendToken(context.Background(), string(tokenA), testRecipient, "1")
	requireFailed(t, res, errAssetNotFound)
}

func TestSendToken_BadUnit(t *testing.T) {
	b, _, _ := transferFixture(t, walletUTXO(1, 100_000_000))

	res := b.SendToken(context.Background(), "xyz", testRecipient, "1")
	requireFailed(t, res, nil)
}

func TestSendToken_LovelaceRoutesToCoin(t *testing.T) {
	b, _, chain := transferFixture(t, walletUTXO(1, 20_000_000))

	res := b.SendToken(context.Background(), "LOVELACE", testRecipient, "2")
	if !res.Success {
		t.Fatalf("SendToken(lovelace) failed: %s", res.Description)
	}
	sent, err := chain.lastSubmitted()
	if err != nil {
		t.Fatal(err)
	}
	if sent.Outputs[0].Value.Coin != 2_000_000 || sent.Outputs[0].Value.HasAssets() {
		t.Errorf("payment = %+v, want 2 ADA", sent.Outputs[0].Value)
	}
}
