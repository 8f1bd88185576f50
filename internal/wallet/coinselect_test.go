package wallet

import (
	"errors"
	"testing"

	"github.com/Klingon-tech/adawallet/pkg/types"
)

const testPolicy = "4a8e1f2b3c4d5e6f708192a3b4c5d6e7f8091a2b3c4d5e6f70819203"

var (
	tokenA = types.Unit(testPolicy + "41")
	tokenB = types.Unit(testPolicy + "42")
)

func makeUTXOs(values ...uint64) []types.UTXO {
	utxos := make([]types.UTXO, len(values))
	for i, v := range values {
		utxos[i] = types.UTXO{
			Outpoint: types.Outpoint{TxID: types.Hash{byte(i + 1)}, Index: 0},
			Value:    types.NewCoinValue(v),
		}
	}
	return utxos
}

func tokenUTXO(id byte, coin uint64, unit types.Unit, qty uint64) types.UTXO {
	return types.UTXO{
		Outpoint: types.Outpoint{TxID: types.Hash{0xf0, id}, Index: 1},
		Value:    types.Value{Coin: coin, Assets: map[types.Unit]uint64{unit: qty}},
	}
}

func TestLargestFirst_SingleUTXO(t *testing.T) {
	sel, err := LargestFirst(makeUTXOs(1000, 5000, 3000), 4000)
	if err != nil {
		t.Fatalf("LargestFirst: %v", err)
	}
	if len(sel.Inputs) != 1 || sel.Total.Coin != 5000 {
		t.Errorf("inputs = %d, total = %d; want the single 5000 UTXO", len(sel.Inputs), sel.Total.Coin)
	}
}

func TestLargestFirst_Accumulates(t *testing.T) {
	sel, err := LargestFirst(makeUTXOs(1000, 2000, 1500), 3200)
	if err != nil {
		t.Fatalf("LargestFirst: %v", err)
	}
	if sel.Total.Coin != 3500 {
		t.Errorf("total = %d, want 3500", sel.Total.Coin)
	}
	if len(sel.Inputs) != 2 {
		t.Errorf("inputs = %d, want 2", len(sel.Inputs))
	}
	if sel.Inputs[0].Value.Coin != 2000 || sel.Inputs[1].Value.Coin != 1500 {
		t.Error("inputs should be taken largest first")
	}
}

func TestLargestFirst_SkipsTokenUTXOs(t *testing.T) {
	utxos := append(makeUTXOs(1000), tokenUTXO(1, 50_000_000, tokenA, 5))
	_, err := LargestFirst(utxos, 2000)
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Errorf("err = %v, want ErrInsufficientFunds", err)
	}
}

func TestLargestFirst_Insufficient(t *testing.T) {
	_, err := LargestFirst(makeUTXOs(100, 200), 1000)
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Errorf("err = %v, want ErrInsufficientFunds", err)
	}
}

func TestLargestFirst_Errors(t *testing.T) {
	if _, err := LargestFirst(nil, 1000); !errors.Is(err, ErrNoUTXOs) {
		t.Errorf("empty: err = %v, want ErrNoUTXOs", err)
	}
	if _, err := LargestFirst(makeUTXOs(1000), 0); err == nil {
		t.Error("zero target should fail")
	}
}

func TestLargestFirst_Deterministic(t *testing.T) {
	utxos := makeUTXOs(500, 500, 500, 500)
	first, err := LargestFirst(utxos, 1000)
	if err != nil {
		t.Fatalf("LargestFirst: %v", err)
	}
	reversed := []types.UTXO{utxos[3], utxos[2], utxos[1], utxos[0]}
	second, err := LargestFirst(reversed, 1000)
	if err != nil {
		t.Fatalf("LargestFirst: %v", err)
	}
	for i := range first.Inputs {
		if first.Inputs[i].Outpoint != second.Inputs[i].Outpoint {
			t.Fatal("selection should not depend on input order")
		}
	}
}

func TestLargestFirst_Sufficiency(t *testing.T) {
	utxos := makeUTXOs(7, 13, 29, 31, 101, 1, 1000)
	for target := uint64(1); target <= 1182; target += 37 {
		sel, err := LargestFirst(utxos, target)
		if err != nil {
			t.Fatalf("target %d: %v", target, err)
		}
		if sel.Total.Coin < target {
			t.Fatalf("target %d: total %d below target", target, sel.Total.Coin)
		}
		seen := make(map[types.Outpoint]bool)
		for _, in := range sel.Inputs {
			if seen[in.Outpoint] {
				t.Fatalf("target %d: input %s selected twice", target, in.Outpoint)
			}
			seen[in.Outpoint] = true
		}
	}
}

func TestKeepRelevant_PicksTokenHolders(t *testing.T) {
	utxos := []types.UTXO{
		makeUTXOs(20_000_000)[0],
		tokenUTXO(1, 1_500_000, tokenA, 3),
		tokenUTXO(2, 1_500_000, tokenA, 8),
		tokenUTXO(3, 1_500_000, tokenB, 100),
	}
	required := types.Value{Assets: map[types.Unit]uint64{tokenA: 10}}

	sel, err := KeepRelevant(utxos, required, DefaultMinLovelace)
	if err != nil {
		t.Fatalf("KeepRelevant: %v", err)
	}
	if sel.Total.Quantity(tokenA) < 10 {
		t.Errorf("token total = %d, want >= 10", sel.Total.Quantity(tokenA))
	}
	if sel.Total.Coin < DefaultMinLovelace {
		t.Errorf("coin total = %d, want >= %d", sel.Total.Coin, DefaultMinLovelace)
	}
	if sel.Total.Quantity(tokenB) != 0 {
		t.Error("unrelated token holder should not be selected")
	}
	if sel.Inputs[0].Value.Quantity(tokenA) != 8 {
		t.Error("largest token holder should be selected first")
	}
	if len(sel.Inputs) != 3 {
		t.Errorf("inputs = %d, want 2 token holders plus 1 coin UTXO", len(sel.Inputs))
	}
}

func TestKeepRelevant_PrefersCoinOnlyForLovelace(t *testing.T) {
	utxos := []types.UTXO{
		tokenUTXO(1, 2_000_000, tokenA, 10),
		tokenUTXO(2, 90_000_000, tokenB, 1),
		makeUTXOs(6_000_000)[0],
	}
	required := types.Value{Assets: map[types.Unit]uint64{tokenA: 10}}

	sel, err := KeepRelevant(utxos, required, DefaultMinLovelace)
	if err != nil {
		t.Fatalf("KeepRelevant: %v", err)
	}
	if sel.Total.Quantity(tokenB) != 0 {
		t.Error("coin-only UTXO should be used before a token-carrying one")
	}
}

func TestKeepRelevant_MissingToken(t *testing.T) {
	utxos := makeUTXOs(100_000_000, 50_000_000)
	required := types.Value{Assets: map[types.Unit]uint64{tokenA: 10}}

	_, err := KeepRelevant(utxos, required, DefaultMinLovelace)
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Errorf("err = %v, want ErrInsufficientFunds", err)
	}
}

func TestKeepRelevant_NotEnoughLovelace(t *testing.T) {
	utxos := []types.UTXO{tokenUTXO(1, 1_500_000, tokenA, 10), makeUTXOs(1_000_000)[0]}
	required := types.Value{Assets: map[types.Unit]uint64{tokenA: 10}}

	_, err := KeepRelevant(utxos, required, DefaultMinLovelace)
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Errorf("err = %v, want ErrInsufficientFunds", err)
	}
}

func TestKeepRelevant_Empty(t *testing.T) {
	if _, err := KeepRelevant(nil, types.NewCoinValue(1), 0); !errors.Is(err, ErrNoUTXOs) {
		t.Errorf("err = %v, want ErrNoUTXOs", err)
	}
}
