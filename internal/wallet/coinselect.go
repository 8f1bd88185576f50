package wallet

import (
	"fmt"
	"sort"

	"github.com/Klingon-tech/adawallet/pkg/types"
)

// DefaultMinLovelace is the lovelace KeepRelevant gathers beyond the
// requested coin, covering the token output's minimum, change and fee.
const DefaultMinLovelace = 5_000_000

// CoinSelection holds the result of coin selection.
type CoinSelection struct {
	Inputs []types.UTXO // Selected UTXOs to spend.
	Total  types.Value  // Sum of selected input values.
}

func (s *CoinSelection) add(u types.UTXO) error {
	total, err := s.Total.Add(u.Value)
	if err != nil {
		return err
	}
	s.Inputs = append(s.Inputs, u)
	s.Total = total
	return nil
}

// sortByQuantity orders utxos by their amount of unit, largest first, with
// ties broken by outpoint so selection is deterministic.
func sortByQuantity(utxos []types.UTXO, unit types.Unit) {
	sort.SliceStable(utxos, func(i, j int) bool {
		qi, qj := utxos[i].Value.Quantity(unit), utxos[j].Value.Quantity(unit)
		if qi != qj {
			return qi > qj
		}
		return utxos[i].Outpoint.Less(utxos[j].Outpoint)
	})
}

// LargestFirst selects coin-only UTXOs in descending lovelace order until
// their sum reaches target. UTXOs holding tokens are left alone.
func LargestFirst(utxos []types.UTXO, target uint64) (*CoinSelection, error) {
	if len(utxos) == 0 {
		return nil, ErrNoUTXOs
	}
	if target == 0 {
		return nil, fmt.Errorf("target must be positive")
	}

	candidates := make([]types.UTXO, 0, len(utxos))
	var available uint64
	for _, u := range utxos {
		if u.IsCoinOnly() && u.Value.Coin > 0 {
			candidates = append(candidates, u)
			available += u.Value.Coin
		}
	}
	sortByQuantity(candidates, types.Lovelace)

	sel := &CoinSelection{}
	for _, u := range candidates {
		if err := sel.add(u); err != nil {
			return nil, err
		}
		if sel.Total.Coin >= target {
			return sel, nil
		}
	}
	return nil, fmt.Errorf("%w: have %d lovelace, need %d", ErrInsufficientFunds, available, target)
}

// KeepRelevant selects inputs for a payment of required. Token holders are
// chosen first, largest holding first, until every token in required is
// covered; lovelace is then topped up to required.Coin + minLovelace,
// preferring coin-only UTXOs.
func KeepRelevant(utxos []types.UTXO, required types.Value, minLovelace uint64) (*CoinSelection, error) {
	if len(utxos) == 0 {
		return nil, ErrNoUTXOs
	}

	pool := make([]types.UTXO, len(utxos))
	copy(pool, utxos)
	used := make(map[types.Outpoint]bool, len(pool))
	sel := &CoinSelection{}

	for _, unit := range required.Units() {
		need := required.Assets[unit]
		sortByQuantity(pool, unit)
		for _, u := range pool {
			if sel.Total.Quantity(unit) >= need {
				break
			}
			if used[u.Outpoint] || u.Value.Quantity(unit) == 0 {
				continue
			}
			if err := sel.add(u); err != nil {
				return nil, err
			}
			used[u.Outpoint] = true
		}
		if have := sel.Total.Quantity(unit); have < need {
			return nil, fmt.Errorf("%w: have %d of %s, need %d", ErrInsufficientFunds, have, unit, need)
		}
	}

	target := required.Coin + minLovelace
	if sel.Total.Coin >= target {
		return sel, nil
	}

	// Coin-only UTXOs first, then the rest, each largest first.
	var coinOnly, mixed []types.UTXO
	for _, u := range pool {
		if used[u.Outpoint] {
			continue
		}
		if u.IsCoinOnly() {
			coinOnly = append(coinOnly, u)
		} else {
			mixed = append(mixed, u)
		}
	}
	sortByQuantity(coinOnly, types.Lovelace)
	sortByQuantity(mixed, types.Lovelace)

	for _, u := range append(coinOnly, mixed...) {
		if err := sel.add(u); err != nil {
			return nil, err
		}
		if sel.Total.Coin >= target {
			return sel, nil
		}
	}
	return nil, fmt.Errorf("%w: have %d lovelace, need %d", ErrInsufficientFunds, sel.Total.Coin, target)
}
