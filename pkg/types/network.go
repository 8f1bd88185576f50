package types

import (
	"fmt"
	"strings"
)

// Network identifies a Cardano network and its address encoding.
type Network struct {
	Name string `json:"name"`
	// ID is the network id carried in the low nibble of an address header.
	ID byte `json:"id"`
	// HRP is the bech32 prefix of payment addresses.
	HRP string `json:"hrp"`
}

// Known networks.
var (
	Mainnet = Network{Name: "mainnet", ID: 1, HRP: "addr"}
	Preprod = Network{Name: "preprod", ID: 0, HRP: "addr_test"}
	Preview = Network{Name: "preview", ID: 0, HRP: "addr_test"}
)

// IsMainnet reports whether n is the production network.
func (n Network) IsMainnet() bool {
	return n.ID == Mainnet.ID
}

// String returns the network name.
func (n Network) String() string {
	return n.Name
}

// NetworkByName looks up a known network by name.
func NetworkByName(name string) (Network, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case Mainnet.Name:
		return Mainnet, nil
	case Preprod.Name:
		return Preprod, nil
	case Preview.Name:
		return Preview, nil
	default:
		return Network{}, fmt.Errorf("unknown network %q", name)
	}
}

// NetworkFromAPIKey infers the network from an indexer project key, whose
// first seven characters name the network ("mainnet", "preprod", "preview").
// Unrecognized keys resolve to Preprod.
func NetworkFromAPIKey(key string) Network {
	prefix := key
	if len(prefix) > 7 {
		prefix = prefix[:7]
	}
	if n, err := NetworkByName(prefix); err == nil {
		return n
	}
	return Preprod
}
