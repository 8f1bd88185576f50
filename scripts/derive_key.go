// derive_key.go prints the addresses and payment pubkey for a root key or
// recovery phrase file.
// Usage: go run scripts/derive_key.go <keyfile> [network]
package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/Klingon-tech/adawallet/internal/wallet"
	"github.com/Klingon-tech/adawallet/pkg/types"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: derive_key <keyfile> [mainnet|preprod|preview]")
		os.Exit(1)
	}
	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	network := types.Preprod
	if len(os.Args) > 2 {
		if network, err = types.NetworkByName(os.Args[2]); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	material := strings.TrimSpace(string(data))
	secret := wallet.Mnemonic(material)
	if strings.HasPrefix(material, wallet.XPrvHRP+"1") || strings.HasPrefix(material, wallet.RootXskHRP+"1") {
		secret = wallet.RawKey(material)
	}
	id, err := wallet.Derive(secret, wallet.DefaultTemplate, network)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Printf("pubkey=%s\n", hex.EncodeToString(id.PaymentPublicKey()))
	fmt.Printf("address=%s\n", id.Address())
	fmt.Printf("base_address=%s\n", id.BaseAddress())
}
