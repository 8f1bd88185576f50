package tx

import (
	"encoding/hex"
	"testing"

	"github.com/Klingon-tech/adawallet/pkg/address"
	"github.com/Klingon-tech/adawallet/pkg/crypto"
	"github.com/Klingon-tech/adawallet/pkg/types"
)

const (
	testPaymentKey = "607b34b394533c711856910cda4a1696bd59aa8fbdc3b52c4559dd292aee6a54" +
		"bfded2a15d1fc3a432f16e93a301848bcb48ebe04cfdace05e585b4fe30a59b8"
	testOwnAddress  = "addr_test1vp56y7ejmwfjqu9k5pgcwpp855rc5zx3ytkf3w83u6w2dyqrdr5da"
	testRecipient   = "addr_test1qp56y7ejmwfjqu9k5pgcwpp855rc5zx3ytkf3w83u6w2dyyf480xvenplvfftvdm3enxgyfzeqz9z50j8kfracd8tlksx7fcy6"
	testTokenPolicy = "4a8e1f2b3c4d5e6f708192a3b4c5d6e7f8091a2b3c4d5e6f70819203"
)

func testSigner(t *testing.T) *crypto.ExtendedPrivateKey {
	t.Helper()
	b, err := hex.DecodeString(testPaymentKey)
	if err != nil {
		t.Fatalf("decode key: %v", err)
	}
	key, err := crypto.ExtendedKeyFromBytes(b)
	if err != nil {
		t.Fatalf("ExtendedKeyFromBytes: %v", err)
	}
	return key
}

func mustAddr(t *testing.T, s string) address.Address {
	t.Helper()
	a, err := address.Parse(s)
	if err != nil {
		t.Fatalf("Parse(%s): %v", s, err)
	}
	return a
}

func testUTXO(seed byte, index uint32, coin uint64, assets map[types.Unit]uint64) types.UTXO {
	var h types.Hash
	h[0] = seed
	h[31] = seed
	return types.UTXO{
		Outpoint: types.Outpoint{TxID: h, Index: index},
		Address:  testOwnAddress,
		Value:    types.Value{Coin: coin, Assets: assets},
	}
}

func testToken() types.Unit {
	return types.Unit(testTokenPolicy + hex.EncodeToString([]byte("TOK")))
}
