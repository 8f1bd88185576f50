// Package crypto provides the hashing and signing primitives used by Cardano
// transactions and addresses.
package crypto

import (
	"github.com/Klingon-tech/adawallet/pkg/types"
	"golang.org/x/crypto/blake2b"
)

// Hash computes a BLAKE2b-256 hash of the input data. Transaction ids are
// the Hash of the serialized transaction body.
func Hash(data []byte) types.Hash {
	return blake2b.Sum256(data)
}

// KeyHash computes a BLAKE2b-224 hash, used for verification key and policy
// hashes inside addresses.
func KeyHash(data []byte) types.KeyHash {
	h, err := blake2b.New(types.KeyHashSize, nil)
	if err != nil {
		// Only fails for invalid sizes or keys.
		panic(err)
	}
	h.Write(data)
	var out types.KeyHash
	copy(out[:], h.Sum(nil))
	return out
}
