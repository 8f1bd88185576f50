package wallet

import (
	"crypto/sha512"

	"golang.org/x/crypto/pbkdf2"
)

// RootKeySize is the length of an extended root key: kL || kR || chain code.
const RootKeySize = 96

// icarusIterations is the PBKDF2 round count of the Icarus master key scheme.
const icarusIterations = 4096

// RootKeyFromEntropy derives the Icarus master key from BIP-39 entropy
// (not from the BIP-39 seed). The result is clamped for Ed25519.
func RootKeyFromEntropy(entropy []byte) []byte {
	key := pbkdf2.Key(nil, entropy, icarusIterations, RootKeySize, sha512.New)
	key[0] &= 0xf8
	key[31] &= 0x1f
	key[31] |= 0x40
	return key
}

// RootKeyFromMnemonic validates mnemonic and derives its root key.
func RootKeyFromMnemonic(mnemonic string) ([]byte, error) {
	entropy, err := EntropyFromMnemonic(mnemonic)
	if err != nil {
		return nil, err
	}
	return RootKeyFromEntropy(entropy), nil
}
