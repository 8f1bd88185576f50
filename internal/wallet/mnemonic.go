// Package wallet implements the Cardano light wallet: key derivation, coin
// selection, balance reads and transfers.
package wallet

import (
	"crypto/sha256"
	"fmt"
	"strings"

	"github.com/tyler-smith/go-bip39"
)

// MnemonicEntropyBits is the entropy size for 24-word mnemonics.
const MnemonicEntropyBits = 256

// GenerateMnemonic creates a new 24-word BIP-39 mnemonic.
func GenerateMnemonic() (string, error) {
	entropy, err := bip39.NewEntropy(MnemonicEntropyBits)
	if err != nil {
		return "", fmt.Errorf("generate entropy: %w", err)
	}
	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", fmt.Errorf("generate mnemonic: %w", err)
	}
	return mnemonic, nil
}

// ValidateMnemonic checks if a mnemonic is valid per BIP-39
// (correct word count, valid words, valid checksum).
func ValidateMnemonic(mnemonic string) bool {
	return bip39.IsMnemonicValid(normalizeMnemonic(mnemonic))
}

// MnemonicFromPassword deterministically maps a password to a 24-word
// mnemonic: the entropy is SHA-256 of template followed by password.
func MnemonicFromPassword(template, password string) (string, error) {
	entropy := sha256.Sum256([]byte(template + password))
	mnemonic, err := bip39.NewMnemonic(entropy[:])
	if err != nil {
		return "", fmt.Errorf("password mnemonic: %w", err)
	}
	return mnemonic, nil
}

// EntropyFromMnemonic validates mnemonic and returns its entropy bytes.
func EntropyFromMnemonic(mnemonic string) ([]byte, error) {
	entropy, err := bip39.EntropyFromMnemonic(normalizeMnemonic(mnemonic))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedKeyMaterial, err)
	}
	return entropy, nil
}

// normalizeMnemonic lower-cases and collapses whitespace.
func normalizeMnemonic(mnemonic string) string {
	return strings.Join(strings.Fields(strings.ToLower(mnemonic)), " ")
}
