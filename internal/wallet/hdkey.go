package wallet

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/binary"
	"fmt"

	"github.com/Klingon-tech/adawallet/pkg/crypto"
	"github.com/btcsuite/btcd/btcutil/bech32"
)

// HardenedOffset marks a hardened child index.
const HardenedOffset uint32 = 0x80000000

// CIP-1852 derivation path constants.
// Full path: m/1852'/1815'/account'/role/index
const (
	// PurposeCIP1852 is the Shelley purpose field (hardened).
	PurposeCIP1852 = HardenedOffset + 1852

	// CoinTypeCardano is the registered SLIP-44 coin type (hardened).
	CoinTypeCardano = HardenedOffset + 1815

	// RoleExternal is for receiving addresses.
	RoleExternal = 0

	// RoleInternal is for change addresses.
	RoleInternal = 1

	// RoleStaking is for the reward (stake) key.
	RoleStaking = 2
)

// Bech32 prefixes accepted for an extended root key.
const (
	XPrvHRP    = "xprv"
	RootXskHRP = "root_xsk"
)

// HDKey is a BIP32-Ed25519 extended private key (Icarus / V2 derivation).
type HDKey struct {
	kL    [32]byte
	kR    [32]byte
	chain [32]byte
	depth uint8
}

// NewMasterKey creates a master HD key from a 96-byte root key.
func NewMasterKey(root []byte) (*HDKey, error) {
	if len(root) != RootKeySize {
		return nil, fmt.Errorf("root key must be %d bytes, got %d", RootKeySize, len(root))
	}
	var k HDKey
	copy(k.kL[:], root[:32])
	copy(k.kR[:], root[32:64])
	copy(k.chain[:], root[64:])
	return &k, nil
}

// ParseXPrv decodes a bech32 "xprv" or "root_xsk" root key.
func ParseXPrv(s string) (*HDKey, error) {
	hrp, data, err := bech32.DecodeNoLimit(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedKeyMaterial, err)
	}
	if hrp != XPrvHRP && hrp != RootXskHRP {
		return nil, fmt.Errorf("%w: unexpected prefix %q", ErrMalformedKeyMaterial, hrp)
	}
	raw, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedKeyMaterial, err)
	}
	if len(raw) != RootKeySize {
		return nil, fmt.Errorf("%w: root key has %d bytes, want %d", ErrMalformedKeyMaterial, len(raw), RootKeySize)
	}
	return NewMasterKey(raw)
}

// DeriveChild derives a child key at the given index.
// For hardened derivation, add HardenedOffset to the index.
func (k *HDKey) DeriveChild(index uint32) (*HDKey, error) {
	var seri [4]byte
	binary.LittleEndian.PutUint32(seri[:], index)

	zMac := hmac.New(sha512.New, k.chain[:])
	cMac := hmac.New(sha512.New, k.chain[:])
	if index >= HardenedOffset {
		zMac.Write([]byte{0x00})
		zMac.Write(k.kL[:])
		zMac.Write(k.kR[:])
		cMac.Write([]byte{0x01})
		cMac.Write(k.kL[:])
		cMac.Write(k.kR[:])
	} else {
		pub := k.PublicKeyBytes()
		zMac.Write([]byte{0x02})
		zMac.Write(pub)
		cMac.Write([]byte{0x03})
		cMac.Write(pub)
	}
	zMac.Write(seri[:])
	cMac.Write(seri[:])
	z := zMac.Sum(nil)
	c := cMac.Sum(nil)

	if k.depth == 255 {
		return nil, fmt.Errorf("derive child %d: maximum depth reached", index)
	}
	child := &HDKey{depth: k.depth + 1}

	// kL' = kL + 8*ZL[0:28], kR' = kR + ZR, both little-endian mod 2^256.
	var carry uint16
	for i := 0; i < 32; i++ {
		var zl uint16
		if i < 28 {
			zl = uint16(z[i])
		}
		carry += uint16(k.kL[i]) + zl<<3
		child.kL[i] = byte(carry)
		carry >>= 8
	}
	carry = 0
	for i := 0; i < 32; i++ {
		carry += uint16(k.kR[i]) + uint16(z[32+i])
		child.kR[i] = byte(carry)
		carry >>= 8
	}
	copy(child.chain[:], c[32:])
	return child, nil
}

// DerivePath derives a key along a sequence of indices.
func (k *HDKey) DerivePath(indices ...uint32) (*HDKey, error) {
	current := k
	for _, idx := range indices {
		child, err := current.DeriveChild(idx)
		if err != nil {
			return nil, err
		}
		current = child
	}
	return current, nil
}

// DeriveAddress derives the key at m/1852'/1815'/account'/role/index.
func (k *HDKey) DeriveAddress(account, role, index uint32) (*HDKey, error) {
	return k.DerivePath(
		PurposeCIP1852,
		CoinTypeCardano,
		HardenedOffset+account,
		role,
		index,
	)
}

// PublicKeyBytes returns the 32-byte Ed25519 public key.
func (k *HDKey) PublicKeyBytes() []byte {
	return crypto.PublicKeyFromScalar(k.kL[:])
}

// ChainCode returns a copy of the chain code.
func (k *HDKey) ChainCode() []byte {
	out := make([]byte, 32)
	copy(out, k.chain[:])
	return out
}

// Signer returns an extended-key signer for this key.
func (k *HDKey) Signer() (*crypto.ExtendedPrivateKey, error) {
	var secret [crypto.ExtendedKeySize]byte
	copy(secret[:32], k.kL[:])
	copy(secret[32:], k.kR[:])
	return crypto.ExtendedKeyFromBytes(secret[:])
}

// Bytes returns the 96-byte kL || kR || chain code encoding.
func (k *HDKey) Bytes() []byte {
	out := make([]byte, 0, RootKeySize)
	out = append(out, k.kL[:]...)
	out = append(out, k.kR[:]...)
	return append(out, k.chain[:]...)
}

// XPrv returns the bech32 "xprv" encoding of the key.
func (k *HDKey) XPrv() (string, error) {
	conv, err := bech32.ConvertBits(k.Bytes(), 8, 5, true)
	if err != nil {
		return "", fmt.Errorf("convert bits: %w", err)
	}
	return bech32.Encode(XPrvHRP, conv)
}

// Depth returns the derivation depth (0 for master).
func (k *HDKey) Depth() uint8 {
	return k.depth
}
