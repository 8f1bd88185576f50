// Package address encodes and decodes Shelley-era Cardano payment addresses.
package address

import (
	"errors"
	"fmt"

	"github.com/Klingon-tech/adawallet/pkg/crypto"
	"github.com/Klingon-tech/adawallet/pkg/types"
	"github.com/btcsuite/btcd/btcutil/bech32"
)

// Header types (high nibble of the first address byte).
const (
	TypeBase       byte = 0x0
	TypePointer    byte = 0x4
	TypeEnterprise byte = 0x6
)

// HRPs for payment addresses.
const (
	MainnetHRP = "addr"
	TestnetHRP = "addr_test"
)

var (
	ErrInvalidAddress = errors.New("invalid address")
	ErrWrongNetwork   = errors.New("address network mismatch")
)

// Address is a decoded Shelley payment address.
type Address struct {
	raw []byte
}

// NewEnterprise builds an enterprise address (payment key only) for the
// given payment verification key.
func NewEnterprise(net types.Network, paymentPub []byte) Address {
	h := crypto.KeyHash(paymentPub)
	raw := make([]byte, 0, 1+types.KeyHashSize)
	raw = append(raw, TypeEnterprise<<4|net.ID&0x0f)
	raw = append(raw, h[:]...)
	return Address{raw: raw}
}

// NewBase builds a base address from payment and stake verification keys.
func NewBase(net types.Network, paymentPub, stakePub []byte) Address {
	ph := crypto.KeyHash(paymentPub)
	sh := crypto.KeyHash(stakePub)
	raw := make([]byte, 0, 1+2*types.KeyHashSize)
	raw = append(raw, TypeBase<<4|net.ID&0x0f)
	raw = append(raw, ph[:]...)
	raw = append(raw, sh[:]...)
	return Address{raw: raw}
}

// FromBytes validates a raw address.
func FromBytes(b []byte) (Address, error) {
	if len(b) < 1+types.KeyHashSize {
		return Address{}, fmt.Errorf("%w: %d bytes", ErrInvalidAddress, len(b))
	}
	typ := b[0] >> 4
	switch {
	case typ <= 0x3:
		if len(b) != 1+2*types.KeyHashSize {
			return Address{}, fmt.Errorf("%w: base address has %d bytes", ErrInvalidAddress, len(b))
		}
	case typ == TypePointer || typ == TypePointer+1:
		// Pointer addresses carry a variable-length certificate pointer.
	case typ == TypeEnterprise || typ == TypeEnterprise+1:
		if len(b) != 1+types.KeyHashSize {
			return Address{}, fmt.Errorf("%w: enterprise address has %d bytes", ErrInvalidAddress, len(b))
		}
	default:
		return Address{}, fmt.Errorf("%w: unsupported header type %d", ErrInvalidAddress, typ)
	}
	raw := make([]byte, len(b))
	copy(raw, b)
	return Address{raw: raw}, nil
}

// Parse decodes a bech32 payment address ("addr1..." or "addr_test1...").
func Parse(s string) (Address, error) {
	hrp, data, err := bech32.DecodeNoLimit(s)
	if err != nil {
		return Address{}, fmt.Errorf("%w: %v", ErrInvalidAddress, err)
	}
	raw, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return Address{}, fmt.Errorf("%w: %v", ErrInvalidAddress, err)
	}
	addr, err := FromBytes(raw)
	if err != nil {
		return Address{}, err
	}
	if want := hrpFor(addr.NetworkID()); hrp != want {
		return Address{}, fmt.Errorf("%w: prefix %q, want %q", ErrInvalidAddress, hrp, want)
	}
	return addr, nil
}

// ParseForNetwork decodes s and checks it belongs to net.
func ParseForNetwork(s string, net types.Network) (Address, error) {
	addr, err := Parse(s)
	if err != nil {
		return Address{}, err
	}
	if addr.NetworkID() != net.ID {
		return Address{}, fmt.Errorf("%w: address is for network %d, wallet is on %s", ErrWrongNetwork, addr.NetworkID(), net)
	}
	return addr, nil
}

// NetworkID returns the network id from the header byte.
func (a Address) NetworkID() byte {
	if len(a.raw) == 0 {
		return 0
	}
	return a.raw[0] & 0x0f
}

// Type returns the header type nibble.
func (a Address) Type() byte {
	if len(a.raw) == 0 {
		return 0
	}
	return a.raw[0] >> 4
}

// PaymentHash returns the payment credential hash.
func (a Address) PaymentHash() types.KeyHash {
	var h types.KeyHash
	if len(a.raw) >= 1+types.KeyHashSize {
		copy(h[:], a.raw[1:1+types.KeyHashSize])
	}
	return h
}

// IsZero reports whether a holds no address.
func (a Address) IsZero() bool {
	return len(a.raw) == 0
}

// Bytes returns a copy of the raw address.
func (a Address) Bytes() []byte {
	b := make([]byte, len(a.raw))
	copy(b, a.raw)
	return b
}

// String returns the bech32 encoding.
func (a Address) String() string {
	if a.IsZero() {
		return ""
	}
	conv, err := bech32.ConvertBits(a.raw, 8, 5, true)
	if err != nil {
		return ""
	}
	s, err := bech32.Encode(hrpFor(a.NetworkID()), conv)
	if err != nil {
		return ""
	}
	return s
}

// MarshalText implements encoding.TextMarshaler.
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Address) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

func hrpFor(networkID byte) string {
	if networkID == types.Mainnet.ID {
		return MainnetHRP
	}
	return TestnetHRP
}
