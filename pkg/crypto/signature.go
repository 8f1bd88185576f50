package crypto

import (
	"crypto/ed25519"
	"crypto/sha512"
	"fmt"

	"filippo.io/edwards25519"
)

// ExtendedKeySize is the length of an extended Ed25519 secret (kL || kR).
const ExtendedKeySize = 64

// Signer signs messages with an Ed25519 key.
type Signer interface {
	// Sign produces a 64-byte Ed25519 signature over msg.
	Sign(msg []byte) ([]byte, error)
	// PublicKey returns the 32-byte public key.
	PublicKey() []byte
}

// ExtendedPrivateKey is a BIP32-Ed25519 extended secret. kL is used directly
// as the signing scalar (it is already clamped), kR seeds the nonce.
type ExtendedPrivateKey struct {
	kL [32]byte
	kR [32]byte
}

// ExtendedKeyFromBytes creates a key from the 64-byte kL || kR secret.
func ExtendedKeyFromBytes(b []byte) (*ExtendedPrivateKey, error) {
	if len(b) != ExtendedKeySize {
		return nil, fmt.Errorf("extended key must be %d bytes, got %d", ExtendedKeySize, len(b))
	}
	var k ExtendedPrivateKey
	copy(k.kL[:], b[:32])
	copy(k.kR[:], b[32:])
	return &k, nil
}

// scalar reduces kL modulo the group order.
func (k *ExtendedPrivateKey) scalar() *edwards25519.Scalar {
	var wide [64]byte
	copy(wide[:32], k.kL[:])
	s, err := edwards25519.NewScalar().SetUniformBytes(wide[:])
	if err != nil {
		panic(err)
	}
	return s
}

// PublicKey returns the 32-byte public key kL*B.
func (k *ExtendedPrivateKey) PublicKey() []byte {
	return PublicKeyFromScalar(k.kL[:])
}

// Sign produces an Ed25519 signature over msg that verifies with the
// standard verifier against PublicKey().
func (k *ExtendedPrivateKey) Sign(msg []byte) ([]byte, error) {
	pub := k.PublicKey()

	h := sha512.New()
	h.Write(k.kR[:])
	h.Write(msg)
	r, err := edwards25519.NewScalar().SetUniformBytes(h.Sum(nil))
	if err != nil {
		return nil, fmt.Errorf("nonce: %w", err)
	}
	R := edwards25519.NewIdentityPoint().ScalarBaseMult(r).Bytes()

	h.Reset()
	h.Write(R)
	h.Write(pub)
	h.Write(msg)
	c, err := edwards25519.NewScalar().SetUniformBytes(h.Sum(nil))
	if err != nil {
		return nil, fmt.Errorf("challenge: %w", err)
	}

	S := edwards25519.NewScalar().MultiplyAdd(c, k.scalar(), r)

	sig := make([]byte, 0, ed25519.SignatureSize)
	sig = append(sig, R...)
	sig = append(sig, S.Bytes()...)
	return sig, nil
}

// Bytes returns a copy of the 64-byte kL || kR secret.
func (k *ExtendedPrivateKey) Bytes() []byte {
	out := make([]byte, 0, ExtendedKeySize)
	out = append(out, k.kL[:]...)
	return append(out, k.kR[:]...)
}

// Zero clears the key material.
func (k *ExtendedPrivateKey) Zero() {
	for i := range k.kL {
		k.kL[i] = 0
		k.kR[i] = 0
	}
}

// PublicKeyFromScalar computes the point kL*B for a 32-byte little-endian
// scalar, reducing it modulo the group order first.
func PublicKeyFromScalar(kL []byte) []byte {
	var wide [64]byte
	copy(wide[:32], kL)
	s, err := edwards25519.NewScalar().SetUniformBytes(wide[:])
	if err != nil {
		panic(err)
	}
	return edwards25519.NewIdentityPoint().ScalarBaseMult(s).Bytes()
}

// VerifySignature checks an Ed25519 signature. Returns false on malformed
// input.
func VerifySignature(msg, signature, publicKey []byte) bool {
	if len(publicKey) != ed25519.PublicKeySize || len(signature) != ed25519.SignatureSize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(publicKey), msg, signature)
}
