package wallet

import (
	"fmt"

	"github.com/Klingon-tech/adawallet/pkg/address"
	"github.com/Klingon-tech/adawallet/pkg/crypto"
	"github.com/Klingon-tech/adawallet/pkg/types"
)

// Identity is the key material and addresses derived from a Secret.
// Identical secret, template and network always give identical identities.
type Identity struct {
	mnemonic    string
	hasMnemonic bool
	root        *HDKey
	payment     *HDKey
	stake       *HDKey
	network     types.Network
	enterprise  address.Address
	base        address.Address
}

// Derive builds the identity for secret on network.
func Derive(secret Secret, template string, network types.Network) (*Identity, error) {
	id := &Identity{network: network}

	switch secret.kind {
	case SecretRandom:
		m, err := GenerateMnemonic()
		if err != nil {
			return nil, err
		}
		id.mnemonic, id.hasMnemonic = m, true
	case SecretPassword:
		m, err := MnemonicFromPassword(template, secret.value)
		if err != nil {
			return nil, err
		}
		id.mnemonic, id.hasMnemonic = m, true
	case SecretMnemonic:
		m := normalizeMnemonic(secret.value)
		if !ValidateMnemonic(m) {
			return nil, fmt.Errorf("%w: invalid mnemonic", ErrMalformedKeyMaterial)
		}
		id.mnemonic, id.hasMnemonic = m, true
	case SecretRawKey:
		root, err := ParseXPrv(secret.value)
		if err != nil {
			return nil, err
		}
		id.root = root
	default:
		return nil, fmt.Errorf("%w: unknown secret kind %d", ErrMalformedKeyMaterial, secret.kind)
	}

	if id.root == nil {
		rootBytes, err := RootKeyFromMnemonic(id.mnemonic)
		if err != nil {
			return nil, err
		}
		root, err := NewMasterKey(rootBytes)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedKeyMaterial, err)
		}
		id.root = root
	}

	var err error
	if id.payment, err = id.root.DeriveAddress(0, RoleExternal, 0); err != nil {
		return nil, fmt.Errorf("derive payment key: %w", err)
	}
	if id.stake, err = id.root.DeriveAddress(0, RoleStaking, 0); err != nil {
		return nil, fmt.Errorf("derive stake key: %w", err)
	}
	id.enterprise = address.NewEnterprise(network, id.payment.PublicKeyBytes())
	id.base = address.NewBase(network, id.payment.PublicKeyBytes(), id.stake.PublicKeyBytes())
	return id, nil
}

// Mnemonic returns the recovery phrase, if the identity has one. Raw-key
// identities never do.
func (id *Identity) Mnemonic() (string, bool) {
	return id.mnemonic, id.hasMnemonic
}

// PrivateKey returns the bech32 extended root key.
func (id *Identity) PrivateKey() string {
	s, err := id.root.XPrv()
	if err != nil {
		return ""
	}
	return s
}

// Address returns the enterprise payment address used for balances and
// transfers.
func (id *Identity) Address() address.Address { return id.enterprise }

// BaseAddress returns the payment+stake address of the same account.
func (id *Identity) BaseAddress() address.Address { return id.base }

// Network returns the network the addresses were encoded for.
func (id *Identity) Network() types.Network { return id.network }

// PaymentPublicKey returns the payment verification key.
func (id *Identity) PaymentPublicKey() []byte { return id.payment.PublicKeyBytes() }

// PaymentSigner returns the signer for transaction witnesses.
func (id *Identity) PaymentSigner() (crypto.Signer, error) {
	key, err := id.payment.Signer()
	if err != nil {
		return nil, err
	}
	return key, nil
}
