package wallet

// DefaultTemplate is prepended to a password before hashing it into entropy.
// Deployments should override it; the same password under different
// templates yields unrelated wallets.
const DefaultTemplate = "0x2050939757b6d498bb0407e001f0cb6db05c991b3c6f7d8e362f9d27c70128b9"

// SecretKind selects how a wallet identity is derived.
type SecretKind int

const (
	SecretRandom SecretKind = iota
	SecretPassword
	SecretMnemonic
	SecretRawKey
)

// String returns the kind name.
func (k SecretKind) String() string {
	switch k {
	case SecretRandom:
		return "random"
	case SecretPassword:
		return "password"
	case SecretMnemonic:
		return "mnemonic"
	case SecretRawKey:
		return "raw-key"
	default:
		return "unknown"
	}
}

// Secret is the material a wallet is constructed from. Exactly one kind is
// set. The zero value is a random secret.
type Secret struct {
	kind  SecretKind
	value string
}

// Random returns a secret that generates a fresh mnemonic.
func Random() Secret { return Secret{kind: SecretRandom} }

// Password returns a secret derived from password and the wallet template.
func Password(password string) Secret { return Secret{kind: SecretPassword, value: password} }

// Mnemonic returns a secret from a BIP-39 phrase.
func Mnemonic(words string) Secret { return Secret{kind: SecretMnemonic, value: words} }

// RawKey returns a secret from a bech32 extended root key.
func RawKey(xprv string) Secret { return Secret{kind: SecretRawKey, value: xprv} }

// Kind returns the secret kind.
func (s Secret) Kind() SecretKind { return s.kind }

// String never reveals the secret value.
func (s Secret) String() string { return "Secret(" + s.kind.String() + ")" }

// ResolveSecret picks the secret from optional construction parameters in
// priority order: password, mnemonic, private key, otherwise random.
func ResolveSecret(password, mnemonic, privateKey *string) Secret {
	switch {
	case password != nil:
		return Password(*password)
	case mnemonic != nil:
		return Mnemonic(*mnemonic)
	case privateKey != nil:
		return RawKey(*privateKey)
	default:
		return Random()
	}
}
