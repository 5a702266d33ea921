package domain

// WalletHandle identifies an open wallet. Zero is never a valid handle.
type WalletHandle int32

// Verkey is a base58-encoded ed25519 verification key, optionally carrying a
// ":<crypto-type>" suffix. It doubles as the record name of the stored Key.
type Verkey string

// String returns the string form of the verkey.
func (v Verkey) String() string { return string(v) }

// Key is a stored signing key pair. Verkey names the record; Signkey is the
// base58-encoded 64-byte ed25519 private key and never leaves the wallet
// except inside the crypto executor's stack frame.
type Key struct {
	Verkey  Verkey `json:"verkey"`
	Signkey string `json:"signkey"`
}

// KeyInfo is an ephemeral key-construction request. Seed is either empty
// (random key), a 32-character raw string, or base64 of 32 bytes. CryptoType
// is empty or "ed25519".
type KeyInfo struct {
	Seed       string `json:"seed,omitempty"`
	CryptoType string `json:"crypto_type,omitempty"`
}

// KeyMetadata is a free-form string attached to a verkey. Its lifecycle is
// independent of the Key record with the same name.
type KeyMetadata struct {
	Value string `json:"value"`
}

// Record is a typed, named wallet entry.
type Record struct {
	Type  string
	Name  string
	Value []byte
	Tags  map[string]string
}
