package domain

// WalletService is an opaque-handle-addressed typed object store. Records are
// scoped by the wallet they were written to and addressed by (type, name).
type WalletService interface {
	// Create provisions a new named wallet protected by passphrase.
	Create(name, passphrase string) error
	// Open derives the wallet's master key and mints a fresh handle.
	Open(name, passphrase string) (WalletHandle, error)
	// Close invalidates the handle and wipes the cached master key.
	Close(handle WalletHandle) error

	// AddRecord stores a new record. It fails with ErrWalletItemAlreadyExists
	// if (type, name) is already taken within the wallet.
	AddRecord(handle WalletHandle, typ, name string, value []byte, tags map[string]string) error
	// GetRecord fetches a record, failing with ErrWalletItemNotFound if absent.
	GetRecord(handle WalletHandle, typ, name string) (Record, error)
	// UpsertRecord creates or replaces a record. It never fails on absence.
	UpsertRecord(handle WalletHandle, typ, name string, value []byte) error
}

// CryptoService provides the cryptographic primitives behind the crypto
// command set. Implementations are stateless.
type CryptoService interface {
	// ValidateKey checks the verkey's format without touching any storage.
	ValidateKey(vk Verkey) error
	// CreateKey builds a key pair from info (seeded or random).
	CreateKey(info KeyInfo) (Key, error)
	// Sign signs msg with the key's private half.
	Sign(key Key, msg []byte) ([]byte, error)
	// Verify reports whether sig is a valid signature of msg under vk. A
	// well-formed but wrong signature yields (false, nil), not an error.
	Verify(vk Verkey, msg, sig []byte) (bool, error)

	// AuthenticatedEncrypt encrypts msg from sender to recipient, binding the
	// sender's identity into the ciphertext.
	AuthenticatedEncrypt(sender Key, recipient Verkey, msg []byte) ([]byte, error)
	// AuthenticatedDecrypt opens an authenticated ciphertext addressed to
	// recipient and recovers the embedded sender verkey.
	AuthenticatedDecrypt(recipient Key, ciphertext []byte) (Verkey, []byte, error)
	// AnonymousEncrypt seals msg to the recipient's public key only.
	AnonymousEncrypt(recipient Verkey, msg []byte) ([]byte, error)
	// AnonymousDecrypt opens a sealed box with the recipient's private key.
	AnonymousDecrypt(recipient Key, ciphertext []byte) ([]byte, error)
}
