package commands

import (
	"encoding/json"

	"github.com/sirupsen/logrus"

	"sigil/internal/domain"
)

// Wallet record types owned by the crypto domain.
const (
	recordTypeKey      = "key"
	recordTypeMetadata = "metadata"
)

// CryptoCommand is the closed variant set of the crypto domain. Each case
// carries its inputs and a single-invocation completion callback that the
// worker invokes in-line.
type CryptoCommand interface {
	isCryptoCommand()
}

// CreateKey generates a key pair and persists it as a new Key record named by
// its verkey.
type CreateKey struct {
	Wallet domain.WalletHandle
	Info   domain.KeyInfo
	Done   func(verkey domain.Verkey, err error)
}

// SetKeyMetadata creates or overwrites the metadata string for a verkey.
type SetKeyMetadata struct {
	Wallet   domain.WalletHandle
	Verkey   domain.Verkey
	Metadata string
	Done     func(err error)
}

// GetKeyMetadata fetches the metadata string for a verkey.
type GetKeyMetadata struct {
	Wallet domain.WalletHandle
	Verkey domain.Verkey
	Done   func(metadata string, err error)
}

// CryptoSign signs a message with the private key stored under MyVerkey.
type CryptoSign struct {
	Wallet   domain.WalletHandle
	MyVerkey domain.Verkey
	Msg      []byte
	Done     func(signature []byte, err error)
}

// CryptoVerify verifies a signature against a public verkey. It is the only
// crypto operation requiring no wallet access.
type CryptoVerify struct {
	TheirVerkey domain.Verkey
	Msg         []byte
	Signature   []byte
	Done        func(valid bool, err error)
}

// AuthenticatedEncrypt encrypts a message so the recipient can recover the
// sender's verkey.
type AuthenticatedEncrypt struct {
	Wallet      domain.WalletHandle
	MyVerkey    domain.Verkey
	TheirVerkey domain.Verkey
	Msg         []byte
	Done        func(ciphertext []byte, err error)
}

// AuthenticatedDecrypt opens an authenticated ciphertext and recovers the
// embedded sender verkey alongside the plaintext.
type AuthenticatedDecrypt struct {
	Wallet     domain.WalletHandle
	MyVerkey   domain.Verkey
	Ciphertext []byte
	Done       func(sender domain.Verkey, plaintext []byte, err error)
}

// AnonymousEncrypt seals a message to a public verkey; no wallet access.
type AnonymousEncrypt struct {
	TheirVerkey domain.Verkey
	Msg         []byte
	Done        func(ciphertext []byte, err error)
}

// AnonymousDecrypt opens a sealed box with the private key stored under
// MyVerkey.
type AnonymousDecrypt struct {
	Wallet     domain.WalletHandle
	MyVerkey   domain.Verkey
	Ciphertext []byte
	Done       func(plaintext []byte, err error)
}

func (CreateKey) isCryptoCommand()            {}
func (SetKeyMetadata) isCryptoCommand()       {}
func (GetKeyMetadata) isCryptoCommand()       {}
func (CryptoSign) isCryptoCommand()           {}
func (CryptoVerify) isCryptoCommand()         {}
func (AuthenticatedEncrypt) isCryptoCommand() {}
func (AuthenticatedDecrypt) isCryptoCommand() {}
func (AnonymousEncrypt) isCryptoCommand()     {}
func (AnonymousDecrypt) isCryptoCommand()     {}

// CryptoExecutor implements the crypto command set. It is invoked exclusively
// from the Executor's worker goroutine; the single-writer guarantee is
// inherited, not re-derived.
type CryptoExecutor struct {
	wallet domain.WalletService
	crypto domain.CryptoService
	log    *logrus.Logger
}

// NewCryptoExecutor returns the crypto domain executor.
func NewCryptoExecutor(walletService domain.WalletService, cryptoService domain.CryptoService, log *logrus.Logger) *CryptoExecutor {
	if log == nil {
		log = logrus.New()
	}
	return &CryptoExecutor{wallet: walletService, crypto: cryptoService, log: log}
}

// Execute routes one crypto command and invokes its callback with the result.
func (x *CryptoExecutor) Execute(cmd CryptoCommand) {
	switch c := cmd.(type) {
	case CreateKey:
		x.log.Debug("CreateKey command received")
		c.Done(x.createKey(c.Wallet, c.Info))
	case SetKeyMetadata:
		x.log.Debug("SetKeyMetadata command received")
		c.Done(x.setKeyMetadata(c.Wallet, c.Verkey, c.Metadata))
	case GetKeyMetadata:
		x.log.Debug("GetKeyMetadata command received")
		c.Done(x.getKeyMetadata(c.Wallet, c.Verkey))
	case CryptoSign:
		x.log.Debug("CryptoSign command received")
		c.Done(x.sign(c.Wallet, c.MyVerkey, c.Msg))
	case CryptoVerify:
		x.log.Debug("CryptoVerify command received")
		c.Done(x.verify(c.TheirVerkey, c.Msg, c.Signature))
	case AuthenticatedEncrypt:
		x.log.Debug("AuthenticatedEncrypt command received")
		c.Done(x.authenticatedEncrypt(c.Wallet, c.MyVerkey, c.TheirVerkey, c.Msg))
	case AuthenticatedDecrypt:
		x.log.Debug("AuthenticatedDecrypt command received")
		sender, plaintext, err := x.authenticatedDecrypt(c.Wallet, c.MyVerkey, c.Ciphertext)
		c.Done(sender, plaintext, err)
	case AnonymousEncrypt:
		x.log.Debug("AnonymousEncrypt command received")
		c.Done(x.anonymousEncrypt(c.TheirVerkey, c.Msg))
	case AnonymousDecrypt:
		x.log.Debug("AnonymousDecrypt command received")
		c.Done(x.anonymousDecrypt(c.Wallet, c.MyVerkey, c.Ciphertext))
	}
}

func (x *CryptoExecutor) createKey(handle domain.WalletHandle, info domain.KeyInfo) (domain.Verkey, error) {
	key, err := x.crypto.CreateKey(info)
	if err != nil {
		return "", err
	}
	raw, err := json.Marshal(key)
	if err != nil {
		return "", err
	}
	if err := x.wallet.AddRecord(handle, recordTypeKey, key.Verkey.String(), raw, nil); err != nil {
		return "", err
	}
	return key.Verkey, nil
}

func (x *CryptoExecutor) setKeyMetadata(handle domain.WalletHandle, vk domain.Verkey, metadata string) error {
	if err := x.crypto.ValidateKey(vk); err != nil {
		return err
	}
	raw, err := json.Marshal(domain.KeyMetadata{Value: metadata})
	if err != nil {
		return err
	}
	return x.wallet.UpsertRecord(handle, recordTypeMetadata, vk.String(), raw)
}

func (x *CryptoExecutor) getKeyMetadata(handle domain.WalletHandle, vk domain.Verkey) (string, error) {
	if err := x.crypto.ValidateKey(vk); err != nil {
		return "", err
	}
	rec, err := x.wallet.GetRecord(handle, recordTypeMetadata, vk.String())
	if err != nil {
		return "", err
	}
	var meta domain.KeyMetadata
	if err := json.Unmarshal(rec.Value, &meta); err != nil {
		return "", err
	}
	return meta.Value, nil
}

func (x *CryptoExecutor) sign(handle domain.WalletHandle, myVerkey domain.Verkey, msg []byte) ([]byte, error) {
	if err := x.crypto.ValidateKey(myVerkey); err != nil {
		return nil, err
	}
	key, err := x.fetchKey(handle, myVerkey)
	if err != nil {
		return nil, err
	}
	return x.crypto.Sign(key, msg)
}

func (x *CryptoExecutor) verify(theirVerkey domain.Verkey, msg, signature []byte) (bool, error) {
	if err := x.crypto.ValidateKey(theirVerkey); err != nil {
		return false, err
	}
	return x.crypto.Verify(theirVerkey, msg, signature)
}

func (x *CryptoExecutor) authenticatedEncrypt(handle domain.WalletHandle, myVerkey, theirVerkey domain.Verkey, msg []byte) ([]byte, error) {
	if err := x.crypto.ValidateKey(myVerkey); err != nil {
		return nil, err
	}
	if err := x.crypto.ValidateKey(theirVerkey); err != nil {
		return nil, err
	}
	key, err := x.fetchKey(handle, myVerkey)
	if err != nil {
		return nil, err
	}
	return x.crypto.AuthenticatedEncrypt(key, theirVerkey, msg)
}

func (x *CryptoExecutor) authenticatedDecrypt(handle domain.WalletHandle, myVerkey domain.Verkey, ciphertext []byte) (domain.Verkey, []byte, error) {
	if err := x.crypto.ValidateKey(myVerkey); err != nil {
		return "", nil, err
	}
	key, err := x.fetchKey(handle, myVerkey)
	if err != nil {
		return "", nil, err
	}
	return x.crypto.AuthenticatedDecrypt(key, ciphertext)
}

func (x *CryptoExecutor) anonymousEncrypt(theirVerkey domain.Verkey, msg []byte) ([]byte, error) {
	if err := x.crypto.ValidateKey(theirVerkey); err != nil {
		return nil, err
	}
	return x.crypto.AnonymousEncrypt(theirVerkey, msg)
}

func (x *CryptoExecutor) anonymousDecrypt(handle domain.WalletHandle, myVerkey domain.Verkey, ciphertext []byte) ([]byte, error) {
	if err := x.crypto.ValidateKey(myVerkey); err != nil {
		return nil, err
	}
	key, err := x.fetchKey(handle, myVerkey)
	if err != nil {
		return nil, err
	}
	return x.crypto.AnonymousDecrypt(key, ciphertext)
}

// fetchKey loads and decodes the Key record stored under vk.
func (x *CryptoExecutor) fetchKey(handle domain.WalletHandle, vk domain.Verkey) (domain.Key, error) {
	rec, err := x.wallet.GetRecord(handle, recordTypeKey, vk.String())
	if err != nil {
		return domain.Key{}, err
	}
	var key domain.Key
	if err := json.Unmarshal(rec.Value, &key); err != nil {
		return domain.Key{}, err
	}
	return key, nil
}
