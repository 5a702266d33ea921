package wallet

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/scrypt"
)

const (
	// The current supported version of the encrypted record format.
	envelopeFormatVersion = 1

	saltBytes = 16
)

// Returned when a record cannot be opened with the wallet's master key.
var errOpenFailed = errors.New("record open failed")

// envelope is the stored structure holding one encrypted record.
type envelope struct {
	V      int    `json:"v"`
	Nonce  []byte `json:"nonce"`
	Cipher []byte `json:"cipher"`
}

// deriveMasterKey stretches a wallet passphrase against its stored salt.
func deriveMasterKey(passphrase string, salt []byte) ([]byte, error) {
	N, r, p := scryptParamsDefault()
	return scrypt.Key([]byte(passphrase), salt, N, r, p, chacha20poly1305.KeySize)
}

// sealRecord encrypts raw under the wallet master key with a random nonce.
func sealRecord(masterKey, raw []byte) ([]byte, error) {
	aead, err := chacha20poly1305.New(masterKey)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}
	ct := aead.Seal(nil, nonce, raw, nil)
	return json.Marshal(envelope{V: envelopeFormatVersion, Nonce: nonce, Cipher: ct})
}

// openRecord decrypts a stored envelope with the wallet master key.
func openRecord(masterKey, blob []byte) ([]byte, error) {
	var env envelope
	if err := json.Unmarshal(blob, &env); err != nil {
		return nil, err
	}
	if env.V > envelopeFormatVersion {
		return nil, fmt.Errorf("unsupported record version %d", env.V)
	}
	aead, err := chacha20poly1305.New(masterKey)
	if err != nil {
		return nil, err
	}
	raw, err := aead.Open(nil, env.Nonce, env.Cipher, nil)
	if err != nil {
		return nil, errOpenFailed
	}
	return raw, nil
}

// Tunables for scrypt key derivation.
func scryptParamsDefault() (N, r, p int) { return 1 << 15, 8, 1 }
