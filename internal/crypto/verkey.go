package crypto

import (
	"crypto/ed25519"
	"fmt"
	"strings"

	"github.com/mr-tron/base58"

	"sigil/internal/domain"
)

// CryptoTypeEd25519 is the only crypto-type tag a verkey may carry.
const CryptoTypeEd25519 = "ed25519"

// splitVerkey separates the optional ":<crypto-type>" suffix.
func splitVerkey(vk domain.Verkey) (key, cryptoType string) {
	key, cryptoType, _ = strings.Cut(string(vk), ":")
	return key, cryptoType
}

// decodeVerkey returns the 32 raw public-key bytes behind vk.
func decodeVerkey(vk domain.Verkey) ([]byte, error) {
	key, cryptoType := splitVerkey(vk)
	if cryptoType != "" && cryptoType != CryptoTypeEd25519 {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownCrypto, cryptoType)
	}
	raw, err := base58.Decode(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidKeyFormat, err)
	}
	if len(raw) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("%w: %d byte key", domain.ErrInvalidKeyFormat, len(raw))
	}
	return raw, nil
}

// decodeSignkey returns the 64 raw private-key bytes behind a stored signkey.
func decodeSignkey(signkey string) (ed25519.PrivateKey, error) {
	raw, err := base58.Decode(signkey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidKeyFormat, err)
	}
	if len(raw) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("%w: %d byte signkey", domain.ErrInvalidKeyFormat, len(raw))
	}
	return ed25519.PrivateKey(raw), nil
}
