package crypto

import (
	"crypto/rand"
	"fmt"

	"golang.org/x/crypto/nacl/box"

	"sigil/internal/domain"
)

// AnonymousEncrypt seals msg to the recipient's public key. No sender
// identity is embedded and no private key is needed.
func (s *Service) AnonymousEncrypt(recipient domain.Verkey, msg []byte) ([]byte, error) {
	pub, err := decodeVerkey(recipient)
	if err != nil {
		return nil, err
	}
	curve, err := ed25519PubToCurve(pub)
	if err != nil {
		return nil, err
	}
	sealed, err := box.SealAnonymous(nil, msg, &curve, rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCryptoFailed, err)
	}
	return sealed, nil
}

// AnonymousDecrypt opens a sealed box with the recipient's private key.
func (s *Service) AnonymousDecrypt(recipient domain.Key, ciphertext []byte) ([]byte, error) {
	priv, pub, err := curvePair(recipient)
	if err != nil {
		return nil, err
	}
	defer Wipe(priv[:])

	plaintext, ok := box.OpenAnonymous(nil, ciphertext, &pub, &priv)
	if !ok {
		return nil, fmt.Errorf("%w: sealed box open failed", domain.ErrCryptoFailed)
	}
	return plaintext, nil
}
