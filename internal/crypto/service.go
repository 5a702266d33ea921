package crypto

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"github.com/mr-tron/base58"

	"sigil/internal/domain"
)

const seedBytes = 32

// Service implements domain.CryptoService. It is stateless.
type Service struct{}

// NewService returns the crypto primitive provider.
func NewService() *Service { return &Service{} }

// ValidateKey checks vk's format: an optional known crypto-type suffix and a
// base58 body decoding to 32 bytes. It performs no I/O.
func (s *Service) ValidateKey(vk domain.Verkey) error {
	_, err := decodeVerkey(vk)
	return err
}

// CreateKey builds an ed25519 key pair, seeded when info.Seed is set.
func (s *Service) CreateKey(info domain.KeyInfo) (domain.Key, error) {
	if info.CryptoType != "" && info.CryptoType != CryptoTypeEd25519 {
		return domain.Key{}, fmt.Errorf("%w: %q", domain.ErrUnknownCrypto, info.CryptoType)
	}

	var (
		pub  ed25519.PublicKey
		priv ed25519.PrivateKey
	)
	seed, err := decodeSeed(info.Seed)
	if err != nil {
		return domain.Key{}, err
	}
	if seed == nil {
		pub, priv, err = ed25519.GenerateKey(rand.Reader)
		if err != nil {
			return domain.Key{}, err
		}
	} else {
		priv = ed25519.NewKeyFromSeed(seed)
		pub = priv.Public().(ed25519.PublicKey)
		Wipe(seed)
	}

	return domain.Key{
		Verkey:  domain.Verkey(base58.Encode(pub)),
		Signkey: base58.Encode(priv),
	}, nil
}

// Sign signs msg with the key's private half.
func (s *Service) Sign(key domain.Key, msg []byte) ([]byte, error) {
	priv, err := decodeSignkey(key.Signkey)
	if err != nil {
		return nil, err
	}
	sig := ed25519.Sign(priv, msg)
	Wipe(priv)
	return sig, nil
}

// Verify reports whether sig is a valid signature of msg under vk. A wrong or
// malformed signature yields (false, nil); only a malformed vk is an error.
func (s *Service) Verify(vk domain.Verkey, msg, sig []byte) (bool, error) {
	pub, err := decodeVerkey(vk)
	if err != nil {
		return false, err
	}
	return ed25519.Verify(ed25519.PublicKey(pub), msg, sig), nil
}

// decodeSeed interprets a KeyInfo seed: empty means random, a 32-character
// string is used raw, anything else must be base64 of 32 bytes.
func decodeSeed(seed string) ([]byte, error) {
	if seed == "" {
		return nil, nil
	}
	if len(seed) == seedBytes {
		return []byte(seed), nil
	}
	raw, err := base64.StdEncoding.DecodeString(seed)
	if err != nil {
		return nil, fmt.Errorf("%w: seed is neither %d characters nor base64", domain.ErrInvalidKeyFormat, seedBytes)
	}
	if len(raw) != seedBytes {
		return nil, fmt.Errorf("%w: %d byte seed", domain.ErrInvalidKeyFormat, len(raw))
	}
	return raw, nil
}

// Compile-time assertion that Service implements domain.CryptoService.
var _ domain.CryptoService = (*Service)(nil)
