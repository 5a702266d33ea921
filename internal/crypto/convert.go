package crypto

import (
	"crypto/ed25519"
	"crypto/sha512"
	"fmt"

	"filippo.io/edwards25519"

	"sigil/internal/domain"
)

// ed25519PrivToCurve derives the Curve25519 private key from an ed25519
// private key: SHA-512 of the seed, clamped per RFC 7748.
func ed25519PrivToCurve(priv ed25519.PrivateKey) (out [32]byte, err error) {
	if len(priv) != ed25519.PrivateKeySize {
		return out, fmt.Errorf("%w: %d byte private key", domain.ErrInvalidKeyFormat, len(priv))
	}
	digest := sha512.Sum512(priv.Seed())
	digest[0] &= 248
	digest[31] &= 127
	digest[31] |= 64
	copy(out[:], digest[:32])
	Wipe(digest[:])
	return out, nil
}

// ed25519PubToCurve maps an ed25519 public key onto the birationally
// equivalent Curve25519 point.
func ed25519PubToCurve(pub []byte) (out [32]byte, err error) {
	p, err := new(edwards25519.Point).SetBytes(pub)
	if err != nil {
		return out, fmt.Errorf("%w: %v", domain.ErrInvalidKeyFormat, err)
	}
	copy(out[:], p.BytesMontgomery())
	return out, nil
}
