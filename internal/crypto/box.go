package crypto

import (
	"crypto/rand"
	"encoding/json"
	"fmt"

	"golang.org/x/crypto/nacl/box"

	"sigil/internal/domain"
)

// comboEnvelope is the sealed payload of an authenticated ciphertext. The
// inner ciphertext is a crypto box between sender and recipient; the envelope
// itself is sealed anonymously to the recipient, so the sender's verkey is
// visible only after the recipient opens it.
type comboEnvelope struct {
	Sender     string `json:"sender"`
	Nonce      []byte `json:"nonce"`
	Ciphertext []byte `json:"ciphertext"`
}

// AuthenticatedEncrypt encrypts msg from sender to recipient so that the
// recipient can recover the sender's verkey on decryption.
func (s *Service) AuthenticatedEncrypt(sender domain.Key, recipient domain.Verkey, msg []byte) ([]byte, error) {
	senderPriv, err := decodeSignkey(sender.Signkey)
	if err != nil {
		return nil, err
	}
	senderCurve, err := ed25519PrivToCurve(senderPriv)
	Wipe(senderPriv)
	if err != nil {
		return nil, err
	}
	defer Wipe(senderCurve[:])

	recipientPub, err := decodeVerkey(recipient)
	if err != nil {
		return nil, err
	}
	recipientCurve, err := ed25519PubToCurve(recipientPub)
	if err != nil {
		return nil, err
	}

	var nonce [24]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return nil, err
	}
	boxed := box.Seal(nil, msg, &nonce, &recipientCurve, &senderCurve)

	raw, err := json.Marshal(comboEnvelope{
		Sender:     string(sender.Verkey),
		Nonce:      nonce[:],
		Ciphertext: boxed,
	})
	if err != nil {
		return nil, err
	}
	sealed, err := box.SealAnonymous(nil, raw, &recipientCurve, rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCryptoFailed, err)
	}
	return sealed, nil
}

// AuthenticatedDecrypt opens an authenticated ciphertext addressed to
// recipient. The embedded sender verkey is format-validated before it is fed
// to the curve conversion.
func (s *Service) AuthenticatedDecrypt(recipient domain.Key, ciphertext []byte) (domain.Verkey, []byte, error) {
	recipientCurvePriv, recipientCurvePub, err := curvePair(recipient)
	if err != nil {
		return "", nil, err
	}
	defer Wipe(recipientCurvePriv[:])

	raw, ok := box.OpenAnonymous(nil, ciphertext, &recipientCurvePub, &recipientCurvePriv)
	if !ok {
		return "", nil, fmt.Errorf("%w: sealed box open failed", domain.ErrCryptoFailed)
	}
	var env comboEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return "", nil, fmt.Errorf("%w: malformed envelope", domain.ErrCryptoFailed)
	}
	if len(env.Nonce) != 24 {
		return "", nil, fmt.Errorf("%w: malformed envelope nonce", domain.ErrCryptoFailed)
	}

	senderPub, err := decodeVerkey(domain.Verkey(env.Sender))
	if err != nil {
		return "", nil, err
	}
	senderCurve, err := ed25519PubToCurve(senderPub)
	if err != nil {
		return "", nil, err
	}

	var nonce [24]byte
	copy(nonce[:], env.Nonce)
	plaintext, ok := box.Open(nil, env.Ciphertext, &nonce, &senderCurve, &recipientCurvePriv)
	if !ok {
		return "", nil, fmt.Errorf("%w: box open failed", domain.ErrCryptoFailed)
	}
	return domain.Verkey(env.Sender), plaintext, nil
}

// curvePair derives the recipient's Curve25519 key pair from a stored Key.
func curvePair(key domain.Key) (priv, pub [32]byte, err error) {
	edPriv, err := decodeSignkey(key.Signkey)
	if err != nil {
		return priv, pub, err
	}
	priv, err = ed25519PrivToCurve(edPriv)
	Wipe(edPriv)
	if err != nil {
		return priv, pub, err
	}
	edPub, err := decodeVerkey(key.Verkey)
	if err != nil {
		return priv, pub, err
	}
	pub, err = ed25519PubToCurve(edPub)
	return priv, pub, err
}
