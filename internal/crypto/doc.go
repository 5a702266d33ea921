// Package crypto implements domain.CryptoService over stdlib ed25519 and the
// NaCl constructions from golang.org/x/crypto.
//
// Contents
//
//   - Base58 verkey validation, encoding and decoding
//   - Seeded and random ed25519 key creation, signing and verification
//   - Authenticated encryption: an inner crypto box between sender and
//     recipient, wrapped in a sealed box that carries the sender's verkey
//   - Anonymous encryption: a plain sealed box to the recipient
//   - Ed25519 to Curve25519 key conversion (RFC 8032 clamp for the private
//     half, Edwards-to-Montgomery for the public half)
//   - Best-effort memory wiping for sensitive byte slices (Wipe)
//
// # Notes
//
// All operations are pure functions over byte buffers and key material;
// Service carries no state. Callers should treat decoded private keys as
// sensitive and rely on Wipe when practical to reduce lifetime in memory.
package crypto
