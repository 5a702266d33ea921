// Package wallet implements domain.WalletService: named, passphrase-protected
// wallets whose records are encrypted at rest.
//
// A wallet's master key is derived from its passphrase with scrypt against a
// stored salt; each record is sealed individually with ChaCha20-Poly1305 and
// a random nonce. Raw bytes land in a pluggable Backend: Badger on disk for
// real use, an in-memory map for tests.
//
// The service keeps no locks of its own. It is driven from the command
// executor's single worker goroutine, which serializes every call.
package wallet
