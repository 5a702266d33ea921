// Package domain defines the shared types, errors and service contracts of the
// sigil core.
//
// Contents
//
//   - Wallet handles, verkeys and the stored entities (Key, KeyInfo,
//     KeyMetadata, Record)
//   - The error taxonomy used across the wallet and crypto layers
//   - The WalletService and CryptoService contracts consumed by the command
//     executors
//
// # Notes
//
// Every stateful service behind these interfaces is driven from a single
// worker goroutine owned by the command executor; implementations may rely on
// that single-writer guarantee instead of internal locking.
package domain
