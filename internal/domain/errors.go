package domain

import "errors"

var (
	// ErrInvalidKeyFormat is returned when a verkey or seed fails format
	// validation, before any wallet or primitive call is attempted.
	ErrInvalidKeyFormat = errors.New("invalid key format")

	// ErrUnknownCrypto is returned for a crypto-type tag other than ed25519.
	ErrUnknownCrypto = errors.New("unknown crypto type")

	// ErrWalletItemNotFound is returned when a record is absent.
	ErrWalletItemNotFound = errors.New("wallet item not found")

	// ErrWalletItemAlreadyExists is returned when adding a record whose name
	// is already taken within the wallet.
	ErrWalletItemAlreadyExists = errors.New("wallet item already exists")

	// ErrWalletNotFound is returned when opening a wallet that was never
	// created.
	ErrWalletNotFound = errors.New("wallet not found")

	// ErrWalletAlreadyExists is returned when creating a wallet whose name is
	// already taken.
	ErrWalletAlreadyExists = errors.New("wallet already exists")

	// ErrWalletAccessFailed is returned when the passphrase cannot open the
	// wallet.
	ErrWalletAccessFailed = errors.New("wallet access failed")

	// ErrInvalidWalletHandle is returned for a handle that is not open.
	ErrInvalidWalletHandle = errors.New("invalid wallet handle")

	// ErrCryptoFailed is returned when a signing, verification or encryption
	// primitive rejects its input.
	ErrCryptoFailed = errors.New("crypto operation failed")

	// ErrExecutorClosed is returned by Send after shutdown has begun.
	ErrExecutorClosed = errors.New("command executor closed")
)
