package commands

import (
	"github.com/sirupsen/logrus"

	"sigil/internal/domain"
)

// WalletCommand is the closed variant set of the wallet domain.
type WalletCommand interface {
	isWalletCommand()
}

// CreateWallet provisions a new named wallet.
type CreateWallet struct {
	Name       string
	Passphrase string
	Done       func(err error)
}

// OpenWallet opens an existing wallet and mints a handle for it.
type OpenWallet struct {
	Name       string
	Passphrase string
	Done       func(handle domain.WalletHandle, err error)
}

// CloseWallet invalidates a handle.
type CloseWallet struct {
	Handle domain.WalletHandle
	Done   func(err error)
}

func (CreateWallet) isWalletCommand() {}
func (OpenWallet) isWalletCommand()   {}
func (CloseWallet) isWalletCommand()  {}

// WalletExecutor implements the wallet command set. Like every domain
// executor it runs only on the Executor's worker goroutine.
type WalletExecutor struct {
	wallet domain.WalletService
	log    *logrus.Logger
}

// NewWalletExecutor returns the wallet domain executor.
func NewWalletExecutor(walletService domain.WalletService, log *logrus.Logger) *WalletExecutor {
	if log == nil {
		log = logrus.New()
	}
	return &WalletExecutor{wallet: walletService, log: log}
}

// Execute routes one wallet command and invokes its callback with the result.
func (x *WalletExecutor) Execute(cmd WalletCommand) {
	switch c := cmd.(type) {
	case CreateWallet:
		x.log.Debug("CreateWallet command received")
		c.Done(x.wallet.Create(c.Name, c.Passphrase))
	case OpenWallet:
		x.log.Debug("OpenWallet command received")
		handle, err := x.wallet.Open(c.Name, c.Passphrase)
		c.Done(handle, err)
	case CloseWallet:
		x.log.Debug("CloseWallet command received")
		c.Done(x.wallet.Close(c.Handle))
	}
}
