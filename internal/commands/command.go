package commands

// Command is a message crossing the dispatch boundary. The variant set is
// closed: one wrapper per domain plus the Exit sentinel.
type Command interface {
	isCommand()
}

// Exit stops the worker once every previously enqueued command has run. It is
// reserved for Shutdown; sending it directly also closes the executor.
type Exit struct{}

func (Exit) isCommand() {}

// Crypto wraps one crypto-domain command.
type Crypto struct {
	Cmd CryptoCommand
}

func (Crypto) isCommand() {}

// Wallet wraps one wallet-domain command.
type Wallet struct {
	Cmd WalletCommand
}

func (Wallet) isCommand() {}
