package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"sigil/internal/app"
	"sigil/internal/commands"
	"sigil/internal/domain"
)

var (
	home       string
	walletName string
	passphrase string

	executor *commands.Executor
)

func Execute() error {
	root := &cobra.Command{
		Use:   "sigil",
		Short: "Wallet-backed key management and encryption CLI",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.Load()
			if err != nil {
				return err
			}
			if home != "" {
				cfg.Home = home
			}
			executor, err = app.NewExecutor(cfg)
			return err
		},
	}

	root.PersistentFlags().StringVar(&home, "home", "", "data dir (default ~/.sigil)")
	root.PersistentFlags().StringVarP(&walletName, "wallet", "w", "", "wallet name")
	root.PersistentFlags().StringVarP(&passphrase, "passphrase", "p", "", "wallet passphrase")

	root.AddCommand(
		initCmd(),
		keygenCmd(),
		signCmd(),
		verifyCmd(),
		encryptCmd(),
		decryptCmd(),
		metadataCmd(),
	)

	err := root.Execute()
	if executor != nil {
		executor.Shutdown()
	}
	return err
}

// openWallet dispatches OpenWallet and waits for the handle.
func openWallet() (domain.WalletHandle, error) {
	if walletName == "" || passphrase == "" {
		return 0, fmt.Errorf("wallet name and passphrase required (-w, -p)")
	}
	type result struct {
		handle domain.WalletHandle
		err    error
	}
	ch := make(chan result, 1)
	err := executor.Send(commands.Wallet{Cmd: commands.OpenWallet{
		Name:       walletName,
		Passphrase: passphrase,
		Done: func(handle domain.WalletHandle, err error) {
			ch <- result{handle, err}
		},
	}})
	if err != nil {
		return 0, err
	}
	r := <-ch
	return r.handle, r.err
}

// closeWallet dispatches CloseWallet and waits for completion.
func closeWallet(handle domain.WalletHandle) error {
	ch := make(chan error, 1)
	err := executor.Send(commands.Wallet{Cmd: commands.CloseWallet{
		Handle: handle,
		Done:   func(err error) { ch <- err },
	}})
	if err != nil {
		return err
	}
	return <-ch
}

// readInput returns arg as bytes, reading stdin when arg is "-".
func readInput(arg string) ([]byte, error) {
	if arg == "-" {
		return io.ReadAll(os.Stdin)
	}
	return []byte(arg), nil
}
