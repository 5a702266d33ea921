package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"sigil/internal/commands"
)

func initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create a new wallet",
		RunE: func(cmd *cobra.Command, args []string) error {
			if walletName == "" || passphrase == "" {
				return fmt.Errorf("wallet name and passphrase required (-w, -p)")
			}
			ch := make(chan error, 1)
			err := executor.Send(commands.Wallet{Cmd: commands.CreateWallet{
				Name:       walletName,
				Passphrase: passphrase,
				Done:       func(err error) { ch <- err },
			}})
			if err != nil {
				return err
			}
			if err := <-ch; err != nil {
				return err
			}
			fmt.Printf("Wallet %q created.\n", walletName)
			return nil
		},
	}
}
