package commands

import (
	"encoding/base64"
	"fmt"

	"github.com/spf13/cobra"

	"sigil/internal/commands"
	"sigil/internal/domain"
)

func signCmd() *cobra.Command {
	var key string
	cmd := &cobra.Command{
		Use:   "sign [message]",
		Short: "Sign a message with a wallet key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			msg, err := readInput(args[0])
			if err != nil {
				return err
			}
			handle, err := openWallet()
			if err != nil {
				return err
			}
			defer closeWallet(handle)

			type result struct {
				sig []byte
				err error
			}
			ch := make(chan result, 1)
			err = executor.Send(commands.Crypto{Cmd: commands.CryptoSign{
				Wallet:   handle,
				MyVerkey: domain.Verkey(key),
				Msg:      msg,
				Done: func(sig []byte, err error) {
					ch <- result{sig, err}
				},
			}})
			if err != nil {
				return err
			}
			r := <-ch
			if r.err != nil {
				return r.err
			}
			fmt.Println(base64.StdEncoding.EncodeToString(r.sig))
			return nil
		},
	}
	cmd.Flags().StringVar(&key, "key", "", "verkey of the signing key")
	cmd.MarkFlagRequired("key")
	return cmd
}
