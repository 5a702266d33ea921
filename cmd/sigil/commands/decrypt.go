package commands

import (
	"encoding/base64"
	"fmt"

	"github.com/spf13/cobra"

	"sigil/internal/commands"
	"sigil/internal/domain"
)

func decryptCmd() *cobra.Command {
	var (
		key  string
		anon bool
	)
	cmd := &cobra.Command{
		Use:   "decrypt [ciphertext]",
		Short: "Decrypt a base64 ciphertext with a wallet key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ct, err := base64.StdEncoding.DecodeString(args[0])
			if err != nil {
				return fmt.Errorf("decoding ciphertext: %w", err)
			}
			handle, err := openWallet()
			if err != nil {
				return err
			}
			defer closeWallet(handle)

			if anon {
				type result struct {
					pt  []byte
					err error
				}
				ch := make(chan result, 1)
				err = executor.Send(commands.Crypto{Cmd: commands.AnonymousDecrypt{
					Wallet:     handle,
					MyVerkey:   domain.Verkey(key),
					Ciphertext: ct,
					Done: func(pt []byte, err error) {
						ch <- result{pt, err}
					},
				}})
				if err != nil {
					return err
				}
				r := <-ch
				if r.err != nil {
					return r.err
				}
				fmt.Printf("%s\n", r.pt)
				return nil
			}

			type result struct {
				sender domain.Verkey
				pt     []byte
				err    error
			}
			ch := make(chan result, 1)
			err = executor.Send(commands.Crypto{Cmd: commands.AuthenticatedDecrypt{
				Wallet:     handle,
				MyVerkey:   domain.Verkey(key),
				Ciphertext: ct,
				Done: func(sender domain.Verkey, pt []byte, err error) {
					ch <- result{sender, pt, err}
				},
			}})
			if err != nil {
				return err
			}
			r := <-ch
			if r.err != nil {
				return r.err
			}
			fmt.Printf("Sender: %s\n%s\n", r.sender, r.pt)
			return nil
		},
	}
	cmd.Flags().StringVar(&key, "key", "", "recipient's verkey in the wallet")
	cmd.Flags().BoolVar(&anon, "anon", false, "ciphertext is anonymous (sealed box)")
	cmd.MarkFlagRequired("key")
	return cmd
}
