package commands

import (
	"encoding/base64"
	"fmt"

	"github.com/spf13/cobra"

	"sigil/internal/commands"
	"sigil/internal/domain"
)

func encryptCmd() *cobra.Command {
	var (
		to   string
		from string
	)
	cmd := &cobra.Command{
		Use:   "encrypt [message]",
		Short: "Encrypt a message for a recipient verkey",
		Long: `Encrypt a message for a recipient verkey.

With --from, the message is authenticated: the recipient recovers the sender's
verkey on decryption, and the sender's private key must be in the wallet.
Without --from, the message is sealed anonymously and no wallet is needed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			msg, err := readInput(args[0])
			if err != nil {
				return err
			}

			type result struct {
				ct  []byte
				err error
			}
			ch := make(chan result, 1)

			if from == "" {
				err = executor.Send(commands.Crypto{Cmd: commands.AnonymousEncrypt{
					TheirVerkey: domain.Verkey(to),
					Msg:         msg,
					Done: func(ct []byte, err error) {
						ch <- result{ct, err}
					},
				}})
				if err != nil {
					return err
				}
			} else {
				handle, err := openWallet()
				if err != nil {
					return err
				}
				defer closeWallet(handle)
				err = executor.Send(commands.Crypto{Cmd: commands.AuthenticatedEncrypt{
					Wallet:      handle,
					MyVerkey:    domain.Verkey(from),
					TheirVerkey: domain.Verkey(to),
					Msg:         msg,
					Done: func(ct []byte, err error) {
						ch <- result{ct, err}
					},
				}})
				if err != nil {
					return err
				}
			}

			r := <-ch
			if r.err != nil {
				return r.err
			}
			fmt.Println(base64.StdEncoding.EncodeToString(r.ct))
			return nil
		},
	}
	cmd.Flags().StringVar(&to, "to", "", "recipient's verkey")
	cmd.Flags().StringVar(&from, "from", "", "sender's verkey (omit for anonymous encryption)")
	cmd.MarkFlagRequired("to")
	return cmd
}
