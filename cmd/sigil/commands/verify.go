package commands

import (
	"encoding/base64"
	"fmt"

	"github.com/spf13/cobra"

	"sigil/internal/commands"
	"sigil/internal/domain"
)

func verifyCmd() *cobra.Command {
	var key string
	cmd := &cobra.Command{
		Use:   "verify [message] [signature]",
		Short: "Verify a signature against a public verkey",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			msg, err := readInput(args[0])
			if err != nil {
				return err
			}
			sig, err := base64.StdEncoding.DecodeString(args[1])
			if err != nil {
				return fmt.Errorf("decoding signature: %w", err)
			}

			// Verification is public-key only; no wallet is opened.
			type result struct {
				valid bool
				err   error
			}
			ch := make(chan result, 1)
			err = executor.Send(commands.Crypto{Cmd: commands.CryptoVerify{
				TheirVerkey: domain.Verkey(key),
				Msg:         msg,
				Signature:   sig,
				Done: func(valid bool, err error) {
					ch <- result{valid, err}
				},
			}})
			if err != nil {
				return err
			}
			r := <-ch
			if r.err != nil {
				return r.err
			}
			if !r.valid {
				return fmt.Errorf("signature invalid")
			}
			fmt.Println("signature valid")
			return nil
		},
	}
	cmd.Flags().StringVar(&key, "key", "", "signer's verkey")
	cmd.MarkFlagRequired("key")
	return cmd
}
