package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"sigil/internal/commands"
	"sigil/internal/domain"
)

func keygenCmd() *cobra.Command {
	var (
		seed     string
		metadata string
	)
	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Create a signing key in the wallet",
		RunE: func(cmd *cobra.Command, args []string) error {
			handle, err := openWallet()
			if err != nil {
				return err
			}
			defer closeWallet(handle)

			type result struct {
				verkey domain.Verkey
				err    error
			}
			ch := make(chan result, 1)
			err = executor.Send(commands.Crypto{Cmd: commands.CreateKey{
				Wallet: handle,
				Info:   domain.KeyInfo{Seed: seed},
				Done: func(verkey domain.Verkey, err error) {
					ch <- result{verkey, err}
				},
			}})
			if err != nil {
				return err
			}
			r := <-ch
			if r.err != nil {
				return r.err
			}

			if metadata != "" {
				mch := make(chan error, 1)
				err = executor.Send(commands.Crypto{Cmd: commands.SetKeyMetadata{
					Wallet:   handle,
					Verkey:   r.verkey,
					Metadata: metadata,
					Done:     func(err error) { mch <- err },
				}})
				if err != nil {
					return err
				}
				if err := <-mch; err != nil {
					return err
				}
			}

			fmt.Printf("Verkey: %s\n", r.verkey)
			return nil
		},
	}
	cmd.Flags().StringVar(&seed, "seed", "", "32-character or base64 seed for a deterministic key")
	cmd.Flags().StringVar(&metadata, "metadata", "", "metadata to attach to the new key")
	return cmd
}
