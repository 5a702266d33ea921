package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"sigil/internal/commands"
	"sigil/internal/domain"
)

func metadataCmd() *cobra.Command {
	var key string
	cmd := &cobra.Command{
		Use:   "metadata",
		Short: "Read or write the metadata attached to a verkey",
	}
	cmd.PersistentFlags().StringVar(&key, "key", "", "verkey the metadata belongs to")
	cmd.MarkPersistentFlagRequired("key")

	set := &cobra.Command{
		Use:   "set [value]",
		Short: "Create or overwrite the metadata for a verkey",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			handle, err := openWallet()
			if err != nil {
				return err
			}
			defer closeWallet(handle)

			ch := make(chan error, 1)
			err = executor.Send(commands.Crypto{Cmd: commands.SetKeyMetadata{
				Wallet:   handle,
				Verkey:   domain.Verkey(key),
				Metadata: args[0],
				Done:     func(err error) { ch <- err },
			}})
			if err != nil {
				return err
			}
			return <-ch
		},
	}

	get := &cobra.Command{
		Use:   "get",
		Short: "Print the metadata for a verkey",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			handle, err := openWallet()
			if err != nil {
				return err
			}
			defer closeWallet(handle)

			type result struct {
				value string
				err   error
			}
			ch := make(chan result, 1)
			err = executor.Send(commands.Crypto{Cmd: commands.GetKeyMetadata{
				Wallet: handle,
				Verkey: domain.Verkey(key),
				Done: func(value string, err error) {
					ch <- result{value, err}
				},
			}})
			if err != nil {
				return err
			}
			r := <-ch
			if r.err != nil {
				return r.err
			}
			fmt.Println(r.value)
			return nil
		},
	}

	cmd.AddCommand(set, get)
	return cmd
}
