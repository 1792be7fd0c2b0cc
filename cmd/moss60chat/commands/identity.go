package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/metapet/moss60"
)

// identity <who-you-are>: create the local identity and print its public hash.
func identityCmd() *cobra.Command {
	var mode, format string

	cmd := &cobra.Command{
		Use:   "identity <who-you-are>",
		Short: "Create the local identity and show its public hash",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if saveStore.Exists() {
				return fmt.Errorf("identity already exists in %s; delete the state dir to start over", home)
			}

			options := moss60.NewOptions()
			options.LocalIdentity = args[0]
			options.EncryptionMode = moss60.EncryptionMode(mode)
			options.DefaultFormat = moss60.EncodingFormat(format)

			m, err := moss60.New(options)
			if err != nil {
				return err
			}
			if err := saveMessenger(m); err != nil {
				return err
			}

			fmt.Printf("Identity created: %s\nPublic hash: %s\n", m.LocalIdentity(), m.LocalPublicHash())
			printQR(m.LocalPublicHash())
			return nil
		},
	}

	cmd.Flags().StringVar(&mode, "mode", "standard", "encryption mode (standard|temporal)")
	cmd.Flags().StringVar(&format, "format", "base60", "payload encoding (base60|hex|text|json)")
	return cmd
}
