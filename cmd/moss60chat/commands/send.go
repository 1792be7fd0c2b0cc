package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// send <peer> <message>: encrypt a message and print it as a QR code.
func sendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "send <peer> <message>",
		Short: "Encrypt a message and print it as a QR code",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := openMessenger()
			if err != nil {
				return err
			}

			conv, err := m.GetConversationByRemote(args[0])
			if err != nil {
				return err
			}
			ciphertext, err := m.SendMessage(conv.ID, args[1])
			if err != nil {
				return err
			}
			payload, err := m.GenerateQRPayload(ciphertext)
			if err != nil {
				return err
			}
			if err := saveMessenger(m); err != nil {
				return err
			}

			fmt.Println(payload.Data)
			printQR(payload.Data)
			return nil
		},
	}
}
