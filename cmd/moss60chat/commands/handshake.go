package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// handshake <peer>: start a handshake and print the QR code for the peer.
func handshakeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "handshake <peer>",
		Short: "Start a handshake and print the QR code to show the peer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := openMessenger()
			if err != nil {
				return err
			}

			conv, err := m.CreateConversation(args[0])
			if err != nil {
				return err
			}
			publicHash, err := m.InitiateHandshake(conv.ID)
			if err != nil {
				return err
			}
			payload, err := m.GenerateQRPayload(publicHash)
			if err != nil {
				return err
			}
			if err := saveMessenger(m); err != nil {
				return err
			}

			fmt.Printf("Show this code to %s, then scan theirs and run: moss60chat complete %s <payload>\n", args[0], args[0])
			fmt.Println(payload.Data)
			printQR(payload.Data)
			return nil
		},
	}
}
