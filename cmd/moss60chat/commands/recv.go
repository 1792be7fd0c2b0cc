package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// recv <peer> <payload>: decrypt a scanned message payload.
func recvCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "recv <peer> <payload>",
		Short: "Decrypt a scanned message payload",
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
			scan, err := m.ScanPayload(args[1])
			if err != nil {
				return err
			}
			msg, err := m.ReceiveMessage(conv.ID, scan.DecodedData)
			if err != nil {
				return err
			}
			if err := saveMessenger(m); err != nil {
				return err
			}

			fmt.Printf("%s: %s\n", msg.SenderID, msg.Content)
			return nil
		},
	}
}
