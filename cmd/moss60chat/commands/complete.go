package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// complete <peer> <payload>: finish a handshake from a scanned peer payload.
func completeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "complete <peer> <payload>",
		Short: "Finish a handshake from a scanned peer payload",
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
			if err := m.CompleteHandshake(conv.ID, scan.DecodedData); err != nil {
				return err
			}
			if err := saveMessenger(m); err != nil {
				return err
			}

			fmt.Printf("Connected to %s\n", args[0])
			return nil
		},
	}
}
