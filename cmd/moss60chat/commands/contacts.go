package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// contacts: list conversations and their handshake states.
func contactsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "contacts",
		Short: "List conversations and their handshake states",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := openMessenger()
			if err != nil {
				return err
			}

			convs := m.Conversations()
			if len(convs) == 0 {
				fmt.Println("no conversations yet")
				return nil
			}
			for _, conv := range convs {
				fmt.Printf("%-30s %-20s %d messages\n", conv.RemoteIdentity, conv.State(), len(conv.Messages))
			}
			return nil
		},
	}
}
