package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/metapet/moss60/conversation"
)

// log <peer>: print a conversation's message history.
func logCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "log <peer>",
		Short: "Print a conversation's message history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := openMessenger()
			if err != nil {
				return err
			}

			conv, err := m.GetConversationByRemote(args[0])
			if err != nil {
				return err
			}
			if len(conv.Messages) == 0 {
				fmt.Println("no messages yet")
				return nil
			}
			for _, msg := range conv.Messages {
				marker := "<-"
				if msg.Direction == conversation.DirectionSent {
					marker = "->"
				}
				fmt.Printf("%s %s %s: %s\n", msg.Timestamp.Format("2006-01-02 15:04"), marker, msg.SenderID, msg.Content)
			}
			return nil
		},
	}
}
