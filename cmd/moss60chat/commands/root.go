package commands

import (
	"fmt"
	"os"
	"path/filepath"

	qrcodeTerminal "github.com/Baozisoftware/qrcode-terminal-go"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/metapet/moss60"
	"github.com/metapet/moss60/crypto"
)

var (
	home       string
	passphrase string
	verbose    bool

	saveStore *crypto.EncryptedSaveStore
)

func Execute() error {
	root := &cobra.Command{
		Use:   "moss60chat",
		Short: "QR-carried private messaging CLI",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
			} else {
				logrus.SetLevel(logrus.WarnLevel)
			}

			if home == "" {
				dir, err := os.UserHomeDir()
				if err != nil {
					return err
				}
				home = filepath.Join(dir, ".moss60")
			}
			if err := os.MkdirAll(home, 0o700); err != nil {
				return err
			}
			if passphrase == "" {
				return fmt.Errorf("passphrase required (-p)")
			}

			store, err := crypto.NewEncryptedSaveStore(home, []byte(passphrase))
			if err != nil {
				return err
			}
			saveStore = store
			return nil
		},
	}

	root.PersistentFlags().StringVar(&home, "home", "", "state dir (default ~/.moss60)")
	root.PersistentFlags().StringVarP(&passphrase, "passphrase", "p", "", "passphrase protecting the local state")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(identityCmd(), contactsCmd(), handshakeCmd(), completeCmd(), sendCmd(), recvCmd(), logCmd())
	return root.Execute()
}

// openMessenger restores the messenger from the encrypted save store.
func openMessenger() (*moss60.Messenger, error) {
	if !saveStore.Exists() {
		return nil, fmt.Errorf("no identity yet. run: moss60chat identity <who-you-are>")
	}
	blob, err := saveStore.Load()
	if err != nil {
		return nil, err
	}
	m, err := moss60.New(&moss60.Options{SavedataData: blob})
	if err != nil {
		return nil, err
	}
	if m.RandomnessDegraded() {
		fmt.Fprintln(os.Stderr, "WARNING: system randomness unavailable, keys are weaker than usual")
	}
	return m, nil
}

// saveMessenger writes the messenger state back to the encrypted store.
func saveMessenger(m *moss60.Messenger) error {
	return saveStore.Save(m.GetSavedata())
}

// printQR renders payload text as a scannable QR code on the terminal.
func printQR(text string) {
	qrcodeTerminal.New().Get(text).Print()
}
