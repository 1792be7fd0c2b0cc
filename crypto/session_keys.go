package crypto

import "github.com/sirupsen/logrus"

// SessionKeys holds the directional byte keys derived for a connected
// conversation. EncryptionKey protects outgoing messages, DecryptionKey is
// applied to incoming ciphertext.
type SessionKeys struct {
	EncryptionKey []byte `json:"encryption_key"`
	DecryptionKey []byte `json:"decryption_key"`
}

// sessionKeyLength is the size of each directional key in bytes.
const sessionKeyLength = 64

// DeriveSessionKeys stretches a shared secret into two independent 64-byte
// keys. The 128-character extended digest of the comma-joined secret is
// consumed as raw characters (not re-decoded as hex): bytes [0,64) become
// the encryption key, bytes [64,128) the decryption key. Two parties holding
// the same secret derive identical keys.
func DeriveSessionKeys(secret [SpiralSize]int) *SessionKeys {
	material := ExtendedHash(JoinSpiral(secret), 16)

	keys := &SessionKeys{
		EncryptionKey: []byte(material[:sessionKeyLength]),
		DecryptionKey: []byte(material[sessionKeyLength : 2*sessionKeyLength]),
	}

	logrus.WithFields(logrus.Fields{
		"function":   "DeriveSessionKeys",
		"key_length": sessionKeyLength,
	}).Debug("Session keys derived from shared secret")

	return keys
}

// Wipe securely erases both directional keys.
func (k *SessionKeys) Wipe() {
	if k == nil {
		return
	}
	ZeroBytes(k.EncryptionKey)
	ZeroBytes(k.DecryptionKey)
}
