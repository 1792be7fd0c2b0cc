package crypto

import (
	"encoding/base64"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
)

// ErrDecryptionFailed is returned when ciphertext cannot be decoded:
// malformed base64 input, or plaintext bytes that are not valid UTF-8.
// Wrong-key and wrong-counter decryptions that happen to yield valid UTF-8
// are NOT detected; the cipher carries no authentication tag.
var ErrDecryptionFailed = errors.New("decryption failed")

// Decrypt inverts Encrypt: base64 decode, cyclic XOR with key, and in
// ModeTemporal a keystream devolution with the supplied counter.
//
// Failures are codec-level only. Callers that track a message counter must
// not advance it when an error is returned, so the same ciphertext can be
// retried after correction.
func Decrypt(ciphertext string, key []byte, counter uint64, mode CipherMode) (string, error) {
	if len(key) == 0 {
		return "", ErrEmptyKey
	}
	if err := checkMode(mode); err != nil {
		return "", err
	}

	data, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "Decrypt",
			"error":    err.Error(),
		}).Warn("Ciphertext is not valid base64")
		return "", fmt.Errorf("%w: malformed base64: %v", ErrDecryptionFailed, err)
	}

	for i := range data {
		data[i] ^= key[i%len(key)]
	}
	if mode == ModeTemporal {
		data = DevolveKeystream(data, counter)
	}

	if !utf8.Valid(data) {
		logrus.WithFields(logrus.Fields{
			"function": "Decrypt",
			"length":   len(data),
		}).Warn("Decrypted bytes are not valid UTF-8")
		return "", fmt.Errorf("%w: plaintext is not valid UTF-8", ErrDecryptionFailed)
	}

	return string(data), nil
}
