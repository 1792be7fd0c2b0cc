package crypto

import (
	"encoding/base64"
	"errors"
	"fmt"
)

// CipherMode selects the keystream treatment for message encryption.
type CipherMode uint8

const (
	// ModeStandard is the plain cyclic-XOR stream cipher.
	ModeStandard CipherMode = iota
	// ModeTemporal premixes the plaintext with a Lucas-number keystream
	// evolution driven by the conversation message counter. Both parties
	// must keep their counters in lock-step or all subsequent temporal
	// traffic decodes to garbage.
	ModeTemporal
	// ModeRatchet is declared in the settings surface but has no
	// corresponding algorithm; using it is rejected.
	ModeRatchet
)

// String returns the settings-surface name of the mode.
func (m CipherMode) String() string {
	switch m {
	case ModeStandard:
		return "standard"
	case ModeTemporal:
		return "temporal"
	case ModeRatchet:
		return "ratchet"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(m))
	}
}

var (
	// ErrRatchetNotImplemented is returned when ModeRatchet is selected.
	// The mode exists in the settings enumeration only; no ratcheting
	// scheme is defined for the wire format.
	ErrRatchetNotImplemented = errors.New("ratchet mode is declared but not implemented")

	// ErrEmptyKey is returned when a cipher operation is attempted with no
	// key material.
	ErrEmptyKey = errors.New("cipher key cannot be empty")
)

// checkMode validates that mode is usable for a cipher operation.
func checkMode(mode CipherMode) error {
	switch mode {
	case ModeStandard, ModeTemporal:
		return nil
	case ModeRatchet:
		return ErrRatchetNotImplemented
	default:
		return fmt.Errorf("unsupported cipher mode %d", uint8(mode))
	}
}

// EvolveKeystream premixes data with the Lucas number selected by counter:
// each byte at position i becomes (byte + lucas + i) mod 256. The same
// counter must be supplied to DevolveKeystream to invert the mix.
func EvolveKeystream(data []byte, counter uint64) []byte {
	lucas := lucasNumbers[counter%uint64(len(lucasNumbers))]
	out := make([]byte, len(data))
	for i, b := range data {
		out[i] = byte((uint64(b) + lucas + uint64(i)) % 256)
	}
	return out
}

// DevolveKeystream is the exact inverse of EvolveKeystream.
func DevolveKeystream(data []byte, counter uint64) []byte {
	lucas := lucasNumbers[counter%uint64(len(lucasNumbers))]
	out := make([]byte, len(data))
	for i, b := range data {
		v := (int64(b) - int64(lucas) - int64(i)) % 256
		if v < 0 {
			v += 256
		}
		out[i] = byte(v)
	}
	return out
}

// Encrypt enciphers plaintext with the cyclic XOR stream cipher and returns
// standard base64 ciphertext ready for transport encoding.
//
// In ModeTemporal the plaintext bytes are first evolved with the
// counter-selected Lucas keystream. The output carries no authentication
// tag: decrypting it with a wrong key or counter produces garbage that
// cannot be detected at this layer.
func Encrypt(plaintext string, key []byte, counter uint64, mode CipherMode) (string, error) {
	if len(key) == 0 {
		return "", ErrEmptyKey
	}
	if err := checkMode(mode); err != nil {
		return "", err
	}

	data := []byte(plaintext)
	if mode == ModeTemporal {
		data = EvolveKeystream(data, counter)
	}
	for i := range data {
		data[i] ^= key[i%len(key)]
	}
	return base64.StdEncoding.EncodeToString(data), nil
}
