package crypto

import (
	"crypto/subtle"
	"errors"
	"runtime"
)

// SecureWipe attempts to securely erase the contents of a byte slice
// containing sensitive data. It returns an error if the byte slice is nil.
func SecureWipe(data []byte) error {
	if data == nil {
		return errors.New("cannot wipe nil data")
	}

	// Overwrite the data with zeros. subtle touches the buffer first so the
	// compiler cannot prove the copy is dead and remove it.
	zeros := make([]byte, len(data))
	subtle.ConstantTimeCompare(data, zeros)
	copy(data, zeros)

	runtime.KeepAlive(data)
	runtime.KeepAlive(zeros)

	return nil
}

// ZeroBytes erases the contents of a byte slice containing sensitive data.
// This is a convenience function that ignores the error from SecureWipe.
func ZeroBytes(data []byte) {
	_ = SecureWipe(data)
}

// WipeSpiral zeroes a spiral vector in place.
func WipeSpiral(spiral *[SpiralSize]int) {
	if spiral == nil {
		return
	}
	for i := range spiral {
		spiral[i] = 0
	}
	runtime.KeepAlive(spiral)
}

// WipeKeyPair erases the private spiral of a KeyPair. The public hash is
// left intact; it is not secret. Call this when a key pair is discarded,
// for example after a handshake is re-initiated.
func WipeKeyPair(kp *KeyPair) error {
	if kp == nil {
		return errors.New("cannot wipe nil KeyPair")
	}
	WipeSpiral(&kp.Private)
	return nil
}
