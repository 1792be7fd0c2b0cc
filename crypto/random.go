package crypto

import (
	cryptorand "crypto/rand"
	mathrand "math/rand"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// RandomSource produces seed entropy for handshake key pairs. It prefers the
// operating system CSPRNG and only drops to a time-seeded PRNG when that
// fails. The fallback is degraded mode: it is logged loudly and callers can
// detect it through Degraded, so a UI can warn the user instead of silently
// producing weak handshakes.
type RandomSource struct {
	mu       sync.Mutex
	degraded bool
	fallback *mathrand.Rand
}

// NewRandomSource creates a RandomSource backed by the system CSPRNG.
func NewRandomSource() *RandomSource {
	return &RandomSource{}
}

// Bytes returns n random bytes. It never fails; if the CSPRNG is
// unavailable the non-cryptographic fallback fills the buffer instead and
// the source is marked degraded.
func (r *RandomSource) Bytes(n int) []byte {
	buf := make([]byte, n)
	_, err := cryptorand.Read(buf)
	if err == nil {
		return buf
	}

	logrus.WithFields(logrus.Fields{
		"function": "Bytes",
		"error":    err.Error(),
	}).Warn("System CSPRNG unavailable, switching to degraded randomness")

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fallback == nil {
		r.fallback = mathrand.New(mathrand.NewSource(time.Now().UnixNano()))
	}
	r.degraded = true
	r.fallback.Read(buf)
	return buf
}

// Degraded reports whether the non-cryptographic fallback has ever been
// used by this source.
func (r *RandomSource) Degraded() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.degraded
}
