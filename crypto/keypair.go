package crypto

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// KeyPair holds one party's spiral key material.
//
// Private is the 60-entry private spiral (values 0..59) and must never leave
// the process that generated it. Public is the hex digest derived from the
// spiral and is safe to transmit, typically as a QR payload.
type KeyPair struct {
	Private [SpiralSize]int `json:"private"`
	Public  string          `json:"public"`
}

// GenerateKeyPair derives a key pair deterministically from seed.
//
// The seed is stretched to a 64-character digest; every spiral entry is a
// two-hex-character window into that digest reduced mod 60. The public hash
// is the extended digest of the comma-joined spiral.
func GenerateKeyPair(seed string) (*KeyPair, error) {
	if seed == "" {
		return nil, errors.New("seed cannot be empty")
	}

	logrus.WithFields(logrus.Fields{
		"function":    "GenerateKeyPair",
		"seed_length": len(seed),
	}).Debug("Generating spiral key pair")

	digest := ExtendedHash(seed, DefaultHashIterations)

	kp := &KeyPair{}
	for i := 0; i < SpiralSize; i++ {
		offset := (i * 2) % len(digest)
		value, err := strconv.ParseUint(digest[offset:offset+2], 16, 16)
		if err != nil {
			// Unreachable while ExtendedHash emits hex, kept as a guard.
			return nil, fmt.Errorf("malformed digest window at offset %d: %w", offset, err)
		}
		kp.Private[i] = int(value) % SpiralSize
	}
	kp.Public = ExtendedHash(JoinSpiral(kp.Private), DefaultHashIterations)

	logrus.WithFields(logrus.Fields{
		"function":      "GenerateKeyPair",
		"public_prefix": kp.Public[:8],
	}).Info("Spiral key pair generated")

	return kp, nil
}

// NewHandshakeSeed builds the seed material for a fresh handshake key pair:
// the caller's identity, the current time, and random bytes from rs.
func NewHandshakeSeed(identity string, rs *RandomSource, tp TimeProvider) string {
	if rs == nil {
		rs = NewRandomSource()
	}
	if tp == nil {
		tp = defaultTimeProvider
	}

	var sb strings.Builder
	sb.WriteString(identity)
	sb.WriteString(strconv.FormatInt(tp.Now().UnixNano(), 10))
	sb.WriteString(hex.EncodeToString(rs.Bytes(16)))
	return sb.String()
}

// JoinSpiral renders a spiral as the comma-separated decimal string hashed
// during key generation and key derivation. Both parties must join
// identically for their digests to match.
func JoinSpiral(spiral [SpiralSize]int) string {
	parts := make([]string, SpiralSize)
	for i, v := range spiral {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}
