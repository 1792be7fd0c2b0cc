package crypto

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/sirupsen/logrus"
)

// ComputeSharedSecret combines a private spiral with a peer's public hash
// into a shared-secret spiral.
//
// For each index i a byte value is read from the peer hash at the wrapping
// two-character window (i*2) mod len. Prime-numbered indices are mixed with
// the golden ratio; all other indices are a plain addition mod 60.
//
// The combine mimics a Diffie-Hellman exchange but, unlike real DH, its
// symmetry is not guaranteed by construction: the two sides are not proven
// to arrive at equal secrets. See the package documentation and the
// symmetry property test before relying on cross-party agreement.
func ComputeSharedSecret(private [SpiralSize]int, peerPublic string) ([SpiralSize]int, error) {
	var secret [SpiralSize]int

	if len(peerPublic) < 2 || len(peerPublic)%2 != 0 {
		return secret, errors.New("peer public hash must be a non-empty even-length hex string")
	}

	logrus.WithFields(logrus.Fields{
		"function":    "ComputeSharedSecret",
		"peer_prefix": peerPublic[:2],
	}).Debug("Combining private spiral with peer public hash")

	for i := 0; i < SpiralSize; i++ {
		offset := (i * 2) % len(peerPublic)
		value, err := strconv.ParseUint(peerPublic[offset:offset+2], 16, 16)
		if err != nil {
			return [SpiralSize]int{}, fmt.Errorf("peer public hash is not hex at offset %d: %w", offset, err)
		}
		theirVal := float64(value)

		if primeIndices[i] {
			secret[i] = int(math.Floor(math.Mod(float64(private[i])*Phi+theirVal, SpiralSize)))
		} else {
			secret[i] = (private[i] + int(value)) % SpiralSize
		}
	}

	logrus.WithFields(logrus.Fields{
		"function": "ComputeSharedSecret",
	}).Info("Shared secret computed")

	return secret, nil
}
