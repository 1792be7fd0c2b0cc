package crypto

import (
	"fmt"
	"math/bits"
	"strconv"
	"strings"
	"unicode/utf16"
)

// Hash computes the 8-hex-character spiral digest of input.
//
// The accumulator uses explicit 32-bit wrapping arithmetic so the digest is
// bit-for-bit identical on every platform. Input is walked as UTF-16 code
// units, not bytes, so multi-byte text hashes the same regardless of the
// host string encoding.
func Hash(input string) string {
	var x uint32
	units := utf16.Encode([]rune(input))
	for i, unit := range units {
		j := i % SpiralSize
		x ^= uint32(unit)
		x = bits.RotateLeft32(x, 5) + spiralR[j]
		x ^= spiralK[j] << 3
		x = bits.RotateLeft32(x, 7) + spiralB[j]
		x = (x * 31) & 0x7FFFFFFF
	}
	return fmt.Sprintf("%08x", x)
}

// ExtendedHash stretches Hash to 8*iterations hex characters by
// concatenating Hash(input + "0"), Hash(input + "1"), and so on.
// Non-positive iteration counts fall back to DefaultHashIterations.
func ExtendedHash(input string, iterations int) string {
	if iterations <= 0 {
		iterations = DefaultHashIterations
	}

	var sb strings.Builder
	sb.Grow(iterations * 8)
	for i := 0; i < iterations; i++ {
		sb.WriteString(Hash(input + strconv.Itoa(i)))
	}
	return sb.String()
}
