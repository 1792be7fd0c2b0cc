package base60

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
)

// Alphabet is the fixed ordered glyph set of the codec. Visually ambiguous
// glyphs (0, O, I, l) are excluded so payloads survive print, scan, and
// hand transcription. The ordering is part of the wire format; changing it
// breaks every existing payload.
const Alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

// Tag is the literal prefix of self-describing MOSS60 payloads.
const Tag = "MOSS60:"

// ErrInvalidCharacter is returned by Decode when the input contains a glyph
// outside the alphabet. No partial result is returned.
var ErrInvalidCharacter = errors.New("invalid base60 character")

// radix is the positional base: the alphabet length. The historical MOSS60
// name survives from the product even though the alphabet holds 58 glyphs.
var radix = big.NewInt(int64(len(Alphabet)))

// decodeTable maps a byte to its alphabet index, or -1.
var decodeTable [256]int8

func init() {
	for i := range decodeTable {
		decodeTable[i] = -1
	}
	for i := 0; i < len(Alphabet); i++ {
		decodeTable[Alphabet[i]] = int8(i)
	}
}

// Encode packs data into alphabet glyphs by treating it as a big-endian
// unsigned integer and repeatedly dividing by the radix.
//
// Empty and all-zero inputs map to the single first glyph. Leading zero
// bytes are therefore NOT preserved: two inputs differing only by leading
// zeros encode identically unless the caller tracks length externally.
// This is a known limitation of the format.
func Encode(data []byte) string {
	n := new(big.Int).SetBytes(data)
	if n.Sign() == 0 {
		return string(Alphabet[0])
	}

	// Digits come out least-significant first; reverse at the end.
	out := make([]byte, 0, len(data)*2)
	mod := new(big.Int)
	for n.Sign() > 0 {
		n.DivMod(n, radix, mod)
		out = append(out, Alphabet[mod.Int64()])
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return string(out)
}

// Decode is the inverse of Encode: it accumulates value = value*radix +
// index(glyph) and peels the result into big-endian bytes. A glyph outside
// the alphabet fails with ErrInvalidCharacter.
func Decode(s string) ([]byte, error) {
	n := new(big.Int)
	idx := new(big.Int)
	for i := 0; i < len(s); i++ {
		d := decodeTable[s[i]]
		if d < 0 {
			return nil, fmt.Errorf("%w: %q at position %d", ErrInvalidCharacter, s[i], i)
		}
		idx.SetInt64(int64(d))
		n.Mul(n, radix)
		n.Add(n, idx)
	}
	return n.Bytes(), nil
}

// EncodeMoss60 encodes s and prepends the MOSS60 tag, producing a
// self-describing transport payload.
func EncodeMoss60(s string) string {
	return Tag + Encode([]byte(s))
}

// DecodeMoss60 strips the MOSS60 tag if present and decodes the remainder.
// Bare (untagged) base60 strings are accepted as well.
func DecodeMoss60(s string) (string, error) {
	s = strings.TrimPrefix(s, Tag)
	data, err := Decode(s)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
