package base60

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlphabetShape(t *testing.T) {
	assert.Len(t, Alphabet, 58)

	// The confusable glyphs are excluded by design.
	for _, banned := range "0OIl" {
		assert.NotContains(t, Alphabet, string(banned))
	}

	// No duplicate glyphs; the mapping must be bijective.
	seen := make(map[byte]bool)
	for i := 0; i < len(Alphabet); i++ {
		assert.False(t, seen[Alphabet[i]], "duplicate glyph %q", Alphabet[i])
		seen[Alphabet[i]] = true
	}
}

func TestEncodeKnownValues(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want string
	}{
		{"empty input", nil, "1"},
		{"single zero byte", []byte{0}, "1"},
		{"value one", []byte{1}, "2"},
		{"last single glyph", []byte{57}, "z"},
		{"first two-glyph value", []byte{58}, "21"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Encode(tt.in))
		})
	}
}

func TestRoundTrip(t *testing.T) {
	// Holds for all byte strings without a leading zero byte.
	inputs := [][]byte{
		{1},
		{255},
		{1, 0},
		{1, 0, 0, 0},
		[]byte("hello world"),
		[]byte("MOSS60 payload text with some length to it"),
		{0xde, 0xad, 0xbe, 0xef},
	}

	for _, in := range inputs {
		encoded := Encode(in)
		decoded, err := Decode(encoded)
		require.NoError(t, err)
		assert.Equal(t, in, decoded, "input %x", in)
	}
}

func TestRoundTripProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(60))

	for trial := 0; trial < 200; trial++ {
		data := make([]byte, 1+rng.Intn(128))
		rng.Read(data)
		for data[0] == 0 {
			data[0] = byte(rng.Intn(256))
		}

		decoded, err := Decode(Encode(data))
		require.NoError(t, err, "trial %d", trial)
		require.True(t, bytes.Equal(data, decoded), "trial %d: %x != %x", trial, data, decoded)
	}
}

func TestLeadingZeroBytesCollapse(t *testing.T) {
	// Known limitation: leading zero bytes are not preserved.
	with := Encode([]byte{0, 0, 42})
	without := Encode([]byte{42})
	assert.Equal(t, without, with)
}

func TestDecodeInvalidCharacter(t *testing.T) {
	tests := []string{
		"!!!",
		"abc0def", // 0 is excluded as confusable
		"payload with spaces",
		"Illegal",
	}

	for _, in := range tests {
		decoded, err := Decode(in)
		require.Error(t, err, "input %q", in)
		assert.ErrorIs(t, err, ErrInvalidCharacter)
		assert.Nil(t, decoded, "no partial result on failure")
	}
}

func TestDecodeEmpty(t *testing.T) {
	decoded, err := Decode("")
	require.NoError(t, err)
	assert.Empty(t, decoded)
}

func TestMoss60RoundTrip(t *testing.T) {
	inputs := []string{
		"a",
		"hello world",
		"f3a91c2b" + "0d7e55aa", // hex digest flavor
		"U2FsdGVkX1+base64/flavor==",
		"unicode 日本語 🐢",
	}

	for _, in := range inputs {
		payload := EncodeMoss60(in)
		assert.True(t, len(payload) > len(Tag))
		assert.Equal(t, Tag, payload[:len(Tag)])

		decoded, err := DecodeMoss60(payload)
		require.NoError(t, err, "input %q", in)
		assert.Equal(t, in, decoded)
	}
}

func TestDecodeMoss60AcceptsBarePayload(t *testing.T) {
	payload := EncodeMoss60("tag optional")
	bare := payload[len(Tag):]

	tagged, err := DecodeMoss60(payload)
	require.NoError(t, err)
	untagged, err := DecodeMoss60(bare)
	require.NoError(t, err)

	assert.Equal(t, tagged, untagged)
}

func TestDecodeMoss60InvalidCharacter(t *testing.T) {
	_, err := DecodeMoss60("MOSS60:!!!")
	assert.ErrorIs(t, err, ErrInvalidCharacter)
}
