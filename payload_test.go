package moss60

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metapet/moss60/base60"
	"github.com/metapet/moss60/crypto"
)

func TestEncodePayloadTextFormats(t *testing.T) {
	text := "handshake material"

	base, err := encodePayloadText(text, FormatBase60)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(base, base60.Tag))

	hexed, err := encodePayloadText(text, FormatHex)
	require.NoError(t, err)
	assert.Equal(t, "68616e647368616b65206d6174657269616c", hexed)

	plain, err := encodePayloadText(text, FormatText)
	require.NoError(t, err)
	assert.Equal(t, text, plain)

	enveloped, err := encodePayloadText(text, FormatJSON)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(enveloped, "{"))
	assert.Contains(t, enveloped, `"v":1`)

	_, err = encodePayloadText(text, EncodingFormat("base61"))
	assert.Error(t, err)
}

func TestDecodePayloadTextRoundTrip(t *testing.T) {
	text := "round trip payload"

	for _, format := range []EncodingFormat{FormatBase60, FormatHex, FormatText, FormatJSON} {
		encoded, err := encodePayloadText(text, format)
		require.NoError(t, err, "format %s", format)

		decoded, detected, err := decodePayloadText(encoded, format)
		require.NoError(t, err, "format %s", format)
		assert.Equal(t, text, decoded, "format %s", format)
		assert.Equal(t, format, detected, "format %s", format)
	}
}

func TestDecodePayloadTextSelfDescribing(t *testing.T) {
	// Tagged and enveloped payloads decode regardless of the default format.
	tagged := base60.EncodeMoss60("tagged payload")
	decoded, format, err := decodePayloadText(tagged, FormatHex)
	require.NoError(t, err)
	assert.Equal(t, "tagged payload", decoded)
	assert.Equal(t, FormatBase60, format)

	enveloped, err := encodePayloadText("enveloped payload", FormatJSON)
	require.NoError(t, err)
	decoded, format, err = decodePayloadText(enveloped, FormatText)
	require.NoError(t, err)
	assert.Equal(t, "enveloped payload", decoded)
	assert.Equal(t, FormatJSON, format)
}

func TestDecodePayloadTextBareDefaults(t *testing.T) {
	decoded, format, err := decodePayloadText("6869", FormatHex)
	require.NoError(t, err)
	assert.Equal(t, "hi", decoded)
	assert.Equal(t, FormatHex, format)

	decoded, format, err = decodePayloadText("anything at all", FormatText)
	require.NoError(t, err)
	assert.Equal(t, "anything at all", decoded)
	assert.Equal(t, FormatText, format)

	bare := strings.TrimPrefix(base60.EncodeMoss60("bare base60"), base60.Tag)
	decoded, format, err = decodePayloadText(bare, FormatBase60)
	require.NoError(t, err)
	assert.Equal(t, "bare base60", decoded)
	assert.Equal(t, FormatBase60, format)
}

func TestDecodePayloadTextMalformed(t *testing.T) {
	_, _, err := decodePayloadText("not hex", FormatHex)
	assert.Error(t, err)

	_, _, err = decodePayloadText("{not json", FormatJSON)
	assert.Error(t, err)

	_, _, err = decodePayloadText("MOSS60:!!!", FormatBase60)
	assert.ErrorIs(t, err, base60.ErrInvalidCharacter)
}

func TestNewQRPayloadStampsHash(t *testing.T) {
	tp := crypto.DefaultTimeProvider{}
	payload := newQRPayload("stamped data", FormatText, ErrorCorrectionHigh, tp)

	assert.Equal(t, "stamped data", payload.Data)
	assert.Equal(t, FormatText, payload.Format)
	assert.Equal(t, ErrorCorrectionHigh, payload.ErrorCorrection)
	assert.False(t, payload.CreatedAt.IsZero())
	assert.Equal(t, crypto.Hash("stamped data"), payload.Hash)
}

func TestGenerateQRPayload(t *testing.T) {
	m := newTestMessenger(t, "alice")

	payload, err := m.GenerateQRPayload("qr body")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(payload.Data, base60.Tag))
	assert.Equal(t, FormatBase60, payload.Format)
	assert.Equal(t, ErrorCorrectionMedium, payload.ErrorCorrection)

	history := m.GeneratedQRs()
	require.Len(t, history, 1)
	assert.Equal(t, payload, history[0])
}

func TestScanPayload(t *testing.T) {
	m := newTestMessenger(t, "alice")

	result, err := m.ScanPayload(base60.EncodeMoss60("scanned body"))
	require.NoError(t, err)
	assert.True(t, result.Valid)
	assert.Equal(t, "scanned body", result.DecodedData)
	assert.Equal(t, FormatBase60, result.Format)

	// A failed scan is still recorded in the history, marked invalid.
	result, err = m.ScanPayload("MOSS60:!!!")
	require.Error(t, err)
	require.NotNil(t, result)
	assert.False(t, result.Valid)

	history := m.ScannedQRs()
	require.Len(t, history, 2)
	assert.True(t, history[0].Valid)
	assert.False(t, history[1].Valid)
}
