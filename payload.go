package moss60

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/metapet/moss60/base60"
	"github.com/metapet/moss60/crypto"
)

// QRPayload is the transport envelope handed to the QR renderer. Data is
// the exact text to render; the core never touches images. A payload is
// immutable once created.
type QRPayload struct {
	Data            string          `json:"data"`
	Format          EncodingFormat  `json:"format"`
	ErrorCorrection ErrorCorrection `json:"error_correction"`
	CreatedAt       time.Time       `json:"created_at"`
	Hash            string          `json:"hash,omitempty"`
}

// ScanResult records one decoded payload from the QR scanner.
type ScanResult struct {
	Data        string         `json:"data"`
	DecodedData string         `json:"decoded_data"`
	Format      EncodingFormat `json:"format"`
	ScannedAt   time.Time      `json:"scanned_at"`
	Valid       bool           `json:"valid"`
}

// jsonEnvelope is the FormatJSON wire form around a base60 string.
type jsonEnvelope struct {
	Version int    `json:"v"`
	Format  string `json:"format"`
	Data    string `json:"data"`
}

// encodePayloadText applies format to text.
func encodePayloadText(text string, format EncodingFormat) (string, error) {
	switch format {
	case FormatBase60:
		return base60.EncodeMoss60(text), nil
	case FormatHex:
		return hex.EncodeToString([]byte(text)), nil
	case FormatText:
		return text, nil
	case FormatJSON:
		data, err := json.Marshal(jsonEnvelope{
			Version: 1,
			Format:  string(FormatJSON),
			Data:    base60.Encode([]byte(text)),
		})
		if err != nil {
			return "", fmt.Errorf("failed to build json envelope: %w", err)
		}
		return string(data), nil
	default:
		return "", fmt.Errorf("unknown encoding format %q", string(format))
	}
}

// decodePayloadText inverts encodePayloadText. Tagged MOSS60 payloads and
// JSON envelopes are self-describing; bare inputs are interpreted per the
// supplied default format (bare base60 is always accepted when the default
// is base60).
func decodePayloadText(raw string, defaultFormat EncodingFormat) (string, EncodingFormat, error) {
	raw = strings.TrimSpace(raw)

	if strings.HasPrefix(raw, base60.Tag) {
		decoded, err := base60.DecodeMoss60(raw)
		return decoded, FormatBase60, err
	}

	if strings.HasPrefix(raw, "{") {
		var env jsonEnvelope
		if err := json.Unmarshal([]byte(raw), &env); err != nil {
			return "", FormatJSON, fmt.Errorf("malformed json envelope: %w", err)
		}
		decoded, err := base60.DecodeMoss60(env.Data)
		return decoded, FormatJSON, err
	}

	switch defaultFormat {
	case FormatHex:
		data, err := hex.DecodeString(raw)
		if err != nil {
			return "", FormatHex, fmt.Errorf("malformed hex payload: %w", err)
		}
		return string(data), FormatHex, nil
	case FormatText:
		return raw, FormatText, nil
	default:
		decoded, err := base60.DecodeMoss60(raw)
		return decoded, FormatBase60, err
	}
}

// newQRPayload stamps an encoded payload with its format, error correction,
// creation time, and spiral hash.
func newQRPayload(data string, format EncodingFormat, ec ErrorCorrection, tp crypto.TimeProvider) *QRPayload {
	return &QRPayload{
		Data:            data,
		Format:          format,
		ErrorCorrection: ec,
		CreatedAt:       tp.Now(),
		Hash:            crypto.Hash(data),
	}
}
