package moss60

import (
	"fmt"

	"github.com/metapet/moss60/crypto"
)

// EncodingFormat selects how QR payload text is encoded for transport.
type EncodingFormat string

const (
	// FormatBase60 wraps payloads in the self-describing MOSS60 codec.
	FormatBase60 EncodingFormat = "base60"
	// FormatHex encodes payload bytes as lowercase hex.
	FormatHex EncodingFormat = "hex"
	// FormatText passes the payload through unchanged.
	FormatText EncodingFormat = "text"
	// FormatJSON wraps the base60 encoding in a small versioned JSON
	// envelope.
	FormatJSON EncodingFormat = "json"
)

// Valid reports whether the format is a known enumeration value.
func (f EncodingFormat) Valid() bool {
	switch f {
	case FormatBase60, FormatHex, FormatText, FormatJSON:
		return true
	default:
		return false
	}
}

// ErrorCorrection is the QR error-correction level. The messaging core
// never interprets it; it is carried untouched to the QR renderer.
type ErrorCorrection string

const (
	ErrorCorrectionLow      ErrorCorrection = "L"
	ErrorCorrectionMedium   ErrorCorrection = "M"
	ErrorCorrectionQuartile ErrorCorrection = "Q"
	ErrorCorrectionHigh     ErrorCorrection = "H"
)

// Valid reports whether the level is a known enumeration value.
func (e ErrorCorrection) Valid() bool {
	switch e {
	case ErrorCorrectionLow, ErrorCorrectionMedium, ErrorCorrectionQuartile, ErrorCorrectionHigh:
		return true
	default:
		return false
	}
}

// EncryptionMode is the settings-surface name of the cipher mode.
type EncryptionMode string

const (
	EncryptionModeStandard EncryptionMode = "standard"
	EncryptionModeTemporal EncryptionMode = "temporal"
	// EncryptionModeRatchet is accepted in settings for forward
	// compatibility but rejected when a message is actually sent or
	// received; no ratcheting algorithm exists in the wire format.
	EncryptionModeRatchet EncryptionMode = "ratchet"
)

// Valid reports whether the mode is a known enumeration value.
func (m EncryptionMode) Valid() bool {
	switch m {
	case EncryptionModeStandard, EncryptionModeTemporal, EncryptionModeRatchet:
		return true
	default:
		return false
	}
}

// cipherMode maps the settings value onto the cipher engine's mode.
func (m EncryptionMode) cipherMode() (crypto.CipherMode, error) {
	switch m {
	case EncryptionModeStandard:
		return crypto.ModeStandard, nil
	case EncryptionModeTemporal:
		return crypto.ModeTemporal, nil
	case EncryptionModeRatchet:
		return crypto.ModeRatchet, crypto.ErrRatchetNotImplemented
	default:
		return crypto.ModeStandard, fmt.Errorf("unknown encryption mode %q", string(m))
	}
}

// Options configures a Messenger.
type Options struct {
	// LocalIdentity is the "who I am" string (e.g. an email or username).
	// It is supplied by the caller, never derived by the core.
	LocalIdentity string

	// SavedataData, when non-empty, restores a previously serialized
	// messenger state instead of generating fresh key material.
	SavedataData []byte

	// EncryptionMode selects the cipher treatment for new messages.
	EncryptionMode EncryptionMode

	// DefaultFormat is the transport encoding for generated QR payloads.
	DefaultFormat EncodingFormat

	// DefaultErrorCorrection is passed through to the QR renderer.
	DefaultErrorCorrection ErrorCorrection

	// HistoryLimit caps the live QR generate/scan histories. Persisted
	// savedata keeps a shorter tail; see GetSavedata.
	HistoryLimit int

	// TimeProvider overrides the clock, for deterministic tests.
	TimeProvider crypto.TimeProvider
}

// NewOptions creates Options with the standard defaults.
func NewOptions() *Options {
	return &Options{
		EncryptionMode:         EncryptionModeStandard,
		DefaultFormat:          FormatBase60,
		DefaultErrorCorrection: ErrorCorrectionMedium,
		HistoryLimit:           50,
	}
}
