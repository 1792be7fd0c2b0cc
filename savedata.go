package moss60

import (
	"encoding/json"
	"fmt"

	"github.com/metapet/moss60/conversation"
	"github.com/metapet/moss60/crypto"
)

// SaveDataVersion is the current persisted-schema version.
const SaveDataVersion = 1

// persistedHistoryLimit caps the QR histories inside savedata. It is
// intentionally smaller than the live in-memory cap: persisted state is a
// truncated tail of live state.
const persistedHistoryLimit = 20

// SaveData is the serializable state of a Messenger. The core never writes
// it anywhere; callers persist the blob at exit and after each mutation.
type SaveData struct {
	Version                int                                    `json:"version"`
	LocalIdentity          string                                 `json:"local_identity"`
	LocalKeyPair           *crypto.KeyPair                        `json:"local_key_pair"`
	Conversations          map[string]*conversation.Conversation `json:"conversations"`
	GeneratedQRs           []*QRPayload                           `json:"generated_qrs"`
	ScannedQRs             []*ScanResult                          `json:"scanned_qrs"`
	DefaultFormat          EncodingFormat                         `json:"default_format"`
	DefaultErrorCorrection ErrorCorrection                        `json:"default_error_correction"`
	EncryptionMode         EncryptionMode                         `json:"encryption_mode"`
	Timestamp              int64                                  `json:"timestamp"`
}

// Serialize converts SaveData to its JSON blob form.
func (s *SaveData) Serialize() []byte {
	data, _ := json.Marshal(s)
	return data
}

// LoadSaveData deserializes and validates a savedata blob. Validation
// failures wrap ErrInvalidSaveData so callers can distinguish schema
// problems from I/O problems.
func LoadSaveData(data []byte) (*SaveData, error) {
	var sd SaveData
	if err := json.Unmarshal(data, &sd); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSaveData, err)
	}
	if err := sd.validate(); err != nil {
		return nil, err
	}
	return &sd, nil
}

// validate enforces the schema at the deserialization boundary.
func (s *SaveData) validate() error {
	if s.Version != SaveDataVersion {
		return fmt.Errorf("%w: unsupported version %d", ErrInvalidSaveData, s.Version)
	}
	if s.LocalIdentity == "" {
		return fmt.Errorf("%w: missing local identity", ErrInvalidSaveData)
	}
	if s.DefaultFormat != "" && !s.DefaultFormat.Valid() {
		return fmt.Errorf("%w: unknown encoding format %q", ErrInvalidSaveData, string(s.DefaultFormat))
	}
	if s.DefaultErrorCorrection != "" && !s.DefaultErrorCorrection.Valid() {
		return fmt.Errorf("%w: unknown error correction %q", ErrInvalidSaveData, string(s.DefaultErrorCorrection))
	}
	if s.EncryptionMode != "" && !s.EncryptionMode.Valid() {
		return fmt.Errorf("%w: unknown encryption mode %q", ErrInvalidSaveData, string(s.EncryptionMode))
	}
	for id, conv := range s.Conversations {
		if conv == nil {
			return fmt.Errorf("%w: nil conversation %q", ErrInvalidSaveData, id)
		}
		if conv.ID != id {
			return fmt.Errorf("%w: conversation key %q does not match id %q", ErrInvalidSaveData, id, conv.ID)
		}
	}
	return nil
}

// truncateTail returns at most limit elements from the end of a slice.
func truncateTail[T any](items []T, limit int) []T {
	if limit <= 0 || len(items) <= limit {
		return items
	}
	return items[len(items)-limit:]
}
