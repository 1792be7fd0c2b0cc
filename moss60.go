package moss60

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/metapet/moss60/conversation"
	"github.com/metapet/moss60/crypto"
)

// MessageReceivedCallback is invoked after a received message is appended
// to a conversation log.
type MessageReceivedCallback func(conversationID string, message *conversation.Message)

// HandshakeCompleteCallback is invoked after a conversation reaches the
// connected state.
type HandshakeCompleteCallback func(conversationID string)

// Messenger owns the conversation table and sequences the handshake and
// cipher primitives safely. All mutation is routed through its methods; the
// internal mutex serializes rapid invocations against the same conversation
// so message counters are observed consistently.
type Messenger struct {
	mu sync.RWMutex

	options       *Options
	localIdentity string
	localKeyPair  *crypto.KeyPair

	conversations map[string]*conversation.Conversation
	activeID      string

	generatedQRs []*QRPayload
	scannedQRs   []*ScanResult

	randomSource *crypto.RandomSource
	timeProvider crypto.TimeProvider

	messageReceivedCallback   MessageReceivedCallback
	handshakeCompleteCallback HandshakeCompleteCallback
}

// New creates a Messenger from the given options. When SavedataData is
// present the previous state is restored; otherwise a fresh long-term key
// pair is generated for the local identity.
func New(options *Options) (*Messenger, error) {
	if options == nil {
		options = NewOptions()
	}
	if options.EncryptionMode == "" {
		options.EncryptionMode = EncryptionModeStandard
	}
	if options.DefaultFormat == "" {
		options.DefaultFormat = FormatBase60
	}
	if options.DefaultErrorCorrection == "" {
		options.DefaultErrorCorrection = ErrorCorrectionMedium
	}
	if options.HistoryLimit == 0 {
		options.HistoryLimit = 50
	}
	if !options.EncryptionMode.Valid() {
		return nil, fmt.Errorf("unknown encryption mode %q", string(options.EncryptionMode))
	}
	if !options.DefaultFormat.Valid() {
		return nil, fmt.Errorf("unknown encoding format %q", string(options.DefaultFormat))
	}
	if !options.DefaultErrorCorrection.Valid() {
		return nil, fmt.Errorf("unknown error correction %q", string(options.DefaultErrorCorrection))
	}

	tp := options.TimeProvider
	if tp == nil {
		tp = crypto.DefaultTimeProvider{}
	}

	m := &Messenger{
		options:       options,
		localIdentity: options.LocalIdentity,
		conversations: make(map[string]*conversation.Conversation),
		generatedQRs:  make([]*QRPayload, 0),
		scannedQRs:    make([]*ScanResult, 0),
		randomSource:  crypto.NewRandomSource(),
		timeProvider:  tp,
	}

	if len(options.SavedataData) > 0 {
		if err := m.Load(options.SavedataData); err != nil {
			return nil, err
		}
		logrus.WithFields(logrus.Fields{
			"function":      "New",
			"identity":      m.localIdentity,
			"conversations": len(m.conversations),
		}).Info("Messenger restored from savedata")
		return m, nil
	}

	if m.localIdentity == "" {
		return nil, ErrIdentityRequired
	}

	seed := crypto.NewHandshakeSeed(m.localIdentity, m.randomSource, m.timeProvider)
	keyPair, err := crypto.GenerateKeyPair(seed)
	if err != nil {
		return nil, fmt.Errorf("failed to generate local key pair: %w", err)
	}
	m.localKeyPair = keyPair

	logrus.WithFields(logrus.Fields{
		"function": "New",
		"identity": m.localIdentity,
	}).Info("Messenger created")

	return m, nil
}

// LocalIdentity returns the configured "who I am" string.
func (m *Messenger) LocalIdentity() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.localIdentity
}

// LocalPublicHash returns the public hash of the long-term local key pair.
func (m *Messenger) LocalPublicHash() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.localKeyPair == nil {
		return ""
	}
	return m.localKeyPair.Public
}

// RandomnessDegraded reports whether the non-cryptographic randomness
// fallback has been used. Callers should surface this to the user.
func (m *Messenger) RandomnessDegraded() bool {
	return m.randomSource.Degraded()
}

// OnMessageReceived registers the received-message callback.
func (m *Messenger) OnMessageReceived(callback MessageReceivedCallback) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messageReceivedCallback = callback
}

// OnHandshakeComplete registers the handshake-complete callback.
func (m *Messenger) OnHandshakeComplete(callback HandshakeCompleteCallback) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handshakeCompleteCallback = callback
}

// CreateConversation returns the conversation for the given remote
// identity, creating it when none exists. Creation is idempotent per
// (local, remote) pair: a duplicate request returns the existing
// conversation rather than a new one.
func (m *Messenger) CreateConversation(remoteIdentity string) (*conversation.Conversation, error) {
	if remoteIdentity == "" {
		return nil, errors.New("remote identity cannot be empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, conv := range m.conversations {
		if conv.RemoteIdentity == remoteIdentity {
			logrus.WithFields(logrus.Fields{
				"function":        "CreateConversation",
				"conversation_id": conv.ID,
				"remote_identity": remoteIdentity,
			}).Debug("Returning existing conversation")
			return conv, nil
		}
	}

	conv := conversation.NewWithTimeProvider(m.localIdentity, remoteIdentity, m.timeProvider)
	m.conversations[conv.ID] = conv
	return conv, nil
}

// GetConversation returns the conversation with the given id.
func (m *Messenger) GetConversation(id string) (*conversation.Conversation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	conv, ok := m.conversations[id]
	if !ok {
		return nil, ErrConversationNotFound
	}
	return conv, nil
}

// GetConversationByRemote returns the conversation for a remote identity.
func (m *Messenger) GetConversationByRemote(remoteIdentity string) (*conversation.Conversation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, conv := range m.conversations {
		if conv.RemoteIdentity == remoteIdentity {
			return conv, nil
		}
	}
	return nil, ErrConversationNotFound
}

// Conversations returns a snapshot of all conversations.
func (m *Messenger) Conversations() []*conversation.Conversation {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*conversation.Conversation, 0, len(m.conversations))
	for _, conv := range m.conversations {
		out = append(out, conv)
	}
	return out
}

// SetActiveConversation marks a conversation as the UI-active one.
func (m *Messenger) SetActiveConversation(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.conversations[id]; !ok {
		return ErrConversationNotFound
	}
	m.activeID = id
	return nil
}

// ActiveConversation returns the active conversation, or nil.
func (m *Messenger) ActiveConversation() *conversation.Conversation {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.conversations[m.activeID]
}

// InitiateHandshake generates a fresh ephemeral key pair for the
// conversation and returns the public hash to be carried to the peer.
// The conversation moves to the handshake-initiated state; re-initiating an
// unanswered handshake replaces its key material. A connected conversation
// cannot be re-initiated.
func (m *Messenger) InitiateHandshake(id string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	conv, ok := m.conversations[id]
	if !ok {
		return "", ErrConversationNotFound
	}
	if conv.State() == conversation.StateConnected {
		logrus.WithFields(logrus.Fields{
			"function":        "InitiateHandshake",
			"conversation_id": id,
		}).Warn("Handshake rejected: conversation already connected")
		return "", ErrAlreadyConnected
	}

	seed := crypto.NewHandshakeSeed(m.localIdentity, m.randomSource, m.timeProvider)
	keyPair, err := crypto.GenerateKeyPair(seed)
	if err != nil {
		return "", fmt.Errorf("failed to generate handshake key pair: %w", err)
	}

	if conv.Handshake != nil {
		conv.Handshake.Wipe()
	}
	conv.Handshake = &conversation.HandshakeState{
		Identity:      m.localIdentity,
		PrivateSpiral: keyPair.Private,
		PublicHash:    keyPair.Public,
		CreatedAt:     m.timeProvider.Now(),
	}

	logrus.WithFields(logrus.Fields{
		"function":        "InitiateHandshake",
		"conversation_id": id,
		"public_prefix":   keyPair.Public[:8],
	}).Info("Handshake initiated")

	return keyPair.Public, nil
}

// CompleteHandshake combines the stored private spiral with the peer's
// public hash, derives the session keys, and connects the conversation.
func (m *Messenger) CompleteHandshake(id, remotePublicHash string) error {
	m.mu.Lock()

	conv, ok := m.conversations[id]
	if !ok {
		m.mu.Unlock()
		return ErrConversationNotFound
	}
	if conv.State() != conversation.StateHandshakeInitiated {
		logrus.WithFields(logrus.Fields{
			"function":        "CompleteHandshake",
			"conversation_id": id,
			"state":           conv.State().String(),
		}).Warn("Handshake completion rejected: not in progress")
		m.mu.Unlock()
		return ErrHandshakeNotInProgress
	}

	secret, err := crypto.ComputeSharedSecret(conv.Handshake.PrivateSpiral, remotePublicHash)
	if err != nil {
		m.mu.Unlock()
		return fmt.Errorf("failed to compute shared secret: %w", err)
	}
	keys := crypto.DeriveSessionKeys(secret)

	conv.Handshake.SharedSecret = &secret
	conv.Handshake.EncryptionKey = keys.EncryptionKey
	conv.Handshake.DecryptionKey = keys.DecryptionKey
	conv.Handshake.Connected = true

	callback := m.handshakeCompleteCallback

	logrus.WithFields(logrus.Fields{
		"function":        "CompleteHandshake",
		"conversation_id": id,
	}).Info("Handshake complete, conversation connected")

	m.mu.Unlock()

	if callback != nil {
		callback(id)
	}
	return nil
}

// SendMessage encrypts plaintext for the conversation and returns the wire
// ciphertext (base64) ready for transport encoding. The plaintext is
// appended to the log as a sent message and the cipher counter advances by
// one. Before the handshake completes this is a soft failure: it logs,
// returns ErrNotConnected, and leaves the counter untouched.
func (m *Messenger) SendMessage(id, plaintext string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	conv, ok := m.conversations[id]
	if !ok {
		return "", ErrConversationNotFound
	}
	if conv.State() != conversation.StateConnected {
		logrus.WithFields(logrus.Fields{
			"function":        "SendMessage",
			"conversation_id": id,
			"state":           conv.State().String(),
		}).Warn("Send rejected: conversation not connected")
		return "", ErrNotConnected
	}

	mode, err := m.options.EncryptionMode.cipherMode()
	if err != nil {
		return "", err
	}

	ciphertext, err := crypto.Encrypt(plaintext, conv.Handshake.EncryptionKey, conv.Handshake.MessageCount, mode)
	if err != nil {
		return "", fmt.Errorf("failed to encrypt message: %w", err)
	}

	msg := conversation.NewMessage(plaintext, m.localIdentity, conv.RemoteIdentity, conversation.DirectionSent, m.timeProvider)
	conv.AppendMessage(msg)
	conv.Handshake.MessageCount++

	logrus.WithFields(logrus.Fields{
		"function":        "SendMessage",
		"conversation_id": id,
		"message_id":      msg.ID,
		"message_count":   conv.Handshake.MessageCount,
	}).Info("Message encrypted and logged")

	return ciphertext, nil
}

// ReceiveMessage decrypts wire ciphertext from the peer, appends the
// plaintext to the log as a received message, and advances the cipher
// counter. Codec failures (malformed base64, invalid UTF-8) return the
// decryption error without advancing the counter, so the caller may retry
// with corrected ciphertext.
func (m *Messenger) ReceiveMessage(id, ciphertext string) (*conversation.Message, error) {
	m.mu.Lock()

	conv, ok := m.conversations[id]
	if !ok {
		m.mu.Unlock()
		return nil, ErrConversationNotFound
	}
	if conv.State() != conversation.StateConnected {
		logrus.WithFields(logrus.Fields{
			"function":        "ReceiveMessage",
			"conversation_id": id,
			"state":           conv.State().String(),
		}).Warn("Receive rejected: conversation not connected")
		m.mu.Unlock()
		return nil, ErrNotConnected
	}

	mode, err := m.options.EncryptionMode.cipherMode()
	if err != nil {
		m.mu.Unlock()
		return nil, err
	}

	plaintext, err := crypto.Decrypt(ciphertext, conv.Handshake.DecryptionKey, conv.Handshake.MessageCount, mode)
	if err != nil {
		m.mu.Unlock()
		return nil, err
	}

	msg := conversation.NewMessage(plaintext, conv.RemoteIdentity, m.localIdentity, conversation.DirectionReceived, m.timeProvider)
	conv.AppendMessage(msg)
	conv.Handshake.MessageCount++

	callback := m.messageReceivedCallback

	logrus.WithFields(logrus.Fields{
		"function":        "ReceiveMessage",
		"conversation_id": id,
		"message_id":      msg.ID,
		"message_count":   conv.Handshake.MessageCount,
	}).Info("Message decrypted and logged")

	m.mu.Unlock()

	if callback != nil {
		callback(id, msg)
	}
	return msg, nil
}

// DeleteConversation removes a conversation and wipes its key material.
// If it was the active conversation the active pointer is cleared.
func (m *Messenger) DeleteConversation(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	conv, ok := m.conversations[id]
	if !ok {
		return ErrConversationNotFound
	}

	conv.Handshake.Wipe()
	delete(m.conversations, id)
	if m.activeID == id {
		m.activeID = ""
	}

	logrus.WithFields(logrus.Fields{
		"function":        "DeleteConversation",
		"conversation_id": id,
	}).Info("Conversation deleted")

	return nil
}

// GenerateQRPayload encodes text per the default format and records the
// payload in the generate history (live cap, oldest entries dropped).
func (m *Messenger) GenerateQRPayload(text string) (*QRPayload, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := encodePayloadText(text, m.options.DefaultFormat)
	if err != nil {
		return nil, err
	}

	payload := newQRPayload(data, m.options.DefaultFormat, m.options.DefaultErrorCorrection, m.timeProvider)
	m.generatedQRs = append(m.generatedQRs, payload)
	m.generatedQRs = truncateTail(m.generatedQRs, m.options.HistoryLimit)
	return payload, nil
}

// ScanPayload decodes a scanned payload text and records the result in the
// scan history (live cap). Tagged MOSS60 payloads and JSON envelopes are
// self-describing; bare inputs are interpreted per the default format.
// Decode failures are recorded as invalid scans and returned as errors.
func (m *Messenger) ScanPayload(raw string) (*ScanResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	decoded, format, err := decodePayloadText(raw, m.options.DefaultFormat)
	result := &ScanResult{
		Data:        raw,
		DecodedData: decoded,
		Format:      format,
		ScannedAt:   m.timeProvider.Now(),
		Valid:       err == nil,
	}
	m.scannedQRs = append(m.scannedQRs, result)
	m.scannedQRs = truncateTail(m.scannedQRs, m.options.HistoryLimit)

	if err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "ScanPayload",
			"error":    err.Error(),
		}).Warn("Scanned payload failed to decode")
		return result, err
	}
	return result, nil
}

// GeneratedQRs returns a snapshot of the generate history.
func (m *Messenger) GeneratedQRs() []*QRPayload {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*QRPayload, len(m.generatedQRs))
	copy(out, m.generatedQRs)
	return out
}

// ScannedQRs returns a snapshot of the scan history.
func (m *Messenger) ScannedQRs() []*ScanResult {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*ScanResult, len(m.scannedQRs))
	copy(out, m.scannedQRs)
	return out
}

// GetSavedata returns the current state as a serialized blob for
// persistence. The QR histories are truncated to the persisted cap; the
// live state keeps its longer tail.
func (m *Messenger) GetSavedata() []byte {
	m.mu.RLock()
	defer m.mu.RUnlock()

	saveData := &SaveData{
		Version:                SaveDataVersion,
		LocalIdentity:          m.localIdentity,
		LocalKeyPair:           m.localKeyPair,
		Conversations:          m.conversations,
		GeneratedQRs:           truncateTail(m.generatedQRs, persistedHistoryLimit),
		ScannedQRs:             truncateTail(m.scannedQRs, persistedHistoryLimit),
		DefaultFormat:          m.options.DefaultFormat,
		DefaultErrorCorrection: m.options.DefaultErrorCorrection,
		EncryptionMode:         m.options.EncryptionMode,
		Timestamp:              time.Now().Unix(),
	}
	return saveData.Serialize()
}

// Load replaces the messenger state with a previously serialized blob.
func (m *Messenger) Load(data []byte) error {
	saveData, err := LoadSaveData(data)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.localIdentity = saveData.LocalIdentity
	m.localKeyPair = saveData.LocalKeyPair
	m.conversations = saveData.Conversations
	if m.conversations == nil {
		m.conversations = make(map[string]*conversation.Conversation)
	}
	for _, conv := range m.conversations {
		conv.SetTimeProvider(m.timeProvider)
	}
	m.generatedQRs = saveData.GeneratedQRs
	m.scannedQRs = saveData.ScannedQRs
	if saveData.DefaultFormat != "" {
		m.options.DefaultFormat = saveData.DefaultFormat
	}
	if saveData.DefaultErrorCorrection != "" {
		m.options.DefaultErrorCorrection = saveData.DefaultErrorCorrection
	}
	if saveData.EncryptionMode != "" {
		m.options.EncryptionMode = saveData.EncryptionMode
	}
	m.activeID = ""
	return nil
}
