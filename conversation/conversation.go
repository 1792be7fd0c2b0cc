// Package conversation defines the per-peer state of the MOSS60 messaging
// core: the conversation record, its handshake state, and the append-only
// message log.
//
// Example:
//
//	conv := conversation.New("alice@example.com", "bob@example.com")
//	conv.State() // conversation.StateUninitialized
package conversation

import (
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/metapet/moss60/crypto"
)

// State represents the handshake progress of a conversation.
type State uint8

const (
	// StateUninitialized means no handshake material exists yet.
	StateUninitialized State = iota
	// StateHandshakeInitiated means a local key pair exists and its public
	// hash is waiting to be answered by the peer's.
	StateHandshakeInitiated
	// StateConnected means both session keys are populated and messages can
	// flow. A connected conversation is never reset; it can only be deleted.
	StateConnected
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateHandshakeInitiated:
		return "handshake_initiated"
	case StateConnected:
		return "connected"
	default:
		return "unknown"
	}
}

// HandshakeState holds one side's key material for a conversation. It is
// created empty, filled in two steps (initiate, complete), and never reset
// except by deleting the whole conversation.
type HandshakeState struct {
	Identity      string                  `json:"identity"`
	PrivateSpiral [crypto.SpiralSize]int  `json:"private_spiral"`
	PublicHash    string                  `json:"public_hash"`
	SharedSecret  *[crypto.SpiralSize]int `json:"shared_secret,omitempty"`
	EncryptionKey []byte                  `json:"encryption_key,omitempty"`
	DecryptionKey []byte                  `json:"decryption_key,omitempty"`
	MessageCount  uint64                  `json:"message_count"`
	Connected     bool                    `json:"connected"`
	CreatedAt     time.Time               `json:"created_at"`
}

// Wipe erases the sensitive fields of the handshake state.
func (h *HandshakeState) Wipe() {
	if h == nil {
		return
	}
	crypto.WipeSpiral(&h.PrivateSpiral)
	if h.SharedSecret != nil {
		crypto.WipeSpiral(h.SharedSecret)
	}
	crypto.ZeroBytes(h.EncryptionKey)
	crypto.ZeroBytes(h.DecryptionKey)
}

// Conversation is the unit of peer state: one per distinct remote identity.
type Conversation struct {
	ID             string          `json:"id"`
	LocalIdentity  string          `json:"local_identity"`
	RemoteIdentity string          `json:"remote_identity"`
	Handshake      *HandshakeState `json:"handshake,omitempty"`
	Messages       []*Message      `json:"messages"`
	CreatedAt      time.Time       `json:"created_at"`
	LastMessageAt  time.Time       `json:"last_message_at"`

	timeProvider TimeProvider
}

// New creates a conversation between the given identities.
func New(localIdentity, remoteIdentity string) *Conversation {
	return NewWithTimeProvider(localIdentity, remoteIdentity, defaultTimeProvider)
}

// NewWithTimeProvider creates a conversation with a custom time provider.
func NewWithTimeProvider(localIdentity, remoteIdentity string, tp TimeProvider) *Conversation {
	if tp == nil {
		tp = defaultTimeProvider
	}

	conv := &Conversation{
		ID:             uuid.NewString(),
		LocalIdentity:  localIdentity,
		RemoteIdentity: remoteIdentity,
		Messages:       make([]*Message, 0),
		CreatedAt:      tp.Now(),
		timeProvider:   tp,
	}

	logrus.WithFields(logrus.Fields{
		"function":        "New",
		"conversation_id": conv.ID,
		"remote_identity": remoteIdentity,
	}).Info("Conversation created")

	return conv
}

// SetTimeProvider restores the clock after deserialization. The provider is
// not persisted.
func (c *Conversation) SetTimeProvider(tp TimeProvider) {
	if tp == nil {
		tp = defaultTimeProvider
	}
	c.timeProvider = tp
}

// State derives the handshake state machine position from the key material.
func (c *Conversation) State() State {
	switch {
	case c.Handshake == nil:
		return StateUninitialized
	case c.Handshake.Connected:
		return StateConnected
	default:
		return StateHandshakeInitiated
	}
}

// AppendMessage adds a message to the log and stamps LastMessageAt.
// Messages are append-only; they are never mutated after creation.
func (c *Conversation) AppendMessage(m *Message) {
	c.Messages = append(c.Messages, m)
	tp := c.timeProvider
	if tp == nil {
		tp = defaultTimeProvider
	}
	c.LastMessageAt = tp.Now()
}

// MessageCount returns the conversation's cipher counter, 0 when no
// handshake exists.
func (c *Conversation) MessageCount() uint64 {
	if c.Handshake == nil {
		return 0
	}
	return c.Handshake.MessageCount
}
