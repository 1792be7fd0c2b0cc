package conversation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metapet/moss60/crypto"
)

type fixedClock struct {
	now time.Time
}

func (f fixedClock) Now() time.Time { return f.now }

func TestNewConversation(t *testing.T) {
	conv := New("alice@example.com", "bob@example.com")

	assert.NotEmpty(t, conv.ID)
	assert.Equal(t, "alice@example.com", conv.LocalIdentity)
	assert.Equal(t, "bob@example.com", conv.RemoteIdentity)
	assert.NotNil(t, conv.Messages)
	assert.Empty(t, conv.Messages)
	assert.False(t, conv.CreatedAt.IsZero())
	assert.True(t, conv.LastMessageAt.IsZero())
}

func TestConversationIDsAreUnique(t *testing.T) {
	a := New("alice", "bob")
	b := New("alice", "bob")
	assert.NotEqual(t, a.ID, b.ID)
}

func TestStateDerivation(t *testing.T) {
	conv := New("alice", "bob")
	assert.Equal(t, StateUninitialized, conv.State())

	conv.Handshake = &HandshakeState{Identity: "alice", PublicHash: "abc"}
	assert.Equal(t, StateHandshakeInitiated, conv.State())

	conv.Handshake.Connected = true
	assert.Equal(t, StateConnected, conv.State())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "uninitialized", StateUninitialized.String())
	assert.Equal(t, "handshake_initiated", StateHandshakeInitiated.String())
	assert.Equal(t, "connected", StateConnected.String())
	assert.Equal(t, "unknown", State(99).String())
}

func TestAppendMessageStampsLastMessageAt(t *testing.T) {
	clock := fixedClock{now: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
	conv := NewWithTimeProvider("alice", "bob", clock)

	msg := NewMessage("hi", "alice", "bob", DirectionSent, clock)
	conv.AppendMessage(msg)

	require.Len(t, conv.Messages, 1)
	assert.Same(t, msg, conv.Messages[0])
	assert.Equal(t, clock.now, conv.LastMessageAt)
}

func TestAppendMessagePreservesOrder(t *testing.T) {
	conv := New("alice", "bob")
	first := NewMessage("first", "alice", "bob", DirectionSent, nil)
	second := NewMessage("second", "bob", "alice", DirectionReceived, nil)

	conv.AppendMessage(first)
	conv.AppendMessage(second)

	require.Len(t, conv.Messages, 2)
	assert.Equal(t, "first", conv.Messages[0].Content)
	assert.Equal(t, "second", conv.Messages[1].Content)
}

func TestMessageCount(t *testing.T) {
	conv := New("alice", "bob")
	assert.Zero(t, conv.MessageCount())

	conv.Handshake = &HandshakeState{MessageCount: 7}
	assert.Equal(t, uint64(7), conv.MessageCount())
}

func TestSetTimeProviderNilFallsBack(t *testing.T) {
	conv := New("alice", "bob")
	conv.SetTimeProvider(nil)

	conv.AppendMessage(NewMessage("x", "alice", "bob", DirectionSent, nil))
	assert.False(t, conv.LastMessageAt.IsZero())
}

func TestNewMessageFields(t *testing.T) {
	clock := fixedClock{now: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
	msg := NewMessage("hello", "alice", "bob", DirectionReceived, clock)

	assert.NotEmpty(t, msg.ID)
	assert.Equal(t, "hello", msg.Content)
	assert.Equal(t, "alice", msg.SenderID)
	assert.Equal(t, "bob", msg.RecipientID)
	assert.Equal(t, clock.now, msg.Timestamp)
	assert.Equal(t, DirectionReceived, msg.Direction)
	assert.True(t, msg.Encrypted)
}

func TestHandshakeStateWipe(t *testing.T) {
	secret := &[crypto.SpiralSize]int{1, 2, 3}
	hs := &HandshakeState{
		PrivateSpiral: [crypto.SpiralSize]int{9, 8, 7},
		SharedSecret:  secret,
		EncryptionKey: []byte("enc-material"),
		DecryptionKey: []byte("dec-material"),
	}

	hs.Wipe()

	for i, v := range hs.PrivateSpiral {
		assert.Zero(t, v, "private spiral entry %d", i)
	}
	for i, v := range secret {
		assert.Zero(t, v, "shared secret entry %d", i)
	}
	for i, b := range hs.EncryptionKey {
		assert.Zero(t, b, "encryption key byte %d", i)
	}
	for i, b := range hs.DecryptionKey {
		assert.Zero(t, b, "decryption key byte %d", i)
	}
}

func TestHandshakeStateWipeNil(t *testing.T) {
	var hs *HandshakeState
	assert.NotPanics(t, func() { hs.Wipe() })
}
