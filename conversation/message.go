package conversation

import (
	"time"

	"github.com/google/uuid"
)

// Direction marks whether a message was sent locally or received from the
// peer.
type Direction string

const (
	// DirectionSent marks a locally authored message.
	DirectionSent Direction = "sent"
	// DirectionReceived marks a message decrypted from the peer.
	DirectionReceived Direction = "received"
)

// Message is one entry in a conversation's append-only log. Content holds
// the plaintext for local display; the ciphertext lives only on the wire.
type Message struct {
	ID          string    `json:"id"`
	Content     string    `json:"content"`
	SenderID    string    `json:"sender_id"`
	RecipientID string    `json:"recipient_id"`
	Timestamp   time.Time `json:"timestamp"`
	Direction   Direction `json:"direction"`
	Encrypted   bool      `json:"encrypted"`
}

// NewMessage creates a message stamped with the given clock.
func NewMessage(content, senderID, recipientID string, direction Direction, tp TimeProvider) *Message {
	if tp == nil {
		tp = defaultTimeProvider
	}
	return &Message{
		ID:          uuid.NewString(),
		Content:     content,
		SenderID:    senderID,
		RecipientID: recipientID,
		Timestamp:   tp.Now(),
		Direction:   direction,
		Encrypted:   true,
	}
}
