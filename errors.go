package moss60

import "errors"

var (
	// ErrIdentityRequired is returned by New when no local identity is
	// configured and none can be recovered from savedata.
	ErrIdentityRequired = errors.New("local identity is required")

	// ErrConversationNotFound is returned when an operation references an
	// unknown conversation id.
	ErrConversationNotFound = errors.New("conversation not found")

	// ErrNotConnected is returned by SendMessage and ReceiveMessage before
	// a handshake has completed. It is a soft failure: the conversation is
	// left untouched and the caller may finish the handshake and retry.
	ErrNotConnected = errors.New("conversation is not connected")

	// ErrHandshakeNotInProgress is returned by CompleteHandshake when no
	// prior InitiateHandshake created local key material.
	ErrHandshakeNotInProgress = errors.New("no handshake in progress")

	// ErrAlreadyConnected is returned by InitiateHandshake on a connected
	// conversation; connected state is only reset by deleting the
	// conversation.
	ErrAlreadyConnected = errors.New("conversation is already connected")

	// ErrInvalidSaveData is returned when a savedata blob fails schema
	// validation at the deserialization boundary.
	ErrInvalidSaveData = errors.New("invalid savedata")
)
