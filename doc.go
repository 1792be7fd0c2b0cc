// Package moss60 implements the MOSS60 private messaging core.
//
// MOSS60 lets two parties establish an encrypted conversation entirely
// through manual, out-of-band exchange of short printable tokens, intended
// to be carried as QR codes. There is no server, no account system, and no
// network transport: every byte one party needs to send the other travels
// as a displayed/scanned text blob. This package is the cryptographic and
// protocol-state-machine layer; QR image rendering and scanning, durable
// storage, and the identity source are external collaborators that only
// exchange plain strings and opaque blobs with the core.
//
// # Basic Usage
//
// Create a messenger, open a conversation, and run the two-step handshake:
//
//	opts := moss60.NewOptions()
//	opts.LocalIdentity = "alice@example.com"
//	m, err := moss60.New(opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	conv, _ := m.CreateConversation("bob@example.com")
//	publicHash, _ := m.InitiateHandshake(conv.ID)
//	// carry publicHash to Bob (QR), receive Bob's hash back, then:
//	_ = m.CompleteHandshake(conv.ID, bobPublicHash)
//
//	wire, _ := m.SendMessage(conv.ID, "hello")     // base64 ciphertext
//	payload, _ := m.GenerateQRPayload(wire)        // MOSS60:... for the QR renderer
//
// On the receiving side:
//
//	scan, _ := m.ScanPayload(payloadText)
//	msg, err := m.ReceiveMessage(conv.ID, scan.DecodedData)
//
// # State Machine
//
// Each conversation moves Uninitialized -> HandshakeInitiated -> Connected.
// SendMessage and ReceiveMessage before Connected fail softly with
// ErrNotConnected and leave the message counter untouched. A connected
// conversation is never reset; deleting it is the only way back.
//
// # Persistence
//
// The core performs no I/O. GetSavedata serializes the full state
// (identity, key pair, conversations, truncated QR histories, settings) to
// an opaque versioned blob; callers persist it after each mutation and feed
// it back through Options.SavedataData or Load. The crypto package offers
// an optional EncryptedSaveStore for at-rest protection.
//
// # Security Limitations
//
// This is not a general-purpose secure-messaging library. Ciphertext
// integrity is not authenticated: there is no MAC or signature, and
// decrypting with a wrong key or counter yields undetectable garbage.
// The spiral key exchange is not provably symmetric; see the crypto
// package documentation and its property tests before relying on
// cross-party key agreement. Temporal mode additionally requires both
// parties' message counters to stay in lock-step: one lost message
// silently corrupts all subsequent temporal traffic.
package moss60
