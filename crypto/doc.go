// Package crypto implements the cryptographic primitives of the MOSS60
// messaging core: the spiral keyed hash, spiral key pairs and the
// pseudo-Diffie-Hellman combine, session key derivation, and the XOR stream
// cipher with its optional temporal keystream evolution.
//
// Every primitive here is deterministic and transport-free. The only wire
// forms produced are printable strings (hex digests, base64 ciphertext) so
// payloads can travel as QR codes or any other out-of-band channel.
//
// # Core Types
//
//   - [KeyPair]: a 60-entry private spiral (values 0..59) plus its public
//     hex hash. The spiral never leaves the generating party.
//   - [SessionKeys]: directional encryption/decryption byte keys derived
//     from a shared secret.
//   - [CipherMode]: standard, temporal, or the declared-but-unimplemented
//     ratchet mode.
//
// # Hashing
//
// [Hash] is a custom keyed hash over UTF-16 code units with explicit 32-bit
// wrapping arithmetic, driven by digit tables of fixed mathematical
// constants. [ExtendedHash] stretches it to arbitrary lengths:
//
//	digest := crypto.ExtendedHash("some seed", 8) // 64 hex characters
//
// # Key Exchange
//
// [GenerateKeyPair] derives a key pair from a seed string; [NewHandshakeSeed]
// builds seeds from identity, time, and randomness. [ComputeSharedSecret]
// combines a private spiral with the peer's public hash:
//
//	kp, _ := crypto.GenerateKeyPair(crypto.NewHandshakeSeed("alice", nil, nil))
//	secret, _ := crypto.ComputeSharedSecret(kp.Private, peerPublicHash)
//	keys := crypto.DeriveSessionKeys(secret)
//
// # Encryption
//
// [Encrypt] and [Decrypt] implement a cyclic XOR stream cipher over the
// derived session keys, emitting standard base64:
//
//	wire, _ := crypto.Encrypt("hello", keys.EncryptionKey, counter, crypto.ModeTemporal)
//	text, _ := crypto.Decrypt(wire, keys.DecryptionKey, counter, crypto.ModeTemporal)
//
// In temporal mode the keystream is evolved by a Lucas-number table indexed
// with the per-conversation message counter, so both parties must advance
// their counters in lock-step.
//
// # Security Limitations
//
// This package intentionally does not claim IND-CPA or IND-CCA security.
// Two limitations deserve loud documentation:
//
//   - Ciphertext integrity is not authenticated. There is no MAC or
//     signature over the ciphertext; decrypting with a wrong key or counter
//     yields garbage with no detectable failure unless the bytes happen to
//     be invalid UTF-8.
//   - The shared-secret combine is not provably commutative. Unlike real
//     Diffie-Hellman there is no modular exponentiation in a shared group,
//     and the two sides of an exchange are not guaranteed to derive equal
//     secrets. The symmetry property test in this package measures and
//     reports the actual behavior; do not assume cross-party agreement
//     without consulting it.
//
// # Randomness
//
// [RandomSource] prefers the operating system CSPRNG and falls back to a
// time-seeded PRNG only when that fails. The fallback is degraded mode:
// it is logged and detectable via [RandomSource.Degraded].
//
// # At-Rest Protection
//
// [EncryptedSaveStore] persists the messenger savedata blob under
// AES-256-GCM with a PBKDF2-derived key, for callers that want the
// conversation table protected on disk.
//
// # Secure Memory Handling
//
// Sensitive material should be wiped when discarded:
//
//	defer crypto.WipeKeyPair(keyPair)
//	defer keys.Wipe()
//
// # Deterministic Testing
//
// Time-dependent seed construction accepts an injectable [TimeProvider];
// [MockTimeProvider] fixes the clock for reproducible tests.
package crypto
