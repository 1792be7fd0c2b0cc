// Package base60 implements the MOSS60 transport codec: a bijective mapping
// between byte strings and a dense 58-glyph printable alphabet, built for
// payloads that travel as QR codes.
//
// The codec is pure big-integer positional conversion. It is independent of
// the rest of the messaging core and is applied only at the transport
// boundary, wrapping public-hash strings during handshakes and base64
// ciphertext during message exchange:
//
//	payload := base60.EncodeMoss60(publicHash)   // "MOSS60:..."
//	hash, err := base60.DecodeMoss60(payload)    // tag optional on decode
//
// # Known Limitation
//
// Because the byte string is interpreted as a single unsigned integer,
// leading zero bytes do not survive a round trip: Encode collapses them and
// Decode cannot restore them. Inputs differing only by leading zero bytes
// encode identically unless length is tracked externally. Handshake hashes
// and base64 ciphertext never start with a zero byte, so the messaging core
// is unaffected.
//
// The MOSS60 name is retained from the product line even though the
// alphabet, after dropping the 0/O/I/l confusable glyphs, holds 58 symbols.
package base60
