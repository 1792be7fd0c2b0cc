// Package commands defines the moss60chat CLI and wires dependencies for
// subcommands.
//
// Commands
//
//   - identity   Create the local identity and show its public hash
//   - contacts   List conversations and their handshake states
//   - handshake  Start a handshake and print the QR code to show the peer
//   - complete   Finish a handshake from a scanned peer payload
//   - send       Encrypt a message and print it as a QR code
//   - recv       Decrypt a scanned message payload
//   - log        Print a conversation's message history
//
// # Implementation
//
// The root command opens the encrypted save store and restores the messenger
// before any subcommand runs, so handlers share one state that is written
// back after every mutation. All message transport is visual: payloads are
// rendered as terminal QR codes and entered back by hand or scanner.
package commands
