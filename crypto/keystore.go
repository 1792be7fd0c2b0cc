package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/crypto/pbkdf2"
)

// EncryptedSaveStore wraps savedata persistence with AES-GCM encryption at
// rest. The messenger core never performs I/O on its own; this store is an
// optional facility for callers that want the serialized conversation table
// protected on disk even if the filesystem is compromised.
type EncryptedSaveStore struct {
	encryptionKey [32]byte
	dataDir       string
	saltFile      string
}

const (
	// PBKDF2Iterations is the number of iterations for key derivation.
	PBKDF2Iterations = 100000
	// SaveStoreVersion is the current on-disk format version.
	SaveStoreVersion = 1
	// SaltSize is the size of the salt for PBKDF2.
	SaltSize = 32
	// saveFileName is the single blob managed by the store.
	saveFileName = "savedata.moss"
)

// NewEncryptedSaveStore creates a savedata store rooted at dataDir.
// masterPassword should be a user-provided passphrase or a key from the
// system keyring; it is wiped before this function returns.
func NewEncryptedSaveStore(dataDir string, masterPassword []byte) (*EncryptedSaveStore, error) {
	if len(masterPassword) == 0 {
		return nil, fmt.Errorf("master password cannot be empty")
	}

	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	ss := &EncryptedSaveStore{
		dataDir:  dataDir,
		saltFile: filepath.Join(dataDir, ".salt"),
	}

	salt, err := ss.loadOrGenerateSalt()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize salt: %w", err)
	}

	// PBKDF2 makes brute-force attacks on the master password expensive.
	derivedKey := pbkdf2.Key(masterPassword, salt, PBKDF2Iterations, 32, sha256.New)
	copy(ss.encryptionKey[:], derivedKey)

	SecureWipe(derivedKey)
	SecureWipe(masterPassword)

	return ss, nil
}

// loadOrGenerateSalt loads the existing salt or generates a new one.
func (ss *EncryptedSaveStore) loadOrGenerateSalt() ([]byte, error) {
	salt := make([]byte, SaltSize)

	data, err := os.ReadFile(ss.saltFile)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read salt file: %w", err)
		}

		if _, err := rand.Read(salt); err != nil {
			return nil, fmt.Errorf("failed to generate salt: %w", err)
		}

		if err := os.WriteFile(ss.saltFile, salt, 0o600); err != nil {
			return nil, fmt.Errorf("failed to save salt: %w", err)
		}

		return salt, nil
	}

	if len(data) != SaltSize {
		return nil, fmt.Errorf("invalid salt file size: got %d, want %d", len(data), SaltSize)
	}

	copy(salt, data)
	return salt, nil
}

// Exists reports whether a savedata blob is present in the store.
func (ss *EncryptedSaveStore) Exists() bool {
	_, err := os.Stat(filepath.Join(ss.dataDir, saveFileName))
	return err == nil
}

// Save encrypts and writes the savedata blob.
// Format: [version:2][nonce:12][ciphertext+tag:N]
func (ss *EncryptedSaveStore) Save(plaintext []byte) error {
	block, err := aes.NewCipher(ss.encryptionKey[:])
	if err != nil {
		return fmt.Errorf("failed to create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return fmt.Errorf("failed to create GCM: %w", err)
	}

	// Unique nonce per write; reuse would break GCM entirely.
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return fmt.Errorf("failed to generate nonce: %w", err)
	}

	ciphertext := gcm.Seal(nil, nonce, plaintext, nil)

	output := make([]byte, 2+len(nonce)+len(ciphertext))
	binary.BigEndian.PutUint16(output[0:2], SaveStoreVersion)
	copy(output[2:2+len(nonce)], nonce)
	copy(output[2+len(nonce):], ciphertext)

	// Atomic write using temporary file + rename.
	tmpFile := filepath.Join(ss.dataDir, saveFileName+".tmp")
	finalFile := filepath.Join(ss.dataDir, saveFileName)

	if err := os.WriteFile(tmpFile, output, 0o600); err != nil {
		return fmt.Errorf("failed to write temporary file: %w", err)
	}

	if err := os.Rename(tmpFile, finalFile); err != nil {
		os.Remove(tmpFile)
		return fmt.Errorf("failed to rename file: %w", err)
	}

	return nil
}

// Load reads and decrypts the savedata blob. It returns an error if the
// blob is missing, corrupted, or the authentication tag does not verify.
func (ss *EncryptedSaveStore) Load() ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(ss.dataDir, saveFileName))
	if err != nil {
		return nil, fmt.Errorf("failed to read savedata: %w", err)
	}

	// version + nonce + tag
	if len(data) < 2+12+16 {
		return nil, fmt.Errorf("savedata too short: %d bytes", len(data))
	}

	version := binary.BigEndian.Uint16(data[0:2])
	if version != SaveStoreVersion {
		return nil, fmt.Errorf("unsupported savedata version: %d (expected %d)", version, SaveStoreVersion)
	}

	block, err := aes.NewCipher(ss.encryptionKey[:])
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	nonceSize := gcm.NonceSize()
	if len(data) < 2+nonceSize {
		return nil, fmt.Errorf("savedata too short for nonce: %d bytes", len(data))
	}

	nonce := data[2 : 2+nonceSize]
	ciphertext := data[2+nonceSize:]

	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("decryption failed (wrong password or corrupted data): %w", err)
	}

	return plaintext, nil
}

// Delete removes the savedata blob, overwriting it with zeros first on a
// best-effort basis.
func (ss *EncryptedSaveStore) Delete() error {
	filePath := filepath.Join(ss.dataDir, saveFileName)

	info, err := os.Stat(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to stat savedata: %w", err)
	}

	zeros := make([]byte, info.Size())
	if err := os.WriteFile(filePath, zeros, 0o600); err != nil {
		return os.Remove(filePath)
	}

	return os.Remove(filePath)
}
