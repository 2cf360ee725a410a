package secret

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"

	"github.com/HappyLadySauce/errors"
	"github.com/wanoverlay/manager/internal/pkg/code"
	"golang.org/x/crypto/pbkdf2"
	"k8s.io/klog/v2"
)

const (
	// pbkdf2Iterations matches the original security.py KDF exactly.
	pbkdf2Iterations = 100000
	keyLength        = 32 // AES-256
)

// Envelope encrypts and decrypts credential strings with a key derived
// once, at construction, via PBKDF2-HMAC-SHA256. It is safe for
// concurrent use.
type Envelope struct {
	key []byte
}

// NewEnvelope derives the symmetric key from key+salt. Both must be
// non-empty; their absence is a fatal configuration error, checked at
// startup per spec §4.1/§7 ("Configuration-missing at boot").
func NewEnvelope(encryptionKey, encryptionSalt string) (*Envelope, error) {
	if encryptionKey == "" || encryptionSalt == "" {
		return nil, errors.WithCode(code.ErrSecretEnvelopeNotConfigured,
			"secret envelope requires both an encryption key and salt")
	}
	derived := pbkdf2.Key([]byte(encryptionKey), []byte(encryptionSalt), pbkdf2Iterations, keyLength, sha256.New)
	return &Envelope{key: derived}, nil
}

// MustNewEnvelope is NewEnvelope but panics (fatal boot error) instead of
// returning, for callers at startup that have no recovery path.
func MustNewEnvelope(encryptionKey, encryptionSalt string) *Envelope {
	e, err := NewEnvelope(encryptionKey, encryptionSalt)
	if err != nil {
		klog.Fatalf("secret envelope: %v", err)
	}
	return e
}

// Encrypt returns an opaque, base64-encoded ciphertext for plaintext. The
// empty string round-trips to the empty string without invoking the
// cipher.
func (e *Envelope) Encrypt(plaintext string) (string, error) {
	if plaintext == "" {
		return "", nil
	}

	block, err := aes.NewCipher(e.key)
	if err != nil {
		return "", fmt.Errorf("secret envelope: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", fmt.Errorf("secret envelope: %w", err)
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("secret envelope: %w", err)
	}

	ciphertext := gcm.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// Decrypt reverses Encrypt. A ciphertext produced under a different
// key/salt (or simply corrupted) fails with the distinguished
// ErrSecretDecryptFailed code, which callers treat as "credential
// unreadable — re-enter".
func (e *Envelope) Decrypt(ciphertext string) (string, error) {
	if ciphertext == "" {
		return "", nil
	}

	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", errors.WithCode(code.ErrSecretDecryptFailed, "secret envelope: malformed ciphertext")
	}

	block, err := aes.NewCipher(e.key)
	if err != nil {
		return "", fmt.Errorf("secret envelope: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", fmt.Errorf("secret envelope: %w", err)
	}

	nonceSize := gcm.NonceSize()
	if len(raw) < nonceSize {
		return "", errors.WithCode(code.ErrSecretDecryptFailed, "secret envelope: ciphertext too short")
	}
	nonce, body := raw[:nonceSize], raw[nonceSize:]

	plaintext, err := gcm.Open(nil, nonce, body, nil)
	if err != nil {
		return "", errors.WithCode(code.ErrSecretDecryptFailed, "secret envelope: credential unreadable, re-enter credentials")
	}
	return string(plaintext), nil
}
