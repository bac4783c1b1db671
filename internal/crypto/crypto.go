package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"strings"

	apperrors "github.com/davincidevllc/continue-leads/internal/pkg/errors"
)

// Stored envelope layout: [nonce (12)] [tag (16)] [ciphertext].
const (
	nonceLength = 12
	tagLength   = 16
)

// Cipher encrypts lead PII with AES-256-GCM. The key is the only capability
// this package holds; it is never exposed back out.
type Cipher struct {
	aead cipher.AEAD
}

// NewCipher expects the 256-bit key as a 64-character hex string.
func NewCipher(hexKey string) (*Cipher, error) {
	if len(hexKey) != 64 {
		return nil, apperrors.NewConfiguration("PII encryption key missing or invalid")
	}
	key, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, apperrors.NewConfiguration("PII encryption key is not valid hex")
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, apperrors.NewConfiguration("PII encryption key rejected by cipher")
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, apperrors.NewConfiguration("GCM init failed")
	}
	return &Cipher{aead: aead}, nil
}

// Encrypt seals plaintext with a fresh random nonce per call.
func (c *Cipher) Encrypt(plaintext string) ([]byte, error) {
	nonce := make([]byte, nonceLength)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	sealed := c.aead.Seal(nil, nonce, []byte(plaintext), nil)
	// Seal appends the tag after the ciphertext; stored layout keeps the tag
	// up front to match the envelope the capture pipeline has always written.
	ct := sealed[:len(sealed)-tagLength]
	tag := sealed[len(sealed)-tagLength:]

	envelope := make([]byte, 0, nonceLength+tagLength+len(ct))
	envelope = append(envelope, nonce...)
	envelope = append(envelope, tag...)
	envelope = append(envelope, ct...)
	return envelope, nil
}

// Decrypt opens an envelope. Any corruption fails the authentication check.
func (c *Cipher) Decrypt(envelope []byte) (string, error) {
	if len(envelope) < nonceLength+tagLength {
		return "", errors.New("ciphertext envelope too short")
	}
	nonce := envelope[:nonceLength]
	tag := envelope[nonceLength : nonceLength+tagLength]
	ct := envelope[nonceLength+tagLength:]

	sealed := make([]byte, 0, len(ct)+tagLength)
	sealed = append(sealed, ct...)
	sealed = append(sealed, tag...)

	plain, err := c.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", err
	}
	return string(plain), nil
}

// Hash produces the one-way digest used for dedupe equality lookups.
// Whitespace is trimmed and the value lowercased so the same contact always
// hashes identically regardless of form input casing.
func Hash(value string) string {
	normalized := strings.ToLower(strings.TrimSpace(value))
	sum := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:])
}
