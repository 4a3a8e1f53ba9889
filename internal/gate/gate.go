// Package gate decides whether a privileged operation may run: the operator
// key must open a sealed payload. Payloads are produced by Seal with a fresh
// nonce each time and are handed to Authorize as plain values.
package gate

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
)

type Suite string

const (
	SuiteAES256GCM        Suite = "aes-256-gcm"
	SuiteChaCha20Poly1305 Suite = "chacha20-poly1305"

	DefaultSuite = SuiteAES256GCM
)

const (
	KeySize   = 32
	NonceSize = 12
	KeyHexLen = 2 * KeySize
)

type SealedPayload struct {
	Suite      Suite
	Nonce      []byte
	Ciphertext []byte
}

// ParseKey validates the operator key and returns its raw bytes.
func ParseKey(key string) ([]byte, error) {
	if key == "" {
		return nil, ErrMissingKey
	}
	if len(key) != KeyHexLen {
		return nil, fmt.Errorf("%w: got %d characters", ErrInvalidKeyFormat, len(key))
	}
	raw, err := hex.DecodeString(key)
	if err != nil || len(raw) != KeySize {
		return nil, ErrInvalidKeyFormat
	}
	return raw, nil
}

// Authorize opens p with key. The key is fully validated before any cipher
// is built, and every cipher-level failure is reported as ErrDecryptionFailed.
func Authorize(key string, p SealedPayload) ([]byte, error) {
	raw, err := ParseKey(key)
	if err != nil {
		return nil, err
	}
	aead, err := newAEAD(p.Suite, raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecryptionFailed, err)
	}
	if len(p.Nonce) != aead.NonceSize() {
		return nil, fmt.Errorf("%w: nonce is %d bytes, want %d", ErrDecryptionFailed, len(p.Nonce), aead.NonceSize())
	}
	pt, err := aead.Open(nil, p.Nonce, p.Ciphertext, nil)
	if err != nil {
		return nil, ErrDecryptionFailed
	}
	return pt, nil
}

// Seal encrypts plaintext under key with a freshly drawn nonce.
func Seal(key, plaintext []byte, suite Suite) (SealedPayload, error) {
	if suite == "" {
		suite = DefaultSuite
	}
	if len(key) != KeySize {
		return SealedPayload{}, fmt.Errorf("%w: key is %d bytes", ErrInvalidKeyFormat, len(key))
	}
	aead, err := newAEAD(suite, key)
	if err != nil {
		return SealedPayload{}, err
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return SealedPayload{}, err
	}
	return SealedPayload{
		Suite:      suite,
		Nonce:      nonce,
		Ciphertext: aead.Seal(nil, nonce, plaintext, nil),
	}, nil
}

// GenerateKey returns a random key in the hex form Authorize expects.
func GenerateKey() (string, error) {
	k := make([]byte, KeySize)
	if _, err := rand.Read(k); err != nil {
		return "", err
	}
	return hex.EncodeToString(k), nil
}

func newAEAD(s Suite, key []byte) (cipher.AEAD, error) {
	switch s {
	case SuiteAES256GCM, "":
		block, err := aes.NewCipher(key)
		if err != nil {
			return nil, err
		}
		return cipher.NewGCM(block)
	case SuiteChaCha20Poly1305:
		return chacha20poly1305.New(key)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSuite, s)
	}
}
