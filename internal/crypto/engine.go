// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"io"
	"sync"

	"github.com/awnumar/memguard"
	"golang.org/x/crypto/chacha20poly1305"
)

// Supported AEAD constructions.
const (
	// CipherAES256GCM is AES-256 in GCM mode with a 12-byte nonce.
	CipherAES256GCM = "aes-256-gcm"

	// CipherXChaCha20Poly1305 is XChaCha20-Poly1305 with a 24-byte nonce.
	CipherXChaCha20Poly1305 = "xchacha20-poly1305"
)

// ValidateCipher returns [ErrUnsupportedCipher] for an unknown cipher name.
func ValidateCipher(name string) error {
	switch name {
	case CipherAES256GCM, CipherXChaCha20Poly1305:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedCipher, name)
	}
}

// Engine is the authenticated encryption engine. It owns the key for its
// whole lifetime: the key lives in a locked, guarded memguard buffer and is
// wiped by [Engine.Destroy].
//
// Nonces are random per call. With 96-bit GCM nonces this stays safe far
// beyond the number of records a single vault holds.
type Engine struct {
	mu         sync.RWMutex
	cipherName string
	key        *memguard.LockedBuffer
}

// NewEngine builds an Engine for cipherName. It takes ownership of key: the
// bytes are moved into protected memory and the caller's slice is wiped.
func NewEngine(cipherName string, key []byte) (*Engine, error) {
	if err := ValidateCipher(cipherName); err != nil {
		memguard.WipeBytes(key)
		return nil, err
	}
	if len(key) != KeySize {
		memguard.WipeBytes(key)
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidKeyLength, len(key), KeySize)
	}

	return &Engine{
		cipherName: cipherName,
		key:        memguard.NewBufferFromBytes(key),
	}, nil
}

// Cipher returns the name of the AEAD construction in use.
func (e *Engine) Cipher() string {
	return e.cipherName
}

// NonceSize returns the fixed nonce length that prefixes every envelope.
func (e *Engine) NonceSize() int {
	if e.cipherName == CipherXChaCha20Poly1305 {
		return chacha20poly1305.NonceSizeX
	}
	return 12
}

// Encrypt implements [Sealer]. It draws a fresh random nonce, seals
// plaintext and returns nonce ‖ ciphertext ‖ tag. Any plaintext length,
// including zero, is accepted.
func (e *Engine) Encrypt(plaintext []byte) ([]byte, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	aead, err := e.aead()
	if err != nil {
		return nil, err
	}

	nonceSize := aead.NonceSize()
	envelope := make([]byte, nonceSize, nonceSize+len(plaintext)+aead.Overhead())
	if _, err := io.ReadFull(rand.Reader, envelope); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}

	// Seal appends ciphertext ‖ tag right after the nonce.
	return aead.Seal(envelope, envelope[:nonceSize], plaintext, nil), nil
}

// Decrypt implements [Sealer]. It splits the envelope at the cipher's nonce
// size and opens the rest, verifying the tag.
func (e *Engine) Decrypt(envelope []byte) ([]byte, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	aead, err := e.aead()
	if err != nil {
		return nil, err
	}

	nonceSize := aead.NonceSize()
	if len(envelope) < nonceSize {
		return nil, ErrEnvelopeTooShort
	}

	nonce, ciphertext := envelope[:nonceSize], envelope[nonceSize:]
	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrAuthenticationFailed
	}
	return plaintext, nil
}

// Destroy wipes the key. The engine is unusable afterwards; calling Destroy
// again is a no-op.
func (e *Engine) Destroy() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.key != nil {
		e.key.Destroy()
		e.key = nil
	}
}

func (e *Engine) aead() (cipher.AEAD, error) {
	if e.key == nil || !e.key.IsAlive() {
		return nil, ErrEngineDestroyed
	}

	key := e.key.Bytes()
	switch e.cipherName {
	case CipherXChaCha20Poly1305:
		aead, err := chacha20poly1305.NewX(key)
		if err != nil {
			return nil, fmt.Errorf("create xchacha20-poly1305: %w", err)
		}
		return aead, nil
	default:
		block, err := aes.NewCipher(key)
		if err != nil {
			return nil, fmt.Errorf("create cipher: %w", err)
		}
		gcm, err := cipher.NewGCM(block)
		if err != nil {
			return nil, fmt.Errorf("create gcm: %w", err)
		}
		return gcm, nil
	}
}
