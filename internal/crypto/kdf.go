// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"
)

// Supported key derivation functions.
const (
	// KDFArgon2id derives the key with Argon2id over the secret and a random
	// per-vault salt.
	KDFArgon2id = "argon2id"

	// KDFSHA256 is the legacy derivation: a single unsalted SHA-256 of the
	// secret. It has no work factor and is kept only to read and write
	// vaults in the baseline format.
	KDFSHA256 = "sha256"
)

const (
	// KeySize is the length of every derived key (256 bits).
	KeySize = 32

	// SaltSize is the length of a generated Argon2id salt (128 bits).
	SaltSize = 16

	// MaxArgonTime bounds the Argon2id pass count. Vault headers are read
	// before the secret is checked, so the bound keeps a forged header from
	// stalling the unlock.
	MaxArgonTime = 64
)

// KDFParams selects and tunes the key derivation function. Salt is not a
// secret; it is persisted in the vault header next to the parameters.
type KDFParams struct {
	Algorithm string

	// Argon2id tuning. Memory is in KiB.
	Time    uint32
	Memory  uint32
	Threads uint8

	Salt []byte
}

// DefaultArgon2idParams returns the Argon2id parameters recommended by OWASP
// (time 1, memory 64 MiB, 4 lanes) without a salt.
func DefaultArgon2idParams() KDFParams {
	return KDFParams{
		Algorithm: KDFArgon2id,
		Time:      1,
		Memory:    64 * 1024, // 64 MiB
		Threads:   4,
	}
}

// LegacyKDFParams returns the parameters of the baseline unsalted SHA-256
// derivation.
func LegacyKDFParams() KDFParams {
	return KDFParams{Algorithm: KDFSHA256}
}

// Salted reports whether the algorithm consumes a salt.
func (p KDFParams) Salted() bool {
	return p.Algorithm == KDFArgon2id
}

// Validate checks the parameters without the salt, which is attached later.
func (p KDFParams) Validate() error {
	switch p.Algorithm {
	case KDFSHA256:
		return nil
	case KDFArgon2id:
		if p.Time < 1 || p.Threads < 1 {
			return fmt.Errorf("%w: time and threads must be positive", ErrInvalidKDFParams)
		}
		if p.Time > MaxArgonTime {
			return fmt.Errorf("%w: time %d exceeds %d", ErrInvalidKDFParams, p.Time, MaxArgonTime)
		}
		// argon2 requires at least 8 KiB of memory per lane.
		if p.Memory < 8*uint32(p.Threads) {
			return fmt.Errorf("%w: memory must be at least %d KiB", ErrInvalidKDFParams, 8*uint32(p.Threads))
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedKDF, p.Algorithm)
	}
}

// WithSalt returns a copy of p carrying salt.
func (p KDFParams) WithSalt(salt []byte) KDFParams {
	p.Salt = append([]byte(nil), salt...)
	return p
}

// DeriveKey turns masterSecret into a [KeySize]-byte key. The derivation is
// deterministic: the same secret and parameters always produce the same key,
// so a vault can be reopened across sessions.
//
// Argon2id requires a salt of at least 8 bytes; the legacy algorithm ignores
// the salt entirely.
func DeriveKey(masterSecret []byte, p KDFParams) ([]byte, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	switch p.Algorithm {
	case KDFArgon2id:
		if len(p.Salt) < 8 {
			return nil, fmt.Errorf("%w: salt must be at least 8 bytes", ErrInvalidKDFParams)
		}
		return argon2.IDKey(masterSecret, p.Salt, p.Time, p.Memory, p.Threads, KeySize), nil
	default:
		sum := sha256.Sum256(masterSecret)
		key := make([]byte, KeySize)
		copy(key, sum[:])
		clear(sum[:])
		return key, nil
	}
}

// GenerateSalt reads [SaltSize] random bytes from the OS CSPRNG.
func GenerateSalt() ([]byte, error) {
	salt := make([]byte, SaltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}
	return salt, nil
}
