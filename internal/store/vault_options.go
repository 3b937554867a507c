package store

import (
	"github.com/MKhiriev/go-pass-vault/internal/crypto"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
)

// Option customizes a [VaultStore] at [Open] time.
type Option func(*VaultStore)

// WithKDF sets the key derivation used when this store creates a new vault.
// Existing vaults keep the parameters recorded in their header. Any salt in
// params is ignored; a fresh one is generated per vault.
func WithKDF(params crypto.KDFParams) Option {
	return func(s *VaultStore) {
		params.Salt = nil
		s.preferred.KDF = params
	}
}

// WithCipher sets the AEAD used when this store creates a new vault.
func WithCipher(name string) Option {
	return func(s *VaultStore) {
		s.preferred.Cipher = name
	}
}

// WithLegacyFormat makes new vaults use the headerless baseline format.
func WithLegacyFormat() Option {
	return func(s *VaultStore) {
		s.preferred = LegacyFormat()
	}
}

// WithoutLock disables the advisory lock file.
func WithoutLock() Option {
	return func(s *VaultStore) {
		s.lockDisabled = true
	}
}

// WithLogger sets the logger; the default discards output.
func WithLogger(log *logger.Logger) Option {
	return func(s *VaultStore) {
		if log != nil {
			s.log = log
		}
	}
}
