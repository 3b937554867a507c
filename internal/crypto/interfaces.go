// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package crypto holds the cryptographic core of the vault: turning a master
// secret into a symmetric key ([DeriveKey]) and sealing opaque buffers into
// self-contained authenticated envelopes ([Engine]).
//
// Envelope layout:
//
//	nonce (cipher-specific fixed length) ‖ ciphertext ‖ tag
//
// Every call to [Engine.Encrypt] draws a fresh nonce from the OS CSPRNG, so
// encrypting the same plaintext twice never yields the same envelope.
package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/sealer_mock.go -package=mock

// Sealer encrypts and decrypts opaque byte buffers under a key it owns.
type Sealer interface {
	// Encrypt seals plaintext and returns nonce ‖ ciphertext ‖ tag.
	Encrypt(plaintext []byte) ([]byte, error)

	// Decrypt opens an envelope produced by Encrypt. It returns
	// [ErrEnvelopeTooShort] when the input cannot even hold a nonce and
	// [ErrAuthenticationFailed] for a wrong key, corruption or tampering.
	Decrypt(envelope []byte) ([]byte, error)
}
