package crypto

import "errors"

var (
	// ErrEnvelopeTooShort is returned by Decrypt when the envelope is shorter
	// than the cipher's nonce.
	ErrEnvelopeTooShort = errors.New("envelope too short")

	// ErrAuthenticationFailed is returned by Decrypt when the tag does not
	// verify. Wrong key, truncation and tampering are deliberately reported
	// the same way.
	ErrAuthenticationFailed = errors.New("authentication failed")

	ErrInvalidKeyLength  = errors.New("invalid key length")
	ErrUnsupportedCipher = errors.New("unsupported cipher")
	ErrUnsupportedKDF    = errors.New("unsupported key derivation function")
	ErrInvalidKDFParams  = errors.New("invalid key derivation parameters")
	ErrEngineDestroyed   = errors.New("encryption engine destroyed")
)
