package store

import "errors"

// Sentinel errors returned by [VaultStore]. Callers should use [errors.Is] to
// match against these values.
var (
	// ErrIO wraps any filesystem failure while reading, creating or replacing
	// the vault file. It is fatal for the operation; no retry is attempted.
	ErrIO = errors.New("vault file i/o error")

	// ErrNotText is returned when the vault header, or every line of the
	// vault file, is not valid UTF-8 and therefore cannot hold base64 records.
	ErrNotText = errors.New("vault file is not a text file")

	// ErrMalformedHeader is returned when the first line claims to be a vault
	// header but its version, parameters or salt cannot be parsed.
	ErrMalformedHeader = errors.New("malformed vault header")

	// ErrLocked is returned when the advisory lock next to the vault file
	// cannot be acquired or released.
	ErrLocked = errors.New("vault lock error")

	// ErrStoreClosed is returned by every operation after Close.
	ErrStoreClosed = errors.New("vault store is closed")

	ErrEmptyPath   = errors.New("vault path is empty")
	ErrEmptySecret = errors.New("master secret is empty")
)
