package service

import "errors"

var (
	// ErrVaultLocked is returned by every operation called before Unlock.
	ErrVaultLocked = errors.New("vault is locked")

	// ErrEntryNotFound is returned when an index does not address an entry.
	ErrEntryNotFound = errors.New("entry not found")

	// ErrVaultUnreadable is returned by mutations when no stored record could
	// be decoded, which usually means the master secret is wrong. Saving in
	// that state would replace every record with ones sealed under the wrong
	// key.
	ErrVaultUnreadable = errors.New("vault records are unreadable with this master secret")

	// ErrImport wraps CSV parsing failures.
	ErrImport = errors.New("csv import failed")
)
