// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"errors"

	"github.com/MKhiriev/go-pass-vault/internal/service"
	"github.com/MKhiriev/go-pass-vault/internal/store"
)

var ErrUserQuit = errors.New("user quit")

func humanizeVaultError(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, store.ErrEmptySecret):
		return "Master password is required"
	case errors.Is(err, store.ErrMalformedHeader):
		return "The vault header is damaged or from a newer version"
	case errors.Is(err, store.ErrNotText):
		return "The vault path points to a file that is not a vault"
	case errors.Is(err, store.ErrLocked):
		return "The vault lock could not be taken; is another instance running?"
	case errors.Is(err, service.ErrVaultUnreadable):
		return "No record could be decrypted with this master password; the vault is read-only"
	case errors.Is(err, service.ErrEntryNotFound):
		return "Entry not found"
	}
	return err.Error()
}
