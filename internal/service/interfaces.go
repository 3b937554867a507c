// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"io"

	"github.com/MKhiriev/go-pass-vault/internal/store"
	"github.com/MKhiriev/go-pass-vault/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/entry_manager_mock.go -package=mock

// EntryManager defines the contract the interactive client uses to work with
// an unlocked vault. Indexes refer to positions in the slice returned by List
// and stay valid until the next mutation.
type EntryManager interface {
	// Unlock creates the vault file if needed and loads every decodable
	// record. It must succeed before any other method is used.
	Unlock() (*store.LoadReport, error)

	// List returns a copy of the entries in file order.
	List() (models.Entries, error)

	// Search returns the indexes of entries whose username or place
	// contains term, case-insensitively. An empty term matches everything.
	Search(term string) ([]int, error)

	// Add validates a new entry, appends it and saves the vault.
	Add(username, password, place string) (models.Entry, error)

	// Update applies upd to the entry at index and saves the vault.
	Update(index int, upd models.EntryUpdate) (models.Entry, error)

	// Delete removes the entry at index and saves the vault.
	Delete(index int) error

	// ImportCSV appends every valid username,password,place row from r and
	// saves the vault once. Invalid rows are counted as rejected.
	ImportCSV(r io.Reader) (imported, rejected int, err error)

	// ExportCSV writes a header row and every entry to w.
	ExportCSV(w io.Writer) error

	// Report returns the result of the last load.
	Report() store.LoadReport

	// ReadOnly reports whether mutations are refused because no stored
	// record could be decoded.
	ReadOnly() bool

	// Close wipes key material held by the underlying storage.
	Close() error
}
