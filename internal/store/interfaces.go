// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "github.com/MKhiriev/go-pass-vault/models"

//go:generate mockgen -source=interfaces.go -destination=../mock/vault_storage_mock.go -package=mock

// VaultStorage is the persistence contract consumed by the service layer.
// [VaultStore] is the file-backed implementation.
type VaultStorage interface {
	// Initialize creates an empty vault file if none exists. It never
	// truncates an existing file.
	Initialize() error

	// LoadWithReport reads every decodable record in file order and reports
	// how many lines were skipped.
	LoadWithReport() (*LoadReport, error)

	// Save atomically replaces the vault file with entries.
	Save(entries models.Entries) error

	// Close wipes key material.
	Close() error
}
