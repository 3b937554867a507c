// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// go-pass-vault application. It aggregates all sub-configurations and is
// populated by merging values from environment variables, command-line flags,
// an optional JSON file and built-in defaults.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// Vault holds the location of the vault file and the format used when
	// a new vault is created.
	Vault Vault `envPrefix:"VAULT_"`

	// Log holds logging verbosity and destination.
	Log Log `envPrefix:"LOG_"`

	// UI holds terminal interface settings.
	UI UI `envPrefix:"UI_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// Vault configures the encrypted vault file.
type Vault struct {
	// Path is the vault file location. Env: VAULT_PATH. Default: passwords.enc.
	Path string `env:"PATH"`

	// KDF selects the key derivation for new vaults: "argon2id" or the
	// legacy "sha256". Existing vaults keep the KDF recorded in their header.
	KDF string `env:"KDF"`

	// Cipher selects the AEAD for new vaults: "aes-256-gcm" or
	// "xchacha20-poly1305".
	Cipher string `env:"CIPHER"`

	// Argon2id tuning for new vaults. Memory is in KiB.
	ArgonTime    uint32 `env:"ARGON_TIME"`
	ArgonMemory  uint32 `env:"ARGON_MEMORY"`
	ArgonThreads uint8  `env:"ARGON_THREADS"`

	// DisableLock turns off the advisory <path>.lock file.
	DisableLock bool `env:"DISABLE_LOCK"`
}

// Log configures the application logger.
type Log struct {
	// Level is a zerolog level name. Default: info.
	Level string `env:"LEVEL"`

	// File is where the interactive client writes logs. Default: vault.log.
	File string `env:"FILE"`
}

// UI configures the terminal interface.
type UI struct {
	// ClipboardTTL is how long a copied secret stays on the clipboard
	// before it is cleared. Any negative value (e.g. "-1s") turns automatic
	// clearing off; zero counts as unset. Default: 30s.
	ClipboardTTL time.Duration `env:"CLIPBOARD_TTL"`
}

// GetStructuredConfig assembles the configuration from all sources. The first
// source that sets a field wins: environment, then flags, then the JSON file,
// then defaults.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		withDefaults().
		build()
}
