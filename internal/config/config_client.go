package config

import (
	"fmt"
	"time"

	"github.com/MKhiriev/go-pass-vault/internal/crypto"
)

// ClientVault holds the vault settings in the form the store consumes.
type ClientVault struct {
	// Path is the vault file location.
	Path string
	// KDF is the key derivation used when a new vault is created.
	KDF crypto.KDFParams
	// Cipher is the AEAD used when a new vault is created.
	Cipher string
	// DisableLock turns off the advisory lock file.
	DisableLock bool
}

// ClientLog holds logger settings.
type ClientLog struct {
	// Level is a zerolog level name.
	Level string
	// File is the log file path.
	File string
}

// ClientUI holds terminal interface settings.
type ClientUI struct {
	// ClipboardTTL is how long copied secrets stay on the clipboard. Zero
	// disables automatic clearing.
	ClipboardTTL time.Duration
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	// Vault contains the vault file location and new-vault format.
	Vault ClientVault
	// Log contains logger settings.
	Log ClientLog
	// UI contains terminal interface settings.
	UI ClientUI
}

// GetClientConfig builds and validates a client-specific config view from the
// merged structured configuration.
//
// It loads the base config via [GetStructuredConfig], maps the fields to the
// types used at runtime, and validates the resulting [ClientConfig].
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	return newClientConfig(cfg)
}

func newClientConfig(cfg *StructuredConfig) (*ClientConfig, error) {
	kdf := crypto.KDFParams{Algorithm: cfg.Vault.KDF}
	if kdf.Algorithm == crypto.KDFArgon2id {
		kdf.Time = cfg.Vault.ArgonTime
		kdf.Memory = cfg.Vault.ArgonMemory
		kdf.Threads = cfg.Vault.ArgonThreads
	}

	clientCfg := &ClientConfig{
		Vault: ClientVault{
			Path:        cfg.Vault.Path,
			KDF:         kdf,
			Cipher:      cfg.Vault.Cipher,
			DisableLock: cfg.Vault.DisableLock,
		},
		Log: ClientLog{
			Level: cfg.Log.Level,
			File:  cfg.Log.File,
		},
		UI: ClientUI{ClipboardTTL: max(cfg.UI.ClipboardTTL, 0)},
	}

	return clientCfg, clientCfg.validate()
}
